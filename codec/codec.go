package codec

import (
	"reflect"

	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/layout"
	"github.com/wippyai/gameres/resource"
)

// BodyDecoder is implemented by types that read their own body, typically
// a header struct followed by variable-length sections.
type BodyDecoder interface {
	DecodeBody(r *Reader) error
}

// BodyEncoder is the encode counterpart of BodyDecoder.
type BodyEncoder interface {
	EncodeBody(b *Builder) error
}

// Decode decodes buf into a new value of desc's type and returns a
// pointer to it.
func Decode(buf []byte, key resource.Key, width resource.Width, desc *layout.Descriptor) (any, error) {
	if desc == nil {
		return nil, errors.InvalidInput(errors.PhaseDecode, "nil descriptor")
	}
	v := desc.New()
	if err := DecodeInto(buf, key, width, desc, v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeInto decodes buf into dst. A dst implementing BodyDecoder drives
// the reader itself; otherwise the struct described by desc is read at
// the body start. A nil desc is looked up from dst's type.
func DecodeInto(buf []byte, key resource.Key, width resource.Width, desc *layout.Descriptor, dst any) error {
	r, err := NewReader(buf, key, width)
	if err != nil {
		return err
	}
	if d, ok := dst.(BodyDecoder); ok {
		return d.DecodeBody(r)
	}
	if desc == nil {
		if dst == nil {
			return errors.InvalidInput(errors.PhaseDecode, "nil decode target")
		}
		if desc, err = descriptorFor(reflect.TypeOf(dst), errors.PhaseDecode); err != nil {
			return err
		}
	}
	return r.ReadStruct(desc, dst)
}

// Encode builds a complete resource buffer from v. A v implementing
// BodyEncoder drives the builder itself; otherwise v is written with its
// registered descriptor.
func Encode(v any, key resource.Key, width resource.Width) ([]byte, error) {
	b, err := NewBuilder(key, width)
	if err != nil {
		return nil, err
	}
	if e, ok := v.(BodyEncoder); ok {
		err = e.EncodeBody(b)
	} else {
		err = b.Write(v)
	}
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// Pack serializes v with no reader or builder context: reference fields
// are written as null slots.
func Pack(desc *layout.Descriptor, width resource.Width, v any) ([]byte, error) {
	if !width.Valid() {
		return nil, errors.InvalidInput(errors.PhaseEncode, "unsupported address width "+width.String())
	}
	rv, err := target(desc, v, errors.PhaseEncode, false)
	if err != nil {
		return nil, err
	}
	out := make([]byte, desc.Size(width))
	if err := encodeStruct(desc.Layout(width), out, 0, rv, nil, nil); err != nil {
		return nil, withStruct(err, desc.Name())
	}
	return out, nil
}

// Unpack decodes data with no reader context: reference fields are left
// nil.
func Unpack(desc *layout.Descriptor, width resource.Width, data []byte, dst any) error {
	if !width.Valid() {
		return errors.InvalidInput(errors.PhaseDecode, "unsupported address width "+width.String())
	}
	rv, err := target(desc, dst, errors.PhaseDecode, true)
	if err != nil {
		return err
	}
	size := desc.Size(width)
	if len(data) < size {
		return withStruct(errors.OutOfBounds(errors.PhaseDecode, nil, 0, int64(size), int64(len(data))), desc.Name())
	}
	return withStruct(decodeStruct(desc.Layout(width), data[:size], 0, rv, nil, nil), desc.Name())
}
