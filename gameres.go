package gameres

import (
	"github.com/wippyai/gameres/codec"
	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/layout"
	"github.com/wippyai/gameres/resource"
)

// Decode decodes buf into a new T. T must either have a registered
// descriptor or implement codec.BodyDecoder through its pointer.
func Decode[T any](buf []byte, key resource.Key, width resource.Width) (*T, error) {
	v := new(T)
	if err := DecodeInto(buf, key, width, nil, v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeInto decodes buf into dst using desc, or the descriptor
// registered for dst's type when desc is nil.
func DecodeInto(buf []byte, key resource.Key, width resource.Width, desc *layout.Descriptor, dst any) error {
	return codec.DecodeInto(buf, key, width, desc, dst)
}

// Encode serializes v into a complete resource buffer.
func Encode(v any, key resource.Key, width resource.Width) ([]byte, error) {
	if v == nil {
		return nil, errors.InvalidInput(errors.PhaseEncode, "nil value")
	}
	return codec.Encode(v, key, width)
}

// Reader is the per-decode cursor handed to codec.BodyDecoder.
type Reader = codec.Reader

// Builder is the per-encode writer handed to codec.BodyEncoder.
type Builder = codec.Builder
