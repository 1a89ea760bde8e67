package codec

import (
	"math"
	"reflect"

	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/layout"
	"github.com/wippyai/gameres/resource"
	"github.com/wippyai/gameres/typemap"
)

// decodeStruct fills v from data laid out per l. rel is the offset of data
// from the context's struct base; mappings see rel plus the slot offset.
func decodeStruct(l *layout.Layout, data []byte, rel int64, v reflect.Value, ctx typemap.Context, path []string) error {
	for i := range l.Slots {
		s := &l.Slots[i]
		if s.Kind == layout.KindPad {
			continue
		}
		fv := v.FieldByIndex(s.Index)
		fpath := append(path[:len(path):len(path)], s.Name)

		if !s.IsArray() {
			if err := decodeElem(s, l.Width, data[s.Offset:s.Offset+s.Elem], rel+int64(s.Offset), fv, ctx, fpath); err != nil {
				return err
			}
			continue
		}
		for n := 0; n < s.Count; n++ {
			off := s.Offset + n*s.Elem
			if err := decodeElem(s, l.Width, data[off:off+s.Elem], rel+int64(off), fv.Index(n), ctx, fpath); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeElem(s *layout.Slot, w resource.Width, b []byte, rel int64, fv reflect.Value, ctx typemap.Context, path []string) error {
	switch s.Kind {
	case layout.KindStruct:
		return decodeStruct(s.Nested, b, rel, fv, ctx, path)

	case layout.KindVec2, layout.KindVec3, layout.KindVec4, layout.KindQuat:
		for i := 0; i < s.Kind.Components(); i++ {
			fv.Index(i).SetFloat(float64(math.Float32frombits(ByteOrder.Uint32(b[4*i:]))))
		}
		return nil
	}

	raw := readRaw(s.Kind, w, b)
	if s.Conv != nil {
		mv, err := s.Conv.FromRaw(raw, rel, ctx)
		if err != nil {
			return withPath(err, path)
		}
		fv.Set(mv)
		return nil
	}

	switch s.Kind {
	case layout.KindF32:
		fv.SetFloat(float64(math.Float32frombits(uint32(raw))))
	case layout.KindF64:
		fv.SetFloat(math.Float64frombits(raw))
	default:
		if fv.CanInt() {
			fv.SetInt(int64(raw))
			break
		}
		if fv.OverflowUint(raw) {
			return errors.Overflow(errors.PhaseDecode, path, raw, fv.Type().String())
		}
		fv.SetUint(raw)
	}
	return nil
}

// readRaw widens a stored scalar to 64 bits. Signed kinds are sign
// extended; floats are returned as their IEEE bits.
func readRaw(k layout.Kind, w resource.Width, b []byte) uint64 {
	switch k {
	case layout.KindI8:
		return uint64(int64(int8(b[0])))
	case layout.KindU8:
		return uint64(b[0])
	case layout.KindI16:
		return uint64(int64(int16(ByteOrder.Uint16(b))))
	case layout.KindU16:
		return uint64(ByteOrder.Uint16(b))
	case layout.KindI32:
		return uint64(int64(int32(ByteOrder.Uint32(b))))
	case layout.KindU32, layout.KindF32:
		return uint64(ByteOrder.Uint32(b))
	case layout.KindI64, layout.KindU64, layout.KindF64:
		return ByteOrder.Uint64(b)
	case layout.KindPtr:
		return getWord(b, w)
	}
	return 0
}

// encodeStruct is the inverse of decodeStruct. data must be zeroed.
func encodeStruct(l *layout.Layout, data []byte, rel int64, v reflect.Value, ctx typemap.Context, path []string) error {
	for i := range l.Slots {
		s := &l.Slots[i]
		if s.Kind == layout.KindPad {
			continue
		}
		fv := v.FieldByIndex(s.Index)
		fpath := append(path[:len(path):len(path)], s.Name)

		if !s.IsArray() {
			if err := encodeElem(s, l.Width, data[s.Offset:s.Offset+s.Elem], rel+int64(s.Offset), fv, ctx, fpath); err != nil {
				return err
			}
			continue
		}
		for n := 0; n < s.Count; n++ {
			off := s.Offset + n*s.Elem
			if err := encodeElem(s, l.Width, data[off:off+s.Elem], rel+int64(off), fv.Index(n), ctx, fpath); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeElem(s *layout.Slot, w resource.Width, b []byte, rel int64, fv reflect.Value, ctx typemap.Context, path []string) error {
	switch s.Kind {
	case layout.KindStruct:
		return encodeStruct(s.Nested, b, rel, fv, ctx, path)

	case layout.KindVec2, layout.KindVec3, layout.KindVec4, layout.KindQuat:
		for i := 0; i < s.Kind.Components(); i++ {
			ByteOrder.PutUint32(b[4*i:], math.Float32bits(float32(fv.Index(i).Float())))
		}
		return nil
	}

	var raw uint64
	switch {
	case s.Conv != nil:
		r, err := s.Conv.ToRaw(fv, rel, ctx)
		if err != nil {
			return withPath(err, path)
		}
		raw = r
	case s.Kind == layout.KindF32:
		raw = uint64(math.Float32bits(float32(fv.Float())))
	case s.Kind == layout.KindF64:
		raw = math.Float64bits(fv.Float())
	case fv.CanInt():
		raw = uint64(fv.Int())
	default:
		raw = fv.Uint()
	}

	if !fits(s.Kind, w, raw) {
		return errors.Overflow(errors.PhaseEncode, path, raw, s.Kind.String())
	}
	writeRaw(s.Kind, w, b, raw)
	return nil
}

// fits checks unsigned and pointer values against their storage width.
// Signed values are truncated two's complement.
func fits(k layout.Kind, w resource.Width, raw uint64) bool {
	switch k {
	case layout.KindU8:
		return raw <= math.MaxUint8
	case layout.KindU16:
		return raw <= math.MaxUint16
	case layout.KindU32:
		return raw <= math.MaxUint32
	case layout.KindPtr:
		return fitsWord(w, raw)
	}
	return true
}

func writeRaw(k layout.Kind, w resource.Width, b []byte, raw uint64) {
	switch k {
	case layout.KindI8, layout.KindU8:
		b[0] = byte(raw)
	case layout.KindI16, layout.KindU16:
		ByteOrder.PutUint16(b, uint16(raw))
	case layout.KindI32, layout.KindU32, layout.KindF32:
		ByteOrder.PutUint32(b, uint32(raw))
	case layout.KindI64, layout.KindU64, layout.KindF64:
		ByteOrder.PutUint64(b, raw)
	case layout.KindPtr:
		putWord(b, w, raw)
	}
}

// withPath sets the field path on errors returned by mappings, which do
// not know where they were called from.
func withPath(err error, path []string) error {
	if e, ok := err.(*errors.Error); ok && len(e.Path) == 0 {
		e.Path = path
	}
	return err
}

// target checks that v is a (pointer to a) value of the descriptor's type
// and returns the addressable struct value. Decoding requires a pointer.
func target(d *layout.Descriptor, v any, phase errors.Phase, needPtr bool) (reflect.Value, error) {
	if d == nil {
		return reflect.Value{}, errors.InvalidInput(phase, "nil descriptor")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, errors.New(phase, errors.KindInvalidInput).
				Struct(d.Name()).
				Detail("nil pointer").
				Build()
		}
		rv = rv.Elem()
	} else if needPtr {
		return reflect.Value{}, errors.New(phase, errors.KindInvalidInput).
			Struct(d.Name()).
			Detail("decode target must be a pointer, got %s", typeName(v)).
			Build()
	}
	if !rv.IsValid() || rv.Type() != d.GoType() {
		return reflect.Value{}, errors.TypeMismatch(phase, nil, typeName(v), d.Name())
	}
	return rv, nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
