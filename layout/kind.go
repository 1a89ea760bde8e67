package layout

import (
	"reflect"

	"github.com/wippyai/gameres/resource"
	"github.com/wippyai/gameres/typemap"
)

// Kind is the storage class of a declared field.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindPtr
	KindVec2
	KindVec3
	KindVec4
	KindQuat
	KindStruct
	KindPad
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindI8:      "i8",
	KindU8:      "u8",
	KindI16:     "i16",
	KindU16:     "u16",
	KindI32:     "i32",
	KindU32:     "u32",
	KindI64:     "i64",
	KindU64:     "u64",
	KindF32:     "f32",
	KindF64:     "f64",
	KindPtr:     "ptr",
	KindVec2:    "vec2",
	KindVec3:    "vec3",
	KindVec4:    "vec4",
	KindQuat:    "quat",
	KindStruct:  "struct",
	KindPad:     "pad",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind?"
}

// IsInteger reports whether k is a fixed-size integer.
func (k Kind) IsInteger() bool {
	return k >= KindI8 && k <= KindU64
}

// IsSigned reports whether k is a signed integer.
func (k Kind) IsSigned() bool {
	switch k {
	case KindI8, KindI16, KindI32, KindI64:
		return true
	}
	return false
}

// Components returns the float32 count of a composite kind, or 0.
func (k Kind) Components() int {
	switch k {
	case KindVec2:
		return 2
	case KindVec3:
		return 3
	case KindVec4, KindQuat:
		return 4
	}
	return 0
}

// elemSize returns the byte size of one element of k in profile w.
// Nested structs are sized by their own layout.
func (k Kind) elemSize(w resource.Width) int {
	switch k {
	case KindI8, KindU8, KindPad:
		return 1
	case KindI16, KindU16:
		return 2
	case KindI32, KindU32, KindF32:
		return 4
	case KindI64, KindU64, KindF64:
		return 8
	case KindPtr:
		return w.Bytes()
	case KindVec2, KindVec3, KindVec4, KindQuat:
		return 4 * k.Components()
	}
	return 0
}

// elemAlign returns the natural alignment of k in profile w.
func (k Kind) elemAlign(w resource.Width) int {
	if n := k.Components(); n > 0 {
		return 4
	}
	return k.elemSize(w)
}

// rawType is the Go type a mapping for k is registered against.
func (k Kind) rawType() reflect.Type {
	switch k {
	case KindI8:
		return reflect.TypeOf((*int8)(nil)).Elem()
	case KindU8:
		return reflect.TypeOf((*uint8)(nil)).Elem()
	case KindI16:
		return reflect.TypeOf((*int16)(nil)).Elem()
	case KindU16:
		return reflect.TypeOf((*uint16)(nil)).Elem()
	case KindI32:
		return reflect.TypeOf((*int32)(nil)).Elem()
	case KindU32:
		return reflect.TypeOf((*uint32)(nil)).Elem()
	case KindI64:
		return reflect.TypeOf((*int64)(nil)).Elem()
	case KindU64:
		return reflect.TypeOf((*uint64)(nil)).Elem()
	case KindF32:
		return reflect.TypeOf((*float32)(nil)).Elem()
	case KindF64:
		return reflect.TypeOf((*float64)(nil)).Elem()
	case KindPtr:
		return typemap.PointerType
	}
	return nil
}

// direct reports whether a Go type can hold values of k without a mapping.
func (k Kind) direct(t reflect.Type) bool {
	switch k {
	case KindI8:
		return t.Kind() == reflect.Int8
	case KindU8:
		return t.Kind() == reflect.Uint8
	case KindI16:
		return t.Kind() == reflect.Int16
	case KindU16:
		return t.Kind() == reflect.Uint16
	case KindI32:
		return t.Kind() == reflect.Int32
	case KindU32:
		return t.Kind() == reflect.Uint32
	case KindI64:
		return t.Kind() == reflect.Int64
	case KindU64:
		return t.Kind() == reflect.Uint64
	case KindF32:
		return t.Kind() == reflect.Float32
	case KindF64:
		return t.Kind() == reflect.Float64
	case KindPtr:
		switch t.Kind() {
		case reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return true
		}
		return false
	case KindVec2, KindVec3, KindVec4, KindQuat:
		return t.Kind() == reflect.Array && t.Len() == k.Components() && t.Elem().Kind() == reflect.Float32
	}
	return false
}
