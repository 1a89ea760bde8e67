package layout

// Field declares one member of a struct layout. Fields bind by Name to an
// exported field of the Go struct being described.
type Field struct {
	Elem  *Descriptor // KindStruct only
	Name  string
	Count int // fixed array length, 0 for a single value
	Kind  Kind
}

func scalar(name string, k Kind) Field {
	return Field{Name: name, Kind: k}
}

func I8(name string) Field  { return scalar(name, KindI8) }
func U8(name string) Field  { return scalar(name, KindU8) }
func I16(name string) Field { return scalar(name, KindI16) }
func U16(name string) Field { return scalar(name, KindU16) }
func I32(name string) Field { return scalar(name, KindI32) }
func U32(name string) Field { return scalar(name, KindU32) }
func I64(name string) Field { return scalar(name, KindI64) }
func U64(name string) Field { return scalar(name, KindU64) }
func F32(name string) Field { return scalar(name, KindF32) }
func F64(name string) Field { return scalar(name, KindF64) }

// Ptr declares a pointer-sized slot: 4 bytes in the 32-bit profile and 8
// in the 64-bit profile. Bind it to *resource.Reference to get resolved
// references, or to an unsigned integer to see the raw value.
func Ptr(name string) Field { return scalar(name, KindPtr) }

// Vec2, Vec3, Vec4 and Quat declare float32 composites of fixed size in
// both profiles.
func Vec2(name string) Field { return scalar(name, KindVec2) }
func Vec3(name string) Field { return scalar(name, KindVec3) }
func Vec4(name string) Field { return scalar(name, KindVec4) }
func Quat(name string) Field { return scalar(name, KindQuat) }

// Nested embeds another registered struct inline.
func Nested(name string, d *Descriptor) Field {
	return Field{Name: name, Kind: KindStruct, Elem: d}
}

// Pad declares n anonymous bytes.
func Pad(n int) Field {
	return Field{Kind: KindPad, Count: n}
}

// Array turns f into a fixed-length array of n elements. The Go field
// must be an array of length n.
func Array(f Field, n int) Field {
	f.Count = n
	return f
}

func (f Field) isArray() bool {
	return f.Count > 0 && f.Kind != KindPad
}

func (f Field) elems() int {
	if f.Count > 0 {
		return f.Count
	}
	return 1
}
