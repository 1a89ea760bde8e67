package resource

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the resource type tag stored in reference section entries.
type Type uint32

const (
	TypeUnknown Type = iota
	TypeModel
	TypeSkeleton
	TypeMaterial
	TypeTexture
	TypeAnimation
	TypeCloth
	TypeShader
)

var typeNames = [...]string{
	TypeUnknown:   "unknown",
	TypeModel:     "model",
	TypeSkeleton:  "skeleton",
	TypeMaterial:  "material",
	TypeTexture:   "texture",
	TypeAnimation: "animation",
	TypeCloth:     "cloth",
	TypeShader:    "shader",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "type(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// ParseType accepts a type name or a decimal tag.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return TypeUnknown, fmt.Errorf("unknown resource type %q", s)
	}
	return Type(n), nil
}

// Key identifies a resource. It is comparable and safe to use as a map key.
type Key struct {
	Type Type
	ID   uint64
}

// NewKey returns the key for (t, id).
func NewKey(t Type, id uint64) Key {
	return Key{Type: t, ID: id}
}

func (k Key) String() string {
	return k.Type.String() + "#" + strconv.FormatUint(k.ID, 10)
}

// Reference addresses a byte offset inside the body of a resource.
// Two references are equal when key and offset are equal.
type Reference struct {
	Key
	Offset int64
}

// NewReference returns a reference to offset within the body of key.
func NewReference(key Key, offset int64) *Reference {
	return &Reference{Key: key, Offset: offset}
}

func (r Reference) String() string {
	return fmt.Sprintf("%s+%#x", r.Key, r.Offset)
}

// Width is the on-disk pointer size of an address-width profile.
type Width uint8

const (
	Width32 Width = 4
	Width64 Width = 8
)

// Widths lists the supported profiles in index order.
var Widths = [...]Width{Width32, Width64}

// Bytes returns the pointer size in bytes.
func (w Width) Bytes() int {
	return int(w)
}

// Index returns 0 for the 32-bit profile and 1 for the 64-bit profile.
func (w Width) Index() int {
	if w == Width64 {
		return 1
	}
	return 0
}

// Valid reports whether w is one of the supported profiles.
func (w Width) Valid() bool {
	return w == Width32 || w == Width64
}

func (w Width) String() string {
	switch w {
	case Width32:
		return "32-bit"
	case Width64:
		return "64-bit"
	default:
		return "width(" + strconv.Itoa(int(w)) + ")"
	}
}

// WidthFromBits maps 32 or 64 to a profile.
func WidthFromBits(bits int) (Width, error) {
	switch bits {
	case 32:
		return Width32, nil
	case 64:
		return Width64, nil
	default:
		return 0, fmt.Errorf("unsupported address width %d", bits)
	}
}
