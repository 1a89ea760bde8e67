package layout

import (
	"reflect"

	"github.com/wippyai/gameres/resource"
	"github.com/wippyai/gameres/typemap"
)

// Slot is a compiled field: where it lives in one profile and how it maps
// to the Go struct.
type Slot struct {
	Conv   typemap.Converter // nil when the Go type stores the raw value directly
	Nested *Layout           // KindStruct only, same profile
	Name   string
	Index  []int // Go field index, nil for padding
	Offset int
	Size   int // total bytes, Elem * max(Count, 1)
	Elem   int
	Count  int
	Kind   Kind
}

// IsArray reports whether the slot holds a fixed-length array.
func (s *Slot) IsArray() bool {
	return s.Count > 0 && s.Kind != KindPad
}

// Layout is the byte layout of a struct in one address-width profile.
type Layout struct {
	Slots []Slot
	Size  int
	Align int
	Width resource.Width
}

// Slot returns the slot for a named field.
func (l *Layout) Slot(name string) (*Slot, bool) {
	for i := range l.Slots {
		if l.Slots[i].Name == name && name != "" {
			return &l.Slots[i], true
		}
	}
	return nil, false
}

// Descriptor is the immutable compiled description of one struct type.
type Descriptor struct {
	goType  reflect.Type
	flags   map[string]Flag
	order   []Flag
	layouts [2]*Layout
	name    string
	fields  []Field
	packed  bool
}

// Name returns the schema name the descriptor was registered with.
func (d *Descriptor) Name() string { return d.name }

// GoType returns the described struct type.
func (d *Descriptor) GoType() reflect.Type { return d.goType }

// Packed reports whether alignment padding is disabled.
func (d *Descriptor) Packed() bool { return d.packed }

// Layout returns the compiled layout for profile w.
func (d *Descriptor) Layout(w resource.Width) *Layout {
	return d.layouts[w.Index()]
}

// Size returns the struct size in profile w.
func (d *Descriptor) Size(w resource.Width) int {
	return d.layouts[w.Index()].Size
}

// Fields returns the declared field list.
func (d *Descriptor) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// New allocates a zero value of the described type and returns a pointer
// to it.
func (d *Descriptor) New() any {
	return reflect.New(d.goType).Interface()
}

// HasReferences reports whether any slot, including nested ones, holds a
// resolved reference.
func (d *Descriptor) HasReferences() bool {
	return hasReferences(d.layouts[0])
}

func hasReferences(l *Layout) bool {
	for i := range l.Slots {
		s := &l.Slots[i]
		if s.Kind == KindPtr && s.Conv != nil {
			return true
		}
		if s.Nested != nil && hasReferences(s.Nested) {
			return true
		}
	}
	return false
}
