package layout

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/resource"
	"github.com/wippyai/gameres/typemap"
)

// Schema collects the declaration of one struct type. It is used once per
// type, typically from a package-level var, and turned into an immutable
// Descriptor by Register or Compile.
type Schema[T any] struct {
	name    string
	fields  []Field
	flags   []Flag
	size32  int
	size64  int
	hasSize bool
	packed  bool
}

// Define starts a schema for T under the given name.
func Define[T any](name string) *Schema[T] {
	return &Schema[T]{name: name}
}

// Fields appends field declarations in on-disk order.
func (s *Schema[T]) Fields(fields ...Field) *Schema[T] {
	s.fields = append(s.fields, fields...)
	return s
}

// Flag declares a boolean view of one bit of an integer field.
func (s *Schema[T]) Flag(name, field string, bit uint) *Schema[T] {
	s.flags = append(s.flags, Flag{Name: name, Field: field, Bit: bit})
	return s
}

// Packed disables alignment padding.
func (s *Schema[T]) Packed() *Schema[T] {
	s.packed = true
	return s
}

// Size declares the expected total size in the 32-bit and 64-bit
// profiles. Compilation fails when the computed sizes differ.
func (s *Schema[T]) Size(size32, size64 int) *Schema[T] {
	s.size32, s.size64 = size32, size64
	s.hasSize = true
	return s
}

// Compile builds the descriptor without adding it to the type table. Use
// it for per-generation variants that share a Go type.
func (s *Schema[T]) Compile() (*Descriptor, error) {
	goType := reflect.TypeOf((*T)(nil)).Elem()
	if goType.Kind() != reflect.Struct {
		return nil, errors.New(errors.PhaseLayout, errors.KindTypeMismatch).
			GoType(goType.String()).
			Struct(s.name).
			Detail("descriptor target must be a struct").
			Build()
	}
	if !s.hasSize {
		return nil, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			Struct(s.name).
			Detail("no declared size").
			Build()
	}

	bound, err := bind(goType, s.name, s.fields)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{
		name:   s.name,
		goType: goType,
		fields: append([]Field(nil), s.fields...),
		packed: s.packed,
		flags:  make(map[string]Flag, len(s.flags)),
	}

	d.layouts[resource.Width32.Index()] = compile[profile32](bound, s.packed)
	d.layouts[resource.Width64.Index()] = compile[profile64](bound, s.packed)

	for i, want := range [2]int{s.size32, s.size64} {
		w := resource.Widths[i]
		if got := d.layouts[w.Index()].Size; got != want {
			return nil, errors.LayoutMismatch(s.name, w.Bytes(), want, got)
		}
	}

	for _, f := range s.flags {
		if err := d.addFlag(f); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Register compiles the descriptor and adds it to the type table.
func (s *Schema[T]) Register() (*Descriptor, error) {
	d, err := s.Compile()
	if err != nil {
		return nil, err
	}
	if err := register(d); err != nil {
		return nil, err
	}
	Logger().Debug("descriptor registered",
		zap.String("name", d.name),
		zap.String("go_type", d.goType.String()),
		zap.Int("size32", d.Size(resource.Width32)),
		zap.Int("size64", d.Size(resource.Width64)))
	return d, nil
}

// MustRegister is Register that panics on error. Declared sizes that
// drift from the computed layout therefore stop the program at init.
func (s *Schema[T]) MustRegister() *Descriptor {
	d, err := s.Register()
	if err != nil {
		panic(err)
	}
	return d
}

// MustCompile is Compile that panics on error.
func (s *Schema[T]) MustCompile() *Descriptor {
	d, err := s.Compile()
	if err != nil {
		panic(err)
	}
	return d
}

type binding struct {
	conv  typemap.Converter
	index []int
	field Field
}

func bind(goType reflect.Type, structName string, fields []Field) ([]binding, error) {
	bound := make([]binding, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		if f.Kind == KindPad {
			if f.Count <= 0 {
				return nil, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
					Struct(structName).
					Detail("padding of %d bytes", f.Count).
					Build()
			}
			bound = append(bound, binding{field: f})
			continue
		}

		path := []string{structName, f.Name}
		if _, dup := seen[f.Name]; dup {
			return nil, errors.New(errors.PhaseLayout, errors.KindDuplicate).
				Path(path...).
				Detail("field declared twice").
				Build()
		}
		seen[f.Name] = struct{}{}

		sf, ok := goType.FieldByName(f.Name)
		if !ok || !sf.IsExported() {
			return nil, errors.FieldMissing(errors.PhaseLayout, path, f.Name)
		}

		t := sf.Type
		if f.isArray() {
			if t.Kind() != reflect.Array || t.Len() != f.Count {
				return nil, errors.New(errors.PhaseLayout, errors.KindTypeMismatch).
					Path(path...).
					GoType(t.String()).
					Detail("expected array of %d %s", f.Count, f.Kind).
					Build()
			}
			t = t.Elem()
		}

		b := binding{field: f, index: sf.Index}
		switch {
		case f.Kind == KindStruct:
			if f.Elem == nil || f.Elem.goType != t {
				return nil, errors.TypeMismatch(errors.PhaseLayout, path, t.String(), nestedName(f.Elem))
			}
		case f.Kind.direct(t):
		default:
			raw := f.Kind.rawType()
			if raw == nil {
				return nil, errors.TypeMismatch(errors.PhaseLayout, path, t.String(), structName)
			}
			conv, ok := typemap.Find(raw, t)
			if !ok {
				return nil, errors.New(errors.PhaseLayout, errors.KindTypeMismatch).
					Path(path...).
					GoType(t.String()).
					Detail("no mapping from %s", f.Kind).
					Build()
			}
			b.conv = conv
		}
		bound = append(bound, b)
	}
	return bound, nil
}

func nestedName(d *Descriptor) string {
	if d == nil {
		return "<nil>"
	}
	return d.name
}

// profile fixes the pointer width a layout is compiled for. Both layouts
// of a descriptor come from the same field list through compile.
type profile interface {
	width() resource.Width
}

type profile32 struct{}

func (profile32) width() resource.Width { return resource.Width32 }

type profile64 struct{}

func (profile64) width() resource.Width { return resource.Width64 }

func compile[P profile](bound []binding, packed bool) *Layout {
	var p P
	w := p.width()

	l := &Layout{
		Width: w,
		Align: 1,
		Slots: make([]Slot, 0, len(bound)),
	}

	offset := 0
	for _, b := range bound {
		f := b.field
		slot := Slot{
			Name:  f.Name,
			Kind:  f.Kind,
			Count: f.Count,
			Index: b.index,
			Conv:  b.conv,
		}

		var align int
		if f.Kind == KindStruct {
			slot.Nested = f.Elem.Layout(w)
			slot.Elem = slot.Nested.Size
			align = slot.Nested.Align
		} else {
			slot.Elem = f.Kind.elemSize(w)
			align = f.Kind.elemAlign(w)
		}
		if packed {
			align = 1
		}

		offset = alignTo(offset, align)
		slot.Offset = offset
		slot.Size = slot.Elem * f.elems()
		offset += slot.Size

		if align > l.Align {
			l.Align = align
		}
		l.Slots = append(l.Slots, slot)
	}

	l.Size = alignTo(offset, l.Align)
	return l
}

func alignTo(offset, align int) int {
	if align <= 1 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
