package layout

import (
	"reflect"

	"github.com/wippyai/gameres/errors"
)

// Flag is a named boolean view of one bit of an integer field. It has no
// storage of its own.
type Flag struct {
	Name  string
	Field string
	Bit   uint
}

// Mask returns the bit mask of the flag.
func (f Flag) Mask() uint64 {
	return 1 << f.Bit
}

// Integer is the set of types a flag can live in.
type Integer interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// Bit reports whether bit is set in v.
func Bit[T Integer](v T, bit uint) bool {
	return (v>>bit)&1 == 1
}

// SetBit returns v with only bit changed.
func SetBit[T Integer](v T, bit uint, on bool) T {
	if on {
		return v | T(1)<<bit
	}
	return v &^ (T(1) << bit)
}

func (d *Descriptor) addFlag(f Flag) error {
	path := []string{d.name, f.Name}
	if _, dup := d.flags[f.Name]; dup {
		return errors.New(errors.PhaseLayout, errors.KindDuplicate).
			Path(path...).
			Detail("flag declared twice").
			Build()
	}

	var backing *Field
	for i := range d.fields {
		if d.fields[i].Name == f.Field {
			backing = &d.fields[i]
			break
		}
	}
	if backing == nil {
		return errors.FieldMissing(errors.PhaseLayout, path, f.Field)
	}
	if !backing.Kind.IsInteger() || backing.isArray() {
		return errors.New(errors.PhaseLayout, errors.KindTypeMismatch).
			Path(path...).
			Detail("flag field %q is %s, want scalar integer", f.Field, backing.Kind).
			Build()
	}
	if bits := uint(backing.Kind.elemSize(0) * 8); f.Bit >= bits {
		return errors.Overflow(errors.PhaseLayout, path, f.Bit, backing.Kind.String())
	}

	sf, _ := d.goType.FieldByName(f.Field)
	if !isIntKind(sf.Type.Kind()) {
		return errors.TypeMismatch(errors.PhaseLayout, path, sf.Type.String(), d.name)
	}

	d.flags[f.Name] = f
	d.order = append(d.order, f)
	return nil
}

// Flags returns the declared flag views in declaration order.
func (d *Descriptor) Flags() []Flag {
	out := make([]Flag, len(d.order))
	copy(out, d.order)
	return out
}

// Flag reads the named flag from v, which may be a struct value or a
// pointer to one.
func (d *Descriptor) Flag(v any, name string) (bool, error) {
	f, field, err := d.flagField(reflect.ValueOf(v), name)
	if err != nil {
		return false, err
	}
	return (readInt(field)>>f.Bit)&1 == 1, nil
}

// SetFlag sets or clears the named flag in *ptr. Other bits of the
// backing field are left untouched.
func (d *Descriptor) SetFlag(ptr any, name string, on bool) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			Struct(d.name).
			Detail("SetFlag needs a non-nil pointer").
			Build()
	}
	f, field, err := d.flagField(rv, name)
	if err != nil {
		return err
	}
	writeInt(field, SetBit(readInt(field), f.Bit, on))
	return nil
}

func (d *Descriptor) flagField(rv reflect.Value, name string) (Flag, reflect.Value, error) {
	f, ok := d.flags[name]
	if !ok {
		return Flag{}, reflect.Value{}, errors.NotFound(errors.PhaseLayout, "flag", name)
	}
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return Flag{}, reflect.Value{}, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			Struct(d.name).
			Detail("nil value").
			Build()
	}
	if rv.Type() != d.goType {
		return Flag{}, reflect.Value{}, errors.TypeMismatch(errors.PhaseLayout, []string{d.name, name}, rv.Type().String(), d.name)
	}
	return f, rv.FieldByName(f.Field), nil
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func readInt(v reflect.Value) uint64 {
	if v.CanUint() {
		return v.Uint()
	}
	return uint64(v.Int())
}

func writeInt(v reflect.Value, x uint64) {
	if v.CanUint() {
		v.SetUint(x)
		return
	}
	v.SetInt(int64(x))
}
