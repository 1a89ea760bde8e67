package layout

import (
	"reflect"
	"sort"
	"sync"

	"github.com/wippyai/gameres/errors"
)

var (
	byType sync.Map // reflect.Type -> *Descriptor
	byName sync.Map // string -> *Descriptor
)

func register(d *Descriptor) error {
	if _, loaded := byType.LoadOrStore(d.goType, d); loaded {
		return errors.New(errors.PhaseLayout, errors.KindDuplicate).
			GoType(d.goType.String()).
			Struct(d.name).
			Detail("type already has a descriptor").
			Build()
	}
	if _, loaded := byName.LoadOrStore(d.name, d); loaded {
		byType.Delete(d.goType)
		return errors.New(errors.PhaseLayout, errors.KindDuplicate).
			Struct(d.name).
			Detail("name already registered").
			Build()
	}
	return nil
}

// Lookup returns the registered descriptor for t. Pointer types resolve
// to their element type.
func Lookup(t reflect.Type) (*Descriptor, bool) {
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	d, ok := byType.Load(t)
	if !ok {
		return nil, false
	}
	return d.(*Descriptor), true
}

// For returns the registered descriptor for T.
func For[T any]() (*Descriptor, bool) {
	return Lookup(reflect.TypeOf((*T)(nil)).Elem())
}

// ByName returns the descriptor registered under name.
func ByName(name string) (*Descriptor, bool) {
	d, ok := byName.Load(name)
	if !ok {
		return nil, false
	}
	return d.(*Descriptor), true
}

// Registered returns all registered descriptors ordered by name.
func Registered() []*Descriptor {
	var out []*Descriptor
	byName.Range(func(_, v any) bool {
		out = append(out, v.(*Descriptor))
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
