package typemap

import (
	"reflect"
	"sync"

	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/resource"
)

// Pointer is the raw storage type of a pointer-sized slot. Its on-disk
// width depends on the address-width profile.
type Pointer uint64

// Context is the live reader or builder a mapping runs against. Base is
// the absolute position of the struct currently being processed.
type Context interface {
	Base() int64
}

// Resolver is implemented by readers.
type Resolver interface {
	Context
	// Resolve returns the reference stored in the slot at absolute
	// position site whose raw value is raw.
	Resolve(site int64, raw uint64) (*resource.Reference, error)
}

// Relocator is implemented by builders.
type Relocator interface {
	Context
	// Relocate records that the slot at absolute position site refers to
	// ref and returns the raw value to store in the slot.
	Relocate(site int64, ref *resource.Reference) (uint64, error)
}

// Mapping converts between a raw stored integer and a Go value of type M.
// offset is the field's byte offset within its struct. Implementations
// return the zero M (or 0) when ctx is not the kind of context they
// understand, so descriptors also work for pure in-memory construction.
type Mapping[M any] interface {
	FromRaw(raw uint64, offset int64, ctx Context) (M, error)
	ToRaw(v M, offset int64, ctx Context) (uint64, error)
}

// Converter is a type-erased Mapping bound to a (raw, mapped) pair.
type Converter interface {
	Raw() reflect.Type
	Mapped() reflect.Type
	FromRaw(raw uint64, offset int64, ctx Context) (reflect.Value, error)
	ToRaw(v reflect.Value, offset int64, ctx Context) (uint64, error)
}

type converter[M any] struct {
	raw    reflect.Type
	mapped reflect.Type
	m      Mapping[M]
}

func (c *converter[M]) Raw() reflect.Type    { return c.raw }
func (c *converter[M]) Mapped() reflect.Type { return c.mapped }

func (c *converter[M]) FromRaw(raw uint64, offset int64, ctx Context) (reflect.Value, error) {
	v, err := c.m.FromRaw(raw, offset, ctx)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(&v).Elem(), nil
}

func (c *converter[M]) ToRaw(v reflect.Value, offset int64, ctx Context) (uint64, error) {
	m, ok := v.Interface().(M)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, v.Type().String(), c.mapped.String())
	}
	return c.m.ToRaw(m, offset, ctx)
}

type pair struct {
	raw    reflect.Type
	mapped reflect.Type
}

var registry sync.Map // pair -> Converter

// Register installs m for fields stored as raw and exposed as M. It is
// meant to be called from package init; registering the same pair twice
// is an error.
func Register[M any](raw reflect.Type, m Mapping[M]) error {
	mapped := reflect.TypeOf((*M)(nil)).Elem()
	c := &converter[M]{raw: raw, mapped: mapped, m: m}
	if _, loaded := registry.LoadOrStore(pair{raw: raw, mapped: mapped}, c); loaded {
		return errors.New(errors.PhaseLayout, errors.KindDuplicate).
			GoType(mapped.String()).
			Detail("mapping from %s already registered", raw).
			Build()
	}
	return nil
}

// MustRegister is Register that panics on error.
func MustRegister[M any](raw reflect.Type, m Mapping[M]) {
	if err := Register(raw, m); err != nil {
		panic(err)
	}
}

// Find returns the converter registered for (raw, mapped).
func Find(raw, mapped reflect.Type) (Converter, bool) {
	c, ok := registry.Load(pair{raw: raw, mapped: mapped})
	if !ok {
		return nil, false
	}
	return c.(Converter), true
}

var (
	PointerType   = reflect.TypeOf((*Pointer)(nil)).Elem()
	ReferenceType = reflect.TypeOf((**resource.Reference)(nil)).Elem()
)

func init() {
	MustRegister[*resource.Reference](PointerType, References{})
	MustRegister[bool](reflect.TypeOf((*uint8)(nil)).Elem(), Bools{})
	MustRegister[bool](reflect.TypeOf((*uint16)(nil)).Elem(), Bools{})
	MustRegister[bool](reflect.TypeOf((*uint32)(nil)).Elem(), Bools{})
}
