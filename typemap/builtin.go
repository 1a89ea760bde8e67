package typemap

import (
	"github.com/wippyai/gameres/resource"
)

// References maps a pointer slot to a resolved *resource.Reference.
// A raw value of zero is the null reference and never reaches the
// context.
type References struct{}

func (References) FromRaw(raw uint64, offset int64, ctx Context) (*resource.Reference, error) {
	if raw == 0 {
		return nil, nil
	}
	r, ok := ctx.(Resolver)
	if !ok {
		return nil, nil
	}
	return r.Resolve(r.Base()+offset, raw)
}

func (References) ToRaw(ref *resource.Reference, offset int64, ctx Context) (uint64, error) {
	if ref == nil {
		return 0, nil
	}
	rel, ok := ctx.(Relocator)
	if !ok {
		return 0, nil
	}
	return rel.Relocate(rel.Base()+offset, ref)
}

// Bools maps any nonzero integer to true. It needs no context.
type Bools struct{}

func (Bools) FromRaw(raw uint64, _ int64, _ Context) (bool, error) {
	return raw != 0, nil
}

func (Bools) ToRaw(v bool, _ int64, _ Context) (uint64, error) {
	if v {
		return 1, nil
	}
	return 0, nil
}
