package codec

import (
	"math"
	"reflect"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/layout"
	"github.com/wippyai/gameres/resource"
)

// Placeholder is a reserved pointer slot whose target offset is assigned
// after the slot was written. The slot is patched by Builder.Build.
type Placeholder struct {
	Target resource.Key
	site   int64
	offset int64
	set    bool
}

// Set assigns the body offset the slot points to within Target.
func (p *Placeholder) Set(offset int64) {
	p.offset = offset
	p.set = true
}

// Offset returns the assigned offset and whether Set was called.
func (p *Placeholder) Offset() (int64, bool) {
	return p.offset, p.set
}

// Site returns the body offset of the reserved slot.
func (p *Placeholder) Site() int64 {
	return p.site
}

type relocation struct {
	ph     *Placeholder
	target resource.Reference
}

type staged struct {
	site int64
	rel  relocation
}

// Builder serializes structs into a resource body and tracks the
// relocation table emitted by Build. Positions are body-relative.
//
// A Builder is used for a single encode and is not safe for concurrent
// use.
type Builder struct {
	relocs  map[int64]relocation
	body    []byte
	staged  []staged
	key     resource.Key
	pos     int64
	base    int64
	width   resource.Width
	staging bool
}

// NewBuilder returns an empty builder for the resource key in profile
// width.
func NewBuilder(key resource.Key, width resource.Width) (*Builder, error) {
	if !width.Valid() {
		return nil, errors.InvalidInput(errors.PhaseEncode, "unsupported address width "+width.String())
	}
	return &Builder{
		relocs: make(map[int64]relocation),
		key:    key,
		width:  width,
	}, nil
}

// Key returns the identity of the resource being built.
func (b *Builder) Key() resource.Key { return b.key }

// Width returns the address-width profile.
func (b *Builder) Width() resource.Width { return b.width }

// Pos returns the write cursor.
func (b *Builder) Pos() int64 { return b.pos }

// Len returns the current body size.
func (b *Builder) Len() int64 { return int64(len(b.body)) }

// Base returns the position of the struct currently being encoded.
func (b *Builder) Base() int64 { return b.base }

// Seek moves the write cursor. Writing before the end of the body
// overwrites bytes and drops relocations of overwritten slots.
func (b *Builder) Seek(pos int64) error {
	if pos < 0 || pos > int64(len(b.body)) {
		return errors.OutOfBounds(errors.PhaseEncode, pathOf("seek"), pos, 0, int64(len(b.body)))
	}
	b.pos = pos
	return nil
}

// reserve returns the n bytes at the cursor, extending the body with
// zeros as needed, and advances the cursor.
func (b *Builder) reserve(n int) []byte {
	start := b.pos
	end := start + int64(n)
	size := int64(len(b.body))

	if start < size {
		b.forget(start, min(end, size))
	}
	if end > size {
		b.body = slices.Grow(b.body, int(end-size))
		b.body = b.body[:end]
		clear(b.body[size:end])
	}
	b.pos = end
	return b.body[start:end]
}

// forget drops relocations whose slot overlaps [start, end).
func (b *Builder) forget(start, end int64) {
	w := int64(b.width.Bytes())
	for site := range b.relocs {
		if site < end && site+w > start {
			delete(b.relocs, site)
		}
	}
}

// Relocate records that the slot at site refers to ref and returns the
// raw slot value.
func (b *Builder) Relocate(site int64, ref *resource.Reference) (uint64, error) {
	if ref == nil {
		return 0, nil
	}
	raw, err := b.slot(ref.Offset)
	if err != nil {
		return 0, err
	}
	rel := relocation{target: *ref}
	if b.staging {
		b.staged = append(b.staged, staged{site: site, rel: rel})
	} else {
		b.relocs[site] = rel
	}
	return raw, nil
}

func (b *Builder) slot(offset int64) (uint64, error) {
	if offset < 0 {
		return 0, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Value(offset).
			Detail("negative reference offset %d", offset).
			Build()
	}
	raw := slotValue(offset)
	if !fitsWord(b.width, raw) {
		return 0, errors.Overflow(errors.PhaseEncode, nil, offset, b.width.String()+" pointer")
	}
	return raw, nil
}

// WriteStruct serializes v, a value of or pointer to desc's Go type, at
// the cursor. Reference fields register relocations at their write sites.
// On error nothing is written.
func (b *Builder) WriteStruct(desc *layout.Descriptor, v any) error {
	rv, err := target(desc, v, errors.PhaseEncode, false)
	if err != nil {
		return err
	}

	l := desc.Layout(b.width)
	scratch := make([]byte, l.Size)

	b.base = b.pos
	b.staged = b.staged[:0]
	b.staging = true
	err = encodeStruct(l, scratch, 0, rv, b, nil)
	b.staging = false
	if err != nil {
		return withStruct(err, desc.Name())
	}

	copy(b.reserve(l.Size), scratch)
	for _, s := range b.staged {
		b.relocs[s.site] = s.rel
	}
	return nil
}

// Write serializes v using the descriptor registered for its type.
func (b *Builder) Write(v any) error {
	if v == nil {
		return errors.InvalidInput(errors.PhaseEncode, "nil value")
	}
	desc, err := descriptorFor(reflect.TypeOf(v), errors.PhaseEncode)
	if err != nil {
		return err
	}
	return b.WriteStruct(desc, v)
}

// WriteArray serializes every element of vs back to back.
func WriteArray[T any](b *Builder, vs []T) error {
	desc, err := descriptorFor(reflect.TypeOf((*T)(nil)).Elem(), errors.PhaseEncode)
	if err != nil {
		return err
	}
	for i := range vs {
		if err := b.WriteStruct(desc, &vs[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteRef writes a pointer slot referring to ref. A nil ref writes a
// null slot.
func (b *Builder) WriteRef(ref *resource.Reference) error {
	var raw uint64
	if ref != nil {
		var err error
		if raw, err = b.slot(ref.Offset); err != nil {
			return err
		}
	}
	site := b.pos
	putWord(b.reserve(b.width.Bytes()), b.width, raw)
	if ref != nil {
		b.relocs[site] = relocation{target: *ref}
	}
	return nil
}

// WriteLocalRef reserves a slot pointing into this resource. The caller
// sets the target offset once the section it points at is written.
func (b *Builder) WriteLocalRef() *Placeholder {
	return b.WriteInternalRef(b.key)
}

// WriteInternalRef reserves a slot pointing into resource key.
func (b *Builder) WriteInternalRef(key resource.Key) *Placeholder {
	site := b.pos
	b.reserve(b.width.Bytes())
	p := &Placeholder{Target: key, site: site}
	b.relocs[site] = relocation{ph: p}
	return p
}

// Align pads the body with zeros up to the next multiple of n.
func (b *Builder) Align(n int) {
	if pad := alignTo(b.pos, n) - b.pos; pad > 0 {
		b.reserve(int(pad))
	}
}

func (b *Builder) WriteBytes(p []byte) {
	copy(b.reserve(len(p)), p)
}

func (b *Builder) WriteU8(v uint8) {
	b.reserve(1)[0] = v
}

func (b *Builder) WriteU16(v uint16) {
	ByteOrder.PutUint16(b.reserve(2), v)
}

func (b *Builder) WriteU32(v uint32) {
	ByteOrder.PutUint32(b.reserve(4), v)
}

func (b *Builder) WriteU64(v uint64) {
	ByteOrder.PutUint64(b.reserve(8), v)
}

func (b *Builder) WriteF32(v float32) {
	b.WriteU32(math.Float32bits(v))
}

// Build patches placeholder slots and returns the reference section
// followed by the body. Build does not modify the builder and may be
// called again after further writes.
func (b *Builder) Build() ([]byte, error) {
	sites := make([]int64, 0, len(b.relocs))
	for site := range b.relocs {
		sites = append(sites, site)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i] < sites[j] })

	w := b.width.Bytes()
	header := SectionSize(b.width, len(sites))
	out := make([]byte, header+len(b.body))
	body := out[header:]
	copy(body, b.body)
	putWord(out, b.width, uint64(len(sites)))

	for i, site := range sites {
		rel := b.relocs[site]
		ref := rel.target
		if p := rel.ph; p != nil {
			if !p.set {
				return nil, errors.UnresolvedReference(site, p.Target.String())
			}
			if p.Target == b.key && p.offset > int64(len(b.body)) {
				return nil, errors.New(errors.PhaseBuild, errors.KindOutOfBounds).
					Value(p.offset).
					Detail("local reference at %#x targets %#x past body end %#x", site, p.offset, len(b.body)).
					Build()
			}
			raw, err := b.slot(p.offset)
			if err != nil {
				return nil, withPhase(err, errors.PhaseBuild)
			}
			putWord(body[site:], b.width, raw)
			ref = resource.Reference{Key: p.Target, Offset: p.offset}
		}

		if !fitsWord(b.width, uint64(site)) || !fitsWord(b.width, ref.ID) {
			return nil, errors.New(errors.PhaseBuild, errors.KindOverflow).
				Value(ref.ID).
				Detail("entry %s at %#x does not fit the %s reference section", ref.Key, site, b.width).
				Build()
		}

		e := out[w+i*entrySize(b.width):]
		putWord(e, b.width, uint64(site))
		ByteOrder.PutUint32(e[w:], uint32(ref.Type))
		if b.width == resource.Width64 {
			ByteOrder.PutUint64(e[16:], ref.ID)
		} else {
			ByteOrder.PutUint32(e[8:], uint32(ref.ID))
		}
	}

	Logger().Debug("resource built",
		zap.Stringer("key", b.key),
		zap.Stringer("width", b.width),
		zap.Int("references", len(sites)),
		zap.Int("body", len(b.body)),
	)
	return out, nil
}

func withPhase(err error, phase errors.Phase) error {
	if e, ok := err.(*errors.Error); ok {
		e.Phase = phase
	}
	return err
}
