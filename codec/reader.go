package codec

import (
	"fmt"
	"math"
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/layout"
	"github.com/wippyai/gameres/resource"
)

// Reader decodes one resource buffer. Positions are absolute offsets into
// the buffer; reference offsets are relative to the body start.
//
// A Reader is used for a single decode and is not safe for concurrent use.
type Reader struct {
	buf   []byte
	table *resource.Table
	key   resource.Key
	pos   int64
	body  int64
	base  int64
	width resource.Width
}

// NewReader parses the reference section of buf and positions the cursor
// at the start of the body.
func NewReader(buf []byte, key resource.Key, width resource.Width) (*Reader, error) {
	if !width.Valid() {
		return nil, errors.InvalidInput(errors.PhaseDecode, "unsupported address width "+width.String())
	}

	w := width.Bytes()
	size := int64(len(buf))
	if size < int64(w) {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path("references").
			Detail("buffer of %d bytes has no reference count", size).
			Build()
	}

	count := getWord(buf, width)
	es := uint64(entrySize(width))
	if count > uint64(size-int64(w))/es {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path("references").
			Value(count).
			Detail("%d reference entries exceed buffer of %d bytes", count, size).
			Build()
	}

	body := int64(w) + int64(count*es)
	entries := make([]resource.Entry, 0, count)
	for i := uint64(0); i < count; i++ {
		e := buf[int64(w)+int64(i*es):]
		site := getWord(e, width)
		typ := resource.Type(ByteOrder.Uint32(e[w:]))
		var id uint64
		if width == resource.Width64 {
			id = ByteOrder.Uint64(e[16:])
		} else {
			id = uint64(ByteOrder.Uint32(e[8:]))
		}

		if site > uint64(size-body) || int64(site) > size-body-int64(w) {
			e := errors.InvalidData(errors.PhaseDecode, []string{"references"},
				fmt.Sprintf("entry %d site %#x lies outside the body", i, site))
			e.Value = site
			return nil, e
		}
		entries = append(entries, resource.Entry{
			Site: body + int64(site),
			Key:  resource.NewKey(typ, id),
		})
	}

	table, err := resource.NewTable(entries)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "reference section")
	}

	Logger().Debug("reference section decoded",
		zap.Stringer("key", key),
		zap.Stringer("width", width),
		zap.Int("references", table.Len()),
		zap.Int64("body", body),
	)

	return &Reader{
		buf:   buf,
		table: table,
		key:   key,
		pos:   body,
		body:  body,
		base:  body,
		width: width,
	}, nil
}

// Key returns the identity of the resource being decoded.
func (r *Reader) Key() resource.Key { return r.key }

// Width returns the address-width profile.
func (r *Reader) Width() resource.Width { return r.width }

// Pos returns the cursor position.
func (r *Reader) Pos() int64 { return r.pos }

// BodyStart returns the position of the first body byte.
func (r *Reader) BodyStart() int64 { return r.body }

// Len returns the buffer size.
func (r *Reader) Len() int64 { return int64(len(r.buf)) }

// Remaining returns the number of bytes after the cursor.
func (r *Reader) Remaining() int64 { return int64(len(r.buf)) - r.pos }

// References returns the pending-reference table. Sites are absolute.
func (r *Reader) References() *resource.Table { return r.table }

// Base returns the position of the struct currently being decoded.
func (r *Reader) Base() int64 { return r.base }

// Resolve looks up the reference stored at site. A zero raw value is the
// null reference; a nonzero value without a table entry is corrupt data.
func (r *Reader) Resolve(site int64, raw uint64) (*resource.Reference, error) {
	if raw == 0 {
		return nil, nil
	}
	key, ok := r.table.Lookup(site)
	if !ok {
		return nil, errors.DanglingReference(nil, site, raw)
	}
	return resource.NewReference(key, slotOffset(raw)), nil
}

func (r *Reader) take(n int64, what string) ([]byte, error) {
	if n < 0 || n > int64(len(r.buf))-r.pos {
		return nil, errors.OutOfBounds(errors.PhaseDecode, pathOf(what), r.pos, n, int64(len(r.buf)))
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func pathOf(what string) []string {
	if what == "" {
		return nil
	}
	return []string{what}
}

// ReadStruct decodes the struct described by desc at the cursor into dst,
// which must be a non-nil pointer to desc's Go type, and advances the
// cursor by the struct size. On error the cursor does not move.
func (r *Reader) ReadStruct(desc *layout.Descriptor, dst any) error {
	rv, err := target(desc, dst, errors.PhaseDecode, true)
	if err != nil {
		return err
	}

	l := desc.Layout(r.width)
	start := r.pos
	data, err := r.take(int64(l.Size), "")
	if err != nil {
		return withStruct(err, desc.Name())
	}

	r.base = start
	if err := decodeStruct(l, data, 0, rv, r, nil); err != nil {
		r.pos = start
		return withStruct(err, desc.Name())
	}
	return nil
}

// ReadRef reads one pointer-sized slot at the cursor and resolves it.
func (r *Reader) ReadRef() (*resource.Reference, error) {
	site := r.pos
	b, err := r.take(int64(r.width.Bytes()), "ref")
	if err != nil {
		return nil, err
	}
	ref, err := r.Resolve(site, getWord(b, r.width))
	if err != nil {
		r.pos = site
		return nil, err
	}
	return ref, nil
}

// Seek moves the cursor to an absolute position within the body.
func (r *Reader) Seek(pos int64) error {
	if pos < r.body || pos > int64(len(r.buf)) {
		return errors.OutOfBounds(errors.PhaseDecode, pathOf("seek"), pos, 0, int64(len(r.buf)))
	}
	r.pos = pos
	return nil
}

// SeekRef moves the cursor to the target of a reference into this
// resource.
func (r *Reader) SeekRef(ref *resource.Reference) error {
	if ref == nil {
		return errors.InvalidInput(errors.PhaseDecode, "seek to null reference")
	}
	if ref.Key != r.key {
		return errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Value(ref.Key).
			Detail("reference %s points outside resource %s", ref, r.key).
			Build()
	}
	return r.Seek(r.body + ref.Offset)
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int64) error {
	_, err := r.take(n, "skip")
	return err
}

// Align advances the cursor to the next body-relative multiple of n.
func (r *Reader) Align(n int) error {
	return r.Seek(r.body + alignTo(r.pos-r.body, n))
}

// ReadBytes returns a copy of the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.take(int64(n), "bytes")
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1, "u8")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2, "u16")
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint16(b), nil
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4, "u32")
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint32(b), nil
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8, "u64")
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint64(b), nil
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

// Read decodes one T at the cursor using its registered descriptor.
func Read[T any](r *Reader) (*T, error) {
	desc, err := descriptorFor(reflect.TypeOf((*T)(nil)).Elem(), errors.PhaseDecode)
	if err != nil {
		return nil, err
	}
	v := new(T)
	if err := r.ReadStruct(desc, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ReadArray decodes n consecutive T values at the cursor.
func ReadArray[T any](r *Reader, n int) ([]T, error) {
	desc, err := descriptorFor(reflect.TypeOf((*T)(nil)).Elem(), errors.PhaseDecode)
	if err != nil {
		return nil, err
	}
	size := int64(desc.Size(r.width))
	if n < 0 || (size > 0 && int64(n) > r.Remaining()/size) {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path(desc.Name()).
			Value(n).
			Detail("%d elements of %d bytes at %#x exceed buffer of %#x bytes", n, size, r.pos, r.Len()).
			Build()
	}
	out := make([]T, n)
	for i := range out {
		if err := r.ReadStruct(desc, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func descriptorFor(t reflect.Type, phase errors.Phase) (*layout.Descriptor, error) {
	desc, ok := layout.Lookup(t)
	if !ok {
		return nil, errors.NotFound(phase, "descriptor for type", t.String())
	}
	return desc, nil
}

func withStruct(err error, name string) error {
	if e, ok := err.(*errors.Error); ok && e.Struct == "" {
		e.Struct = name
	}
	return err
}
