package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/resource"
)

func newBuilder(t *testing.T, w resource.Width) *Builder {
	t.Helper()
	b, err := NewBuilder(modelKey, w)
	require.NoError(t, err)
	return b
}

func TestBuilderWriteRef(t *testing.T) {
	for _, w := range resource.Widths {
		t.Run(w.String(), func(t *testing.T) {
			b := newBuilder(t, w)
			ref := resource.NewReference(skeletonKey, 0x30)

			require.NoError(t, b.WriteRef(ref))
			require.NoError(t, b.WriteRef(nil))
			assert.Equal(t, int64(2*w.Bytes()), b.Pos())

			buf, err := b.Build()
			require.NoError(t, err)

			r, err := NewReader(buf, modelKey, w)
			require.NoError(t, err)
			assert.Equal(t, 1, r.References().Len())

			got, err := r.ReadRef()
			require.NoError(t, err)
			assert.Equal(t, ref, got)

			got, err = r.ReadRef()
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestBuilderSectionBytes(t *testing.T) {
	b := newBuilder(t, resource.Width64)
	require.NoError(t, b.WriteRef(resource.NewReference(skeletonKey, 0)))

	buf, err := b.Build()
	require.NoError(t, err)
	require.Len(t, buf, 8+24+8)

	assert.Equal(t, uint64(1), ByteOrder.Uint64(buf[0:]), "count")
	assert.Equal(t, uint64(0), ByteOrder.Uint64(buf[8:]), "site")
	assert.Equal(t, uint32(resource.TypeSkeleton), ByteOrder.Uint32(buf[16:]), "type")
	assert.Equal(t, uint32(0), ByteOrder.Uint32(buf[20:]), "pad")
	assert.Equal(t, uint64(2), ByteOrder.Uint64(buf[24:]), "id")
	assert.Equal(t, uint64(1), ByteOrder.Uint64(buf[32:]), "slot stores offset+1")
}

func TestBuilderUnresolvedReference(t *testing.T) {
	b := newBuilder(t, resource.Width32)
	set := b.WriteLocalRef()
	unset := b.WriteLocalRef()
	set.Set(0)

	_, err := b.Build()
	assert.ErrorIs(t, err, errors.ErrUnresolvedReference)
	assert.Equal(t, int64(4), unset.Site())

	off, ok := unset.Offset()
	assert.False(t, ok)
	assert.Zero(t, off)

	unset.Set(4)
	_, err = b.Build()
	assert.NoError(t, err)
}

func TestBuilderInternalReference(t *testing.T) {
	b := newBuilder(t, resource.Width32)
	p := b.WriteInternalRef(materialKey)
	assert.Equal(t, materialKey, p.Target)
	p.Set(0x100)

	buf, err := b.Build()
	require.NoError(t, err)

	r, err := NewReader(buf, modelKey, resource.Width32)
	require.NoError(t, err)
	ref, err := r.ReadRef()
	require.NoError(t, err)
	assert.Equal(t, resource.NewReference(materialKey, 0x100), ref)
}

func TestBuilderLocalReferencePastEnd(t *testing.T) {
	b := newBuilder(t, resource.Width32)
	b.WriteLocalRef().Set(5)

	_, err := b.Build()
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseBuild, Kind: errors.KindOutOfBounds})
}

func TestBuilderBuildIdempotent(t *testing.T) {
	b := newBuilder(t, resource.Width64)
	p := b.WriteLocalRef()
	b.WriteU64(0)
	p.Set(8)

	first, err := b.Build()
	require.NoError(t, err)
	second, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(16), b.Len())
}

func TestBuilderOverwrite(t *testing.T) {
	b := newBuilder(t, resource.Width32)
	require.NoError(t, b.WriteRef(resource.NewReference(skeletonKey, 4)))
	b.WriteU32(0xDEADBEEF)

	require.NoError(t, b.Seek(0))
	b.WriteU32(7)
	assert.Equal(t, int64(4), b.Pos())
	assert.Equal(t, int64(8), b.Len())

	buf, err := b.Build()
	require.NoError(t, err)

	r, err := NewReader(buf, modelKey, resource.Width32)
	require.NoError(t, err)
	assert.Equal(t, 0, r.References().Len(), "overwritten slot drops its relocation")

	v, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)

	assert.Error(t, b.Seek(9))
	assert.Error(t, b.Seek(-1))
}

func TestBuilderOverflow(t *testing.T) {
	b := newBuilder(t, resource.Width32)

	err := b.WriteRef(resource.NewReference(skeletonKey, math.MaxUint32))
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindOverflow})
	assert.Equal(t, int64(0), b.Len())

	err = b.WriteRef(resource.NewReference(skeletonKey, -1))
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindInvalidInput})

	require.NoError(t, b.WriteRef(resource.NewReference(resource.NewKey(resource.TypeModel, 1<<40), 0)))
	_, err = b.Build()
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseBuild, Kind: errors.KindOverflow})
}

func TestBuilderWriteStructFailure(t *testing.T) {
	b := newBuilder(t, resource.Width64)
	node := sampleNode()
	node.Kids[1] = resource.NewReference(skeletonKey, -4)

	err := b.WriteStruct(nodeDesc, &node)
	require.Error(t, err)
	e := decodeErr(t, err)
	assert.Equal(t, []string{"Kids"}, e.Path)
	assert.Equal(t, "CodecNode", e.Struct)

	assert.Equal(t, int64(0), b.Len(), "failed struct writes nothing")
	buf, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 8), buf, "no relocations recorded")
}

func TestBuilderWriteErrors(t *testing.T) {
	b := newBuilder(t, resource.Width32)

	assert.ErrorIs(t, b.Write(nil), &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindInvalidInput})

	type unregistered struct{ A uint32 }
	assert.ErrorIs(t, b.Write(unregistered{}), &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindNotFound})
	assert.ErrorIs(t, b.WriteStruct(nodeDesc, testMesh{}), &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindTypeMismatch})

	_, err := NewBuilder(modelKey, resource.Width(3))
	assert.Error(t, err)
}

func TestBuilderPrimitives(t *testing.T) {
	b := newBuilder(t, resource.Width32)
	b.WriteU8(0x7F)
	b.Align(2)
	b.WriteU16(0x1234)
	b.WriteU32(0x12345678)
	b.WriteU64(0x0123456789ABCDEF)
	b.WriteF32(1.5)
	b.WriteBytes([]byte{0xAA, 0xBB})

	buf, err := b.Build()
	require.NoError(t, err)

	want := []byte{
		0, 0, 0, 0,
		0x7F, 0x00,
		0x34, 0x12,
		0x78, 0x56, 0x34, 0x12,
		0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01,
		0x00, 0x00, 0xC0, 0x3F,
		0xAA, 0xBB,
	}
	assert.Equal(t, want, buf)
}
