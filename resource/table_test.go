package resource

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/gameres/errors"
)

func TestTable_Lookup(t *testing.T) {
	skel := NewKey(TypeSkeleton, 7)
	mat := NewKey(TypeMaterial, 9)

	table, err := NewTable([]Entry{
		{Site: 0x30, Key: mat},
		{Site: 0x10, Key: skel},
		{Site: 0x20, Key: skel},
	})
	require.NoError(t, err)

	k, ok := table.Lookup(0x10)
	require.True(t, ok)
	assert.Equal(t, skel, k)

	_, ok = table.Lookup(0x18)
	assert.False(t, ok)

	assert.Equal(t, 3, table.Len())
	entries := table.Entries()
	assert.Equal(t, int64(0x10), entries[0].Site)
	assert.Equal(t, int64(0x30), entries[2].Site)
	assert.Equal(t, []Key{skel, mat}, table.Keys())
}

func TestTable_EntriesCopy(t *testing.T) {
	table, err := NewTable([]Entry{{Site: 4, Key: NewKey(TypeModel, 1)}})
	require.NoError(t, err)

	entries := table.Entries()
	entries[0].Site = 99

	_, ok := table.Lookup(4)
	assert.True(t, ok, "mutating Entries result must not affect the table")
}

func TestTable_Duplicate(t *testing.T) {
	_, err := NewTable([]Entry{
		{Site: 8, Key: NewKey(TypeModel, 1)},
		{Site: 8, Key: NewKey(TypeModel, 2)},
	})
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindDuplicate})

	var e *errors.Error
	require.True(t, stderrors.As(err, &e))
	assert.Equal(t, int64(8), e.Value)
}

func TestTable_Nil(t *testing.T) {
	var table *Table
	_, ok := table.Lookup(0)
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
}

func TestReferenceEquality(t *testing.T) {
	a := NewReference(NewKey(TypeModel, 3), 0x10)
	b := NewReference(NewKey(TypeModel, 3), 0x10)
	c := NewReference(NewKey(TypeModel, 3), 0x14)

	assert.Equal(t, *a, *b)
	assert.NotEqual(t, *a, *c)

	set := map[Key]int{a.Key: 1}
	set[c.Key]++
	assert.Equal(t, 2, set[NewKey(TypeModel, 3)])
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"model", TypeModel},
		{"Skeleton", TypeSkeleton},
		{"42", Type(42)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseType("bogus")
	assert.Error(t, err)
	assert.Equal(t, "type(42)", Type(42).String())
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 4, Width32.Bytes())
	assert.Equal(t, 1, Width64.Index())
	assert.False(t, Width(2).Valid())

	w, err := WidthFromBits(64)
	require.NoError(t, err)
	assert.Equal(t, Width64, w)

	_, err = WidthFromBits(16)
	assert.Error(t, err)
}
