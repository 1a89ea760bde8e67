package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/gameres/errors"
)

type signedFlags struct {
	State int16
}

func TestFlagIsolation(t *testing.T) {
	b := testBone{Flags: 0x1234}

	require.NoError(t, testBoneDesc.SetFlag(&b, "Hidden", true))
	assert.Equal(t, uint16(0x9234), b.Flags)

	on, err := testBoneDesc.Flag(b, "Hidden")
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, testBoneDesc.SetFlag(&b, "Hidden", false))
	assert.Equal(t, uint16(0x1234), b.Flags)

	on, err = testBoneDesc.Flag(&b, "Hidden")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestFlagLowBit(t *testing.T) {
	b := testBone{Flags: 0xFFFE}
	on, err := testBoneDesc.Flag(b, "Root")
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, testBoneDesc.SetFlag(&b, "Root", true))
	assert.Equal(t, uint16(0xFFFF), b.Flags)
}

func TestFlagErrors(t *testing.T) {
	b := testBone{}

	_, err := testBoneDesc.Flag(b, "Missing")
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindNotFound})

	err = testBoneDesc.SetFlag(b, "Hidden", true)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindInvalidInput})

	_, err = testBoneDesc.Flag(testRaw{}, "Hidden")
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindTypeMismatch})

	var nilBone *testBone
	_, err = testBoneDesc.Flag(nilBone, "Hidden")
	assert.Error(t, err)
}

func TestFlagDeclarationErrors(t *testing.T) {
	tests := []struct {
		name   string
		schema *Schema[testBone]
		kind   errors.Kind
	}{
		{
			"unknown field",
			Define[testBone]("F1").Fields(U16("Flags")).Flag("X", "Parent", 0).Size(2, 2),
			errors.KindFieldMissing,
		},
		{
			"bit too large",
			Define[testBone]("F2").Fields(U16("Flags")).Flag("X", "Flags", 16).Size(2, 2),
			errors.KindOverflow,
		},
		{
			"not integer",
			Define[testBone]("F3").Fields(Vec3("Position")).Flag("X", "Position", 1).Size(12, 12),
			errors.KindTypeMismatch,
		},
		{
			"duplicate",
			Define[testBone]("F4").Fields(U16("Flags")).Flag("X", "Flags", 1).Flag("X", "Flags", 2).Size(2, 2),
			errors.KindDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.schema.Compile()
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLayout, Kind: tt.kind})
		})
	}
}

func TestFlagSignedField(t *testing.T) {
	d, err := Define[signedFlags]("SignedFlags").
		Fields(I16("State")).
		Flag("Locked", "State", 15).
		Size(2, 2).
		Compile()
	require.NoError(t, err)

	v := signedFlags{State: 0x0101}
	require.NoError(t, d.SetFlag(&v, "Locked", true))
	assert.Equal(t, int16(-0x7EFF), v.State)

	on, err := d.Flag(v, "Locked")
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, d.SetFlag(&v, "Locked", false))
	assert.Equal(t, int16(0x0101), v.State)
	assert.Len(t, d.Flags(), 1)
}

func TestFlagsDeclarationOrder(t *testing.T) {
	d, err := Define[signedFlags]("OrderedFlags").
		Fields(I16("State")).
		Flag("Zulu", "State", 3).
		Flag("Alpha", "State", 0).
		Flag("Mike", "State", 9).
		Size(2, 2).
		Compile()
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		flags := d.Flags()
		require.Len(t, flags, 3)
		assert.Equal(t, "Zulu", flags[0].Name)
		assert.Equal(t, "Alpha", flags[1].Name)
		assert.Equal(t, "Mike", flags[2].Name)
	}

	flags := d.Flags()
	flags[0].Name = "changed"
	assert.Equal(t, "Zulu", d.Flags()[0].Name)
}

func TestBitHelpers(t *testing.T) {
	var v uint16 = 0x00F0
	assert.True(t, Bit(v, 4))
	assert.False(t, Bit(v, 3))

	v = SetBit(v, 15, true)
	assert.Equal(t, uint16(0x80F0), v)
	v = SetBit(v, 4, false)
	assert.Equal(t, uint16(0x80E0), v)

	var s int8 = -1
	assert.True(t, Bit(s, 7))
	assert.Equal(t, int8(0x7F), SetBit(s, 7, false))
}
