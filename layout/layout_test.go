package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/resource"
)

type testBone struct {
	Name     *resource.Reference
	Parent   int16
	Flags    uint16
	Position Vector3
	Rotation Quaternion
	Children [4]uint8
	Visible  bool
}

type testHeader struct {
	Magic uint32
	Root  testBone
	Count uint64
}

type testRaw struct {
	Target uint64
	Data   [3]uint32
}

var testBoneDesc = Define[testBone]("TestBone").
	Fields(
		Ptr("Name"),
		I16("Parent"),
		U16("Flags"),
		Vec3("Position"),
		Quat("Rotation"),
		Array(U8("Children"), 4),
		U8("Visible"),
	).
	Flag("Hidden", "Flags", 15).
	Flag("Root", "Flags", 0).
	Size(0x2C, 0x30).
	MustRegister()

var testHeaderDesc = Define[testHeader]("TestHeader").
	Fields(
		U32("Magic"),
		Nested("Root", testBoneDesc),
		U64("Count"),
	).
	Size(0x38, 0x40).
	MustRegister()

func offsets(l *Layout) map[string]int {
	out := make(map[string]int)
	for _, s := range l.Slots {
		out[s.Name] = s.Offset
	}
	return out
}

func TestLayoutProfiles(t *testing.T) {
	tests := []struct {
		width   resource.Width
		size    int
		align   int
		offsets map[string]int
	}{
		{
			width: resource.Width32,
			size:  0x2C,
			align: 4,
			offsets: map[string]int{
				"Name": 0, "Parent": 4, "Flags": 6, "Position": 8,
				"Rotation": 20, "Children": 36, "Visible": 40,
			},
		},
		{
			width: resource.Width64,
			size:  0x30,
			align: 8,
			offsets: map[string]int{
				"Name": 0, "Parent": 8, "Flags": 10, "Position": 12,
				"Rotation": 24, "Children": 40, "Visible": 44,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.width.String(), func(t *testing.T) {
			l := testBoneDesc.Layout(tt.width)
			assert.Equal(t, tt.width, l.Width)
			assert.Equal(t, tt.size, l.Size)
			assert.Equal(t, tt.align, l.Align)
			assert.Equal(t, tt.offsets, offsets(l))
		})
	}
}

func TestLayoutSlotDetails(t *testing.T) {
	l := testBoneDesc.Layout(resource.Width64)

	name, ok := l.Slot("Name")
	require.True(t, ok)
	assert.Equal(t, 8, name.Size)
	assert.NotNil(t, name.Conv, "reference field needs a converter")

	children, ok := l.Slot("Children")
	require.True(t, ok)
	assert.True(t, children.IsArray())
	assert.Equal(t, 1, children.Elem)
	assert.Equal(t, 4, children.Size)
	assert.Nil(t, children.Conv)

	rot, _ := l.Slot("Rotation")
	assert.Equal(t, 16, rot.Size)

	visible, _ := l.Slot("Visible")
	assert.NotNil(t, visible.Conv, "u8 stored as bool is mapped")

	assert.True(t, testBoneDesc.HasReferences())
}

func TestLayoutNested(t *testing.T) {
	l32 := testHeaderDesc.Layout(resource.Width32)
	assert.Equal(t, map[string]int{"Magic": 0, "Root": 4, "Count": 48}, offsets(l32))
	assert.Equal(t, 0x38, l32.Size)

	l64 := testHeaderDesc.Layout(resource.Width64)
	assert.Equal(t, map[string]int{"Magic": 0, "Root": 8, "Count": 56}, offsets(l64))
	assert.Equal(t, 0x40, l64.Size)

	root, _ := l64.Slot("Root")
	assert.Same(t, testBoneDesc.Layout(resource.Width64), root.Nested)
	assert.True(t, testHeaderDesc.HasReferences())
}

func TestLayoutPacked(t *testing.T) {
	d, err := Define[testBone]("PackedBone").
		Fields(
			Ptr("Name"),
			I16("Parent"),
			U16("Flags"),
			Vec3("Position"),
			Quat("Rotation"),
			Array(U8("Children"), 4),
			U8("Visible"),
		).
		Packed().
		Size(41, 45).
		Compile()
	require.NoError(t, err)
	assert.True(t, d.Packed())
	assert.Equal(t, 41, d.Size(resource.Width32))
	assert.Equal(t, 45, d.Size(resource.Width64))
}

func TestLayoutPadding(t *testing.T) {
	d, err := Define[testRaw]("TestRaw").
		Fields(
			Ptr("Target"),
			Pad(4),
			Array(U32("Data"), 3),
		).
		Size(20, 24).
		Compile()
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Target": 0, "": 8, "Data": 12}, offsets(d.Layout(resource.Width64)))
	assert.Equal(t, map[string]int{"Target": 0, "": 4, "Data": 8}, offsets(d.Layout(resource.Width32)))
	assert.False(t, d.HasReferences(), "raw pointer fields are not references")
}

func TestLayoutSizeMismatch(t *testing.T) {
	_, err := Define[testRaw]("DriftRaw").
		Fields(Ptr("Target"), Array(U32("Data"), 3)).
		Size(16, 24).
		Compile()
	require.NoError(t, err)

	_, err = Define[testRaw]("DriftRaw").
		Fields(Ptr("Target"), Array(U32("Data"), 3)).
		Size(16, 20).
		Compile()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrLayout)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindLayoutMismatch})
	assert.Contains(t, err.Error(), "64-bit")

	assert.Panics(t, func() {
		Define[testRaw]("DriftRaw").
			Fields(Ptr("Target"), Array(U32("Data"), 3)).
			Size(12, 24).
			MustCompile()
	})
}

func TestLayoutBindingErrors(t *testing.T) {
	tests := []struct {
		name   string
		schema *Schema[testRaw]
		kind   errors.Kind
	}{
		{"missing field", Define[testRaw]("E1").Fields(U32("Nope")).Size(4, 4), errors.KindFieldMissing},
		{"wrong kind", Define[testRaw]("E2").Fields(F32("Target")).Size(4, 4), errors.KindTypeMismatch},
		{"array length", Define[testRaw]("E3").Fields(Array(U32("Data"), 2)).Size(8, 8), errors.KindTypeMismatch},
		{"not array", Define[testRaw]("E4").Fields(Array(U64("Target"), 2)).Size(16, 16), errors.KindTypeMismatch},
		{"duplicate", Define[testRaw]("E5").Fields(U64("Target"), U64("Target")).Size(16, 16), errors.KindDuplicate},
		{"no size", Define[testRaw]("E6").Fields(U64("Target")), errors.KindInvalidInput},
		{"bad pad", Define[testRaw]("E7").Fields(Pad(0)).Size(0, 0), errors.KindInvalidInput},
		{"nested type", Define[testRaw]("E8").Fields(Nested("Data", testBoneDesc)).Size(0, 0), errors.KindTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.schema.Compile()
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLayout, Kind: tt.kind})
		})
	}
}

func TestLayoutNonStruct(t *testing.T) {
	_, err := Define[uint32]("NotStruct").Size(4, 4).Compile()
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindTypeMismatch})
}

func TestRegistry(t *testing.T) {
	d, ok := For[testBone]()
	require.True(t, ok)
	assert.Same(t, testBoneDesc, d)

	d, ok = Lookup(testHeaderDesc.GoType())
	require.True(t, ok)
	assert.Same(t, testHeaderDesc, d)

	d, ok = ByName("TestHeader")
	require.True(t, ok)
	assert.Same(t, testHeaderDesc, d)

	_, ok = For[testRaw]()
	assert.False(t, ok, "compiled-only descriptors are not registered")

	names := make([]string, 0)
	for _, d := range Registered() {
		names = append(names, d.Name())
	}
	assert.Contains(t, names, "TestBone")
	assert.IsIncreasing(t, names)

	_, err := Define[testBone]("TestBoneAgain").
		Fields(U16("Flags")).
		Size(2, 2).
		Register()
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindDuplicate})
}

func TestDescriptorNew(t *testing.T) {
	v := testBoneDesc.New()
	_, ok := v.(*testBone)
	assert.True(t, ok)
	assert.Len(t, testBoneDesc.Fields(), 7)
}
