package schema

import (
	"github.com/wippyai/gameres/crc"
	"github.com/wippyai/gameres/layout"
	"github.com/wippyai/gameres/resource"
)

// Bone flag bits, shared by every generation.
const (
	FlagRoot   = "Root"
	FlagHidden = "Hidden"
)

// Bone is one skeleton joint in any generation.
type Bone interface {
	Game() Game
	Descriptor() *layout.Descriptor
}

// BoneV1 is the gen1 joint: no scale.
type BoneV1 struct {
	Name     *resource.Reference
	Parent   int16
	Flags    uint16
	Position layout.Vector3
	Rotation layout.Quaternion
}

// BoneV2 adds a per-joint scale.
type BoneV2 struct {
	Name     *resource.Reference
	Parent   int16
	Flags    uint16
	Position layout.Vector3
	Rotation layout.Quaternion
	Scale    layout.Vector3
}

// BoneV3 adds a name hash for lookups without the string table and up to
// four child indices.
type BoneV3 struct {
	Name     *resource.Reference
	Hash     uint32
	Parent   int16
	Flags    uint16
	Position layout.Vector3
	Rotation layout.Quaternion
	Scale    layout.Vector3
	Children [4]int16
}

var BoneV1Desc = layout.Define[BoneV1]("BoneV1").
	Fields(
		layout.Ptr("Name"),
		layout.I16("Parent"),
		layout.U16("Flags"),
		layout.Vec3("Position"),
		layout.Quat("Rotation"),
	).
	Flag(FlagRoot, "Flags", 0).
	Flag(FlagHidden, "Flags", 15).
	Size(0x24, 0x28).
	MustRegister()

var BoneV2Desc = layout.Define[BoneV2]("BoneV2").
	Fields(
		layout.Ptr("Name"),
		layout.I16("Parent"),
		layout.U16("Flags"),
		layout.Vec3("Position"),
		layout.Quat("Rotation"),
		layout.Vec3("Scale"),
	).
	Flag(FlagRoot, "Flags", 0).
	Flag(FlagHidden, "Flags", 15).
	Size(0x30, 0x38).
	MustRegister()

var BoneV3Desc = layout.Define[BoneV3]("BoneV3").
	Fields(
		layout.Ptr("Name"),
		layout.U32("Hash"),
		layout.I16("Parent"),
		layout.U16("Flags"),
		layout.Vec3("Position"),
		layout.Quat("Rotation"),
		layout.Vec3("Scale"),
		layout.Array(layout.I16("Children"), 4),
	).
	Flag(FlagRoot, "Flags", 0).
	Flag(FlagHidden, "Flags", 15).
	Size(0x3C, 0x40).
	MustRegister()

// Bones selects the bone descriptor of a generation.
var Bones = layout.NewVariants[Game]("Bone").
	Add(Gen1, BoneV1Desc).
	Add(Gen2, BoneV2Desc).
	Add(Gen3, BoneV3Desc)

func (*BoneV1) Game() Game { return Gen1 }
func (*BoneV2) Game() Game { return Gen2 }
func (*BoneV3) Game() Game { return Gen3 }

func (*BoneV1) Descriptor() *layout.Descriptor { return BoneV1Desc }
func (*BoneV2) Descriptor() *layout.Descriptor { return BoneV2Desc }
func (*BoneV3) Descriptor() *layout.Descriptor { return BoneV3Desc }

// SetName stores the name token used by gen3 lookups.
func (b *BoneV3) SetName(name string) {
	b.Hash = uint32(crc.Name(name))
}

// NewBone returns a zero bone of generation g.
func NewBone(g Game) (Bone, error) {
	d, err := Bones.Select(g)
	if err != nil {
		return nil, err
	}
	return d.New().(Bone), nil
}
