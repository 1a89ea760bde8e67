package schema

import (
	"github.com/wippyai/gameres/layout"
	"github.com/wippyai/gameres/resource"
)

// MeshPartV1 is a gen1 draw call.
type MeshPartV1 struct {
	Material     *resource.Reference
	FirstIndex   uint32
	IndexCount   uint32
	VertexOffset uint32
}

// MeshPartV2 is used by gen2 and gen3. BoneMap points at the palette of
// skinning bones.
type MeshPartV2 struct {
	Material     *resource.Reference
	FirstIndex   uint32
	IndexCount   uint32
	VertexOffset uint32
	BoneMap      *resource.Reference
	LOD          uint8
	Flags        uint8
}

var MeshPartV1Desc = layout.Define[MeshPartV1]("MeshPartV1").
	Fields(
		layout.Ptr("Material"),
		layout.U32("FirstIndex"),
		layout.U32("IndexCount"),
		layout.U32("VertexOffset"),
	).
	Size(0x10, 0x18).
	MustRegister()

var MeshPartV2Desc = layout.Define[MeshPartV2]("MeshPartV2").
	Fields(
		layout.Ptr("Material"),
		layout.U32("FirstIndex"),
		layout.U32("IndexCount"),
		layout.U32("VertexOffset"),
		layout.Ptr("BoneMap"),
		layout.U8("LOD"),
		layout.U8("Flags"),
	).
	Flag("Shadow", "Flags", 0).
	Flag("Skinned", "Flags", 1).
	Size(0x18, 0x28).
	MustRegister()

// MeshParts selects the mesh part descriptor of a generation.
var MeshParts = layout.NewVariants[Game]("MeshPart").
	Add(Gen1, MeshPartV1Desc).
	Add(Gen2, MeshPartV2Desc).
	Add(Gen3, MeshPartV2Desc)
