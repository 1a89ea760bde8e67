// Package layout computes byte layouts of fixed-layout resource structs.
//
// A struct is declared once with a Schema and compiled into an immutable
// Descriptor holding one Layout per address-width profile:
//
//	var BoneDesc = layout.Define[Bone]("Bone").
//		Fields(
//			layout.Ptr("Name"),
//			layout.I16("Parent"),
//			layout.U16("Flags"),
//			layout.Vec3("Position"),
//			layout.Quat("Rotation"),
//		).
//		Flag("Visible", "Flags", 15).
//		Size(0x24, 0x28).
//		MustRegister()
//
// # Profiles
//
// Ptr fields are 4 bytes in the 32-bit profile and 8 bytes in the 64-bit
// profile; every later offset shifts with them. Composite float fields
// (Vec2, Vec3, Vec4, Quat) are always N x 4 bytes. Fields are naturally
// aligned and the total size is rounded to the largest alignment unless
// the schema is Packed.
//
// # Drift Detection
//
// Every schema declares its expected size for both profiles. A computed
// size that differs is a LayoutError returned from Register (or a panic
// from MustRegister), so a schema that no longer matches the on-disk
// format fails at startup, before any resource is decoded.
//
// # Field Binding
//
// Fields bind by name to exported Go struct fields. Integer, float and
// composite kinds store directly into Go fields of the matching kind.
// Anything else goes through a typemap.Converter picked at registration,
// e.g. Ptr bound to *resource.Reference.
//
// # Registry
//
// Register adds the descriptor to a type-indexed table used by the codec
// package (Lookup, For, ByName). Compile builds a descriptor without
// registering it, for per-generation variants selected through Variants.
package layout
