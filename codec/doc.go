// Package codec reads and writes resource buffers.
//
// A resource buffer starts with a reference section followed by the body:
//
//	count            pointer-sized
//	count x entry    site (pointer-sized), type (u32), [pad u32], id (pointer-sized)
//	body             structs laid out per their compiled descriptors
//
// Sites are body-relative. All values are little-endian.
//
// # Reading
//
// NewReader decodes the reference section before anything else. Reference
// fields are resolved while their struct is decoded: a nonzero slot
// without a matching entry is a dangling reference and fails the decode.
//
//	r, err := codec.NewReader(buf, key, resource.Width64)
//	hdr, err := codec.Read[Header](r)
//	err = r.SeekRef(hdr.Bones)
//	bones, err := codec.ReadArray[Bone](r, int(hdr.BoneCount))
//
// # Building
//
// A Builder records a relocation for every reference it writes.
// WriteLocalRef reserves a slot whose target is not known yet; the
// returned Placeholder is set once the target section is written, and
// Build patches the slot. Build fails if any placeholder is still unset.
//
//	b, _ := codec.NewBuilder(key, resource.Width64)
//	bones := b.WriteLocalRef()
//	...
//	bones.Set(b.Pos())
//	err := codec.WriteArray(b, hdr.BoneList)
//	buf, err := b.Build()
package codec
