package schema

import (
	"github.com/wippyai/gameres/codec"
	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/layout"
	"github.com/wippyai/gameres/resource"
)

// SkeletonMagic identifies a skeleton body ("SKEL").
const SkeletonMagic = 0x4C454B53

// sectionAlign is the alignment of the bone array after the header.
const sectionAlign = 16

// SkeletonHeader starts every skeleton body. Bones points at BoneCount
// bones of the header's generation.
type SkeletonHeader struct {
	Magic     uint32
	Game      uint32
	Bones     *resource.Reference
	BoneCount uint32
}

var SkeletonHeaderDesc = layout.Define[SkeletonHeader]("SkeletonHeader").
	Fields(
		layout.U32("Magic"),
		layout.U32("Game"),
		layout.Ptr("Bones"),
		layout.U32("BoneCount"),
	).
	Size(0x10, 0x18).
	MustRegister()

// Skeleton is a decoded skeleton resource.
type Skeleton struct {
	Bones []Bone
	Game  Game
}

// EncodeBody writes the header, then the aligned bone array. The header's
// bone pointer is reserved before the array position is known.
func (s *Skeleton) EncodeBody(b *codec.Builder) error {
	desc, err := Bones.Select(s.Game)
	if err != nil {
		return err
	}

	start := b.Pos()
	hdr := SkeletonHeader{
		Magic:     SkeletonMagic,
		Game:      uint32(s.Game),
		BoneCount: uint32(len(s.Bones)),
	}
	if err := b.WriteStruct(SkeletonHeaderDesc, &hdr); err != nil {
		return err
	}
	end := b.Pos()

	slot, _ := SkeletonHeaderDesc.Layout(b.Width()).Slot("Bones")
	if err := b.Seek(start + int64(slot.Offset)); err != nil {
		return err
	}
	bones := b.WriteLocalRef()
	if err := b.Seek(end); err != nil {
		return err
	}

	b.Align(sectionAlign)
	bones.Set(b.Pos())
	for i, bone := range s.Bones {
		if bone.Game() != s.Game {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Struct(desc.Name()).
				Value(i).
				Detail("bone %d is %s in a %s skeleton", i, bone.Game(), s.Game).
				Build()
		}
		if err := b.WriteStruct(desc, bone); err != nil {
			return err
		}
	}
	return nil
}

// DecodeBody reads the header and the bones of its generation.
func (s *Skeleton) DecodeBody(r *codec.Reader) error {
	hdr, err := codec.Read[SkeletonHeader](r)
	if err != nil {
		return err
	}
	if hdr.Magic != SkeletonMagic {
		return errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Struct(SkeletonHeaderDesc.Name()).
			Value(hdr.Magic).
			Detail("bad magic %#08x", hdr.Magic).
			Build()
	}

	s.Game = Game(hdr.Game)
	desc, err := Bones.Select(s.Game)
	if err != nil {
		return errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "skeleton generation")
	}

	s.Bones = nil
	if hdr.BoneCount == 0 {
		return nil
	}
	if err := r.SeekRef(hdr.Bones); err != nil {
		return err
	}
	if need := int64(hdr.BoneCount) * int64(desc.Size(r.Width())); need > r.Remaining() {
		return errors.OutOfBounds(errors.PhaseDecode, []string{"Bones"}, r.Pos(), need, r.Len())
	}

	s.Bones = make([]Bone, 0, hdr.BoneCount)
	for i := uint32(0); i < hdr.BoneCount; i++ {
		v := desc.New()
		if err := r.ReadStruct(desc, v); err != nil {
			return err
		}
		s.Bones = append(s.Bones, v.(Bone))
	}
	return nil
}

// Root returns the index of the first bone flagged as root, or -1.
func (s *Skeleton) Root() int {
	for i, b := range s.Bones {
		if on, err := b.Descriptor().Flag(b, FlagRoot); err == nil && on {
			return i
		}
	}
	return -1
}
