// Package gameres decodes and re-encodes game-engine binary resources.
//
// A resource is a typed blob (model, skeleton, material, ...) made of
// fixed-layout structs that point at each other by byte offset. The same
// struct declaration yields a 32-bit and a 64-bit layout; pointer-sized
// fields are resolved to typed references while decoding and relocated
// while encoding.
//
// # Architecture Overview
//
//	gameres/            Root package with Decode, DecodeInto and Encode
//	├── layout/         Struct schemas, per-profile layouts, flag views
//	├── typemap/        Raw to Go value mappings (references, bools)
//	├── codec/          Resource reader and builder
//	├── resource/       Keys, references, address widths, reference tables
//	├── bitstream/      Bit-packed I/O over 64-bit words
//	├── crc/            CRC-32 name tokens
//	├── schema/         Example structs for three format generations
//	├── config/         YAML configuration for the resdump tool
//	├── errors/         Structured error types
//	└── cmd/resdump/    Inspection CLI
//
// # Quick Start
//
// Declare a struct once, at package init:
//
//	type Bone struct {
//		Name     *resource.Reference
//		Parent   int16
//		Flags    uint16
//		Position layout.Vector3
//		Rotation layout.Quaternion
//	}
//
//	var BoneDesc = layout.Define[Bone]("Bone").
//		Fields(
//			layout.Ptr("Name"),
//			layout.I16("Parent"),
//			layout.U16("Flags"),
//			layout.Vec3("Position"),
//			layout.Quat("Rotation"),
//		).
//		Size(0x24, 0x28).
//		MustRegister()
//
// Then decode and encode whole resources:
//
//	bone, err := gameres.Decode[Bone](buf, key, resource.Width64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := gameres.Encode(bone, key, resource.Width64)
//
// Types with variable-length sections implement codec.BodyDecoder and
// codec.BodyEncoder and drive the reader and builder directly.
//
// # Errors
//
// All failures are *errors.Error values. Use errors.Is with the phase
// sentinels:
//
//	if stderrors.Is(err, errors.ErrDecode) {
//	    // corrupt or misdeclared input
//	}
package gameres
