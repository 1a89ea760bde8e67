// Package schema declares a small set of resource structs across three
// format generations: bones, mesh parts and the skeleton header.
//
// Structs that change between generations have one Go type and one
// descriptor per generation, selected by Game through layout.Variants:
//
//	desc, err := schema.Bones.Select(schema.Gen2)
//
// Skeleton implements codec.BodyDecoder and codec.BodyEncoder.
package schema
