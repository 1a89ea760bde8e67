// Package typemap converts raw stored field values into the Go types a
// struct exposes.
//
// A Mapping is registered once per (raw type, mapped type) pair during
// package init. The layout package picks the converter for each field when
// a descriptor is registered, so decoding never looks mappings up by value.
//
// Mappings receive the field's byte offset inside its struct and the
// active Context. The built-in References mapping combines the context's
// struct base with the offset to find the pointer slot, then asks a
// Resolver (reader) for the target or tells a Relocator (builder) to
// record a relocation. Without a matching context it returns nil or 0:
//
//	ref, _ := typemap.References{}.FromRaw(0x41, 8, nil) // nil, no error
//
// Built-in mappings:
//
//	Pointer           <-> *resource.Reference
//	uint8/16/32       <-> bool
package typemap
