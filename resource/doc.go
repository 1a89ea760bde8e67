// Package resource defines the identity values exchanged between the
// layout, typemap and codec packages.
//
// # Keys and References
//
// A Key names a resource by (Type, ID). A Reference adds a byte offset
// inside the referenced resource's body:
//
//	key := resource.NewKey(resource.TypeSkeleton, 0x1F2A)
//	ref := resource.NewReference(key, 0x40)
//
// Both are plain comparable values. Struct fields holding references use
// *Reference, with nil as the null reference.
//
// # Address Widths
//
// Every resource is stored in one of two address-width profiles:
//
//	Width32   4-byte pointers
//	Width64   8-byte pointers
//
// # Reference Table
//
// A Table is the decoded reference section of one resource: pointer slot
// position to target key. It is seeded once and never mutated:
//
//	table, err := resource.NewTable(entries)
//	key, ok := table.Lookup(site)
package resource
