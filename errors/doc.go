// Package errors provides structured error types for the gameres module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go type and struct names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidData).
//		Path("skeleton", "bones").
//		Struct("Bone").
//		Detail("bone count %d exceeds table", n).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.LayoutMismatch("Bone", 8, 0x40, 0x48)
//	err := errors.DanglingReference(path, 0x20, 0x11)
//
// The three fatal classes of the engine map to phases:
//
//	LayoutError              PhaseLayout   (registration time)
//	DecodeError              PhaseDecode
//	UnresolvedReferenceError PhaseBuild + KindUnresolvedReference
//
// All errors implement the standard error interface and support errors.Is/As.
// The ErrLayout, ErrDecode, ErrEncode and ErrUnresolvedReference sentinels
// match by phase (and kind where set).
package errors
