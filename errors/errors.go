package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLayout    Phase = "layout"    // descriptor registration
	PhaseDecode    Phase = "decode"    // bytes to Go
	PhaseEncode    Phase = "encode"    // Go to bytes
	PhaseBuild     Phase = "build"     // relocation finalize
	PhaseBitstream Phase = "bitstream" // packed bit I/O
	PhaseConfig    Phase = "config"    // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindLayoutMismatch      Kind = "layout_mismatch"
	KindTypeMismatch        Kind = "type_mismatch"
	KindFieldMissing        Kind = "field_missing"
	KindDuplicate           Kind = "duplicate"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindDanglingReference   Kind = "dangling_reference"
	KindUnresolvedReference Kind = "unresolved_reference"
	KindInvalidData         Kind = "invalid_data"
	KindInvalidInput        Kind = "invalid_input"
	KindNotFound            Kind = "not_found"
	KindOverflow            Kind = "overflow"
)

// Sentinels for errors.Is. A sentinel with an empty Kind matches any
// error of its phase.
var (
	ErrLayout              = &Error{Phase: PhaseLayout}
	ErrDecode              = &Error{Phase: PhaseDecode}
	ErrEncode              = &Error{Phase: PhaseEncode}
	ErrUnresolvedReference = &Error{Phase: PhaseBuild, Kind: KindUnresolvedReference}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Struct string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Struct != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Struct != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", struct ")
			b.WriteString(e.Struct)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("struct ")
			b.WriteString(e.Struct)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Struct != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == "" {
		return e.Phase == t.Phase
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Struct sets the descriptor name
func (b *Builder) Struct(name string) *Builder {
	b.err.Struct = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// LayoutMismatch reports a declared struct size that disagrees with the
// computed layout for one address-width profile.
func LayoutMismatch(structName string, width int, declared, computed int) *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   KindLayoutMismatch,
		Struct: structName,
		Detail: fmt.Sprintf("%d-bit profile: declared size %#x, computed %#x", width*8, declared, computed),
		Value:  computed,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, structName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Struct: structName,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// OutOfBounds creates an out of bounds error for a read or write of
// length bytes at pos against a buffer of size bytes.
func OutOfBounds(phase Phase, path []string, pos, length, size int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("%d bytes at %#x exceed buffer of %#x bytes", length, pos, size),
		Value:  pos,
	}
}

// DanglingReference reports a nonzero pointer slot without a reference
// section entry.
func DanglingReference(path []string, pos int64, raw uint64) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindDanglingReference,
		Path:   path,
		Detail: fmt.Sprintf("raw pointer %#x at %#x has no reference entry", raw, pos),
		Value:  raw,
	}
}

// UnresolvedReference reports a placeholder that was reserved but never
// assigned a target offset.
func UnresolvedReference(site int64, target string) *Error {
	return &Error{
		Phase:  PhaseBuild,
		Kind:   KindUnresolvedReference,
		Detail: fmt.Sprintf("placeholder at body offset %#x targeting %s was never set", site, target),
		Value:  site,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
