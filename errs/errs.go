// Package errs provides the error taxonomy for the compact protocol codec
// and binding layer. It wraps github.com/gostdlib/base/errors the way a
// service-local errors package wraps it: Category/Type become Category/Kind,
// and E() gets our own kind enum instead of ad hoc error strings.
package errs

import (
	"fmt"

	"github.com/gostdlib/base/context"
	"github.com/gostdlib/base/errors"
)

//go:generate stringer -type=Category -linecomment

// Category is a coarse classification of who is responsible for an error:
// the caller's input, or this module's own logic.
type Category uint32

// Category implements github.com/gostdlib/base/errors.Category.
func (c Category) Category() string {
	return c.String()
}

const (
	CatUnknown Category = Category(0) // Unknown
	// CatUser represents an error caused by malformed/hostile wire input.
	CatUser Category = Category(1) // User
	// CatInternal represents a bug in this module.
	CatInternal Category = Category(2) // Internal
)

func (c Category) String() string {
	switch c {
	case CatUser:
		return "User"
	case CatInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

//go:generate stringer -type=Kind -linecomment

// Kind is the specific error taxonomy from the codec/binding design.
type Kind uint16

// Type implements github.com/gostdlib/base/errors.Type.
func (k Kind) Type() string {
	return k.String()
}

const (
	KindUnknown Kind = iota // Unknown

	// KindTransport signals a failure in the underlying byte source/sink.
	KindTransport // Transport
	// KindEndOfStream signals the source was exhausted mid-field.
	KindEndOfStream // EndOfStream
	// KindOverflow signals a varint exceeded its declared bit width, or a
	// list size or binary length exceeded the configured maximum.
	KindOverflow // Overflow
	// KindInvalidCType signals an unknown 4-bit wire type tag.
	KindInvalidCType // InvalidCType
	// KindInvalidState signals an illegal codec call ordering.
	KindInvalidState // InvalidState
	// KindOutOfMemory signals an allocator failure in the binding driver.
	KindOutOfMemory // OutOfMemory
	// KindStackDepth signals nesting exceeded the configured depth bound.
	KindStackDepth // StackDepth
	// KindNotImplemented signals an unsupported ttype (MAP, currently).
	KindNotImplemented // NotImplemented
	// KindCantParseUnion signals a union read yielded no set variant.
	KindCantParseUnion // CantParseUnion
	// KindRequiredFieldMissing signals a struct read lacked a required field.
	KindRequiredFieldMissing // RequiredFieldMissing
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "Transport"
	case KindEndOfStream:
		return "EndOfStream"
	case KindOverflow:
		return "Overflow"
	case KindInvalidCType:
		return "InvalidCType"
	case KindInvalidState:
		return "InvalidState"
	case KindOutOfMemory:
		return "OutOfMemory"
	case KindStackDepth:
		return "StackDepth"
	case KindNotImplemented:
		return "NotImplemented"
	case KindCantParseUnion:
		return "CantParseUnion"
	case KindRequiredFieldMissing:
		return "RequiredFieldMissing"
	default:
		return "Unknown"
	}
}

// LogAttrer is an interface an error can implement to contribute attributes
// when logged.
type LogAttrer = errors.LogAttrer

// Error is this module's error type. It carries a Kind in addition to the
// Category/message that github.com/gostdlib/base/errors.Error already
// tracks.
type Error struct {
	// Err is the underlying structured error.
	Err  errors.Error
	Kind Kind
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the underlying structured error to Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, errs.E(ctx, ..., errs.KindOverflow, nil)) style checks work
// without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// EOption is an optional argument for E().
type EOption = errors.EOption

// WithStackTrace adds a stack trace to the error for debugging.
func WithStackTrace() EOption {
	return errors.WithStackTrace()
}

// WithCallNum sets the runtime.CallNum() used to locate the filename/line
// recorded against the error; needed by wrappers one frame further from the
// call site than E() itself.
func WithCallNum(i int) EOption {
	return errors.WithCallNum(i)
}

// E constructs an *Error of the given category and kind, wrapping cause.
func E(ctx context.Context, c Category, k Kind, cause error, opts ...EOption) *Error {
	o := make([]errors.EOption, 0, len(opts)+1)
	o = append(o, WithCallNum(2))
	o = append(o, opts...)

	base := errors.E(ctx, c, k, cause, o...)
	return &Error{Err: base, Kind: k}
}

// Newf constructs an *Error whose cause is a formatted message, the common
// case inside the codec where there is no underlying error to wrap, only a
// diagnostic to attach (bad state, bad tag, bad size, ...).
func Newf(ctx context.Context, c Category, k Kind, format string, args ...any) *Error {
	return E(ctx, c, k, fmt.Errorf(format, args...), WithCallNum(3))
}
