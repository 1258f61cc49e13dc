package std

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors returned by this package wrap one of these and can be matched with
// [errors.Is].
var (
	ErrLibraryNotFound  = NewError("standard library not found")
	ErrBaseNotFound     = NewError("base standard library not found")
	ErrCircularBase     = NewError("circular base standard library")
	ErrDuplicateLibrary = NewError("standard library already registered")
	ErrInvalidLibrary   = NewError("invalid standard library")
	ErrInvalidField     = NewError("invalid field")
	ErrAmbiguousField   = NewError("field is both a property and a function")
	ErrUnknownFieldKind = NewError("can't determine what kind of field this is")
	ErrUnknownType      = NewError("unknown argument type")
	ErrUnknownWritable  = NewError("unknown writable policy")
	ErrInvalidShape     = NewError("invalid value shape")
	ErrDecode           = NewError("failed to decode standard library")
	ErrReadInput        = NewError("failed to read input")
	ErrUnknownFormat    = NewError("unknown source format")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
//
// String-valued attributes are rendered after the message so that the
// library and field responsible for a failure survive outside of structured
// logs:
//
//	invalid field (field=string.format): unknown argument type: frobnicate
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.msg)

	labels := make([]string, 0, len(e.attrs))

	for _, attr := range e.attrs {
		if attr.Value.Kind() == slog.KindString {
			labels = append(labels, attr.Key+"="+attr.Value.String())
		}
	}

	if len(labels) > 0 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString("(" + strings.Join(labels, ", ") + ")")
	}

	if e.err != nil {
		if sb.Len() > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(e.err.Error())
	}

	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a sentinel with the same message.
// Every [Error.Wrap] and [Error.With] returns a new instance, so identity
// comparison alone would never match the predefined errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}
