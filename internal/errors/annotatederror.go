// Package errors provides annotated errors that carry slog attributes and
// the source location where they were created. It re-exports the standard
// library helpers so callers only need one errors import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
)

// annotatedError wraps an error with a message, slog attributes, and the
// source location of the Wrap call.
type annotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// Wrap annotates err with a message and optional slog attributes. The
// attributes surface in logs through SlogError.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		err:    err,
		attrs:  attrs,
		source: caller(2), //nolint:mnd // skip caller and Wrap.
	}
}

// NewSentinel creates an error intended to be used as a sentinel value
// compared with Is.
func NewSentinel(msg string) error {
	return &annotatedError{
		msg:    msg,
		err:    nil,
		attrs:  nil,
		source: caller(2), //nolint:mnd // skip caller and NewSentinel.
	}
}

// caller resolves the file:line of the caller skip frames up the stack.
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// SlogError converts an error into a slog.Attr grouping the message, the
// annotations collected from the wrapped chain, and the source location of
// the outermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	var (
		annotations []slog.Attr
		source      string
	)
	for unwrapped := err; unwrapped != nil; unwrapped = Unwrap(unwrapped) {
		var annotated *annotatedError
		if errors.As(unwrapped, &annotated) {
			annotations = append(annotations, annotated.attrs...)
			if source == "" {
				source = annotated.source
			}
		}
	}

	attrs := []any{slog.String("message", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		annotationArgs := make([]any, len(annotations))
		for i, attr := range annotations {
			annotationArgs[i] = attr
		}
		attrs = append(attrs, slog.Group("annotations", annotationArgs...))
	}

	return slog.Group("error", attrs...)
}

// DecoratePanic converts a recovered panic value into an annotated error
// pointing at the panic site.
func DecoratePanic(recovered any) error {
	return &annotatedError{
		msg:    fmt.Sprintf("panic: %v", recovered),
		err:    nil,
		attrs:  nil,
		source: caller(2), //nolint:mnd // skip caller and DecoratePanic.
	}
}

// New re-exports the standard library errors.New.
func New(text string) error {
	return errors.New(text) //nolint:err113 // deliberate re-export.
}

// Is re-exports the standard library errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As re-exports the standard library errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join re-exports the standard library errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap re-exports the standard library errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
