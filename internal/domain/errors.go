package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures for transport mapping.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindRender     ErrorKind = "render"
	KindInternal   ErrorKind = "internal"
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// RenderError reports a failure of the HTML-to-PDF engine.
type RenderError struct {
	Message   string
	Cause     error
	Retryable bool
	Timeout   bool
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError wraps cause as a render failure. Deadline and cancellation
// causes are marked retryable; a deadline also sets Timeout.
func NewRenderError(msg string, cause error) *RenderError {
	re := &RenderError{Message: msg, Cause: cause}
	switch {
	case errors.Is(cause, context.DeadlineExceeded):
		re.Timeout = true
		re.Retryable = true
	case errors.Is(cause, context.Canceled):
		re.Retryable = true
	}
	return re
}

// InternalError reports an unexpected failure.
type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("internal error: %s", e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

// NewInternalError wraps cause as an internal failure.
func NewInternalError(msg string, cause error) *InternalError {
	return &InternalError{Message: msg, Cause: cause}
}

// KindOf maps err to its error kind. Bare context deadline errors count as
// render failures since only the renderer blocks.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	var re *RenderError
	if errors.As(err, &re) {
		return KindRender
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindRender
	}
	return KindInternal
}

// IsRetryable reports whether repeating the whole request may succeed.
func IsRetryable(err error) bool {
	var re *RenderError
	if errors.As(err, &re) {
		return re.Retryable
	}
	return errors.Is(err, context.DeadlineExceeded)
}
