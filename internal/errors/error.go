package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategorySnapshot   Category = "snapshot"
	CategorySerializer Category = "serializer"
	CategoryCodec      Category = "codec"
	CategoryArchive    Category = "archive"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// RouterStoreError is a structured error with a code, explanation and hint.
type RouterStoreError struct {
	// Code is a unique error identifier (e.g., "R001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this occurrence.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RouterStoreError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RouterStoreError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a RouterStoreError with the same code.
func (e *RouterStoreError) Is(target error) bool {
	t, ok := target.(*RouterStoreError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RouterStoreError) WithSuggestion(s string) *RouterStoreError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *RouterStoreError) WithDetail(d string) *RouterStoreError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *RouterStoreError) Wrap(err error) *RouterStoreError {
	e.Wrapped = err
	return e
}

// New creates a RouterStoreError from a registered error code.
func New(code string) *RouterStoreError {
	template, ok := registry[code]
	if !ok {
		return &RouterStoreError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RouterStoreError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new RouterStoreError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RouterStoreError {
	return &RouterStoreError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a RouterStoreError.
func FromError(err error, code string) *RouterStoreError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RouterStoreError); ok {
		return re
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first RouterStoreError in err's chain, or "".
func Code(err error) string {
	for err != nil {
		if re, ok := err.(*RouterStoreError); ok && re.Code != "" {
			return re.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
