package aserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrFatal indicates the pipeline aborted before or during a stage.
	ErrFatal = errors.New("fatal error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrBinding indicates a binding declaration could not be processed.
	ErrBinding = errors.New("binding error")

	// ErrUnsupportedBinding indicates no plugin is registered for a binding type.
	ErrUnsupportedBinding = errors.New("unsupported binding type")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrSink indicates the output sink failed to accept an artifact.
	ErrSink = errors.New("sink error")

	// ErrInvalidDestination indicates an output name that is empty or escapes
	// the sink's root.
	ErrInvalidDestination = errors.New("invalid output destination")
)

// FatalError represents a condition that aborts the whole pipeline run.
type FatalError struct {
	// Stage names the stage that was about to run or was running
	Stage string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FatalError) Error() string {
	msg := "fatal error"
	if e.Stage != "" {
		msg += " in " + e.Stage
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FatalError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FatalError) Is(target error) bool {
	return target == ErrFatal
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// BindingError represents a failure to decode, validate or generate a binding.
type BindingError struct {
	// BindingType is the binding-type identifier (e.g., "kafka")
	BindingType string
	// Element is the name of the element carrying the declaration
	Element string
	// Field is the configuration field at fault, if known
	Field string
	// Required is true when the failure concerns a required identifier; the
	// element's binding is skipped rather than generated.
	Required bool
	// Unsupported is true when no plugin is registered for BindingType
	Unsupported bool
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *BindingError) Error() string {
	msg := "binding error"
	if e.Unsupported {
		msg = "unsupported binding type"
	}
	if e.BindingType != "" {
		msg += " " + e.BindingType
	}
	if e.Element != "" {
		msg += " on " + e.Element
	}
	if e.Field != "" {
		msg += " (field " + e.Field + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *BindingError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrBinding, and ErrUnsupportedBinding when Unsupported is set.
func (e *BindingError) Is(target error) bool {
	if target == ErrBinding {
		return true
	}
	return target == ErrUnsupportedBinding && e.Unsupported
}

// ReferenceError represents a "$ref" that does not resolve.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// From is the document path holding the reference
	From string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.From != "" {
		msg += " (from " + e.From + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}

// SinkError represents a failure reported by an output sink.
type SinkError struct {
	// Destination is the requested output name
	Destination string
	// Kind is the content kind ("json" or "yaml")
	Kind string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SinkError) Error() string {
	msg := "sink error"
	if e.Destination != "" {
		msg += " writing " + e.Destination
	}
	if e.Kind != "" {
		msg += " (" + e.Kind + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SinkError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SinkError) Is(target error) bool {
	return target == ErrSink
}
