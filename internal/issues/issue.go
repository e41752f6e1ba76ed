// Package issues provides the diagnostic type shared by every pipeline stage.
package issues

import (
	"fmt"

	"github.com/erraggy/asyncforge/internal/severity"
)

// Stage names used in Issue.Stage.
const (
	StageDiscovery  = "discovery"
	StageGeneration = "generation"
	StageProcessing = "processing"
	StageBinding    = "binding"
	StageValidation = "validation"
	StageEmit       = "emit"
)

// Issue represents a single diagnostic raised while assembling or validating a document.
type Issue struct {
	// Path is the dotted document path of the problem (e.g., "operations.publishOrder.action")
	Path string `json:"path" yaml:"path"`
	// Message is a human-readable description of the issue
	Message string `json:"message" yaml:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Stage names the pipeline stage that raised the issue
	Stage string `json:"stage,omitempty" yaml:"stage,omitempty"`
	// Element is the name of the discovered element the issue relates to, if any
	Element string `json:"element,omitempty" yaml:"element,omitempty"`
	// Field is the specific field name that has the issue
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	// Value is the problematic value (optional)
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	location := i.Path
	if location == "" {
		location = "document"
	}
	if i.Element != "" {
		location = fmt.Sprintf("%s (element: %s)", location, i.Element)
	}
	return fmt.Sprintf("%s %s: %s", symbol, location, i.Message)
}

// Text returns "path: message" without the severity symbol. It is the plain
// string form used for the ordered error and warning lists.
func (i Issue) Text() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// New builds an issue for the given stage.
func New(stage string, sev severity.Severity, path, message string) Issue {
	return Issue{Stage: stage, Severity: sev, Path: path, Message: message}
}

// Warningf builds a warning issue with a formatted message.
func Warningf(stage, path, format string, args ...any) Issue {
	return New(stage, severity.SeverityWarning, path, fmt.Sprintf(format, args...))
}

// Errorf builds an error issue with a formatted message.
func Errorf(stage, path, format string, args ...any) Issue {
	return New(stage, severity.SeverityError, path, fmt.Sprintf(format, args...))
}

// WithElement returns a copy of the issue tagged with the element name.
func (i Issue) WithElement(name string) Issue {
	i.Element = name
	return i
}
