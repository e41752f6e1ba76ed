// Package severity provides severity level constants and utilities
// for diagnostics reported by the discovery, processing, and validation stages.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
//
// Only SeverityError makes a document invalid. SeverityCritical is reserved for
// conditions that abort a pipeline run before any stage executes.
package severity

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	// SeverityError indicates a structural or referential violation that makes
	// the generated document invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates an advisory condition: a degraded stage, a skipped
	// element, or a best-practice recommendation. Warnings never affect validity.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo

	// SeverityCritical indicates a fatal condition that aborted the run.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Blocks reports whether the severity prevents a document from being valid.
func (s Severity) Blocks() bool {
	return s == SeverityError || s == SeverityCritical
}

// MarshalText encodes the severity as its lowercase name so JSON and YAML
// reports carry "error" instead of an integer.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
