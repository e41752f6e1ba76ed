package pipeline

import (
	"time"

	"github.com/erraggy/asyncforge/internal/issues"
)

// Diagnostic is a warning or error raised by any stage.
type Diagnostic = issues.Issue

// Stage names, shared with Diagnostic.Stage.
const (
	StageDiscovery  = issues.StageDiscovery
	StageGeneration = issues.StageGeneration
	StageProcessing = issues.StageProcessing
	StageBinding    = issues.StageBinding
	StageValidation = issues.StageValidation
	StageEmit       = issues.StageEmit
)

// StageResult is the outcome of one stage: a value plus the diagnostics it
// raised, or a failure that stops the run.
type StageResult[T any] struct {
	Stage       string
	Value       T
	Diagnostics []Diagnostic
	Err         error
	Duration    time.Duration
}

// Ok returns a successful result.
func Ok[T any](stage string, v T, diags ...Diagnostic) StageResult[T] {
	return StageResult[T]{Stage: stage, Value: v, Diagnostics: diags}
}

// Fail returns a failed result.
func Fail[T any](stage string, err error) StageResult[T] {
	return StageResult[T]{Stage: stage, Err: err}
}

// Failed reports whether the stage failed.
func (r StageResult[T]) Failed() bool {
	return r.Err != nil
}

// Timing records how long a stage took.
type Timing struct {
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"duration"`
}

// timed runs fn and stamps the result with its duration.
func timed[T any](fn func() StageResult[T]) StageResult[T] {
	start := time.Now()
	r := fn()
	r.Duration = time.Since(start)
	return r
}
