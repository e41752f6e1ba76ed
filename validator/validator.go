package validator

import (
	"context"

	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/internal/issues"
	"github.com/erraggy/asyncforge/internal/severity"
)

// Issue is a single validation finding.
type Issue = issues.Issue

const (
	defaultErrorCapacity   = 10
	defaultWarningCapacity = 10
)

// ValidationResult holds the findings of one validation run.
type ValidationResult struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Version is the document's asyncapi field
	Version string
	// Errors contains all validation errors in the order they were found
	Errors []Issue
	// Warnings contains all validation warnings in the order they were found
	Warnings []Issue
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// Stats counts the document's entries
	Stats document.Stats
}

// ErrorMessages returns the errors as "path: message" strings.
func (r *ValidationResult) ErrorMessages() []string {
	return texts(r.Errors)
}

// WarningMessages returns the warnings as "path: message" strings.
func (r *ValidationResult) WarningMessages() []string {
	return texts(r.Warnings)
}

// Issues returns errors followed by warnings.
func (r *ValidationResult) Issues() []Issue {
	out := make([]Issue, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	return append(out, r.Warnings...)
}

func texts(list []Issue) []string {
	out := make([]string, 0, len(list))
	for _, i := range list {
		out = append(out, i.Text())
	}
	return out
}

// Validator validates AsyncAPI documents.
type Validator struct {
	// IncludeWarnings determines whether to include warnings in the result
	IncludeWarnings bool
	// StrictMode enables best practice checks beyond the document's requirements
	StrictMode bool
}

// New creates a new Validator instance with default settings.
func New(opts ...Option) *Validator {
	v := &Validator{IncludeWarnings: true}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate validates doc with the given options.
func Validate(doc *document.Document, opts ...Option) *ValidationResult {
	return New(opts...).Validate(doc)
}

// ValidateContext is Validate with cooperative cancellation. It checks ctx
// between top-level entries and, when cancelled, returns the findings so far
// marked invalid together with ctx.Err().
func ValidateContext(ctx context.Context, doc *document.Document, opts ...Option) (*ValidationResult, error) {
	return New(opts...).ValidateContext(ctx, doc)
}

// Validate validates doc. It never fails; problems are reported in the result.
func (v *Validator) Validate(doc *document.Document) *ValidationResult {
	result, _ := v.ValidateContext(context.Background(), doc)
	return result
}

// ValidateContext validates doc, checking ctx between top-level entries.
func (v *Validator) ValidateContext(ctx context.Context, doc *document.Document) (*ValidationResult, error) {
	r := &run{
		v:   v,
		ctx: ctx,
		doc: doc,
		result: &ValidationResult{
			Errors:   make([]Issue, 0, defaultErrorCapacity),
			Warnings: make([]Issue, 0, defaultWarningCapacity),
		},
	}
	err := r.validate()
	return r.finish(err), err
}

// QuickCheck reports whether doc has a version, an info block and at least
// one channel or operation. It is a fast gate, not a substitute for Validate.
func QuickCheck(doc *document.Document) bool {
	if doc == nil || doc.AsyncAPI == "" || doc.Info == nil {
		return false
	}
	return doc.Channels.Len() > 0 || doc.Operations.Len() > 0
}

// run carries the state of one validation pass.
type run struct {
	v      *Validator
	ctx    context.Context
	doc    *document.Document
	result *ValidationResult
}

func (r *run) validate() error {
	if r.doc == nil {
		r.addError("document", "document is missing")
		return nil
	}
	r.result.Version = r.doc.AsyncAPI
	r.result.Stats = r.doc.Stats()

	r.validateRoot()
	r.validateInfo()
	if err := r.validateServers(); err != nil {
		return err
	}
	if err := r.validateChannels(); err != nil {
		return err
	}
	if err := r.validateOperations(); err != nil {
		return err
	}
	if err := r.validateComponents(); err != nil {
		return err
	}
	return r.validateReferences()
}

func (r *run) finish(err error) *ValidationResult {
	res := r.result
	res.ErrorCount = len(res.Errors)
	res.WarningCount = len(res.Warnings)
	res.Valid = res.ErrorCount == 0 && err == nil
	if !r.v.IncludeWarnings {
		res.Warnings = nil
		res.WarningCount = 0
	}
	return res
}

// canceled returns the context error, if any.
func (r *run) canceled() error {
	if r.ctx == nil {
		return nil
	}
	return r.ctx.Err()
}

func (r *run) addError(path, message string, opts ...func(*Issue)) {
	r.result.Errors = append(r.result.Errors, newIssue(severity.SeverityError, path, message, opts))
}

func (r *run) addWarning(path, message string, opts ...func(*Issue)) {
	r.result.Warnings = append(r.result.Warnings, newIssue(severity.SeverityWarning, path, message, opts))
}

func newIssue(sev severity.Severity, path, message string, opts []func(*Issue)) Issue {
	i := issues.New(issues.StageValidation, sev, path, message)
	for _, opt := range opts {
		opt(&i)
	}
	return i
}

// withField sets the Field on an Issue.
func withField(field string) func(*Issue) {
	return func(i *Issue) { i.Field = field }
}

// withValue sets the Value on an Issue.
func withValue(value any) func(*Issue) {
	return func(i *Issue) { i.Value = value }
}

// withElement sets the Element on an Issue.
func withElement(name string) func(*Issue) {
	return func(i *Issue) { i.Element = name }
}
