package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erraggy/asyncforge/aserrors"
	"github.com/erraggy/asyncforge/bindings"
	"github.com/erraggy/asyncforge/builder"
	"github.com/erraggy/asyncforge/discovery"
	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/internal/issues"
	"github.com/erraggy/asyncforge/logging"
	"github.com/erraggy/asyncforge/processing"
	"github.com/erraggy/asyncforge/source"
	"github.com/erraggy/asyncforge/validator"
)

// Pipeline compiles source graphs into AsyncAPI documents. A Pipeline is
// immutable after New and may run several graphs, one at a time or
// concurrently.
type Pipeline struct {
	registry *bindings.Registry
	cfg      *config
	logger   logging.Logger
}

// New creates a Pipeline that resolves bindings through registry.
func New(registry *bindings.Registry, opts ...Option) (*Pipeline, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: invalid options: %w", err)
	}
	return &Pipeline{
		registry: registry,
		cfg:      cfg,
		logger:   logging.OrNop(cfg.logger).With("output", cfg.outputName),
	}, nil
}

// Artifact describes one document handed to the sink.
type Artifact struct {
	Name string        `json:"name"`
	Kind document.Kind `json:"kind"`
	Size int           `json:"size"`
}

// Result is the outcome of a pipeline run.
type Result struct {
	// Document is the assembled document, present once generation ran
	Document *document.Document
	// Validation is the validation result, present once validation ran
	Validation *validator.ValidationResult
	// Processing is the processing report, present once processing ran
	Processing *processing.Report
	// Diagnostics holds every stage's diagnostics in emission order
	Diagnostics []Diagnostic
	// Timings holds one entry per stage that ran
	Timings []Timing
	// Artifacts lists what the sink accepted
	Artifacts []Artifact
}

// Valid reports whether validation ran and found no errors.
func (r *Result) Valid() bool {
	return r != nil && r.Validation != nil && r.Validation.Valid
}

// Errors returns the blocking diagnostics.
func (r *Result) Errors() []Diagnostic {
	return r.filter(true)
}

// Warnings returns the non-blocking diagnostics.
func (r *Result) Warnings() []Diagnostic {
	return r.filter(false)
}

func (r *Result) filter(blocking bool) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity.Blocks() == blocking {
			out = append(out, d)
		}
	}
	return out
}

// record appends a stage outcome to the result.
func record[T any](p *Pipeline, res *Result, sr StageResult[T]) {
	res.Timings = append(res.Timings, Timing{Stage: sr.Stage, Duration: sr.Duration})
	res.Diagnostics = append(res.Diagnostics, sr.Diagnostics...)
	p.cfg.metrics.observeStage(sr.Stage, sr.Duration.Seconds())
	p.cfg.metrics.observeDiagnostics(sr.Diagnostics)
}

// Run executes every stage over g. The returned error is an
// *aserrors.FatalError when the run could not start or was cancelled, in
// which case the partial result is still returned, or an *aserrors.SinkError
// when the sink rejected the document.
func (p *Pipeline) Run(ctx context.Context, g source.Graph) (*Result, error) {
	res := &Result{}
	if err := p.preflight(ctx, g); err != nil {
		p.cfg.metrics.observeRun("failed")
		p.logger.Error("pipeline aborted", "error", err)
		return res, err
	}
	start := time.Now()

	disc := timed(func() StageResult[*discovery.Result] { return p.discover(ctx, g) })
	record(p, res, disc)
	if disc.Failed() {
		return p.abort(res, disc.Stage, disc.Err)
	}

	gen := timed(func() StageResult[generated] { return p.generate(g) })
	record(p, res, gen)
	res.Document = gen.Value.doc

	proc := timed(func() StageResult[*processing.Report] {
		return p.process(ctx, gen.Value, disc.Value)
	})
	record(p, res, proc)
	res.Processing = proc.Value
	if proc.Failed() {
		return p.abort(res, proc.Stage, proc.Err)
	}

	val := timed(func() StageResult[*validator.ValidationResult] { return p.validate(ctx, res.Document) })
	record(p, res, val)
	res.Validation = val.Value
	if val.Failed() {
		return p.abort(res, val.Stage, val.Err)
	}

	var sinkErr error
	if p.cfg.sink != nil {
		emit := timed(func() StageResult[[]Artifact] { return p.emit(ctx, res.Document, res.Valid()) })
		record(p, res, emit)
		res.Artifacts = emit.Value
		sinkErr = emit.Err
	}

	outcome := "valid"
	if !res.Valid() {
		outcome = "invalid"
	}
	p.cfg.metrics.observeRun(outcome)
	p.logger.Info("pipeline complete",
		"valid", res.Valid(),
		"errors", len(res.Errors()),
		"warnings", len(res.Warnings()),
		"artifacts", len(res.Artifacts),
		"duration", time.Since(start),
	)
	return res, sinkErr
}

func (p *Pipeline) preflight(ctx context.Context, g source.Graph) error {
	switch {
	case ctx == nil:
		return &aserrors.FatalError{Message: "context is nil"}
	case g == nil:
		return &aserrors.FatalError{Message: "source graph is nil"}
	case p.registry == nil:
		return &aserrors.FatalError{Message: "binding registry is nil"}
	}
	if err := ctx.Err(); err != nil {
		return &aserrors.FatalError{Message: "context done before start", Cause: err}
	}
	return nil
}

func (p *Pipeline) abort(res *Result, stage string, err error) (*Result, error) {
	p.cfg.metrics.observeRun("failed")
	p.logger.Error("pipeline aborted", "stage", stage, "error", err)
	return res, &aserrors.FatalError{Stage: stage, Cause: err}
}

func (p *Pipeline) discover(ctx context.Context, g source.Graph) StageResult[*discovery.Result] {
	found, err := discovery.Discover(ctx, g, discovery.WithLogger(p.logger))
	if err != nil {
		return Fail[*discovery.Result](StageDiscovery, err)
	}
	return Ok(StageDiscovery, found, found.Warnings...)
}

// generated is the output of the generation stage.
type generated struct {
	doc     *document.Document
	servers []*source.ServerDecl
}

func (p *Pipeline) generate(g source.Graph) StageResult[generated] {
	b := builder.New(builder.WithLogger(p.logger))
	doc := b.CreateInitialDocument(g)
	builder.UpdateInfo(doc, g.Info())
	return Ok(StageGeneration, generated{doc: doc, servers: b.ServerDecls()}, b.Warnings()...)
}

func (p *Pipeline) process(ctx context.Context, gen generated, found *discovery.Result) StageResult[*processing.Report] {
	proc := processing.New(p.registry,
		processing.WithLogger(p.logger),
		processing.WithCollisionPolicy(p.cfg.policy),
		processing.WithConcurrency(p.cfg.concurrency),
	)
	rep, err := proc.Process(ctx, gen.doc, found, gen.servers...)
	if err != nil {
		r := Fail[*processing.Report](StageProcessing, err)
		r.Value = rep
		return r
	}
	m := p.cfg.metrics
	m.addElements("channel", rep.Channels)
	m.addElements("operation", rep.Operations)
	m.addElements("message", rep.Messages)
	m.addElements("schema", rep.Schemas)
	m.addElements("securityScheme", rep.SecuritySchemes)
	m.addElements("binding", rep.Bindings)
	return Ok(StageProcessing, rep, rep.Issues...)
}

func (p *Pipeline) validate(ctx context.Context, doc *document.Document) StageResult[*validator.ValidationResult] {
	vr, err := validator.ValidateContext(ctx, doc, validator.WithStrictMode(p.cfg.strict))
	if err != nil {
		r := Fail[*validator.ValidationResult](StageValidation, err)
		r.Value = vr
		return r
	}
	return Ok(StageValidation, vr, vr.Issues()...)
}

func (p *Pipeline) emit(ctx context.Context, doc *document.Document, valid bool) StageResult[[]Artifact] {
	if !valid && !p.cfg.writeInvalid {
		p.logger.Warn("document is invalid; not writing", "name", p.cfg.outputName)
		return Ok[[]Artifact](StageEmit, nil,
			issues.Warningf(StageEmit, p.cfg.outputName, "document is invalid and was not written"))
	}
	var (
		artifacts []Artifact
		diags     []Diagnostic
		errs      []error
	)
	for _, kind := range p.cfg.formats {
		content, err := document.Marshal(doc, kind)
		if err == nil {
			err = p.cfg.sink.Write(ctx, p.cfg.outputName, content, kind)
		}
		if err != nil {
			var se *aserrors.SinkError
			if !errors.As(err, &se) {
				err = &aserrors.SinkError{Destination: p.cfg.outputName, Kind: string(kind), Cause: err}
			}
			diags = append(diags, issues.Errorf(StageEmit, p.cfg.outputName, "%v", err))
			errs = append(errs, err)
			continue
		}
		artifacts = append(artifacts, Artifact{Name: p.cfg.outputName, Kind: kind, Size: len(content)})
	}
	return StageResult[[]Artifact]{Stage: StageEmit, Value: artifacts, Diagnostics: diags, Err: errors.Join(errs...)}
}
