package processing

import (
	"context"
	"errors"

	"github.com/go-openapi/spec"

	"github.com/erraggy/asyncforge/bindings"
	"github.com/erraggy/asyncforge/builder"
	"github.com/erraggy/asyncforge/discovery"
	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/internal/issues"
	"github.com/erraggy/asyncforge/internal/naming"
	"github.com/erraggy/asyncforge/internal/refs"
	"github.com/erraggy/asyncforge/logging"
	"github.com/erraggy/asyncforge/source"
)

// Processor writes discovered elements into a document.
type Processor struct {
	registry    *bindings.Registry
	logger      logging.Logger
	policy      CollisionPolicy
	concurrency int
}

// New returns a Processor that resolves bindings through registry. A nil
// registry treats every binding type as unsupported.
func New(registry *bindings.Registry, opts ...Option) *Processor {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Processor{
		registry:    registry,
		logger:      logging.OrNop(cfg.logger),
		policy:      cfg.policy,
		concurrency: cfg.concurrency,
	}
}

// Report summarizes a processing run.
type Report struct {
	// Issues holds warnings and errors in emission order.
	Issues []issues.Issue
	// Skipped names the elements that were not written.
	Skipped []string

	Channels        int
	Operations      int
	Messages        int
	Schemas         int
	SecuritySchemes int
	Bindings        int
}

// HasErrors reports whether any issue blocks.
func (r *Report) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity.Blocks() {
			return true
		}
	}
	return false
}

func (r *Report) add(i issues.Issue) {
	r.Issues = append(r.Issues, i)
}

var errNilDocument = errors.New("processing: nil document")

// Process writes every element of discovered into doc, then contributes
// bindings for the elements and servers carrying binding declarations.
// Element failures are recorded in the report and never abort the run; the
// returned error is non-nil only for a nil document or a cancelled context.
func (p *Processor) Process(ctx context.Context, doc *document.Document, discovered *discovery.Result, servers ...*source.ServerDecl) (*Report, error) {
	rep := &Report{}
	if doc == nil {
		return rep, errNilDocument
	}
	builder.EnsureStructure(doc)
	if discovered == nil {
		discovered = &discovery.Result{}
	}

	var tasks []bindingTask
	for _, el := range discovered.Operations {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		tasks = append(tasks, p.operation(doc, rep, el)...)
	}
	for _, el := range discovered.Models {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		tasks = append(tasks, p.model(doc, rep, el)...)
	}
	for _, el := range discovered.SecurityConfigs {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		p.security(doc, rep, el)
	}
	for _, s := range servers {
		if s == nil || len(s.Bindings) == 0 {
			continue
		}
		for _, decl := range s.Bindings {
			tasks = append(tasks, bindingTask{
				element: s.Name,
				decl:    decl,
				level:   bindings.LevelServer,
				server:  s.Name,
			})
		}
	}

	if err := p.applyBindings(ctx, doc, rep, tasks); err != nil {
		return rep, err
	}
	p.logger.Debug("processing complete",
		"channels", rep.Channels,
		"operations", rep.Operations,
		"messages", rep.Messages,
		"schemas", rep.Schemas,
		"bindings", rep.Bindings,
		"issues", len(rep.Issues),
	)
	return rep, nil
}

func (p *Processor) skip(rep *Report, el discovery.Element, format string, args ...any) {
	p.logger.Warn("skipping element", "element", el.Name)
	rep.Skipped = append(rep.Skipped, el.Name)
	rep.add(issues.Warningf(issues.StageProcessing, string(el.ID), format, args...).WithElement(el.Name))
}

// operation writes the channel, operation and message for one operation and
// returns its binding tasks.
func (p *Processor) operation(doc *document.Document, rep *Report, el discovery.Element) []bindingTask {
	if el.Name == "" || el.Metadata == nil || el.Metadata.Operation == nil {
		p.skip(rep, el, "operation %q has no name or metadata", el.Name)
		return nil
	}
	meta := el.Metadata.Operation
	chName := naming.ChannelName(el.Name)
	msgName := naming.MessageName(el.Name)

	address := meta.ChannelPath
	if address == "" {
		address = naming.DefaultAddress(el.Name)
	}
	action := document.ActionSend
	if meta.OpType == source.OpTypeSubscribe {
		action = document.ActionReceive
	}

	ch := &document.Channel{
		Address:     address,
		Description: meta.Description,
		Messages:    map[string]*document.Reference{msgName: document.Ref(refs.Message(msgName))},
	}
	op := &document.Operation{
		Action:      action,
		Channel:     document.Ref(refs.Channel(chName)),
		Title:       meta.Title,
		Summary:     meta.Summary,
		Description: meta.Description,
		Messages:    []*document.Reference{document.Ref(refs.ChannelMessage(chName, msgName))},
	}
	for _, s := range meta.Security {
		op.Security = append(op.Security, document.Ref(refs.SecurityScheme(s)))
	}
	msg := &document.Message{
		Name:        msgName,
		Title:       naming.Title(el.Name),
		Summary:     meta.Summary,
		ContentType: document.DefaultContentType,
	}
	if meta.Payload != "" {
		msg.Payload = spec.RefSchema(refs.Schema(meta.Payload))
	}

	if put(p, rep, doc.Channels, "channel", chName, el, ch) {
		rep.Channels++
	}
	if put(p, rep, doc.Operations, "operation", el.Name, el, op) {
		rep.Operations++
	}
	if put(p, rep, doc.Components.Messages, "message", msgName, el, msg) {
		rep.Messages++
	}

	tasks := make([]bindingTask, 0, len(meta.Bindings))
	for _, decl := range meta.Bindings {
		tasks = append(tasks, bindingTask{
			element:   el.Name,
			decl:      decl,
			level:     bindings.LevelChannel,
			channel:   chName,
			operation: el.Name,
			message:   msgName,
		})
	}
	return tasks
}

// model writes the model's schema and, when a message configuration is
// attached, its message component.
func (p *Processor) model(doc *document.Document, rep *Report, el discovery.Element) []bindingTask {
	if el.Name == "" || el.Metadata == nil || el.Metadata.Model == nil {
		p.skip(rep, el, "message model %q has no name or metadata", el.Name)
		return nil
	}
	schema := el.Metadata.Model.Schema
	if schema == nil {
		schema = new(spec.Schema).Typed("object", "")
	}
	if put(p, rep, doc.Components.Schemas, "schema", el.Name, el, schema) {
		rep.Schemas++
	}

	cfg := el.Metadata.Message
	if cfg == nil {
		return nil
	}
	name := firstNonEmpty(cfg.Name, el.Name)
	msg := &document.Message{
		Name:          name,
		Title:         firstNonEmpty(cfg.Title, el.Name),
		Summary:       cfg.Summary,
		Description:   cfg.Description,
		ContentType:   firstNonEmpty(cfg.ContentType, document.DefaultContentType),
		Payload:       spec.RefSchema(refs.Schema(el.Name)),
		CorrelationID: cfg.CorrelationID,
		Examples:      cfg.Examples,
	}
	if cfg.Headers != "" {
		msg.Headers = spec.RefSchema(refs.Schema(cfg.Headers))
	}
	if put(p, rep, doc.Components.Messages, "message", name, el, msg) {
		rep.Messages++
	}

	tasks := make([]bindingTask, 0, len(cfg.Bindings))
	for _, decl := range cfg.Bindings {
		tasks = append(tasks, bindingTask{
			element: el.Name,
			decl:    decl,
			level:   bindings.LevelMessage,
			message: name,
		})
	}
	return tasks
}

func (p *Processor) security(doc *document.Document, rep *Report, el discovery.Element) {
	if el.Name == "" || el.Metadata == nil || el.Metadata.Security == nil {
		p.skip(rep, el, "security declaration %q has no name or metadata", el.Name)
		return
	}
	if put(p, rep, doc.Components.SecuritySchemes, "security scheme", el.Name, el, builder.SecuritySchemeFor(el.Metadata.Security)) {
		rep.SecuritySchemes++
	}
}

// put writes v under key following the collision policy and reports whether
// it was written.
func put[V any](p *Processor, rep *Report, m *document.OrderedMap[V], kind, key string, el discovery.Element, v V) bool {
	if m.Has(key) {
		switch p.policy {
		case CollisionWarn:
			rep.add(issues.Warningf(issues.StageProcessing, string(el.ID),
				"%s %q was already written; replacing it", kind, key).WithElement(el.Name))
		case CollisionError:
			rep.add(issues.Errorf(issues.StageProcessing, string(el.ID),
				"duplicate %s %q; keeping the first definition", kind, key).WithElement(el.Name))
			return false
		}
		p.logger.Debug("replacing entry", "kind", kind, "key", key, "element", el.Name)
	}
	m.Set(key, v)
	return true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
