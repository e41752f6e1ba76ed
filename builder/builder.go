package builder

import (
	"fmt"

	"github.com/go-openapi/spec"

	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/internal/issues"
	"github.com/erraggy/asyncforge/internal/refs"
	"github.com/erraggy/asyncforge/logging"
	"github.com/erraggy/asyncforge/source"
)

// Info defaults written by CreateInitialDocument.
const (
	DefaultTitle       = "AsyncAPI"
	DefaultVersion     = "1.0.0"
	DefaultDescription = "Generated AsyncAPI specification"
)

// Option configures a Builder.
type Option func(*config)

type config struct {
	logger logging.Logger
}

// WithLogger sets the logger used for recovered failures.
func WithLogger(l logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Builder creates initial documents and collects the warnings raised while
// doing so.
//
// Concurrency: Builder instances are not safe for concurrent use.
type Builder struct {
	logger      logging.Logger
	warnings    []issues.Issue
	serverDecls []*source.ServerDecl
}

// New returns a Builder.
func New(opts ...Option) *Builder {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Builder{logger: logging.OrNop(cfg.logger)}
}

// Warnings returns the warnings recorded by previous calls.
func (b *Builder) Warnings() []issues.Issue {
	return b.warnings
}

// ServerDecls returns the server declarations converted by the last
// CreateInitialDocument call, so later stages can attach their bindings.
func (b *Builder) ServerDecls() []*source.ServerDecl {
	return b.serverDecls
}

// CreateInitialDocument returns a document with default info, empty
// channels and operations, and all component maps initialized. Servers are
// derived from the graph's namespace declarations; if that fails the servers
// map is omitted and a warning is recorded.
func (b *Builder) CreateInitialDocument(g source.Graph) *document.Document {
	b.serverDecls = nil
	doc := &document.Document{
		AsyncAPI: document.Version,
		Info: &document.Info{
			Title:       DefaultTitle,
			Version:     DefaultVersion,
			Description: DefaultDescription,
		},
	}
	EnsureStructure(doc)

	if g == nil {
		return doc
	}
	servers, err := b.deriveServers(g)
	if err != nil {
		b.logger.Warn("omitting servers", "error", err)
		b.warnings = append(b.warnings, issues.Warningf(issues.StageGeneration, "servers", "servers omitted: %v", err))
		return doc
	}
	if servers.Len() > 0 {
		doc.Servers = servers
	}
	return doc
}

// deriveServers converts namespace server declarations, recovering from a
// panicking adapter.
func (b *Builder) deriveServers(g source.Graph) (servers *document.OrderedMap[*document.Server], err error) {
	defer func() {
		if r := recover(); r != nil {
			b.serverDecls = nil
			servers, err = nil, fmt.Errorf("server derivation panicked: %v", r)
		}
	}()
	decls, err := g.NamespaceServers()
	if err != nil {
		return nil, err
	}
	servers = document.NewOrderedMap[*document.Server]()
	for _, d := range decls {
		if d == nil || d.Name == "" {
			continue
		}
		servers.Set(d.Name, ServerFromDecl(d))
		b.serverDecls = append(b.serverDecls, d)
	}
	return servers, nil
}

// ServerFromDecl converts a server declaration. Binding declarations are
// left for the processing stage.
func ServerFromDecl(d *source.ServerDecl) *document.Server {
	s := &document.Server{
		Host:            d.Host,
		Protocol:        d.Protocol,
		ProtocolVersion: d.ProtocolVersion,
		Pathname:        d.Pathname,
		Description:     d.Description,
	}
	for _, name := range d.Security {
		s.Security = append(s.Security, document.Ref(refs.SecurityScheme(name)))
	}
	return s
}

// UpdateInfo shallow-merges the non-empty fields of partial into doc.Info.
// Fields not set in partial are left unchanged.
func UpdateInfo(doc *document.Document, partial *document.Info) {
	if doc == nil || partial == nil {
		return
	}
	if doc.Info == nil {
		doc.Info = &document.Info{}
	}
	info := doc.Info
	if partial.Title != "" {
		info.Title = partial.Title
	}
	if partial.Version != "" {
		info.Version = partial.Version
	}
	if partial.Description != "" {
		info.Description = partial.Description
	}
	if partial.TermsOfService != "" {
		info.TermsOfService = partial.TermsOfService
	}
	if partial.Contact != nil {
		info.Contact = partial.Contact
	}
	if partial.License != nil {
		info.License = partial.License
	}
	if len(partial.Tags) > 0 {
		info.Tags = partial.Tags
	}
}

// EnsureComponents makes sure the components block and its three maps exist.
func EnsureComponents(doc *document.Document) {
	if doc == nil {
		return
	}
	if doc.Components == nil {
		doc.Components = &document.Components{}
	}
	c := doc.Components
	if c.Schemas == nil {
		c.Schemas = document.NewOrderedMap[*spec.Schema]()
	}
	if c.Messages == nil {
		c.Messages = document.NewOrderedMap[*document.Message]()
	}
	if c.SecuritySchemes == nil {
		c.SecuritySchemes = document.NewOrderedMap[*document.SecurityScheme]()
	}
}

// EnsureStructure makes sure the version, info, channels, operations and
// components are present.
func EnsureStructure(doc *document.Document) {
	if doc == nil {
		return
	}
	if doc.AsyncAPI == "" {
		doc.AsyncAPI = document.Version
	}
	if doc.Info == nil {
		doc.Info = &document.Info{Title: DefaultTitle, Version: DefaultVersion, Description: DefaultDescription}
	}
	if doc.Channels == nil {
		doc.Channels = document.NewOrderedMap[*document.Channel]()
	}
	if doc.Operations == nil {
		doc.Operations = document.NewOrderedMap[*document.Operation]()
	}
	EnsureComponents(doc)
}
