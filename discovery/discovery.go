// Package discovery walks a source graph and collects the elements that
// contribute to the generated document.
//
// The walk is depth-first over namespaces. Within a namespace, elements keep
// their declaration order, and nested namespaces follow the namespace's own
// elements, so running Discover twice over an unchanged graph yields
// identically ordered results.
package discovery

import (
	"context"
	"fmt"

	"github.com/erraggy/asyncforge/internal/issues"
	"github.com/erraggy/asyncforge/logging"
	"github.com/erraggy/asyncforge/source"
)

// Element is a discovered operation, message model or security declaration.
type Element struct {
	ID       source.NodeID
	Name     string
	Node     *source.Node
	Metadata *source.Metadata
}

// Result holds the discovered elements in walk order.
type Result struct {
	Operations      []Element
	Models          []Element
	SecurityConfigs []Element
	// Warnings records degraded conditions such as a missing root.
	Warnings []issues.Issue
}

// Len returns the total number of discovered elements.
func (r *Result) Len() int {
	return len(r.Operations) + len(r.Models) + len(r.SecurityConfigs)
}

// Option configures Discover.
type Option func(*config)

type config struct {
	logger logging.Logger
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Discover walks g and returns its decorated elements. A nil graph or root
// degrades to an empty result with a warning. Cancellation is checked
// between top-level elements; on cancellation the partial result is
// returned together with ctx.Err().
func Discover(ctx context.Context, g source.Graph, opts ...Option) (*Result, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := logging.OrNop(cfg.logger)
	res := &Result{}

	if g == nil {
		res.warn(logger, "source graph is nil; nothing to discover")
		return res, nil
	}
	root := g.Root()
	if root == nil {
		res.warn(logger, "source graph has no root namespace; nothing to discover")
		return res, nil
	}

	w := &walker{graph: g, res: res, logger: logger, seen: make(map[*source.Namespace]bool)}
	if err := w.namespace(ctx, root, 0); err != nil {
		return res, err
	}
	logger.Debug("discovery complete",
		"operations", len(res.Operations),
		"models", len(res.Models),
		"security", len(res.SecurityConfigs),
	)
	return res, nil
}

type walker struct {
	graph  source.Graph
	res    *Result
	logger logging.Logger
	seen   map[*source.Namespace]bool
}

func (w *walker) namespace(ctx context.Context, ns *source.Namespace, depth int) error {
	if w.seen[ns] {
		w.res.warn(w.logger, fmt.Sprintf("namespace %q is reachable more than once; skipping repeat", ns.Name))
		return nil
	}
	w.seen[ns] = true

	for _, n := range ns.Elements {
		if depth == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if n == nil {
			w.res.warn(w.logger, fmt.Sprintf("namespace %q holds a nil element; skipping", ns.Name))
			continue
		}
		w.element(n)
	}
	for _, child := range ns.Namespaces {
		if depth == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if child == nil {
			continue
		}
		if err := w.namespace(ctx, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// element files n under every category its metadata decorates.
// Undecorated nodes are omitted.
func (w *walker) element(n *source.Node) {
	meta, ok := w.graph.Metadata(n.ID)
	if !ok || !meta.Decorated() {
		return
	}
	el := Element{ID: n.ID, Name: n.Name, Node: n, Metadata: meta}
	if meta.Operation != nil {
		w.res.Operations = append(w.res.Operations, el)
	}
	if meta.Model != nil {
		w.res.Models = append(w.res.Models, el)
	}
	if meta.Security != nil {
		w.res.SecurityConfigs = append(w.res.SecurityConfigs, el)
	}
}

func (r *Result) warn(logger logging.Logger, msg string) {
	logger.Warn(msg)
	r.Warnings = append(r.Warnings, issues.Warningf(issues.StageDiscovery, "", "%s", msg))
}
