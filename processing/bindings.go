package processing

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/asyncforge/bindings"
	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/internal/issues"
	"github.com/erraggy/asyncforge/source"
)

// bindingTask is one binding declaration and the entries it may attach to.
// Empty target names are not targeted.
type bindingTask struct {
	element string
	decl    source.BindingDecl
	// level is the level the configuration is validated at when the plugin
	// supports it; otherwise the first supported target level is used.
	level bindings.Level

	channel   string
	operation string
	message   string
	server    string
}

// generated is the outcome of one bindingTask.
type generated struct {
	index     int
	fragments map[bindings.Level]bindings.Fragment
	issues    []issues.Issue
}

// applyBindings generates fragments for every task, in parallel when
// configured, then merges them into doc in task order.
func (p *Processor) applyBindings(ctx context.Context, doc *document.Document, rep *Report, tasks []bindingTask) error {
	if len(tasks) == 0 {
		return nil
	}

	var (
		mu      sync.Mutex
		results = make([]generated, 0, len(tasks))
	)
	if p.concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.concurrency)
		for i, task := range tasks {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				out := p.generate(gctx, i, task)
				mu.Lock()
				results = append(results, out)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		sort.Slice(results, func(a, b int) bool {
			return results[a].index < results[b].index
		})
	} else {
		for i, task := range tasks {
			if err := ctx.Err(); err != nil {
				return err
			}
			results = append(results, p.generate(ctx, i, task))
		}
	}

	for _, out := range results {
		rep.Issues = append(rep.Issues, out.issues...)
		task := tasks[out.index]
		for _, level := range bindings.Levels {
			frag, ok := out.fragments[level]
			if !ok {
				continue
			}
			if attach(doc, task, level, frag) {
				rep.Bindings++
			}
		}
	}
	return nil
}

// generate decodes, validates and generates one declaration. It only reads
// shared state and is safe to run concurrently.
func (p *Processor) generate(ctx context.Context, index int, task bindingTask) generated {
	out := generated{index: index}
	bindingType := task.decl.Type
	warn := func(format string, args ...any) {
		out.issues = append(out.issues,
			issues.Warningf(issues.StageBinding, "bindings."+bindingType, format, args...).WithElement(task.element))
	}

	plugin, cfg, err := p.registry.Decode(task.decl)
	if err != nil {
		if plugin == nil {
			p.logger.Warn("unsupported binding type", "type", bindingType, "element", task.element)
			warn("binding type %q is not registered; skipping", bindingType)
		} else {
			warn("%v; skipping", err)
		}
		return out
	}

	caps := plugin.Capabilities()
	var levels []bindings.Level
	for _, level := range task.levels() {
		if caps.Supports(level) {
			levels = append(levels, level)
		}
	}
	if len(levels) == 0 {
		p.logger.Debug("binding not applicable", "type", bindingType, "element", task.element)
		warn("binding type %q does not apply at the %s level; skipping", bindingType, joinLevels(task.levels()))
		return out
	}
	validateAt := task.level
	if !slices.Contains(levels, validateAt) {
		validateAt = levels[0]
	}

	if err := plugin.ValidateConfig(bindings.WithLevel(ctx, validateAt), cfg); err != nil {
		if bindings.IsRequired(err) {
			p.logger.Warn("skipping binding with missing required configuration", "type", bindingType, "element", task.element, "error", err)
			warn("%v; binding skipped", err)
			return out
		}
		warn("%v", err)
	}

	out.fragments = make(map[bindings.Level]bindings.Fragment)
	for _, level := range levels {
		if frag, ok := bindings.Generate(plugin, level, cfg); ok {
			out.fragments[level] = frag
		}
	}
	if len(out.fragments) == 0 {
		p.logger.Debug("binding contributed nothing", "type", bindingType, "element", task.element)
	}
	return out
}

// levels returns the levels this task targets.
func (t bindingTask) levels() []bindings.Level {
	var out []bindings.Level
	if t.channel != "" {
		out = append(out, bindings.LevelChannel)
	}
	if t.operation != "" {
		out = append(out, bindings.LevelOperation)
	}
	if t.message != "" {
		out = append(out, bindings.LevelMessage)
	}
	if t.server != "" {
		out = append(out, bindings.LevelServer)
	}
	return out
}

func joinLevels(levels []bindings.Level) string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

// attach merges frag under bindings[type] of the entry targeted at level.
// Entries missing from the document are left alone.
func attach(doc *document.Document, task bindingTask, level bindings.Level, frag bindings.Fragment) bool {
	var target *document.Bindings
	switch level {
	case bindings.LevelChannel:
		if ch, ok := doc.Channels.Get(task.channel); ok && ch != nil {
			target = &ch.Bindings
		}
	case bindings.LevelOperation:
		if op, ok := doc.Operations.Get(task.operation); ok && op != nil {
			target = &op.Bindings
		}
	case bindings.LevelMessage:
		if msg, ok := doc.Components.Messages.Get(task.message); ok && msg != nil {
			target = &msg.Bindings
		}
	case bindings.LevelServer:
		if srv, ok := doc.Servers.Get(task.server); ok && srv != nil {
			target = &srv.Bindings
		}
	}
	if target == nil {
		return false
	}
	if *target == nil {
		*target = document.Bindings{}
	}
	(*target)[task.decl.Type] = map[string]any(frag)
	return true
}
