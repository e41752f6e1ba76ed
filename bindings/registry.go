package bindings

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gorilla/schema"

	"github.com/erraggy/asyncforge/aserrors"
	"github.com/erraggy/asyncforge/source"
)

var valuesDecoder = schema.NewDecoder()

func init() {
	valuesDecoder.IgnoreUnknownKeys(true)
}

// Registry maps binding-type identifiers to plugins.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// DefaultRegistry returns a new registry holding the built-in protocol and
// cloud plugins.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	mustRegister(r, MQTTPlugin{})
	mustRegister(r, KafkaPlugin{})
	mustRegister(r, AMQPPlugin{})
	mustRegister(r, WSPlugin{})
	mustRegister(r, HTTPPlugin{})
	mustRegister(r, SNSPlugin{})
	mustRegister(r, SQSPlugin{})
	return r
}

func mustRegister[C Config](r *Registry, p TypedPlugin[C]) {
	if err := Register(r, p); err != nil {
		panic(err)
	}
}

// Register adds p under p.Type(). Registering an empty or already-registered
// type is an error.
func Register[C Config](r *Registry, p TypedPlugin[C]) error {
	t := p.Type()
	if t == "" {
		return fmt.Errorf("bindings: plugin %T has an empty type", p)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.plugins[t]; exists {
		return fmt.Errorf("bindings: %q is already registered", t)
	}
	r.plugins[t] = adapter[C]{p: p}
	return nil
}

// Lookup returns the plugin registered for bindingType.
func (r *Registry) Lookup(bindingType string) (Plugin, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[bindingType]
	return p, ok
}

// Types returns the registered binding types, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.plugins))
	for t := range r.plugins {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Capabilities returns the capabilities of every registered plugin, sorted by type.
func (r *Registry) Capabilities() []Capabilities {
	types := r.Types()
	out := make([]Capabilities, 0, len(types))
	for _, t := range types {
		p, _ := r.Lookup(t)
		out = append(out, p.Capabilities())
	}
	return out
}

// Decode resolves decl's plugin and decodes its configuration into the
// plugin's typed variant.
func (r *Registry) Decode(decl source.BindingDecl) (Plugin, Config, error) {
	p, ok := r.Lookup(decl.Type)
	if !ok {
		return nil, nil, &aserrors.BindingError{BindingType: decl.Type, Unsupported: true}
	}
	cfg, err := p.decode(decl.Config)
	if err != nil {
		return p, nil, &aserrors.BindingError{BindingType: decl.Type, Message: "decoding configuration", Cause: err}
	}
	return p, cfg, nil
}
