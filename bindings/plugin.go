package bindings

import (
	"context"
	"fmt"

	"github.com/erraggy/asyncforge/aserrors"
	"github.com/erraggy/asyncforge/source"
)

// Level is the granularity a binding fragment attaches to.
type Level string

const (
	LevelChannel   Level = "channel"
	LevelOperation Level = "operation"
	LevelMessage   Level = "message"
	LevelServer    Level = "server"
)

// Levels lists every binding level in generation order.
var Levels = []Level{LevelChannel, LevelOperation, LevelMessage, LevelServer}

// Fragment is a binding object merged under bindings[type].
type Fragment map[string]any

// Config is one variant of the binding configuration union.
type Config interface {
	BindingType() string
}

// Capabilities describes what a plugin supports, for documentation and tooling.
type Capabilities struct {
	Type           string   `json:"type" yaml:"type"`
	BindingVersion string   `json:"bindingVersion" yaml:"bindingVersion"`
	Provider       string   `json:"provider,omitempty" yaml:"provider,omitempty"`
	Levels         []Level  `json:"levels" yaml:"levels"`
	Features       []string `json:"features,omitempty" yaml:"features,omitempty"`
	AuthModes      []string `json:"authModes,omitempty" yaml:"authModes,omitempty"`
	MessageFormats []string `json:"messageFormats,omitempty" yaml:"messageFormats,omitempty"`
}

// Supports reports whether the plugin generates fragments at level.
func (c Capabilities) Supports(level Level) bool {
	for _, l := range c.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// TypedPlugin is implemented by binding plugins over their own configuration
// variant C. Generate methods return false when the plugin has nothing to
// contribute at that level.
type TypedPlugin[C Config] interface {
	Type() string
	Capabilities() Capabilities
	// ValidateConfig checks cfg. The binding level being validated is
	// available through LevelFrom(ctx).
	ValidateConfig(ctx context.Context, cfg C) error
	GenerateChannelBinding(cfg C) (Fragment, bool)
	GenerateOperationBinding(cfg C) (Fragment, bool)
	GenerateMessageBinding(cfg C) (Fragment, bool)
	GenerateServerBinding(cfg C) (Fragment, bool)
}

// Plugin is a registered plugin with its configuration type erased. A Config
// of the wrong variant is never applicable and fails validation.
type Plugin interface {
	Type() string
	Capabilities() Capabilities
	ValidateConfig(ctx context.Context, cfg Config) error
	GenerateChannelBinding(cfg Config) (Fragment, bool)
	GenerateOperationBinding(cfg Config) (Fragment, bool)
	GenerateMessageBinding(cfg Config) (Fragment, bool)
	GenerateServerBinding(cfg Config) (Fragment, bool)

	decode(raw source.RawConfig) (Config, error)
}

// Generate calls the generator for level.
func Generate(p Plugin, level Level, cfg Config) (Fragment, bool) {
	switch level {
	case LevelChannel:
		return p.GenerateChannelBinding(cfg)
	case LevelOperation:
		return p.GenerateOperationBinding(cfg)
	case LevelMessage:
		return p.GenerateMessageBinding(cfg)
	case LevelServer:
		return p.GenerateServerBinding(cfg)
	}
	return nil, false
}

// NotApplicable can be embedded by plugins that only generate at some levels.
type NotApplicable[C Config] struct{}

func (NotApplicable[C]) GenerateChannelBinding(C) (Fragment, bool)   { return nil, false }
func (NotApplicable[C]) GenerateOperationBinding(C) (Fragment, bool) { return nil, false }
func (NotApplicable[C]) GenerateMessageBinding(C) (Fragment, bool)   { return nil, false }
func (NotApplicable[C]) GenerateServerBinding(C) (Fragment, bool)    { return nil, false }

// adapter erases the configuration type of a TypedPlugin.
type adapter[C Config] struct {
	p TypedPlugin[C]
}

func (a adapter[C]) Type() string               { return a.p.Type() }
func (a adapter[C]) Capabilities() Capabilities { return a.p.Capabilities() }

func (a adapter[C]) ValidateConfig(ctx context.Context, cfg Config) error {
	c, ok := cfg.(C)
	if !ok {
		return &aserrors.BindingError{
			BindingType: a.p.Type(),
			Message:     fmt.Sprintf("configuration is %T, not a %s configuration", cfg, a.p.Type()),
		}
	}
	return a.p.ValidateConfig(ctx, c)
}

func (a adapter[C]) GenerateChannelBinding(cfg Config) (Fragment, bool) {
	if c, ok := cfg.(C); ok {
		return a.p.GenerateChannelBinding(c)
	}
	return nil, false
}

func (a adapter[C]) GenerateOperationBinding(cfg Config) (Fragment, bool) {
	if c, ok := cfg.(C); ok {
		return a.p.GenerateOperationBinding(c)
	}
	return nil, false
}

func (a adapter[C]) GenerateMessageBinding(cfg Config) (Fragment, bool) {
	if c, ok := cfg.(C); ok {
		return a.p.GenerateMessageBinding(c)
	}
	return nil, false
}

func (a adapter[C]) GenerateServerBinding(cfg Config) (Fragment, bool) {
	if c, ok := cfg.(C); ok {
		return a.p.GenerateServerBinding(c)
	}
	return nil, false
}

func (a adapter[C]) decode(raw source.RawConfig) (Config, error) {
	var c C
	switch {
	case raw.Node != nil:
		if err := raw.Node.Decode(&c); err != nil {
			return nil, err
		}
	case raw.Values != nil:
		if err := valuesDecoder.Decode(&c, raw.Values); err != nil {
			return nil, err
		}
	}
	return c, nil
}
