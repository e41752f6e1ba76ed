package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/erraggy/asyncforge/aserrors"
	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/logging"
	"github.com/erraggy/asyncforge/processing"
	"github.com/erraggy/asyncforge/sink"
)

// DefaultOutputName is the sink name used when none is configured.
const DefaultOutputName = "asyncapi"

// Option configures a Pipeline.
type Option func(*config) error

type config struct {
	logger       logging.Logger
	sink         sink.Sink
	outputName   string
	formats      []document.Kind
	writeInvalid bool
	policy       processing.CollisionPolicy
	concurrency  int
	strict       bool
	metrics      *Metrics
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		outputName: DefaultOutputName,
		formats:    []document.Kind{document.KindYAML},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the logger passed to every stage.
func WithLogger(l logging.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithSink hands the serialized document to s after validation.
func WithSink(s sink.Sink) Option {
	return func(c *config) error {
		c.sink = s
		return nil
	}
}

// WithOutputName sets the name given to the sink.
// Default: "asyncapi"
func WithOutputName(name string) Option {
	return func(c *config) error {
		if name == "" {
			return &aserrors.ConfigError{Option: "output name", Message: "must not be empty"}
		}
		c.outputName = name
		return nil
	}
}

// WithFormats sets the serialization formats written to the sink, in order.
// Default: YAML only
func WithFormats(kinds ...document.Kind) Option {
	return func(c *config) error {
		if len(kinds) == 0 {
			return &aserrors.ConfigError{Option: "formats", Message: "at least one format is required"}
		}
		c.formats = make([]document.Kind, 0, len(kinds))
		for _, k := range kinds {
			kind, err := document.ParseKind(string(k))
			if err != nil {
				return &aserrors.ConfigError{Option: "formats", Value: k, Cause: err}
			}
			c.formats = append(c.formats, kind)
		}
		return nil
	}
}

// WithWriteInvalid writes documents that failed validation.
// Default: false
func WithWriteInvalid(enabled bool) Option {
	return func(c *config) error {
		c.writeInvalid = enabled
		return nil
	}
}

// WithCollisionPolicy sets how processing treats two elements writing the
// same key.
// Default: processing.CollisionOverwrite
func WithCollisionPolicy(p processing.CollisionPolicy) Option {
	return func(c *config) error {
		c.policy = p
		return nil
	}
}

// WithConcurrency bounds parallel binding generation. Values below 2 run
// sequentially.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return &aserrors.ConfigError{Option: "concurrency", Value: n, Message: "must not be negative"}
		}
		c.concurrency = n
		return nil
	}
}

// WithStrictMode enables strict validation.
func WithStrictMode(enabled bool) Option {
	return func(c *config) error {
		c.strict = enabled
		return nil
	}
}

// WithMetrics records pipeline metrics in a new Metrics registered with
// registry.
func WithMetrics(registry prometheus.Registerer) Option {
	return func(c *config) error {
		m := NewMetrics()
		if err := m.Register(registry); err != nil {
			return &aserrors.ConfigError{Option: "metrics", Message: "registering collectors", Cause: err}
		}
		c.metrics = m
		return nil
	}
}

// WithMetricsCollector records into an existing Metrics, which the caller
// has already registered. It lets several pipelines share collectors.
func WithMetricsCollector(m *Metrics) Option {
	return func(c *config) error {
		c.metrics = m
		return nil
	}
}
