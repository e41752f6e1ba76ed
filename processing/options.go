package processing

import (
	"fmt"

	"github.com/erraggy/asyncforge/logging"
)

// CollisionPolicy controls what happens when two elements write the same key.
type CollisionPolicy int

const (
	// CollisionOverwrite lets the later element replace the earlier one silently.
	CollisionOverwrite CollisionPolicy = iota
	// CollisionWarn replaces the earlier entry and records a warning.
	CollisionWarn
	// CollisionError keeps the earlier entry and records an error.
	CollisionError
)

func (c CollisionPolicy) String() string {
	switch c {
	case CollisionOverwrite:
		return "overwrite"
	case CollisionWarn:
		return "warn"
	case CollisionError:
		return "error"
	default:
		return fmt.Sprintf("CollisionPolicy(%d)", int(c))
	}
}

// ParseCollisionPolicy parses "overwrite", "warn" or "error". The empty
// string means overwrite.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch s {
	case "", "overwrite":
		return CollisionOverwrite, nil
	case "warn":
		return CollisionWarn, nil
	case "error":
		return CollisionError, nil
	default:
		return 0, fmt.Errorf("processing: unknown collision policy %q (want overwrite, warn or error)", s)
	}
}

// Option configures a Processor.
type Option func(*config)

type config struct {
	logger      logging.Logger
	policy      CollisionPolicy
	concurrency int
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithCollisionPolicy sets the collision policy. The default is CollisionOverwrite.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithConcurrency bounds the number of binding generations run in parallel.
// Values below 2 generate sequentially.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}
