package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/asyncforge"
)

func TestRootHelp(t *testing.T) {
	res := runCLI(t, "")
	assert.Equal(t, ExitOK, res.code)
	for _, sub := range []string{"compile", "validate", "bindings", "mcp", "version"} {
		assert.Contains(t, res.stdout, sub)
	}
	assert.Contains(t, res.stdout, "Options:")
}

func TestVersionCommand(t *testing.T) {
	res := runCLI(t, "", "version")
	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "asyncforge "+asyncforge.Version())
}

func TestVersionFlag(t *testing.T) {
	res := runCLI(t, "", "--version")
	assert.Equal(t, ExitOK, res.code)
	assert.Equal(t, asyncforge.Version()+"\n", res.stdout)
}

func TestUnknownCommand(t *testing.T) {
	res := runCLI(t, "", "frobnicate")
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "Error:")
}

func TestInvalidGlobalConfig(t *testing.T) {
	t.Run("log level", func(t *testing.T) {
		res := runCLI(t, "", "--log-level", "loud", "bindings")
		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, "log.level")
	})
	t.Run("missing config file", func(t *testing.T) {
		res := runCLI(t, "", "--config", "missing.yaml", "bindings")
		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, "config file")
	})
}
