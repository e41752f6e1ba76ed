// Package commands provides the asyncforge CLI commands.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncforge/internal/config"
	"github.com/erraggy/asyncforge/logging"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Exit codes returned by Execute.
const (
	ExitOK = 0
	// ExitInvalid means the command ran but the document failed validation.
	ExitInvalid = 1
	// ExitFailure means the command could not run: bad flags, unreadable
	// input, a fatal pipeline error or a failed write.
	ExitFailure = 2
)

var (
	headingColor = color.RGB(50, 108, 229)
	okColor      = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
)

// exitError carries a non-zero exit code without an extra message.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// errInvalid reports that validation failed; the report was already printed.
var errInvalid = &exitError{code: ExitInvalid}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitFailure
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// FormatInputPath returns a display-friendly path for an input.
func FormatInputPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// globalFlagKeys maps the root command's persistent flags to config keys.
var globalFlagKeys = map[string]string{
	"log-format": "log.format",
	"log-level":  "log.level",
}

// loadConfig resolves the configuration for cmd. keys maps the command's own
// flags to config keys.
func (a *App) loadConfig(cmd *cobra.Command, keys map[string]string) (*config.Config, error) {
	all := make(map[string]string, len(globalFlagKeys)+len(keys))
	for k, v := range globalFlagKeys {
		all[k] = v
	}
	for k, v := range keys {
		all[k] = v
	}
	l := &config.Loader{
		File:     a.configFile,
		Flags:    cmd.Flags(),
		FlagKeys: all,
	}
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}
	a.logger = newLogger(a.Stderr, cfg)
	return cfg, nil
}

// newLogger builds the slog logger selected by cfg.
func newLogger(w io.Writer, cfg *config.Config) logging.Logger {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Log.Format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return logging.NewSlogAdapter(slog.New(h))
}
