package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/erraggy/asyncforge"
	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/validator"
)

// validateFlagKeys maps validate flags to config keys.
var validateFlagKeys = map[string]string{
	"strict":      "validation.strict",
	"no-warnings": "validation.no_warnings",
}

// ValidateFlags contains flags for the validate command that are not part of
// the layered configuration.
type ValidateFlags struct {
	Quiet  bool
	Format string
}

func newValidateCommand(app *App) *cobra.Command {
	flags := &ValidateFlags{}
	cmd := &cobra.Command{
		Use:   "validate [flags] <asyncapi.yaml|asyncapi.json|->",
		Short: "Validate an AsyncAPI 3.0.0 document",
		Long: "Validate an AsyncAPI document's structure and check that every channel,\n" +
			"message, server, security scheme and schema reference resolves.\n\n" +
			"Exit Codes:\n" +
			"  0    Validation successful\n" +
			"  1    Validation failed with errors\n" +
			"  2    The document could not be read or parsed",
		Example: "  asyncforge validate asyncapi.yaml\n" +
			"  asyncforge validate --strict asyncapi.json\n" +
			"  cat asyncapi.yaml | asyncforge validate -q -\n" +
			"  asyncforge validate --format json asyncapi.yaml | jq '.valid'",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runValidate(cmd, args[0], flags)
		},
	}

	f := cmd.Flags()
	f.Bool("strict", false, "Enable stricter validation beyond the document requirements")
	f.Bool("no-warnings", false, "Suppress warning messages (only show errors)")
	f.BoolVarP(&flags.Quiet, "quiet", "q", false, "Quiet mode: only output validation result, no diagnostic messages")
	f.StringVar(&flags.Format, "format", FormatText, "Output format: text, json, or yaml")
	return cmd
}

func (a *App) readDocument(path string) (*document.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == StdinFilePath {
		data, err = io.ReadAll(a.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FormatInputPath(path), err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FormatInputPath(path), err)
	}
	return doc, nil
}

func (a *App) runValidate(cmd *cobra.Command, path string, flags *ValidateFlags) error {
	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	cfg, err := a.loadConfig(cmd, validateFlagKeys)
	if err != nil {
		return err
	}

	startTime := time.Now()
	doc, err := a.readDocument(path)
	if err != nil {
		return err
	}
	result, err := validator.ValidateContext(cmd.Context(), doc,
		validator.WithStrictMode(cfg.Validation.Strict),
		validator.WithIncludeWarnings(!cfg.Validation.NoWarnings),
	)
	if err != nil {
		return fmt.Errorf("validating document: %w", err)
	}
	totalTime := time.Since(startTime)

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(a.Stdout, result, flags.Format); err != nil {
			return err
		}
		if !result.Valid {
			return errInvalid
		}
		return nil
	}

	w := a.Stderr
	if !flags.Quiet {
		Writef(w, "%s\n", headingColor.Sprint("AsyncAPI Document Validator"))
		Writef(w, "===========================\n\n")
		Writef(w, "asyncforge version: %s\n", asyncforge.Version())
		Writef(w, "Document: %s\n", FormatInputPath(path))
		Writef(w, "AsyncAPI Version: %s\n", result.Version)
		Writef(w, "Channels: %d\n", result.Stats.Channels)
		Writef(w, "Operations: %d\n", result.Stats.Operations)
		Writef(w, "Messages: %d\n", result.Stats.Messages)
		Writef(w, "Total Time: %v\n\n", totalTime)

		if len(result.Errors) > 0 {
			Writef(w, "%s\n", errorColor.Sprintf("Errors (%d):", result.ErrorCount))
			for _, e := range result.Errors {
				Writef(w, "  %s\n", e.String())
			}
			Writef(w, "\n")
		}
		if len(result.Warnings) > 0 {
			Writef(w, "%s\n", warnColor.Sprintf("Warnings (%d):", result.WarningCount))
			for _, warning := range result.Warnings {
				Writef(w, "  %s\n", warning.String())
			}
			Writef(w, "\n")
		}

		if result.Valid {
			Writef(w, "%s", okColor.Sprint("✓ Validation passed"))
			if result.WarningCount > 0 {
				Writef(w, " with %d warning(s)", result.WarningCount)
			}
		} else {
			Writef(w, "%s", errorColor.Sprintf("✗ Validation failed: %d error(s)", result.ErrorCount))
			if result.WarningCount > 0 {
				Writef(w, ", %d warning(s)", result.WarningCount)
			}
		}
		Writef(w, "\n")
	}

	if !result.Valid {
		return errInvalid
	}
	return nil
}
