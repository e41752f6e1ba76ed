package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/erraggy/asyncforge"
	"github.com/erraggy/asyncforge/aserrors"
	"github.com/erraggy/asyncforge/bindings"
	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/internal/config"
	"github.com/erraggy/asyncforge/pipeline"
	"github.com/erraggy/asyncforge/sink"
	"github.com/erraggy/asyncforge/source"
	"github.com/erraggy/asyncforge/source/gosource"
)

// compileFlagKeys maps compile flags to config keys.
var compileFlagKeys = map[string]string{
	"output":           "output.dir",
	"name":             "output.name",
	"format":           "output.formats",
	"source":           "source",
	"strict":           "validation.strict",
	"write-invalid":    "validation.write_invalid",
	"collision":        "processing.collision",
	"concurrency":      "processing.concurrency",
	"metrics-textfile": "metrics.textfile",
}

// CompileFlags contains flags for the compile command that are not part of
// the layered configuration.
type CompileFlags struct {
	Report string
	Quiet  bool
}

// CompileReport is the structured compile report.
type CompileReport struct {
	Input       string                `json:"input" yaml:"input"`
	Valid       bool                  `json:"valid" yaml:"valid"`
	Stats       document.Stats        `json:"stats" yaml:"stats"`
	ErrorCount  int                   `json:"errorCount" yaml:"errorCount"`
	Warnings    int                   `json:"warningCount" yaml:"warningCount"`
	Diagnostics []pipeline.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Artifacts   []pipeline.Artifact   `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Duration    time.Duration         `json:"durationNanos" yaml:"durationNanos"`
}

func newCompileCommand(app *App) *cobra.Command {
	flags := &CompileFlags{}
	cmd := &cobra.Command{
		Use:   "compile [flags] <description.yaml|package-dir|->",
		Short: "Compile a service description into an AsyncAPI document",
		Long: "Compile a YAML service description, or a Go package annotated with\n" +
			"//asyncapi: directives, into an AsyncAPI 3.0.0 document. The document is\n" +
			"validated and written to the output directory only when valid, unless\n" +
			"--write-invalid is set.\n\n" +
			"Exit Codes:\n" +
			"  0    Document compiled and valid\n" +
			"  1    Document compiled with errors\n" +
			"  2    Compilation could not run or the document could not be written",
		Example: "  asyncforge compile service.yaml\n" +
			"  asyncforge compile -o build --format yaml,json service.yaml\n" +
			"  asyncforge compile --source go ./internal/events\n" +
			"  asyncforge compile -o - service.yaml | less\n" +
			"  asyncforge compile --report json service.yaml | jq '.valid'",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runCompile(cmd, args, flags)
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", ".", "Output directory, or - to write the document to stdout")
	f.String("name", "asyncapi", "Output file name without extension")
	f.StringSliceP("format", "f", []string{"yaml"}, "Document formats to write: yaml, json")
	f.String("source", config.SourceAuto, "Input kind: auto, yaml or go")
	f.Bool("strict", false, "Enable stricter validation")
	f.Bool("write-invalid", false, "Write the document even when validation fails")
	f.String("collision", "overwrite", "Policy when two elements write the same key: overwrite, warn or error")
	f.Int("concurrency", 0, "Parallel binding generation; values below 2 run sequentially")
	f.String("metrics-textfile", "", "Write run metrics to this file in Prometheus text format")
	f.StringVar(&flags.Report, "report", FormatText, "Report format: text, json, or yaml")
	f.BoolVarP(&flags.Quiet, "quiet", "q", false, "Only set the exit code; print no report")
	return cmd
}

func (a *App) runCompile(cmd *cobra.Command, args []string, flags *CompileFlags) error {
	if err := ValidateOutputFormat(flags.Report); err != nil {
		return err
	}
	cfg, err := a.loadConfig(cmd, compileFlagKeys)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if cfg.Input == "" {
		return fmt.Errorf("compile requires a description file, package directory, or '-' for stdin")
	}

	ctx := cmd.Context()
	g, err := a.loadGraph(ctx, cfg)
	if err != nil {
		return err
	}

	kinds, err := cfg.Kinds()
	if err != nil {
		return err
	}
	policy, err := cfg.CollisionPolicy()
	if err != nil {
		return err
	}

	var (
		out    sink.Sink
		memory *sink.MemorySink
		files  *sink.FileSink
	)
	if cfg.Output.Dir == StdinFilePath {
		memory = sink.NewMemorySink()
		out = memory
	} else {
		files = sink.NewFileSink(cfg.Output.Dir)
		out = files
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(a.logger),
		pipeline.WithSink(out),
		pipeline.WithOutputName(cfg.Output.Name),
		pipeline.WithFormats(kinds...),
		pipeline.WithWriteInvalid(cfg.Validation.WriteInvalid),
		pipeline.WithCollisionPolicy(policy),
		pipeline.WithConcurrency(cfg.Processing.Concurrency),
		pipeline.WithStrictMode(cfg.Validation.Strict),
	}
	var metrics *prometheus.Registry
	if cfg.Metrics.Textfile != "" {
		metrics = prometheus.NewRegistry()
		opts = append(opts, pipeline.WithMetrics(metrics))
	}

	p, err := pipeline.New(bindings.DefaultRegistry(), opts...)
	if err != nil {
		return err
	}
	start := time.Now()
	res, runErr := p.Run(ctx, g)
	elapsed := time.Since(start)

	if metrics != nil {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, metrics); err != nil {
			a.logger.Warn("writing metrics textfile", "path", cfg.Metrics.Textfile, "error", err)
		}
	}

	var fatal *aserrors.FatalError
	if res == nil || errors.As(runErr, &fatal) {
		return runErr
	}

	reportTo := a.Stdout
	if memory != nil {
		for _, name := range memory.Files() {
			content, _ := memory.Get(name)
			Writef(a.Stdout, "%s", content)
		}
		reportTo = a.Stderr
	}

	if !flags.Quiet {
		report := CompileReport{
			Input:       FormatInputPath(cfg.Input),
			Valid:       res.Valid(),
			Stats:       res.Document.Stats(),
			ErrorCount:  len(res.Errors()),
			Warnings:    len(res.Warnings()),
			Diagnostics: res.Diagnostics,
			Artifacts:   res.Artifacts,
			Duration:    elapsed,
		}
		if flags.Report == FormatText {
			a.printCompileText(res, report, files)
		} else if err := OutputStructured(reportTo, report, flags.Report); err != nil {
			return err
		}
	}

	if runErr != nil {
		return runErr
	}
	if len(res.Errors()) > 0 {
		return errInvalid
	}
	return nil
}

// loadGraph loads the input selected by cfg.
func (a *App) loadGraph(ctx context.Context, cfg *config.Config) (source.Graph, error) {
	kind := cfg.Source
	if cfg.Input == StdinFilePath {
		if kind == config.SourceGo {
			return nil, fmt.Errorf("go sources cannot be read from stdin")
		}
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		g, err := source.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("source: <stdin>: %w", err)
		}
		return g, nil
	}
	if kind == config.SourceAuto {
		kind = config.SourceYAML
		if info, err := os.Stat(cfg.Input); err == nil && info.IsDir() {
			kind = config.SourceGo
		}
	}
	a.logger.Debug("loading description", "input", cfg.Input, "source", kind)
	if kind == config.SourceGo {
		g, err := gosource.Load(ctx, cfg.Input)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	g, err := source.LoadFile(cfg.Input)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (a *App) printCompileText(res *pipeline.Result, report CompileReport, files *sink.FileSink) {
	w := a.Stderr
	Writef(w, "%s\n", headingColor.Sprint("AsyncAPI Compiler"))
	Writef(w, "=================\n\n")
	Writef(w, "asyncforge version: %s\n", asyncforge.Version())
	Writef(w, "Input: %s\n", report.Input)
	if info := res.Document.Info; info != nil {
		Writef(w, "Title: %s (%s)\n", info.Title, info.Version)
	}
	Writef(w, "Servers: %d\n", report.Stats.Servers)
	Writef(w, "Channels: %d\n", report.Stats.Channels)
	Writef(w, "Operations: %d\n", report.Stats.Operations)
	Writef(w, "Messages: %d\n", report.Stats.Messages)
	Writef(w, "Schemas: %d\n", report.Stats.Schemas)
	Writef(w, "Security Schemes: %d\n", report.Stats.SecuritySchemes)
	Writef(w, "Bindings: %d\n", report.Stats.Bindings)
	Writef(w, "Total Time: %v\n\n", report.Duration)

	if errs := res.Errors(); len(errs) > 0 {
		Writef(w, "%s\n", errorColor.Sprintf("Errors (%d):", len(errs)))
		for _, e := range errs {
			Writef(w, "  %s\n", e.String())
		}
		Writef(w, "\n")
	}
	if warns := res.Warnings(); len(warns) > 0 {
		Writef(w, "%s\n", warnColor.Sprintf("Warnings (%d):", len(warns)))
		for _, warning := range warns {
			Writef(w, "  %s\n", warning.String())
		}
		Writef(w, "\n")
	}

	for _, art := range res.Artifacts {
		dest := sink.FileName(art.Name, art.Kind)
		if files != nil {
			dest = files.Path(art.Name, art.Kind)
		}
		Writef(w, "Wrote %s (%d bytes)\n", dest, art.Size)
	}

	if report.ErrorCount == 0 {
		Writef(w, "%s", okColor.Sprint("✓ Compilation passed"))
		if report.Warnings > 0 {
			Writef(w, " with %d warning(s)", report.Warnings)
		}
	} else {
		Writef(w, "%s", errorColor.Sprintf("✗ Compilation failed: %d error(s)", report.ErrorCount))
		if report.Warnings > 0 {
			Writef(w, ", %d warning(s)", report.Warnings)
		}
	}
	Writef(w, "\n")
}
