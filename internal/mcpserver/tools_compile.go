package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/asyncforge/aserrors"
	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/pipeline"
	"github.com/erraggy/asyncforge/processing"
	"github.com/erraggy/asyncforge/sink"
)

type compileInput struct {
	Description  descriptionInput `json:"description"             jsonschema:"The service description to compile"`
	Format       string           `json:"format,omitempty"        jsonschema:"Output format for the returned document: yaml (default) or json"`
	Strict       *bool            `json:"strict,omitempty"        jsonschema:"Enable strict validation mode"`
	Collision    string           `json:"collision,omitempty"     jsonschema:"Collision policy when two elements write the same key: overwrite (default), warn, or error"`
	OutputDir    string           `json:"output_dir,omitempty"    jsonschema:"Write the document to this directory instead of returning it inline"`
	OutputName   string           `json:"output_name,omitempty"   jsonschema:"Base file name when writing to output_dir (default asyncapi)"`
	WriteInvalid bool             `json:"write_invalid,omitempty" jsonschema:"Write the document to output_dir even when validation fails"`
	Offset       int              `json:"offset,omitempty"        jsonschema:"Skip the first N diagnostics (for pagination)"`
	Limit        int              `json:"limit,omitempty"         jsonschema:"Maximum number of diagnostics to return (default 100)"`
}

type compileOutput struct {
	Valid        bool           `json:"valid"`
	Title        string         `json:"title,omitempty"`
	Stats        document.Stats `json:"stats"`
	ErrorCount   int            `json:"error_count"`
	WarningCount int            `json:"warning_count"`
	Returned     int            `json:"returned"`
	Diagnostics  []issueOutput  `json:"diagnostics,omitempty"`
	Document     string         `json:"document,omitempty"`
	Files        []string       `json:"files,omitempty"`
}

func handleCompile(ctx context.Context, _ *mcp.CallToolRequest, input compileInput) (*mcp.CallToolResult, compileOutput, error) {
	kind, err := document.ParseKind(input.Format)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}
	strict := cfg.ValidateStrict
	if input.Strict != nil {
		strict = *input.Strict
	}
	collision := input.Collision
	if collision == "" {
		collision = cfg.Collision
	}
	policy, err := processing.ParseCollisionPolicy(collision)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}

	g, err := input.Description.resolve(ctx)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}

	opts := []pipeline.Option{
		pipeline.WithStrictMode(strict),
		pipeline.WithCollisionPolicy(policy),
		pipeline.WithConcurrency(cfg.Concurrency),
	}
	var fileSink *sink.FileSink
	if input.OutputDir != "" {
		fileSink = sink.NewFileSink(input.OutputDir)
		opts = append(opts,
			pipeline.WithSink(fileSink),
			pipeline.WithFormats(kind),
			pipeline.WithWriteInvalid(input.WriteInvalid),
		)
		if input.OutputName != "" {
			opts = append(opts, pipeline.WithOutputName(input.OutputName))
		}
	}

	p, err := pipeline.New(registry, opts...)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}
	result, err := p.Run(ctx, g)
	if err != nil {
		var sinkErr *aserrors.SinkError
		if !errors.As(err, &sinkErr) {
			return errResult(err), compileOutput{}, nil
		}
		// The document was compiled; the write failure is reported in the
		// diagnostics.
	}

	output := compileOutput{
		Valid:        result.Valid(),
		Stats:        result.Document.Stats(),
		ErrorCount:   len(result.Errors()),
		WarningCount: len(result.Warnings()),
		Diagnostics:  paginate(toIssueOutputs(result.Diagnostics), input.Offset, input.Limit),
	}
	if result.Document.Info != nil {
		output.Title = result.Document.Info.Title
	}
	output.Returned = len(output.Diagnostics)

	if fileSink == nil {
		data, err := document.Marshal(result.Document, kind)
		if err != nil {
			return errResult(fmt.Errorf("encoding document: %w", err)), compileOutput{}, nil
		}
		output.Document = string(data)
		return nil, output, nil
	}
	for _, a := range result.Artifacts {
		output.Files = append(output.Files, sink.FileName(a.Name, a.Kind))
	}
	return nil, output, nil
}
