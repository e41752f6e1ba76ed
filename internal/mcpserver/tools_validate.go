package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/internal/issues"
	"github.com/erraggy/asyncforge/validator"
)

type validateInput struct {
	Document   documentInput `json:"document"              jsonschema:"The AsyncAPI document to validate"`
	Strict     *bool         `json:"strict,omitempty"      jsonschema:"Enable strict validation mode"`
	NoWarnings *bool         `json:"no_warnings,omitempty" jsonschema:"Suppress warnings from output"`
	Offset     int           `json:"offset,omitempty"      jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit      int           `json:"limit,omitempty"       jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type issueOutput struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Stage   string `json:"stage,omitempty"`
	Element string `json:"element,omitempty"`
	Field   string `json:"field,omitempty"`
}

type validateOutput struct {
	Valid        bool           `json:"valid"`
	Version      string         `json:"version"`
	ErrorCount   int            `json:"error_count"`
	WarningCount int            `json:"warning_count"`
	Returned     int            `json:"returned"`
	Stats        document.Stats `json:"stats"`
	Errors       []issueOutput  `json:"errors,omitempty"`
	Warnings     []issueOutput  `json:"warnings,omitempty"`
}

func toIssueOutputs(in []issues.Issue) []issueOutput {
	out := makeSlice[issueOutput](len(in))
	for _, i := range in {
		out = append(out, issueOutput{
			Path:    i.Path,
			Message: i.Message,
			Stage:   i.Stage,
			Element: i.Element,
			Field:   i.Field,
		})
	}
	return out
}

func handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	strict := cfg.ValidateStrict
	if input.Strict != nil {
		strict = *input.Strict
	}
	noWarnings := cfg.ValidateNoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}

	doc, err := input.Document.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	result, err := validator.ValidateContext(ctx, doc,
		validator.WithStrictMode(strict),
		validator.WithIncludeWarnings(!noWarnings),
	)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:        result.Valid,
		Version:      result.Version,
		ErrorCount:   result.ErrorCount,
		WarningCount: result.WarningCount,
		Stats:        result.Stats,
		Errors:       paginate(toIssueOutputs(result.Errors), input.Offset, input.Limit),
	}
	if !noWarnings {
		output.Warnings = paginate(toIssueOutputs(result.Warnings), input.Offset, input.Limit)
	}
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}
