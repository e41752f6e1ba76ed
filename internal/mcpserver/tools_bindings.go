package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/asyncforge/bindings"
)

type bindingsInput struct {
	Type  string `json:"type,omitempty"  jsonschema:"Only return the binding with this type (e.g. kafka, sqs)"`
	Level string `json:"level,omitempty" jsonschema:"Only return bindings that attach at this level: channel, operation, message, or server"`
}

type bindingsOutput struct {
	Total    int                     `json:"total"`
	Bindings []bindings.Capabilities `json:"bindings,omitempty"`
}

var validLevels = []bindings.Level{
	bindings.LevelChannel,
	bindings.LevelOperation,
	bindings.LevelMessage,
	bindings.LevelServer,
}

func parseLevel(s string) (bindings.Level, error) {
	for _, l := range validLevels {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid level %q; valid values: channel, operation, message, server", s)
}

func handleBindings(_ context.Context, _ *mcp.CallToolRequest, input bindingsInput) (*mcp.CallToolResult, bindingsOutput, error) {
	var level bindings.Level
	if input.Level != "" {
		l, err := parseLevel(input.Level)
		if err != nil {
			return errResult(err), bindingsOutput{}, nil
		}
		level = l
	}

	caps := registry.Capabilities()
	output := bindingsOutput{Bindings: makeSlice[bindings.Capabilities](len(caps))}
	for _, c := range caps {
		if input.Type != "" && !strings.EqualFold(c.Type, input.Type) {
			continue
		}
		if level != "" && !c.Supports(level) {
			continue
		}
		output.Bindings = append(output.Bindings, c)
	}
	if input.Type != "" && len(output.Bindings) == 0 {
		return errResult(fmt.Errorf("binding type %q is not registered; registered types: %s",
			input.Type, strings.Join(registry.Types(), ", "))), bindingsOutput{}, nil
	}
	output.Total = len(output.Bindings)
	return nil, output, nil
}
