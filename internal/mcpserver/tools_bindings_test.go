package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncforge/bindings"
)

func TestBindingsTool_All(t *testing.T) {
	result, output, err := handleBindings(context.Background(), &mcp.CallToolRequest{}, bindingsInput{})
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Equal(t, len(registry.Types()), output.Total)
	types := make([]string, 0, len(output.Bindings))
	for _, c := range output.Bindings {
		types = append(types, c.Type)
	}
	assert.Equal(t, registry.Types(), types)
}

func TestBindingsTool_Filters(t *testing.T) {
	_, output, err := handleBindings(context.Background(), &mcp.CallToolRequest{}, bindingsInput{Type: "SQS"})
	require.NoError(t, err)
	require.Len(t, output.Bindings, 1)
	assert.Equal(t, "sqs", output.Bindings[0].Type)

	_, output, err = handleBindings(context.Background(), &mcp.CallToolRequest{}, bindingsInput{Level: "message"})
	require.NoError(t, err)
	require.NotEmpty(t, output.Bindings)
	for _, c := range output.Bindings {
		assert.True(t, c.Supports(bindings.LevelMessage), "%s should support message level", c.Type)
	}
}

func TestBindingsTool_Errors(t *testing.T) {
	result, _, err := handleBindings(context.Background(), &mcp.CallToolRequest{}, bindingsInput{Level: "topic"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	result, _, err = handleBindings(context.Background(), &mcp.CallToolRequest{}, bindingsInput{Type: "nats"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
