package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestValidateTool_ValidDocument(t *testing.T) {
	input := validateInput{
		Document: documentInput{Content: validDocument},
	}
	result, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.True(t, output.Valid)
	assert.Empty(t, output.Errors)
	assert.Equal(t, 1, output.Stats.Channels)
	assert.Equal(t, 1, output.Stats.Operations)
	assert.Equal(t, 1, output.Stats.Messages)
}

func TestValidateTool_InvalidDocument(t *testing.T) {
	input := validateInput{
		Document: documentInput{Content: danglingDocument},
	}
	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.False(t, output.Valid)
	assert.Equal(t, 2, output.ErrorCount)

	paths := make([]string, 0, len(output.Errors))
	for _, e := range output.Errors {
		assert.Equal(t, "validation", e.Stage)
		paths = append(paths, e.Path)
	}
	assert.Contains(t, paths, "operations.publishOrder.action")
	assert.Contains(t, paths, "operations.publishOrder.channel")
}

func TestValidateTool_NoWarnings(t *testing.T) {
	input := validateInput{
		Document:   documentInput{Content: danglingDocument},
		NoWarnings: boolPtr(true),
	}
	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Empty(t, output.Warnings)
	assert.Zero(t, output.WarningCount)
	assert.Equal(t, len(output.Errors), output.Returned)
}

func TestValidateTool_Pagination(t *testing.T) {
	input := validateInput{
		Document: documentInput{Content: danglingDocument},
		Limit:    1,
	}
	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Len(t, output.Errors, 1)
	assert.Equal(t, 2, output.ErrorCount, "counts report the full totals")

	input.Offset = 1
	_, page2, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Len(t, page2.Errors, 1)
	assert.NotEqual(t, output.Errors[0].Path, page2.Errors[0].Path)
}

func TestValidateTool_StrictFromConfig(t *testing.T) {
	orig := cfg.ValidateStrict
	cfg.ValidateStrict = true
	t.Cleanup(func() { cfg.ValidateStrict = orig })

	// The operation has no summary, which strict mode reports.
	_, strict, err := handleValidate(context.Background(), &mcp.CallToolRequest{},
		validateInput{Document: documentInput{Content: validDocument}})
	require.NoError(t, err)

	_, lenient, err := handleValidate(context.Background(), &mcp.CallToolRequest{},
		validateInput{Document: documentInput{Content: validDocument}, Strict: boolPtr(false)})
	require.NoError(t, err)

	assert.Greater(t, strict.WarningCount, lenient.WarningCount)
}

func TestValidateTool_BadInput(t *testing.T) {
	result, _, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
