package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mcarrero/laborstat/internal/contract"
	mcp_internal "github.com/mcarrero/laborstat/internal/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers(t *testing.T) {
	baseCfg := &contract.Config{}
	require.NoError(t, contract.ProcessAndValidate(baseCfg, &contract.ConfigRawInput{}))

	// No store manager: the handlers must work without an archive.
	var mgr contract.SnapshotManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	ctx := context.Background()

	t.Run("list_categories known dimension", func(t *testing.T) {
		tool := s.GetTool("list_categories")
		require.NotNil(t, tool, "Tool list_categories should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "list_categories",
				Arguments: map[string]any{
					"dimension": "gender",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "Men")
		assert.Contains(t, text, "Women")
	})

	t.Run("list_categories unknown dimension", func(t *testing.T) {
		tool := s.GetTool("list_categories")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "list_categories",
				Arguments: map[string]any{
					"dimension": "planet", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid breakdown")
	})

	t.Run("list_indicators", func(t *testing.T) {
		tool := s.GetTool("list_indicators")
		require.NotNil(t, tool, "Tool list_indicators should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "list_indicators"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "unemployment")
		assert.Contains(t, text, "EUR/month")
	})

	t.Run("query_series inverted year range", func(t *testing.T) {
		tool := s.GetTool("query_series")
		require.NotNil(t, tool, "Tool query_series should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "query_series",
				Arguments: map[string]any{
					"start_year": 2020.0,
					"end_year":   2010.0, // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid query parameters")
	})
}
