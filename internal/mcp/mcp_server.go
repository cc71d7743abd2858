// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mcarrero/laborstat/internal/contract"
)

// NewMCPServer initializes and configures the laborstat MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.SnapshotManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Laborstat Series Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: query_series ---
	s.AddTool(mcp.NewTool("query_series",
		mcp.WithDescription("Resolve a labor-market time series broken down by category. Falls back to a deterministic synthetic model when the official source is unreachable."),
		mcp.WithString("indicator", mcp.Description("Indicator to query. Defaults to 'unemployment'."), mcp.Enum("unemployment", "participation", "employment", "wage")),
		mcp.WithString("breakdown", mcp.Description("Breakdown dimension. Defaults to 'region'."), mcp.Enum("region", "education", "age", "gender")),
		mcp.WithString("frequency", mcp.Description("Series frequency (quarterly or annual). Defaults to 'quarterly'."), mcp.Enum("quarterly", "annual")),
		mcp.WithNumber("start_year", mcp.Description("First year of the range (inclusive).")),
		mcp.WithNumber("end_year", mcp.Description("Last year of the range (inclusive).")),
		mcp.WithString("basis", mcp.Description("Wage basis (nominal or constant). Only affects the wage indicator."), mcp.Enum("nominal", "constant")),
	), h.handleQuerySeries)

	// --- 2. Tool: list_categories ---
	s.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the catalog categories available for a breakdown dimension."),
		mcp.WithString("dimension", mcp.Description("Breakdown dimension."), mcp.Enum("region", "education", "age", "gender"), mcp.Required()),
	), h.handleListCategories)

	// --- 3. Tool: list_indicators ---
	s.AddTool(mcp.NewTool("list_indicators",
		mcp.WithDescription("List the supported indicators with their units and reference levels."),
	), h.handleListIndicators)

	return s
}

// StartMCPServer starts the laborstat MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.SnapshotManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
