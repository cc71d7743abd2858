package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mcarrero/laborstat/core"
	"github.com/mcarrero/laborstat/core/synth"
	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/internal/ine"
	"github.com/mcarrero/laborstat/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.SnapshotManager
}

func (h *toolHandler) handleQuerySeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	err := contract.RevalidateQuery(cfg,
		request.GetString("indicator", ""),
		request.GetString("breakdown", ""),
		request.GetString("frequency", ""),
		request.GetString("basis", ""),
		request.GetInt("start_year", 0),
		request.GetInt("end_year", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid query parameters: %v", err)), nil
	}

	fetcher := ine.NewClient(cfg.BaseURL, cfg.FetchTimeout)
	result := core.GetQueryResult(ctx, cfg, fetcher, h.mgr)

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListCategories(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("dimension", "")
	dim := schema.Dimension(raw)
	found := false
	for _, d := range schema.AllDimensions {
		if d == dim {
			found = true
			break
		}
	}
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("invalid breakdown '%s'. must be region, education, age, gender", raw)), nil
	}

	payload := map[string]any{
		"dimension":  dim,
		"categories": schema.CategoriesFor(dim),
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListIndicators(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type indicatorInfo struct {
		Indicator schema.Indicator `json:"indicator"`
		Unit      string           `json:"unit"`
		Reference float64          `json:"reference_level"`
	}
	infos := make([]indicatorInfo, 0, len(schema.AllIndicators))
	for _, ind := range schema.AllIndicators {
		infos = append(infos, indicatorInfo{
			Indicator: ind,
			Unit:      ind.Unit(),
			Reference: synth.ReferenceLevel(ind),
		})
	}
	jsonData, _ := json.MarshalIndent(infos, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
