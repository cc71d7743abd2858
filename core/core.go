// Package core has the query orchestration, derivation and adjustment logic
// for laborstat.
package core

import (
	"context"
	"time"

	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/internal/ine"
	"github.com/mcarrero/laborstat/internal/outwriter"
	"github.com/mcarrero/laborstat/schema"
)

// ExecutorFunc defines the function signature for executing the different
// CLI modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) error

// ExecuteQuery resolves the configured series query and prints the result.
// It serves as the main entry point for the 'query' mode.
func ExecuteQuery(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) error {
	start := time.Now()
	contract.LogQueryHeader(cfg)

	fetcher := ine.NewClient(cfg.BaseURL, cfg.FetchTimeout)
	result := GetQueryResult(ctx, cfg, fetcher, mgr)

	duration := time.Since(start)
	return outwriter.WriteResult(result, cfg, duration)
}

// GetQueryResult resolves the query and records the run into the optional
// archive. Archiving is best-effort: a store failure is logged, never
// surfaced, and the engine never reads the store back while resolving.
func GetQueryResult(ctx context.Context, cfg *contract.Config, fetcher contract.SeriesFetcher, mgr contract.SnapshotManager) schema.Result {
	start := time.Now()
	result := ResolveSeries(ctx, cfg.Query(), fetcher)

	if mgr != nil {
		if store := mgr.GetRunStore(); store != nil {
			run := contract.RunRecord{
				ID:           start.UnixNano(),
				ExecutedAt:   start,
				Indicator:    cfg.Indicator,
				Dimension:    cfg.Dimension,
				Frequency:    cfg.Frequency,
				Basis:        cfg.Basis,
				StartYear:    cfg.StartYear,
				EndYear:      cfg.EndYear,
				Source:       result.Source,
				Observations: len(result.Observations),
				Duration:     time.Since(start),
			}
			if err := store.RecordRun(run); err != nil {
				contract.LogWarn("Run archiving failed", err)
			} else if err := store.RecordObservations(run.ID, result.Observations); err != nil {
				contract.LogWarn("Observation archiving failed", err)
			}
		}
	}

	return result
}

// ExecuteCategories prints the category catalog for the configured
// dimension. This is a static display that needs no network access.
func ExecuteCategories(_ context.Context, cfg *contract.Config, _ contract.SnapshotManager) error {
	return outwriter.WriteCategories(cfg.Dimension, schema.CategoriesFor(cfg.Dimension), cfg)
}

// ExecuteIndicators prints the indicator reference table.
func ExecuteIndicators(_ context.Context, cfg *contract.Config, _ contract.SnapshotManager) error {
	return outwriter.WriteIndicators(cfg)
}
