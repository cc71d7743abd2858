// Package contract provides interfaces and shared utilities for the laborstat
// CLI's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/mcarrero/laborstat/schema"
)

// FetchResult is the discriminated outcome of a single upstream fetch
// attempt. Available is false on timeout, network failure, non-2xx status or
// malformed payload; the adapter never surfaces those as errors, so the
// fallback decision stays exhaustive at the call site.
type FetchResult struct {
	Points    []schema.SeriesPoint
	Available bool
}

// Unavailable is the sentinel FetchResult for a failed attempt.
func Unavailable() FetchResult {
	return FetchResult{Available: false}
}

// SeriesFetcher is the sole point of contact with the upstream statistics
// service. One call is one attempt; there is no retry policy anywhere in the
// engine.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, seriesID int) FetchResult
}

// RunStore archives resolved queries for auditing. The engine only ever
// writes to it while answering a query; nothing is read back into the
// resolve path, so there is no caching layer.
type RunStore interface {
	RecordRun(run RunRecord) error
	RecordObservations(runID int64, observations []schema.Observation) error
	Status() (RunStoreStatus, error)
	Runs(limit int) ([]RunRecord, error)
	Observations(runID int64) ([]schema.Observation, error)
	Clear() error
	Close() error
}

// SnapshotManager hands out the optional run store. A nil store means
// archiving is disabled.
type SnapshotManager interface {
	GetRunStore() RunStore
}

// RunRecord is one archived resolve invocation.
type RunRecord struct {
	ID           int64
	ExecutedAt   time.Time
	Indicator    schema.Indicator
	Dimension    schema.Dimension
	Frequency    schema.Frequency
	Basis        schema.Basis
	StartYear    int
	EndYear      int
	Source       schema.SourceTag
	Observations int
	Duration     time.Duration
}

// RunStoreStatus summarizes the archive contents.
type RunStoreStatus struct {
	Backend      schema.DatabaseBackend
	Runs         int
	Observations int
}
