// Package parquet provides data structures and functions for exporting
// laborstat series and archived runs to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/schema"
	"github.com/parquet-go/parquet-go"
)

// ObservationRow is one series observation in columnar form.
type ObservationRow struct {
	// Period is the engine's period token ("2013" or "2013Q2")
	Period string `parquet:"period,snappy,dict"`

	// Year is the calendar year component of the period
	Year int32 `parquet:"year,snappy"`

	// Category is the catalog label the value belongs to
	Category string `parquet:"category,snappy,dict"`

	// Value is the observation value, already rounded to two decimals
	Value float64 `parquet:"value,snappy"`

	// Source is the whole-result provenance tag ("official" or "simulated")
	Source string `parquet:"source,snappy,dict"`
}

// RunRow is one archived resolve invocation in columnar form. It maps to the
// laborstat_runs database table.
type RunRow struct {
	// RunID is the unique identifier for this resolve run
	RunID int64 `parquet:"run_id,snappy"`

	// ExecutedAt is when the query was resolved (TIMESTAMP precision)
	ExecutedAt time.Time `parquet:"executed_at,snappy"`

	Indicator string `parquet:"indicator,snappy,dict"`
	Breakdown string `parquet:"breakdown,snappy,dict"`
	Frequency string `parquet:"frequency,snappy,dict"`
	Basis     string `parquet:"basis,snappy,dict"`

	StartYear int32 `parquet:"start_year,snappy"`
	EndYear   int32 `parquet:"end_year,snappy"`

	// Source is the provenance tag decided by the aggregate fetch
	Source string `parquet:"source,snappy,dict"`

	// ObservationCount is the number of observations the run produced
	ObservationCount int32 `parquet:"observation_count,snappy"`

	// DurationMs is how long the resolve took in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`
}

// ArchiveObservationRow is one archived observation joined to its run. It
// maps to the laborstat_observations database table.
type ArchiveObservationRow struct {
	RunID    int64   `parquet:"run_id,snappy"`
	Period   string  `parquet:"period,snappy,dict"`
	Year     int32   `parquet:"year,snappy"`
	Category string  `parquet:"category,snappy,dict"`
	Value    float64 `parquet:"value,snappy"`
}

// WriteObservations writes a resolved result to a Parquet file.
func WriteObservations(path string, result schema.Result) error {
	rows := make([]ObservationRow, 0, len(result.Observations))
	for _, obs := range result.Observations {
		rows = append(rows, ObservationRow{
			Period:   obs.Period,
			Year:     int32(obs.Year),
			Category: obs.Category,
			Value:    obs.Value,
			Source:   string(result.Source),
		})
	}
	return writeRows(path, rows)
}

// WriteRuns writes archived runs to a Parquet file.
func WriteRuns(path string, runs []contract.RunRecord) error {
	rows := make([]RunRow, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, RunRow{
			RunID:            run.ID,
			ExecutedAt:       run.ExecutedAt,
			Indicator:        string(run.Indicator),
			Breakdown:        string(run.Dimension),
			Frequency:        string(run.Frequency),
			Basis:            string(run.Basis),
			StartYear:        int32(run.StartYear),
			EndYear:          int32(run.EndYear),
			Source:           string(run.Source),
			ObservationCount: int32(run.Observations),
			DurationMs:       run.Duration.Milliseconds(),
		})
	}
	return writeRows(path, rows)
}

// WriteArchiveObservations writes archived observations to a Parquet file.
func WriteArchiveObservations(path string, rows []ArchiveObservationRow) error {
	return writeRows(path, rows)
}

func writeRows[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file %q: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
