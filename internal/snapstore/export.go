package snapstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/internal/parquet"
)

// exportRunLimit caps how many runs one export pulls from the archive.
const exportRunLimit = 100000

// ExecuteArchiveExport exports the run archive to Parquet. The output path is
// treated as a directory holding runs.parquet and observations.parquet, which
// keeps both datasets loadable side by side in DuckDB or pandas.
func ExecuteArchiveExport(store contract.RunStore, outputDir string) error {
	if store == nil {
		return fmt.Errorf("run archive is not initialized. Set --store-backend to sqlite, mysql, or postgresql")
	}
	if outputDir == "" {
		return fmt.Errorf("export requires --output-file")
	}

	runs, err := store.Runs(exportRunLimit)
	if err != nil {
		return fmt.Errorf("failed to read archived runs: %w", err)
	}
	if len(runs) == 0 {
		return fmt.Errorf("run archive is empty, nothing to export")
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory %q: %w", outputDir, err)
	}

	runsPath := filepath.Join(outputDir, "runs.parquet")
	if err := parquet.WriteRuns(runsPath, runs); err != nil {
		return err
	}

	var obsRows []parquet.ArchiveObservationRow
	for _, run := range runs {
		observations, err := store.Observations(run.ID)
		if err != nil {
			return fmt.Errorf("failed to read observations for run %d: %w", run.ID, err)
		}
		for _, obs := range observations {
			obsRows = append(obsRows, parquet.ArchiveObservationRow{
				RunID:    run.ID,
				Period:   obs.Period,
				Year:     int32(obs.Year),
				Category: obs.Category,
				Value:    obs.Value,
			})
		}
	}
	obsPath := filepath.Join(outputDir, "observations.parquet")
	if err := parquet.WriteArchiveObservations(obsPath, obsRows); err != nil {
		return err
	}

	fmt.Printf("💾 Exported %d runs and %d observations to %s\n", len(runs), len(obsRows), outputDir)
	return nil
}
