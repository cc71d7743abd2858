package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRuns prints archived resolve runs, newest first, dispatching on the
// configured output format.
func WriteRuns(runs []contract.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVRowsForRuns(csvWriter, runs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(runs, cfg, w)
		}, "Wrote table")
	}
}

// WriteStoreStatus prints the archive summary line.
func WriteStoreStatus(status contract.RunStoreStatus) error {
	fmt.Printf("🗄️  Run archive (%s): %d runs, %d observations\n",
		status.Backend, status.Runs, status.Observations)
	return nil
}

func writeRunsTable(runs []contract.RunRecord, cfg *contract.Config, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Executed", "Indicator", "Breakdown", "Range", "Freq", "Basis", "Source", "Obs"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, run := range runs {
		sourceLabel := contract.GetPlainSourceLabel(run.Source)
		if cfg.UseColors {
			sourceLabel = contract.GetColorSourceLabel(run.Source)
		}
		data = append(data, []string{
			run.ExecutedAt.Format(time.RFC3339),
			string(run.Indicator),
			string(run.Dimension),
			fmt.Sprintf("%d-%d", run.StartYear, run.EndYear),
			string(run.Frequency),
			string(run.Basis),
			sourceLabel,
			strconv.Itoa(run.Observations),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d archived runs\n", len(runs))
	return nil
}

func writeCSVRowsForRuns(w *csv.Writer, runs []contract.RunRecord) error {
	header := []string{"id", "executed_at", "indicator", "breakdown", "frequency", "basis", "start_year", "end_year", "source", "observations", "duration_ms"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, run := range runs {
		row := []string{
			strconv.FormatInt(run.ID, 10),
			run.ExecutedAt.Format(time.RFC3339),
			string(run.Indicator),
			string(run.Dimension),
			string(run.Frequency),
			string(run.Basis),
			strconv.Itoa(run.StartYear),
			strconv.Itoa(run.EndYear),
			string(run.Source),
			strconv.Itoa(run.Observations),
			strconv.FormatInt(run.Duration.Milliseconds(), 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
