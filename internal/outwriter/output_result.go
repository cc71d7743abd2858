// Package outwriter has output and writer logic for every laborstat mode.
package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/internal/parquet"
	"github.com/mcarrero/laborstat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteResult outputs a resolved series, dispatching based on the output
// format configured.
func WriteResult(result schema.Result, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeResultJSON(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeResultCSV(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteObservations(cfg.OutputFile, result); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet results to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeResultJSON handles opening the file and calling the JSON writer.
func writeResultJSON(result schema.Result, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writeResultCSV handles opening the file and calling the CSV writer.
func writeResultCSV(result schema.Result, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVRowsForResult(csvWriter, result, fmtFloat)
	}, "Wrote CSV")
}

// writeResultTable generates and writes the human-readable table.
func writeResultTable(result schema.Result, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Period", "Category", "Value", "Unit"}
	table.Header(headers)

	// 2. Configure alignment to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	unit := cfg.Indicator.Unit()
	maxWidth := maxTableCategoryWidth(cfg)
	var data [][]string
	for _, obs := range result.Observations {
		data = append(data, []string{
			obs.Period,
			truncateLabel(obs.Category, maxWidth),
			fmtFloat(obs.Value),
			unit,
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	sourceLabel := contract.GetPlainSourceLabel(result.Source)
	if cfg.UseColors {
		sourceLabel = contract.GetColorSourceLabel(result.Source)
	}
	fmt.Fprintf(writer, "\n%d observations · source: %s · completed in %.2fs\n",
		len(result.Observations), sourceLabel, duration.Seconds())
	return nil
}

// writeCSVRowsForResult writes the observations to a CSV writer.
func writeCSVRowsForResult(w *csv.Writer, result schema.Result, fmtFloat func(float64) string) error {
	header := []string{"period", "year", "category", "value", "source"}
	if err := w.Write(header); err != nil {
		return err
	}
	sourceLabel := contract.GetPlainSourceLabel(result.Source)
	for _, obs := range result.Observations {
		row := []string{
			obs.Period,
			fmt.Sprintf("%d", obs.Year),
			obs.Category,
			fmtFloat(obs.Value),
			sourceLabel,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// maxTableCategoryWidth calculates the maximum width for category labels in
// table output based on terminal width and the fixed columns.
func maxTableCategoryWidth(cfg *contract.Config) int {
	// Period + Value + Unit columns with borders and padding.
	const baseWidth = 45
	available := terminalWidth(cfg) - baseWidth
	if available < 12 {
		return 12
	}
	return available
}

func truncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) <= maxWidth {
		return label
	}
	if maxWidth <= 1 {
		return "…"
	}
	return string(runes[:maxWidth-1]) + "…"
}
