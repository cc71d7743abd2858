package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mcarrero/laborstat/core/synth"
	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteCategories prints the catalog enumeration for one dimension. Catalog
// order is meaningful to consumers, so rows keep it.
func WriteCategories(dimension schema.Dimension, categories []string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, map[string]any{"dimension": dimension, "categories": categories})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			if err := csvWriter.Write([]string{"position", "dimension", "category"}); err != nil {
				return err
			}
			for i, category := range categories {
				if err := csvWriter.Write([]string{strconv.Itoa(i + 1), string(dimension), category}); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"#", "Category"})
			var data [][]string
			for i, category := range categories {
				data = append(data, []string{strconv.Itoa(i + 1), category})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return err
			}
			fmt.Fprintf(w, "\n%d categories for dimension %q\n", len(categories), dimension)
			return nil
		}, "Wrote table")
	}
}

// WriteIndicators prints the static indicator reference, including the
// reference-year calibration levels the synthetic model is anchored on.
func WriteIndicators(cfg *contract.Config) error {
	type indicatorInfo struct {
		Indicator schema.Indicator `json:"indicator"`
		Unit      string           `json:"unit"`
		Reference float64          `json:"referenceLevel"`
	}
	infos := make([]indicatorInfo, 0, len(schema.AllIndicators))
	for _, indicator := range schema.AllIndicators {
		infos = append(infos, indicatorInfo{
			Indicator: indicator,
			Unit:      indicator.Unit(),
			Reference: synth.ReferenceLevel(indicator),
		})
	}

	fmtFloat := createFormatter(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, infos)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			if err := csvWriter.Write([]string{"indicator", "unit", "reference_level"}); err != nil {
				return err
			}
			for _, info := range infos {
				if err := csvWriter.Write([]string{string(info.Indicator), info.Unit, fmtFloat(info.Reference)}); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Indicator", "Unit", fmt.Sprintf("%d Reference", schema.ReferenceYear)})
			var data [][]string
			for _, info := range infos {
				data = append(data, []string{string(info.Indicator), info.Unit, fmtFloat(info.Reference)})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		}, "Wrote table")
	}
}
