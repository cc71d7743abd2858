package ine

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/mcarrero/laborstat/schema"
)

// seriesPayload mirrors the Tempus3 response shape:
// {"Data":[{"Anyo":2013,"Valor":26.94,"NombrePeriodo":"Trimestre 2"},...]}.
type seriesPayload struct {
	Data []seriesRow `json:"Data"`
}

type seriesRow struct {
	Anyo          int         `json:"Anyo"`
	Valor         json.Number `json:"Valor"`
	NombrePeriodo string      `json:"NombrePeriodo"`
}

var errEmptyPayload = errors.New("ine: payload has no data rows")

// parseSeriesPayload decodes a Tempus3 body into series points with
// normalized period tokens. Rows with an unusable year or value are skipped
// rather than failing the whole series.
func parseSeriesPayload(body []byte) ([]schema.SeriesPoint, error) {
	decoder := json.NewDecoder(strings.NewReader(string(body)))
	decoder.UseNumber()

	var payload seriesPayload
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.Data) == 0 {
		return nil, errEmptyPayload
	}

	points := make([]schema.SeriesPoint, 0, len(payload.Data))
	for _, row := range payload.Data {
		if row.Anyo < 1900 || row.Anyo > 2100 {
			continue
		}
		value, err := row.Valor.Float64()
		if err != nil {
			continue
		}
		points = append(points, schema.SeriesPoint{
			Period: normalizePeriod(row.Anyo, row.NombrePeriodo),
			Year:   row.Anyo,
			Value:  value,
		})
	}
	return points, nil
}

// normalizePeriod converts the localized period label into the engine's
// token format: "Trimestre 2" of 2013 becomes "2013Q2". Labels without a
// recognizable quarter normalize to the bare-year token.
func normalizePeriod(year int, label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return schema.AnnualPeriod(year)
	}

	fields := strings.Fields(label)
	last := fields[len(fields)-1]
	if quarter, err := strconv.Atoi(last); err == nil && quarter >= 1 && quarter <= 4 {
		if len(fields) > 1 || strings.HasPrefix(strings.ToLower(label), "t") {
			return schema.QuarterPeriod(year, quarter)
		}
	}

	// Compact forms like "T2" or "Q2" show up in some tables.
	lower := strings.ToLower(label)
	if len(lower) == 2 && (lower[0] == 't' || lower[0] == 'q') {
		if quarter, err := strconv.Atoi(lower[1:]); err == nil && quarter >= 1 && quarter <= 4 {
			return schema.QuarterPeriod(year, quarter)
		}
	}

	return schema.AnnualPeriod(year)
}
