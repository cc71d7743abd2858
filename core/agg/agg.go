// Package agg collapses and shapes observation collections: annual
// aggregation, year-range filtering and period ordering. Everything here is
// pure, synchronous and reentrant.
package agg

import "github.com/mcarrero/laborstat/schema"

// ToAnnual groups observations by (year, category) and replaces each group
// with a single observation whose value is the arithmetic mean of the group,
// rounded to two decimals, under the bare-year period token. Quarter-level
// points are discarded. Groups are never empty by construction: quarters are
// always generated in sets of four before aggregation runs.
func ToAnnual(observations []schema.Observation) []schema.Observation {
	type groupKey struct {
		year     int
		category string
	}
	sums := make(map[groupKey]float64)
	counts := make(map[groupKey]int)
	order := make([]groupKey, 0)

	for _, obs := range observations {
		key := groupKey{year: obs.Year, category: obs.Category}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += obs.Value
		counts[key]++
	}

	annual := make([]schema.Observation, 0, len(order))
	for _, key := range order {
		annual = append(annual, schema.Observation{
			Period:   schema.AnnualPeriod(key.year),
			Year:     key.year,
			Category: key.category,
			Value:    schema.Round2(sums[key] / float64(counts[key])),
		})
	}
	return annual
}

// FilterYears keeps only observations whose year falls inside the inclusive
// [startYear, endYear] range. A range entirely outside a series' coverage
// yields an empty slice, not an error.
func FilterYears(observations []schema.Observation, startYear, endYear int) []schema.Observation {
	filtered := make([]schema.Observation, 0, len(observations))
	for _, obs := range observations {
		if obs.Year >= startYear && obs.Year <= endYear {
			filtered = append(filtered, obs)
		}
	}
	return filtered
}
