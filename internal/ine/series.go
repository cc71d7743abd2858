package ine

import "github.com/mcarrero/laborstat/schema"

// PriceIndexSeriesID is the CPI general-index series used for
// constant-currency adjustment.
const PriceIndexSeriesID = 251852

// totalSeries maps each indicator to the national aggregate ("Total") series
// identifier. The aggregate's reachability alone decides a result's source
// tag.
var totalSeries = map[schema.Indicator]int{
	schema.UnemploymentRate:  4247,
	schema.ParticipationRate: 4245,
	schema.EmploymentRate:    4246,
	schema.MonthlyWage:       10882,
}

// categorySeries maps (indicator, category) pairs to upstream series
// identifiers. The table is deliberately sparse: pairs with no published
// per-category series fall through to the derivation strategy or the
// synthetic model, which is not an error.
var categorySeries = map[schema.Indicator]map[string]int{
	schema.UnemploymentRate: {
		"Andalusia":      4566,
		"Catalonia":      4574,
		"Madrid":         4581,
		"Basque Country": 4585,
		"Men":            4248,
		"Women":          4249,
	},
	schema.ParticipationRate: {
		"Andalusia": 4526,
		"Catalonia": 4534,
		"Madrid":    4541,
		"Men":       4250,
		"Women":     4251,
	},
	schema.EmploymentRate: {
		"Andalusia": 4546,
		"Catalonia": 4554,
		"Madrid":    4561,
		"Men":       4252,
		"Women":     4253,
	},
	schema.MonthlyWage: {
		"Men":   10884,
		"Women": 10885,
	},
}

// TotalSeriesID returns the aggregate series identifier for an indicator.
// Every indicator has one.
func TotalSeriesID(indicator schema.Indicator) int {
	return totalSeries[indicator]
}

// CategorySeriesID looks up the series identifier for a category-specific
// series. The boolean is false for unmapped pairs.
func CategorySeriesID(indicator schema.Indicator, category string) (int, bool) {
	byCategory, ok := categorySeries[indicator]
	if !ok {
		return 0, false
	}
	id, ok := byCategory[category]
	return id, ok
}
