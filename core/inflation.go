package core

import (
	"math"

	"github.com/mcarrero/laborstat/schema"
)

// assumedAnnualInflation is the constant rate used when no official price
// index is reachable. It matches the synthetic model's compounding factor so
// the two regimes stay consistent.
const assumedAnnualInflation = 0.021

// Adjuster converts nominal monetary values into reference-year purchasing
// power. It is only invoked for constant-currency wage queries; every other
// combination passes through it as identity.
type Adjuster struct {
	index map[int]float64 // annual price index, nil in simulated mode
}

// NewOfficialAdjuster builds an adjuster over a fetched price-index series.
// The index is averaged per year so quarterly and annual index payloads
// behave the same.
func NewOfficialAdjuster(points []schema.SeriesPoint) *Adjuster {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, p := range points {
		sums[p.Year] += p.Value
		counts[p.Year]++
	}
	index := make(map[int]float64, len(sums))
	for year, sum := range sums {
		index[year] = sum / float64(counts[year])
	}
	return &Adjuster{index: index}
}

// NewSimulatedAdjuster builds an adjuster that compounds the assumed
// constant inflation rate instead of an official index.
func NewSimulatedAdjuster() *Adjuster {
	return &Adjuster{}
}

// Adjust converts a nominal value observed in the given year into real
// (reference-year) terms. In official mode the ratio of index values is
// used, degrading to a 1:1 ratio when either year is missing from the index;
// the adjustment never fails a query.
func (a *Adjuster) Adjust(nominal float64, year int) float64 {
	if a.index == nil {
		return nominal * math.Pow(1+assumedAnnualInflation, float64(schema.ReferenceYear-year))
	}
	refIndex, okRef := a.index[schema.ReferenceYear]
	obsIndex, okObs := a.index[year]
	if !okRef || !okObs || obsIndex == 0 {
		return nominal
	}
	return nominal * (refIndex / obsIndex)
}
