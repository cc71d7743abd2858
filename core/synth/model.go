// Package synth is the synthetic labor-market model: a pure, deterministic
// value generator used whenever official data is unreachable. Identical
// inputs always produce identical outputs, so re-rendering a chart or
// re-running a test never shifts a simulated series.
package synth

import (
	"math"

	"github.com/mcarrero/laborstat/schema"
)

// Calibrated national levels for the reference year (2024, Q-level terms).
const (
	baseUnemployment  = 11.3   // %
	baseParticipation = 58.6   // %
	baseEmployment    = 51.9   // %
	baseMonthlyWage   = 2128.0 // EUR gross per month

	// simulatedInflation is the assumed constant annual inflation used to
	// express past wages in reference-year purchasing power.
	simulatedInflation = 0.021
)

// Value floors. The model is total over its inputs, so the clamp is the only
// guard it needs.
const (
	minRate = 0.8
	minWage = 650.0
)

// Seasonal amplitude per indicator, in the indicator's own unit. Wages carry
// no seasonal term.
var seasonalAmp = map[schema.Indicator]float64{
	schema.UnemploymentRate:  0.35,
	schema.ParticipationRate: -0.12,
	schema.EmploymentRate:    -0.25,
	schema.MonthlyWage:       0,
}

// Pseudo-noise amplitude per indicator.
var noiseAmp = map[schema.Indicator]float64{
	schema.UnemploymentRate:  0.15,
	schema.ParticipationRate: 0.10,
	schema.EmploymentRate:    0.12,
	schema.MonthlyWage:       12.0,
}

// Model synthesizes plausible values for one query's age filter. The age
// range biases the baseline (younger cohorts run hotter unemployment and
// colder wages); it never restricts which categories are produced.
type Model struct {
	minAge int
	maxAge int
}

// New builds a model for the given age filter. Zero values fall back to the
// full working-age range.
func New(minAge, maxAge int) *Model {
	if minAge <= 0 {
		minAge = schema.DefaultMinAge
	}
	if maxAge <= 0 {
		maxAge = schema.DefaultMaxAge
	}
	return &Model{minAge: minAge, maxAge: maxAge}
}

// Value produces the simulated level for (indicator, category, year,
// quarter, basis). Quarter 0 is treated as Q2 so annual callers land
// mid-year on the seasonal curve; in practice the orchestrator always
// synthesizes per-quarter and aggregates afterwards.
func (m *Model) Value(indicator schema.Indicator, category string, year, quarter int, basis schema.Basis) float64 {
	if quarter < 1 || quarter > 4 {
		quarter = 2
	}

	// 1. Reference level, 2. historical trend, 3. category variance.
	value := (ReferenceLevel(indicator) + trendOffset(indicator, year)) * Multiplier(indicator, category)

	value *= m.ageBias(indicator)

	// 4. Seasonal term for non-wage indicators.
	value += seasonalAmp[indicator] * math.Sin(float64(quarter)*math.Pi/2)

	// 5. Bounded pseudo-noise, reproducible from the inputs alone.
	value += noiseAmp[indicator] * noiseWave(indicator, category, year, quarter)

	// 6. Simulated constant-currency conversion for wages.
	if indicator == schema.MonthlyWage && basis == schema.ConstantBasis {
		value *= math.Pow(1+simulatedInflation, float64(schema.ReferenceYear-year))
	}

	// 7. Clamp and round.
	return schema.Round2(clamp(indicator, value))
}

// ReferenceLevel returns the calibrated reference-year base level for an
// indicator, in the indicator's own unit.
func ReferenceLevel(indicator schema.Indicator) float64 {
	switch indicator {
	case schema.ParticipationRate:
		return baseParticipation
	case schema.EmploymentRate:
		return baseEmployment
	case schema.MonthlyWage:
		return baseMonthlyWage
	default:
		return baseUnemployment
	}
}

// trendOffset shifts the reference level back through the historical cycle.
// Unemployment follows the crisis shape: decline into 2008, sharp rise
// 2008-2013, gradual recovery to 2020, small residual after. Employment
// mirrors it at reduced amplitude, participation drifts mildly, and wages
// extrapolate backwards linearly with an accelerated segment after 2021.
func trendOffset(indicator schema.Indicator, year int) float64 {
	switch indicator {
	case schema.UnemploymentRate:
		return unemploymentOffset(year)
	case schema.EmploymentRate:
		return -0.45 * unemploymentOffset(year)
	case schema.ParticipationRate:
		return math.Max(-4.5, -0.18*float64(schema.ReferenceYear-year))
	case schema.MonthlyWage:
		if year >= 2021 {
			return -62.0 * float64(schema.ReferenceYear-year)
		}
		return -186.0 - 24.0*float64(2021-year)
	default:
		return 0
	}
}

func unemploymentOffset(year int) float64 {
	switch {
	case year >= 2021:
		return 0.12 * float64(schema.ReferenceYear-year)
	case year > 2013:
		return 0.5 + 1.5*float64(2020-year)
	case year >= 2008:
		return -3.3 + 2.86*float64(year-2008)
	default:
		return -3.3 + 0.85*float64(2008-year)
	}
}

// ageBias nudges the baseline when the query narrows the age window. The
// bias is proportional to how far the window midpoint sits below the full
// working-age midpoint.
func (m *Model) ageBias(indicator schema.Indicator) float64 {
	const fullMid = float64(schema.DefaultMinAge+schema.DefaultMaxAge) / 2
	mid := float64(m.minAge+m.maxAge) / 2
	delta := (fullMid - mid) / fullMid
	delta = math.Max(-0.5, math.Min(0.6, delta))

	switch indicator {
	case schema.UnemploymentRate:
		return 1 + 0.9*delta
	case schema.ParticipationRate:
		return 1 - 0.25*delta
	case schema.EmploymentRate:
		return 1 - 0.35*delta
	case schema.MonthlyWage:
		return 1 - 0.3*delta
	default:
		return 1
	}
}

// noiseWave is a bounded sinusoid in [-1, 1] seeded by a reproducible hash
// of the input lengths. It is deliberately not a random draw.
func noiseWave(indicator schema.Indicator, category string, year, quarter int) float64 {
	seed := float64(len(category)*31 + len(string(indicator))*17)
	return math.Sin(float64(year*4+quarter)*0.7 + seed)
}

func clamp(indicator schema.Indicator, value float64) float64 {
	switch indicator {
	case schema.MonthlyWage:
		return math.Max(minWage, value)
	case schema.UnemploymentRate:
		return math.Min(99.0, math.Max(minRate, value))
	default:
		return math.Min(99.0, math.Max(5.0, value))
	}
}
