package core

import (
	"math"

	"github.com/mcarrero/laborstat/core/synth"
	"github.com/mcarrero/laborstat/schema"
)

// deriveNoiseAmp bounds the deterministic wobble applied on top of the
// variance multiplier, as a fraction of the derived value.
const deriveNoiseAmp = 0.02

// deriveFromTotal estimates a category series from the official aggregate:
// each Total observation is scaled by the category's variance multiplier and
// a small deterministic noise factor. The Total series' periods are
// preserved exactly; no period is invented. This path anchors estimates to
// the observed macro trend, so it is preferred over pure simulation whenever
// any real Total data exists.
func deriveFromTotal(indicator schema.Indicator, category string, totalPoints []schema.SeriesPoint) []schema.Observation {
	multiplier := synth.Multiplier(indicator, category)

	observations := make([]schema.Observation, 0, len(totalPoints))
	for _, point := range totalPoints {
		_, quarter, _ := schema.ParsePeriod(point.Period)
		observations = append(observations, schema.Observation{
			Period:   point.Period,
			Year:     point.Year,
			Category: category,
			Value:    schema.Round2(point.Value * multiplier * deriveNoise(category, point.Year, quarter)),
		})
	}
	return observations
}

// deriveNoise is a bounded factor in [1-amp, 1+amp], reproducible from the
// observation coordinates alone.
func deriveNoise(category string, year, quarter int) float64 {
	seed := float64(len(category) * 13)
	return 1 + deriveNoiseAmp*math.Sin(float64(year*4+quarter)*1.3+seed)
}
