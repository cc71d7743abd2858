package synth

import "github.com/mcarrero/laborstat/schema"

// categoryVariance holds one multiplier per indicator for a category. The
// multipliers keep the synthetic world internally consistent: a category
// with structurally high unemployment carries a low wage multiplier, and
// vice versa.
type categoryVariance struct {
	Unemployment  float64
	Participation float64
	Employment    float64
	Wage          float64
}

// variance is a static, immutable lookup loaded once at process start.
// Labels are unique across dimensions, so a single table keyed by category
// covers every (indicator, category) pair.
var variance = map[string]categoryVariance{
	schema.TotalCategory: {1, 1, 1, 1},

	// Regions.
	"Andalusia":           {1.6, 0.97, 0.93, 0.85},
	"Catalonia":           {0.85, 1.03, 1.04, 1.08},
	"Madrid":              {0.8, 1.05, 1.06, 1.18},
	"Basque Country":      {0.75, 1.0, 1.04, 1.22},
	"Galicia":             {0.95, 0.96, 0.98, 0.9},
	"Valencian Community": {1.1, 1.0, 0.98, 0.92},
	"Canary Islands":      {1.4, 0.99, 0.94, 0.86},

	// Education levels.
	"Primary or less":     {1.75, 0.72, 0.68, 0.7},
	"Lower secondary":     {1.3, 0.9, 0.86, 0.84},
	"Upper secondary":     {1.05, 1.02, 1.0, 0.95},
	"Vocational training": {0.9, 1.08, 1.08, 1.02},
	"University":          {0.55, 1.18, 1.22, 1.38},

	// Age bands.
	"16-24":       {2.5, 0.68, 0.55, 0.6},
	"25-34":       {1.15, 1.12, 1.08, 0.85},
	"35-44":       {0.85, 1.14, 1.12, 1.04},
	"45-54":       {0.8, 1.1, 1.1, 1.12},
	"55 and over": {0.9, 0.62, 0.6, 1.16},

	// Genders.
	"Men":   {0.9, 1.09, 1.08, 1.08},
	"Women": {1.12, 0.92, 0.92, 0.92},
}

// Multiplier returns the variance multiplier for an (indicator, category)
// pair. Unknown categories behave like the aggregate, multiplier 1.
func Multiplier(indicator schema.Indicator, category string) float64 {
	v, ok := variance[category]
	if !ok {
		return 1
	}
	switch indicator {
	case schema.ParticipationRate:
		return v.Participation
	case schema.EmploymentRate:
		return v.Employment
	case schema.MonthlyWage:
		return v.Wage
	default:
		return v.Unemployment
	}
}
