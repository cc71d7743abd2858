// Package schema has the data model, enumerations and helpers shared by all
// parts of laborstat.
package schema

// Observation is the atomic unit of a series: one value for one category in
// one period. Period is either a bare year ("2013") for annual frequency or a
// year+quarter token ("2013Q2") for quarterly frequency. Year always equals
// the calendar year component of Period. Observations are immutable once
// produced.
type Observation struct {
	Period   string  `json:"period"`
	Year     int     `json:"year"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// SeriesPoint is one raw point of a fetched upstream series, before a
// category is attached to it.
type SeriesPoint struct {
	Period string
	Year   int
	Value  float64
}

// SeriesQuery is the immutable request resolved by the engine.
//
// Categories restricts the catalog selection: nil means every category of the
// dimension, an explicitly empty slice means none (and yields an empty
// result). The age filter biases the synthetic baseline; it never filters
// categories.
type SeriesQuery struct {
	Indicator  Indicator `json:"indicator"`
	Dimension  Dimension `json:"dimension"`
	Frequency  Frequency `json:"frequency"`
	StartYear  int       `json:"startYear"`
	EndYear    int       `json:"endYear"`
	MinAge     int       `json:"minAge"`
	MaxAge     int       `json:"maxAge"`
	Basis      Basis     `json:"basis"`
	Categories []string  `json:"categories,omitempty"`
}

// Result is what the engine returns for a query. Source is a single tag for
// the whole result, decided by whether the aggregate reference series was
// reachable; individual categories inside an "official" result may still be
// derived locally. Consumers must treat Source as informational only.
type Result struct {
	Observations []Observation `json:"observations"`
	Source       SourceTag     `json:"source"`
}

// SelectedCategories resolves the query's category selection against the
// catalog. Nil selection means all catalog categories; unknown labels are
// dropped so the result only ever contains catalog categories.
func (q SeriesQuery) SelectedCategories() []string {
	all := CategoriesFor(q.Dimension)
	if q.Categories == nil {
		return all
	}
	known := make(map[string]bool, len(all))
	for _, c := range all {
		known[c] = true
	}
	selected := make([]string, 0, len(q.Categories))
	for _, c := range q.Categories {
		if known[c] {
			selected = append(selected, c)
		}
	}
	return selected
}
