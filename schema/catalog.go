package schema

// The category catalog is a static enumeration: categories are never
// discovered dynamically. Ordering is significant because it determines the
// default pre-selection of categories by downstream consumers, and "Total"
// is always first.
var catalog = map[Dimension][]string{
	RegionDimension: {
		TotalCategory,
		"Andalusia",
		"Catalonia",
		"Madrid",
		"Basque Country",
		"Galicia",
		"Valencian Community",
		"Canary Islands",
	},
	EducationDimension: {
		TotalCategory,
		"Primary or less",
		"Lower secondary",
		"Upper secondary",
		"Vocational training",
		"University",
	},
	AgeDimension: {
		TotalCategory,
		"16-24",
		"25-34",
		"35-44",
		"45-54",
		"55 and over",
	},
	GenderDimension: {
		TotalCategory,
		"Men",
		"Women",
	},
}

// CategoriesFor returns the ordered category labels for a breakdown
// dimension. It is total: an unknown dimension falls back to the bare
// aggregate rather than an empty list, so callers never need to handle a
// missing catalog entry.
func CategoriesFor(dimension Dimension) []string {
	labels, ok := catalog[dimension]
	if !ok {
		return []string{TotalCategory}
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}
