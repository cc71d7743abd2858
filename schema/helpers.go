package schema

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// QuarterPeriod formats a year and quarter into the engine's quarterly period
// token, e.g. (2013, 2) -> "2013Q2". Zero-padded years keep lexicographic and
// chronological order aligned within a century.
func QuarterPeriod(year, quarter int) string {
	return fmt.Sprintf("%04dQ%d", year, quarter)
}

// AnnualPeriod formats a year into the annual period token, e.g. "2013".
func AnnualPeriod(year int) string {
	return fmt.Sprintf("%04d", year)
}

// ParsePeriod splits a period token into its year and quarter components.
// Annual tokens report quarter 0. The second return is false when the token
// is not a recognizable period.
func ParsePeriod(period string) (year, quarter int, ok bool) {
	period = strings.TrimSpace(period)
	if idx := strings.IndexByte(period, 'Q'); idx >= 0 {
		y, errY := strconv.Atoi(period[:idx])
		q, errQ := strconv.Atoi(period[idx+1:])
		if errY != nil || errQ != nil || q < 1 || q > 4 {
			return 0, 0, false
		}
		return y, q, true
	}
	y, err := strconv.Atoi(period)
	if err != nil {
		return 0, 0, false
	}
	return y, 0, true
}

// Round2 rounds a value to two decimal places, the fixed precision of every
// observation the engine emits.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SortObservations orders observations by period token, then category, in
// place. Lexicographic period order equals chronological order because
// periods are zero-padded and the "Q" token sorts stably after the year.
func SortObservations(observations []Observation) {
	sort.Slice(observations, func(i, j int) bool {
		if observations[i].Period != observations[j].Period {
			return observations[i].Period < observations[j].Period
		}
		return observations[i].Category < observations[j].Category
	})
}
