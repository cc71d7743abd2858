package core

import (
	"context"
	"sync"
	"testing"

	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/internal/ine"
	"github.com/mcarrero/laborstat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned series payloads keyed by series identifier.
// Unknown identifiers report unavailable, like a timed-out request would.
type fakeFetcher struct {
	mu     sync.Mutex
	series map[int][]schema.SeriesPoint
	calls  map[int]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		series: make(map[int][]schema.SeriesPoint),
		calls:  make(map[int]int),
	}
}

func (f *fakeFetcher) FetchSeries(_ context.Context, seriesID int) contract.FetchResult {
	f.mu.Lock()
	f.calls[seriesID]++
	points, ok := f.series[seriesID]
	f.mu.Unlock()
	if !ok {
		return contract.Unavailable()
	}
	return contract.FetchResult{Points: points, Available: true}
}

// quarterlyPoints builds a flat quarterly series across a year range.
func quarterlyPoints(startYear, endYear int, value float64) []schema.SeriesPoint {
	var points []schema.SeriesPoint
	for year := startYear; year <= endYear; year++ {
		for quarter := 1; quarter <= 4; quarter++ {
			points = append(points, schema.SeriesPoint{
				Period: schema.QuarterPeriod(year, quarter),
				Year:   year,
				Value:  value,
			})
		}
	}
	return points
}

func genderQuery(indicator schema.Indicator) schema.SeriesQuery {
	return schema.SeriesQuery{
		Indicator: indicator,
		Dimension: schema.GenderDimension,
		Frequency: schema.Quarterly,
		StartYear: 2020,
		EndYear:   2021,
		Basis:     schema.NominalBasis,
	}
}

// TestResolveSeriesOfficial tests the fully-official path: aggregate and
// category series both reachable.
func TestResolveSeriesOfficial(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.series[ine.TotalSeriesID(schema.UnemploymentRate)] = quarterlyPoints(2020, 2021, 14.0)
	menID, ok := ine.CategorySeriesID(schema.UnemploymentRate, "Men")
	require.True(t, ok)
	womenID, ok := ine.CategorySeriesID(schema.UnemploymentRate, "Women")
	require.True(t, ok)
	fetcher.series[menID] = quarterlyPoints(2020, 2021, 12.5)
	fetcher.series[womenID] = quarterlyPoints(2020, 2021, 16.25)

	result := ResolveSeries(context.Background(), genderQuery(schema.UnemploymentRate), fetcher)

	assert.Equal(t, schema.OfficialSource, result.Source)
	// 3 categories x 2 years x 4 quarters.
	require.Len(t, result.Observations, 24)

	byCategory := make(map[string]float64)
	for _, obs := range result.Observations {
		byCategory[obs.Category] = obs.Value
	}
	assert.Equal(t, 14.0, byCategory[schema.TotalCategory])
	assert.Equal(t, 12.5, byCategory["Men"])
	assert.Equal(t, 16.25, byCategory["Women"])

	// The aggregate is fetched once and reused by the Total category.
	assert.Equal(t, 1, fetcher.calls[ine.TotalSeriesID(schema.UnemploymentRate)])
}

// TestResolveSeriesDerivation tests derivation from the aggregate when a
// category series is missing: the ratio to the aggregate tracks the
// category's variance multiplier and no period is invented.
func TestResolveSeriesDerivation(t *testing.T) {
	fetcher := newFakeFetcher()
	totalValue := 15.0
	fetcher.series[ine.TotalSeriesID(schema.UnemploymentRate)] = quarterlyPoints(2020, 2021, totalValue)
	// No gender category series registered: both derive from the aggregate.

	result := ResolveSeries(context.Background(), genderQuery(schema.UnemploymentRate), fetcher)

	assert.Equal(t, schema.OfficialSource, result.Source)
	require.Len(t, result.Observations, 24)

	totalPeriods := make(map[string]bool)
	for _, p := range quarterlyPoints(2020, 2021, totalValue) {
		totalPeriods[p.Period] = true
	}
	for _, obs := range result.Observations {
		assert.True(t, totalPeriods[obs.Period], "period %s must come from the aggregate", obs.Period)
		if obs.Category == schema.TotalCategory {
			continue
		}
		multiplier := 0.9 // Men
		if obs.Category == "Women" {
			multiplier = 1.12
		}
		ratio := obs.Value / totalValue
		assert.InDelta(t, multiplier, ratio, multiplier*0.025,
			"%s %s should track the aggregate times its multiplier", obs.Category, obs.Period)
	}
}

// TestResolveSeriesSimulated tests the fully-synthetic fallback when the
// aggregate is unreachable.
func TestResolveSeriesSimulated(t *testing.T) {
	fetcher := newFakeFetcher()

	result := ResolveSeries(context.Background(), genderQuery(schema.UnemploymentRate), fetcher)

	assert.Equal(t, schema.SimulatedSource, result.Source)
	require.Len(t, result.Observations, 24)
	for _, obs := range result.Observations {
		assert.Greater(t, obs.Value, 0.0)
		assert.LessOrEqual(t, obs.Value, 99.0)
	}
}

// TestResolveSeriesSourceTagFollowsAggregate tests that the source tag is
// decided by the aggregate alone, even when category data is reachable.
func TestResolveSeriesSourceTagFollowsAggregate(t *testing.T) {
	fetcher := newFakeFetcher()
	menID, _ := ine.CategorySeriesID(schema.UnemploymentRate, "Men")
	fetcher.series[menID] = quarterlyPoints(2020, 2021, 12.5)

	query := genderQuery(schema.UnemploymentRate)
	query.Categories = []string{"Men"}
	result := ResolveSeries(context.Background(), query, fetcher)

	// Official category data flows through, but the tag stays simulated.
	assert.Equal(t, schema.SimulatedSource, result.Source)
	require.Len(t, result.Observations, 8)
	assert.Equal(t, 12.5, result.Observations[0].Value)
}

// TestResolveSeriesAnnual tests quarterly-to-annual aggregation inside the
// pipeline.
func TestResolveSeriesAnnual(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.series[ine.TotalSeriesID(schema.UnemploymentRate)] = []schema.SeriesPoint{
		{Period: "2020Q1", Year: 2020, Value: 10.0},
		{Period: "2020Q2", Year: 2020, Value: 11.0},
		{Period: "2020Q3", Year: 2020, Value: 12.0},
		{Period: "2020Q4", Year: 2020, Value: 13.0},
	}

	query := genderQuery(schema.UnemploymentRate)
	query.Frequency = schema.Annual
	query.EndYear = 2020
	query.Categories = []string{schema.TotalCategory}
	result := ResolveSeries(context.Background(), query, fetcher)

	require.Len(t, result.Observations, 1)
	assert.Equal(t, "2020", result.Observations[0].Period)
	assert.Equal(t, 11.5, result.Observations[0].Value)
}

// TestResolveSeriesYearFilter tests that out-of-range aggregate points are
// discarded.
func TestResolveSeriesYearFilter(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.series[ine.TotalSeriesID(schema.UnemploymentRate)] = quarterlyPoints(2015, 2023, 14.0)

	query := genderQuery(schema.UnemploymentRate)
	query.Categories = []string{schema.TotalCategory}
	result := ResolveSeries(context.Background(), query, fetcher)

	require.Len(t, result.Observations, 8)
	for _, obs := range result.Observations {
		assert.GreaterOrEqual(t, obs.Year, 2020)
		assert.LessOrEqual(t, obs.Year, 2021)
	}
}

// TestResolveSeriesEmptySelection tests the explicitly-empty category
// selection.
func TestResolveSeriesEmptySelection(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.series[ine.TotalSeriesID(schema.UnemploymentRate)] = quarterlyPoints(2020, 2021, 14.0)

	query := genderQuery(schema.UnemploymentRate)
	query.Categories = []string{}
	result := ResolveSeries(context.Background(), query, fetcher)

	assert.Equal(t, schema.OfficialSource, result.Source)
	assert.Empty(t, result.Observations)
}

// TestResolveSeriesConstantWage tests official constant-currency adjustment
// through the fetched price index.
func TestResolveSeriesConstantWage(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.series[ine.TotalSeriesID(schema.MonthlyWage)] = quarterlyPoints(2020, 2021, 2000.0)
	fetcher.series[ine.PriceIndexSeriesID] = []schema.SeriesPoint{
		{Period: "2020", Year: 2020, Value: 100.0},
		{Period: "2021", Year: 2021, Value: 105.0},
		{Period: "2024", Year: 2024, Value: 110.0},
	}

	query := genderQuery(schema.MonthlyWage)
	query.Basis = schema.ConstantBasis
	query.Categories = []string{schema.TotalCategory}
	result := ResolveSeries(context.Background(), query, fetcher)

	require.Len(t, result.Observations, 8)
	for _, obs := range result.Observations {
		switch obs.Year {
		case 2020:
			assert.InDelta(t, 2000.0*(110.0/100.0), obs.Value, 0.01)
		case 2021:
			assert.InDelta(t, 2000.0*(110.0/105.0), obs.Value, 0.01)
		}
	}
}

// TestResolveSeriesNominalWageSkipsIndex tests that nominal wage queries
// never fetch the price index.
func TestResolveSeriesNominalWageSkipsIndex(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.series[ine.TotalSeriesID(schema.MonthlyWage)] = quarterlyPoints(2020, 2021, 2000.0)

	query := genderQuery(schema.MonthlyWage)
	query.Categories = []string{schema.TotalCategory}
	result := ResolveSeries(context.Background(), query, fetcher)

	require.Len(t, result.Observations, 8)
	assert.Equal(t, 2000.0, result.Observations[0].Value)
	assert.Zero(t, fetcher.calls[ine.PriceIndexSeriesID])
}

// TestResolveSeriesSimulatedConstantWage tests constant-currency adjustment
// of a fetched category series when the aggregate is down: the assumed-rate
// adjuster runs on it instead of leaving it nominal.
func TestResolveSeriesSimulatedConstantWage(t *testing.T) {
	fetcher := newFakeFetcher()
	menID, ok := ine.CategorySeriesID(schema.MonthlyWage, "Men")
	require.True(t, ok)
	fetcher.series[menID] = quarterlyPoints(2015, 2015, 2000.0)

	query := genderQuery(schema.MonthlyWage)
	query.StartYear = 2015
	query.EndYear = 2015
	query.Basis = schema.ConstantBasis
	query.Categories = []string{"Men"}
	result := ResolveSeries(context.Background(), query, fetcher)

	assert.Equal(t, schema.SimulatedSource, result.Source)
	require.Len(t, result.Observations, 4)
	for _, obs := range result.Observations {
		// 2000 * 1.021^(2024-2015)
		assert.InDelta(t, 2411.36, obs.Value, 0.01)
	}

	// The price index is never attempted without the aggregate.
	assert.Zero(t, fetcher.calls[ine.PriceIndexSeriesID])
}

// TestDeriveFromTotal tests the derivation primitive directly.
func TestDeriveFromTotal(t *testing.T) {
	points := []schema.SeriesPoint{
		{Period: "2019Q1", Year: 2019, Value: 20.0},
		{Period: "2019Q2", Year: 2019, Value: 21.0},
	}

	derived := deriveFromTotal(schema.UnemploymentRate, "Andalusia", points)

	require.Len(t, derived, 2)
	for i, obs := range derived {
		assert.Equal(t, points[i].Period, obs.Period)
		assert.Equal(t, "Andalusia", obs.Category)
		ratio := obs.Value / points[i].Value
		assert.InDelta(t, 1.6, ratio, 1.6*0.025)
	}

	// Derivation is deterministic.
	assert.Equal(t, derived, deriveFromTotal(schema.UnemploymentRate, "Andalusia", points))
}
