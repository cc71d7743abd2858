package core

import (
	"context"
	"sync"

	"github.com/mcarrero/laborstat/core/agg"
	"github.com/mcarrero/laborstat/core/synth"
	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/internal/ine"
	"github.com/mcarrero/laborstat/schema"
)

// ResolveSeries is the engine's single public entry point: one
// fetch-or-synthesize-then-adjust-then-aggregate pipeline. It always
// succeeds; the result's Source tag is the only visible signal of degraded
// provenance, and it is decided solely by the aggregate series' reachability.
func ResolveSeries(ctx context.Context, query schema.SeriesQuery, fetcher contract.SeriesFetcher) schema.Result {
	// 1. The aggregate ("Total") fetch decides the whole result's source tag,
	// even though individual categories succeed or fail independently of it.
	total := fetcher.FetchSeries(ctx, ine.TotalSeriesID(query.Indicator))
	source := schema.SimulatedSource
	if total.Available {
		source = schema.OfficialSource
	}

	// 2. Price index for constant-currency wages. With the aggregate down the
	// index is not even attempted; fetched category series still get adjusted,
	// with the assumed constant rate, so the two regimes stay consistent.
	wantAdjust := query.Indicator == schema.MonthlyWage && query.Basis == schema.ConstantBasis
	var adjuster *Adjuster
	if wantAdjust {
		if total.Available {
			indexResult := fetcher.FetchSeries(ctx, ine.PriceIndexSeriesID)
			adjuster = NewOfficialAdjuster(indexResult.Points)
		} else {
			adjuster = NewSimulatedAdjuster()
		}
	}

	// 3. Concurrent per-category resolution. Each category writes into its
	// own slot, so no locking is needed; one category's timeout has no
	// effect on the others.
	categories := query.SelectedCategories()
	model := synth.New(query.MinAge, query.MaxAge)
	slots := make([][]schema.Observation, len(categories))

	var wg sync.WaitGroup
	for i, category := range categories {
		wg.Go(func() {
			slots[i] = resolveCategory(ctx, query, category, fetcher, total, model, adjuster)
		})
	}
	wg.Wait()

	// 5-7. Flatten, filter to the requested range, aggregate, sort.
	observations := make([]schema.Observation, 0, len(categories)*4*(query.EndYear-query.StartYear+1))
	for _, slot := range slots {
		observations = append(observations, slot...)
	}
	observations = agg.FilterYears(observations, query.StartYear, query.EndYear)
	if query.Frequency == schema.Annual {
		observations = agg.ToAnnual(observations)
	}
	schema.SortObservations(observations)

	return schema.Result{Observations: observations, Source: source}
}

// resolveCategory produces one category's observations through the fallback
// ladder: official category series, then derivation from the official Total,
// then the synthetic model. Every tier is a single attempt.
func resolveCategory(ctx context.Context, query schema.SeriesQuery, category string, fetcher contract.SeriesFetcher, total contract.FetchResult, model *synth.Model, adjuster *Adjuster) []schema.Observation {
	// (a) A category-specific official series, when one is mapped. The Total
	// category reuses the aggregate fetch instead of re-requesting it.
	if category == schema.TotalCategory {
		if total.Available {
			return adjustAll(pointsToObservations(total.Points, category), query, adjuster)
		}
	} else if id, ok := ine.CategorySeriesID(query.Indicator, category); ok {
		if result := fetcher.FetchSeries(ctx, id); result.Available {
			return adjustAll(pointsToObservations(result.Points, category), query, adjuster)
		}
	}

	// (b) Derive from the official aggregate when it exists.
	if total.Available {
		return adjustAll(deriveFromTotal(query.Indicator, category, total.Points), query, adjuster)
	}

	// (c) Fully synthetic. The model already applies the value basis, so no
	// adjuster pass runs here; otherwise constant-currency wages would be
	// adjusted twice.
	observations := make([]schema.Observation, 0, 4*(query.EndYear-query.StartYear+1))
	for year := query.StartYear; year <= query.EndYear; year++ {
		for quarter := 1; quarter <= 4; quarter++ {
			observations = append(observations, schema.Observation{
				Period:   schema.QuarterPeriod(year, quarter),
				Year:     year,
				Category: category,
				Value:    model.Value(query.Indicator, category, year, quarter, query.Basis),
			})
		}
	}
	return observations
}

func pointsToObservations(points []schema.SeriesPoint, category string) []schema.Observation {
	observations := make([]schema.Observation, 0, len(points))
	for _, point := range points {
		observations = append(observations, schema.Observation{
			Period:   point.Period,
			Year:     point.Year,
			Category: category,
			Value:    schema.Round2(point.Value),
		})
	}
	return observations
}

// adjustAll applies the inflation adjuster to fetched and derived wage
// observations when constant currency was requested.
func adjustAll(observations []schema.Observation, query schema.SeriesQuery, adjuster *Adjuster) []schema.Observation {
	if adjuster == nil || query.Indicator != schema.MonthlyWage || query.Basis != schema.ConstantBasis {
		return observations
	}
	for i := range observations {
		observations[i].Value = schema.Round2(adjuster.Adjust(observations[i].Value, observations[i].Year))
	}
	return observations
}
