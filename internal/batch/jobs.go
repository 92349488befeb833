package batch

import (
	"context"

	"gonum.org/v1/plot/plotter"

	"github.com/wgraj/famplot/internal/chart"
	"github.com/wgraj/famplot/internal/dataset"
	"github.com/wgraj/famplot/internal/stats"
)

// Chart parameters.
const (
	// UsageFirstRank and UsageLastRank bound the 1-indexed ranks shown in
	// the usage distribution.
	UsageFirstRank = 2
	UsageLastRank  = 6

	ScoreBins = 20

	// SizeDiffLimit excludes release size differences at or above it.
	SizeDiffLimit = 32
	SizeDiffBins  = 16
)

// Job renders one chart from one input table.
type Job struct {
	ID          string
	Name        string
	Description string
	Table       dataset.Table
	Labels      chart.Labels
	build       buildFunc
}

type buildFunc func(ctx context.Context, r *Renderer, store *dataset.Store, j Job) (*chart.Figure, error)

// Jobs returns every chart in batch order.
func Jobs() []Job {
	return []Job{
		{
			ID:          "2_1_1",
			Name:        "family-cardinality",
			Description: "Number of families per cardinality (log-log scatter)",
			Table:       dataset.FamilySizes,
			Labels: chart.Labels{
				Title: "Frequency of Dependency Family Cardinalities",
				X:     "Family Cardinality",
				Y:     "Number of Families",
			},
			build: buildPairScatter("sz", "count"),
		},
		{
			ID:          "2_1_2",
			Name:        "family-cardinality-ecdf",
			Description: "ECDF of family cardinality weighted by family count",
			Table:       dataset.FamilySizes,
			Labels: chart.Labels{
				Title: "Cumulative Distribution of Dependency Family Cardinalities",
				X:     "Family Cardinality",
				Y:     "Proportion of Families",
			},
			build: buildCardinalityECDF,
		},
		{
			ID:          "2_2_1",
			Name:        "usage-by-rank",
			Description: "Usage distribution for frequency ranks 2-6 (violin and box)",
			Table:       dataset.UseFreq,
			Labels: chart.Labels{
				Title: "Normalized Usage Rate of Dependencies by Frequency Rank in Family",
				X:     "Frequency Rank within Family",
				Y:     "Normalized Usage Frequency",
			},
			build: buildUsageByRank,
		},
		{
			ID:          "2_2_2",
			Name:        "rank-average-usage",
			Description: "Mean usage per frequency rank (log-log scatter)",
			Table:       dataset.UseFreq,
			Labels: chart.Labels{
				Title: "Mean Normalized Usage Rate of Dependencies by Frequency Rank in Family",
				X:     "Frequency Rank within Family",
				Y:     "Normalized Usage Frequency",
			},
			build: buildRankAverages,
		},
		{
			ID:          "2_2_3",
			Name:        "co-use",
			Description: "Occurrences of same-family dependencies used together (log-log scatter)",
			Table:       dataset.CoUse,
			Labels: chart.Labels{
				Title: "Dependencies from the Same Family Used Together",
				X:     "Number of Dependencies from Family Used Together",
				Y:     "Total Occurrence Count",
			},
			build: buildPairScatter("num_deps", "cnt"),
		},
		{
			ID:          "2_2_4",
			Name:        "normalized-co-use",
			Description: "Proportion of family used together (histogram)",
			Table:       dataset.NormCoUse,
			Labels: chart.Labels{
				Title: "Proportion of Dependency Families Used Together",
				X:     "Proportion of Family Used Together",
				Y:     "Total Occurrence Count",
			},
			build: buildUnitHistogram("coeff"),
		},
		{
			ID:          "2_3_1",
			Name:        "consistency-score",
			Description: "Mean homogeneity score of families (histogram)",
			Table:       dataset.ConsistencyScores,
			Labels: chart.Labels{
				Title: "Mean Homogeneity Score of Dependency Families",
				X:     "Mean Homogeneity Score",
				Y:     "Number of Families",
			},
			build: buildUnitHistogram("score"),
		},
		{
			ID:          "2_3_2",
			Name:        "release-size-diff",
			Description: "Source size differences below 32 B between releases (histogram)",
			Table:       dataset.ReleaseSizeDiffs,
			Labels: chart.Labels{
				Title: "Absolute Difference in Source Size Between Consecutive Releases",
				X:     "Absolute Difference in Source Size (B)",
				Y:     "Occurrence Count",
			},
			build: buildSizeDiffHistogram,
		},
	}
}

func buildPairScatter(xCol, yCol string) buildFunc {
	return func(ctx context.Context, r *Renderer, store *dataset.Store, j Job) (*chart.Figure, error) {
		pairs, err := store.Pairs(ctx, j.Table, xCol, yCol)
		if err != nil {
			return nil, err
		}
		pts := make(plotter.XYs, len(pairs))
		for i, p := range pairs {
			pts[i] = plotter.XY{X: p.X, Y: p.Y}
		}
		return r.opts.Style.LogScatter(j.Labels, pts)
	}
}

func buildCardinalityECDF(ctx context.Context, r *Renderer, store *dataset.Store, j Job) (*chart.Figure, error) {
	pairs, err := store.Pairs(ctx, dataset.FamilySizes, "sz", "count")
	if err != nil {
		return nil, err
	}
	weighted := make([]stats.Weighted, len(pairs))
	for i, p := range pairs {
		weighted[i] = stats.Weighted{Value: p.X, Weight: p.Y}
	}
	return r.opts.Style.ECDF(j.Labels, stats.WeightedECDF(weighted))
}

func buildUsageByRank(ctx context.Context, r *Renderer, store *dataset.Store, j Job) (*chart.Figure, error) {
	obs, err := store.Observations(ctx)
	if err != nil {
		return nil, err
	}
	groups := stats.GroupByRank(obs)
	selected := stats.SelectRanks(groups, UsageFirstRank, UsageLastRank)
	if want := UsageLastRank - UsageFirstRank + 1; len(selected) < want {
		r.logger.Warn("fewer ranks than expected",
			"chart", j.Name, "want", want, "have", len(selected))
	}
	return r.opts.Style.Distribution(j.Labels, selected, UsageFirstRank)
}

func buildRankAverages(ctx context.Context, r *Renderer, store *dataset.Store, j Job) (*chart.Figure, error) {
	obs, err := store.Observations(ctx)
	if err != nil {
		return nil, err
	}
	avgs := stats.RankAverages(stats.GroupByRank(obs), r.opts.AverageRankLimit)
	return r.opts.Style.RankAverages(j.Labels, avgs)
}

func buildUnitHistogram(col string) buildFunc {
	return func(ctx context.Context, r *Renderer, store *dataset.Store, j Job) (*chart.Figure, error) {
		values, err := store.Values(ctx, j.Table, col)
		if err != nil {
			return nil, err
		}
		return r.opts.Style.Histogram(j.Labels, stats.FixedBins(values, 0, 1, ScoreBins))
	}
}

func buildSizeDiffHistogram(ctx context.Context, r *Renderer, store *dataset.Store, j Job) (*chart.Figure, error) {
	values, err := store.ValuesBelow(ctx, dataset.ReleaseSizeDiffs, "size_diff", SizeDiffLimit)
	if err != nil {
		return nil, err
	}
	return r.opts.Style.Histogram(j.Labels, stats.DataBins(values, SizeDiffBins))
}
