package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usageFixture() []Observation {
	return []Observation{
		{Position: 3, Value: 0.10},
		{Position: 0, Value: 0.90},
		{Position: 1, Value: 0.40},
		{Position: 2, Value: 0.20},
		{Position: 1, Value: 0.30},
		{Position: 4, Value: 0.05},
		{Position: 5, Value: 0.02},
		{Position: 0, Value: 0.80},
		{Position: 6, Value: 0.01},
		{Position: 2, Value: 0.25},
	}
}

func TestGroupByRank(t *testing.T) {
	groups := GroupByRank(usageFixture())

	require.Len(t, groups, 7)
	for i, g := range groups {
		assert.Equal(t, int64(i), g.Position, "groups sorted by position")
	}
	assert.Equal(t, []float64{0.90, 0.80}, groups[0].Values)
	assert.Equal(t, []float64{0.40, 0.30}, groups[1].Values)
	assert.Equal(t, []float64{0.20, 0.25}, groups[2].Values)
}

func TestGroupByRank_Empty(t *testing.T) {
	assert.Empty(t, GroupByRank(nil))
}

func TestSelectRanks(t *testing.T) {
	obs := usageFixture()
	selected := SelectRanks(GroupByRank(obs), 2, 6)

	require.Len(t, selected, 5)
	for i, g := range selected {
		assert.Equal(t, int64(i+1), g.Position)

		var want []float64
		for _, o := range obs {
			if o.Position == g.Position {
				want = append(want, o.Value)
			}
		}
		assert.ElementsMatch(t, want, g.Values, "rank %d values", i+2)
	}
}

func TestSelectRanks_Short(t *testing.T) {
	groups := GroupByRank([]Observation{{0, 1}, {1, 0.5}, {2, 0.25}})

	tests := []struct {
		name        string
		first, last int
		want        []int64
	}{
		{name: "truncated at end", first: 2, last: 6, want: []int64{1, 2}},
		{name: "past end", first: 5, last: 6, want: nil},
		{name: "first clamped", first: 0, last: 1, want: []int64{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int64
			for _, g := range SelectRanks(groups, tt.first, tt.last) {
				got = append(got, g.Position)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankAverages(t *testing.T) {
	obs := usageFixture()
	groups := GroupByRank(obs)
	avgs := RankAverages(groups, 0)

	require.Len(t, avgs, len(groups))
	for i, a := range avgs {
		assert.Equal(t, i+1, a.Rank)

		var sum float64
		var n int
		for _, o := range obs {
			if o.Position == a.Position {
				sum += o.Value
				n++
			}
		}
		assert.InDelta(t, sum/float64(n), a.Mean, 1e-12)
	}

	// Regrouping the same observations gives the same averages.
	assert.Equal(t, avgs, RankAverages(GroupByRank(obs), 0))
}

func TestRankAverages_Limit(t *testing.T) {
	groups := GroupByRank(usageFixture())

	assert.Len(t, RankAverages(groups, 3), 3)
	assert.Len(t, RankAverages(groups, 1000), len(groups))
	assert.Empty(t, RankAverages(nil, 10))
}

func TestFixedBins(t *testing.T) {
	values := []float64{0, 0.04, 0.5, 0.5, 0.999, 1, 1.2, -0.1}
	bins := FixedBins(values, 0, 1, 20)

	require.Len(t, bins, 20)
	assert.Equal(t, 2.0, bins[0].Count, "0 and 0.04 share the first bin")
	assert.Equal(t, 2.0, bins[10].Count)
	assert.Equal(t, 2.0, bins[19].Count, "upper edge belongs to the last bin")
	assert.Equal(t, 6.0, Total(bins), "out of range values are not counted")
	assert.Equal(t, 1.0, bins[19].Max)
}

func TestFixedBins_SingleValue(t *testing.T) {
	values := []float64{0.5, 0.5, 0.5, 0.5, 0.5}
	bins := FixedBins(values, 0, 1, 20)

	var nonZero []Bin
	for _, b := range bins {
		if b.Count > 0 {
			nonZero = append(nonZero, b)
		}
	}
	require.Len(t, nonZero, 1)
	assert.Equal(t, 5.0, nonZero[0].Count)
	assert.True(t, nonZero[0].Min <= 0.5 && 0.5 < nonZero[0].Max)
}

func TestFixedBins_Invalid(t *testing.T) {
	assert.Nil(t, FixedBins([]float64{1}, 0, 1, 0))
	assert.Nil(t, FixedBins([]float64{1}, 1, 1, 10))
}

func TestDataBins(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		lo, hi float64
	}{
		{name: "spans data", values: []float64{2, 4, 10}, lo: 2, hi: 10},
		{name: "constant", values: []float64{3, 3}, lo: 2.5, hi: 3.5},
		{name: "empty", values: nil, lo: 0, hi: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bins := DataBins(tt.values, 16)
			require.Len(t, bins, 16)
			assert.Equal(t, tt.lo, bins[0].Min)
			assert.Equal(t, tt.hi, bins[15].Max)
			assert.Equal(t, float64(len(tt.values)), Total(bins))
		})
	}
}

func TestBelow(t *testing.T) {
	values := []float64{0, 31, 31.9, 32, 33, 100, 5}
	kept := Below(values, 32)

	assert.Equal(t, []float64{0, 31, 31.9, 5}, kept)
	assert.Equal(t, float64(len(kept)), Total(DataBins(kept, 16)))
}

func TestWeightedECDF(t *testing.T) {
	steps := WeightedECDF([]Weighted{
		{Value: 3, Weight: 1},
		{Value: 1, Weight: 100},
		{Value: 2, Weight: 10},
		{Value: 2, Weight: 9},
		{Value: 7, Weight: 0},
	})

	require.Len(t, steps, 3)
	assert.Equal(t, 1.0, steps[0].X)
	assert.InDelta(t, 100.0/120, steps[0].P, 1e-12)
	assert.Equal(t, 2.0, steps[1].X)
	assert.InDelta(t, 119.0/120, steps[1].P, 1e-12)
	assert.Equal(t, Step{X: 3, P: 1}, steps[2])
}

func TestWeightedECDF_NoWeight(t *testing.T) {
	assert.Nil(t, WeightedECDF(nil))
	assert.Nil(t, WeightedECDF([]Weighted{{Value: 1, Weight: 0}}))
}

func TestKDE(t *testing.T) {
	values := []float64{0.1, 0.2, 0.2, 0.3, 0.9}
	pts := KDE(values, DensityPoints)

	require.Len(t, pts, DensityPoints)
	assert.Equal(t, 0.1, pts[0].Value)
	assert.Equal(t, 0.9, pts[len(pts)-1].Value)
	for i, p := range pts {
		assert.False(t, math.IsNaN(p.Density), "point %d", i)
		assert.Greater(t, p.Density, 0.0)
	}

	// The density peaks near the cluster, not at the outlier.
	peak := pts[0]
	for _, p := range pts {
		if p.Density > peak.Density {
			peak = p
		}
	}
	assert.InDelta(t, 0.2, peak.Value, 0.05)
}

func TestKDE_Degenerate(t *testing.T) {
	assert.Nil(t, KDE(nil, DensityPoints))
	assert.Equal(t, []DensityPoint{{Value: 0.4, Density: 1}}, KDE([]float64{0.4}, DensityPoints))
	assert.Equal(t, []DensityPoint{{Value: 2, Density: 1}}, KDE([]float64{2, 2, 2}, DensityPoints))
}

func TestScaleDensity(t *testing.T) {
	scaled := ScaleDensity([]DensityPoint{{0, 2}, {1, 4}, {2, 1}}, 0.25)

	assert.Equal(t, []DensityPoint{{0, 0.125}, {1, 0.25}, {2, 0.0625}}, scaled)
}
