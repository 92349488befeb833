// Package stats derives the aggregate series plotted by famplot: rank
// groups, per-rank means, histogram bins, empirical CDFs and kernel
// density estimates.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Observation is a single usage value observed at a rank position.
type Observation struct {
	Position int64
	Value    float64
}

// RankGroup holds every value observed at one rank position.
type RankGroup struct {
	Position int64
	Values   []float64
}

// GroupByRank groups observations by position. Groups are sorted by
// position ascending; values keep their input order.
func GroupByRank(obs []Observation) []RankGroup {
	index := make(map[int64]int)
	var groups []RankGroup
	for _, o := range obs {
		i, ok := index[o.Position]
		if !ok {
			i = len(groups)
			index[o.Position] = i
			groups = append(groups, RankGroup{Position: o.Position})
		}
		groups[i].Values = append(groups[i].Values, o.Value)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Position < groups[j].Position
	})
	return groups
}

// SelectRanks returns the groups holding 1-indexed ranks first..last
// (inclusive) of the sorted groups. Ranks past the end are omitted.
func SelectRanks(groups []RankGroup, first, last int) []RankGroup {
	if first < 1 {
		first = 1
	}
	if last > len(groups) {
		last = len(groups)
	}
	if first > last {
		return nil
	}
	return groups[first-1 : last]
}

// RankAverage is the mean usage at a 1-indexed rank.
type RankAverage struct {
	Rank     int
	Position int64
	Mean     float64
}

// RankAverages computes the arithmetic mean of every group. When limit is
// positive only the first limit ranks are returned.
func RankAverages(groups []RankGroup, limit int) []RankAverage {
	n := len(groups)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]RankAverage, 0, n)
	for i := 0; i < n; i++ {
		g := groups[i]
		out = append(out, RankAverage{
			Rank:     i + 1,
			Position: g.Position,
			Mean:     stat.Mean(g.Values, nil),
		})
	}
	return out
}
