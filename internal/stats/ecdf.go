package stats

import "sort"

// Weighted is a value with an observation weight.
type Weighted struct {
	Value  float64
	Weight float64
}

// Step is one point of an empirical CDF: P is the proportion of the total
// weight at values <= X.
type Step struct {
	X float64
	P float64
}

// WeightedECDF computes the empirical CDF of the weighted values. Equal
// values are merged into one step. Non-positive weights are ignored.
func WeightedECDF(data []Weighted) []Step {
	kept := make([]Weighted, 0, len(data))
	var total float64
	for _, d := range data {
		if d.Weight <= 0 {
			continue
		}
		kept = append(kept, d)
		total += d.Weight
	}
	if total == 0 {
		return nil
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Value < kept[j].Value })

	steps := make([]Step, 0, len(kept))
	var cum float64
	for i, d := range kept {
		cum += d.Weight
		if i+1 < len(kept) && kept[i+1].Value == d.Value {
			continue
		}
		steps = append(steps, Step{X: d.Value, P: cum / total})
	}
	steps[len(steps)-1].P = 1
	return steps
}
