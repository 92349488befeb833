package stats

import "math"

// Bin is one histogram bucket. Count is the number of values in the bucket.
type Bin struct {
	Min   float64
	Max   float64
	Count float64
}

// FixedBins counts values into n equal-width bins over [lo, hi]. Bins are
// half-open except the last, which includes hi. Values outside the range
// are not counted.
func FixedBins(values []float64, lo, hi float64, n int) []Bin {
	if n <= 0 || !(hi > lo) {
		return nil
	}
	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Min = lo + float64(i)*width
		bins[i].Max = lo + float64(i+1)*width
	}
	bins[n-1].Max = hi

	for _, v := range values {
		if math.IsNaN(v) || v < lo || v > hi {
			continue
		}
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		// Float rounding can land a value on the wrong side of an edge.
		if i > 0 && v < bins[i].Min {
			i--
		} else if i < n-1 && v >= bins[i].Max {
			i++
		}
		bins[i].Count++
	}
	return bins
}

// DataBins counts values into n equal-width bins spanning the data.
// A constant series gets the range [v-0.5, v+0.5]; an empty one [0, 1].
func DataBins(values []float64, n int) []Bin {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	switch {
	case math.IsInf(lo, 1):
		lo, hi = 0, 1
	case lo == hi:
		lo, hi = lo-0.5, hi+0.5
	}
	return FixedBins(values, lo, hi, n)
}

// Below returns the values strictly less than limit, in input order.
func Below(values []float64, limit float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v < limit {
			out = append(out, v)
		}
	}
	return out
}

// Total returns the sum of the bin counts.
func Total(bins []Bin) float64 {
	var sum float64
	for _, b := range bins {
		sum += b.Count
	}
	return sum
}
