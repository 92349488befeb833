package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DensityPoints is the number of evaluation points of a violin outline.
const DensityPoints = 100

// DensityPoint is a kernel density estimate evaluated at Value.
type DensityPoint struct {
	Value   float64
	Density float64
}

// KDE evaluates a Gaussian kernel density estimate of values at n evenly
// spaced points between their min and max. The bandwidth uses Scott's
// factor n^(-1/5) on the sample standard deviation. Fewer than two
// distinct values yield a single point of density 1.
func KDE(values []float64, n int) []DensityPoint {
	if len(values) == 0 {
		return nil
	}
	lo, hi := floats.Min(values), floats.Max(values)
	sd := stat.StdDev(values, nil)
	if lo == hi || sd == 0 || math.IsNaN(sd) {
		return []DensityPoint{{Value: lo, Density: 1}}
	}
	if n < 2 {
		n = 2
	}
	bw := sd * math.Pow(float64(len(values)), -1.0/5)
	norm := 1 / (float64(len(values)) * bw * math.Sqrt(2*math.Pi))

	out := make([]DensityPoint, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		x := lo + float64(i)*step
		if i == n-1 {
			x = hi
		}
		var sum float64
		for _, v := range values {
			z := (x - v) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		out[i] = DensityPoint{Value: x, Density: sum * norm}
	}
	return out
}

// ScaleDensity rescales densities so the largest equals halfWidth.
func ScaleDensity(pts []DensityPoint, halfWidth float64) []DensityPoint {
	var peak float64
	for _, p := range pts {
		peak = math.Max(peak, p.Density)
	}
	out := make([]DensityPoint, len(pts))
	for i, p := range pts {
		out[i] = DensityPoint{Value: p.Value}
		if peak > 0 {
			out[i].Density = p.Density / peak * halfWidth
		}
	}
	return out
}
