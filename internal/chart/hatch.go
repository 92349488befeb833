package chart

import (
	"math"
	"sort"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Hatch strokes parallel diagonal lines inside a polygon.
type Hatch struct {
	// Forward draws "/" lines, Backward draws "\" lines.
	Forward  bool
	Backward bool
	// Spacing is the vertical distance between neighbouring lines.
	Spacing vg.Length
	Line    draw.LineStyle
}

// SingleHatch is a "////" pattern.
func SingleHatch() Hatch {
	return Hatch{Forward: true, Spacing: vg.Points(3), Line: draw.LineStyle{Color: Black, Width: vg.Points(0.4)}}
}

// CrossHatch is a dense "//\\" pattern.
func CrossHatch() Hatch {
	return Hatch{Forward: true, Backward: true, Spacing: vg.Points(1.5), Line: draw.LineStyle{Color: Black, Width: vg.Points(0.3)}}
}

// Fill strokes the hatch lines clipped to poly, given in canvas coordinates.
func (h Hatch) Fill(c draw.Canvas, poly []vg.Point) {
	if h.Spacing <= 0 || len(poly) < 3 {
		return
	}
	if h.Forward {
		h.stroke(c, poly, 1)
	}
	if h.Backward {
		h.stroke(c, poly, -1)
	}
}

// stroke draws the lines y = slope*x + k crossing poly, using the
// even-odd rule on the edge intersections of each line.
func (h Hatch) stroke(c draw.Canvas, poly []vg.Point, slope vg.Length) {
	offset := func(p vg.Point) vg.Length { return p.Y - slope*p.X }

	kmin, kmax := vg.Length(math.Inf(1)), vg.Length(math.Inf(-1))
	for _, p := range poly {
		k := offset(p)
		kmin = min(kmin, k)
		kmax = max(kmax, k)
	}

	start := vg.Length(math.Ceil(float64(kmin/h.Spacing))) * h.Spacing
	var xs []vg.Length
	for k := start; k <= kmax; k += h.Spacing {
		xs = xs[:0]
		for i, p := range poly {
			q := poly[(i+1)%len(poly)]
			fp, fq := offset(p)-k, offset(q)-k
			if (fp < 0) == (fq < 0) {
				continue
			}
			t := fp / (fp - fq)
			xs = append(xs, p.X+t*(q.X-p.X))
		}
		sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
		for j := 0; j+1 < len(xs); j += 2 {
			x1, x2 := xs[j], xs[j+1]
			c.StrokeLine2(h.Line, x1, slope*x1+k, x2, slope*x2+k)
		}
	}
}
