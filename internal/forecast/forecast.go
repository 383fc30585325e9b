// Package forecast projects per-item sales with a naive degree-1
// least-squares trend over the ordered sales history. It is a pure numerical
// read of history and performs no mutation.
package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Horizon is the number of future time steps projected.
const Horizon = 7

// Projection is the projected quantity per future step for one menu item.
type Projection struct {
	MenuItem string
	Values   []int
}

// Project fits origin + slope to the series indexed 0..n-1 and extends the
// line steps points past the end. Projections are rounded to whole units and
// clamped at zero; a trend below zero units is noise, not a sale.
func Project(series []float64, steps int) []int {
	out := make([]int, steps)
	if len(series) == 0 {
		return out
	}
	if len(series) == 1 {
		// One observation has no slope; project it flat.
		v := clamp(series[0])
		for i := range out {
			out[i] = v
		}
		return out
	}

	xs := make([]float64, len(series))
	for i := range xs {
		xs[i] = float64(i)
	}
	origin, slope := stat.LinearRegression(xs, series, nil, false)

	for i := 0; i < steps; i++ {
		out[i] = clamp(origin + slope*float64(len(series)+i))
	}
	return out
}

func clamp(y float64) int {
	v := int(math.Round(y))
	if v < 0 {
		return 0
	}
	return v
}
