package walk

import (
	"gonum.org/v1/gonum/floats"
)

// Grid returns round(t/dt) evenly spaced points covering [0, t].
func Grid(t, dt float64) []float64 {
	n := steps(t, dt)
	if n < 1 {
		n = 1
	}
	grid := make([]float64, n)
	if n == 1 {
		return grid
	}
	return floats.Span(grid, 0, t)
}
