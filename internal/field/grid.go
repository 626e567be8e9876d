package field

import (
	"fmt"
	"math"
	"sort"
)

// Grid2D is a scalar field on a row-major (ny, nx) index grid.
type Grid2D struct {
	vals []float64
	ny   int
	nx   int
}

func NewGrid2D(vals []float64, ny, nx int) (Grid2D, error) {
	if ny < 1 || nx < 1 || len(vals) != ny*nx {
		return Grid2D{}, fmt.Errorf("field: grid shape (%d, %d) does not fit %d values", ny, nx, len(vals))
	}
	return Grid2D{vals: vals, ny: ny, nx: nx}, nil
}

func (g Grid2D) At(iy, ix int) float64 { return g.vals[iy*g.nx+ix] }

// Bilinear samples the grid at fractional index coordinates, x along
// nx and y along ny. Corner indices are clamped into the grid, so
// queries outside it collapse to the nearest edge value instead of
// extrapolating.
func (g Grid2D) Bilinear(x, y float64) float64 {
	fx := int(math.Floor(x))
	fy := int(math.Floor(y))

	x0 := clampIdx(fx, 0, g.nx-1)
	x1 := clampIdx(fx+1, 0, g.nx-1)
	y0 := clampIdx(fy, 0, g.ny-1)
	y1 := clampIdx(fy+1, 0, g.ny-1)

	q11 := g.At(y0, x0)
	q21 := g.At(y0, x1)
	q12 := g.At(y1, x0)
	q22 := g.At(y1, x1)

	dx := x - float64(x0)
	dy := y - float64(y0)

	return q11*(1-dx)*(1-dy) + q21*dx*(1-dy) + q12*(1-dx)*dy + q22*dx*dy
}

// FracIndex resolves physical coordinate c to a fractional index in
// coords, which must be monotonically increasing but may be
// irregularly spaced. The bracketing cell is found by binary search
// and clamped to the last full interval; a zero-width interval is
// guarded. Out-of-range coordinates land outside [0, n-1] and rely on
// Bilinear's corner clamping.
func FracIndex(coords []float64, c float64) float64 {
	if len(coords) < 2 {
		return 0
	}
	i := sort.SearchFloat64s(coords, c) - 1
	i = clampIdx(i, 0, len(coords)-2)
	w := coords[i+1] - coords[i]
	return float64(i) + (c-coords[i])/math.Max(w, 1e-9)
}

func clampIdx(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
