package field

import "math"

// trigTable holds interleaved sin/cos samples over one period, looked
// up with linear interpolation. The synthetic models evaluate sin/cos
// per particle per step, which dominates their cost.
type trigTable struct {
	vals []float64 // sin, cos interleaved
	n    int
}

// 4096 entries keep the interpolation error near 3e-7, far below the
// random-walk noise of any realistic diffusivity.
var defaultTrig = newTrigTable(4096)

func newTrigTable(n int) *trigTable {
	t := &trigTable{vals: make([]float64, 2*n), n: n}
	for i := 0; i < n; i++ {
		a := float64(i) * 2 * math.Pi / float64(n)
		t.vals[2*i] = math.Sin(a)
		t.vals[2*i+1] = math.Cos(a)
	}
	return t
}

func (t *trigTable) sinCos(x float64) (sin, cos float64) {
	// Normalize to [0, 2π)
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	frac := idx - float64(i)

	i0 := (i % t.n) * 2
	i1 := ((i + 1) % t.n) * 2

	sin = t.vals[i0]*(1-frac) + t.vals[i1]*frac
	cos = t.vals[i0+1]*(1-frac) + t.vals[i1+1]*frac
	return sin, cos
}

func fastSinCos(x float64) (float64, float64) {
	return defaultTrig.sinCos(x)
}
