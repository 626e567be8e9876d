package field

import (
	"fmt"
	"math"

	"github.com/san-kum/seadrift/internal/geo"
)

// Model generates current and wind vectors anywhere in the domain.
// Implementations are pure functions of (lat, lon, t): deterministic,
// bounded and never failing.
type Model interface {
	// Current returns the surface current (u east, v north) in m/s.
	Current(lat, lon, tsec float64) (u, v float64)

	// Wind10m returns the 10 m wind (u east, v north) in m/s.
	Wind10m(lat, lon, tsec float64) (u, v float64)
}

// Tunable exposes named scalar parameters on a model.
type Tunable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

const daySeconds = 86400.0

// Gyre is a single rotational gyre spanning the domain, modulated by a
// slow diurnal oscillation, plus a small zonal coastal drift. The wind
// blows at near-constant speed from a fixed bearing with its own
// diurnal oscillation. Position enters only through domain-normalized
// coordinates, so the speed stays bounded regardless of domain size.
type Gyre struct {
	dom geo.Domain

	base    float64 // peak rotational speed, m/s
	osc     float64 // diurnal modulation, fraction of base
	coastal float64 // zonal drift amplitude, m/s

	windSpeed float64 // mean wind speed, m/s
	windOsc   float64 // diurnal wind amplitude, m/s
	windDeg   float64 // wind bearing, math-convention degrees
}

func NewGyre(dom geo.Domain) *Gyre {
	return &Gyre{
		dom:       dom,
		base:      0.25,
		osc:       0.1,
		coastal:   0.05,
		windSpeed: 4.0,
		windOsc:   1.0,
		windDeg:   60.0,
	}
}

func (g *Gyre) Current(lat, lon, tsec float64) (float64, float64) {
	lx, ly := g.dom.Normalized(lat, lon)
	sx, cx := fastSinCos(2 * math.Pi * lx)
	sy, cy := fastSinCos(2 * math.Pi * ly)
	st, ct := fastSinCos(2 * math.Pi * tsec / daySeconds)

	u := g.base * sx * cy * (1 + g.osc*st)
	v := g.base * -cx * sy * (1 + g.osc*ct)
	u += g.coastal * cy
	return u, v
}

func (g *Gyre) Wind10m(lat, lon, tsec float64) (float64, float64) {
	st, _ := fastSinCos(2 * math.Pi * tsec / daySeconds)
	speed := g.windSpeed + g.windOsc*st
	s, c := fastSinCos(g.windDeg * math.Pi / 180)
	return speed * c, speed * s
}

func (g *Gyre) GetParams() map[string]float64 {
	return map[string]float64{
		"base":       g.base,
		"osc":        g.osc,
		"coastal":    g.coastal,
		"wind_speed": g.windSpeed,
		"wind_osc":   g.windOsc,
		"wind_deg":   g.windDeg,
	}
}

func (g *Gyre) SetParam(name string, v float64) error {
	switch name {
	case "base":
		g.base = v
	case "osc":
		g.osc = v
	case "coastal":
		g.coastal = v
	case "wind_speed":
		g.windSpeed = v
	case "wind_osc":
		g.windOsc = v
	case "wind_deg":
		g.windDeg = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

// Uniform carries every particle with the same constant current and
// wind everywhere. Runs under it are exactly reversible, which makes
// it the reference field for origin-tracing.
type Uniform struct {
	u, v         float64
	windU, windV float64
}

func NewUniform(u, v, windU, windV float64) *Uniform {
	return &Uniform{u: u, v: v, windU: windU, windV: windV}
}

func (m *Uniform) Current(lat, lon, tsec float64) (float64, float64) { return m.u, m.v }
func (m *Uniform) Wind10m(lat, lon, tsec float64) (float64, float64) { return m.windU, m.windV }

func (m *Uniform) GetParams() map[string]float64 {
	return map[string]float64{"u": m.u, "v": m.v, "wind_u": m.windU, "wind_v": m.windV}
}

func (m *Uniform) SetParam(name string, v float64) error {
	switch name {
	case "u":
		m.u = v
	case "v":
		m.v = v
	case "wind_u":
		m.windU = v
	case "wind_v":
		m.windV = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

// Calm is a zero-velocity field. Runs under it are pure diffusion.
type Calm struct{}

func (Calm) Current(lat, lon, tsec float64) (float64, float64) { return 0, 0 }
func (Calm) Wind10m(lat, lon, tsec float64) (float64, float64) { return 0, 0 }
