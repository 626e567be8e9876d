package drift

import (
	"fmt"
	"math"

	"github.com/san-kum/seadrift/internal/geo"
)

// Integration constants. DTSeconds is the fixed Euler step; the track
// keeps one centroid sample every SampleEverySteps completed steps.
const (
	DTSeconds        = 600.0
	SampleEverySteps = 3
	InitialJitterDeg = 0.001
)

// Default release parameters.
const (
	DefaultLat         = 23.600
	DefaultLon         = 58.500
	DefaultHours       = 48.0
	DefaultParticles   = 8000
	DefaultWindage     = 0.02
	DefaultDiffusivity = 0.5
)

// Direction selects forward drift or backward origin-tracing.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ParseDirection maps a direction name to its value. The empty string
// parses as Forward.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	default:
		return Forward, fmt.Errorf("%w: %q", ErrDirection, s)
	}
}

// Request describes one drift simulation.
type Request struct {
	Lat0, Lon0  float64
	Hours       float64
	Particles   int
	Windage     float64 // fraction of 10 m wind felt by particles
	Diffusivity float64 // horizontal eddy diffusivity, m^2/s
	Direction   Direction
	Seed        int64 // 0 draws a seed from the wall clock
	TimeIndex   int   // dataset time slice for the whole run
}

// DefaultRequest returns the stock 48 h forward request from the
// default release point.
func DefaultRequest() Request {
	return Request{
		Lat0:        DefaultLat,
		Lon0:        DefaultLon,
		Hours:       DefaultHours,
		Particles:   DefaultParticles,
		Windage:     DefaultWindage,
		Diffusivity: DefaultDiffusivity,
	}
}

// Steps returns the number of Euler steps the request integrates.
func (r Request) Steps() int {
	return int(math.Abs(r.Hours * 3600 / DTSeconds))
}

// Result carries the centroid track, the terminal particle cloud and
// the values of any metrics attached to the simulator.
type Result struct {
	Track   []geo.Point
	Cloud   []geo.Point
	Steps   int
	Seed    int64
	Metrics map[string]float64
}

// Metric accumulates a scalar over ensemble snapshots.
type Metric interface {
	Name() string
	Observe(lats, lons []float64, tsec float64)
	Value() float64
	Reset()
}

// Observer receives every ensemble snapshot, including the initial
// one at tsec 0.
type Observer interface {
	OnStep(lats, lons []float64, tsec float64)
}
