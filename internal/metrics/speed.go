package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/seadrift/internal/geo"
)

// DriftSpeed averages the centroid speed between consecutive
// snapshots, in m/s.
type DriftSpeed struct {
	name     string
	haveLast bool
	lastLat  float64
	lastLon  float64
	lastT    float64
	total    float64
	samples  int
}

func NewDriftSpeed() *DriftSpeed {
	return &DriftSpeed{name: "drift_speed_ms"}
}

func (d *DriftSpeed) Name() string { return d.name }

func (d *DriftSpeed) Observe(lats, lons []float64, tsec float64) {
	if len(lats) == 0 {
		return
	}
	cLat := stat.Mean(lats, nil)
	cLon := stat.Mean(lons, nil)

	if d.haveLast {
		dtSec := math.Abs(tsec - d.lastT)
		if dtSec > 0 {
			km := geo.HaversineKm(d.lastLat, d.lastLon, cLat, cLon)
			d.total += km * 1000 / dtSec
			d.samples++
		}
	}
	d.haveLast = true
	d.lastLat, d.lastLon, d.lastT = cLat, cLon, tsec
}

func (d *DriftSpeed) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.total / float64(d.samples)
}

func (d *DriftSpeed) Reset() {
	d.haveLast = false
	d.lastLat, d.lastLon, d.lastT = 0, 0, 0
	d.total = 0
	d.samples = 0
}
