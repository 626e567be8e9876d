package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/seadrift/internal/geo"
)

// Spread tracks the RMS distance of the ensemble from its centroid in
// kilometers. Value returns the latest snapshot.
type Spread struct {
	name   string
	latest float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread_km"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(lats, lons []float64, tsec float64) {
	if len(lats) == 0 {
		return
	}
	cLat := stat.Mean(lats, nil)
	cLon := stat.Mean(lons, nil)

	var sum float64
	for i := range lats {
		d := geo.HaversineKm(cLat, cLon, lats[i], lons[i])
		sum += d * d
	}
	s.latest = math.Sqrt(sum / float64(len(lats)))
}

func (s *Spread) Value() float64 { return s.latest }

func (s *Spread) Reset() { s.latest = 0 }
