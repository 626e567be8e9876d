package drift

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/seadrift/internal/geo"
)

// Ensemble holds particle positions as parallel slices, one entry per
// particle.
type Ensemble struct {
	Lat []float64
	Lon []float64
}

func NewEnsemble(n int) *Ensemble {
	return &Ensemble{
		Lat: make([]float64, n),
		Lon: make([]float64, n),
	}
}

func (e *Ensemble) Len() int { return len(e.Lat) }

// Release scatters the ensemble around the release point. All latitude
// draws happen before all longitude draws, so a fixed source yields a
// fixed scatter.
func (e *Ensemble) Release(lat0, lon0 float64, jitter distuv.Normal) {
	for i := range e.Lat {
		e.Lat[i] = lat0 + jitter.Rand()
	}
	for i := range e.Lon {
		e.Lon[i] = lon0 + jitter.Rand()
	}
}

// Centroid returns the arithmetic-mean position.
func (e *Ensemble) Centroid() geo.Point {
	return geo.Point{
		Lat: stat.Mean(e.Lat, nil),
		Lon: stat.Mean(e.Lon, nil),
	}
}

// Clamp pins every particle inside dom.
func (e *Ensemble) Clamp(dom geo.Domain) {
	for i := range e.Lat {
		e.Lat[i] = dom.ClampLat(e.Lat[i])
		e.Lon[i] = dom.ClampLon(e.Lon[i])
	}
}

// Points copies the ensemble into a point slice.
func (e *Ensemble) Points() []geo.Point {
	pts := make([]geo.Point, e.Len())
	for i := range pts {
		pts[i] = geo.Point{Lat: e.Lat[i], Lon: e.Lon[i]}
	}
	return pts
}
