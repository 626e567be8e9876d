package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/seadrift/internal/geo"
)

// ErrShortSeries indicates too few variance samples for a fit.
var ErrShortSeries = errors.New("analysis: need at least two variance samples")

// VarianceRecorder captures the ensemble position variance after every
// step, in meters squared against seconds since release. It satisfies
// the drift observer contract.
type VarianceRecorder struct {
	Times []float64
	Vars  []float64
}

func NewVarianceRecorder() *VarianceRecorder { return &VarianceRecorder{} }

func (r *VarianceRecorder) OnStep(lats, lons []float64, tsec float64) {
	if len(lats) < 2 {
		return
	}
	meanLat := stat.Mean(lats, nil)
	mPerDegLon := geo.MetersPerDegLat * math.Cos(meanLat*math.Pi/180)

	varLat := stat.Variance(lats, nil) * geo.MetersPerDegLat * geo.MetersPerDegLat
	varLon := stat.Variance(lons, nil) * mPerDegLon * mPerDegLon

	r.Times = append(r.Times, math.Abs(tsec))
	r.Vars = append(r.Vars, (varLat+varLon)/2)
}

// EstimateDiffusivity fits variance(t) = a + 2*D*t by least squares
// and returns D. For a pure random walk this recovers the requested
// eddy diffusivity.
func EstimateDiffusivity(times, vars []float64) (float64, error) {
	if len(times) != len(vars) || len(times) < 2 {
		return 0, ErrShortSeries
	}
	_, beta := stat.LinearRegression(times, vars, nil, false)
	return beta / 2, nil
}
