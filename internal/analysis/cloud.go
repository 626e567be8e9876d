package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/seadrift/internal/geo"
)

// CloudStats summarizes the dispersion of a terminal particle cloud.
type CloudStats struct {
	MeanLat    float64
	MeanLon    float64
	SigmaLatKm float64 // meridional standard deviation
	SigmaLonKm float64 // zonal standard deviation
	SigmaKm    float64 // RMS distance from the centroid
}

// Cloud reduces a particle cloud to its dispersion statistics. An
// empty cloud returns the zero value.
func Cloud(pts []geo.Point) CloudStats {
	if len(pts) == 0 {
		return CloudStats{}
	}
	if len(pts) == 1 {
		return CloudStats{MeanLat: pts[0].Lat, MeanLon: pts[0].Lon}
	}

	lats := make([]float64, len(pts))
	lons := make([]float64, len(pts))
	for i, p := range pts {
		lats[i] = p.Lat
		lons[i] = p.Lon
	}

	meanLat := stat.Mean(lats, nil)
	meanLon := stat.Mean(lons, nil)

	var sum float64
	for _, p := range pts {
		d := geo.HaversineKm(meanLat, meanLon, p.Lat, p.Lon)
		sum += d * d
	}

	kmPerDegLon := 111.0 * math.Cos(meanLat*math.Pi/180)
	return CloudStats{
		MeanLat:    meanLat,
		MeanLon:    meanLon,
		SigmaLatKm: stat.StdDev(lats, nil) * 111.0,
		SigmaLonKm: stat.StdDev(lons, nil) * kmPerDegLon,
		SigmaKm:    math.Sqrt(sum / float64(len(pts))),
	}
}
