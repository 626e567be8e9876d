package geo

import "math"

const (
	// MetersPerDegLat is the flat-earth conversion used for small
	// displacements. Longitude additionally scales by cos(lat).
	MetersPerDegLat = 111000.0

	// EarthRadiusKm feeds the haversine distance.
	EarthRadiusKm = 6371.0
)

// degEps guards divisions that would blow up at the poles or inside a
// zero-width domain.
const degEps = 1e-9

// Point is a geographic position. GeoJSON encoders emit coordinate
// arrays in (lon, lat) order.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Domain is a geographic bounding box. Particle positions and field
// samples are confined to it for the life of the process.
type Domain struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// GulfOfOman is the reference domain the default release point sits in.
func GulfOfOman() Domain {
	return Domain{LatMin: 22.5, LatMax: 26.0, LonMin: 56.5, LonMax: 60.5}
}

// Valid reports whether both axes have positive extent.
func (d Domain) Valid() bool {
	return d.LatMin < d.LatMax && d.LonMin < d.LonMax
}

func (d Domain) Contains(lat, lon float64) bool {
	return lat >= d.LatMin && lat <= d.LatMax && lon >= d.LonMin && lon <= d.LonMax
}

func (d Domain) ClampLat(lat float64) float64 { return Clamp(lat, d.LatMin, d.LatMax) }
func (d Domain) ClampLon(lon float64) float64 { return Clamp(lon, d.LonMin, d.LonMax) }

// Normalized maps a position to fractional coordinates inside the
// domain: lx along longitude, ly along latitude, each in [0, 1] for
// in-domain positions.
func (d Domain) Normalized(lat, lon float64) (lx, ly float64) {
	lx = (lon - d.LonMin) / (d.LonMax - d.LonMin + degEps)
	ly = (lat - d.LatMin) / (d.LatMax - d.LatMin + degEps)
	return lx, ly
}

// Center returns the midpoint of the box.
func (d Domain) Center() Point {
	return Point{Lat: (d.LatMin + d.LatMax) / 2, Lon: (d.LonMin + d.LonMax) / 2}
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// MetersToDegLat converts a northward displacement in meters to
// degrees of latitude.
func MetersToDegLat(m float64) float64 {
	return m / MetersPerDegLat
}

// MetersToDegLon converts an eastward displacement in meters to
// degrees of longitude at the given latitude.
func MetersToDegLon(m, lat float64) float64 {
	return m / (MetersPerDegLat*math.Cos(lat*math.Pi/180) + degEps)
}

// HaversineKm is the great-circle distance between two positions.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

// BearingDeg is the initial great-circle bearing from one point to
// another, in compass degrees (0 north, 90 east).
func BearingDeg(from, to Point) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLon := (to.Lon - from.Lon) * math.Pi / 180
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	deg := math.Atan2(y, x) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
