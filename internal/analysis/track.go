package analysis

import (
	"math"

	"github.com/san-kum/seadrift/internal/geo"
)

// TrackStats summarizes the shape of a centroid track.
type TrackStats struct {
	PathKm     float64 // summed leg lengths
	NetKm      float64 // start-to-end displacement
	Tortuosity float64 // PathKm / NetKm, 1 for a straight line
	BearingDeg float64 // compass bearing from start to end
}

// Track reduces an ordered track to its shape statistics. A track with
// fewer than two points has zero lengths and tortuosity 1.
func Track(track []geo.Point) TrackStats {
	if len(track) < 2 {
		return TrackStats{Tortuosity: 1}
	}

	var path float64
	for i := 1; i < len(track); i++ {
		path += geo.HaversineKm(track[i-1].Lat, track[i-1].Lon, track[i].Lat, track[i].Lon)
	}
	first, last := track[0], track[len(track)-1]
	net := geo.HaversineKm(first.Lat, first.Lon, last.Lat, last.Lon)

	tortuosity := 1.0
	if net > 0 {
		tortuosity = path / net
	} else if path > 0 {
		tortuosity = math.Inf(1)
	}

	return TrackStats{
		PathKm:     path,
		NetKm:      net,
		Tortuosity: tortuosity,
		BearingDeg: geo.BearingDeg(first, last),
	}
}
