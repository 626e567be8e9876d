package store

import "github.com/san-kum/seadrift/internal/geo"

// GeoJSON encoding for tracks and particle clouds. Coordinates are
// ordered (lon, lat) per RFC 7946.

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

func lonLat(pts []geo.Point) [][]float64 {
	coords := make([][]float64, len(pts))
	for i, p := range pts {
		coords[i] = []float64{p.Lon, p.Lat}
	}
	return coords
}

// TrackCollection wraps a centroid track in a LineString feature.
func TrackCollection(track []geo.Point, props map[string]any) FeatureCollection {
	return FeatureCollection{
		Type: "FeatureCollection",
		Features: []Feature{{
			Type:       "Feature",
			Properties: props,
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: lonLat(track),
			},
		}},
	}
}

// CloudCollection wraps final particle positions in a MultiPoint feature.
func CloudCollection(cloud []geo.Point, props map[string]any) FeatureCollection {
	return FeatureCollection{
		Type: "FeatureCollection",
		Features: []Feature{{
			Type:       "Feature",
			Properties: props,
			Geometry: Geometry{
				Type:        "MultiPoint",
				Coordinates: lonLat(cloud),
			},
		}},
	}
}
