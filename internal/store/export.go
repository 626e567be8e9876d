package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/seadrift/internal/geo"
)

// Export bundles a run for JSON output.
type Export struct {
	Meta  RunMetadata `json:"meta"`
	Track []geo.Point `json:"track"`
	Cloud []geo.Point `json:"cloud"`
}

// WriteJSON writes a run export as indented JSON.
func WriteJSON(w io.Writer, meta RunMetadata, track, cloud []geo.Point) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export{Meta: meta, Track: track, Cloud: cloud}); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// WriteGeoJSON writes a feature collection as indented JSON.
func WriteGeoJSON(w io.Writer, fc FeatureCollection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}
	return nil
}
