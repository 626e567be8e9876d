// Package store persists drift runs to disk and encodes them for
// external tools. Each run gets its own directory under the base path
// holding metadata.json, track.csv, and cloud.csv.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/seadrift/internal/drift"
	"github.com/san-kum/seadrift/internal/geo"
)

// Store manages saved drift runs under a base directory.
type Store struct {
	baseDir string
}

// New creates a store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the base directory if it doesn't exist.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a saved drift run.
type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Model       string             `json:"model"`
	Direction   string             `json:"direction"`
	Lat         float64            `json:"lat"`
	Lon         float64            `json:"lon"`
	Hours       float64            `json:"hours"`
	Particles   int                `json:"particles"`
	Windage     float64            `json:"windage"`
	Diffusivity float64            `json:"diffusivity"`
	Seed        int64              `json:"seed"`
	TimeIndex   int                `json:"time_index"`
	Steps       int                `json:"steps"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}

type trackRow struct {
	Index int     `csv:"i"`
	Lon   float64 `csv:"lon"`
	Lat   float64 `csv:"lat"`
}

type cloudRow struct {
	Particle int     `csv:"particle"`
	Lon      float64 `csv:"lon"`
	Lat      float64 `csv:"lat"`
}

// Save writes a completed run to a new run directory and returns its ID.
// IDs use nanosecond timestamps so back-to-back scenario steps don't
// collide.
func (s *Store) Save(model string, req drift.Request, res *drift.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", model, req.Direction, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("creating run directory: %w", err)
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Model:       model,
		Direction:   req.Direction.String(),
		Lat:         req.Lat0,
		Lon:         req.Lon0,
		Hours:       req.Hours,
		Particles:   req.Particles,
		Windage:     req.Windage,
		Diffusivity: req.Diffusivity,
		Seed:        res.Seed,
		TimeIndex:   req.TimeIndex,
		Steps:       res.Steps,
		Metrics:     res.Metrics,
	}

	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	trackRows := make([]trackRow, len(res.Track))
	for i, p := range res.Track {
		trackRows[i] = trackRow{Index: i, Lon: p.Lon, Lat: p.Lat}
	}
	if err := writeCSV(filepath.Join(runDir, "track.csv"), &trackRows); err != nil {
		return "", fmt.Errorf("saving track: %w", err)
	}

	cloudRows := make([]cloudRow, len(res.Cloud))
	for i, p := range res.Cloud {
		cloudRows[i] = cloudRow{Particle: i, Lon: p.Lon, Lat: p.Lat}
	}
	if err := writeCSV(filepath.Join(runDir, "cloud.csv"), &cloudRows); err != nil {
		return "", fmt.Errorf("saving cloud: %w", err)
	}

	return runID, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return fmt.Errorf("creating metadata file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	return nil
}

func writeCSV(path string, rows any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(rows, f)
}

// List returns metadata for all saved runs, newest first. Entries that
// can't be read are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading store directory: %w", err)
	}

	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Load reads the metadata of a saved run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("opening metadata: %w", err)
	}
	defer f.Close()

	var meta RunMetadata
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}
	return &meta, nil
}

// LoadTrack reads the centroid track of a saved run.
func (s *Store) LoadTrack(runID string) ([]geo.Point, error) {
	var rows []trackRow
	if err := readCSV(filepath.Join(s.baseDir, runID, "track.csv"), &rows); err != nil {
		return nil, fmt.Errorf("loading track: %w", err)
	}
	pts := make([]geo.Point, len(rows))
	for i, r := range rows {
		pts[i] = geo.Point{Lat: r.Lat, Lon: r.Lon}
	}
	return pts, nil
}

// LoadCloud reads the final particle positions of a saved run.
func (s *Store) LoadCloud(runID string) ([]geo.Point, error) {
	var rows []cloudRow
	if err := readCSV(filepath.Join(s.baseDir, runID, "cloud.csv"), &rows); err != nil {
		return nil, fmt.Errorf("loading cloud: %w", err)
	}
	pts := make([]geo.Point, len(rows))
	for i, r := range rows {
		pts[i] = geo.Point{Lat: r.Lat, Lon: r.Lon}
	}
	return pts, nil
}

func readCSV(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.UnmarshalFile(f, out)
}
