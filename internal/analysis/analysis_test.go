package analysis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/san-kum/seadrift/internal/drift"
	"github.com/san-kum/seadrift/internal/field"
	"github.com/san-kum/seadrift/internal/geo"
)

var _ drift.Observer = (*VarianceRecorder)(nil)

func TestTrackStraightLine(t *testing.T) {
	track := []geo.Point{
		{Lat: 23.0, Lon: 58},
		{Lat: 23.1, Lon: 58},
		{Lat: 23.2, Lon: 58},
	}
	st := Track(track)

	if math.Abs(st.PathKm-st.NetKm) > 1e-9 {
		t.Errorf("straight line: path %v != net %v", st.PathKm, st.NetKm)
	}
	if math.Abs(st.Tortuosity-1) > 1e-9 {
		t.Errorf("straight line tortuosity: got %v, want 1", st.Tortuosity)
	}
	if math.Abs(st.NetKm-22.24) > 0.05 {
		t.Errorf("net displacement: got %v km, want ~22.24", st.NetKm)
	}
	if math.Abs(st.BearingDeg-0) > 0.01 {
		t.Errorf("northward bearing: got %v, want ~0", st.BearingDeg)
	}
}

func TestTrackDegenerate(t *testing.T) {
	st := Track([]geo.Point{{Lat: 23, Lon: 58}})
	if st.PathKm != 0 || st.NetKm != 0 || st.Tortuosity != 1 {
		t.Errorf("single point: got %+v", st)
	}

	st = Track(nil)
	if st.Tortuosity != 1 {
		t.Errorf("empty track tortuosity: got %v, want 1", st.Tortuosity)
	}
}

func TestTrackClosedLoop(t *testing.T) {
	track := []geo.Point{
		{Lat: 23.0, Lon: 58},
		{Lat: 23.1, Lon: 58},
		{Lat: 23.0, Lon: 58},
	}
	st := Track(track)
	if st.NetKm != 0 {
		t.Errorf("closed loop net: got %v, want 0", st.NetKm)
	}
	if !math.IsInf(st.Tortuosity, 1) {
		t.Errorf("closed loop tortuosity: got %v, want +Inf", st.Tortuosity)
	}
}

func TestCloudSymmetric(t *testing.T) {
	pts := []geo.Point{
		{Lat: 23.0, Lon: 58.1},
		{Lat: 23.2, Lon: 58.1},
		{Lat: 23.1, Lon: 58.0},
		{Lat: 23.1, Lon: 58.2},
	}
	st := Cloud(pts)

	if math.Abs(st.MeanLat-23.1) > 1e-12 || math.Abs(st.MeanLon-58.1) > 1e-12 {
		t.Errorf("centroid: got (%v, %v), want (23.1, 58.1)", st.MeanLat, st.MeanLon)
	}
	if math.Abs(st.SigmaLatKm-9.063) > 0.05 {
		t.Errorf("sigma lat: got %v km, want ~9.063", st.SigmaLatKm)
	}
	if math.Abs(st.SigmaLonKm-8.336) > 0.05 {
		t.Errorf("sigma lon: got %v km, want ~8.336", st.SigmaLonKm)
	}
	if math.Abs(st.SigmaKm-10.683) > 0.05 {
		t.Errorf("sigma: got %v km, want ~10.683", st.SigmaKm)
	}
}

func TestCloudDegenerate(t *testing.T) {
	if st := Cloud(nil); st != (CloudStats{}) {
		t.Errorf("empty cloud: got %+v", st)
	}

	st := Cloud([]geo.Point{{Lat: 23.5, Lon: 58.5}})
	if st.MeanLat != 23.5 || st.MeanLon != 58.5 {
		t.Errorf("single point centroid: got (%v, %v)", st.MeanLat, st.MeanLon)
	}
	if st.SigmaLatKm != 0 || st.SigmaLonKm != 0 || st.SigmaKm != 0 {
		t.Errorf("single point dispersion: got %+v", st)
	}
}

func TestEstimateDiffusivityExact(t *testing.T) {
	// variance = 2*D*t with D = 0.5
	times := []float64{0, 600, 1200, 1800}
	vars := []float64{0, 600, 1200, 1800}

	d, err := EstimateDiffusivity(times, vars)
	if err != nil {
		t.Fatalf("EstimateDiffusivity: %v", err)
	}
	if math.Abs(d-0.5) > 1e-9 {
		t.Errorf("got D=%v, want 0.5", d)
	}
}

func TestEstimateDiffusivityShortSeries(t *testing.T) {
	if _, err := EstimateDiffusivity([]float64{0}, []float64{0}); !errors.Is(err, ErrShortSeries) {
		t.Errorf("expected ErrShortSeries, got %v", err)
	}
	if _, err := EstimateDiffusivity([]float64{0, 1}, []float64{0}); !errors.Is(err, ErrShortSeries) {
		t.Errorf("mismatched lengths: expected ErrShortSeries, got %v", err)
	}
}

func TestDiffusivityRecoveryFromRun(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := field.NewProvider(geo.GulfOfOman(), field.Calm{}, logger)
	sim := drift.New(provider, logger)

	rec := NewVarianceRecorder()
	sim.AddObserver(rec)

	req := drift.DefaultRequest()
	req.Particles = 2000
	req.Hours = 6
	req.Windage = 0
	req.Diffusivity = 0.5
	req.Seed = 1

	if _, err := sim.Run(context.Background(), req); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rec.Times) != req.Steps()+1 {
		t.Fatalf("recorded %d samples, want %d", len(rec.Times), req.Steps()+1)
	}

	d, err := EstimateDiffusivity(rec.Times, rec.Vars)
	if err != nil {
		t.Fatalf("EstimateDiffusivity: %v", err)
	}
	if d < 0.35 || d > 0.65 {
		t.Errorf("recovered D=%v, want within 30%% of 0.5", d)
	}
}
