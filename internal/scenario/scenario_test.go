package scenario

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/seadrift/internal/drift"
	"github.com/san-kum/seadrift/internal/geo"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad(t *testing.T) {
	yaml := `
name: spill-response
description: two-phase spill drill
steps:
  - name: forecast
    model: gyre
    hours: 24
    particles: 500
    windage: 0.02
    diffusivity: 0.5
    seed: 42
    params:
      wind_deg: 45
  - name: hindcast
    model: uniform
    direction: backward
    hours: 12
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Name != "spill-response" {
		t.Errorf("name: got %q", sc.Name)
	}
	if len(sc.Steps) != 2 {
		t.Fatalf("steps: got %d, want 2", len(sc.Steps))
	}
	if sc.Steps[0].Params["wind_deg"] != 45 {
		t.Errorf("params: got %v", sc.Steps[0].Params)
	}
	if sc.Steps[1].Direction != "backward" {
		t.Errorf("direction: got %q", sc.Steps[1].Direction)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestStepRequestDefaults(t *testing.T) {
	req, err := Step{}.Request()
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if req.Lat0 != drift.DefaultLat || req.Lon0 != drift.DefaultLon {
		t.Errorf("release: got (%v, %v)", req.Lat0, req.Lon0)
	}
	if req.Hours != drift.DefaultHours || req.Particles != drift.DefaultParticles {
		t.Errorf("horizon: got %v h, %d particles", req.Hours, req.Particles)
	}
	if req.Windage != 0 || req.Diffusivity != 0 {
		t.Errorf("physics should stay zero when omitted: %v, %v", req.Windage, req.Diffusivity)
	}
	if req.Direction != drift.Forward {
		t.Errorf("direction: got %v", req.Direction)
	}
}

func TestStepRequestBadDirection(t *testing.T) {
	if _, err := (Step{Direction: "sideways"}).Request(); err == nil {
		t.Error("expected an error for an unknown direction")
	}
}

func TestRun(t *testing.T) {
	sc := &Scenario{
		Name: "test",
		Steps: []Step{
			{Model: "calm", Hours: 1, Particles: 20, Seed: 5},
			{Model: "uniform", Hours: 1, Particles: 10, Direction: "backward", Seed: 6},
		},
	}

	results, err := Run(context.Background(), sc, geo.GulfOfOman(), quietLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if len(results[0].Result.Cloud) != 20 || len(results[1].Result.Cloud) != 10 {
		t.Errorf("cloud sizes: %d, %d", len(results[0].Result.Cloud), len(results[1].Result.Cloud))
	}
	for i, r := range results {
		if len(r.Result.Track) < 1 {
			t.Errorf("step %d: empty track", i)
		}
	}
}

func TestRunUnknownModel(t *testing.T) {
	sc := &Scenario{Steps: []Step{{Model: "vortex"}}}
	if _, err := Run(context.Background(), sc, geo.GulfOfOman(), quietLogger()); err == nil {
		t.Error("expected an error for an unknown model")
	}
}

func TestRunUnknownParam(t *testing.T) {
	sc := &Scenario{Steps: []Step{{Model: "gyre", Hours: 1, Particles: 5, Params: map[string]float64{"bogus": 1}}}}
	if _, err := Run(context.Background(), sc, geo.GulfOfOman(), quietLogger()); err == nil {
		t.Error("expected an error for an unknown model parameter")
	}
}

func TestRunSweep(t *testing.T) {
	sw := Sweep{
		Model: "uniform",
		Param: "u",
		Min:   0.1,
		Max:   0.5,
		Steps: 5,
		Request: drift.Request{
			Lat0:      drift.DefaultLat,
			Lon0:      drift.DefaultLon,
			Hours:     2,
			Particles: 50,
			Seed:      1,
		},
	}

	points, err := RunSweep(context.Background(), sw, geo.GulfOfOman(), quietLogger())
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(points) != 5 {
		t.Fatalf("got %d points, want 5", len(points))
	}
	for i, p := range points {
		want := 0.1 + float64(i)*0.1
		if diff := p.Value - want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("point %d value: got %v, want %v", i, p.Value, want)
		}
	}
	for i := 1; i < len(points); i++ {
		if points[i].NetKm <= points[i-1].NetKm {
			t.Errorf("net displacement should grow with u: %v then %v", points[i-1].NetKm, points[i].NetKm)
		}
	}
}

func TestRunSweepTooFewSteps(t *testing.T) {
	sw := Sweep{Param: "windage", Min: 0, Max: 1, Steps: 1}
	if _, err := RunSweep(context.Background(), sw, geo.GulfOfOman(), quietLogger()); err == nil {
		t.Error("expected an error for a single-value sweep")
	}
}

func TestRunSweepRequestParams(t *testing.T) {
	sw := Sweep{
		Model: "calm",
		Param: "diffusivity",
		Min:   0.1,
		Max:   2.0,
		Steps: 3,
		Request: drift.Request{
			Lat0:      drift.DefaultLat,
			Lon0:      drift.DefaultLon,
			Hours:     2,
			Particles: 200,
			Seed:      1,
		},
	}

	points, err := RunSweep(context.Background(), sw, geo.GulfOfOman(), quietLogger())
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	for i := 1; i < len(points); i++ {
		if points[i].SpreadKm <= points[i-1].SpreadKm {
			t.Errorf("spread should grow with diffusivity: %v then %v", points[i-1].SpreadKm, points[i].SpreadKm)
		}
	}
}
