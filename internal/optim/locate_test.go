package optim

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/san-kum/seadrift/internal/drift"
	"github.com/san-kum/seadrift/internal/field"
	"github.com/san-kum/seadrift/internal/geo"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// driftEnd runs an advective-only forward drift from (lat, lon) and
// returns where the cloud centroid ends up.
func driftEnd(t *testing.T, provider *field.Provider, lat, lon, hours, windage float64, seed int64) geo.Point {
	t.Helper()
	sim := drift.New(provider, quietLogger())
	res, err := sim.Run(context.Background(), drift.Request{
		Lat0:      lat,
		Lon0:      lon,
		Hours:     hours,
		Particles: searchParticles,
		Windage:   windage,
		Seed:      seed,
	})
	if err != nil {
		t.Fatalf("forward run: %v", err)
	}
	return centroid(res.Cloud)
}

func TestLocateUniformField(t *testing.T) {
	dom := geo.GulfOfOman()
	provider := field.NewProvider(dom, field.NewUniform(0.3, 0.1, 2.0, 1.0), quietLogger())

	release := geo.Point{Lat: 23.6, Lon: 58.5}
	obs := driftEnd(t, provider, release.Lat, release.Lon, 6, 0.02, 3)

	res, err := Locate(context.Background(), provider, Request{
		ObsLat:  obs.Lat,
		ObsLon:  obs.Lon,
		Hours:   6,
		Windage: 0.02,
		Seed:    3,
	}, quietLogger())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}

	if d := geo.HaversineKm(res.Lat, res.Lon, release.Lat, release.Lon); d > 2 {
		t.Errorf("located (%v, %v), %v km from the true release", res.Lat, res.Lon, d)
	}
	if res.Evals == 0 {
		t.Error("no objective evaluations recorded")
	}
}

func TestLocateGyreField(t *testing.T) {
	dom := geo.GulfOfOman()
	provider := field.NewProvider(dom, nil, quietLogger())

	release := geo.Point{Lat: 24.2, Lon: 58.0}
	obs := driftEnd(t, provider, release.Lat, release.Lon, 12, 0.02, 7)

	res, err := Locate(context.Background(), provider, Request{
		ObsLat:  obs.Lat,
		ObsLon:  obs.Lon,
		Hours:   12,
		Windage: 0.02,
		Seed:    7,
	}, quietLogger())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}

	if d := geo.HaversineKm(res.Lat, res.Lon, release.Lat, release.Lon); d > 5 {
		t.Errorf("located (%v, %v), %v km from the true release", res.Lat, res.Lon, d)
	}
}

func TestLocateRejectsBadHorizon(t *testing.T) {
	provider := field.NewProvider(geo.GulfOfOman(), nil, quietLogger())
	_, err := Locate(context.Background(), provider, Request{ObsLat: 24, ObsLon: 58}, quietLogger())
	if !errors.Is(err, drift.ErrHorizon) {
		t.Errorf("expected ErrHorizon, got %v", err)
	}
}
