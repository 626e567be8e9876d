package optim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/san-kum/seadrift/internal/drift"
	"github.com/san-kum/seadrift/internal/field"
	"github.com/san-kum/seadrift/internal/geo"
)

// Search tuning. The coarse grid spans gridSpan degrees around the
// backward-run guess before Nelder-Mead takes over.
const (
	searchParticles = 200
	gridSpan        = 0.25
	gridN           = 5
)

// Request describes an observed slick position and the drift horizon
// separating it from the unknown release point.
type Request struct {
	ObsLat, ObsLon float64
	Hours          float64
	Windage        float64
	Seed           int64
	TimeIndex      int
}

// Result is the estimated release point.
type Result struct {
	Lat        float64
	Lon        float64
	MismatchKm float64 // distance from the candidate's forward endpoint to the observation
	Evals      int     // forward simulations spent
}

// Locate estimates the release point whose forward drift ends nearest
// the observed position. A backward run seeds the guess, a coarse grid
// narrows it and Nelder-Mead refines it. Candidate runs are advective
// only and share one seed, making the objective deterministic.
func Locate(ctx context.Context, provider *field.Provider, req Request, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = slog.Default()
	}
	if req.Hours <= 0 {
		return nil, fmt.Errorf("%w: got %f", drift.ErrHorizon, req.Hours)
	}
	seed := req.Seed
	if seed == 0 {
		seed = 1
	}

	dom := provider.Domain()
	sim := drift.New(provider, log)
	base := drift.Request{
		Hours:     req.Hours,
		Particles: searchParticles,
		Windage:   req.Windage,
		Seed:      seed,
		TimeIndex: req.TimeIndex,
	}

	back := base
	back.Lat0, back.Lon0 = req.ObsLat, req.ObsLon
	back.Direction = drift.Backward
	backRes, err := sim.Run(ctx, back)
	if err != nil {
		return nil, err
	}
	guess := centroid(backRes.Cloud)

	evals := 0
	var evalErr error
	objective := func(x []float64) float64 {
		lat, lon := x[0], x[1]
		if !dom.Contains(lat, lon) {
			return 1e6 * (1 + math.Abs(lat-dom.ClampLat(lat)) + math.Abs(lon-dom.ClampLon(lon)))
		}
		fwd := base
		fwd.Lat0, fwd.Lon0 = lat, lon
		res, err := sim.Run(ctx, fwd)
		if err != nil {
			evalErr = err
			return math.Inf(1)
		}
		evals++
		end := centroid(res.Cloud)
		return geo.HaversineKm(end.Lat, end.Lon, req.ObsLat, req.ObsLon)
	}

	bestLat, bestLon := guess.Lat, guess.Lon
	best := objective([]float64{bestLat, bestLon})
	for iy := 0; iy < gridN; iy++ {
		for ix := 0; ix < gridN; ix++ {
			lat := guess.Lat - gridSpan + float64(iy)*2*gridSpan/(gridN-1)
			lon := guess.Lon - gridSpan + float64(ix)*2*gridSpan/(gridN-1)
			if v := objective([]float64{lat, lon}); v < best {
				best, bestLat, bestLon = v, lat, lon
			}
		}
	}
	if evalErr != nil {
		return nil, evalErr
	}

	problem := optimize.Problem{Func: objective}
	if result, err := optimize.Minimize(problem, []float64{bestLat, bestLon}, nil, &optimize.NelderMead{}); err == nil && result != nil && result.F < best {
		best = result.F
		bestLat, bestLon = result.X[0], result.X[1]
	}
	if evalErr != nil {
		return nil, evalErr
	}

	log.Info("release point located",
		"lat", bestLat,
		"lon", bestLon,
		"mismatch_km", best,
		"evals", evals,
	)
	return &Result{Lat: bestLat, Lon: bestLon, MismatchKm: best, Evals: evals}, nil
}

func centroid(pts []geo.Point) geo.Point {
	var lat, lon float64
	for _, p := range pts {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(pts))
	return geo.Point{Lat: lat / n, Lon: lon / n}
}
