package drift

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/seadrift/internal/field"
	"github.com/san-kum/seadrift/internal/geo"
)

// Stepper holds the mutable state of one drift run and advances it a
// time step per call. Run drives a Stepper to completion; interactive
// views drive one directly.
type Stepper struct {
	provider    *field.Provider
	req         Request
	ens         *Ensemble
	walk        distuv.Normal
	dom         geo.Domain
	track       []geo.Point
	dt          float64
	seed        int64
	steps       int
	done        int
	sinceSample int
	dx, dy      []float64
}

// NewStepper validates the request and releases the ensemble around the
// source position.
func NewStepper(provider *field.Provider, req Request) (*Stepper, error) {
	if provider == nil {
		return nil, ErrProvider
	}
	if req.Particles <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrParticles, req.Particles)
	}
	if req.Hours <= 0 {
		return nil, fmt.Errorf("%w: got %f", ErrHorizon, req.Hours)
	}
	if !provider.Domain().Valid() {
		return nil, ErrDomain
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := rand.NewSource(uint64(seed))
	jitter := distuv.Normal{Mu: 0, Sigma: InitialJitterDeg, Src: src}

	dt := DTSeconds
	if req.Direction == Backward {
		dt = -dt
	}
	// The random-walk scale floor keeps the sampler valid at zero
	// diffusivity.
	sigma := math.Sqrt(math.Max(2*req.Diffusivity*math.Abs(dt), 1e-12))

	ens := NewEnsemble(req.Particles)
	ens.Release(req.Lat0, req.Lon0, jitter)

	steps := req.Steps()
	return &Stepper{
		provider: provider,
		req:      req,
		ens:      ens,
		walk:     distuv.Normal{Mu: 0, Sigma: sigma, Src: src},
		dom:      provider.Domain(),
		track:    make([]geo.Point, 0, steps/SampleEverySteps+1),
		dt:       dt,
		seed:     seed,
		steps:    steps,
		dx:       make([]float64, req.Particles),
		dy:       make([]float64, req.Particles),
	}, nil
}

// Step advances every particle one time step. Past the horizon it is a
// no-op.
func (st *Stepper) Step() {
	if st.Done() {
		return
	}

	tsec := float64(st.done) * st.dt
	uc, vc := st.provider.CurrentBatch(st.ens.Lat, st.ens.Lon, tsec, st.req.TimeIndex)
	uw, vw := st.provider.Wind10mBatch(st.ens.Lat, st.ens.Lon, tsec, st.req.TimeIndex)

	// Draw order is fixed: all eastward kicks, then all northward
	// ones.
	for i := range st.dx {
		st.dx[i] = st.walk.Rand()
	}
	for i := range st.dy {
		st.dy[i] = st.walk.Rand()
	}

	for i := 0; i < st.ens.Len(); i++ {
		u := uc[i] + st.req.Windage*uw[i]
		v := vc[i] + st.req.Windage*vw[i]
		dxm := u*st.dt + st.dx[i]
		dym := v*st.dt + st.dy[i]
		// Longitude conversion uses the latitude before this
		// step's update.
		st.ens.Lon[i] += geo.MetersToDegLon(dxm, st.ens.Lat[i])
		st.ens.Lat[i] += geo.MetersToDegLat(dym)
	}
	st.ens.Clamp(st.dom)
	st.done++

	st.sinceSample++
	if st.sinceSample == SampleEverySteps {
		st.track = append(st.track, st.ens.Centroid())
		st.sinceSample = 0
	}
}

// Done reports whether the horizon has been reached.
func (st *Stepper) Done() bool { return st.done >= st.steps }

func (st *Stepper) StepsDone() int  { return st.done }
func (st *Stepper) TotalSteps() int { return st.steps }
func (st *Stepper) Seed() int64     { return st.seed }

// Elapsed is the signed simulation time in seconds. Backward runs
// report negative values.
func (st *Stepper) Elapsed() float64 { return float64(st.done) * st.dt }

// Ensemble exposes the live particle positions. Callers must treat the
// slices as read-only.
func (st *Stepper) Ensemble() *Ensemble { return st.ens }

// Track returns the centroid samples recorded so far. The slice is
// shared with the stepper.
func (st *Stepper) Track() []geo.Point { return st.track }

// Result snapshots the run so far. A run that never reached a sample
// point gets the release position as its only track point.
func (st *Stepper) Result() *Result {
	res := &Result{
		Track:   append([]geo.Point(nil), st.track...),
		Cloud:   st.ens.Points(),
		Steps:   st.done,
		Seed:    st.seed,
		Metrics: make(map[string]float64),
	}
	if len(res.Track) == 0 {
		res.Track = append(res.Track, geo.Point{Lat: st.req.Lat0, Lon: st.req.Lon0})
	}
	return res
}

type Simulator struct {
	provider  *field.Provider
	log       *slog.Logger
	metrics   []Metric
	observers []Observer
}

func New(provider *field.Provider, log *slog.Logger) *Simulator {
	if log == nil {
		log = slog.Default()
	}
	return &Simulator{
		provider:  provider,
		log:       log,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates the request to completion. On context cancellation it
// returns whatever track and cloud accumulated so far along with the
// context error.
func (s *Simulator) Run(ctx context.Context, req Request) (*Result, error) {
	st, err := NewStepper(s.provider, req)
	if err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	s.observe(st.ens, 0)

	s.log.Info("drift run started",
		"direction", req.Direction.String(),
		"particles", req.Particles,
		"steps", st.steps,
		"seed", st.seed,
	)

	for !st.Done() {
		select {
		case <-ctx.Done():
			s.log.Warn("drift run canceled", "completed_steps", st.done)
			return s.finish(st), ctx.Err()
		default:
		}
		st.Step()
		s.observe(st.ens, st.Elapsed())
	}

	s.log.Info("drift run finished",
		"steps", st.done,
		"track_points", len(st.track),
	)
	return s.finish(st), nil
}

func (s *Simulator) observe(ens *Ensemble, tsec float64) {
	for _, m := range s.metrics {
		m.Observe(ens.Lat, ens.Lon, tsec)
	}
	for _, obs := range s.observers {
		obs.OnStep(ens.Lat, ens.Lon, tsec)
	}
}

func (s *Simulator) finish(st *Stepper) *Result {
	res := st.Result()
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}
