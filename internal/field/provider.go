package field

import (
	"log/slog"
	"sync"

	"github.com/san-kum/seadrift/internal/geo"
)

// Provider resolves current and wind samples. A loaded dataset is
// preferred; the synthetic model covers every call the dataset cannot.
// The fallback decision is made independently per call, so a bad
// sample never poisons later valid ones.
type Provider struct {
	dom     geo.Domain
	syn     Model
	current *Dataset
	wind    *Dataset
	log     *slog.Logger

	warnCurrent sync.Once
	warnWind    sync.Once
}

// NewProvider builds a provider over dom backed by the given synthetic
// model. A nil model gets the default gyre; a nil logger the default
// slog logger.
func NewProvider(dom geo.Domain, syn Model, log *slog.Logger) *Provider {
	if syn == nil {
		syn = NewGyre(dom)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Provider{dom: dom, syn: syn, log: log}
}

func (p *Provider) Domain() geo.Domain { return p.dom }

// LoadCurrent attaches a current dataset (u, v variables). On failure
// the provider keeps serving synthetic currents and the error is
// returned for reporting.
func (p *Provider) LoadCurrent(path string) error {
	ds, err := OpenDataset(path, "u", "v")
	if err != nil {
		p.log.Warn("current dataset unavailable", "path", path, "err", err)
		return err
	}
	p.current = ds
	p.log.Info("current dataset loaded", "path", path, "times", ds.NumTimes())
	return nil
}

// LoadWind attaches a 10 m wind dataset (u10, v10 variables).
func (p *Provider) LoadWind(path string) error {
	ds, err := OpenDataset(path, "u10", "v10")
	if err != nil {
		p.log.Warn("wind dataset unavailable", "path", path, "err", err)
		return err
	}
	p.wind = ds
	p.log.Info("wind dataset loaded", "path", path, "times", ds.NumTimes())
	return nil
}

func (p *Provider) HasCurrentData() bool { return p.current != nil }
func (p *Provider) HasWindData() bool    { return p.wind != nil }

// Current returns the surface current at (lat, lon). tsec drives the
// synthetic model; tidx selects the dataset time slice.
func (p *Provider) Current(lat, lon, tsec float64, tidx int) (float64, float64) {
	if p.current != nil {
		u, v, err := p.current.SampleUV(lat, lon, tidx)
		if err == nil {
			return u, v
		}
		p.fallback(&p.warnCurrent, "current", err)
	}
	return p.syn.Current(lat, lon, tsec)
}

// Wind10m returns the 10 m wind at (lat, lon).
func (p *Provider) Wind10m(lat, lon, tsec float64, tidx int) (float64, float64) {
	if p.wind != nil {
		u, v, err := p.wind.SampleUV(lat, lon, tidx)
		if err == nil {
			return u, v
		}
		p.fallback(&p.warnWind, "wind", err)
	}
	return p.syn.Wind10m(lat, lon, tsec)
}

// CurrentBatch samples the current for every position, fanning out
// across particles. Results are identical to calling Current per
// index; the returned slices are freshly allocated.
func (p *Provider) CurrentBatch(lats, lons []float64, tsec float64, tidx int) ([]float64, []float64) {
	n := len(lats)
	u := make([]float64, n)
	v := make([]float64, n)
	parallelFor(n, minBatchChunk, func(start, end int) {
		for i := start; i < end; i++ {
			u[i], v[i] = p.Current(lats[i], lons[i], tsec, tidx)
		}
	})
	return u, v
}

// Wind10mBatch samples the wind for every position in parallel.
func (p *Provider) Wind10mBatch(lats, lons []float64, tsec float64, tidx int) ([]float64, []float64) {
	n := len(lats)
	u := make([]float64, n)
	v := make([]float64, n)
	parallelFor(n, minBatchChunk, func(start, end int) {
		for i := start; i < end; i++ {
			u[i], v[i] = p.Wind10m(lats[i], lons[i], tsec, tidx)
		}
	})
	return u, v
}

// GridSample is one arrow of the coarse overview grid.
type GridSample struct {
	Lat float64 `json:"lat" csv:"lat"`
	Lon float64 `json:"lon" csv:"lon"`
	U   float64 `json:"u" csv:"u"`
	V   float64 `json:"v" csv:"v"`
}

// CurrentGrid samples the current at the centers of a rows x cols
// partition of the domain, row-major from the south-west corner.
func (p *Provider) CurrentGrid(rows, cols int, tsec float64, tidx int) []GridSample {
	out := make([]GridSample, 0, rows*cols)
	for iy := 0; iy < rows; iy++ {
		lat := p.dom.LatMin + (float64(iy)+0.5)*(p.dom.LatMax-p.dom.LatMin)/float64(rows)
		for ix := 0; ix < cols; ix++ {
			lon := p.dom.LonMin + (float64(ix)+0.5)*(p.dom.LonMax-p.dom.LonMin)/float64(cols)
			u, v := p.Current(lat, lon, tsec, tidx)
			out = append(out, GridSample{Lat: lat, Lon: lon, U: u, V: v})
		}
	}
	return out
}

func (p *Provider) fallback(once *sync.Once, kind string, err error) {
	once.Do(func() {
		p.log.Warn("dataset sampling failed, synthetic fallback engaged", "kind", kind, "err", err)
	})
	p.log.Debug("synthetic fallback", "kind", kind, "err", err)
}
