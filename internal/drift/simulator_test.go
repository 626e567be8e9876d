package drift_test

import (
	"context"
	"io"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/seadrift/internal/drift"
	"github.com/san-kum/seadrift/internal/field"
	"github.com/san-kum/seadrift/internal/geo"
	"github.com/san-kum/seadrift/internal/metrics"
)

var _ = Describe("Simulator", func() {
	var (
		dom    geo.Domain
		logger *slog.Logger
	)

	BeforeEach(func() {
		dom = geo.GulfOfOman()
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	newSim := func(m field.Model) *drift.Simulator {
		return drift.New(field.NewProvider(dom, m, logger), logger)
	}

	cloudCentroid := func(cloud []geo.Point) geo.Point {
		var lat, lon float64
		for _, p := range cloud {
			lat += p.Lat
			lon += p.Lon
		}
		n := float64(len(cloud))
		return geo.Point{Lat: lat / n, Lon: lon / n}
	}

	Describe("request validation", func() {
		It("rejects a non-positive particle count", func() {
			req := drift.DefaultRequest()
			req.Particles = 0
			_, err := newSim(nil).Run(context.Background(), req)
			Expect(err).To(MatchError(drift.ErrParticles))
		})

		It("rejects a non-positive horizon", func() {
			req := drift.DefaultRequest()
			req.Hours = -2
			_, err := newSim(nil).Run(context.Background(), req)
			Expect(err).To(MatchError(drift.ErrHorizon))
		})

		It("rejects a simulator without a provider", func() {
			_, err := drift.New(nil, logger).Run(context.Background(), drift.DefaultRequest())
			Expect(err).To(MatchError(drift.ErrProvider))
		})
	})

	Describe("a short forward run", func() {
		var res *drift.Result

		BeforeEach(func() {
			req := drift.DefaultRequest()
			req.Particles = 50
			req.Hours = 2
			req.Seed = 7
			var err error
			res, err = newSim(nil).Run(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
		})

		It("integrates the expected number of steps", func() {
			Expect(res.Steps).To(Equal(12))
		})

		It("samples the track every third step", func() {
			Expect(res.Track).To(HaveLen(4))
		})

		It("returns one cloud point per particle", func() {
			Expect(res.Cloud).To(HaveLen(50))
		})

		It("records the effective seed", func() {
			Expect(res.Seed).To(Equal(int64(7)))
		})
	})

	Describe("determinism", func() {
		It("reproduces identical results for an explicit seed", func() {
			req := drift.DefaultRequest()
			req.Particles = 200
			req.Hours = 3
			req.Seed = 42

			a, err := newSim(nil).Run(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			b, err := newSim(nil).Run(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())

			Expect(b.Track).To(Equal(a.Track))
			Expect(b.Cloud).To(Equal(a.Cloud))
		})

		It("draws a wall-clock seed when none is given", func() {
			req := drift.DefaultRequest()
			req.Particles = 5
			req.Hours = 0.5

			res, err := newSim(nil).Run(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Seed).NotTo(BeZero())
		})
	})

	Describe("domain clamping", func() {
		It("keeps a violently diffusing cloud inside the domain", func() {
			req := drift.DefaultRequest()
			req.Particles = 100
			req.Hours = 4
			req.Diffusivity = 5000
			req.Seed = 3

			for _, dir := range []drift.Direction{drift.Forward, drift.Backward} {
				req.Direction = dir
				res, err := newSim(nil).Run(context.Background(), req)
				Expect(err).NotTo(HaveOccurred())
				for _, p := range res.Cloud {
					Expect(dom.Contains(p.Lat, p.Lon)).To(BeTrue(),
						"particle at (%v, %v) escaped going %s", p.Lat, p.Lon, dir)
				}
			}
		})
	})

	Describe("a zero-step horizon", func() {
		It("returns exactly the release point as the track", func() {
			req := drift.DefaultRequest()
			req.Particles = 10
			req.Hours = 0.05
			req.Seed = 1

			res, err := newSim(nil).Run(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(BeZero())
			Expect(res.Track).To(Equal([]geo.Point{{Lat: drift.DefaultLat, Lon: drift.DefaultLon}}))
			Expect(res.Cloud).To(HaveLen(10))
		})
	})

	Describe("the default gyre at the default release point", func() {
		It("drifts the advective-only ensemble north", func() {
			req := drift.DefaultRequest()
			req.Particles = 10
			req.Hours = 1
			req.Windage = 0
			req.Diffusivity = 0
			req.Seed = 42

			res, err := newSim(nil).Run(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())

			end := res.Track[len(res.Track)-1]
			Expect(end.Lat).To(BeNumerically(">", drift.DefaultLat+0.005))
			Expect(math.Abs(end.Lon - drift.DefaultLon)).To(BeNumerically("<", 0.01))
		})
	})

	Describe("backward tracing", func() {
		It("retraces a uniform drift back to the release point", func() {
			uniform := field.NewUniform(0.3, 0.1, 2.0, 1.0)
			req := drift.DefaultRequest()
			req.Particles = 200
			req.Hours = 6
			req.Diffusivity = 0
			req.Seed = 11

			fwd, err := newSim(uniform).Run(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			end := cloudCentroid(fwd.Cloud)

			back := req
			back.Lat0, back.Lon0 = end.Lat, end.Lon
			back.Direction = drift.Backward
			rev, err := newSim(uniform).Run(context.Background(), back)
			Expect(err).NotTo(HaveOccurred())

			origin := cloudCentroid(rev.Cloud)
			Expect(math.Abs(origin.Lat - req.Lat0)).To(BeNumerically("<", 0.01))
			Expect(math.Abs(origin.Lon - req.Lon0)).To(BeNumerically("<", 0.01))
		})

		It("moves opposite to the forward drift", func() {
			uniform := field.NewUniform(0.3, 0, 0, 0)
			req := drift.DefaultRequest()
			req.Particles = 20
			req.Hours = 1
			req.Windage = 0
			req.Diffusivity = 0
			req.Seed = 5

			fwd, err := newSim(uniform).Run(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			Expect(cloudCentroid(fwd.Cloud).Lon).To(BeNumerically(">", req.Lon0))

			req.Direction = drift.Backward
			rev, err := newSim(uniform).Run(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			Expect(cloudCentroid(rev.Cloud).Lon).To(BeNumerically("<", req.Lon0))
		})
	})

	Describe("cancellation", func() {
		It("returns the partial result with the context error", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			req := drift.DefaultRequest()
			req.Particles = 10
			req.Hours = 2
			req.Seed = 1

			res, err := newSim(nil).Run(ctx, req)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res).NotTo(BeNil())
			Expect(res.Steps).To(BeZero())
			Expect(res.Track).To(HaveLen(1))
			Expect(res.Cloud).To(HaveLen(10))
		})
	})

	Describe("metrics", func() {
		It("fills the metrics map from attached metrics", func() {
			req := drift.DefaultRequest()
			req.Particles = 50
			req.Hours = 1
			req.Seed = 9

			sim := newSim(nil)
			sim.AddMetric(metrics.NewSpread())
			res, err := sim.Run(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Metrics).To(HaveKey("spread_km"))
			Expect(res.Metrics["spread_km"]).To(BeNumerically(">", 0))
		})
	})
})

var _ = Describe("Stepper", func() {
	var (
		provider *field.Provider
		logger   *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		provider = field.NewProvider(geo.GulfOfOman(), nil, logger)
	})

	It("matches a batch run step for step", func() {
		req := drift.DefaultRequest()
		req.Particles = 40
		req.Hours = 2
		req.Seed = 21

		st, err := drift.NewStepper(provider, req)
		Expect(err).NotTo(HaveOccurred())
		for !st.Done() {
			st.Step()
		}

		batch, err := drift.New(provider, logger).Run(context.Background(), req)
		Expect(err).NotTo(HaveOccurred())

		manual := st.Result()
		Expect(manual.Track).To(Equal(batch.Track))
		Expect(manual.Cloud).To(Equal(batch.Cloud))
		Expect(manual.Steps).To(Equal(batch.Steps))
	})

	It("is a no-op past the horizon", func() {
		req := drift.DefaultRequest()
		req.Particles = 5
		req.Hours = 0.5
		req.Seed = 2

		st, err := drift.NewStepper(provider, req)
		Expect(err).NotTo(HaveOccurred())
		for !st.Done() {
			st.Step()
		}
		Expect(st.StepsDone()).To(Equal(3))
		before := st.Result()

		st.Step()
		Expect(st.StepsDone()).To(Equal(3))
		Expect(st.Result()).To(Equal(before))
	})

	It("reports signed elapsed time", func() {
		req := drift.DefaultRequest()
		req.Particles = 5
		req.Hours = 1
		req.Seed = 2
		req.Direction = drift.Backward

		st, err := drift.NewStepper(provider, req)
		Expect(err).NotTo(HaveOccurred())
		st.Step()
		Expect(st.Elapsed()).To(Equal(-drift.DTSeconds))
	})

	It("rejects an invalid request", func() {
		req := drift.DefaultRequest()
		req.Particles = -1
		_, err := drift.NewStepper(provider, req)
		Expect(err).To(MatchError(drift.ErrParticles))
	})
})
