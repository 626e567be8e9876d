package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/seadrift/internal/drift"
	"github.com/san-kum/seadrift/internal/field"
	"github.com/san-kum/seadrift/internal/geo"
)

// Scenario is a scripted sequence of drift runs loaded from yaml.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run in a scenario. Zero hours, particles or release
// coordinates take the stock defaults; omitted windage and diffusivity
// stay zero, so each step states its own physics.
type Step struct {
	Name        string             `yaml:"name"`
	Model       string             `yaml:"model"`
	Lat         float64            `yaml:"lat"`
	Lon         float64            `yaml:"lon"`
	Hours       float64            `yaml:"hours"`
	Particles   int                `yaml:"particles"`
	Windage     float64            `yaml:"windage"`
	Diffusivity float64            `yaml:"diffusivity"`
	Direction   string             `yaml:"direction"`
	Seed        int64              `yaml:"seed"`
	TimeIndex   int                `yaml:"time_index"`
	Params      map[string]float64 `yaml:"params"`
	CurrentFile string             `yaml:"current_file"`
	WindFile    string             `yaml:"wind_file"`
	SaveAs      string             `yaml:"save_as"`
}

// Load reads a scenario from a yaml file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	return &sc, nil
}

// Request converts the step to a drift request.
func (s Step) Request() (drift.Request, error) {
	dir, err := drift.ParseDirection(s.Direction)
	if err != nil {
		return drift.Request{}, err
	}

	req := drift.Request{
		Lat0:        s.Lat,
		Lon0:        s.Lon,
		Hours:       s.Hours,
		Particles:   s.Particles,
		Windage:     s.Windage,
		Diffusivity: s.Diffusivity,
		Direction:   dir,
		Seed:        s.Seed,
		TimeIndex:   s.TimeIndex,
	}
	if req.Lat0 == 0 && req.Lon0 == 0 {
		req.Lat0, req.Lon0 = drift.DefaultLat, drift.DefaultLon
	}
	if req.Hours == 0 {
		req.Hours = drift.DefaultHours
	}
	if req.Particles == 0 {
		req.Particles = drift.DefaultParticles
	}
	return req, nil
}

func (s Step) displayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Model != "" {
		return s.Model
	}
	return "gyre"
}

// StepResult pairs a step with its run outcome.
type StepResult struct {
	Step   Step
	Result *drift.Result
}

// Run executes all steps in order. A failing step aborts the scenario
// and returns the results accumulated so far.
func Run(ctx context.Context, sc *Scenario, dom geo.Domain, log *slog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		fmt.Printf("Running step %d/%d: %s\n", i+1, len(sc.Steps), step.displayName())

		modelName := step.Model
		if modelName == "" {
			modelName = "gyre"
		}
		m, err := field.NewModel(modelName, dom)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if len(step.Params) > 0 {
			tun, ok := m.(field.Tunable)
			if !ok {
				return results, fmt.Errorf("step %d: model %s takes no parameters", i+1, modelName)
			}
			for k, v := range step.Params {
				if err := tun.SetParam(k, v); err != nil {
					return results, fmt.Errorf("step %d: %w", i+1, err)
				}
			}
		}

		provider := field.NewProvider(dom, m, log)
		if step.CurrentFile != "" {
			// Failure already degrades to the synthetic model.
			_ = provider.LoadCurrent(step.CurrentFile)
		}
		if step.WindFile != "" {
			_ = provider.LoadWind(step.WindFile)
		}

		req, err := step.Request()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res, err := drift.New(provider, log).Run(ctx, req)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, StepResult{Step: step, Result: res})
	}

	return results, nil
}
