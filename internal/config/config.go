package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/seadrift/internal/drift"
	"github.com/san-kum/seadrift/internal/geo"
)

type Config struct {
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
	Domain      DomainConfig       `yaml:"domain"`
	Data        DataConfig         `yaml:"data"`
	Params      map[string]float64 `yaml:"params"`
}

type DomainConfig struct {
	LatMin float64 `yaml:"lat_min"`
	LatMax float64 `yaml:"lat_max"`
	LonMin float64 `yaml:"lon_min"`
	LonMax float64 `yaml:"lon_max"`
}

type DataConfig struct {
	CurrentFile string `yaml:"current_file"`
	WindFile    string `yaml:"wind_file"`
}

func DefaultConfig() *Config {
	dom := geo.GulfOfOman()
	return &Config{
		Model:       "gyre",
		Lat:         drift.DefaultLat,
		Lon:         drift.DefaultLon,
		Hours:       drift.DefaultHours,
		Particles:   drift.DefaultParticles,
		Windage:     drift.DefaultWindage,
		Diffusivity: drift.DefaultDiffusivity,
		Direction:   "forward",
		Domain: DomainConfig{
			LatMin: dom.LatMin,
			LatMax: dom.LatMax,
			LonMin: dom.LonMin,
			LonMax: dom.LonMax,
		},
	}
}

// Load reads a yaml config over the defaults, so omitted keys keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) DomainBox() geo.Domain {
	return geo.Domain{
		LatMin: c.Domain.LatMin,
		LatMax: c.Domain.LatMax,
		LonMin: c.Domain.LonMin,
		LonMax: c.Domain.LonMax,
	}
}

// Request converts the config to a drift request.
func (c *Config) Request() (drift.Request, error) {
	dir, err := drift.ParseDirection(c.Direction)
	if err != nil {
		return drift.Request{}, err
	}
	return drift.Request{
		Lat0:        c.Lat,
		Lon0:        c.Lon,
		Hours:       c.Hours,
		Particles:   c.Particles,
		Windage:     c.Windage,
		Diffusivity: c.Diffusivity,
		Direction:   dir,
		Seed:        c.Seed,
		TimeIndex:   c.TimeIndex,
	}, nil
}

// Validate rejects configurations the simulator would refuse.
func (c *Config) Validate() error {
	if c.Particles <= 0 {
		return fmt.Errorf("%w: got %d", drift.ErrParticles, c.Particles)
	}
	if c.Hours <= 0 {
		return fmt.Errorf("%w: got %f", drift.ErrHorizon, c.Hours)
	}
	if !c.DomainBox().Valid() {
		return fmt.Errorf("%w: lat %v..%v lon %v..%v", drift.ErrDomain,
			c.Domain.LatMin, c.Domain.LatMax, c.Domain.LonMin, c.Domain.LonMax)
	}
	if _, err := drift.ParseDirection(c.Direction); err != nil {
		return err
	}
	return nil
}
