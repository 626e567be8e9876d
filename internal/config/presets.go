package config

import "sort"

// Presets are named starting points keyed by synthetic model. They
// describe situations, not tunings: pick one, then override flags.
var Presets = map[string]map[string]*Config{
	"gyre": {
		"spill": {
			Model: "gyre", Hours: 12, Particles: 4000,
			Windage: 0.02, Diffusivity: 0.5,
		},
		"backtrack": {
			Model: "gyre", Hours: 24, Particles: 2000,
			Windage: 0.02, Diffusivity: 0.1, Direction: "backward",
		},
		"storm": {
			Model: "gyre", Hours: 24, Particles: 4000,
			Windage: 0.04, Diffusivity: 1.0,
			Params: map[string]float64{"wind_speed": 12, "wind_osc": 3},
		},
	},
	"uniform": {
		"transit": {
			Model: "uniform", Hours: 48, Particles: 2000,
			Windage: 0.02, Diffusivity: 0.2,
		},
	},
	"calm": {
		"diffusion": {
			Model: "calm", Hours: 24, Particles: 8000,
			Diffusivity: 1.5,
		},
	},
}

// GetPreset returns a self-contained copy of the named preset, with
// unset release point, domain and direction filled from the defaults.
// Unknown names return nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	src, ok := modelPresets[preset]
	if !ok {
		return nil
	}

	cfg := *src
	if src.Params != nil {
		params := make(map[string]float64, len(src.Params))
		for k, v := range src.Params {
			params[k] = v
		}
		cfg.Params = params
	}

	def := DefaultConfig()
	if cfg.Lat == 0 && cfg.Lon == 0 {
		cfg.Lat, cfg.Lon = def.Lat, def.Lon
	}
	if cfg.Domain == (DomainConfig{}) {
		cfg.Domain = def.Domain
	}
	if cfg.Direction == "" {
		cfg.Direction = "forward"
	}
	return &cfg
}

// ListPresets returns the preset names for a model, sorted.
func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
