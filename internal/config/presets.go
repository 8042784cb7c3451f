package config

import "sort"

// Preset is a named starting configuration.
type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"baseline": {
		Description: "the plain network, energy readout",
		Apply:       func(c *Config) {},
	},
	"extended": {
		Description: "ħ scale, derived display and unit toggle",
		Apply: func(c *Config) {
			c.Variant = "extended"
		},
	},
	"dense": {
		Description: "forty nodes, heavily linked",
		Apply: func(c *Config) {
			c.Variant = "extended"
			c.Density = 40
		},
	},
	"sparse": {
		Description: "six nodes drifting slowly",
		Apply: func(c *Config) {
			c.Density = 6
			c.Speed = 0.5
		},
	},
	"semiclassical": {
		Description: "small ħ, geometry close to smooth",
		Apply: func(c *Config) {
			c.Variant = "extended"
			c.Density = 30
			c.Scale = 0.2
		},
	},
	"foam": {
		Description: "large ħ on the derived display",
		Apply: func(c *Config) {
			c.Variant = "extended"
			c.Mode = "derived"
			c.Scale = 1.5
			c.Speed = 1.5
		},
	},
	"planck": {
		Description: "readout in Planck units",
		Apply: func(c *Config) {
			c.Variant = "extended"
			c.Units = "physical"
		},
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
