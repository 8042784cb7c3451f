package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/spinnet/internal/sim"
	"github.com/san-kum/spinnet/internal/spin"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth   = 800.0
	DefaultHeight  = 600.0
	DefaultFPS     = 60
	DefaultTheme   = "quantum"
	DefaultDataDir = ".spinnet"
	MinExtent      = 40.0
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Variant  string  `yaml:"variant" toml:"variant"`
	Density  int     `yaml:"density" toml:"density"`
	Speed    float64 `yaml:"speed" toml:"speed"`
	Scale    float64 `yaml:"scale" toml:"scale"`
	Mode     string  `yaml:"mode" toml:"mode"`
	Units    string  `yaml:"units" toml:"units"`
	Width    float64 `yaml:"width" toml:"width"`
	Height   float64 `yaml:"height" toml:"height"`
	Seed     int64   `yaml:"seed" toml:"seed"`
	FPS      int     `yaml:"fps" toml:"fps"`
	Theme    string  `yaml:"theme" toml:"theme"`
	LogLevel string  `yaml:"log_level" toml:"log_level"`
	DataDir  string  `yaml:"data_dir" toml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant:  sim.Baseline.String(),
		Density:  sim.DefaultDensity,
		Speed:    sim.DefaultSpeed,
		Scale:    sim.DefaultScale,
		Mode:     sim.Primary.String(),
		Units:    spin.Natural.String(),
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FPS:      DefaultFPS,
		Theme:    DefaultTheme,
		LogLevel: "info",
		DataDir:  DefaultDataDir,
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a config file over the defaults. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg in the format its extension selects.
func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	if _, err := sim.ParseVariant(c.Variant); err != nil {
		errs = append(errs, err)
	}
	if _, err := sim.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, ok := spin.ParseUnits(c.Units); !ok {
		errs = append(errs, fmt.Errorf("%w: unknown units %q", ErrInvalid, c.Units))
	}
	if c.Width < MinExtent || c.Height < MinExtent {
		errs = append(errs, fmt.Errorf("%w: surface %gx%g smaller than %g", ErrInvalid, c.Width, c.Height, MinExtent))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: fps must be positive", ErrInvalid))
	}
	if c.Density < 0 {
		errs = append(errs, fmt.Errorf("%w: negative density", ErrInvalid))
	}
	return errors.Join(errs...)
}

// Clock builds the simulation clock the config describes.
func (c *Config) Clock() (*sim.Clock, error) {
	v, err := sim.ParseVariant(c.Variant)
	if err != nil {
		return nil, err
	}
	m, err := sim.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	u, ok := spin.ParseUnits(c.Units)
	if !ok {
		return nil, fmt.Errorf("%w: unknown units %q", ErrInvalid, c.Units)
	}

	clock := sim.NewClock(v)
	clock.Density = c.Density
	clock.SetSpeed(c.Speed)
	clock.SetScale(c.Scale)
	if v == sim.Extended {
		clock.Mode = m
		clock.Units = u
	}
	return clock, nil
}

func (c *Config) Bounds() spin.Bounds {
	return spin.Bounds{Width: c.Width, Height: c.Height}
}
