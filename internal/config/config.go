// Package config handles configuration loading for the vincenty command.
package config

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tidwall/vincenty"
)

// Defaults used for fields left empty in the configuration file.
const (
	DefaultMaxIterations = 200
	DefaultTolerance     = 1e-12
)

// Config represents the root configuration file structure.
type Config struct {
	Ellipsoid     Ellipsoid `yaml:"ellipsoid"`
	MaxIterations int       `yaml:"max_iterations,omitempty"`
	Tolerance     float64   `yaml:"tolerance,omitempty"`
	Workers       int       `yaml:"workers,omitempty"` // batch concurrency, 0 for GOMAXPROCS
}

// Ellipsoid selects the reference surface. Zero values mean WGS84.
type Ellipsoid struct {
	SemiMajorAxis float64 `yaml:"semi_major_axis,omitempty"`
	Flattening    float64 `yaml:"flattening,omitempty"`
	Spherical     bool    `yaml:"spherical,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the YAML configuration file from the specified path.
// A missing file is not an error, the defaults are returned instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Ellipsoid.SemiMajorAxis == 0 {
		c.Ellipsoid.SemiMajorAxis = vincenty.SemiMajorAxis
		if c.Ellipsoid.Flattening == 0 && !c.Ellipsoid.Spherical {
			c.Ellipsoid.Flattening = vincenty.Flattening
		}
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	e := c.Ellipsoid
	if !(e.SemiMajorAxis > 0) || math.IsInf(e.SemiMajorAxis, 0) {
		return errors.Errorf("semi_major_axis %g must be positive", e.SemiMajorAxis)
	}
	if !(e.Flattening >= 0 && e.Flattening < 1) {
		return errors.Errorf("flattening %g must be in [0, 1)", e.Flattening)
	}
	if e.Spherical && e.Flattening != 0 {
		return errors.New("spherical ellipsoid cannot have a flattening")
	}
	if c.MaxIterations < 1 {
		return errors.Errorf("max_iterations %d must be positive", c.MaxIterations)
	}
	if !(c.Tolerance > 0) {
		return errors.Errorf("tolerance %g must be positive", c.Tolerance)
	}
	if c.Workers < 0 {
		return errors.Errorf("workers %d must not be negative", c.Workers)
	}
	return nil
}

// Params returns the convergence parameters.
func (c *Config) Params() vincenty.Params {
	return vincenty.Params{MaxIterations: c.MaxIterations, Tolerance: c.Tolerance}
}

// Surface returns the configured ellipsoid.
func (c *Config) Surface() vincenty.Ellipsoid {
	if c.Ellipsoid.Spherical {
		return vincenty.NewSpherical(c.Ellipsoid.SemiMajorAxis)
	}
	return vincenty.NewEllipsoid(c.Ellipsoid.SemiMajorAxis, c.Ellipsoid.Flattening)
}
