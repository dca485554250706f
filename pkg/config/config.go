// Package config loads the settings of a classification run from TOML or
// YAML files. A Config describes the tolerances, the sampling and the shape
// to classify against; BuildLevelSet turns the shape into a level set.
package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/chazu/brep/pkg/brep"
	"github.com/chazu/brep/pkg/kernel"
	"github.com/chazu/brep/pkg/levelset"
)

var (
	// ErrUnsupportedFormat is returned for a file extension other than
	// .toml, .yaml or .yml.
	ErrUnsupportedFormat = errors.New("config: unsupported format")

	// ErrInvalid is returned when a loaded configuration fails validation.
	ErrInvalid = errors.New("config: invalid configuration")
)

// Shape kinds.
const (
	ShapeCircle   = "circle"
	ShapeSphere   = "sphere"
	ShapeBox      = "box"
	ShapeCylinder = "cylinder"
)

var shapeKinds = []string{ShapeCircle, ShapeSphere, ShapeBox, ShapeCylinder}

// Shape describes the boundary to classify against. Circles and spheres are
// analytic level sets; boxes and cylinders come from the solid kernel.
type Shape struct {
	Kind    string    `toml:"kind" yaml:"kind"`
	Center  []float64 `toml:"center" yaml:"center"` // missing coordinates are zero
	Radius  float64   `toml:"radius" yaml:"radius"`
	Size    []float64 `toml:"size" yaml:"size"`
	Height  float64   `toml:"height" yaml:"height"`
	Inverse bool      `toml:"inverse" yaml:"inverse"`
}

// Config holds the settings of a classification run.
type Config struct {
	Tolerance           float64 `toml:"tolerance" yaml:"tolerance"`
	MaxBisectIterations int     `toml:"max_bisect_iterations" yaml:"max_bisect_iterations"`
	Sampling            int     `toml:"sampling" yaml:"sampling"`
	Configuration       string  `toml:"configuration" yaml:"configuration"`
	Workers             int     `toml:"workers" yaml:"workers"`
	LogLevel            string  `toml:"log_level" yaml:"log_level"`
	Shape               Shape   `toml:"shape" yaml:"shape"`
}

// Default returns the configuration used when no file is given: a unit
// circle at the origin with the level set defaults.
func Default() *Config {
	return &Config{
		Tolerance:           levelset.DefaultTolerance,
		MaxBisectIterations: levelset.DefaultMaxIterations,
		Configuration:       brep.Reference.String(),
		LogLevel:            "info",
		Shape: Shape{
			Kind:   ShapeCircle,
			Radius: 1,
		},
	}
}

// Load reads and validates the file at path. The format follows the
// extension. Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read")
	}
	cfg, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return cfg, nil
}

// Parse decodes data in the given format ("toml", "yaml" or "yml") over the
// defaults and validates the result. Unknown keys are rejected.
func Parse(data []byte, format string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(format) {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.Wrap(err, "config: decode toml")
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF and leaves the defaults.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "config: decode yaml")
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Check folds the problems reported by Validate into a single error
// wrapping ErrInvalid, or returns nil.
func (c *Config) Check() error {
	errs := c.Validate()
	if len(errs) == 0 {
		return nil
	}
	msgs := lo.Map(errs, func(e ValidationError, _ int) string { return e.Error() })
	return errors.Wrap(ErrInvalid, strings.Join(msgs, "; "))
}

// CutConfiguration returns the configuration selector named by
// Configuration.
func (c *Config) CutConfiguration() (brep.Configuration, error) {
	switch strings.ToLower(c.Configuration) {
	case brep.Reference.String():
		return brep.Reference, nil
	case brep.Current.String():
		return brep.Current, nil
	default:
		return 0, errors.Wrapf(brep.ErrInvalidConfiguration, "%q", c.Configuration)
	}
}

// SlogLevel returns the log level named by LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Wrapf(err, "config: log level %q", c.LogLevel)
	}
	return l, nil
}

// LevelSetOptions returns the level set options carried by the
// configuration.
func (c *Config) LevelSetOptions() []levelset.Option {
	return []levelset.Option{
		levelset.WithTolerance(c.Tolerance),
		levelset.WithMaxIterations(c.MaxBisectIterations),
	}
}

// BuildLevelSet builds the configured shape. Kernel shapes are built with k;
// k may be nil for circles and spheres.
func (c *Config) BuildLevelSet(k kernel.Kernel) (*levelset.LevelSet, error) {
	s := c.Shape
	center := vec3(s.Center)
	opts := c.LevelSetOptions()

	var ls *levelset.LevelSet
	switch s.Kind {
	case ShapeCircle:
		ls = levelset.CircularLevelSet(center[0], center[1], s.Radius, opts...)
	case ShapeSphere:
		ls = levelset.SphericalLevelSet(center[0], center[1], center[2], s.Radius, opts...)
	case ShapeBox, ShapeCylinder:
		if k == nil {
			return nil, errors.Errorf("config: shape %q needs a solid kernel", s.Kind)
		}
		var solid kernel.Solid
		if s.Kind == ShapeBox {
			size := vec3(s.Size)
			solid = k.Box(size[0], size[1], size[2])
		} else {
			solid = k.Cylinder(s.Height, s.Radius)
		}
		ls = k.LevelSet(k.Translate(solid, center[0], center[1], center[2]), opts...)
	default:
		return nil, errors.Errorf("config: unknown shape kind %q", s.Kind)
	}
	if s.Inverse {
		ls = levelset.InverseLevelSet(ls, opts...)
	}
	return ls, nil
}

func vec3(v []float64) [3]float64 {
	var out [3]float64
	copy(out[:], v)
	return out
}

// --- validation ---

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if math.IsNaN(c.Tolerance) || c.Tolerance < 0 {
		add("tolerance", "must be a non-negative number, got %g", c.Tolerance)
	}
	if c.MaxBisectIterations <= 0 {
		add("max_bisect_iterations", "must be positive, got %d", c.MaxBisectIterations)
	}
	if c.Sampling < 0 {
		add("sampling", "must not be negative, got %d", c.Sampling)
	}
	if c.Workers < 0 {
		add("workers", "must not be negative, got %d", c.Workers)
	}
	if _, err := c.CutConfiguration(); err != nil {
		add("configuration", "must be %q or %q, got %q", brep.Reference, brep.Current, c.Configuration)
	}
	if _, err := c.SlogLevel(); err != nil {
		add("log_level", "unknown level %q", c.LogLevel)
	}
	errs = append(errs, c.Shape.validate()...)
	return errs
}

func (s Shape) validate() []ValidationError {
	var errs []ValidationError
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: "shape." + field, Message: fmt.Sprintf(format, args...)})
	}

	if !lo.Contains(shapeKinds, s.Kind) {
		add("kind", "must be one of %s, got %q", strings.Join(shapeKinds, ", "), s.Kind)
		return errs
	}
	if len(s.Center) > 3 {
		add("center", "has %d coordinates, at most 3 allowed", len(s.Center))
	}
	if s.Kind != ShapeBox && !(s.Radius > 0) {
		add("radius", "must be positive, got %g", s.Radius)
	}
	if s.Kind == ShapeBox {
		if len(s.Size) != 3 {
			add("size", "needs 3 values, got %d", len(s.Size))
		} else if lo.SomeBy(s.Size, func(v float64) bool { return !(v > 0) }) {
			add("size", "must be positive, got %v", s.Size)
		}
	}
	if s.Kind == ShapeCylinder && !(s.Height > 0) {
		add("height", "must be positive, got %g", s.Height)
	}
	return errs
}
