package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/slopefield/internal/field"
	"gopkg.in/yaml.v3"
)

const (
	DefaultField          = "linear"
	DefaultBound          = 5.0
	DefaultSpacing        = 0.8
	DefaultGlyphLength    = 0.6
	DefaultGlyphThickness = 0.05
	DefaultDt             = 0.05
	DefaultThreshold      = 0.5
	DefaultTrailThickness = 0.05
	DefaultRadiusScale    = 8.0
	DefaultMarkerRadius   = 0.2
	DefaultFrameRate      = 60
	DefaultTicks          = 200
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Field     string       `yaml:"field"`
	Dt        float64      `yaml:"dt"`
	Threshold float64      `yaml:"threshold"`
	Ticks     int          `yaml:"ticks"`
	FrameRate int          `yaml:"frame_rate"`
	LogLevel  string       `yaml:"log_level"`
	Domain    DomainConfig `yaml:"domain"`
	Glyphs    GlyphConfig  `yaml:"glyphs"`
	Trail     TrailConfig  `yaml:"trail"`
	Marker    MarkerConfig `yaml:"marker"`
}

type DomainConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

type GlyphConfig struct {
	Spacing   float64 `yaml:"spacing"`
	Length    float64 `yaml:"length"`
	Thickness float64 `yaml:"thickness"`
}

type TrailConfig struct {
	Thickness   float64 `yaml:"thickness"`
	RadiusScale float64 `yaml:"radius_scale"`
}

type MarkerConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Radius float64 `yaml:"radius"`
}

func DefaultConfig() *Config {
	return &Config{
		Field:     DefaultField,
		Dt:        DefaultDt,
		Threshold: DefaultThreshold,
		Ticks:     DefaultTicks,
		FrameRate: DefaultFrameRate,
		LogLevel:  "info",
		Domain: DomainConfig{
			XMin: -DefaultBound,
			XMax: DefaultBound,
			YMin: -DefaultBound,
			YMax: DefaultBound,
		},
		Glyphs: GlyphConfig{
			Spacing:   DefaultSpacing,
			Length:    DefaultGlyphLength,
			Thickness: DefaultGlyphThickness,
		},
		Trail: TrailConfig{
			Thickness:   DefaultTrailThickness,
			RadiusScale: DefaultRadiusScale,
		},
		Marker: MarkerConfig{
			Radius: DefaultMarkerRadius,
		},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalid, c.Dt)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("%w: threshold must be positive, got %f", ErrInvalid, c.Threshold)
	}
	if c.Domain.XMin >= c.Domain.XMax || c.Domain.YMin >= c.Domain.YMax {
		return fmt.Errorf("%w: empty domain [%g,%g]x[%g,%g]", ErrInvalid,
			c.Domain.XMin, c.Domain.XMax, c.Domain.YMin, c.Domain.YMax)
	}
	if c.Glyphs.Spacing <= 0 {
		return fmt.Errorf("%w: grid spacing must be positive, got %f", ErrInvalid, c.Glyphs.Spacing)
	}
	if c.Trail.RadiusScale < 0 {
		return fmt.Errorf("%w: radius scale must not be negative, got %f", ErrInvalid, c.Trail.RadiusScale)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate must be positive, got %d", ErrInvalid, c.FrameRate)
	}
	return nil
}

// Grid returns the direction-field sampling grid for the configured domain.
func (c *Config) Grid() field.Grid {
	return field.Grid{
		XMin:    c.Domain.XMin,
		XMax:    c.Domain.XMax,
		YMin:    c.Domain.YMin,
		YMax:    c.Domain.YMax,
		Spacing: c.Glyphs.Spacing,
	}
}
