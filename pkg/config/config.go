// Package config loads springgraph settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ha1tch/springgraph/pkg/layout"
	"github.com/ha1tch/springgraph/pkg/logging"
	"github.com/ha1tch/springgraph/pkg/render"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds springgraph configuration.
type Config struct {
	Layout layout.Config `toml:"layout"`
	Render RenderConfig  `toml:"render"`
	Log    LogConfig     `toml:"log"`
}

// RenderConfig controls output images.
type RenderConfig struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Radius      float64 `toml:"radius"`
	ArrowLength float64 `toml:"arrow_length"`
	ArrowAngle  float64 `toml:"arrow_angle"` // degrees
	LineWidth   float64 `toml:"line_width"`
	Labels      bool    `toml:"labels"`
	FontSize    float64 `toml:"font_size"`
	Supersample int     `toml:"supersample"` // PNG only
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error, disable
}

// Default returns the default configuration.
func Default() *Config {
	opts := render.DefaultOptions()
	return &Config{
		Layout: layout.DefaultConfig(),
		Render: RenderConfig{
			Width:       800,
			Height:      600,
			Radius:      opts.Radius,
			ArrowLength: opts.ArrowLength,
			ArrowAngle:  18,
			LineWidth:   opts.LineWidth,
			Labels:      opts.Labels,
			FontSize:    opts.FontSize,
			Supersample: 2,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the config file at path over the defaults. An empty path
// returns the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg *Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: render size must be positive, got %dx%d", ErrInvalid, r.Width, r.Height)
	}
	if r.Radius < 0 || 2*r.Radius >= float64(min(r.Width, r.Height)) {
		return fmt.Errorf("%w: radius %v does not fit a %dx%d image", ErrInvalid, r.Radius, r.Width, r.Height)
	}
	if r.ArrowLength < 0 || r.LineWidth < 0 || r.FontSize < 0 {
		return fmt.Errorf("%w: arrow_length, line_width and font_size must not be negative", ErrInvalid)
	}
	if r.ArrowAngle <= 0 || r.ArrowAngle >= 90 {
		return fmt.Errorf("%w: arrow_angle must be between 0 and 90 degrees, got %v", ErrInvalid, r.ArrowAngle)
	}
	if r.Supersample < 1 || r.Supersample > 8 {
		return fmt.Errorf("%w: supersample must be between 1 and 8, got %d", ErrInvalid, r.Supersample)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// LayoutConfig returns the layout engine parameters.
func (c *Config) LayoutConfig() layout.Config {
	return c.Layout
}

// RenderOptions converts the render section to renderer options.
func (c *Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Radius = c.Render.Radius
	opts.ArrowLength = c.Render.ArrowLength
	opts.ArrowAngle = c.Render.ArrowAngle * math.Pi / 180
	opts.LineWidth = c.Render.LineWidth
	opts.Labels = c.Render.Labels
	opts.FontSize = c.Render.FontSize
	return opts
}
