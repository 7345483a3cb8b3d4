package layout

import (
	"errors"
	"fmt"
	"math"
)

// Jitter source names accepted by Config.Jitter.
const (
	JitterPCG     = "pcg"
	JitterSimplex = "simplex"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid layout config")

// Config holds the spring layout parameters.
type Config struct {
	Iterations                int     `toml:"iterations"`
	MaxRepulsiveForceDistance float64 `toml:"max_repulsive_force_distance"`
	SpringConstant            float64 `toml:"spring_constant"` // k
	DampingFactor             float64 `toml:"damping_factor"`  // c
	MaxVertexMovement         float64 `toml:"max_vertex_movement"`

	Seed      uint64 `toml:"seed"`
	Jitter    string `toml:"jitter"`    // "pcg" or "simplex"
	Workers   int    `toml:"workers"`   // repulsion shards, <=1 is serial
	Partition bool   `toml:"partition"` // grid-bucketed repulsion
	Restart   bool   `toml:"restart"`   // zero positions before iterating
}

// DefaultConfig returns the classic spring layout parameters.
func DefaultConfig() Config {
	return Config{
		Iterations:                500,
		MaxRepulsiveForceDistance: 6,
		SpringConstant:            2,
		DampingFactor:             0.01,
		MaxVertexMovement:         0.5,
		Seed:                      1,
		Jitter:                    JitterPCG,
		Workers:                   1,
	}
}

// Validate checks the parameters can drive a simulation.
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations must not be negative, got %d", ErrInvalidConfig, c.Iterations)
	}
	if !positive(c.MaxRepulsiveForceDistance) {
		return fmt.Errorf("%w: max_repulsive_force_distance must be positive, got %v", ErrInvalidConfig, c.MaxRepulsiveForceDistance)
	}
	if !positive(c.SpringConstant) {
		return fmt.Errorf("%w: spring_constant must be positive, got %v", ErrInvalidConfig, c.SpringConstant)
	}
	if c.DampingFactor < 0 || math.IsNaN(c.DampingFactor) || math.IsInf(c.DampingFactor, 0) {
		return fmt.Errorf("%w: damping_factor must be finite and non-negative, got %v", ErrInvalidConfig, c.DampingFactor)
	}
	if !positive(c.MaxVertexMovement) {
		return fmt.Errorf("%w: max_vertex_movement must be positive, got %v", ErrInvalidConfig, c.MaxVertexMovement)
	}
	switch c.Jitter {
	case "", JitterPCG, JitterSimplex:
	default:
		return fmt.Errorf("%w: unknown jitter source %q", ErrInvalidConfig, c.Jitter)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
