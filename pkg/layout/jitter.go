package layout

import (
	"math/rand/v2"
	"sync"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// JitterSource yields values in [0, 1) used to separate coincident nodes.
// *rand.Rand satisfies it.
type JitterSource interface {
	Float64() float64
}

// NewPCGJitter returns a seeded PCG generator.
func NewPCGJitter(seed uint64) JitterSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NoiseJitter samples OpenSimplex noise along a fixed line.
type NoiseJitter struct {
	noise opensimplex.Noise
	step  float64
}

// NewNoiseJitter returns a noise-backed source for the given seed.
func NewNoiseJitter(seed uint64) *NoiseJitter {
	return &NoiseJitter{noise: opensimplex.New(int64(seed))}
}

// Float64 returns the next sample mapped from [-1, 1] onto [0, 1).
func (n *NoiseJitter) Float64() float64 {
	// off-lattice sample points; noise is zero on integer coordinates
	n.step += 0.618
	v := (n.noise.Eval2(n.step, 0.5) + 1) / 2
	if v >= 1 {
		v = 0.999999
	}
	if v < 0 {
		v = 0
	}
	return v
}

// jitterTable holds the four offsets used for degenerate distances.
// It is filled on first use and reused for the rest of a layout run.
// Slots 0 and 1 serve repulsion, 2 and 3 attraction.
type jitterTable struct {
	src    JitterSource
	values [4]float64
	once   sync.Once
}

func (t *jitterTable) pair(first int) (float64, float64) {
	t.once.Do(func() {
		for i := range t.values {
			t.values[i] = 0.1*t.src.Float64() + 0.1
		}
	})
	return t.values[first], t.values[first+1]
}

func newJitterSource(cfg Config) JitterSource {
	if cfg.Jitter == JitterSimplex {
		return NewNoiseJitter(cfg.Seed)
	}
	return NewPCGJitter(cfg.Seed)
}
