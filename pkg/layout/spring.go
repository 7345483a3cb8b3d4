// Package layout implements the spring (force-directed) graph layout.
//
// Every iteration runs three passes: pairwise repulsion with a distance
// cutoff, per-edge attraction, then integration with a per-axis movement
// clamp. The engine always runs exactly Config.Iterations steps.
package layout

import (
	"context"
	"math"
	"time"

	"github.com/kataras/golog"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ha1tch/springgraph/pkg/graph"
)

// degenerateDist2 is the squared distance below which two points are
// treated as coincident and replaced by a jitter offset.
const degenerateDist2 = 0.01

// Spring lays out a graph with the spring model.
type Spring struct {
	Config

	// Logger receives debug output; nil disables logging.
	Logger *golog.Logger

	// Source overrides the jitter generator built from Config.Seed.
	Source JitterSource
}

// NewSpring creates a layout engine.
func NewSpring(cfg Config) *Spring {
	return &Spring{Config: cfg}
}

// Run lays out g with cfg.
func Run(g *graph.Graph, cfg Config) {
	NewSpring(cfg).Layout(g)
}

// Layout runs the full iteration budget and updates g's positions and bounds.
func (s *Spring) Layout(g *graph.Graph) {
	_ = s.LayoutContext(context.Background(), g)
}

// LayoutContext is Layout with cancellation checked between iterations.
// On cancellation the positions reached so far are kept and ctx.Err() is returned.
func (s *Spring) LayoutContext(ctx context.Context, g *graph.Graph) error {
	if g.Len() == 0 {
		g.ComputeBounds()
		return nil
	}

	start := time.Now()
	if s.Restart {
		g.ResetPositions()
	}

	st := s.newState(g)
	s.debugf("spring layout: %d nodes, %d edges, %d iterations, %d workers, partition=%v",
		len(st.pos), len(st.edges), s.Iterations, st.workers, s.Partition)

	var err error
	done := 0
	for ; done < s.Iterations; done++ {
		if err = ctx.Err(); err != nil {
			break
		}
		st.iterate()
	}

	st.writeBack(g)
	b := g.ComputeBounds()

	if err != nil {
		s.debugf("spring layout cancelled after %d/%d iterations: %v", done, s.Iterations, err)
		return err
	}
	s.debugf("spring layout done in %s: x=[%.3f, %.3f] y=[%.3f, %.3f]",
		time.Since(start), b.MinX, b.MaxX, b.MinY, b.MaxY)
	return nil
}

func (s *Spring) debugf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Debugf(format, args...)
	}
}

// edgeRef is an edge resolved to node indices with its precomputed weight scale.
type edgeRef struct {
	source, target int
	scale          float64
}

// state is the per-run scratch space. Positions and forces are parallel
// slices indexed by graph.Node.Index; only positions are written back.
type state struct {
	cfg     Config
	pos     []r2.Vec
	force   []r2.Vec
	edges   []edgeRef
	jitter  *jitterTable
	workers int
}

func (s *Spring) newState(g *graph.Graph) *state {
	n := g.Len()
	st := &state{
		cfg:     s.Config,
		pos:     make([]r2.Vec, n),
		force:   make([]r2.Vec, n),
		edges:   make([]edgeRef, 0, len(g.Edges)),
		workers: s.Workers,
	}
	if st.workers < 1 {
		st.workers = 1
	}
	if st.workers > n {
		st.workers = n
	}

	src := s.Source
	if src == nil {
		src = newJitterSource(s.Config)
	}
	st.jitter = &jitterTable{src: src}

	for i, node := range g.Nodes {
		st.pos[i] = node.Position
	}
	for _, e := range g.Edges {
		if !owns(g, e.Source) || !owns(g, e.Target) {
			if s.Logger != nil {
				s.Logger.Warnf("spring layout: skipping edge with an endpoint outside the graph")
			}
			continue
		}
		st.edges = append(st.edges, edgeRef{
			source: e.Source.Index,
			target: e.Target.Index,
			scale:  math.Log(e.EffectiveWeight())*0.5 + 1,
		})
	}
	return st
}

func owns(g *graph.Graph, n *graph.Node) bool {
	return n != nil && n.Index >= 0 && n.Index < len(g.Nodes) && g.Nodes[n.Index] == n
}

func (st *state) writeBack(g *graph.Graph) {
	for i, node := range g.Nodes {
		node.Position = st.pos[i]
	}
}

func (st *state) iterate() {
	switch {
	case st.cfg.Partition:
		st.repelPartitioned()
	case st.workers > 1:
		st.repelSharded()
	default:
		st.repelPairs()
	}

	for _, e := range st.edges {
		st.attract(e)
	}

	st.integrate()
}

// repelPairs visits every unordered pair once.
func (st *state) repelPairs() {
	n := len(st.pos)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if v, ok := st.repulsion(i, j); ok {
				st.force[j] = r2.Add(st.force[j], v)
				st.force[i] = r2.Sub(st.force[i], v)
			}
		}
	}
}

// repulsion returns the push applied to b (and, negated, to a).
func (st *state) repulsion(a, b int) (r2.Vec, bool) {
	dx := st.pos[b].X - st.pos[a].X
	dy := st.pos[b].Y - st.pos[a].Y
	d2 := dx*dx + dy*dy
	if d2 < degenerateDist2 {
		dx, dy = st.jitter.pair(0)
		d2 = dx*dx + dy*dy
	}
	d := math.Sqrt(d2)
	if d >= st.cfg.MaxRepulsiveForceDistance {
		return r2.Vec{}, false
	}
	k := st.cfg.SpringConstant
	f := k * k / d
	return r2.Vec{X: f * dx / d, Y: f * dy / d}, true
}

// nodeRepulsion sums the repulsion acting on node i from the candidates in
// js, which must be ascending. The result matches the order repelPairs
// accumulates into force[i], so it is bit-identical.
func (st *state) nodeRepulsion(i int, js []int) r2.Vec {
	var f r2.Vec
	for _, j := range js {
		switch {
		case j < i:
			if v, ok := st.repulsion(j, i); ok {
				f = r2.Add(f, v)
			}
		case j > i:
			if v, ok := st.repulsion(i, j); ok {
				f = r2.Sub(f, v)
			}
		}
	}
	return f
}

func (st *state) attract(e edgeRef) {
	src, dst := st.pos[e.source], st.pos[e.target]
	dx := dst.X - src.X
	dy := dst.Y - src.Y
	d2 := dx*dx + dy*dy
	if d2 < degenerateDist2 {
		dx, dy = st.jitter.pair(2)
		d2 = dx*dx + dy*dy
	}
	d := math.Sqrt(d2)
	if max := st.cfg.MaxRepulsiveForceDistance; d > max {
		d = max
		d2 = d * d
	}
	k := st.cfg.SpringConstant
	f := (d2 - k*k) / k * e.scale
	v := r2.Vec{X: f * dx / d, Y: f * dy / d}
	st.force[e.target] = r2.Sub(st.force[e.target], v)
	st.force[e.source] = r2.Add(st.force[e.source], v)
}

func (st *state) integrate() {
	c := st.cfg.DampingFactor
	max := st.cfg.MaxVertexMovement
	for i := range st.pos {
		move := r2.Scale(c, st.force[i])
		move.X = clamp(move.X, max)
		move.Y = clamp(move.Y, max)
		st.pos[i] = r2.Add(st.pos[i], move)
		st.force[i] = r2.Vec{}
	}
}

func clamp(v, max float64) float64 {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}
