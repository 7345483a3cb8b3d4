package layout

import (
	"math"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Node-major repulsion. Each node's total is summed over its neighbours in
// ascending index order, which reproduces repelPairs exactly. Every pair
// is evaluated twice, once per endpoint, so rows can be split across
// workers without sharing force slots.

// repelSharded computes all-pairs repulsion row by row across workers.
func (st *state) repelSharded() {
	all := make([]int, len(st.pos))
	for i := range all {
		all[i] = i
	}
	st.forEachRow(func(i int, _ *[]int) {
		st.force[i] = st.nodeRepulsion(i, all)
	})
}

// gridCell addresses a square bucket whose side is the repulsion cutoff.
type gridCell struct {
	x, y int
}

// repelPartitioned only visits nodes in the 3x3 block of cells around
// each node. Nodes two or more cells apart are further than the cutoff
// and contribute nothing, so the result is the same as the full scan.
func (st *state) repelPartitioned() {
	size := st.cfg.MaxRepulsiveForceDistance
	grid := make(map[gridCell][]int)
	cells := make([]gridCell, len(st.pos))
	for i, p := range st.pos {
		c := gridCell{x: int(math.Floor(p.X / size)), y: int(math.Floor(p.Y / size))}
		cells[i] = c
		grid[c] = append(grid[c], i)
	}

	st.forEachRow(func(i int, scratch *[]int) {
		js := (*scratch)[:0]
		c := cells[i]
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				js = append(js, grid[gridCell{x: c.x + dx, y: c.y + dy}]...)
			}
		}
		slices.Sort(js)
		st.force[i] = st.nodeRepulsion(i, js)
		*scratch = js
	})
}

// forEachRow calls fn once per node index. With more than one worker the
// rows are interleaved across goroutines; each goroutine owns a scratch slice.
func (st *state) forEachRow(fn func(i int, scratch *[]int)) {
	n := len(st.pos)
	if st.workers <= 1 {
		var scratch []int
		for i := 0; i < n; i++ {
			fn(i, &scratch)
		}
		return
	}

	var eg errgroup.Group
	for w := 0; w < st.workers; w++ {
		eg.Go(func() error {
			var scratch []int
			for i := w; i < n; i += st.workers {
				fn(i, &scratch)
			}
			return nil
		})
	}
	_ = eg.Wait()
}
