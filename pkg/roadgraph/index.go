package roadgraph

import (
	"math"
	"sort"

	"github.com/ha1tch/roadview/pkg/geo"
)

const (
	gridCells   = 128.0
	minCellSize = 50.0
)

type cellKey struct{ x, y int }

// gridIndex buckets forward edges by the grid cells their bounds cover.
type gridIndex struct {
	origin geo.Point
	cell   float64
	cells  map[cellKey][]*Edge
}

func newGridIndex(bounds geo.Rect, cell float64) *gridIndex {
	return &gridIndex{
		origin: bounds.Min,
		cell:   cell,
		cells:  make(map[cellKey][]*Edge),
	}
}

func (gi *gridIndex) keyFor(p geo.Point) cellKey {
	return cellKey{
		x: int(math.Floor((p.X - gi.origin.X) / gi.cell)),
		y: int(math.Floor((p.Y - gi.origin.Y) / gi.cell)),
	}
}

func (gi *gridIndex) insert(e *Edge) {
	b := e.Bounds()
	lo, hi := gi.keyFor(b.Min), gi.keyFor(b.Max)
	for x := lo.x; x <= hi.x; x++ {
		for y := lo.y; y <= hi.y; y++ {
			k := cellKey{x, y}
			gi.cells[k] = append(gi.cells[k], e)
		}
	}
}

// query returns the edges whose bounds touch r, in edge store order.
func (gi *gridIndex) query(r geo.Rect) []*Edge {
	lo, hi := gi.keyFor(r.Min), gi.keyFor(r.Max)
	seen := make(map[int]bool)
	var out []*Edge
	// Large windows are cheaper to answer by walking occupied cells.
	if (hi.x-lo.x+1)*(hi.y-lo.y+1) > len(gi.cells) {
		for k, edges := range gi.cells {
			if k.x < lo.x || k.x > hi.x || k.y < lo.y || k.y > hi.y {
				continue
			}
			out = gi.collect(out, edges, r, seen)
		}
	} else {
		for x := lo.x; x <= hi.x; x++ {
			for y := lo.y; y <= hi.y; y++ {
				out = gi.collect(out, gi.cells[cellKey{x, y}], r, seen)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func (gi *gridIndex) collect(out, edges []*Edge, r geo.Rect, seen map[int]bool) []*Edge {
	for _, e := range edges {
		if seen[e.Index] || !intersectsOrTouches(e.Bounds(), r) {
			continue
		}
		seen[e.Index] = true
		out = append(out, e)
	}
	return out
}
