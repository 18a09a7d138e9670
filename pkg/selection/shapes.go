package selection

import (
	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
)

// initialShapes is the starting capacity of each per-kind buffer.
const initialShapes = 4096

type drawnShape struct {
	entity roadgraph.Entity
	shape  geo.Shape
}

// shapeArena holds the hit regions recorded during the last paint, in draw
// order. Buffers are truncated, not freed, between frames.
type shapeArena struct {
	byKind map[roadgraph.Kind][]drawnShape
}

func newShapeArena() *shapeArena {
	a := &shapeArena{byKind: make(map[roadgraph.Kind][]drawnShape)}
	for _, k := range []roadgraph.Kind{
		roadgraph.KindVertex, roadgraph.KindEdge, roadgraph.KindRelation,
		roadgraph.KindPlace, roadgraph.KindShapePoint,
	} {
		a.byKind[k] = make([]drawnShape, 0, initialShapes)
	}
	return a
}

// EdgeSnapper finds the nearest edge to a screen point when no drawn
// shape contains it.
type EdgeSnapper interface {
	SnapEdge(screen geo.Point) (*roadgraph.Edge, bool)
}

// Shape records that the drawn region corresponds to e.
func (s *State) Shape(e roadgraph.Entity, shape geo.Shape) {
	if e == nil || shape == nil {
		return
	}
	k := e.Kind()
	s.shapes.byKind[k] = append(s.shapes.byKind[k], drawnShape{entity: e, shape: shape})
}

// ClearShapes forgets every recorded region. Call once before each paint.
func (s *State) ClearShapes() {
	for k, buf := range s.shapes.byKind {
		clear(buf)
		s.shapes.byKind[k] = buf[:0]
	}
}

// ShapeCount returns the number of recorded regions of kind.
func (s *State) ShapeCount(kind roadgraph.Kind) int {
	return len(s.shapes.byKind[kind])
}

// ShapeOf returns the region most recently recorded for e.
func (s *State) ShapeOf(e roadgraph.Entity) (geo.Shape, bool) {
	if e == nil {
		return nil, false
	}
	buf := s.shapes.byKind[e.Kind()]
	for i := len(buf) - 1; i >= 0; i-- {
		if roadgraph.Same(buf[i].entity, e) {
			return buf[i].shape, true
		}
	}
	return nil, false
}

// hits returns every distinct entity of kind whose region contains p.
func (s *State) hits(kind roadgraph.Kind, p geo.Point) []roadgraph.Entity {
	var out []roadgraph.Entity
	for _, d := range s.shapes.byKind[kind] {
		if !d.shape.Contains(p) {
			continue
		}
		dup := false
		for _, e := range out {
			if roadgraph.Same(e, d.entity) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, d.entity)
		}
	}
	return out
}

// Hits returns every entity of kind under p, in draw order.
func (s *State) Hits(kind roadgraph.Kind, p geo.Point) []roadgraph.Entity {
	return s.hits(kind, p)
}

// VerticesForPoint returns every vertex drawn under p.
func (s *State) VerticesForPoint(p geo.Point) []*roadgraph.Vertex {
	return collect[*roadgraph.Vertex](s.hits(roadgraph.KindVertex, p))
}

// EdgesForPoint returns every edge drawn under p. When nothing was drawn
// there and snapper is not nil, the nearest edge it finds is returned.
func (s *State) EdgesForPoint(p geo.Point, snapper EdgeSnapper) []*roadgraph.Edge {
	out := collect[*roadgraph.Edge](s.hits(roadgraph.KindEdge, p))
	if len(out) == 0 && snapper != nil {
		if e, ok := snapper.SnapEdge(p); ok {
			out = append(out, e)
		}
	}
	return out
}

// RelationsForPoint returns every relation drawn under p.
func (s *State) RelationsForPoint(p geo.Point) []*roadgraph.Relation {
	return collect[*roadgraph.Relation](s.hits(roadgraph.KindRelation, p))
}

// PlacesForPoint returns every place drawn under p.
func (s *State) PlacesForPoint(p geo.Point) []*roadgraph.Place {
	return collect[*roadgraph.Place](s.hits(roadgraph.KindPlace, p))
}

// ShapePointsForPoint returns every shape point drawn under p.
func (s *State) ShapePointsForPoint(p geo.Point) []*roadgraph.ShapePoint {
	return collect[*roadgraph.ShapePoint](s.hits(roadgraph.KindShapePoint, p))
}

func collect[T roadgraph.Entity](entities []roadgraph.Entity) []T {
	out := make([]T, 0, len(entities))
	for _, e := range entities {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Entities widens a typed slice for SetStack and SameStack.
func Entities[T roadgraph.Entity](items []T) []roadgraph.Entity {
	out := make([]roadgraph.Entity, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
