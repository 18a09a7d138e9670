package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
)

type fixedSnapper struct {
	edge  *roadgraph.Edge
	calls int
}

func (f *fixedSnapper) SnapEdge(geo.Point) (*roadgraph.Edge, bool) {
	f.calls++
	return f.edge, f.edge != nil
}

func TestForPointReturnsEveryHit(t *testing.T) {
	s := New()
	a := &roadgraph.Vertex{ID: 1}
	b := &roadgraph.Vertex{ID: 2}
	c := &roadgraph.Vertex{ID: 3}
	s.Shape(a, geo.Circle{Center: geo.Point{X: 10, Y: 10}, Radius: 5})
	s.Shape(b, geo.Circle{Center: geo.Point{X: 12, Y: 10}, Radius: 5})
	s.Shape(c, geo.Circle{Center: geo.Point{X: 100, Y: 100}, Radius: 5})
	s.Shape(a, geo.Circle{Center: geo.Point{X: 11, Y: 10}, Radius: 5})

	got := s.VerticesForPoint(geo.Point{X: 11, Y: 10})
	require.Len(t, got, 2)
	assert.Equal(t, roadgraph.VertexID(1), got[0].ID)
	assert.Equal(t, roadgraph.VertexID(2), got[1].ID)

	assert.Empty(t, s.VerticesForPoint(geo.Point{X: 50, Y: 50}))
	assert.Empty(t, s.PlacesForPoint(geo.Point{X: 11, Y: 10}))
}

func TestEdgesForPointSnapFallback(t *testing.T) {
	s := New()
	drawn := &roadgraph.Edge{ID: 4}
	s.Shape(drawn, geo.Stroke{Points: geo.Polyline{{X: 0, Y: 0}, {X: 100, Y: 0}}, HalfWidth: 3})
	snapper := &fixedSnapper{edge: &roadgraph.Edge{ID: 9}}

	got := s.EdgesForPoint(geo.Point{X: 50, Y: 2}, snapper)
	require.Len(t, got, 1)
	assert.Equal(t, roadgraph.EdgeID(4), got[0].ID)
	assert.Zero(t, snapper.calls, "snap only runs when nothing was hit")

	got = s.EdgesForPoint(geo.Point{X: 50, Y: 40}, snapper)
	require.Len(t, got, 1)
	assert.Equal(t, roadgraph.EdgeID(9), got[0].ID)

	assert.Empty(t, s.EdgesForPoint(geo.Point{X: 50, Y: 40}, nil))
	assert.Empty(t, s.EdgesForPoint(geo.Point{X: 50, Y: 40}, &fixedSnapper{}))
}

func TestClearShapesKeepsCapacity(t *testing.T) {
	s := New()
	r := &roadgraph.Relation{ID: 1}
	s.Shape(r, geo.Rect{Max: geo.Point{X: 10, Y: 10}})
	require.Equal(t, 1, s.ShapeCount(roadgraph.KindRelation))
	before := cap(s.shapes.byKind[roadgraph.KindRelation])

	s.ClearShapes()
	assert.Zero(t, s.ShapeCount(roadgraph.KindRelation))
	assert.Equal(t, before, cap(s.shapes.byKind[roadgraph.KindRelation]))
	assert.Empty(t, s.RelationsForPoint(geo.Point{X: 5, Y: 5}))

	_, ok := s.ShapeOf(r)
	assert.False(t, ok)
}

func TestShapeOf(t *testing.T) {
	s := New()
	sp := &roadgraph.ShapePoint{Edge: 3, Index: 2}
	circle := geo.Circle{Center: geo.Point{X: 1, Y: 1}, Radius: 2}
	s.Shape(sp, circle)

	got, ok := s.ShapeOf(&roadgraph.ShapePoint{Edge: 3, Index: 2})
	require.True(t, ok)
	assert.Equal(t, circle, got)

	hits := s.ShapePointsForPoint(geo.Point{X: 1, Y: 2})
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Index)
}
