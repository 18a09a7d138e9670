package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/roadgraph/roadgraphtest"
	"github.com/ha1tch/roadview/pkg/zoom"
)

func TestProjectionFlipsY(t *testing.T) {
	vp := geo.Rect{Min: geo.Point{X: 0, Y: 0}, Max: geo.Point{X: 100, Y: 50}}
	p := NewProjection(vp, geo.Point{X: 200, Y: 200})

	assert.Equal(t, 2.0, p.PixelsPerMeter())
	assert.Equal(t, 0.5, p.MetersPerPixel())

	assert.Equal(t, geo.Point{X: 100, Y: 100}, p.ToScreen(geo.Point{X: 50, Y: 25}))
	assert.Equal(t, geo.Point{X: 0, Y: 150}, p.ToScreen(geo.Point{X: 0, Y: 0}))
	assert.Equal(t, geo.Point{X: 200, Y: 50}, p.ToScreen(geo.Point{X: 100, Y: 50}))

	for _, m := range []geo.Point{{X: 3, Y: 7}, {X: -20, Y: 90}} {
		back := p.ToMap(p.ToScreen(m))
		assert.InDelta(t, m.X, back.X, 1e-9)
		assert.InDelta(t, m.Y, back.Y, 1e-9)
	}

	mb := p.MapBounds()
	assert.InDelta(t, 100, mb.Width(), 1e-9)
	assert.InDelta(t, 100, mb.Height(), 1e-9, "the canvas shows more than the viewport vertically")
}

func TestLabels(t *testing.T) {
	var l Labels
	a := geo.Rect{Max: geo.Point{X: 10, Y: 10}}
	assert.True(t, l.Free(a))
	l.Claim(a)
	assert.False(t, l.Free(geo.Rect{Min: geo.Point{X: 5, Y: 5}, Max: geo.Point{X: 15, Y: 15}}))
	assert.True(t, l.Free(geo.Rect{Min: geo.Point{X: 10, Y: 0}, Max: geo.Point{X: 20, Y: 10}}), "touching is not overlapping")
	l.Reset()
	assert.Empty(t, l.Claimed())
	assert.True(t, l.Free(a))
}

func TestZoomTo(t *testing.T) {
	m := New(roadgraphtest.Town(t), nil, DefaultOptions(), nil)

	m.ZoomTo(geo.Rect{Min: geo.Point{X: 0, Y: 0}, Max: geo.Point{X: 1000, Y: 500}})
	vp := m.Viewport()
	assert.InDelta(t, 1100, vp.Width(), 1e-9)
	assert.InDelta(t, 550, vp.Height(), 1e-9)
	assert.Equal(t, geo.Point{X: 500, Y: 250}, vp.Center())

	m.ZoomTo(geo.RectAround(geo.Point{X: 40, Y: 60}))
	vp = m.Viewport()
	assert.InDelta(t, 100, vp.Width(), 1e-9)
	assert.InDelta(t, 100, vp.Height(), 1e-9)
	assert.Equal(t, geo.Point{X: 40, Y: 60}, vp.Center())
	assert.Equal(t, zoom.Street, m.Scale())
}

func TestResetShowsWholeGraph(t *testing.T) {
	g := roadgraphtest.Town(t)
	m := New(g, nil, DefaultOptions(), nil)
	m.ZoomTo(geo.RectAround(geo.Point{}))
	m.Reset()
	assert.Equal(t, g.Bounds().Center(), m.Viewport().Center())
	assert.InDelta(t, 1100, m.Viewport().Width(), 1e-9)
}

func TestBeginFrameClearsFrameState(t *testing.T) {
	m := New(roadgraphtest.Town(t), nil, DefaultOptions(), nil)
	m.Labels().Claim(geo.Rect{Max: geo.Point{X: 1, Y: 1}})
	m.Selection().Shape(&roadgraph.Vertex{ID: 1}, geo.Circle{Radius: 3})

	m.BeginFrame(geo.Point{X: 400, Y: 400})

	assert.Empty(t, m.Labels().Claimed())
	assert.Zero(t, m.Selection().ShapeCount(roadgraph.KindVertex))
	assert.Equal(t, 1, m.Frame())
	require.NotNil(t, m.Visible())
	assert.Len(t, m.Visible().Edges(0), 12)
	assert.Equal(t, zoom.Street, m.Scale())
	assert.Same(t, m.RelationEdges(), m.RelationEdges())
}

func TestRoadTypeFilterFeedsCuller(t *testing.T) {
	m := New(roadgraphtest.Town(t), nil, DefaultOptions(), nil)
	m.SetRoadTypeVisible(roadgraph.LocalRoad, false)
	m.BeginFrame(geo.Point{X: 400, Y: 400})
	assert.Len(t, m.Visible().Edges(0), 4)

	m.SetRoadTypeVisible(roadgraph.LocalRoad, true)
	m.BeginFrame(geo.Point{X: 400, Y: 400})
	assert.Len(t, m.Visible().Edges(0), 12)
}

func TestSnapEdgeUsesScreenPoint(t *testing.T) {
	m := New(roadgraphtest.Town(t), nil, DefaultOptions(), nil)
	m.BeginFrame(geo.Point{X: 1100, Y: 1100})

	// one pixel per metre; Main Street runs along map y=1000
	screen := m.Projection().ToScreen(geo.Point{X: 1250, Y: 1050})
	e, ok := m.SnapEdge(screen)
	require.True(t, ok)
	assert.Equal(t, roadgraph.EdgeID(1), e.ID)

	got := m.Selection().EdgesForPoint(screen, m)
	require.Len(t, got, 1)
	assert.Equal(t, roadgraph.EdgeID(1), got[0].ID)
}

func TestPanAndZoomBy(t *testing.T) {
	m := New(roadgraphtest.Town(t), nil, DefaultOptions(), nil)
	m.BeginFrame(geo.Point{X: 1100, Y: 1100})
	before := m.Viewport().Center()

	m.Pan(10, 20)
	after := m.Viewport().Center()
	assert.InDelta(t, before.X+10, after.X, 1e-9)
	assert.InDelta(t, before.Y-20, after.Y, 1e-9)

	m.ZoomBy(2)
	assert.InDelta(t, 550, m.Viewport().Width(), 1e-9)
}

func TestToggleDebug(t *testing.T) {
	m := New(roadgraphtest.Town(t), nil, DefaultOptions(), nil)
	assert.True(t, m.ToggleDebug())
	assert.True(t, m.Debug())
	assert.False(t, m.ToggleDebug())
	assert.True(t, m.Active())
}
