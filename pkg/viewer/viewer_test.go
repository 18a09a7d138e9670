package viewer

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ha1tch/roadview/pkg/config"
	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/render"
	"github.com/ha1tch/roadview/pkg/render/svg"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/roadgraph/roadgraphtest"
	"github.com/ha1tch/roadview/pkg/search"
	"github.com/ha1tch/roadview/pkg/view"
)

type fakeBrowser struct{ opened []string }

func (b *fakeBrowser) Open(url string) error {
	b.opened = append(b.opened, url)
	return nil
}

type fixture struct {
	layer   *Layer
	browser *fakeBrowser
	posts   *atomic.Int32
}

func newFixture(t *testing.T, g roadgraph.Graph) *fixture {
	t.Helper()
	m := view.New(g, nil, view.DefaultOptions(), nil)
	b := &fakeBrowser{}
	posts := &atomic.Int32{}
	r := NewRepainter(func() { posts.Add(1) })
	s := search.New(m, b, search.DefaultOptions(), nil)
	l := NewLayer(m, render.NewPipeline(render.DefaultOptions(), nil), s, r, nil)
	return &fixture{layer: l, browser: b, posts: posts}
}

func (f *fixture) paint() {
	f.layer.Paint(context.Background(), svg.New(svg.Options{Width: 1100, Height: 1100}))
}

func (f *fixture) screen(x, y float64) geo.Point {
	return f.layer.Model().ToScreen(geo.Point{X: x, Y: y})
}

func item(t *testing.T, items []PopupItem, label string) PopupItem {
	t.Helper()
	for _, it := range items {
		if it.Label == label {
			return it
		}
	}
	require.Failf(t, "missing popup item", "%q", label)
	return PopupItem{}
}

func labels(items []PopupItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestRepainterCoalesces(t *testing.T) {
	var posts atomic.Int32
	r := NewRepainter(func() { posts.Add(1) })

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			r.Request()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), posts.Load())
	assert.True(t, r.Pending())

	r.Begin()
	assert.False(t, r.Pending())
	r.Request()
	r.Request()
	assert.Equal(t, int32(2), posts.Load())
}

func TestPaintBeginsRepaint(t *testing.T) {
	f := newFixture(t, roadgraphtest.Town(t))
	f.layer.Repainter().Request()
	f.paint()
	assert.False(t, f.layer.Repainter().Pending())
	assert.Equal(t, 12, f.layer.LastStats().Edges)
}

func TestClickPrefersVerticesOverEdges(t *testing.T) {
	f := newFixture(t, roadgraphtest.Town(t))
	f.paint()

	picked := f.layer.Click(f.screen(1500, 1500))
	require.NotNil(t, picked)
	assert.Equal(t, roadgraph.KindVertex, picked.Kind())
	assert.Equal(t, int64(5), picked.Identity())

	f.paint()
	again := f.layer.Click(f.screen(1500, 1500))
	assert.True(t, roadgraph.Same(picked, again), "a single hit does not cycle")
	assert.True(t, f.layer.Repainter().Pending())
}

func TestClickCyclesEdgeDirections(t *testing.T) {
	f := newFixture(t, roadgraphtest.Town(t))
	at := func() geo.Point { return f.screen(1250, 1000) }

	f.paint()
	first := f.layer.Click(at())
	require.NotNil(t, first)
	assert.Equal(t, int64(1), first.Identity())

	f.paint()
	second := f.layer.Click(at())
	assert.Equal(t, int64(1), second.Identity(), "the reverse joins the stack")

	f.paint()
	third := f.layer.Click(at())
	assert.Equal(t, int64(-1), third.Identity())
}

func TestClickEmptySpaceClears(t *testing.T) {
	f := newFixture(t, roadgraphtest.Town(t))
	f.paint()
	f.layer.Click(f.screen(1500, 1500))
	require.NotNil(t, f.layer.Model().Selection().Selected())

	f.paint()
	assert.Nil(t, f.layer.Click(geo.Point{X: -5000, Y: -5000}))
	assert.Nil(t, f.layer.Model().Selection().Selected())
}

func TestNextPreviousOverStackedVertices(t *testing.T) {
	b := roadgraphtest.New(t, "stacked")
	b.Vertex(1, 0, 0)
	b.Vertex(2, 0, 0)
	b.Vertex(3, 100, 0)
	b.Edge(1, 1, 3, roadgraph.LocalRoad, "")
	b.Edge(2, 2, 3, roadgraph.LocalRoad, "")
	f := newFixture(t, b.Build())
	f.paint()

	picked := f.layer.Click(f.screen(0, 0))
	require.NotNil(t, picked)
	assert.Equal(t, int64(1), picked.Identity())

	next, ok := f.layer.Next()
	require.True(t, ok)
	assert.Equal(t, int64(2), next.Identity())
	next, _ = f.layer.Next()
	assert.Equal(t, int64(1), next.Identity())
	prev, _ := f.layer.Previous()
	assert.Equal(t, int64(2), prev.Identity())
}

func TestNextWithoutStack(t *testing.T) {
	f := newFixture(t, roadgraphtest.Town(t))
	_, ok := f.layer.Next()
	assert.False(t, ok)
	_, ok = f.layer.Previous()
	assert.False(t, ok)
	assert.Equal(t, int32(0), f.posts.Load())
}

func TestPopupRoute(t *testing.T) {
	f := newFixture(t, roadgraphtest.Town(t))
	f.paint()
	ctx := context.Background()

	items := f.layer.Popup(f.screen(1000, 1000))
	assert.NotContains(t, labels(items), "Route to vertex 1")
	fb := item(t, items, "Route from vertex 1").Action(ctx)
	assert.Equal(t, "route starts at vertex 1", fb.Status())
	require.NotNil(t, f.layer.RouteFrom())

	items = f.layer.Popup(f.screen(2000, 2000))
	fb = item(t, items, "Route to vertex 9").Action(ctx)
	assert.Equal(t, "route of 4 edges, 2000 m", fb.Status())
	assert.Len(t, f.layer.Model().Selection().Highlighted(), 4)
	assert.Nil(t, f.layer.RouteFrom())
}

func TestPopupRouteLimit(t *testing.T) {
	f := newFixture(t, roadgraphtest.Town(t))
	f.layer.SetRouteLimit(roadgraph.RouteLimit{MaxSteps: 1})
	f.paint()
	ctx := context.Background()

	item(t, f.layer.Popup(f.screen(1000, 1000)), "Route from vertex 1").Action(ctx)
	fb := item(t, f.layer.Popup(f.screen(2000, 2000)), "Route to vertex 9").Action(ctx)
	assert.Equal(t, "no route", fb.Status())
	assert.Contains(t, fb.Text(), roadgraph.ErrRouteLimit.Error())
	assert.Empty(t, f.layer.Model().Selection().Highlighted())
}

func TestPopupSnapsToNearestEnd(t *testing.T) {
	f := newFixture(t, roadgraphtest.Town(t))
	f.paint()
	items := f.layer.Popup(f.screen(1100, 1000))
	assert.Contains(t, labels(items), "Route from vertex 1")
}

func TestPopupSelectionItems(t *testing.T) {
	f := newFixture(t, roadgraphtest.Town(t))
	f.paint()
	ctx := context.Background()

	base := labels(f.layer.Popup(geo.Point{X: -5000, Y: -5000}))
	assert.Equal(t, []string{"Show whole graph", "Toggle debug overlay"}, base)

	f.layer.Query(ctx, "e4")
	f.paint()
	items := f.layer.Popup(geo.Point{X: -5000, Y: -5000})
	assert.Equal(t, []string{"Open way in browser", "Zoom to selection", "Show whole graph", "Toggle debug overlay"}, labels(items))

	fb := item(t, items, "Open way in browser").Action(ctx)
	assert.Equal(t, "opened way 4", fb.Status())
	assert.Equal(t, []string{"https://www.openstreetmap.org/way/4"}, f.browser.opened)

	f.layer.Query(ctx, "Oak Avenue")
	items = f.layer.Popup(geo.Point{X: -5000, Y: -5000})
	fb = item(t, items, "Clear highlights").Action(ctx)
	assert.Equal(t, "cleared", fb.Status())
	assert.Empty(t, f.layer.Model().Selection().Highlighted())

	fb = item(t, items, "Zoom to selection").Action(ctx)
	assert.Equal(t, "zoomed to selection", fb.Status())
	assert.True(t, f.layer.Model().Viewport().Contains(geo.Point{X: 1750, Y: 1500}))

	assert.Equal(t, "debug on", item(t, items, "Toggle debug overlay").Action(ctx).Status())
	assert.True(t, f.layer.Model().Debug())
}

func TestOpenAppliesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Roads.HiddenTypes = []string{"freeway"}
	cfg.Labels.MaxLabels = 1

	posts := 0
	l, err := Open(roadgraphtest.Town(t), cfg, nil, func() { posts++ }, "1.2.3", nil)
	require.NoError(t, err)
	assert.False(t, l.Model().RoadTypeVisible(roadgraph.Freeway))

	fb := l.Query(context.Background(), "version")
	assert.Equal(t, "roadview 1.2.3", fb.Status())
	assert.Equal(t, 1, posts)

	stats := l.Paint(context.Background(), svg.New(svg.Options{Width: 1100, Height: 1100}))
	assert.Equal(t, 10, stats.Edges)
	assert.Equal(t, 1, stats.Labels)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Places.HiddenTypes = []string{"metropolis"}
	_, err := Open(roadgraphtest.Town(t), cfg, nil, nil, "dev", nil)
	assert.ErrorIs(t, err, config.ErrInvalidPlaceType)
}
