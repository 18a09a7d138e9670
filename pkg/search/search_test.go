package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/roadgraph/roadgraphtest"
	"github.com/ha1tch/roadview/pkg/view"
)

type fakeBrowser struct {
	opened []string
	err    error
}

func (b *fakeBrowser) Open(url string) error {
	b.opened = append(b.opened, url)
	return b.err
}

func newSearcher(t *testing.T, g roadgraph.Graph) (*Searcher, *view.Model, *fakeBrowser) {
	t.Helper()
	m := view.New(g, nil, view.DefaultOptions(), nil)
	b := &fakeBrowser{}
	return New(m, b, DefaultOptions(), nil), m, b
}

func query(s *Searcher, text string) UserFeedback {
	return s.Query(context.Background(), text)
}

func highlightedIDs(m *view.Model) []roadgraph.EdgeID {
	var ids []roadgraph.EdgeID
	for _, e := range m.Selection().Highlighted() {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestMatcherOrder(t *testing.T) {
	s, _, _ := newSearcher(t, roadgraphtest.Town(t))
	assert.Equal(t, []string{
		"command", "tag", "rectangle", "polyline", "latlng",
		"route", "map-edge", "identifier", "road-name",
	}, s.Matchers())
}

func TestRectangleBeatsRoadName(t *testing.T) {
	const literal = "10,20:30,40"
	b := roadgraphtest.New(t, "odd names")
	b.Vertex(1, 0, 0)
	b.Vertex(2, 100, 0)
	b.Edge(1, 1, 2, roadgraph.LocalRoad, literal)
	s, m, _ := newSearcher(t, b.Build())

	names := &roadNameMatcher{target: m, std: roadgraph.SuffixStandardizer{}}
	_, ok := names.Match(literal)
	require.True(t, ok, "the literal is also a road name")

	fb := query(s, literal)
	assert.Equal(t, "rectangle 10.000000,20.000000:30.000000,40.000000", fb.Status())
	assert.Empty(t, m.Selection().Highlighted())

	want := geo.RectAround(
		geo.FromLatLng(geo.LatLng{Lat: 10, Lng: 20}),
		geo.FromLatLng(geo.LatLng{Lat: 30, Lng: 40}),
	)
	assert.InDelta(t, want.Center().X, m.Viewport().Center().X, 1e-6)
	assert.InDelta(t, want.Center().Y, m.Viewport().Center().Y, 1e-6)
}

func TestIdentifierAmbiguity(t *testing.T) {
	b := roadgraphtest.New(t, "ids")
	b.VertexNode(500, 900, 0, 0)
	b.VertexNode(600, 500, 100, 0)
	b.Edge(1, 500, 600, roadgraph.LocalRoad, "Short Road")
	s, m, _ := newSearcher(t, b.Build())

	fb := query(s, "500")
	assert.Equal(t, "500 is ambiguous", fb.Status())
	assert.Contains(t, fb.Text(), "vertex 500, node 500")
	assert.Contains(t, fb.Text(), "v500, n500")
	assert.Nil(t, m.Selection().Selected())

	query(s, "v500")
	v, ok := m.Selection().SelectedVertex()
	require.True(t, ok)
	assert.Equal(t, roadgraph.VertexID(500), v.ID)

	query(s, "n500")
	v, ok = m.Selection().SelectedVertex()
	require.True(t, ok)
	assert.Equal(t, roadgraph.VertexID(600), v.ID, "node 500 belongs to vertex 600")

	query(s, "vertex 500L")
	v, _ = m.Selection().SelectedVertex()
	assert.Equal(t, roadgraph.VertexID(500), v.ID)
}

func TestIdentifierSpaces(t *testing.T) {
	tests := []struct {
		query  string
		status string
	}{
		{"e3", "edge 3"},
		{"edge -3", "edge -3"},
		{"r9001", "relation 1"},
		{"relation 9002", "relation 2"},
		{"w4", "way 4: 1 edges"},
		{"0", "edge 1 at index 0"},
		{"3-4-5", "edge 3"},
		{"3-5-4", "edge -3"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			s, _, _ := newSearcher(t, roadgraphtest.Town(t))
			assert.Equal(t, tt.status, query(s, tt.query).Status())
		})
	}
}

func TestUnknownPrefixedIdentifierFallsThrough(t *testing.T) {
	s, m, _ := newSearcher(t, roadgraphtest.Town(t))
	fb := query(s, "v99")
	assert.Equal(t, "couldn't find 'v99'", fb.Status())
	assert.Contains(t, fb.Text(), "Commands:")
	assert.Nil(t, m.Selection().Selected())
}

func TestUnprefixedInSeveralSpaces(t *testing.T) {
	s, _, _ := newSearcher(t, roadgraphtest.Town(t))
	fb := query(s, "5")
	assert.Equal(t, "5 is ambiguous", fb.Status())
	assert.Contains(t, fb.Text(), "edge 5, vertex 5, node 5, way 5")
}

func TestClearKeepsSelection(t *testing.T) {
	s, m, _ := newSearcher(t, roadgraphtest.Town(t))
	sel := m.Selection()
	v, _ := m.Graph().Vertex(5)
	sel.Select(v)
	e, _ := m.Graph().Edge(1)
	sel.Highlight(e)
	sel.AddPolyline(geo.Polyline{{X: 1, Y: 1}})

	assert.Equal(t, "cleared", query(s, "clear").Status())
	assert.Empty(t, sel.Highlighted())
	assert.Empty(t, sel.Polylines())
	got, ok := sel.SelectedVertex()
	require.True(t, ok)
	assert.Equal(t, v, got)
}

func TestTagQuery(t *testing.T) {
	s, m, _ := newSearcher(t, roadgraphtest.Town(t))

	assert.Equal(t, "2 edges tagged highway=PRIMARY", query(s, "tag highway=PRIMARY").Status())
	assert.Equal(t, []roadgraph.EdgeID{3, 4}, highlightedIDs(m))

	assert.Equal(t, "no edges tagged highway=motorway", query(s, "tag highway=motorway").Status())
	assert.Equal(t, "usage: tag key=value", query(s, "tag surface").Status())

	limited := New(m, nil, Options{TagLimit: 1}, nil)
	assert.Equal(t, "1 edges tagged highway=primary (first 1)", query(limited, "TAG highway = primary").Status())
	assert.Equal(t, []roadgraph.EdgeID{3}, highlightedIDs(m))
}

func TestRouteLiteral(t *testing.T) {
	s, m, _ := newSearcher(t, roadgraphtest.Town(t))
	assert.Equal(t, "route of 2 edges, 1000 m", query(s, "1:2").Status())
	assert.Equal(t, []roadgraph.EdgeID{1, 2}, highlightedIDs(m))

	assert.Equal(t, "couldn't find '1:99'", query(s, "1:99").Status())
}

func TestPolylineAndLocation(t *testing.T) {
	s, m, _ := newSearcher(t, roadgraphtest.Town(t))

	assert.Equal(t, "point 45.000000,9.000000", query(s, "45,9").Status())
	require.Len(t, m.Selection().Polylines(), 1)

	fb := query(s, "45,9 : 45.1,9.1 : 45.2,9.2")
	assert.Contains(t, fb.Status(), "polyline of 3 points")
	require.Len(t, m.Selection().Polylines(), 2)
	assert.Len(t, m.Selection().Polylines()[1], 3)

	assert.Equal(t, "location 45.000000,9.000000", query(s, "45 9").Status())
	assert.Len(t, m.Selection().Polylines(), 2)
	want := geo.FromLatLng(geo.LatLng{Lat: 45, Lng: 9})
	assert.InDelta(t, want.X, m.Viewport().Center().X, 1e-6)

	assert.Equal(t, "couldn't find '95,9'", query(s, "95,9").Status(), "latitude out of range")
}

func TestRoadNameFallback(t *testing.T) {
	s, m, _ := newSearcher(t, roadgraphtest.Town(t))

	fb := query(s, "main st")
	assert.Equal(t, "2 edges named like 'main st'", fb.Status())
	assert.Equal(t, "Main Street", fb.Text())
	assert.Equal(t, []roadgraph.EdgeID{1, 2}, highlightedIDs(m))

	query(s, "OAK")
	assert.Equal(t, []roadgraph.EdgeID{3, 4}, highlightedIDs(m))
}

func TestRoadNameSkipsComposite(t *testing.T) {
	s, _, _ := newSearcher(t, roadgraph.NewComposite(roadgraphtest.Town(t)))
	assert.Equal(t, "couldn't find 'Main Street'", query(s, "Main Street").Status())
}

func TestCommands(t *testing.T) {
	s, m, browser := newSearcher(t, roadgraphtest.Town(t))

	assert.Equal(t, "help", query(s, "HELP").Status())
	assert.Equal(t, helpText, query(s, "help").Text())
	assert.Equal(t, queryHelpText, query(s, "query   help").Text())
	assert.Equal(t, "roadview dev", query(s, "version").Status())

	assert.Equal(t, "debug on", query(s, "debug").Status())
	assert.True(t, m.Debug())
	assert.Equal(t, "debug off", query(s, "debug").Status())

	fb := query(s, "graph")
	assert.Equal(t, "graph town", fb.Status())
	assert.Contains(t, fb.Text(), "edges     12")
	assert.Contains(t, fb.HTML(), "<pre>")

	assert.Equal(t, "1 turn restrictions", query(s, "turns").Status())
	assert.Contains(t, query(s, "turns").Text(), "no_left_turn")

	m.ZoomTo(geo.Rect{Min: geo.Point{X: 50_000, Y: 50_000}, Max: geo.Point{X: 51_000, Y: 51_000}})
	assert.Equal(t, "0 visible turn restrictions", query(s, "visible-turns").Status())
	assert.Equal(t, "reset", query(s, "reset").Status())
	assert.True(t, m.Viewport().Contains(geo.Point{X: 1500, Y: 1500}))
	assert.Equal(t, "1 visible turn restrictions", query(s, "visible-turns").Status())

	assert.Equal(t, "no edge selected", query(s, "open").Status())
	query(s, "e7")
	assert.Equal(t, "opened way 7", query(s, "open").Status())
	assert.Equal(t, []string{"https://www.openstreetmap.org/way/7"}, browser.opened)

	browser.err = errors.New("no display")
	fb = query(s, "open")
	assert.Equal(t, "could not open browser", fb.Status())
	assert.Equal(t, "no display", fb.Text())
}

func TestOpenWithoutBrowser(t *testing.T) {
	m := view.New(roadgraphtest.Town(t), nil, view.DefaultOptions(), nil)
	s := New(m, nil, DefaultOptions(), nil)
	query(s, "e2")
	fb := query(s, "open")
	assert.Equal(t, "way 2", fb.Status())
	assert.Equal(t, "https://www.openstreetmap.org/way/2", fb.Text())
}

func TestUnmatchedQueryShowsHelp(t *testing.T) {
	s, _, _ := newSearcher(t, roadgraphtest.Town(t))
	fb := query(s, "zzz")
	assert.Equal(t, "couldn't find 'zzz'", fb.Status())
	assert.Equal(t, "couldn't find 'zzz'\n\n"+helpText, fb.Text())

	assert.Equal(t, helpText, query(s, "   ").Text())
}

func TestFeedbackIsImmutable(t *testing.T) {
	base := Feedback("a")
	changed := base.WithText("t").WithHTML("<b>h</b>").WithStatus("b")
	assert.Equal(t, "a", base.Status())
	assert.Empty(t, base.Text())
	assert.Equal(t, "b", changed.Status())
	assert.Equal(t, "t", changed.Text())
	assert.Equal(t, "<b>h</b>", changed.HTML())
	assert.True(t, UserFeedback{}.IsZero())
	assert.False(t, base.IsZero())
}

func TestMatcherFunc(t *testing.T) {
	var m Matcher = MatcherFunc(func(text string) (Action, bool) {
		return func() UserFeedback { return Feedback(text) }, text == "x"
	})
	a, ok := m.Match("x")
	require.True(t, ok)
	assert.Equal(t, "x", a().Status())
}
