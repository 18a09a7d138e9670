package visible

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/roadgraph/roadgraphtest"
	"github.com/ha1tch/roadview/pkg/selection"
	"github.com/ha1tch/roadview/pkg/zoom"
)

func cityFrame() Frame {
	return Frame{Scale: zoom.City, MetersPerPixel: 1}
}

func ids(edges []*roadgraph.Edge) []roadgraph.EdgeID {
	out := make([]roadgraph.EdgeID, len(edges))
	for i, e := range edges {
		out[i] = e.ID
	}
	return out
}

// segments builds n disjoint straight edges of the given type and length.
func segments(b *roadgraphtest.Builder, firstID int64, n int, t roadgraph.RoadType, length float64) {
	for i := 0; i < n; i++ {
		id := firstID + int64(i)
		y := float64(id) * 10
		b.Vertex(2*id, 0, y)
		b.Vertex(2*id+1, length, y)
		b.Edge(id, 2*id, 2*id+1, t, "")
	}
}

func TestShortEdgeDroppedUnlessNeighboursShort(t *testing.T) {
	b := roadgraphtest.New(t, "chain")
	b.Vertex(1, 0, 0)
	b.Vertex(2, 2, 0)
	b.Vertex(3, 102, 0)
	b.Vertex(4, 104, 0)
	b.Edge(1, 1, 2, roadgraph.LocalRoad, "")
	b.Edge(2, 2, 3, roadgraph.LocalRoad, "")
	b.Edge(3, 3, 4, roadgraph.LocalRoad, "")
	g := b.Build()

	c := New(g, cityFrame(), nil, DefaultConfig(), nil)
	assert.Equal(t, []roadgraph.EdgeID{2}, ids(c.Edges(Unselected)))
}

func TestShortRunsAreKept(t *testing.T) {
	b := roadgraphtest.New(t, "short run")
	for i := int64(1); i <= 5; i++ {
		b.Vertex(i, float64(i)*2, 0)
	}
	for i := int64(1); i <= 4; i++ {
		b.TwoWay(i, i, i+1, roadgraph.LocalRoad, "")
	}
	g := b.Build()

	c := New(g, cityFrame(), nil, DefaultConfig(), nil)
	assert.Equal(t, []roadgraph.EdgeID{2, 3}, ids(c.Edges(Unselected)),
		"the dangling ends of the run count as long neighbours")
}

func TestRelationsPurposeSkipsLengthFilter(t *testing.T) {
	b := roadgraphtest.New(t, "tiny edge")
	b.Vertex(1, 0, 0)
	b.Vertex(2, 1, 0)
	b.Edge(1, 1, 2, roadgraph.LocalRoad, "")
	g := b.Build()

	f := cityFrame()
	assert.Empty(t, New(g, f, nil, DefaultConfig(), nil).Edges(Inactive))
	f.Purpose = ForRelations
	assert.Len(t, New(g, f, nil, DefaultConfig(), nil).Edges(Inactive), 1)
}

func TestImportancePredicate(t *testing.T) {
	g := roadgraphtest.Town(t)
	f := cityFrame()
	f.Importance = func(rt roadgraph.RoadType) bool { return rt == roadgraph.Throughway }

	c := New(g, f, nil, DefaultConfig(), nil)
	assert.Equal(t, []roadgraph.EdgeID{3, 4}, ids(c.Edges(Unselected)))
}

func TestCoarseScaleKeepsFreewaysOnly(t *testing.T) {
	g := roadgraphtest.Town(t)
	f := cityFrame()
	f.Scale = zoom.State

	c := New(g, f, nil, DefaultConfig(), nil)
	assert.Equal(t, []roadgraph.EdgeID{5, 6}, ids(c.Edges(Unselected)))
	assert.True(t, c.Stats().Coarse)
	assert.Zero(t, c.Stats().Rounds)
}

func TestDecimationDropsLeastImportantTiers(t *testing.T) {
	b := roadgraphtest.New(t, "busy")
	segments(b, 1, 1500, roadgraph.LocalRoad, 50)
	segments(b, 2001, 600, roadgraph.Throughway, 50)
	segments(b, 3001, 100, roadgraph.Freeway, 50)
	g := b.Build()

	c := New(g, cityFrame(), nil, DefaultConfig(), nil)
	edges := c.Edges(Unselected)
	assert.Len(t, edges, 700)
	assert.LessOrEqual(t, len(edges), DefaultConfig().Budget)
	for _, e := range edges {
		assert.NotEqual(t, roadgraph.LocalRoad, e.RoadType)
	}
	assert.Equal(t, 1, c.Stats().Rounds)
	assert.Equal(t, 2200, c.Stats().Candidates)
}

func TestDecimationNeverDropsMostImportantTier(t *testing.T) {
	b := roadgraphtest.New(t, "freeways")
	segments(b, 1, 10, roadgraph.LocalRoad, 50)
	segments(b, 101, 5, roadgraph.Freeway, 80)
	segments(b, 201, 10, roadgraph.Freeway, 40)
	g := b.Build()

	cfg := DefaultConfig()
	cfg.Budget = 8
	c := New(g, cityFrame(), nil, cfg, nil)
	edges := c.Edges(Unselected)

	require.Len(t, edges, 8)
	assert.True(t, c.Stats().Truncated)
	long := 0
	for _, e := range edges {
		assert.Equal(t, roadgraph.Freeway, e.RoadType)
		if e.Length() == 80 {
			long++
		}
	}
	assert.Equal(t, 5, long, "truncation keeps the longest edges")
	for i := 1; i < len(edges); i++ {
		assert.Less(t, edges[i-1].Index, edges[i].Index, "store order preserved")
	}
}

func TestUnderBudgetIsUntouched(t *testing.T) {
	g := roadgraphtest.Town(t)
	c := New(g, cityFrame(), nil, DefaultConfig(), nil)
	assert.Len(t, c.Edges(Unselected), 12)
	assert.Zero(t, c.Stats().Rounds)
}

func TestViewportLimitsCandidates(t *testing.T) {
	g := roadgraphtest.Town(t)
	f := cityFrame()
	f.Viewport = geo.Rect{Min: geo.Point{X: 900, Y: 1900}, Max: geo.Point{X: 2100, Y: 2100}}
	c := New(g, f, nil, DefaultConfig(), nil)
	assert.Equal(t, []roadgraph.EdgeID{5, 6, 8, 10, 12}, ids(c.Edges(Unselected)))
}

func TestEdgesBySelectionType(t *testing.T) {
	g := roadgraphtest.Town(t)
	sel := selection.New()

	main, _ := g.Edge(1)
	oak, _ := g.Edge(3)
	pine, _ := g.Edge(5)
	sel.Highlight(oak, pine)

	c := New(g, cityFrame(), sel, DefaultConfig(), nil)
	assert.Empty(t, c.Edges(Selected))
	assert.Equal(t, []roadgraph.EdgeID{3, 5}, ids(c.Edges(Highlighted)))

	sel.Select(main)
	assert.Equal(t, []roadgraph.EdgeID{1, -1}, ids(c.Edges(Selected)))
	unselected := ids(c.Edges(Unselected))
	assert.Len(t, unselected, 13)
	assert.Contains(t, unselected, roadgraph.EdgeID(-1))
	assert.Len(t, c.Edges(Inactive), 12)

	reverse, _ := g.Edge(-1)
	sel.Select(reverse)
	unselected = ids(c.Edges(Unselected))
	assert.Len(t, unselected, 12, "the forward companion is already in the set")

	sel.Select(pine)
	assert.Equal(t, []roadgraph.EdgeID{5}, ids(c.Edges(Selected)), "one way edges have no companion")
	assert.Len(t, c.Edges(Unselected), 12)
}

func TestUnknownSelectionTypePanics(t *testing.T) {
	g := roadgraphtest.Town(t)
	c := New(g, cityFrame(), nil, DefaultConfig(), nil)
	assert.Panics(t, func() { c.Edges(SelectionType(42)) })
}
