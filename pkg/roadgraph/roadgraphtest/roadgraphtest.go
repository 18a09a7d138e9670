// Package roadgraphtest builds small road graphs for tests.
package roadgraphtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
)

// Builder wraps roadgraph.Builder and fails the test on any error.
type Builder struct {
	t testing.TB
	b *roadgraph.Builder
}

// New starts a graph with planar coordinates in map units.
func New(t testing.TB, name string) *Builder {
	t.Helper()
	return &Builder{t: t, b: roadgraph.NewBuilder(name)}
}

// Raw exposes the wrapped builder for options such as World.
func (b *Builder) Raw() *roadgraph.Builder { return b.b }

// Vertex adds a vertex whose OSM node equals its identifier.
func (b *Builder) Vertex(id int64, x, y float64) *roadgraph.Vertex {
	return b.VertexNode(id, id, x, y)
}

// VertexNode adds a vertex with an explicit OSM node.
func (b *Builder) VertexNode(id, node int64, x, y float64) *roadgraph.Vertex {
	b.t.Helper()
	v, err := b.b.AddVertex(roadgraph.Vertex{
		ID:       roadgraph.VertexID(id),
		Node:     roadgraph.NodeID(node),
		Location: geo.Point{X: x, Y: y},
	})
	require.NoError(b.t, err)
	return v
}

// Edge adds a one-way straight edge.
func (b *Builder) Edge(id, from, to int64, roadType roadgraph.RoadType, name string) *roadgraph.Edge {
	return b.AddEdge(roadgraph.Edge{
		ID:       roadgraph.EdgeID(id),
		From:     roadgraph.VertexID(from),
		To:       roadgraph.VertexID(to),
		RoadType: roadType,
		Name:     name,
	})
}

// TwoWay adds a two-way straight edge.
func (b *Builder) TwoWay(id, from, to int64, roadType roadgraph.RoadType, name string) *roadgraph.Edge {
	return b.AddEdge(roadgraph.Edge{
		ID:       roadgraph.EdgeID(id),
		From:     roadgraph.VertexID(from),
		To:       roadgraph.VertexID(to),
		RoadType: roadType,
		Name:     name,
		TwoWay:   true,
	})
}

// AddEdge adds a fully specified edge.
func (b *Builder) AddEdge(e roadgraph.Edge) *roadgraph.Edge {
	b.t.Helper()
	stored, err := b.b.AddEdge(e)
	require.NoError(b.t, err)
	return stored
}

// Relation adds a relation.
func (b *Builder) Relation(r roadgraph.Relation) *roadgraph.Relation {
	b.t.Helper()
	stored, err := b.b.AddRelation(r)
	require.NoError(b.t, err)
	return stored
}

// Place adds a place.
func (b *Builder) Place(p roadgraph.Place) *roadgraph.Place {
	b.t.Helper()
	stored, err := b.b.AddPlace(p)
	require.NoError(b.t, err)
	return stored
}

// Build finishes the graph.
func (b *Builder) Build() *roadgraph.Memory {
	b.t.Helper()
	g, err := b.b.Build()
	require.NoError(b.t, err)
	return g
}

// Town returns a three by three street grid with 500 unit blocks,
// one turn restriction, one bus route and two places.
//
//	7 --5--> 8 --6--> 9     Pine Road (freeway, one way)
//	|        |        |
//	8        10       12
//	|        |        |
//	4 --3--- 5 --4--- 6     Oak Avenue (throughway)
//	|        |        |
//	7        9        11
//	|        |        |
//	1 --1--- 2 --2--- 3     Main Street (local)
func Town(t testing.TB) *roadgraph.Memory {
	t.Helper()
	b := New(t, "town")
	id := int64(1)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			b.Vertex(id, 1000+float64(col)*500, 1000+float64(row)*500)
			id++
		}
	}

	b.TwoWay(1, 1, 2, roadgraph.LocalRoad, "Main Street")
	b.TwoWay(2, 2, 3, roadgraph.LocalRoad, "Main Street")
	b.AddEdge(roadgraph.Edge{ID: 3, From: 4, To: 5, RoadType: roadgraph.Throughway, Name: "Oak Avenue",
		TwoWay: true, Tags: map[string]string{"highway": "primary", "surface": "asphalt"}})
	b.AddEdge(roadgraph.Edge{ID: 4, From: 5, To: 6, RoadType: roadgraph.Throughway, Name: "Oak Avenue",
		TwoWay: true, Tags: map[string]string{"highway": "Primary"}})
	b.Edge(5, 7, 8, roadgraph.Freeway, "Pine Road")
	b.Edge(6, 8, 9, roadgraph.Freeway, "Pine Road")
	b.TwoWay(7, 1, 4, roadgraph.LocalRoad, "First St")
	b.TwoWay(8, 4, 7, roadgraph.LocalRoad, "First St")
	b.TwoWay(9, 2, 5, roadgraph.LocalRoad, "Second St")
	b.TwoWay(10, 5, 8, roadgraph.LocalRoad, "Second St")
	b.TwoWay(11, 3, 6, roadgraph.LocalRoad, "Third St")
	b.TwoWay(12, 6, 9, roadgraph.LocalRoad, "Third St")

	b.Relation(roadgraph.Relation{ID: 1, OSM: 9001, Type: roadgraph.RelationRestriction,
		Restriction: "no_left_turn", Members: []roadgraph.EdgeID{3, -9}, Via: 5})
	b.Relation(roadgraph.Relation{ID: 2, OSM: 9002, Type: roadgraph.RelationRoute,
		Name: "Bus 7", Members: []roadgraph.EdgeID{1, 2}})

	b.Place(roadgraph.Place{ID: 1, Name: "Springfield", Type: roadgraph.PlaceCity,
		Location: geo.Point{X: 1500, Y: 1500}, Population: 120000})
	b.Place(roadgraph.Place{ID: 2, Name: "Shelbyville", Type: roadgraph.PlaceTown,
		Location: geo.Point{X: 2000, Y: 2000}, Population: 8000})
	return b.Build()
}
