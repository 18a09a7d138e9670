package roadgraph

import (
	"context"

	"golang.org/x/text/language"

	"github.com/ha1tch/roadview/pkg/geo"
)

// Graph is the read-only query surface the viewer consumes.
// Lookups return ok=false rather than an error when an entity is absent.
type Graph interface {
	Name() string
	Bounds() geo.Rect
	Locale() language.Tag

	// IsComposite reports whether the graph merges several sources.
	IsComposite() bool
	// IsWorld reports whether this is the synthetic world graph.
	IsWorld() bool

	EdgeCount() int
	VertexCount() int
	RelationCount() int
	PlaceCount() int

	Edge(id EdgeID) (*Edge, bool)
	EdgeAtIndex(index int) (*Edge, bool)
	EdgeForMapIdentifier(id MapEdgeIdentifier) (*Edge, bool)
	EdgesForWay(way WayID) []*Edge
	Vertex(id VertexID) (*Vertex, bool)
	VertexForNode(node NodeID) (*Vertex, bool)
	Relation(id RelationID) (*Relation, bool)
	RelationForOSM(id OSMRelationID) (*Relation, bool)
	Place(id PlaceID) (*Place, bool)

	// Contains reports whether the entity belongs to this graph.
	Contains(e Entity) bool

	// ForwardEdges returns forward edges whose bounds intersect within.
	// An empty rectangle means the whole graph.
	ForwardEdges(within geo.Rect) []*Edge
	Relations(within geo.Rect) []*Relation
	Places(within geo.Rect) []*Place

	InEdges(v VertexID) []*Edge
	OutEdges(v VertexID) []*Edge

	// SnapEdge returns the forward edge nearest to at within radius.
	SnapEdge(at geo.Point, radius float64) (*Edge, bool)

	// Route finds a path between two vertices. It is the only blocking
	// operation and honours ctx and the step limit.
	Route(ctx context.Context, from, to VertexID, limit RouteLimit) (Route, error)
}

// RouteLimit bounds the work a route search may do.
type RouteLimit struct {
	MaxSteps int
}

// DefaultRouteLimit returns the limit used by the viewer.
func DefaultRouteLimit() RouteLimit {
	return RouteLimit{MaxSteps: 250_000}
}

// StandardizeMode selects how much of a road name survives standardization.
type StandardizeMode int

const (
	// BaseName strips type suffixes ("Main Street" -> "main").
	BaseName StandardizeMode = iota
	// FullName expands abbreviations ("Main St" -> "main street").
	FullName
)

// Standardizer canonicalizes road names for a locale.
type Standardizer interface {
	Standardize(locale language.Tag, name string, mode StandardizeMode) string
}
