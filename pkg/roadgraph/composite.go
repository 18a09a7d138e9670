package roadgraph

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/language"

	"github.com/ha1tch/roadview/pkg/geo"
)

// Composite presents several graphs as one. Identifiers are assumed to be
// disjoint across parts; lookups return the first part that has a match.
type Composite struct {
	parts []Graph
}

var _ Graph = (*Composite)(nil)

// NewComposite combines the given graphs in order.
func NewComposite(parts ...Graph) *Composite {
	return &Composite{parts: parts}
}

// Parts returns the underlying graphs.
func (c *Composite) Parts() []Graph { return c.parts }

func (c *Composite) Name() string {
	names := make([]string, len(c.parts))
	for i, p := range c.parts {
		names[i] = p.Name()
	}
	return strings.Join(names, "+")
}

func (c *Composite) Bounds() geo.Rect {
	var b geo.Rect
	for _, p := range c.parts {
		b = b.Union(p.Bounds())
	}
	return b
}

func (c *Composite) Locale() language.Tag {
	if len(c.parts) == 0 {
		return language.Und
	}
	return c.parts[0].Locale()
}

func (c *Composite) IsComposite() bool { return true }
func (c *Composite) IsWorld() bool     { return false }

func (c *Composite) sum(count func(Graph) int) int {
	total := 0
	for _, p := range c.parts {
		total += count(p)
	}
	return total
}

func (c *Composite) EdgeCount() int     { return c.sum(Graph.EdgeCount) }
func (c *Composite) VertexCount() int   { return c.sum(Graph.VertexCount) }
func (c *Composite) RelationCount() int { return c.sum(Graph.RelationCount) }
func (c *Composite) PlaceCount() int    { return c.sum(Graph.PlaceCount) }

func (c *Composite) Edge(id EdgeID) (*Edge, bool) {
	for _, p := range c.parts {
		if e, ok := p.Edge(id); ok {
			return e, true
		}
	}
	return nil, false
}

// EdgeAtIndex treats the parts' edge stores as one concatenated store.
func (c *Composite) EdgeAtIndex(index int) (*Edge, bool) {
	for _, p := range c.parts {
		if index < p.EdgeCount() {
			return p.EdgeAtIndex(index)
		}
		index -= p.EdgeCount()
	}
	return nil, false
}

func (c *Composite) EdgeForMapIdentifier(id MapEdgeIdentifier) (*Edge, bool) {
	for _, p := range c.parts {
		if e, ok := p.EdgeForMapIdentifier(id); ok {
			return e, true
		}
	}
	return nil, false
}

func (c *Composite) EdgesForWay(way WayID) []*Edge {
	var out []*Edge
	for _, p := range c.parts {
		out = append(out, p.EdgesForWay(way)...)
	}
	return out
}

func (c *Composite) Vertex(id VertexID) (*Vertex, bool) {
	for _, p := range c.parts {
		if v, ok := p.Vertex(id); ok {
			return v, true
		}
	}
	return nil, false
}

func (c *Composite) VertexForNode(node NodeID) (*Vertex, bool) {
	for _, p := range c.parts {
		if v, ok := p.VertexForNode(node); ok {
			return v, true
		}
	}
	return nil, false
}

func (c *Composite) Relation(id RelationID) (*Relation, bool) {
	for _, p := range c.parts {
		if r, ok := p.Relation(id); ok {
			return r, true
		}
	}
	return nil, false
}

func (c *Composite) RelationForOSM(id OSMRelationID) (*Relation, bool) {
	for _, p := range c.parts {
		if r, ok := p.RelationForOSM(id); ok {
			return r, true
		}
	}
	return nil, false
}

func (c *Composite) Place(id PlaceID) (*Place, bool) {
	for _, p := range c.parts {
		if pl, ok := p.Place(id); ok {
			return pl, true
		}
	}
	return nil, false
}

func (c *Composite) Contains(e Entity) bool {
	for _, p := range c.parts {
		if p.Contains(e) {
			return true
		}
	}
	return false
}

func (c *Composite) ForwardEdges(within geo.Rect) []*Edge {
	var out []*Edge
	for _, p := range c.parts {
		out = append(out, p.ForwardEdges(within)...)
	}
	return out
}

func (c *Composite) Relations(within geo.Rect) []*Relation {
	var out []*Relation
	for _, p := range c.parts {
		out = append(out, p.Relations(within)...)
	}
	return out
}

func (c *Composite) Places(within geo.Rect) []*Place {
	var out []*Place
	for _, p := range c.parts {
		out = append(out, p.Places(within)...)
	}
	return out
}

func (c *Composite) InEdges(v VertexID) []*Edge {
	var out []*Edge
	for _, p := range c.parts {
		out = append(out, p.InEdges(v)...)
	}
	return out
}

func (c *Composite) OutEdges(v VertexID) []*Edge {
	var out []*Edge
	for _, p := range c.parts {
		out = append(out, p.OutEdges(v)...)
	}
	return out
}

func (c *Composite) SnapEdge(at geo.Point, radius float64) (*Edge, bool) {
	var best *Edge
	bestDist := radius
	for _, p := range c.parts {
		e, ok := p.SnapEdge(at, radius)
		if !ok {
			continue
		}
		if d := snapDistance(e, at); best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, best != nil
}

// Route asks each part that holds both vertices. Routes never cross parts.
func (c *Composite) Route(ctx context.Context, from, to VertexID, limit RouteLimit) (Route, error) {
	err := ErrNotFound
	for _, p := range c.parts {
		_, hasFrom := p.Vertex(from)
		_, hasTo := p.Vertex(to)
		if !hasFrom || !hasTo {
			continue
		}
		route, routeErr := p.Route(ctx, from, to, limit)
		if routeErr == nil {
			return route, nil
		}
		if !errors.Is(routeErr, ErrNoRoute) {
			return nil, routeErr
		}
		err = routeErr
	}
	return nil, err
}

func snapDistance(e *Edge, at geo.Point) float64 {
	best := geo.Distance(at, e.Shape[0])
	for i := 1; i < len(e.Shape); i++ {
		if d := geo.SegmentDistance(at, e.Shape[i-1], e.Shape[i]); d < best {
			best = d
		}
	}
	return best
}
