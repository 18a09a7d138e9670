package roadgraph

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"golang.org/x/text/language"

	"github.com/ha1tch/roadview/pkg/geo"
)

// Memory is an in-memory Graph. Create one with NewBuilder.
type Memory struct {
	name   string
	world  bool
	locale language.Tag

	bounds    geo.Rect
	hasBounds bool

	edges   map[EdgeID]*Edge // both directions
	forward []*Edge          // edge store order
	ways    map[WayID][]*Edge
	mapIDs  map[MapEdgeIdentifier]*Edge

	vertices map[VertexID]*Vertex
	nodes    map[NodeID]*Vertex
	in       map[VertexID][]*Edge
	out      map[VertexID][]*Edge

	relations    map[RelationID]*Relation
	osmRelations map[OSMRelationID]*Relation
	relationList []*Relation

	places    map[PlaceID]*Place
	placeList []*Place

	index *gridIndex
}

var _ Graph = (*Memory)(nil)

func (g *Memory) extend(r geo.Rect) {
	if !g.hasBounds {
		g.bounds = r
		g.hasBounds = true
		return
	}
	g.bounds = geo.RectAround(g.bounds.Min, g.bounds.Max, r.Min, r.Max)
}

func (g *Memory) Name() string         { return g.name }
func (g *Memory) Bounds() geo.Rect     { return g.bounds }
func (g *Memory) Locale() language.Tag { return g.locale }
func (g *Memory) IsComposite() bool    { return false }
func (g *Memory) IsWorld() bool        { return g.world }

func (g *Memory) EdgeCount() int     { return len(g.forward) }
func (g *Memory) VertexCount() int   { return len(g.vertices) }
func (g *Memory) RelationCount() int { return len(g.relationList) }
func (g *Memory) PlaceCount() int    { return len(g.placeList) }

func (g *Memory) Edge(id EdgeID) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

func (g *Memory) EdgeAtIndex(index int) (*Edge, bool) {
	if index < 0 || index >= len(g.forward) {
		return nil, false
	}
	return g.forward[index], true
}

func (g *Memory) EdgeForMapIdentifier(id MapEdgeIdentifier) (*Edge, bool) {
	e, ok := g.mapIDs[id]
	return e, ok
}

func (g *Memory) EdgesForWay(way WayID) []*Edge { return g.ways[way] }

func (g *Memory) Vertex(id VertexID) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

func (g *Memory) VertexForNode(node NodeID) (*Vertex, bool) {
	v, ok := g.nodes[node]
	return v, ok
}

func (g *Memory) Relation(id RelationID) (*Relation, bool) {
	r, ok := g.relations[id]
	return r, ok
}

func (g *Memory) RelationForOSM(id OSMRelationID) (*Relation, bool) {
	r, ok := g.osmRelations[id]
	return r, ok
}

func (g *Memory) Place(id PlaceID) (*Place, bool) {
	p, ok := g.places[id]
	return p, ok
}

// Contains reports whether the entity is stored in this graph.
func (g *Memory) Contains(e Entity) bool {
	if e == nil {
		return false
	}
	switch e.Kind() {
	case KindVertex:
		_, ok := g.vertices[VertexID(e.Identity())]
		return ok
	case KindEdge:
		_, ok := g.edges[EdgeID(e.Identity())]
		return ok
	case KindRelation:
		_, ok := g.relations[RelationID(e.Identity())]
		return ok
	case KindPlace:
		_, ok := g.places[PlaceID(e.Identity())]
		return ok
	case KindShapePoint:
		sp, ok := e.(*ShapePoint)
		if !ok {
			return false
		}
		edge, ok := g.edges[sp.Edge]
		return ok && sp.Index > 0 && sp.Index < len(edge.Shape)-1
	}
	return false
}

func (g *Memory) ForwardEdges(within geo.Rect) []*Edge {
	if within.IsEmpty() {
		out := make([]*Edge, len(g.forward))
		copy(out, g.forward)
		return out
	}
	return g.index.query(within)
}

func (g *Memory) Relations(within geo.Rect) []*Relation {
	var out []*Relation
	for _, r := range g.relationList {
		if within.IsEmpty() || intersectsOrTouches(r.Bounds(), within) {
			out = append(out, r)
		}
	}
	return out
}

func (g *Memory) Places(within geo.Rect) []*Place {
	var out []*Place
	for _, p := range g.placeList {
		if within.IsEmpty() || within.Contains(p.Location) {
			out = append(out, p)
		}
	}
	return out
}

func (g *Memory) InEdges(v VertexID) []*Edge  { return g.in[v] }
func (g *Memory) OutEdges(v VertexID) []*Edge { return g.out[v] }

func (g *Memory) SnapEdge(at geo.Point, radius float64) (*Edge, bool) {
	var best *Edge
	bestDist := math.MaxFloat64
	area := geo.RectAround(at).Expand(radius)
	for _, e := range g.index.query(area) {
		for i := 1; i < len(e.Shape); i++ {
			d := geo.SegmentDistance(at, e.Shape[i-1], e.Shape[i])
			if d <= radius && d < bestDist {
				best, bestDist = e, d
			}
		}
	}
	return best, best != nil
}

// Route runs Dijkstra over edge lengths from one vertex to another.
func (g *Memory) Route(ctx context.Context, from, to VertexID, limit RouteLimit) (Route, error) {
	if _, ok := g.vertices[from]; !ok {
		return nil, fmt.Errorf("route from vertex %d: %w", from, ErrNotFound)
	}
	if _, ok := g.vertices[to]; !ok {
		return nil, fmt.Errorf("route to vertex %d: %w", to, ErrNotFound)
	}
	if from == to {
		return Route{}, nil
	}

	dist := map[VertexID]float64{from: 0}
	prev := make(map[VertexID]*Edge)

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{from, 0})

	steps := 0
	for pq.Len() > 0 {
		steps++
		if limit.MaxSteps > 0 && steps > limit.MaxSteps {
			return nil, ErrRouteLimit
		}
		if steps%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		item := heap.Pop(pq).(*pqItem)
		u := item.vertex
		if u == to {
			break
		}
		if item.dist > dist[u] {
			continue
		}

		for _, e := range g.out[u] {
			newDist := dist[u] + e.Length()
			if d, seen := dist[e.To]; !seen || newDist < d {
				dist[e.To] = newDist
				prev[e.To] = e
				heap.Push(pq, &pqItem{e.To, newDist})
			}
		}
	}

	if _, ok := prev[to]; !ok {
		return nil, fmt.Errorf("vertex %d to %d: %w", from, to, ErrNoRoute)
	}

	var route Route
	for v := to; v != from; {
		e := prev[v]
		route = append(route, e)
		v = e.From
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route, nil
}

// Priority queue implementation for route search
type pqItem struct {
	vertex VertexID
	dist   float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

func intersectsOrTouches(a, b geo.Rect) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X && a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y
}
