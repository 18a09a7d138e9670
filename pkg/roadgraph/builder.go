package roadgraph

import (
	"fmt"
	"math"

	"golang.org/x/text/language"

	"github.com/ha1tch/roadview/pkg/geo"
)

// Builder assembles a Memory graph. It is not safe for concurrent use and
// becomes frozen once Build is called.
type Builder struct {
	g      *Memory
	frozen bool
}

// NewBuilder creates a builder for a graph with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{g: &Memory{
		name:         name,
		locale:       language.AmericanEnglish,
		edges:        make(map[EdgeID]*Edge),
		vertices:     make(map[VertexID]*Vertex),
		nodes:        make(map[NodeID]*Vertex),
		ways:         make(map[WayID][]*Edge),
		mapIDs:       make(map[MapEdgeIdentifier]*Edge),
		relations:    make(map[RelationID]*Relation),
		osmRelations: make(map[OSMRelationID]*Relation),
		places:       make(map[PlaceID]*Place),
		in:           make(map[VertexID][]*Edge),
		out:          make(map[VertexID][]*Edge),
	}}
}

// World marks the graph as the synthetic world graph.
func (b *Builder) World() *Builder {
	b.g.world = true
	return b
}

// Locale sets the locale used for road name standardization.
func (b *Builder) Locale(tag language.Tag) *Builder {
	b.g.locale = tag
	return b
}

// AddVertex adds a vertex. The OSM node defaults to the vertex identifier.
func (b *Builder) AddVertex(v Vertex) (*Vertex, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	if v.ID <= 0 {
		return nil, fmt.Errorf("vertex %d: %w", v.ID, ErrInvalidID)
	}
	if _, ok := b.g.vertices[v.ID]; ok {
		return nil, fmt.Errorf("vertex %d: %w", v.ID, ErrDuplicate)
	}
	if v.Node == 0 {
		v.Node = NodeID(v.ID)
	}
	if _, ok := b.g.nodes[v.Node]; ok {
		return nil, fmt.Errorf("node %d: %w", v.Node, ErrDuplicate)
	}
	stored := v
	b.g.vertices[v.ID] = &stored
	b.g.nodes[v.Node] = &stored
	b.g.extend(geo.RectAround(v.Location))
	return &stored, nil
}

// AddEdge adds a forward edge, and its reverse when TwoWay is set.
// Missing shape and node fields are filled from the end vertices.
func (b *Builder) AddEdge(e Edge) (*Edge, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	if e.ID <= 0 {
		return nil, fmt.Errorf("edge %d: %w", e.ID, ErrInvalidID)
	}
	if _, ok := b.g.edges[e.ID]; ok {
		return nil, fmt.Errorf("edge %d: %w", e.ID, ErrDuplicate)
	}
	from, ok := b.g.vertices[e.From]
	if !ok {
		return nil, fmt.Errorf("edge %d from vertex %d: %w", e.ID, e.From, ErrNotFound)
	}
	to, ok := b.g.vertices[e.To]
	if !ok {
		return nil, fmt.Errorf("edge %d to vertex %d: %w", e.ID, e.To, ErrNotFound)
	}
	if len(e.Shape) < 2 {
		e.Shape = geo.Polyline{from.Location, to.Location}
	}
	if e.FromNode == 0 {
		e.FromNode = from.Node
	}
	if e.ToNode == 0 {
		e.ToNode = to.Node
	}
	if e.Way == 0 {
		e.Way = WayID(e.ID)
	}
	e.Index = len(b.g.forward)

	forward := e
	b.g.addDirected(&forward)
	b.g.forward = append(b.g.forward, &forward)
	b.g.ways[forward.Way] = append(b.g.ways[forward.Way], &forward)

	if e.TwoWay {
		reverse := e
		reverse.ID = e.ID.Reversed()
		reverse.From, reverse.To = e.To, e.From
		reverse.FromNode, reverse.ToNode = e.ToNode, e.FromNode
		reverse.Shape = e.Shape.Reversed()
		b.g.addDirected(&reverse)
	}
	return &forward, nil
}

// AddRelation adds a relation. Every member edge must already exist.
func (b *Builder) AddRelation(r Relation) (*Relation, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	if r.ID <= 0 {
		return nil, fmt.Errorf("relation %d: %w", r.ID, ErrInvalidID)
	}
	if _, ok := b.g.relations[r.ID]; ok {
		return nil, fmt.Errorf("relation %d: %w", r.ID, ErrDuplicate)
	}
	if r.Type == "" {
		r.Type = RelationOther
	}
	if r.OSM == 0 {
		r.OSM = OSMRelationID(r.ID)
	}
	if _, ok := b.g.osmRelations[r.OSM]; ok {
		return nil, fmt.Errorf("osm relation %d: %w", r.OSM, ErrDuplicate)
	}
	var bounds geo.Rect
	for _, id := range r.Members {
		e, ok := b.g.edges[id]
		if !ok {
			return nil, fmt.Errorf("relation %d member %d: %w", r.ID, id, ErrNotFound)
		}
		bounds = bounds.Union(e.Bounds())
	}
	if r.Via != 0 {
		v, ok := b.g.vertices[r.Via]
		if !ok {
			return nil, fmt.Errorf("relation %d via %d: %w", r.ID, r.Via, ErrNotFound)
		}
		bounds = bounds.Union(geo.RectAround(v.Location))
	}
	r.bounds = bounds
	stored := r
	b.g.relations[r.ID] = &stored
	b.g.osmRelations[r.OSM] = &stored
	b.g.relationList = append(b.g.relationList, &stored)
	return &stored, nil
}

// AddPlace adds a place.
func (b *Builder) AddPlace(p Place) (*Place, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	if p.ID <= 0 {
		return nil, fmt.Errorf("place %d: %w", p.ID, ErrInvalidID)
	}
	if _, ok := b.g.places[p.ID]; ok {
		return nil, fmt.Errorf("place %d: %w", p.ID, ErrDuplicate)
	}
	if p.Type == "" {
		p.Type = PlaceOther
	}
	stored := p
	b.g.places[p.ID] = &stored
	b.g.placeList = append(b.g.placeList, &stored)
	b.g.extend(geo.RectAround(p.Location))
	return &stored, nil
}

// Build freezes the builder and indexes the graph.
func (b *Builder) Build() (*Memory, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	b.frozen = true
	g := b.g
	cell := math.Max(g.bounds.Width(), g.bounds.Height()) / gridCells
	g.index = newGridIndex(g.bounds, math.Max(cell, minCellSize))
	for _, e := range g.forward {
		g.index.insert(e)
	}
	return g, nil
}

func (g *Memory) addDirected(e *Edge) {
	g.edges[e.ID] = e
	g.mapIDs[e.MapIdentifier()] = e
	g.out[e.From] = append(g.out[e.From], e)
	g.in[e.To] = append(g.in[e.To], e)
	g.extend(e.Bounds())
}
