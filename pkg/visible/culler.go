// Package visible computes the bounded set of edges worth drawing for one
// frame.
package visible

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/zoom"
)

// Purpose says what the culled edges will be used for.
type Purpose int

const (
	// ForEdges culls for drawing edges.
	ForEdges Purpose = iota
	// ForRelations culls for finding relations to draw; short edges stay.
	ForRelations
)

// SelectionType partitions the culled edges for rendering.
type SelectionType int

const (
	Unselected SelectionType = iota
	Inactive
	Highlighted
	Selected
)

var selectionTypeNames = [...]string{"unselected", "inactive", "highlighted", "selected"}

func (t SelectionType) String() string {
	if t < 0 || int(t) >= len(selectionTypeNames) {
		return fmt.Sprintf("SelectionType(%d)", int(t))
	}
	return selectionTypeNames[t]
}

// Importance reports whether edges of a road type are currently shown.
type Importance func(roadgraph.RoadType) bool

// All shows every road type.
func All(roadgraph.RoadType) bool { return true }

// Selection is the part of the selection state the culler reads.
type Selection interface {
	SelectedEdge() (*roadgraph.Edge, bool)
	Highlighted() []*roadgraph.Edge
}

// Config tunes culling.
type Config struct {
	// CoarseScale is the band below which only freeways are considered.
	CoarseScale zoom.Scale
	// Budget caps the edge count once decimation runs.
	Budget int
	// MinEdgePixels is the on-screen length below which an edge is short.
	MinEdgePixels float64
}

// DefaultConfig returns the standard culling parameters.
func DefaultConfig() Config {
	return Config{
		CoarseScale:   zoom.Region,
		Budget:        2000,
		MinEdgePixels: 4,
	}
}

// Frame describes the view being culled.
type Frame struct {
	Viewport       geo.Rect
	Scale          zoom.Scale
	MetersPerPixel float64
	Importance     Importance
	Purpose        Purpose
}

// Stats summarizes what culling did.
type Stats struct {
	Candidates int
	Kept       int
	Rounds     int
	Truncated  bool
	Coarse     bool
}

// Culler holds one frame's culled edges. It is rebuilt on every paint.
type Culler struct {
	graph  roadgraph.Graph
	sel    Selection
	edges  []*roadgraph.Edge
	stats  Stats
	logger *slog.Logger
}

// New culls the graph for one frame. A nil logger uses slog.Default.
func New(g roadgraph.Graph, f Frame, sel Selection, cfg Config, logger *slog.Logger) *Culler {
	if logger == nil {
		logger = slog.Default()
	}
	if f.Importance == nil {
		f.Importance = All
	}
	c := &Culler{graph: g, sel: sel, logger: logger}

	if f.Scale.IsCoarserThan(cfg.CoarseScale) {
		c.edges = c.coarse(f)
		c.stats = Stats{Candidates: len(c.edges), Kept: len(c.edges), Coarse: true}
	} else {
		candidates := c.gather(f, cfg)
		c.stats.Candidates = len(candidates)
		c.edges = c.decimate(candidates, cfg.Budget)
		c.stats.Kept = len(c.edges)
	}

	recordCull(context.Background(), c.stats)
	logger.Debug("culled edges",
		"scale", f.Scale.String(),
		"candidates", c.stats.Candidates,
		"kept", c.stats.Kept,
		"rounds", c.stats.Rounds,
		"coarse", c.stats.Coarse)
	return c
}

func isCoarseType(t roadgraph.RoadType) bool {
	return t == roadgraph.Freeway || t == roadgraph.UrbanHighway
}

func (c *Culler) coarse(f Frame) []*roadgraph.Edge {
	var out []*roadgraph.Edge
	for _, e := range c.graph.ForwardEdges(f.Viewport) {
		if isCoarseType(e.RoadType) && f.Importance(e.RoadType) {
			out = append(out, e)
		}
	}
	return out
}

func (c *Culler) gather(f Frame, cfg Config) []*roadgraph.Edge {
	minLength := cfg.MinEdgePixels * f.MetersPerPixel
	short := func(e *roadgraph.Edge) bool { return e.Length() < minLength }

	var out []*roadgraph.Edge
	for _, e := range c.graph.ForwardEdges(f.Viewport) {
		if !f.Importance(e.RoadType) {
			continue
		}
		if f.Purpose == ForEdges && short(e) &&
			!(c.endIsShort(e, e.From, short) && c.endIsShort(e, e.To, short)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// endIsShort reports whether every other edge at v is short. An end with
// no other edges is not short.
func (c *Culler) endIsShort(e *roadgraph.Edge, v roadgraph.VertexID, short func(*roadgraph.Edge) bool) bool {
	self := forwardID(e.ID)
	neighbours := 0
	for _, list := range [][]*roadgraph.Edge{c.graph.InEdges(v), c.graph.OutEdges(v)} {
		for _, n := range list {
			if forwardID(n.ID) == self {
				continue
			}
			neighbours++
			if !short(n) {
				return false
			}
		}
	}
	return neighbours > 0
}

func forwardID(id roadgraph.EdgeID) roadgraph.EdgeID {
	if id < 0 {
		return -id
	}
	return id
}

// decimate drops whole road type tiers, least important first, until the
// set fits the budget. The most important tier present is never dropped;
// if it alone is over budget the longest of its edges are kept.
func (c *Culler) decimate(edges []*roadgraph.Edge, budget int) []*roadgraph.Edge {
	if budget <= 0 || len(edges) <= budget {
		return edges
	}

	var tiers []roadgraph.RoadType
	for _, e := range edges {
		if !slices.Contains(tiers, e.RoadType) {
			tiers = append(tiers, e.RoadType)
		}
	}
	// least important first
	sort.Slice(tiers, func(i, j int) bool { return tiers[j].IsMoreImportantThan(tiers[i]) })

	for len(edges) > budget && len(tiers) > 1 {
		cut := tiers[0]
		tiers = tiers[1:]
		edges = slices.DeleteFunc(edges, func(e *roadgraph.Edge) bool {
			return !e.RoadType.IsMoreImportantThan(cut)
		})
		c.stats.Rounds++
	}

	if len(edges) > budget {
		sort.SliceStable(edges, func(i, j int) bool { return edges[i].Length() > edges[j].Length() })
		edges = edges[:budget]
		sort.Slice(edges, func(i, j int) bool { return edges[i].Index < edges[j].Index })
		c.stats.Truncated = true
		c.logger.Warn("edge budget exceeded by one tier", "tier", tiers[0].String(), "budget", budget)
	}
	return edges
}

// Stats returns what culling did this frame.
func (c *Culler) Stats() Stats { return c.stats }

// Edges returns the culled edges for the selection type. An unknown
// selection type is a programming error and panics.
func (c *Culler) Edges(t SelectionType) []*roadgraph.Edge {
	switch t {
	case Unselected:
		companion, ok := c.companion()
		if !ok || c.contains(companion) {
			return c.edges
		}
		out := make([]*roadgraph.Edge, 0, len(c.edges)+1)
		out = append(out, c.edges...)
		return append(out, companion)
	case Inactive:
		return c.edges
	case Highlighted:
		if c.sel == nil {
			return nil
		}
		return c.sel.Highlighted()
	case Selected:
		if c.sel == nil {
			return nil
		}
		e, ok := c.sel.SelectedEdge()
		if !ok {
			return nil
		}
		out := []*roadgraph.Edge{e}
		if rev, ok := c.graph.Edge(e.ID.Reversed()); ok {
			out = append(out, rev)
		}
		return out
	default:
		panic(fmt.Sprintf("visible: unknown selection type %d", int(t)))
	}
}

// companion returns the reverse of the selected edge, if it has one.
func (c *Culler) companion() (*roadgraph.Edge, bool) {
	if c.sel == nil {
		return nil, false
	}
	e, ok := c.sel.SelectedEdge()
	if !ok {
		return nil, false
	}
	return c.graph.Edge(e.ID.Reversed())
}

func (c *Culler) contains(e *roadgraph.Edge) bool {
	for _, x := range c.edges {
		if x.ID == e.ID {
			return true
		}
	}
	return false
}

// EdgeSet returns the forward identifiers of the culled edges.
func (c *Culler) EdgeSet() map[roadgraph.EdgeID]bool {
	set := make(map[roadgraph.EdgeID]bool, len(c.edges))
	for _, e := range c.edges {
		set[forwardID(e.ID)] = true
	}
	return set
}
