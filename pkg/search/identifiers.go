package search

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
)

// mapEdgeMatcher handles "way-from-to".
type mapEdgeMatcher struct {
	target Target
}

func (m *mapEdgeMatcher) Match(text string) (Action, bool) {
	id, ok := roadgraph.ParseMapEdgeIdentifier(text)
	if !ok {
		return nil, false
	}
	g := m.target.Graph()
	e, ok := g.EdgeForMapIdentifier(id)
	if !ok || !g.Contains(e) {
		return nil, false
	}
	return func() UserFeedback {
		selectAndZoom(m.target, e, e.Bounds())
		return describeEdge(e)
	}, true
}

// space is one identifier space.
type space int

const (
	spaceEdge space = iota
	spaceVertex
	spaceNode
	spaceWay
	spaceRelation
)

var spaceNames = [...]string{"edge", "vertex", "node", "way", "relation"}
var spacePrefixes = [...]string{"e", "v", "n", "w", "r"}

func (s space) String() string { return spaceNames[s] }

var identifierPattern = regexp.MustCompile(`(?i)^\s*(edge|vertex|node|way|relation|e|v|n|w|r)?\s*(-?\d+)l?\s*$`)

func parseSpace(prefix string) (space, bool) {
	prefix = strings.ToLower(prefix)
	for i := range spaceNames {
		if prefix == spaceNames[i] || prefix == spacePrefixes[i] {
			return space(i), true
		}
	}
	return 0, false
}

// identifierMatcher handles a bare or prefixed integer. A prefix restricts
// the lookup to one space. Without one every space is searched; more than
// one hit is reported as ambiguous, and no hit falls back to the raw edge
// store index.
type identifierMatcher struct {
	target Target
}

func (m *identifierMatcher) Match(text string) (Action, bool) {
	g := identifierPattern.FindStringSubmatch(text)
	if g == nil {
		return nil, false
	}
	n, err := strconv.ParseInt(g[2], 10, 64)
	if err != nil {
		return nil, false
	}

	if g[1] != "" {
		sp, _ := parseSpace(g[1])
		return m.lookup(sp, n)
	}

	var hits []space
	var actions []Action
	for sp := spaceEdge; sp <= spaceRelation; sp++ {
		if a, ok := m.lookup(sp, n); ok {
			hits = append(hits, sp)
			actions = append(actions, a)
		}
	}
	switch len(hits) {
	case 0:
		return m.index(n)
	case 1:
		return actions[0], true
	}
	return func() UserFeedback { return ambiguous(n, hits) }, true
}

// lookup finds n in one space. The entity must belong to the graph.
func (m *identifierMatcher) lookup(sp space, n int64) (Action, bool) {
	g := m.target.Graph()
	switch sp {
	case spaceEdge:
		e, ok := g.Edge(roadgraph.EdgeID(n))
		if !ok || !g.Contains(e) {
			return nil, false
		}
		return func() UserFeedback {
			selectAndZoom(m.target, e, e.Bounds())
			return describeEdge(e)
		}, true
	case spaceVertex, spaceNode:
		var v *roadgraph.Vertex
		var ok bool
		if sp == spaceVertex {
			v, ok = g.Vertex(roadgraph.VertexID(n))
		} else {
			v, ok = g.VertexForNode(roadgraph.NodeID(n))
		}
		if !ok || !g.Contains(v) {
			return nil, false
		}
		return func() UserFeedback {
			selectAndZoom(m.target, v, geo.RectAround(v.Location))
			return describeVertex(v)
		}, true
	case spaceWay:
		var edges []*roadgraph.Edge
		for _, e := range g.EdgesForWay(roadgraph.WayID(n)) {
			if g.Contains(e) {
				edges = append(edges, e)
			}
		}
		if len(edges) == 0 {
			return nil, false
		}
		return func() UserFeedback {
			highlightAndZoom(m.target, edges)
			m.target.Selection().Select(edges[0])
			return Feedback(fmt.Sprintf("way %d: %d edges", n, len(edges)))
		}, true
	case spaceRelation:
		r, ok := g.RelationForOSM(roadgraph.OSMRelationID(n))
		if !ok || !g.Contains(r) {
			return nil, false
		}
		return func() UserFeedback {
			selectAndZoom(m.target, r, r.Bounds())
			return describeRelation(r)
		}, true
	}
	return nil, false
}

// index treats n as a position in the edge store.
func (m *identifierMatcher) index(n int64) (Action, bool) {
	e, ok := m.target.Graph().EdgeAtIndex(int(n))
	if !ok {
		return nil, false
	}
	return func() UserFeedback {
		selectAndZoom(m.target, e, e.Bounds())
		return describeEdge(e).WithStatus(fmt.Sprintf("edge %d at index %d", e.ID, n))
	}, true
}

func ambiguous(n int64, hits []space) UserFeedback {
	names := make([]string, len(hits))
	forms := make([]string, len(hits))
	for i, sp := range hits {
		names[i] = fmt.Sprintf("%s %d", sp, n)
		forms[i] = fmt.Sprintf("%s%d", spacePrefixes[sp], n)
	}
	status := fmt.Sprintf("%d is ambiguous", n)
	text := fmt.Sprintf("%d matches %s; add a prefix: %s",
		n, strings.Join(names, ", "), strings.Join(forms, ", "))
	return Feedback(status).WithText(text)
}

func describeEdge(e *roadgraph.Edge) UserFeedback {
	var sb strings.Builder
	fmt.Fprintf(&sb, "edge %d  %d -> %d\n", e.ID, e.From, e.To)
	if e.Name != "" {
		fmt.Fprintf(&sb, "name  %s\n", e.Name)
	}
	fmt.Fprintf(&sb, "type  %s\n", e.RoadType)
	fmt.Fprintf(&sb, "way   %d (%s)\n", e.Way, e.MapIdentifier())
	fmt.Fprintf(&sb, "length %.0f m", e.Length())
	keys := make([]string, 0, len(e.Tags))
	for k := range e.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "\n%s=%s", k, e.Tags[k])
	}
	return Feedback(e.String()).
		WithText(sb.String()).
		WithHTML("<pre>" + html.EscapeString(sb.String()) + "</pre>")
}

func describeVertex(v *roadgraph.Vertex) UserFeedback {
	text := fmt.Sprintf("vertex %d  node %d  %s", v.ID, v.Node, geo.ToLatLng(v.Location))
	return Feedback(v.String()).WithText(text)
}

func describeRelation(r *roadgraph.Relation) UserFeedback {
	text := fmt.Sprintf("relation %d  osm %d  %s", r.ID, r.OSM, r.Type)
	if r.Restriction != "" {
		text += "  " + r.Restriction
	}
	if r.Name != "" {
		text += "  " + r.Name
	}
	return Feedback(r.String()).WithText(text)
}
