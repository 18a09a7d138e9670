package search

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
)

const helpText = `Commands:
  help, query help, version, graph
  bounds, center, reset, clear, debug
  open                 open the selected edge's way in a browser
  turns, visible-turns turn restriction counts
Queries:
  tag key=value        edges carrying a tag
  lat,lng:lat,lng      rectangle
  lat,lng[:lat,lng]... polyline (one point, or three or more)
  lat lng              location
  id:id[:id]...        edges as a route
  way-from-to          map edge identifier
  [e|v|n|w|r]123       edge, vertex, node, way or relation
  name                 road name`

const queryHelpText = `Identifiers may carry a prefix naming their space:
  e, edge      edge (negative for the reverse direction)
  v, vertex    vertex
  n, node      OSM node
  w, way       OSM way
  r, relation  OSM relation
A trailing L is ignored. Without a prefix every space is searched and an
ambiguous number must be prefixed. A number found in no space is tried as
an edge store index.
Coordinates are decimal degrees, latitude first.`

// osmWayURL is where open sends the browser.
const osmWayURL = "https://www.openstreetmap.org/way/%d"

// commandMatcher recognizes the literal commands.
type commandMatcher struct {
	target  Target
	browser Browser
	version string
}

func (m *commandMatcher) Match(text string) (Action, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(text), " ")) {
	case "help":
		return func() UserFeedback { return Feedback("help").WithText(helpText) }, true
	case "query help":
		return func() UserFeedback { return Feedback("query help").WithText(queryHelpText) }, true
	case "version":
		return func() UserFeedback { return Feedback("roadview " + m.version) }, true
	case "bounds":
		return m.bounds, true
	case "center":
		return m.center, true
	case "clear":
		return m.clear, true
	case "debug":
		return m.debug, true
	case "graph":
		return m.graph, true
	case "open":
		return m.open, true
	case "reset":
		return m.reset, true
	case "turns":
		return func() UserFeedback { return m.turns(geo.Rect{}, "turn restrictions") }, true
	case "visible-turns":
		return func() UserFeedback { return m.turns(m.target.Viewport(), "visible turn restrictions") }, true
	}
	return nil, false
}

func latLngRect(r geo.Rect) string {
	return geo.ToLatLng(r.Min).String() + ":" + geo.ToLatLng(r.Max).String()
}

func (m *commandMatcher) bounds() UserFeedback {
	g := m.target.Graph()
	text := fmt.Sprintf("graph    %s\nviewport %s", latLngRect(g.Bounds()), latLngRect(m.target.Viewport()))
	return Feedback("bounds").WithText(text)
}

func (m *commandMatcher) center() UserFeedback {
	c := geo.ToLatLng(m.target.Viewport().Center())
	return Feedback("center " + c.String()).WithText(c.String())
}

// clear drops highlights and ad-hoc polylines. The selection stays.
func (m *commandMatcher) clear() UserFeedback {
	sel := m.target.Selection()
	sel.ClearHighlights()
	sel.ClearPolylines()
	return Feedback("cleared")
}

func (m *commandMatcher) debug() UserFeedback {
	if m.target.ToggleDebug() {
		return Feedback("debug on")
	}
	return Feedback("debug off")
}

func (m *commandMatcher) graph() UserFeedback {
	g := m.target.Graph()
	var sb strings.Builder
	fmt.Fprintf(&sb, "name      %s\n", g.Name())
	fmt.Fprintf(&sb, "locale    %s\n", g.Locale())
	fmt.Fprintf(&sb, "edges     %d\n", g.EdgeCount())
	fmt.Fprintf(&sb, "vertices  %d\n", g.VertexCount())
	fmt.Fprintf(&sb, "relations %d\n", g.RelationCount())
	fmt.Fprintf(&sb, "places    %d\n", g.PlaceCount())
	fmt.Fprintf(&sb, "composite %t\n", g.IsComposite())
	fmt.Fprintf(&sb, "bounds    %s", latLngRect(g.Bounds()))
	return Feedback("graph " + g.Name()).
		WithText(sb.String()).
		WithHTML("<pre>" + html.EscapeString(sb.String()) + "</pre>")
}

func (m *commandMatcher) open() UserFeedback {
	e, ok := m.target.Selection().SelectedEdge()
	if !ok {
		return Feedback("no edge selected")
	}
	url := fmt.Sprintf(osmWayURL, e.Way)
	if m.browser == nil {
		return Feedback("way " + fmt.Sprint(e.Way)).WithText(url)
	}
	if err := m.browser.Open(url); err != nil {
		return Feedback("could not open browser").WithText(err.Error())
	}
	return Feedback("opened way " + fmt.Sprint(e.Way)).WithText(url)
}

func (m *commandMatcher) reset() UserFeedback {
	m.target.Reset()
	return Feedback("reset")
}

// turns counts turn restrictions by type within r; an empty r is the
// whole graph.
func (m *commandMatcher) turns(r geo.Rect, title string) UserFeedback {
	counts := make(map[string]int)
	total := 0
	for _, rel := range m.target.Graph().Relations(r) {
		if !rel.IsRestriction() {
			continue
		}
		counts[restrictionName(rel)]++
		total++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%-24s %d\n", name, counts[name])
	}
	fmt.Fprintf(&sb, "%-24s %d", "total", total)
	return Feedback(fmt.Sprintf("%d %s", total, title)).WithText(sb.String())
}

func restrictionName(r *roadgraph.Relation) string {
	if r.Restriction == "" {
		return "unknown"
	}
	return r.Restriction
}
