package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
)

const number = `[-+]?(?:\d+\.?\d*|\.\d+)`

var (
	pairPattern   = regexp.MustCompile(`^\s*(` + number + `)\s*,\s*(` + number + `)\s*$`)
	latLngPattern = regexp.MustCompile(`^\s*(` + number + `)(?:\s*,\s*|\s+)(` + number + `)\s*$`)
	routePattern  = regexp.MustCompile(`^\s*-?\d+(?:\s*:\s*-?\d+)+\s*$`)
)

// parsePair reads "lat,lng".
func parsePair(s string) (geo.LatLng, bool) {
	m := pairPattern.FindStringSubmatch(s)
	if m == nil {
		return geo.LatLng{}, false
	}
	return latLng(m[1], m[2])
}

func latLng(lat, lng string) (geo.LatLng, bool) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return geo.LatLng{}, false
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return geo.LatLng{}, false
	}
	l := geo.LatLng{Lat: la, Lng: ln}
	return l, l.Valid()
}

// parsePairs reads colon-separated "lat,lng" pairs.
func parsePairs(text string) ([]geo.LatLng, bool) {
	parts := strings.Split(text, ":")
	out := make([]geo.LatLng, 0, len(parts))
	for _, p := range parts {
		l, ok := parsePair(p)
		if !ok {
			return nil, false
		}
		out = append(out, l)
	}
	return out, true
}

// tagMatcher handles "tag key=value". The value compares case-insensitively.
type tagMatcher struct {
	target Target
	limit  int
}

func (m *tagMatcher) Match(text string) (Action, bool) {
	text = strings.TrimSpace(text)
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.EqualFold(fields[0], "tag") {
		return nil, false
	}
	expr := strings.TrimSpace(text[len(fields[0]):])
	key, value, ok := strings.Cut(expr, "=")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !ok || key == "" {
		return func() UserFeedback { return Feedback("usage: tag key=value") }, true
	}
	return func() UserFeedback { return m.run(key, value) }, true
}

func (m *tagMatcher) run(key, value string) UserFeedback {
	var matches []*roadgraph.Edge
	capped := false
	for _, e := range m.target.Graph().ForwardEdges(geo.Rect{}) {
		v, ok := e.Tag(key)
		if !ok || !strings.EqualFold(v, value) {
			continue
		}
		if len(matches) >= m.limit {
			capped = true
			break
		}
		matches = append(matches, e)
	}
	if len(matches) == 0 {
		return Feedback(fmt.Sprintf("no edges tagged %s=%s", key, value))
	}
	highlightAndZoom(m.target, matches)
	status := fmt.Sprintf("%d edges tagged %s=%s", len(matches), key, value)
	if capped {
		status += fmt.Sprintf(" (first %d)", m.limit)
	}
	return Feedback(status)
}

// rectangleMatcher handles "lat,lng:lat,lng" by zooming to the rectangle.
type rectangleMatcher struct {
	target Target
}

func (m *rectangleMatcher) Match(text string) (Action, bool) {
	pts, ok := parsePairs(text)
	if !ok || len(pts) != 2 {
		return nil, false
	}
	r := geo.RectAround(geo.FromLatLng(pts[0]), geo.FromLatLng(pts[1]))
	return func() UserFeedback {
		m.target.ZoomTo(r)
		return Feedback("rectangle " + pts[0].String() + ":" + pts[1].String())
	}, true
}

// polylineMatcher handles one point or three or more; two points are a
// rectangle. The polyline is added to the selection overlay.
type polylineMatcher struct {
	target Target
}

func (m *polylineMatcher) Match(text string) (Action, bool) {
	pts, ok := parsePairs(text)
	if !ok || len(pts) == 2 {
		return nil, false
	}
	pl := make(geo.Polyline, len(pts))
	for i, p := range pts {
		pl[i] = geo.FromLatLng(p)
	}
	return func() UserFeedback {
		m.target.Selection().AddPolyline(pl)
		m.target.ZoomTo(pl.Bounds())
		if len(pl) == 1 {
			return Feedback("point " + pts[0].String())
		}
		return Feedback(fmt.Sprintf("polyline of %d points, %.0f m", len(pl), pl.Length()))
	}, true
}

// latLngMatcher handles a location typed as "lat lng" or "lat, lng".
type latLngMatcher struct {
	target Target
}

func (m *latLngMatcher) Match(text string) (Action, bool) {
	g := latLngPattern.FindStringSubmatch(text)
	if g == nil {
		return nil, false
	}
	l, ok := latLng(g[1], g[2])
	if !ok {
		return nil, false
	}
	return func() UserFeedback {
		m.target.ZoomTo(geo.RectAround(geo.FromLatLng(l)))
		return Feedback("location " + l.String())
	}, true
}

// routeMatcher handles "id:id[:id]..." naming two or more edges, all of
// which must exist.
type routeMatcher struct {
	target Target
}

func (m *routeMatcher) Match(text string) (Action, bool) {
	if !routePattern.MatchString(text) {
		return nil, false
	}
	g := m.target.Graph()
	var edges []*roadgraph.Edge
	for _, part := range strings.Split(text, ":") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, false
		}
		e, ok := g.Edge(roadgraph.EdgeID(id))
		if !ok || !g.Contains(e) {
			return nil, false
		}
		edges = append(edges, e)
	}
	if len(edges) < 2 {
		return nil, false
	}
	return func() UserFeedback {
		highlightAndZoom(m.target, edges)
		length := roadgraph.Route(edges).Length()
		return Feedback(fmt.Sprintf("route of %d edges, %.0f m", len(edges), length))
	}, true
}
