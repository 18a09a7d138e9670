// Package viewer wires the view model, render pipeline and query resolver
// into the hooks a host calls: paint, click, popup, next/previous and
// query. All hooks except Repainter.Request must run on the render thread.
package viewer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/render"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/search"
	"github.com/ha1tch/roadview/pkg/selection"
	"github.com/ha1tch/roadview/pkg/view"
)

// PopupItem is one entry of a context menu.
type PopupItem struct {
	Label  string
	Action func(ctx context.Context) search.UserFeedback
}

// Layer is one road graph shown in a host window.
type Layer struct {
	model    *view.Model
	pipeline *render.Pipeline
	searcher *search.Searcher
	repaint  *Repainter
	limit    roadgraph.RouteLimit
	logger   *slog.Logger

	routeFrom *roadgraph.Vertex
	lastStats render.Stats
}

// NewLayer creates a layer. A nil repainter never schedules paints.
func NewLayer(m *view.Model, p *render.Pipeline, s *search.Searcher, r *Repainter, logger *slog.Logger) *Layer {
	if logger == nil {
		logger = slog.Default()
	}
	if r == nil {
		r = NewRepainter(nil)
	}
	return &Layer{
		model:    m,
		pipeline: p,
		searcher: s,
		repaint:  r,
		limit:    roadgraph.DefaultRouteLimit(),
		logger:   logger,
	}
}

// SetRouteLimit replaces the step limit used by popup routing.
func (l *Layer) SetRouteLimit(limit roadgraph.RouteLimit) { l.limit = limit }

func (l *Layer) Model() *view.Model           { return l.model }
func (l *Layer) Repainter() *Repainter        { return l.repaint }
func (l *Layer) LastStats() render.Stats      { return l.lastStats }
func (l *Layer) RouteFrom() *roadgraph.Vertex { return l.routeFrom }

// Paint draws the layer. Hit shapes recorded here serve the next click.
func (l *Layer) Paint(ctx context.Context, c render.Canvas) render.Stats {
	l.repaint.Begin()
	l.lastStats = l.pipeline.Paint(ctx, c, l.model)
	return l.lastStats
}

// Click selects what is under p. Kinds are tried in order: shape points,
// vertices, edges, relations, places. Clicking the same set of overlapping
// entities again cycles through them. Clicking empty space clears the
// selection.
func (l *Layer) Click(p geo.Point) roadgraph.Entity {
	defer l.repaint.Request()
	sel := l.model.Selection()

	candidates := []struct {
		kind roadgraph.Kind
		hits []roadgraph.Entity
	}{
		{roadgraph.KindShapePoint, selection.Entities(sel.ShapePointsForPoint(p))},
		{roadgraph.KindVertex, selection.Entities(sel.VerticesForPoint(p))},
		{roadgraph.KindEdge, selection.Entities(sel.EdgesForPoint(p, l.model))},
		{roadgraph.KindRelation, selection.Entities(sel.RelationsForPoint(p))},
		{roadgraph.KindPlace, selection.Entities(sel.PlacesForPoint(p))},
	}
	for _, c := range candidates {
		if len(c.hits) == 0 {
			continue
		}
		if cur := sel.Selected(); cur != nil && cur.Kind() == c.kind && sel.SameStack(c.kind, c.hits) {
			if next, ok := sel.Next(); ok {
				l.logger.Debug("click cycled", "kind", c.kind.String(), "hits", len(c.hits))
				return next
			}
			return cur
		}
		picked := sel.SetStack(c.kind, c.hits)
		l.logger.Debug("click selected", "kind", c.kind.String(), "hits", len(c.hits))
		return picked
	}
	sel.Clear()
	return nil
}

// Next selects the next entity of the current overlap stack.
func (l *Layer) Next() (roadgraph.Entity, bool) {
	e, ok := l.model.Selection().Next()
	if ok {
		l.repaint.Request()
	}
	return e, ok
}

// Previous selects the previous entity of the current overlap stack.
func (l *Layer) Previous() (roadgraph.Entity, bool) {
	e, ok := l.model.Selection().Previous()
	if ok {
		l.repaint.Request()
	}
	return e, ok
}

// Query resolves a typed query.
func (l *Layer) Query(ctx context.Context, text string) search.UserFeedback {
	defer l.repaint.Request()
	return l.searcher.Query(ctx, text)
}

// Popup returns the context menu for p.
func (l *Layer) Popup(p geo.Point) []PopupItem {
	var items []PopupItem
	if v := l.vertexAt(p); v != nil {
		items = append(items, PopupItem{
			Label: fmt.Sprintf("Route from vertex %d", v.ID),
			Action: func(context.Context) search.UserFeedback {
				l.routeFrom = v
				return search.Feedback(fmt.Sprintf("route starts at vertex %d", v.ID))
			},
		})
		if from := l.routeFrom; from != nil && from.ID != v.ID {
			items = append(items, PopupItem{
				Label: fmt.Sprintf("Route to vertex %d", v.ID),
				Action: func(ctx context.Context) search.UserFeedback {
					return l.route(ctx, from, v)
				},
			})
		}
	}

	sel := l.model.Selection()
	if _, ok := sel.SelectedEdge(); ok {
		items = append(items, PopupItem{Label: "Open way in browser", Action: l.queryAction("open")})
	}
	if sel.Selected() != nil {
		items = append(items, PopupItem{Label: "Zoom to selection", Action: l.zoomToSelection})
	}
	if len(sel.Highlighted()) > 0 || len(sel.Polylines()) > 0 {
		items = append(items, PopupItem{Label: "Clear highlights", Action: l.queryAction("clear")})
	}
	items = append(items,
		PopupItem{Label: "Show whole graph", Action: l.queryAction("reset")},
		PopupItem{Label: "Toggle debug overlay", Action: l.queryAction("debug")},
	)
	return items
}

func (l *Layer) queryAction(text string) func(context.Context) search.UserFeedback {
	return func(ctx context.Context) search.UserFeedback { return l.Query(ctx, text) }
}

// vertexAt returns the vertex drawn under p, or the nearer end of the
// edge snapped from p.
func (l *Layer) vertexAt(p geo.Point) *roadgraph.Vertex {
	if hits := l.model.Selection().VerticesForPoint(p); len(hits) > 0 {
		return hits[0]
	}
	e, ok := l.model.SnapEdge(p)
	if !ok {
		return nil
	}
	g := l.model.Graph()
	from, okFrom := g.Vertex(e.From)
	to, okTo := g.Vertex(e.To)
	switch {
	case okFrom && okTo:
		if geo.Distance(l.model.ToScreen(from.Location), p) <= geo.Distance(l.model.ToScreen(to.Location), p) {
			return from
		}
		return to
	case okFrom:
		return from
	case okTo:
		return to
	}
	return nil
}

// route highlights the path between two vertices.
func (l *Layer) route(ctx context.Context, from, to *roadgraph.Vertex) search.UserFeedback {
	defer l.repaint.Request()
	r, err := l.model.Graph().Route(ctx, from.ID, to.ID, l.limit)
	if err != nil {
		l.logger.Warn("route failed", "from", from.ID, "to", to.ID, "error", err)
		return search.Feedback("no route").WithText(err.Error())
	}
	sel := l.model.Selection()
	sel.SetHighlighted(r)
	if len(r) > 0 {
		l.model.ZoomTo(r.Bounds())
	}
	l.routeFrom = nil
	return search.Feedback(fmt.Sprintf("route of %d edges, %.0f m", len(r), r.Length()))
}

func (l *Layer) zoomToSelection(context.Context) search.UserFeedback {
	defer l.repaint.Request()
	var bounds geo.Rect
	switch e := l.model.Selection().Selected().(type) {
	case *roadgraph.Vertex:
		bounds = geo.RectAround(e.Location)
	case *roadgraph.Edge:
		bounds = e.Bounds()
	case *roadgraph.Relation:
		bounds = e.Bounds()
	case *roadgraph.Place:
		bounds = geo.RectAround(e.Location)
	case *roadgraph.ShapePoint:
		bounds = geo.RectAround(e.Location)
	default:
		return search.Feedback("nothing selected")
	}
	l.model.ZoomTo(bounds)
	return search.Feedback("zoomed to selection")
}
