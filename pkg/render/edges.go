package render

import (
	"math"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/visible"
)

// drawEdges strokes the culled edges of one selection type and records
// their hit shapes. Muted background edges are not hit-testable.
func (p *Pipeline) drawEdges(f *frame, t visible.SelectionType) {
	mpp := f.proj.MetersPerPixel()
	for _, e := range f.model.Visible().Edges(t) {
		s := p.edgeStroke(e.RoadType, t, f.scale, mpp)
		pts := f.proj.Polyline(e.Shape)
		f.canvas.Line(pts, s)
		if t == visible.Selected && e.IsForward() {
			drawArrowHead(f.canvas, pts, s)
		}
		f.stats.Edges++
		if t != visible.Inactive {
			f.sel.Shape(e, geo.Stroke{Points: pts, HalfWidth: math.Max(s.Width/2, minHitRadius)})
		}
	}
}

// drawArrowHead marks the direction of travel at the end of pts.
func drawArrowHead(c Canvas, pts geo.Polyline, s Stroke) {
	if len(pts) < 2 {
		return
	}
	end, prev := pts[len(pts)-1], pts[len(pts)-2]
	dx, dy := end.X-prev.X, end.Y-prev.Y
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	nx, ny := dx/dist, dy/dist
	arrowLen := 4 + s.Width*2
	arrowWidth := 2 + s.Width

	wing1 := geo.Point{X: end.X - nx*arrowLen + ny*arrowWidth, Y: end.Y - ny*arrowLen - nx*arrowWidth}
	wing2 := geo.Point{X: end.X - nx*arrowLen - ny*arrowWidth, Y: end.Y - ny*arrowLen + nx*arrowWidth}
	c.Line([]geo.Point{wing1, end, wing2}, Stroke{Color: s.Color, Width: math.Max(1, s.Width/2)})
}

// drawEdgeLabels names roads along chains of same-named connected edges.
// Road types are visited from most to least important so the labels that
// fit first belong to the main roads.
func (p *Pipeline) drawEdgeLabels(f *frame, t visible.SelectionType) {
	edges := f.model.Visible().Edges(t)
	byType := make(map[roadgraph.RoadType][]*roadgraph.Edge)
	inSet := make(map[roadgraph.EdgeID]*roadgraph.Edge, len(edges))
	for _, e := range edges {
		if !e.IsForward() || e.Name == "" {
			continue
		}
		byType[e.RoadType] = append(byType[e.RoadType], e)
		inSet[e.ID] = e
	}

	visited := make(map[roadgraph.EdgeID]bool, len(inSet))
	for _, rt := range roadgraph.RoadTypes() {
		for _, start := range byType[rt] {
			if visited[start.ID] {
				continue
			}
			since := 0.0
			for _, e := range p.namedChain(f.model.Graph(), start, inSet, visited) {
				pts := f.proj.Polyline(e.Shape)
				length := pts.Length()
				since += length
				if since <= p.opts.LabelSpacing || length <= p.opts.LabelMinEdge {
					continue
				}
				if p.edgeLabel(f, pts.Midpoint(), e.Name) {
					since = 0
					if f.stats.Labels >= p.opts.MaxLabels {
						return
					}
				}
			}
		}
	}
}

// namedChain walks from start through connected forward edges that carry
// the same name, first backward then forward, marking them visited.
func (p *Pipeline) namedChain(g roadgraph.Graph, start *roadgraph.Edge, inSet map[roadgraph.EdgeID]*roadgraph.Edge, visited map[roadgraph.EdgeID]bool) []*roadgraph.Edge {
	visited[start.ID] = true
	next := func(at roadgraph.VertexID) *roadgraph.Edge {
		for _, list := range [][]*roadgraph.Edge{g.OutEdges(at), g.InEdges(at)} {
			for _, n := range list {
				id := n.ID
				if id < 0 {
					id = -id
				}
				cand, ok := inSet[id]
				if ok && !visited[id] && cand.Name == start.Name {
					visited[id] = true
					return cand
				}
			}
		}
		return nil
	}
	far := func(e *roadgraph.Edge, near roadgraph.VertexID) roadgraph.VertexID {
		if e.From == near {
			return e.To
		}
		return e.From
	}

	var back []*roadgraph.Edge
	for at, e := start.From, next(start.From); e != nil; e = next(at) {
		back = append(back, e)
		at = far(e, at)
	}
	chain := make([]*roadgraph.Edge, 0, len(back)+1)
	for i := len(back) - 1; i >= 0; i-- {
		chain = append(chain, back[i])
	}
	chain = append(chain, start)
	for at, e := start.To, next(start.To); e != nil; e = next(at) {
		chain = append(chain, e)
		at = far(e, at)
	}
	return chain
}

// edgeLabel centres a road name on a point when the space is free.
func (p *Pipeline) edgeLabel(f *frame, at geo.Point, name string) bool {
	size := f.canvas.MeasureText(name)
	box := geo.Rect{
		Min: geo.Point{X: at.X - size.X/2, Y: at.Y - size.Y/2},
		Max: geo.Point{X: at.X + size.X/2, Y: at.Y + size.Y/2},
	}
	if !f.labels().Free(box.Expand(p.opts.Callout.Margin)) {
		return false
	}
	f.labels().Claim(box)
	f.canvas.Text(box.Min, name, colorText)
	f.stats.Labels++
	return true
}
