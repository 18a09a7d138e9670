package render

import (
	"math"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/visible"
	"github.com/ha1tch/roadview/pkg/zoom"
)

// drawRelations draws turn restrictions and routes. Unselected relations
// are those touching an edge culled for relation scanning, capped per
// category; restrictionsOnly skips routes.
func (p *Pipeline) drawRelations(f *frame, t visible.SelectionType, restrictionsOnly bool) {
	switch t {
	case visible.Unselected:
		if f.scale.IsCoarserThan(p.opts.RelationMinScale) {
			return
		}
		g := f.model.Graph()
		edges := f.model.RelationEdges().EdgeSet()
		var restrictions, routes, dropped int
		for _, r := range g.Relations(f.proj.MapBounds()) {
			if f.sel.IsSelected(r) || !touches(r, edges) {
				continue
			}
			if r.IsRestriction() {
				if restrictions >= p.opts.RelationCap {
					dropped++
					continue
				}
				restrictions++
				p.drawRestriction(f, r, false)
			} else {
				if restrictionsOnly {
					continue
				}
				if routes >= p.opts.RelationCap {
					dropped++
					continue
				}
				routes++
				p.drawRoute(f, r, false)
			}
		}
		f.stats.Relations += restrictions + routes
		if dropped > 0 {
			f.stats.RelationsDropped += dropped
			f.model.Logger().Warn("relation cap reached", "cap", p.opts.RelationCap, "dropped", dropped)
		}
	case visible.Selected:
		r, ok := f.sel.SelectedRelation()
		if !ok {
			return
		}
		if r.IsRestriction() {
			p.drawRestriction(f, r, true)
		} else {
			p.drawRoute(f, r, true)
		}
		f.stats.Relations++
	default:
		panic("render: relations cannot be drawn as " + t.String())
	}
}

func touches(r *roadgraph.Relation, edges map[roadgraph.EdgeID]bool) bool {
	for _, id := range r.Members {
		if id < 0 {
			id = -id
		}
		if edges[id] {
			return true
		}
	}
	return false
}

// viaRadius sizes the via-node marker by zoom band.
func viaRadius(scale zoom.Scale, selected bool) float64 {
	r := 3.0
	switch {
	case scale.AtLeast(zoom.Street):
		r = 7
	case scale.AtLeast(zoom.City):
		r = 5
	}
	if selected {
		r += 2
	}
	return r
}

// drawRestriction draws the restricted path and a marker on the via node.
func (p *Pipeline) drawRestriction(f *frame, r *roadgraph.Relation, selected bool) {
	g := f.model.Graph()
	c := colorNoTurn
	if r.IsOnlyRestriction() {
		c = colorOnlyTurn
	}
	width := 2.0
	if selected {
		c, width = colorSelected, 4
	}
	for _, id := range r.Members {
		e, ok := g.Edge(id)
		if !ok {
			continue
		}
		pts := f.proj.Polyline(e.Shape)
		f.canvas.Line(pts, Stroke{Color: c, Width: width, Dashed: !selected})
		f.sel.Shape(r, geo.Stroke{Points: pts, HalfWidth: math.Max(width/2, minHitRadius)})
	}
	if v, ok := g.Vertex(r.Via); ok {
		at := f.proj.ToScreen(v.Location)
		rad := viaRadius(f.scale, selected)
		f.canvas.Dot(at, rad, c, Stroke{Color: colorBackground, Width: 1})
		f.sel.Shape(r, geo.Circle{Center: at, Radius: rad})
	}
}

// drawRoute draws every member edge, fattened by the most important road
// type taking part.
func (p *Pipeline) drawRoute(f *frame, r *roadgraph.Relation, selected bool) {
	g := f.model.Graph()
	members := make([]*roadgraph.Edge, 0, len(r.Members))
	best := roadgraph.NullRoad
	for _, id := range r.Members {
		if e, ok := g.Edge(id); ok {
			members = append(members, e)
			if e.RoadType.IsMoreImportantThan(best) {
				best = e.RoadType
			}
		}
	}
	width := p.edgeWidth(best, f.scale, f.proj.MetersPerPixel()) + 4
	c := colorRoute
	if selected {
		c = colorSelected
	}
	for _, e := range members {
		pts := f.proj.Polyline(e.Shape)
		f.canvas.Line(pts, Stroke{Color: c, Width: width})
		f.sel.Shape(r, geo.Stroke{Points: pts, HalfWidth: width / 2})
	}
}
