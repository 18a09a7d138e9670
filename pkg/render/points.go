package render

import (
	"fmt"
	"math"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/visible"
	"github.com/ha1tch/roadview/pkg/zoom"
)

const (
	vertexRadius         = 2.0
	selectedVertexRadius = 5.0
	shapePointSize       = 5.0
)

// drawVertices dots the ends of the visible edges once zoomed in far
// enough, or the selected vertex.
func (p *Pipeline) drawVertices(f *frame, t visible.SelectionType) {
	switch t {
	case visible.Unselected:
		if !f.scale.AtLeast(zoom.Neighborhood) {
			return
		}
		g := f.model.Graph()
		seen := make(map[roadgraph.VertexID]bool)
		for _, e := range f.model.Visible().Edges(t) {
			for _, id := range []roadgraph.VertexID{e.From, e.To} {
				if seen[id] {
					continue
				}
				seen[id] = true
				v, ok := g.Vertex(id)
				if !ok || f.sel.IsSelected(v) {
					continue
				}
				at := f.proj.ToScreen(v.Location)
				f.canvas.Dot(at, vertexRadius, colorVertex, Stroke{})
				f.sel.Shape(v, geo.Circle{Center: at, Radius: math.Max(vertexRadius, minHitRadius)})
				f.stats.Vertices++
			}
		}
	case visible.Selected:
		v, ok := f.sel.SelectedVertex()
		if !ok {
			return
		}
		at := f.proj.ToScreen(v.Location)
		f.canvas.Dot(at, selectedVertexRadius, colorSelected, Stroke{Color: colorBackground, Width: 1})
		f.sel.Shape(v, geo.Circle{Center: at, Radius: selectedVertexRadius})
		f.stats.Vertices++
		p.callout(f, at, fmt.Sprintf("vertex %d", v.ID), colorSelected)
	default:
		panic("render: vertices cannot be drawn as " + t.String())
	}
}

// drawShapePoints marks the interior points of the selected edge, or of the
// edge owning the selected shape point.
func (p *Pipeline) drawShapePoints(f *frame, t visible.SelectionType) {
	if t != visible.Selected {
		panic("render: shape points cannot be drawn as " + t.String())
	}
	var edge *roadgraph.Edge
	if e, ok := f.sel.SelectedEdge(); ok {
		edge = e
	} else if sp, ok := f.sel.SelectedShapePoint(); ok {
		edge, _ = f.model.Graph().Edge(sp.Edge)
	}
	if edge == nil {
		return
	}
	for _, sp := range edge.ShapePoints() {
		sp := sp
		at := f.proj.ToScreen(sp.Location)
		half := shapePointSize / 2
		box := geo.Rect{Min: at.Add(-half, -half), Max: at.Add(half, half)}
		c := colorShapePoint
		if f.sel.IsSelected(&sp) {
			c = colorSelected
			box = box.Expand(1)
		}
		f.canvas.Box(box, Stroke{Color: c, Width: 2})
		f.sel.Shape(&sp, box)
	}
}

// placeRadius grows with the logarithm of the population.
func placeRadius(population int, selected bool) float64 {
	r := 2 + math.Log10(math.Max(float64(population), 1))
	r = math.Min(math.Max(r, 3), 10)
	if selected {
		r *= 1.5
	}
	return r
}

// placeShown applies the visibility toggle, the type filter and, below
// city scale, the population threshold.
func (p *Pipeline) placeShown(f *frame, pl *roadgraph.Place) bool {
	if !f.model.PlacesVisible() || !f.model.PlaceTypeVisible(pl.Type) {
		return false
	}
	if f.scale.IsCoarserThan(zoom.City) {
		return pl.IsCity() || pl.Population >= p.opts.PlaceMinPopulation
	}
	return true
}

// drawPlaces dots and names places.
func (p *Pipeline) drawPlaces(f *frame, t visible.SelectionType) {
	switch t {
	case visible.Unselected:
		for _, pl := range f.model.Graph().Places(f.proj.MapBounds()) {
			if f.sel.IsSelected(pl) || !p.placeShown(f, pl) {
				continue
			}
			p.drawPlace(f, pl, false)
		}
	case visible.Selected:
		if pl, ok := f.sel.SelectedPlace(); ok {
			p.drawPlace(f, pl, true)
		}
	default:
		panic("render: places cannot be drawn as " + t.String())
	}
}

func (p *Pipeline) drawPlace(f *frame, pl *roadgraph.Place, selected bool) {
	at := f.proj.ToScreen(pl.Location)
	r := placeRadius(pl.Population, selected)
	fill, outline := colorPlace, Stroke{Color: colorBackground, Width: 1}
	if selected {
		outline = Stroke{Color: colorSelected, Width: 2}
	}
	f.canvas.Dot(at, r, fill, outline)
	f.sel.Shape(pl, geo.Circle{Center: at, Radius: math.Max(r, minHitRadius)})
	f.stats.Places++
	if pl.Name != "" {
		p.callout(f, at, pl.Name, colorPlace)
	}
}
