package render

import (
	"image/color"
	"math"

	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/visible"
	"github.com/ha1tch/roadview/pkg/zoom"
)

// edgeStyle is the look of one road type. Fatten multiplies the base width.
type edgeStyle struct {
	color  color.RGBA
	fatten float64
}

var edgeStyles = map[roadgraph.RoadType]edgeStyle{
	roadgraph.Freeway:      {color.RGBA{233, 115, 103, 255}, 3.0}, // #e97367
	roadgraph.UrbanHighway: {color.RGBA{240, 152, 95, 255}, 2.5},  // #f0985f
	roadgraph.Highway:      {color.RGBA{247, 196, 101, 255}, 2.0}, // #f7c465
	roadgraph.Throughway:   {color.RGBA{219, 204, 96, 255}, 1.5},  // #dbcc60
	roadgraph.LocalRoad:    {color.RGBA{120, 120, 120, 255}, 1.0}, // #787878
	roadgraph.LowSpeedRoad: {color.RGBA{150, 150, 150, 255}, 0.8}, // #969696
	roadgraph.PrivateRoad:  {color.RGBA{170, 140, 140, 255}, 0.8}, // #aa8c8c
	roadgraph.Walkway:      {color.RGBA{140, 170, 120, 255}, 0.5}, // #8caa78
	roadgraph.Ferry:        {color.RGBA{90, 140, 200, 255}, 1.0},  // #5a8cc8
	roadgraph.NullRoad:     {color.RGBA{190, 190, 190, 255}, 0.5}, // #bebebe
}

func styleFor(t roadgraph.RoadType) edgeStyle {
	if s, ok := edgeStyles[t]; ok {
		return s
	}
	return edgeStyles[roadgraph.NullRoad]
}

const (
	minEdgeWidth = 1.0
	maxEdgeWidth = 24.0
	minHitRadius = 3.0
)

// edgeWidth returns the stroke width in pixels. At city scale or finer the
// width follows the road's real width; coarser it is a fixed hairline.
func (p *Pipeline) edgeWidth(t roadgraph.RoadType, scale zoom.Scale, metersPerPixel float64) float64 {
	if !scale.AtLeast(zoom.City) {
		return p.opts.CoarseWidth
	}
	w := styleFor(t).fatten * p.opts.BaseWidth / metersPerPixel
	return math.Min(math.Max(w, minEdgeWidth), maxEdgeWidth)
}

// edgeStroke returns the stroke for an edge drawn as selection type st.
func (p *Pipeline) edgeStroke(t roadgraph.RoadType, st visible.SelectionType, scale zoom.Scale, metersPerPixel float64) Stroke {
	w := p.edgeWidth(t, scale, metersPerPixel)
	switch st {
	case visible.Unselected:
		return Stroke{Color: styleFor(t).color, Width: w}
	case visible.Inactive:
		return Stroke{Color: colorMuted, Width: math.Min(w, p.opts.CoarseWidth)}
	case visible.Highlighted:
		return Stroke{Color: colorHighlight, Width: w + 2}
	case visible.Selected:
		return Stroke{Color: colorSelected, Width: w + 3}
	default:
		panic("render: unknown selection type " + st.String())
	}
}
