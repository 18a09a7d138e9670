package view

import (
	"math"

	"github.com/ha1tch/roadview/pkg/geo"
)

// Projection maps map coordinates (metres, Y up) onto a canvas (pixels,
// Y down) with the same scale on both axes. The viewport is centred and
// fitted inside the canvas.
type Projection struct {
	center geo.Point
	size   geo.Point
	ppm    float64 // pixels per metre
}

// NewProjection fits viewport into a canvas of the given pixel size.
func NewProjection(viewport geo.Rect, size geo.Point) Projection {
	ppm := 1.0
	if viewport.Width() > 0 && viewport.Height() > 0 && size.X > 0 && size.Y > 0 {
		ppm = math.Min(size.X/viewport.Width(), size.Y/viewport.Height())
	} else if viewport.Width() > 0 && size.X > 0 {
		ppm = size.X / viewport.Width()
	}
	return Projection{center: viewport.Center(), size: size, ppm: ppm}
}

// ToScreen converts a map point to canvas pixels.
func (p Projection) ToScreen(m geo.Point) geo.Point {
	return geo.Point{
		X: (m.X-p.center.X)*p.ppm + p.size.X/2,
		Y: p.size.Y/2 - (m.Y-p.center.Y)*p.ppm,
	}
}

// ToMap converts canvas pixels to a map point.
func (p Projection) ToMap(s geo.Point) geo.Point {
	return geo.Point{
		X: (s.X-p.size.X/2)/p.ppm + p.center.X,
		Y: (p.size.Y/2-s.Y)/p.ppm + p.center.Y,
	}
}

// Polyline projects every point of pl.
func (p Projection) Polyline(pl geo.Polyline) geo.Polyline {
	out := make(geo.Polyline, len(pl))
	for i, pt := range pl {
		out[i] = p.ToScreen(pt)
	}
	return out
}

// Rect projects a map rectangle; the result is normalized for screen space.
func (p Projection) Rect(r geo.Rect) geo.Rect {
	return geo.RectAround(p.ToScreen(r.Min), p.ToScreen(r.Max))
}

// MapBounds returns the map area covered by the whole canvas.
func (p Projection) MapBounds() geo.Rect {
	return geo.RectAround(p.ToMap(geo.Point{}), p.ToMap(p.size))
}

// MetersPerPixel returns the map distance of one canvas pixel.
func (p Projection) MetersPerPixel() float64 { return 1 / p.ppm }

// PixelsPerMeter returns the canvas length of one map metre.
func (p Projection) PixelsPerMeter() float64 { return p.ppm }

// Size returns the canvas size in pixels.
func (p Projection) Size() geo.Point { return p.size }
