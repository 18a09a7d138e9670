package geo

import (
	"fmt"
	"math"
)

// Rect represents an axis-aligned rectangle by its corners.
// The zero Rect is empty.
type Rect struct {
	Min, Max Point
}

// RectAround returns the smallest rectangle containing every point.
func RectAround(points ...Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// RectAt returns a rectangle with its top-left corner at p.
// Intended for screen space where Y grows downward.
func RectAt(p Point, w, h float64) Rect {
	return Rect{Min: p, Max: Point{p.X + w, p.Y + h}}
}

// IsEmpty reports whether the rectangle is the zero value.
func (r Rect) IsEmpty() bool {
	return r == Rect{}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the centre point.
func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Bounds returns r, so Rect satisfies Shape.
func (r Rect) Bounds() Rect { return r }

// Intersects reports whether the rectangles share interior area.
func (r Rect) Intersects(o Rect) bool {
	return Overlap(r, o) > 0
}

// Union returns the smallest rectangle containing both.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return RectAround(r.Min, r.Max, o.Min, o.Max)
}

// Expand grows the rectangle by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		Min: Point{r.Min.X - margin, r.Min.Y - margin},
		Max: Point{r.Max.X + margin, r.Max.Y + margin},
	}
}

// ExpandPercent grows each dimension by the given fraction, keeping the centre.
func (r Rect) ExpandPercent(fraction float64) Rect {
	dx := r.Width() * fraction / 2
	dy := r.Height() * fraction / 2
	return Rect{
		Min: Point{r.Min.X - dx, r.Min.Y - dy},
		Max: Point{r.Max.X + dx, r.Max.Y + dy},
	}
}

// AtLeast widens each dimension to at least span, keeping the centre.
func (r Rect) AtLeast(span float64) Rect {
	c := r.Center()
	w := math.Max(r.Width(), span)
	h := math.Max(r.Height(), span)
	return Rect{
		Min: Point{c.X - w/2, c.Y - h/2},
		Max: Point{c.X + w/2, c.Y + h/2},
	}
}

// String formats the rectangle for feedback text.
func (r Rect) String() string {
	return fmt.Sprintf("[%s - %s]", r.Min, r.Max)
}

// Overlap returns the overlap area between two rectangles.
// Returns 0 if they don't overlap.
func Overlap(a, b Rect) float64 {
	overlapX := math.Min(a.Max.X, b.Max.X) - math.Max(a.Min.X, b.Min.X)
	overlapY := math.Min(a.Max.Y, b.Max.Y) - math.Max(a.Min.Y, b.Min.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return overlapX * overlapY
}
