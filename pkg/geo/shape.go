package geo

// Shape is a hit-testable region, normally in screen space.
type Shape interface {
	Contains(p Point) bool
	Bounds() Rect
}

// Circle is a filled disc.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether p is inside the disc.
func (c Circle) Contains(p Point) bool {
	return Distance(c.Center, p) <= c.Radius
}

// Bounds returns the square around the disc.
func (c Circle) Bounds() Rect {
	return Rect{
		Min: Point{c.Center.X - c.Radius, c.Center.Y - c.Radius},
		Max: Point{c.Center.X + c.Radius, c.Center.Y + c.Radius},
	}
}

// Stroke is a polyline drawn with a width.
type Stroke struct {
	Points    Polyline
	HalfWidth float64
}

// Contains reports whether p lies within HalfWidth of any segment.
func (s Stroke) Contains(p Point) bool {
	if !s.Bounds().Contains(p) {
		return false
	}
	if len(s.Points) == 1 {
		return Distance(s.Points[0], p) <= s.HalfWidth
	}
	for i := 1; i < len(s.Points); i++ {
		if SegmentDistance(p, s.Points[i-1], s.Points[i]) <= s.HalfWidth {
			return true
		}
	}
	return false
}

// Bounds returns the polyline bounds grown by the half width.
func (s Stroke) Bounds() Rect {
	return s.Points.Bounds().Expand(s.HalfWidth)
}
