// Planar map geometry shared by the graph, view and render packages.
// Map coordinates are spherical-Mercator metres with Y pointing north;
// screen coordinates reuse the same types with Y pointing down.

package geo

import (
	"fmt"
	"math"
)

// EarthRadius is the spherical-Mercator radius in metres.
const EarthRadius = 6378137.0

// maxLatitude is the Mercator clipping latitude.
const maxLatitude = 85.05112878

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

// String formats the point for debug output.
func (p Point) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// SegmentDistance returns the distance from p to the segment a-b.
func SegmentDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Distance(p, Point{a.X + t*dx, a.Y + t*dy})
}

// LatLng is a WGS84 location in degrees.
type LatLng struct {
	Lat, Lng float64
}

// String formats the location the way location literals are typed.
func (l LatLng) String() string {
	return fmt.Sprintf("%.6f,%.6f", l.Lat, l.Lng)
}

// Valid reports whether the location is inside the Mercator domain.
func (l LatLng) Valid() bool {
	return l.Lat >= -maxLatitude && l.Lat <= maxLatitude && l.Lng >= -180 && l.Lng <= 180
}

// FromLatLng projects a location into map coordinates.
func FromLatLng(l LatLng) Point {
	lat := math.Max(-maxLatitude, math.Min(maxLatitude, l.Lat))
	x := EarthRadius * l.Lng * math.Pi / 180
	y := EarthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	return Point{x, y}
}

// ToLatLng inverts FromLatLng.
func ToLatLng(p Point) LatLng {
	lng := p.X / EarthRadius * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(p.Y/EarthRadius)) - math.Pi/2) * 180 / math.Pi
	return LatLng{Lat: lat, Lng: lng}
}

// Polyline is an ordered list of points.
type Polyline []Point

// Length returns the summed segment length.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl); i++ {
		total += Distance(pl[i-1], pl[i])
	}
	return total
}

// Bounds returns the bounding rectangle of all points.
func (pl Polyline) Bounds() Rect {
	return RectAround(pl...)
}

// Midpoint returns the point halfway along the polyline.
func (pl Polyline) Midpoint() Point {
	switch len(pl) {
	case 0:
		return Point{}
	case 1:
		return pl[0]
	}
	half := pl.Length() / 2
	walked := 0.0
	for i := 1; i < len(pl); i++ {
		seg := Distance(pl[i-1], pl[i])
		if walked+seg >= half && seg > 0 {
			t := (half - walked) / seg
			return Point{
				X: pl[i-1].X + (pl[i].X-pl[i-1].X)*t,
				Y: pl[i-1].Y + (pl[i].Y-pl[i-1].Y)*t,
			}
		}
		walked += seg
	}
	return pl[len(pl)-1]
}

// Reversed returns a copy with the point order flipped.
func (pl Polyline) Reversed() Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[len(pl)-1-i] = p
	}
	return out
}
