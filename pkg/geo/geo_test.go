package geo

import (
	"math"
	"testing"
)

func TestLatLngRoundTrip(t *testing.T) {
	tests := []LatLng{
		{0, 0},
		{47.6062, -122.3321},
		{-33.8688, 151.2093},
		{60.1699, 24.9384},
	}

	for _, want := range tests {
		got := ToLatLng(FromLatLng(want))
		if math.Abs(got.Lat-want.Lat) > 1e-9 || math.Abs(got.Lng-want.Lng) > 1e-9 {
			t.Errorf("round trip of %v gave %v", want, got)
		}
	}
}

func TestFromLatLngEquator(t *testing.T) {
	p := FromLatLng(LatLng{0, 1})
	// one degree of longitude at the equator
	if math.Abs(p.X-111319.49) > 0.1 {
		t.Errorf("expected ~111319.49, got %.2f", p.X)
	}
	if math.Abs(p.Y) > 1e-6 {
		t.Errorf("expected Y 0 at equator, got %.6f", p.Y)
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{"disjoint", RectAt(Point{0, 0}, 10, 10), RectAt(Point{20, 20}, 10, 10), 0},
		{"touching", RectAt(Point{0, 0}, 10, 10), RectAt(Point{10, 0}, 10, 10), 0},
		{"partial", RectAt(Point{0, 0}, 10, 10), RectAt(Point{5, 5}, 10, 10), 25},
		{"contained", RectAt(Point{0, 0}, 10, 10), RectAt(Point{2, 2}, 2, 2), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlap(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Overlap = %.2f, want %.2f", got, tt.want)
			}
			if tt.a.Intersects(tt.b) != (tt.want > 0) {
				t.Errorf("Intersects disagrees with Overlap")
			}
		})
	}
}

func TestRectZoomHelpers(t *testing.T) {
	r := Rect{Min: Point{0, 0}, Max: Point{100, 50}}

	grown := r.ExpandPercent(0.1)
	if math.Abs(grown.Width()-110) > 1e-9 || math.Abs(grown.Height()-55) > 1e-9 {
		t.Errorf("ExpandPercent gave %v", grown)
	}
	if grown.Center() != r.Center() {
		t.Errorf("ExpandPercent moved the centre")
	}

	tiny := RectAround(Point{5, 5})
	floored := tiny.AtLeast(100)
	if floored.Width() != 100 || floored.Height() != 100 {
		t.Errorf("AtLeast gave %v", floored)
	}
	if floored.Center() != (Point{5, 5}) {
		t.Errorf("AtLeast moved the centre to %v", floored.Center())
	}
}

func TestUnionWithEmpty(t *testing.T) {
	r := RectAt(Point{1, 1}, 2, 2)
	if got := (Rect{}).Union(r); got != r {
		t.Errorf("empty union gave %v", got)
	}
	if got := r.Union(Rect{}); got != r {
		t.Errorf("union with empty gave %v", got)
	}
}

func TestStrokeContains(t *testing.T) {
	s := Stroke{Points: Polyline{{0, 0}, {100, 0}, {100, 100}}, HalfWidth: 3}

	tests := []struct {
		p    Point
		want bool
	}{
		{Point{50, 2}, true},
		{Point{50, 4}, false},
		{Point{98, 50}, true},
		{Point{50, 50}, false},
		{Point{-2, 0}, true},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPolylineMidpoint(t *testing.T) {
	pl := Polyline{{0, 0}, {10, 0}, {10, 30}}
	mid := pl.Midpoint()
	if mid != (Point{10, 10}) {
		t.Errorf("expected (10, 10), got %v", mid)
	}
	if pl.Length() != 40 {
		t.Errorf("expected length 40, got %.2f", pl.Length())
	}
}
