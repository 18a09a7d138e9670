package view

import "github.com/ha1tch/roadview/pkg/geo"

// Labels is the set of screen rectangles claimed by labels this frame.
type Labels struct {
	claimed []geo.Rect
}

// Free reports whether r overlaps no claimed rectangle.
func (l *Labels) Free(r geo.Rect) bool {
	for _, c := range l.claimed {
		if c.Intersects(r) {
			return false
		}
	}
	return true
}

// Claim marks r as occupied.
func (l *Labels) Claim(r geo.Rect) {
	l.claimed = append(l.claimed, r)
}

// Claimed returns the claimed rectangles in claim order.
func (l *Labels) Claimed() []geo.Rect { return l.claimed }

// Reset forgets every claim, keeping the buffer.
func (l *Labels) Reset() { l.claimed = l.claimed[:0] }
