// Package zoom defines the discrete zoom bands that drive culling and styling.
package zoom

import (
	"strconv"
	"strings"
)

// Scale is a zoom band, ordered from coarsest to finest.
type Scale int

const (
	State Scale = iota
	Region
	City
	Neighborhood
	Street
)

var scaleNames = [...]string{"state", "region", "city", "neighborhood", "street"}

// Viewport widths, in map metres, at which each band begins.
const (
	stateWidth        = 500_000
	regionWidth       = 100_000
	cityWidth         = 20_000
	neighborhoodWidth = 3_000
)

func (s Scale) String() string {
	if s < State || s > Street {
		return "Scale(" + strconv.Itoa(int(s)) + ")"
	}
	return scaleNames[s]
}

// IsCoarserThan reports whether s shows more ground than o.
func (s Scale) IsCoarserThan(o Scale) bool { return s < o }

// IsFinerThan reports whether s shows less ground than o.
func (s Scale) IsFinerThan(o Scale) bool { return s > o }

// AtLeast reports whether s is o or finer.
func (s Scale) AtLeast(o Scale) bool { return s >= o }

// ForWidth picks the band for a viewport of the given width in metres.
func ForWidth(meters float64) Scale {
	switch {
	case meters >= stateWidth:
		return State
	case meters >= regionWidth:
		return Region
	case meters >= cityWidth:
		return City
	case meters >= neighborhoodWidth:
		return Neighborhood
	default:
		return Street
	}
}

// Parse accepts a band name in any case.
func Parse(name string) (Scale, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range scaleNames {
		if n == name {
			return Scale(i), true
		}
	}
	return State, false
}

// MarshalText encodes the band by name.
func (s Scale) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
