package zoom

import "testing"

func TestForWidth(t *testing.T) {
	tests := []struct {
		meters float64
		want   Scale
	}{
		{2_000_000, State},
		{500_000, State},
		{499_999, Region},
		{100_000, Region},
		{50_000, City},
		{20_000, City},
		{5_000, Neighborhood},
		{2_999, Street},
		{10, Street},
	}
	for _, tt := range tests {
		if got := ForWidth(tt.meters); got != tt.want {
			t.Errorf("ForWidth(%v) = %v, want %v", tt.meters, got, tt.want)
		}
	}
}

func TestOrdering(t *testing.T) {
	if !State.IsCoarserThan(Region) || Region.IsCoarserThan(Region) {
		t.Error("IsCoarserThan ordering broken")
	}
	if !Street.IsFinerThan(City) || City.IsFinerThan(Street) {
		t.Error("IsFinerThan ordering broken")
	}
	if !City.AtLeast(City) || !Street.AtLeast(City) || Region.AtLeast(City) {
		t.Error("AtLeast ordering broken")
	}
}

func TestParse(t *testing.T) {
	for _, s := range []Scale{State, Region, City, Neighborhood, Street} {
		got, ok := Parse(" " + s.String() + " ")
		if !ok || got != s {
			t.Errorf("Parse(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if got, ok := Parse("CITY"); !ok || got != City {
		t.Errorf("Parse is case sensitive: %v %v", got, ok)
	}
	if _, ok := Parse("planet"); ok {
		t.Error("Parse accepted an unknown band")
	}
	if s := Scale(42).String(); s != "Scale(42)" {
		t.Errorf("String() = %q", s)
	}
}
