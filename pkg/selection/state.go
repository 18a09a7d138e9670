// Package selection holds what the user has selected, highlighted and
// stacked for cycling, plus the per-frame map from drawn shapes back to
// graph entities used for hit-testing.
//
// A State is owned by one layer and is not safe for concurrent use; paint
// and input handling are expected to run on the same goroutine.
package selection

import (
	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
)

// State is the selection of one graph layer.
type State struct {
	current roadgraph.Entity

	stacks map[roadgraph.Kind]*stack

	highlighted []*roadgraph.Edge
	highlightIx map[roadgraph.EdgeID]int

	polylines []geo.Polyline

	shapes *shapeArena
}

// New returns an empty selection.
func New() *State {
	return &State{
		stacks:      make(map[roadgraph.Kind]*stack, len(stackKinds)),
		highlightIx: make(map[roadgraph.EdgeID]int),
		shapes:      newShapeArena(),
	}
}

// Select makes e the only selected entity and returns it. Selecting nil
// clears the singular selection. A recorded overlap stack of e's kind
// survives only when e is one of its members.
func (s *State) Select(e roadgraph.Entity) roadgraph.Entity {
	s.current = e
	if e == nil {
		return nil
	}
	if st, ok := s.stacks[e.Kind()]; ok {
		if i := st.indexOf(e); i >= 0 {
			st.index = i
		} else {
			delete(s.stacks, e.Kind())
		}
	}
	return e
}

// Clear drops the singular selection. Highlights and polylines remain.
func (s *State) Clear() { s.current = nil }

// Selected returns the selected entity, or nil.
func (s *State) Selected() roadgraph.Entity { return s.current }

// IsSelected reports whether e is the selected entity.
func (s *State) IsSelected(e roadgraph.Entity) bool {
	return roadgraph.Same(s.current, e)
}

// SelectedVertex returns the selected vertex, if the selection is one.
func (s *State) SelectedVertex() (*roadgraph.Vertex, bool) {
	v, ok := s.current.(*roadgraph.Vertex)
	return v, ok
}

// SelectedEdge returns the selected edge, if the selection is one.
func (s *State) SelectedEdge() (*roadgraph.Edge, bool) {
	e, ok := s.current.(*roadgraph.Edge)
	return e, ok
}

// SelectedRelation returns the selected relation, if the selection is one.
func (s *State) SelectedRelation() (*roadgraph.Relation, bool) {
	r, ok := s.current.(*roadgraph.Relation)
	return r, ok
}

// SelectedPlace returns the selected place, if the selection is one.
func (s *State) SelectedPlace() (*roadgraph.Place, bool) {
	p, ok := s.current.(*roadgraph.Place)
	return p, ok
}

// SelectedShapePoint returns the selected shape point, if the selection is one.
func (s *State) SelectedShapePoint() (*roadgraph.ShapePoint, bool) {
	sp, ok := s.current.(*roadgraph.ShapePoint)
	return sp, ok
}

// Highlight adds edges to the highlighted set, keeping first-seen order.
func (s *State) Highlight(edges ...*roadgraph.Edge) {
	for _, e := range edges {
		if e == nil {
			continue
		}
		if _, ok := s.highlightIx[e.ID]; ok {
			continue
		}
		s.highlightIx[e.ID] = len(s.highlighted)
		s.highlighted = append(s.highlighted, e)
	}
}

// SetHighlighted replaces the highlighted set.
func (s *State) SetHighlighted(edges []*roadgraph.Edge) {
	s.ClearHighlights()
	s.Highlight(edges...)
}

// Highlighted returns the highlighted edges in insertion order.
func (s *State) Highlighted() []*roadgraph.Edge { return s.highlighted }

// IsHighlighted reports whether the edge, in this direction, is highlighted.
func (s *State) IsHighlighted(e *roadgraph.Edge) bool {
	if e == nil {
		return false
	}
	_, ok := s.highlightIx[e.ID]
	return ok
}

// ClearHighlights empties the highlighted set.
func (s *State) ClearHighlights() {
	s.highlighted = nil
	clear(s.highlightIx)
}

// AddPolyline selects an ad-hoc polyline given in map coordinates.
func (s *State) AddPolyline(p geo.Polyline) {
	if len(p) == 0 {
		return
	}
	s.polylines = append(s.polylines, p)
}

// Polylines returns the selected polylines.
func (s *State) Polylines() []geo.Polyline { return s.polylines }

// ClearPolylines drops every selected polyline.
func (s *State) ClearPolylines() { s.polylines = nil }
