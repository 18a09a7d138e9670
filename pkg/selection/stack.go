package selection

import "github.com/ha1tch/roadview/pkg/roadgraph"

// Only these kinds keep overlap stacks.
var stackKinds = []roadgraph.Kind{roadgraph.KindVertex, roadgraph.KindEdge, roadgraph.KindRelation}

func stackable(k roadgraph.Kind) bool {
	for _, sk := range stackKinds {
		if sk == k {
			return true
		}
	}
	return false
}

// stack is the ordered set of entities hit by one click, with the index of
// the member currently selected.
type stack struct {
	index   int
	members []roadgraph.Entity
}

func (st *stack) indexOf(e roadgraph.Entity) int {
	for i, m := range st.members {
		if roadgraph.Same(m, e) {
			return i
		}
	}
	return -1
}

// step moves the index by delta, wrapping in both directions.
func (st *stack) step(delta int) roadgraph.Entity {
	n := len(st.members)
	st.index = ((st.index+delta)%n + n) % n
	return st.members[st.index]
}

// SetStack records candidates as the overlap stack for kind and selects the
// first one. Kinds without stacks just select the first candidate.
// It returns the selected entity, or nil when candidates is empty.
func (s *State) SetStack(kind roadgraph.Kind, candidates []roadgraph.Entity) roadgraph.Entity {
	if len(candidates) == 0 {
		delete(s.stacks, kind)
		return nil
	}
	if stackable(kind) {
		members := make([]roadgraph.Entity, len(candidates))
		copy(members, candidates)
		s.stacks[kind] = &stack{members: members}
	}
	return s.Select(candidates[0])
}

// Stack returns the recorded overlap stack for kind.
func (s *State) Stack(kind roadgraph.Kind) []roadgraph.Entity {
	if st, ok := s.stacks[kind]; ok {
		return st.members
	}
	return nil
}

// SameStack reports whether candidates equal the recorded stack for kind as
// a set of identities.
func (s *State) SameStack(kind roadgraph.Kind, candidates []roadgraph.Entity) bool {
	st, ok := s.stacks[kind]
	if !ok {
		return false
	}
	members := identitySet(st.members)
	want := identitySet(candidates)
	if members == nil || want == nil || len(members) != len(want) {
		return false
	}
	for k := range want {
		if !members[k] {
			return false
		}
	}
	return true
}

type identity struct {
	kind roadgraph.Kind
	id   int64
}

// identitySet returns the distinct identities of es, or nil if one is nil.
func identitySet(es []roadgraph.Entity) map[identity]bool {
	set := make(map[identity]bool, len(es))
	for _, e := range es {
		if e == nil {
			return nil
		}
		set[identity{e.Kind(), e.Identity()}] = true
	}
	return set
}

// Next selects the following member of the current selection's stack.
// It reports false, leaving the selection unchanged, when there is no
// stack of more than one entity to cycle through.
func (s *State) Next() (roadgraph.Entity, bool) { return s.cycle(1) }

// Previous selects the preceding member of the current selection's stack.
func (s *State) Previous() (roadgraph.Entity, bool) { return s.cycle(-1) }

func (s *State) cycle(delta int) (roadgraph.Entity, bool) {
	if s.current == nil {
		return nil, false
	}
	st, ok := s.stacks[s.current.Kind()]
	if !ok || len(st.members) < 2 {
		return nil, false
	}
	s.current = st.step(delta)
	return s.current, true
}
