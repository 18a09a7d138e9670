package roadgraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ha1tch/roadview/pkg/geo"
)

// Identifier spaces.
type (
	EdgeID        int64 // directed edge; the reverse of e is -e
	VertexID      int64
	RelationID    int64
	PlaceID       int64
	NodeID        int64 // OSM node
	WayID         int64 // OSM way
	OSMRelationID int64 // OSM relation
)

// Reversed returns the identifier of the opposite direction.
func (id EdgeID) Reversed() EdgeID { return -id }

// IsForward reports whether the identifier names a forward edge.
func (id EdgeID) IsForward() bool { return id > 0 }

// Kind enumerates the selectable entity kinds.
type Kind int

const (
	KindNone Kind = iota
	KindVertex
	KindEdge
	KindRelation
	KindPlace
	KindShapePoint
)

var kindNames = [...]string{"none", "vertex", "edge", "relation", "place", "shape point"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Entity is anything that can be selected. Identity is unique within a kind.
type Entity interface {
	Kind() Kind
	Identity() int64
}

// Same reports whether two entities are the same object by identity.
func Same(a, b Entity) bool {
	if a == nil || b == nil {
		return false
	}
	if sa, ok := a.(*ShapePoint); ok {
		sb, ok := b.(*ShapePoint)
		return ok && sa.Edge == sb.Edge && sa.Index == sb.Index
	}
	return a.Kind() == b.Kind() && a.Identity() == b.Identity()
}

// RoadType orders roads by importance. Lower values are more important.
type RoadType int

const (
	Freeway RoadType = iota
	UrbanHighway
	Highway
	Throughway
	LocalRoad
	LowSpeedRoad
	PrivateRoad
	Walkway
	Ferry
	NullRoad
)

var roadTypeNames = [...]string{
	"freeway", "urban_highway", "highway", "throughway", "local_road",
	"low_speed_road", "private_road", "walkway", "ferry", "null",
}

func (t RoadType) String() string {
	if t < 0 || int(t) >= len(roadTypeNames) {
		return "RoadType(" + strconv.Itoa(int(t)) + ")"
	}
	return roadTypeNames[t]
}

// IsMoreImportantThan reports whether t outranks o.
func (t RoadType) IsMoreImportantThan(o RoadType) bool { return t < o }

// RoadTypes returns every road type from most to least important.
func RoadTypes() []RoadType {
	out := make([]RoadType, 0, len(roadTypeNames))
	for t := Freeway; t <= NullRoad; t++ {
		out = append(out, t)
	}
	return out
}

// ParseRoadType accepts the names produced by String, case-insensitively,
// with dashes or spaces in place of underscores.
func ParseRoadType(s string) (RoadType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	for i, name := range roadTypeNames {
		if name == s {
			return RoadType(i), true
		}
	}
	return NullRoad, false
}

// Vertex is a graph node where edges meet.
type Vertex struct {
	ID       VertexID
	Node     NodeID
	Location geo.Point
}

func (v *Vertex) Kind() Kind      { return KindVertex }
func (v *Vertex) Identity() int64 { return int64(v.ID) }

func (v *Vertex) String() string { return fmt.Sprintf("vertex %d", v.ID) }

// Edge is a directed road segment between two vertices.
type Edge struct {
	ID       EdgeID
	From, To VertexID
	Way      WayID
	FromNode NodeID
	ToNode   NodeID
	RoadType RoadType
	Name     string
	TwoWay   bool
	Shape    geo.Polyline
	Tags     map[string]string

	// Index is the position of the forward edge in the edge store.
	Index int
}

func (e *Edge) Kind() Kind      { return KindEdge }
func (e *Edge) Identity() int64 { return int64(e.ID) }

func (e *Edge) String() string { return fmt.Sprintf("edge %d", e.ID) }

// IsForward reports whether this is the stored direction.
func (e *Edge) IsForward() bool { return e.ID.IsForward() }

// Length returns the shape length in map units.
func (e *Edge) Length() float64 { return e.Shape.Length() }

// Bounds returns the shape bounds.
func (e *Edge) Bounds() geo.Rect { return e.Shape.Bounds() }

// Tag returns the value stored under key.
func (e *Edge) Tag(key string) (string, bool) {
	v, ok := e.Tags[key]
	return v, ok
}

// MapIdentifier returns the compact way/node encoding of the edge.
func (e *Edge) MapIdentifier() MapEdgeIdentifier {
	return MapEdgeIdentifier{Way: e.Way, From: e.FromNode, To: e.ToNode}
}

// ShapePoints returns the interior points of the edge shape.
func (e *Edge) ShapePoints() []ShapePoint {
	if len(e.Shape) <= 2 {
		return nil
	}
	out := make([]ShapePoint, 0, len(e.Shape)-2)
	for i := 1; i < len(e.Shape)-1; i++ {
		out = append(out, ShapePoint{Edge: e.ID, Index: i, Location: e.Shape[i]})
	}
	return out
}

// ShapePoint is an interior point of an edge's geometry.
type ShapePoint struct {
	Edge     EdgeID
	Index    int
	Location geo.Point
}

func (s *ShapePoint) Kind() Kind { return KindShapePoint }

// Identity packs the edge and index. It is unique only while Index is below
// 2^20; Same compares shape points by edge and index instead.
func (s *ShapePoint) Identity() int64 { return int64(s.Edge)<<20 | int64(s.Index) }

func (s *ShapePoint) String() string {
	return fmt.Sprintf("shape point %d of edge %d", s.Index, s.Edge)
}

// RelationType classifies relations.
type RelationType string

const (
	RelationRestriction RelationType = "restriction"
	RelationRoute       RelationType = "route"
	RelationOther       RelationType = "other"
)

// Relation groups edges into a turn restriction or a named route.
type Relation struct {
	ID          RelationID
	OSM         OSMRelationID
	Type        RelationType
	Restriction string // e.g. no_left_turn, only_straight_on
	Name        string
	Members     []EdgeID // route order
	Via         VertexID
	Tags        map[string]string

	bounds geo.Rect
}

func (r *Relation) Kind() Kind      { return KindRelation }
func (r *Relation) Identity() int64 { return int64(r.ID) }

func (r *Relation) String() string { return fmt.Sprintf("relation %d", r.ID) }

// IsRestriction reports whether the relation is a turn restriction.
func (r *Relation) IsRestriction() bool { return r.Type == RelationRestriction }

// IsOnlyRestriction reports whether the restriction names the one allowed
// route rather than a forbidden one.
func (r *Relation) IsOnlyRestriction() bool {
	return r.IsRestriction() && strings.HasPrefix(r.Restriction, "only_")
}

// Bounds returns the union of the member edge bounds.
func (r *Relation) Bounds() geo.Rect { return r.bounds }

// PlaceType classifies places.
type PlaceType string

const (
	PlaceCity         PlaceType = "city"
	PlaceTown         PlaceType = "town"
	PlaceVillage      PlaceType = "village"
	PlaceHamlet       PlaceType = "hamlet"
	PlaceNeighborhood PlaceType = "neighborhood"
	PlaceOther        PlaceType = "other"
)

// PlaceTypes returns every place type from largest to smallest.
func PlaceTypes() []PlaceType {
	return []PlaceType{PlaceCity, PlaceTown, PlaceVillage, PlaceHamlet, PlaceNeighborhood, PlaceOther}
}

// ParsePlaceType matches a known place type case-insensitively.
// "neighbourhood" is accepted as well.
func ParsePlaceType(s string) (PlaceType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "neighbourhood" {
		return PlaceNeighborhood, true
	}
	for _, t := range PlaceTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return PlaceOther, false
}

// Place is a named populated location.
type Place struct {
	ID         PlaceID
	Name       string
	Type       PlaceType
	Location   geo.Point
	Population int
}

func (p *Place) Kind() Kind      { return KindPlace }
func (p *Place) Identity() int64 { return int64(p.ID) }

func (p *Place) String() string { return fmt.Sprintf("place %d (%s)", p.ID, p.Name) }

// IsCity reports whether the place has city status.
func (p *Place) IsCity() bool { return p.Type == PlaceCity }

// MapEdgeIdentifier names an edge by OSM way and its end nodes.
// The text form is "way-from-to".
type MapEdgeIdentifier struct {
	Way  WayID
	From NodeID
	To   NodeID
}

func (m MapEdgeIdentifier) String() string {
	return fmt.Sprintf("%d-%d-%d", m.Way, m.From, m.To)
}

// ParseMapEdgeIdentifier parses the "way-from-to" form.
func ParseMapEdgeIdentifier(s string) (MapEdgeIdentifier, bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return MapEdgeIdentifier{}, false
	}
	var ids [3]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n <= 0 {
			return MapEdgeIdentifier{}, false
		}
		ids[i] = n
	}
	return MapEdgeIdentifier{Way: WayID(ids[0]), From: NodeID(ids[1]), To: NodeID(ids[2])}, true
}

// Route is an ordered list of connected edges.
type Route []*Edge

// Bounds returns the union of the edge bounds.
func (r Route) Bounds() geo.Rect {
	var b geo.Rect
	for _, e := range r {
		b = b.Union(e.Bounds())
	}
	return b
}

// Length returns the summed edge length.
func (r Route) Length() float64 {
	total := 0.0
	for _, e := range r {
		total += e.Length()
	}
	return total
}
