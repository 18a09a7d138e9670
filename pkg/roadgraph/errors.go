// Package roadgraph defines the read-only road network consumed by the viewer.
//
// The viewer never mutates a graph. It looks entities up by one of five
// identifier spaces (edge, vertex, OSM node, OSM way, OSM relation), iterates
// forward edges, relations and places inside a rectangle, snaps points to
// nearby edges and asks for routes. Graph is the narrow interface for all of
// that; Memory is the in-process implementation used by the command line
// tools and the tests, and Composite stitches several graphs together.
//
// # Identity
//
// Entities are compared by kind and identifier, never by value. A directed
// edge and its reverse are different entities: the reverse of edge 7 is
// edge -7.
//
// # Thread Safety
//
// A Memory graph is built single-threaded through Builder and is read-only
// after Build returns, so it can be shared freely.
package roadgraph

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrFrozen is returned when a Builder is used after Build.
	ErrFrozen = errors.New("graph builder is frozen")

	// ErrNotFound is returned when an edge or relation references a
	// vertex or edge that was never added.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an identifier is added twice.
	ErrDuplicate = errors.New("duplicate identifier")

	// ErrInvalidID is returned for non-positive forward identifiers.
	ErrInvalidID = errors.New("identifiers must be positive")

	// ErrNoRoute is returned when the destination cannot be reached.
	ErrNoRoute = errors.New("no route")

	// ErrRouteLimit is returned when a route search exceeds its step limit.
	ErrRouteLimit = errors.New("route search exceeded step limit")
)
