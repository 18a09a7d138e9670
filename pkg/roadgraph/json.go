package roadgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/ha1tch/roadview/pkg/geo"
)

// jsonGraph is the JSON representation of a road graph.
// Coordinates are WGS84 [lat, lng] pairs.
type jsonGraph struct {
	Name      string         `json:"name"`
	Locale    string         `json:"locale,omitempty"`
	World     bool           `json:"world,omitempty"`
	Vertices  []jsonVertex   `json:"vertices"`
	Edges     []jsonEdge     `json:"edges"`
	Relations []jsonRelation `json:"relations,omitempty"`
	Places    []jsonPlace    `json:"places,omitempty"`
}

type jsonVertex struct {
	ID   int64   `json:"id"`
	Node int64   `json:"node,omitempty"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type jsonEdge struct {
	ID     int64             `json:"id"`
	From   int64             `json:"from"`
	To     int64             `json:"to"`
	Way    int64             `json:"way,omitempty"`
	Type   string            `json:"type"`
	Name   string            `json:"name,omitempty"`
	TwoWay bool              `json:"two_way,omitempty"`
	Shape  [][2]float64      `json:"shape,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

type jsonRelation struct {
	ID          int64             `json:"id"`
	OSM         int64             `json:"osm,omitempty"`
	Type        string            `json:"type"`
	Restriction string            `json:"restriction,omitempty"`
	Name        string            `json:"name,omitempty"`
	Members     []int64           `json:"members"`
	Via         int64             `json:"via,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

type jsonPlace struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Population int     `json:"population,omitempty"`
}

// ParseJSON parses a graph from JSON.
func ParseJSON(data []byte) (*Memory, error) {
	var j jsonGraph
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}

	b := NewBuilder(j.Name)
	if j.World {
		b.World()
	}
	if j.Locale != "" {
		tag, err := language.Parse(j.Locale)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", j.Locale, err)
		}
		b.Locale(tag)
	}

	for _, jv := range j.Vertices {
		_, err := b.AddVertex(Vertex{
			ID:       VertexID(jv.ID),
			Node:     NodeID(jv.Node),
			Location: geo.FromLatLng(geo.LatLng{Lat: jv.Lat, Lng: jv.Lng}),
		})
		if err != nil {
			return nil, err
		}
	}

	for _, je := range j.Edges {
		roadType, ok := ParseRoadType(je.Type)
		if !ok {
			return nil, fmt.Errorf("edge %d: unknown road type %q", je.ID, je.Type)
		}
		var shape geo.Polyline
		for _, ll := range je.Shape {
			shape = append(shape, geo.FromLatLng(geo.LatLng{Lat: ll[0], Lng: ll[1]}))
		}
		_, err := b.AddEdge(Edge{
			ID:       EdgeID(je.ID),
			From:     VertexID(je.From),
			To:       VertexID(je.To),
			Way:      WayID(je.Way),
			RoadType: roadType,
			Name:     je.Name,
			TwoWay:   je.TwoWay,
			Shape:    shape,
			Tags:     je.Tags,
		})
		if err != nil {
			return nil, err
		}
	}

	for _, jr := range j.Relations {
		members := make([]EdgeID, len(jr.Members))
		for i, m := range jr.Members {
			members[i] = EdgeID(m)
		}
		_, err := b.AddRelation(Relation{
			ID:          RelationID(jr.ID),
			OSM:         OSMRelationID(jr.OSM),
			Type:        RelationType(jr.Type),
			Restriction: jr.Restriction,
			Name:        jr.Name,
			Members:     members,
			Via:         VertexID(jr.Via),
			Tags:        jr.Tags,
		})
		if err != nil {
			return nil, err
		}
	}

	for _, jp := range j.Places {
		placeType, _ := ParsePlaceType(jp.Type)
		_, err := b.AddPlace(Place{
			ID:         PlaceID(jp.ID),
			Name:       jp.Name,
			Type:       placeType,
			Location:   geo.FromLatLng(geo.LatLng{Lat: jp.Lat, Lng: jp.Lng}),
			Population: jp.Population,
		})
		if err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// LoadJSON reads and parses a graph file.
func LoadJSON(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Load reads every file concurrently. A single file yields its Memory
// graph; several files yield a Composite in argument order.
func Load(ctx context.Context, paths ...string) (Graph, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no graph files: %w", ErrNotFound)
	}
	parts := make([]Graph, len(paths))
	grp, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g, err := LoadJSON(path)
			if err != nil {
				return err
			}
			parts[i] = g
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return NewComposite(parts...), nil
}
