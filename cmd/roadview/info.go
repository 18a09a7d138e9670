package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <graph.json>...",
		Short: "Show graph statistics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd.Context(), args)
			if err != nil {
				return err
			}

			b := g.Bounds()
			fmt.Printf("%s %s\n\n", Brand.Sprint(g.Name()), Subtle.Sprintf("(%s)", g.Locale()))
			fmt.Printf("  Bounds:     %s\n", b)
			if !b.IsEmpty() {
				fmt.Printf("  Lat/lng:    %s to %s\n", geo.ToLatLng(b.Min), geo.ToLatLng(b.Max))
			}
			fmt.Printf("  Composite:  %t\n\n", g.IsComposite())

			table([]string{"KIND", "COUNT"}, [][]string{
				{"edges", strconv.Itoa(g.EdgeCount())},
				{"vertices", strconv.Itoa(g.VertexCount())},
				{"relations", strconv.Itoa(g.RelationCount())},
				{"places", strconv.Itoa(g.PlaceCount())},
			})
			fmt.Println()

			byType := make(map[roadgraph.RoadType]int)
			var total float64
			for _, e := range g.ForwardEdges(geo.Rect{}) {
				byType[e.RoadType]++
				total += e.Length()
			}
			var rows [][]string
			for _, t := range roadgraph.RoadTypes() {
				if n := byType[t]; n > 0 {
					rows = append(rows, []string{t.String(), strconv.Itoa(n)})
				}
			}
			table([]string{"ROAD TYPE", "EDGES"}, rows)
			fmt.Printf("\n  Total length: %s\n", Info.Sprintf("%.1f km", total/1000))
			return nil
		},
	}
}
