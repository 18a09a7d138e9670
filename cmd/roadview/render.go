package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/roadview/pkg/render"
	"github.com/ha1tch/roadview/pkg/render/raster"
	"github.com/ha1tch/roadview/pkg/render/svg"
	"github.com/ha1tch/roadview/pkg/viewer"
)

func renderCmd() *cobra.Command {
	var (
		output   string
		format   string
		queries  []string
		width    int
		height   int
		debug    bool
		inactive bool
	)
	cmd := &cobra.Command{
		Use:   "render <graph.json>... -o <out.png|out.svg>",
		Short: "Render a graph to PNG or SVG",
		Long: "Render a graph to PNG or SVG.\n\n" +
			"Each --query is resolved in order before painting, so queries can\n" +
			"select entities, highlight routes or set the viewport:\n\n" +
			"  roadview render city.json -o out.png -q '1000,1000:2000,2000' -q e3",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l, cfg, err := openLayer(ctx, args)
			if err != nil {
				return err
			}
			if format == "" {
				format = formatFor(output)
			}
			if width > 0 {
				cfg.Render.Width = width
			}
			if height > 0 {
				cfg.Render.Height = height
			}

			m := l.Model()
			m.SetDebug(debug)
			m.SetActive(!inactive)
			for _, q := range queries {
				fb := l.Query(ctx, q)
				logger.Info("query", "text", q, "status", fb.Status())
			}

			var buf bytes.Buffer
			stats, err := paintTo(ctx, &buf, format, l, cfg.RasterOptions())
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = buf.WriteTo(os.Stdout)
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%s %s  %s\n", Good.Sprint("wrote"), output,
				Subtle.Sprintf("%s band, %d edges, %d labels, %s", stats.Band, stats.Edges, stats.Labels, stats.Duration))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout")
	cmd.Flags().StringVar(&format, "format", "", "png or svg (default from the output extension)")
	cmd.Flags().StringArrayVarP(&queries, "query", "q", nil, "query to resolve before painting (repeatable)")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "image height in pixels")
	cmd.Flags().BoolVar(&debug, "debug", false, "draw the debug overlay")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "render as an inactive layer")
	return cmd
}

func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return "png"
	}
	return "svg"
}

func paintTo(ctx context.Context, w io.Writer, format string, l *viewer.Layer, opts raster.Options) (render.Stats, error) {
	switch format {
	case "png":
		c, err := raster.New(opts)
		if err != nil {
			return render.Stats{}, err
		}
		stats := l.Paint(ctx, c)
		return stats, c.WritePNG(w)
	case "svg":
		c := svg.New(svg.Options{
			Width:    opts.Width,
			Height:   opts.Height,
			FontSize: int(opts.FontSize),
			Title:    l.Model().Graph().Name(),
		})
		stats := l.Paint(ctx, c)
		_, err := c.WriteTo(w)
		return stats, err
	default:
		return render.Stats{}, fmt.Errorf("unknown format %q", format)
	}
}
