// Package svg draws into an SVG document.
package svg

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"strings"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/render"
)

// Options controls SVG output.
type Options struct {
	Width    int
	Height   int
	FontSize int
	Title    string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, FontSize: 12}
}

// Canvas implements render.Canvas by appending SVG elements.
type Canvas struct {
	opts Options
	body strings.Builder
}

// New creates an empty SVG canvas.
func New(opts Options) *Canvas {
	if opts.Width == 0 {
		opts.Width = 800
	}
	if opts.Height == 0 {
		opts.Height = 600
	}
	if opts.FontSize == 0 {
		opts.FontSize = 12
	}
	return &Canvas{opts: opts}
}

func (c *Canvas) Size() geo.Point {
	return geo.Point{X: float64(c.opts.Width), Y: float64(c.opts.Height)}
}

func (c *Canvas) Line(points []geo.Point, s render.Stroke) {
	if s.Width <= 0 || len(points) == 0 {
		return
	}
	var pts strings.Builder
	for i, p := range points {
		if i > 0 {
			pts.WriteByte(' ')
		}
		fmt.Fprintf(&pts, "%.1f,%.1f", p.X, p.Y)
	}
	fmt.Fprintf(&c.body, `<polyline points="%s" fill="none" %s stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
		pts.String(), strokeAttrs(s))
}

func (c *Canvas) Dot(center geo.Point, radius float64, fill color.RGBA, outline render.Stroke) {
	stroke := `stroke="none"`
	if outline.Width > 0 {
		stroke = strokeAttrs(outline)
	}
	fmt.Fprintf(&c.body, `<circle cx="%.1f" cy="%.1f" r="%.1f" %s %s/>`+"\n",
		center.X, center.Y, radius, paint("fill", fill), stroke)
}

func (c *Canvas) Box(r geo.Rect, s render.Stroke) {
	if s.Width <= 0 {
		return
	}
	fmt.Fprintf(&c.body, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" %s/>`+"\n",
		r.Min.X, r.Min.Y, r.Width(), r.Height(), strokeAttrs(s))
}

func (c *Canvas) Text(at geo.Point, text string, col color.RGBA) {
	fmt.Fprintf(&c.body, `<text x="%.1f" y="%.1f" class="label" %s>%s</text>`+"\n",
		at.X, at.Y+float64(c.opts.FontSize), paint("fill", col), html.EscapeString(text))
}

// MeasureText estimates text extent from the font size.
func (c *Canvas) MeasureText(text string) geo.Point {
	n := len([]rune(text))
	return geo.Point{
		X: float64(n*c.opts.FontSize) * 0.6,
		Y: float64(c.opts.FontSize) * 1.2,
	}
}

// String returns the complete document.
func (c *Canvas) String() string {
	var sb strings.Builder
	bg := render.Background()
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<style>
  .label { font-family: sans-serif; font-size: %dpx; }
</style>
`, c.opts.Width, c.opts.Height, c.opts.Width, c.opts.Height, c.opts.FontSize))
	if c.opts.Title != "" {
		sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(c.opts.Title)))
	}
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" %s/>`+"\n", c.opts.Width, c.opts.Height, paint("fill", bg)))
	sb.WriteString(c.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteTo writes the document to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.String())
	return int64(n), err
}

func strokeAttrs(s render.Stroke) string {
	attrs := fmt.Sprintf(`%s stroke-width="%.1f"`, paint("stroke", s.Color), s.Width)
	if s.Dashed {
		attrs += ` stroke-dasharray="6,4"`
	}
	return attrs
}

// paint formats a colour attribute, adding an opacity for translucent
// colours.
func paint(attr string, c color.RGBA) string {
	if c.A == 0 {
		return fmt.Sprintf(`%s="none"`, attr)
	}
	s := fmt.Sprintf(`%s="#%02x%02x%02x"`, attr, c.R, c.G, c.B)
	if c.A < 255 {
		s += fmt.Sprintf(` %s-opacity="%.2f"`, attr, float64(c.A)/255)
	}
	return s
}
