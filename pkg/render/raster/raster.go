// Package raster draws onto an in-memory RGBA image and encodes it as PNG.
// Drawing happens at a multiple of the output size and is scaled down on
// output for smoother lines and text.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/render"
)

// Options configures a raster canvas.
type Options struct {
	Width       int
	Height      int
	Supersample int
	FontSize    float64
	Background  color.RGBA
}

// DefaultOptions returns an 800 by 600 canvas with 4x supersampling.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Supersample: 4,
		FontSize:    12,
		Background:  render.Background(),
	}
}

// Canvas implements render.Canvas.
type Canvas struct {
	img   *image.RGBA
	opts  Options
	scale float64
	face  font.Face
}

// New creates a canvas cleared to the background colour.
func New(opts Options) (*Canvas, error) {
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 12
	}
	scale := float64(opts.Supersample)

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    opts.FontSize * scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width*opts.Supersample, opts.Height*opts.Supersample))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	return &Canvas{img: img, opts: opts, scale: scale, face: face}, nil
}

func (c *Canvas) Size() geo.Point {
	return geo.Point{X: float64(c.opts.Width), Y: float64(c.opts.Height)}
}

func (c *Canvas) Line(points []geo.Point, s render.Stroke) {
	if s.Width <= 0 || len(points) == 0 {
		return
	}
	if len(points) == 1 {
		c.fillCircle(c.up(points[0]), s.Width*c.scale/2, s.Color)
		return
	}
	thickness := math.Max(s.Width*c.scale, 1)
	dash := dasher{on: 6 * c.scale, off: 4 * c.scale, enabled: s.Dashed}
	for i := 1; i < len(points); i++ {
		c.drawLine(c.up(points[i-1]), c.up(points[i]), thickness, s.Color, &dash)
	}
}

func (c *Canvas) Dot(center geo.Point, radius float64, fill color.RGBA, outline render.Stroke) {
	at := c.up(center)
	r := radius * c.scale
	c.fillCircle(at, r, fill)
	if outline.Width <= 0 {
		return
	}
	thickness := outline.Width * c.scale
	for angle := 0.0; angle < 2*math.Pi; angle += 0.005 {
		nx, ny := math.Cos(angle), math.Sin(angle)
		for t := -thickness / 2; t <= thickness/2; t += 0.5 {
			c.blend(int(at.X+nx*(r+t)), int(at.Y+ny*(r+t)), outline.Color)
		}
	}
}

func (c *Canvas) Box(r geo.Rect, s render.Stroke) {
	c.Line([]geo.Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
		r.Min,
	}, s)
}

func (c *Canvas) Text(at geo.Point, text string, col color.RGBA) {
	ascent := c.face.Metrics().Ascent.Ceil()
	p := c.up(at)
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.Point26_6{X: fixed.I(int(p.X)), Y: fixed.I(int(p.Y) + ascent)},
	}
	d.DrawString(text)
}

func (c *Canvas) MeasureText(text string) geo.Point {
	m := c.face.Metrics()
	w := font.MeasureString(c.face, text).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	return geo.Point{X: float64(w) / c.scale, Y: float64(h) / c.scale}
}

// Image returns the canvas scaled down to its output size.
func (c *Canvas) Image() *image.RGBA {
	if c.opts.Supersample == 1 {
		return c.img
	}
	out := image.NewRGBA(image.Rect(0, 0, c.opts.Width, c.opts.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Over, nil)
	return out
}

// WritePNG encodes the output image.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}

func (c *Canvas) up(p geo.Point) geo.Point {
	return geo.Point{X: p.X * c.scale, Y: p.Y * c.scale}
}

// dasher tracks the dash phase along a polyline.
type dasher struct {
	on, off float64
	pos     float64
	enabled bool
}

func (d *dasher) visible() bool {
	if !d.enabled {
		return true
	}
	return math.Mod(d.pos, d.on+d.off) < d.on
}

// drawLine draws a thick segment by stepping along it and filling across
// its perpendicular.
func (c *Canvas) drawLine(a, b geo.Point, thickness float64, col color.RGBA, dash *dasher) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	halfThick := thickness / 2
	if dist < 1 {
		c.fillCircle(a, halfThick, col)
		return
	}

	perpX := -dy / dist
	perpY := dx / dist
	steps := math.Ceil(dist)
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		if dash.visible() {
			cx := a.X + dx*t
			cy := a.Y + dy*t
			for offset := -halfThick; offset <= halfThick; offset += 0.5 {
				c.blend(int(cx+perpX*offset), int(cy+perpY*offset), col)
			}
		}
		if i < steps {
			dash.pos += dist / steps
		}
	}
}

func (c *Canvas) fillCircle(at geo.Point, r float64, col color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		xExtent := math.Sqrt(math.Max(r*r-dy*dy, 0))
		for dx := -xExtent; dx <= xExtent; dx++ {
			c.blend(int(at.X+dx), int(at.Y+dy), col)
		}
	}
}

// blend composites col over the pixel at x, y.
func (c *Canvas) blend(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(c.img.Rect)) {
		return
	}
	if col.A == 255 {
		c.img.SetRGBA(x, y, col)
		return
	}
	if col.A == 0 {
		return
	}
	dst := c.img.RGBAAt(x, y)
	a := uint32(col.A)
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	c.img.SetRGBA(x, y, color.RGBA{
		R: mix(col.R, dst.R),
		G: mix(col.G, dst.G),
		B: mix(col.B, dst.B),
		A: uint8(a + uint32(dst.A)*(255-a)/255),
	})
}
