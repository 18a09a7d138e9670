// Package term draws onto a region of a tcell screen. Each cell stands for
// a block of CellWidth by CellHeight pixels.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/render"
)

const (
	CellWidth  = 8
	CellHeight = 16
)

// Canvas implements render.Canvas on a rectangle of screen cells.
type Canvas struct {
	screen     tcell.Screen
	x, y, w, h int
	background tcell.Color
}

// New returns a canvas over the w by h cells whose top-left cell is x, y.
func New(screen tcell.Screen, x, y, w, h int) *Canvas {
	return &Canvas{screen: screen, x: x, y: y, w: w, h: h, background: tcellColor(render.Background())}
}

// Clear fills the region with the background colour.
func (c *Canvas) Clear() {
	style := tcell.StyleDefault.Background(c.background)
	for row := 0; row < c.h; row++ {
		for col := 0; col < c.w; col++ {
			c.screen.SetContent(c.x+col, c.y+row, ' ', nil, style)
		}
	}
}

func (c *Canvas) Size() geo.Point {
	return geo.Point{X: float64(c.w * CellWidth), Y: float64(c.h * CellHeight)}
}

// Cell converts a pixel position to the screen cell covering it.
func (c *Canvas) Cell(p geo.Point) (int, int) {
	return c.x + int(math.Floor(p.X/CellWidth)), c.y + int(math.Floor(p.Y/CellHeight))
}

// Pixel converts a screen cell to the pixel at its centre.
func (c *Canvas) Pixel(col, row int) geo.Point {
	return geo.Point{
		X: float64(col-c.x)*CellWidth + CellWidth/2,
		Y: float64(row-c.y)*CellHeight + CellHeight/2,
	}
}

func (c *Canvas) Line(points []geo.Point, s render.Stroke) {
	if s.Width <= 0 || len(points) == 0 {
		return
	}
	r := '·'
	switch {
	case s.Width >= 6:
		r = '█'
	case s.Width >= 3:
		r = '▪'
	}
	style := c.style(s.Color)
	for i := 1; i < len(points); i++ {
		x0, y0 := c.Cell(points[i-1])
		x1, y1 := c.Cell(points[i])
		n := 0
		c.walk(x0, y0, x1, y1, func(x, y int) {
			if !s.Dashed || n%3 != 2 {
				c.set(x, y, r, style)
			}
			n++
		})
	}
	if len(points) == 1 {
		x, y := c.Cell(points[0])
		c.set(x, y, r, style)
	}
}

func (c *Canvas) Dot(center geo.Point, radius float64, fill color.RGBA, _ render.Stroke) {
	r := '•'
	if radius >= 5 {
		r = '●'
	}
	x, y := c.Cell(center)
	c.set(x, y, r, c.style(fill))
}

// Box draws a frame with line-drawing characters.
func (c *Canvas) Box(r geo.Rect, s render.Stroke) {
	if s.Width <= 0 {
		return
	}
	style := c.style(s.Color)
	x0, y0 := c.Cell(r.Min)
	x1, y1 := c.Cell(r.Max)
	if x1 <= x0 || y1 <= y0 {
		c.set(x0, y0, '□', style)
		return
	}

	c.set(x0, y0, '┌', style)
	c.set(x1, y0, '┐', style)
	c.set(x0, y1, '└', style)
	c.set(x1, y1, '┘', style)
	for i := x0 + 1; i < x1; i++ {
		c.set(i, y0, '─', style)
		c.set(i, y1, '─', style)
	}
	for i := y0 + 1; i < y1; i++ {
		c.set(x0, i, '│', style)
		c.set(x1, i, '│', style)
	}
}

func (c *Canvas) Text(at geo.Point, text string, col color.RGBA) {
	x, y := c.Cell(at)
	style := c.style(col)
	for i, r := range []rune(text) {
		c.set(x+i, y, r, style)
	}
}

func (c *Canvas) MeasureText(text string) geo.Point {
	return geo.Point{X: float64(len([]rune(text)) * CellWidth), Y: CellHeight}
}

func (c *Canvas) style(col color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcellColor(col)).Background(c.background)
}

// set writes a cell if it lies inside the region.
func (c *Canvas) set(x, y int, r rune, style tcell.Style) {
	if x < c.x || y < c.y || x >= c.x+c.w || y >= c.y+c.h {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

// walk visits the cells on the segment from x0, y0 to x1, y1.
func (c *Canvas) walk(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
