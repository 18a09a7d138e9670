package term

import (
	"context"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/render"
	"github.com/ha1tch/roadview/pkg/roadgraph/roadgraphtest"
	"github.com/ha1tch/roadview/pkg/view"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

var black = color.RGBA{0, 0, 0, 255}

func TestCellMapping(t *testing.T) {
	c := New(newScreen(t, 20, 10), 2, 1, 10, 5)
	assert.Equal(t, geo.Point{X: 80, Y: 80}, c.Size())

	x, y := c.Cell(geo.Point{X: 17, Y: 33})
	assert.Equal(t, 4, x)
	assert.Equal(t, 3, y)
	assert.Equal(t, geo.Point{X: 20, Y: 40}, c.Pixel(4, 3))
}

func TestLineAndClip(t *testing.T) {
	s := newScreen(t, 20, 10)
	c := New(s, 0, 0, 10, 5)
	c.Line([]geo.Point{{X: 0, Y: 8}, {X: 200, Y: 8}}, render.Stroke{Color: black, Width: 6})

	assert.Equal(t, '█', runeAt(s, 0, 0))
	assert.Equal(t, '█', runeAt(s, 9, 0))
	assert.NotEqual(t, '█', runeAt(s, 10, 0), "clipped to the region")
}

func TestBoxAndText(t *testing.T) {
	s := newScreen(t, 20, 10)
	c := New(s, 0, 0, 20, 10)
	c.Box(geo.Rect{Max: geo.Point{X: 40, Y: 48}}, render.Stroke{Color: black, Width: 1})
	c.Text(geo.Point{X: 8, Y: 16}, "hi", black)

	assert.Equal(t, '┌', runeAt(s, 0, 0))
	assert.Equal(t, '┘', runeAt(s, 5, 3))
	assert.Equal(t, 'h', runeAt(s, 1, 1))
	assert.Equal(t, 'i', runeAt(s, 2, 1))
	assert.Equal(t, geo.Point{X: 16, Y: 16}, c.MeasureText("hi"))
}

func TestPaintTown(t *testing.T) {
	s := newScreen(t, 80, 40)
	c := New(s, 0, 0, 80, 40)
	c.Clear()
	m := view.New(roadgraphtest.Town(t), nil, view.DefaultOptions(), nil)
	stats := render.NewPipeline(render.DefaultOptions(), nil).Paint(context.Background(), c, m)
	assert.Equal(t, 12, stats.Edges)
	assert.Positive(t, stats.Places)
}
