package raster

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/render"
	"github.com/ha1tch/roadview/pkg/roadgraph/roadgraphtest"
	"github.com/ha1tch/roadview/pkg/view"
)

var red = color.RGBA{200, 0, 0, 255}

func newCanvas(t *testing.T, w, h, ss int) *Canvas {
	opts := DefaultOptions()
	opts.Width, opts.Height, opts.Supersample = w, h, ss
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func TestLineColoursPixels(t *testing.T) {
	c := newCanvas(t, 40, 20, 1)
	c.Line([]geo.Point{{X: 0, Y: 10}, {X: 40, Y: 10}}, render.Stroke{Color: red, Width: 3})

	img := c.Image()
	assert.Equal(t, red, img.RGBAAt(20, 10))
	assert.Equal(t, render.Background(), img.RGBAAt(20, 2))
}

func TestZeroWidthLineDrawsNothing(t *testing.T) {
	c := newCanvas(t, 20, 20, 1)
	c.Line([]geo.Point{{X: 0, Y: 10}, {X: 20, Y: 10}}, render.Stroke{Color: red})
	assert.Equal(t, render.Background(), c.Image().RGBAAt(10, 10))
}

func TestDashedLineHasGaps(t *testing.T) {
	c := newCanvas(t, 40, 20, 1)
	c.Line([]geo.Point{{X: 0, Y: 10}, {X: 40, Y: 10}}, render.Stroke{Color: red, Width: 1, Dashed: true})

	img := c.Image()
	assert.Equal(t, red, img.RGBAAt(2, 10))
	assert.Equal(t, render.Background(), img.RGBAAt(8, 10))
}

func TestDotAndTranslucentBlend(t *testing.T) {
	c := newCanvas(t, 20, 20, 1)
	c.Dot(geo.Point{X: 10, Y: 10}, 4, color.RGBA{0, 0, 0, 128}, render.Stroke{})

	px := c.Image().RGBAAt(10, 10)
	bg := render.Background()
	assert.Less(t, px.R, bg.R)
	assert.Greater(t, px.R, uint8(0))
}

func TestMeasureTextGrowsWithLength(t *testing.T) {
	c := newCanvas(t, 10, 10, 4)
	short := c.MeasureText("ab")
	long := c.MeasureText("abcdef")
	assert.Greater(t, long.X, short.X)
	assert.Equal(t, short.Y, long.Y)
	assert.InDelta(t, 14, short.Y, 4)
}

func TestWritePNGPaintsTown(t *testing.T) {
	c := newCanvas(t, 200, 150, 2)
	m := view.New(roadgraphtest.Town(t), nil, view.DefaultOptions(), nil)
	stats := render.NewPipeline(render.DefaultOptions(), nil).Paint(context.Background(), c, m)
	assert.Equal(t, 12, stats.Edges)

	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}
