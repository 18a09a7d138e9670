package main

import (
	"bytes"
	"context"
	"encoding/xml"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/roadview/pkg/config"
	"github.com/ha1tch/roadview/pkg/roadgraph/roadgraphtest"
	"github.com/ha1tch/roadview/pkg/viewer"
)

func TestFormatFor(t *testing.T) {
	assert.Equal(t, "png", formatFor("out.PNG"))
	assert.Equal(t, "svg", formatFor("out.svg"))
	assert.Equal(t, "svg", formatFor(""))
}

func townLayer(t *testing.T) *viewer.Layer {
	t.Helper()
	l, err := viewer.Open(roadgraphtest.Town(t), config.Default(), nil, nil, version, nil)
	require.NoError(t, err)
	return l
}

func TestPaintToPNG(t *testing.T) {
	opts := config.Default().RasterOptions()
	opts.Width, opts.Height, opts.Supersample = 120, 90, 1

	var buf bytes.Buffer
	stats, err := paintTo(context.Background(), &buf, "png", townLayer(t), opts)
	require.NoError(t, err)
	assert.Positive(t, stats.Edges)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestPaintToSVG(t *testing.T) {
	var buf bytes.Buffer
	_, err := paintTo(context.Background(), &buf, "svg", townLayer(t), config.Default().RasterOptions())
	require.NoError(t, err)

	dec := xml.NewDecoder(&buf)
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
}

func TestPaintToUnknownFormat(t *testing.T) {
	_, err := paintTo(context.Background(), io.Discard, "gif", townLayer(t), config.Default().RasterOptions())
	assert.ErrorContains(t, err, "gif")
}
