// Package render draws a view model onto a Canvas in a fixed, zoom-band
// dependent order, recording hit shapes for the selection as it goes.
package render

import (
	"image/color"

	"github.com/ha1tch/roadview/pkg/geo"
)

// Canvas is a screen-space drawing surface. Coordinates are pixels with Y
// growing downward.
type Canvas interface {
	Size() geo.Point
	Line(points []geo.Point, s Stroke)
	Dot(center geo.Point, radius float64, fill color.RGBA, outline Stroke)
	Box(r geo.Rect, s Stroke)
	// Text draws text with its top-left corner at at.
	Text(at geo.Point, text string, c color.RGBA)
	MeasureText(text string) geo.Point
}

// Stroke describes how a line is drawn. A zero Width draws nothing.
type Stroke struct {
	Color  color.RGBA
	Width  float64
	Dashed bool
}

// Colors used in rendering
var (
	colorBackground = color.RGBA{250, 250, 248, 255} // #fafaf8
	colorOutline    = color.RGBA{153, 153, 153, 255} // #999
	colorText       = color.RGBA{51, 51, 51, 255}    // #333
	colorLeader     = color.RGBA{102, 102, 102, 255} // #666
	colorMuted      = color.RGBA{200, 200, 200, 255} // #c8c8c8
	colorHighlight  = color.RGBA{255, 152, 0, 255}   // #ff9800
	colorSelected   = color.RGBA{21, 101, 192, 255}  // #1565c0
	colorVertex     = color.RGBA{97, 97, 97, 255}    // #616161
	colorShapePoint = color.RGBA{0, 131, 143, 255}   // #00838f
	colorPlace      = color.RGBA{123, 31, 162, 255}  // #7b1fa2
	colorNoTurn     = color.RGBA{198, 40, 40, 255}   // #c62828
	colorOnlyTurn   = color.RGBA{46, 125, 50, 255}   // #2e7d32
	colorRoute      = color.RGBA{94, 53, 177, 160}   // #5e35b1, translucent
	colorPolyline   = color.RGBA{216, 27, 96, 255}   // #d81b60
	colorDebug      = color.RGBA{230, 81, 0, 255}    // #e65100
	colorNone       = color.RGBA{}
)

// Background is the colour backends clear to.
func Background() color.RGBA { return colorBackground }
