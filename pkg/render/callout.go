package render

import (
	"context"
	"image/color"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/view"
)

// CalloutOptions is the offset grid and margins used to place callouts.
type CalloutOptions struct {
	MinOffset   float64
	MaxOffset   float64
	Step        float64
	Margin      float64 // added to a candidate before testing it
	ClaimMargin float64 // added to a placed label when claiming it
}

// DefaultCalloutOptions returns the standard callout grid.
func DefaultCalloutOptions() CalloutOptions {
	return CalloutOptions{
		MinOffset:   30,
		MaxOffset:   100,
		Step:        10,
		Margin:      5,
		ClaimMargin: 20,
	}
}

// PlaceCallout finds room for a label of the given size up and to the
// right of anchor. Offsets are tried column by column: dx from MinOffset
// to MaxOffset, and within each dx, dy from -MinOffset to -MaxOffset.
// A spot is free when its claim box, grown by Margin, touches no claimed
// rectangle, so claims never overlap. The first free spot is claimed and
// its label box returned; the elbow is the label corner nearest the anchor.
func PlaceCallout(labels *view.Labels, anchor, size geo.Point, opts CalloutOptions) (box geo.Rect, elbow geo.Point, ok bool) {
	if opts.Step <= 0 {
		return geo.Rect{}, geo.Point{}, false
	}
	for dx := opts.MinOffset; dx <= opts.MaxOffset; dx += opts.Step {
		for dy := opts.MinOffset; dy <= opts.MaxOffset; dy += opts.Step {
			corner := anchor.Add(dx, -dy)
			candidate := geo.Rect{
				Min: geo.Point{X: corner.X, Y: corner.Y - size.Y},
				Max: geo.Point{X: corner.X + size.X, Y: corner.Y},
			}
			claim := candidate.Expand(opts.ClaimMargin)
			if !labels.Free(claim.Expand(opts.Margin)) {
				continue
			}
			labels.Claim(claim)
			return candidate, corner, true
		}
	}
	return geo.Rect{}, geo.Point{}, false
}

// callout draws text with a leader line to anchor, or drops it silently
// when the grid is full.
func (p *Pipeline) callout(f *frame, anchor geo.Point, text string, c color.RGBA) bool {
	size := f.canvas.MeasureText(text)
	box, elbow, ok := PlaceCallout(f.labels(), anchor, size, p.opts.Callout)
	if !ok {
		f.stats.CalloutsDropped++
		recordCalloutDropped(context.Background())
		return false
	}
	f.canvas.Line([]geo.Point{anchor, elbow}, Stroke{Color: colorLeader, Width: 1})
	f.canvas.Text(box.Min, text, c)
	f.stats.Callouts++
	return true
}
