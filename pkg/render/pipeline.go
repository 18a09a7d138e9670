package render

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/selection"
	"github.com/ha1tch/roadview/pkg/view"
	"github.com/ha1tch/roadview/pkg/visible"
	"github.com/ha1tch/roadview/pkg/zoom"
)

// Band selects a draw order.
type Band int

const (
	// BandCoarse is too far out for detail; only highlights are drawn.
	BandCoarse Band = iota
	// BandInactive is a background layer drawn muted.
	BandInactive
	// BandOverview is the active layer at region scale.
	BandOverview
	// BandDetail is the active layer at city scale or finer.
	BandDetail
)

var bandNames = [...]string{"coarse", "inactive", "overview", "detail"}

func (b Band) String() string {
	if b < 0 || int(b) >= len(bandNames) {
		return fmt.Sprintf("Band(%d)", int(b))
	}
	return bandNames[b]
}

// BandFor picks the band for a layer at the given scale.
func BandFor(scale zoom.Scale, active bool) Band {
	switch {
	case scale.IsCoarserThan(zoom.Region):
		return BandCoarse
	case !active:
		return BandInactive
	case scale.AtLeast(zoom.City):
		return BandDetail
	default:
		return BandOverview
	}
}

// Layer names a renderer.
type Layer int

const (
	LayerOutline Layer = iota
	LayerRelations
	LayerRestrictions
	LayerEdges
	LayerEdgeLabels
	LayerVertices
	LayerShapePoints
	LayerPlaces
	LayerPolylines
	LayerDebug
)

var layerNames = [...]string{
	"outline", "relations", "restrictions", "edges", "edge-labels",
	"vertices", "shape-points", "places", "polylines", "debug",
}

func (l Layer) String() string {
	if l < 0 || int(l) >= len(layerNames) {
		return fmt.Sprintf("Layer(%d)", int(l))
	}
	return layerNames[l]
}

// Step draws one layer for one selection type.
type Step struct {
	Layer     Layer
	Selection visible.SelectionType
}

func (s Step) String() string { return s.Layer.String() + "(" + s.Selection.String() + ")" }

// Band draw orders, back to front.
var bandSteps = map[Band][]Step{
	BandCoarse: {
		{LayerEdges, visible.Highlighted},
	},
	BandInactive: {
		{LayerEdges, visible.Inactive},
	},
	BandOverview: {
		{LayerRestrictions, visible.Unselected},
		{LayerEdges, visible.Unselected},
		{LayerEdgeLabels, visible.Unselected},
		{LayerPlaces, visible.Unselected},
		{LayerEdges, visible.Highlighted},
	},
	BandDetail: {
		{LayerRelations, visible.Unselected},
		{LayerEdges, visible.Highlighted},
		{LayerPlaces, visible.Unselected},
		{LayerEdges, visible.Unselected},
		{LayerVertices, visible.Unselected},
	},
}

// selectedSteps follow every active band.
var selectedSteps = []Step{
	{LayerRelations, visible.Selected},
	{LayerEdges, visible.Selected},
	{LayerShapePoints, visible.Selected},
	{LayerVertices, visible.Selected},
	{LayerPlaces, visible.Selected},
	{LayerPolylines, visible.Selected},
}

// StepsFor returns the full draw order for a band.
func StepsFor(b Band, debug bool) []Step {
	steps := []Step{{LayerOutline, visible.Unselected}}
	steps = append(steps, bandSteps[b]...)
	if b != BandOverview && b != BandDetail {
		return steps
	}
	steps = append(steps, selectedSteps...)
	if debug {
		steps = append(steps, Step{LayerDebug, visible.Unselected})
	}
	if b == BandDetail {
		steps = append(steps, Step{LayerEdgeLabels, visible.Unselected})
	}
	return steps
}

// Options tunes rendering.
type Options struct {
	// RelationMinScale is the coarsest band at which relations are drawn.
	RelationMinScale zoom.Scale
	// RelationCap bounds relations drawn per category per frame.
	RelationCap int
	// BaseWidth is the real width in metres of a road with fatten 1.
	BaseWidth float64
	// CoarseWidth is the fixed stroke width below city scale.
	CoarseWidth float64

	LabelSpacing float64
	LabelMinEdge float64
	MaxLabels    int

	Callout CalloutOptions

	// PlaceMinPopulation admits non-city places below city scale.
	PlaceMinPopulation int
	// DebugEdgeIDs caps the edge identifier callouts of the debug overlay.
	DebugEdgeIDs int
}

// DefaultOptions returns the standard rendering options.
func DefaultOptions() Options {
	return Options{
		RelationMinScale:   zoom.Region,
		RelationCap:        500,
		BaseWidth:          6,
		CoarseWidth:        1.5,
		LabelSpacing:       300,
		LabelMinEdge:       75,
		MaxLabels:          30,
		Callout:            DefaultCalloutOptions(),
		PlaceMinPopulation: 50_000,
		DebugEdgeIDs:       50,
	}
}

// Stats counts what one paint drew.
type Stats struct {
	Band             Band
	Steps            int
	Edges            int
	Labels           int
	Callouts         int
	CalloutsDropped  int
	Relations        int
	RelationsDropped int
	Vertices         int
	Places           int
	Duration         time.Duration
}

// Pipeline paints view models.
type Pipeline struct {
	opts      Options
	logger    *slog.Logger
	renderers map[Layer]func(*frame, visible.SelectionType)
}

// NewPipeline creates a pipeline. A nil logger uses slog.Default.
func NewPipeline(opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{opts: opts, logger: logger}
	p.renderers = map[Layer]func(*frame, visible.SelectionType){
		LayerOutline:      p.drawOutline,
		LayerRelations:    func(f *frame, t visible.SelectionType) { p.drawRelations(f, t, false) },
		LayerRestrictions: func(f *frame, t visible.SelectionType) { p.drawRelations(f, t, true) },
		LayerEdges:        p.drawEdges,
		LayerEdgeLabels:   p.drawEdgeLabels,
		LayerVertices:     p.drawVertices,
		LayerShapePoints:  p.drawShapePoints,
		LayerPlaces:       p.drawPlaces,
		LayerPolylines:    p.drawPolylines,
		LayerDebug:        p.drawDebug,
	}
	return p
}

// Options returns the pipeline options.
func (p *Pipeline) Options() Options { return p.opts }

// frame is the state shared by the renderers during one paint.
type frame struct {
	canvas Canvas
	model  *view.Model
	sel    *selection.State
	proj   view.Projection
	scale  zoom.Scale
	stats  *Stats
}

func (f *frame) labels() *view.Labels { return f.model.Labels() }

// Paint draws m onto c. It starts a new frame on the model, so hit shapes
// and label claims afterwards describe this paint.
func (p *Pipeline) Paint(ctx context.Context, c Canvas, m *view.Model) Stats {
	start := time.Now()
	m.BeginFrame(c.Size())

	stats := Stats{Band: BandFor(m.Scale(), m.Active())}
	f := &frame{
		canvas: c,
		model:  m,
		sel:    m.Selection(),
		proj:   m.Projection(),
		scale:  m.Scale(),
		stats:  &stats,
	}
	for _, step := range StepsFor(stats.Band, m.Debug()) {
		p.run(f, step)
	}

	stats.Duration = time.Since(start)
	recordFrame(ctx, stats)
	p.logger.Debug("painted frame",
		"frame", m.Frame(),
		"band", stats.Band.String(),
		"scale", m.Scale().String(),
		"edges", stats.Edges,
		"labels", stats.Labels,
		"callouts_dropped", stats.CalloutsDropped,
		"duration", stats.Duration)
	return stats
}

func (p *Pipeline) run(f *frame, s Step) {
	draw, ok := p.renderers[s.Layer]
	if !ok {
		panic("render: no renderer for layer " + s.Layer.String())
	}
	f.stats.Steps++
	draw(f, s.Selection)
}

// drawOutline frames the graph bounds. The world graph has no outline.
func (p *Pipeline) drawOutline(f *frame, _ visible.SelectionType) {
	g := f.model.Graph()
	if g == nil || g.IsWorld() || g.Bounds().IsEmpty() {
		return
	}
	f.canvas.Box(f.proj.Rect(g.Bounds()), Stroke{Color: colorOutline, Width: 1, Dashed: true})
}

// drawPolylines draws the ad-hoc polylines of the selection.
func (p *Pipeline) drawPolylines(f *frame, t visible.SelectionType) {
	if t != visible.Selected {
		return
	}
	for _, pl := range f.sel.Polylines() {
		pts := f.proj.Polyline(pl)
		if len(pts) == 1 {
			f.canvas.Dot(pts[0], 4, colorPolyline, Stroke{})
			continue
		}
		f.canvas.Line(pts, Stroke{Color: colorPolyline, Width: 2})
	}
}

// drawDebug writes frame statistics and labels visible edges with their
// identifiers.
func (p *Pipeline) drawDebug(f *frame, _ visible.SelectionType) {
	cs := f.model.Visible().Stats()
	lines := []string{
		fmt.Sprintf("frame %d  %s  %.2f m/px", f.model.Frame(), f.scale, f.proj.MetersPerPixel()),
		fmt.Sprintf("edges %d/%d  rounds %d", cs.Kept, cs.Candidates, cs.Rounds),
		fmt.Sprintf("drawn %d  labels %d  dropped %d", f.stats.Edges, f.stats.Labels, f.stats.CalloutsDropped),
	}
	at := geo.Point{X: 4, Y: 4}
	for _, line := range lines {
		f.canvas.Text(at, line, colorDebug)
		at.Y += f.canvas.MeasureText(line).Y + 2
	}

	if !f.scale.AtLeast(zoom.Street) {
		return
	}
	for i, e := range f.model.Visible().Edges(visible.Unselected) {
		if i >= p.opts.DebugEdgeIDs {
			break
		}
		p.callout(f, f.proj.Polyline(e.Shape).Midpoint(), fmt.Sprintf("%d", e.ID), colorDebug)
	}
}
