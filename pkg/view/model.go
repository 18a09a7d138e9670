// Package view holds the per-layer view model: what graph is shown, where
// the viewport is, at what zoom band, and the state rebuilt every frame.
package view

import (
	"log/slog"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/selection"
	"github.com/ha1tch/roadview/pkg/visible"
	"github.com/ha1tch/roadview/pkg/zoom"
)

// Options tunes the view model.
type Options struct {
	Culling visible.Config
	// SnapRadius is the map distance within which a click snaps to an edge.
	SnapRadius float64
	// ZoomMargin grows zoom targets by this fraction.
	ZoomMargin float64
	// MinZoomSpan is the smallest viewport span ZoomTo will produce.
	MinZoomSpan float64
}

// DefaultOptions returns the standard view options.
func DefaultOptions() Options {
	return Options{
		Culling:     visible.DefaultConfig(),
		SnapRadius:  200,
		ZoomMargin:  0.10,
		MinZoomSpan: 100,
	}
}

// Model is the view state of one graph layer.
type Model struct {
	graph    roadgraph.Graph
	sel      *selection.State
	opts     Options
	logger   *slog.Logger
	viewport geo.Rect

	debug  bool
	active bool

	hiddenRoads  map[roadgraph.RoadType]bool
	hidePlaces   bool
	hiddenPlaces map[roadgraph.PlaceType]bool

	// per frame
	frame     int
	proj      Projection
	scale     zoom.Scale
	culler    *visible.Culler
	relCuller *visible.Culler
	labels    Labels
}

// New creates an active view of g showing its whole extent.
// A nil logger uses slog.Default.
func New(g roadgraph.Graph, sel *selection.State, opts Options, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	if sel == nil {
		sel = selection.New()
	}
	m := &Model{
		graph:        g,
		sel:          sel,
		opts:         opts,
		logger:       logger,
		active:       true,
		hiddenRoads:  make(map[roadgraph.RoadType]bool),
		hiddenPlaces: make(map[roadgraph.PlaceType]bool),
	}
	m.Reset()
	return m
}

// Graph returns the graph shown.
func (m *Model) Graph() roadgraph.Graph { return m.graph }

// Selection returns the selection state shared with the hosts.
func (m *Model) Selection() *selection.State { return m.sel }

// Options returns the options the model was created with.
func (m *Model) Options() Options { return m.opts }

// Viewport returns the visible map rectangle.
func (m *Model) Viewport() geo.Rect { return m.viewport }

// Projection returns the mapping computed by the last BeginFrame.
func (m *Model) Projection() Projection { return m.proj }

// Scale returns the zoom band of the viewport.
func (m *Model) Scale() zoom.Scale { return m.scale }

// Labels returns the rectangles claimed by labels this frame.
func (m *Model) Labels() *Labels { return &m.labels }

// Frame counts BeginFrame calls.
func (m *Model) Frame() int { return m.frame }

// Debug reports whether the debug overlay is drawn.
func (m *Model) Debug() bool { return m.debug }

// SetDebug turns the debug overlay on or off.
func (m *Model) SetDebug(on bool) { m.debug = on }

// Active reports whether the layer is the active one. Inactive layers are
// drawn muted and are not hit-testable.
func (m *Model) Active() bool { return m.active }

// SetActive marks the layer active or inactive.
func (m *Model) SetActive(on bool) { m.active = on }

// PlacesVisible reports whether places are drawn at all.
func (m *Model) PlacesVisible() bool { return !m.hidePlaces }

// SetPlacesVisible shows or hides every place.
func (m *Model) SetPlacesVisible(on bool) { m.hidePlaces = !on }

// Logger returns the model's logger.
func (m *Model) Logger() *slog.Logger { return m.logger }

// MetersPerPixel returns the map distance covered by one screen pixel.
func (m *Model) MetersPerPixel() float64 { return m.proj.MetersPerPixel() }

// ToScreen projects a map point to screen pixels.
func (m *Model) ToScreen(p geo.Point) geo.Point { return m.proj.ToScreen(p) }

// ToggleDebug flips the debug overlay and returns the new value.
func (m *Model) ToggleDebug() bool {
	m.debug = !m.debug
	return m.debug
}

// SetGraph swaps the graph and shows all of it. The selection is cleared.
func (m *Model) SetGraph(g roadgraph.Graph) {
	m.graph = g
	m.sel.Clear()
	m.sel.ClearHighlights()
	m.sel.ClearPolylines()
	m.Reset()
}

// SetViewport moves the view to r exactly.
func (m *Model) SetViewport(r geo.Rect) {
	m.viewport = r
	m.scale = zoom.ForWidth(r.Width())
}

// ZoomTo shows r grown by the zoom margin and at least the minimum span.
func (m *Model) ZoomTo(r geo.Rect) {
	target := r.ExpandPercent(m.opts.ZoomMargin).AtLeast(m.opts.MinZoomSpan)
	m.logger.Debug("zoom", "target", target.String())
	m.SetViewport(target)
}

// Reset zooms to the whole graph.
func (m *Model) Reset() {
	if m.graph == nil {
		return
	}
	m.ZoomTo(m.graph.Bounds())
}

// Pan moves the viewport by a screen-space offset in pixels.
func (m *Model) Pan(dx, dy float64) {
	mpp := m.proj.MetersPerPixel()
	if m.proj.ppm == 0 {
		mpp = 1
	}
	// screen Y grows downward
	shift := func(p geo.Point) geo.Point { return p.Add(dx*mpp, -dy*mpp) }
	m.SetViewport(geo.Rect{Min: shift(m.viewport.Min), Max: shift(m.viewport.Max)})
}

// ZoomBy scales the viewport around its centre; factors above one zoom in.
func (m *Model) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c := m.viewport.Center()
	w := m.viewport.Width() / factor / 2
	h := m.viewport.Height() / factor / 2
	m.SetViewport(geo.Rect{
		Min: geo.Point{X: c.X - w, Y: c.Y - h},
		Max: geo.Point{X: c.X + w, Y: c.Y + h},
	})
}

// RoadTypeVisible reports whether edges of t are shown.
func (m *Model) RoadTypeVisible(t roadgraph.RoadType) bool { return !m.hiddenRoads[t] }

// SetRoadTypeVisible shows or hides edges of t.
func (m *Model) SetRoadTypeVisible(t roadgraph.RoadType, on bool) {
	if on {
		delete(m.hiddenRoads, t)
	} else {
		m.hiddenRoads[t] = true
	}
}

// PlaceTypeVisible reports whether places of t are shown.
func (m *Model) PlaceTypeVisible(t roadgraph.PlaceType) bool { return !m.hiddenPlaces[t] }

// SetPlaceTypeVisible shows or hides places of t.
func (m *Model) SetPlaceTypeVisible(t roadgraph.PlaceType, on bool) {
	if on {
		delete(m.hiddenPlaces, t)
	} else {
		m.hiddenPlaces[t] = true
	}
}

// BeginFrame prepares a paint on a canvas of the given pixel size. It
// refits the projection, recomputes the zoom band, clears label claims and
// hit shapes, and culls the edges for the new view.
func (m *Model) BeginFrame(size geo.Point) {
	m.frame++
	m.proj = NewProjection(m.viewport, size)
	m.scale = zoom.ForWidth(m.proj.MapBounds().Width())
	m.labels.Reset()
	m.sel.ClearShapes()
	m.culler = visible.New(m.graph, m.cullFrame(visible.ForEdges), m.sel, m.opts.Culling, m.logger)
	m.relCuller = nil
}

func (m *Model) cullFrame(p visible.Purpose) visible.Frame {
	return visible.Frame{
		Viewport:       m.proj.MapBounds(),
		Scale:          m.scale,
		MetersPerPixel: m.proj.MetersPerPixel(),
		Importance:     m.RoadTypeVisible,
		Purpose:        p,
	}
}

// Visible returns this frame's culled edges. BeginFrame must run first.
func (m *Model) Visible() *visible.Culler { return m.culler }

// RelationEdges returns this frame's edges culled for relation scanning,
// computing them on first use.
func (m *Model) RelationEdges() *visible.Culler {
	if m.relCuller == nil {
		m.relCuller = visible.New(m.graph, m.cullFrame(visible.ForRelations), m.sel, m.opts.Culling, m.logger)
	}
	return m.relCuller
}

// SnapEdge finds the edge nearest to a screen point within the snap radius.
func (m *Model) SnapEdge(screen geo.Point) (*roadgraph.Edge, bool) {
	if m.graph == nil {
		return nil, false
	}
	return m.graph.SnapEdge(m.proj.ToMap(screen), m.opts.SnapRadius)
}

var _ selection.EdgeSnapper = (*Model)(nil)
