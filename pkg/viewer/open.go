package viewer

import (
	"log/slog"

	"github.com/ha1tch/roadview/pkg/config"
	"github.com/ha1tch/roadview/pkg/render"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/search"
	"github.com/ha1tch/roadview/pkg/view"
)

// Open builds a layer for g from cfg. post is called when a repaint is
// requested and browser serves the open command; either may be nil.
func Open(g roadgraph.Graph, cfg *config.Config, browser search.Browser, post func(), version string, logger *slog.Logger) (*Layer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := view.New(g, nil, cfg.ViewOptions(), logger)
	if err := cfg.Apply(m); err != nil {
		return nil, err
	}
	s := search.New(m, browser, cfg.SearchOptions(version), logger)
	p := render.NewPipeline(cfg.RenderOptions(), logger)
	return NewLayer(m, p, s, NewRepainter(post), logger), nil
}
