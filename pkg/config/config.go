// Package config loads and saves roadview settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/ha1tch/roadview/pkg/render"
	"github.com/ha1tch/roadview/pkg/render/raster"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/search"
	"github.com/ha1tch/roadview/pkg/view"
	"github.com/ha1tch/roadview/pkg/zoom"
)

// Validation errors.
var (
	ErrInvalidScale     = errors.New("invalid zoom scale")
	ErrInvalidRoadType  = errors.New("invalid road type")
	ErrInvalidPlaceType = errors.New("invalid place type")
	ErrInvalidLocale    = errors.New("invalid locale")
	ErrInvalidValue     = errors.New("invalid value")
)

// Config holds all roadview settings.
type Config struct {
	View   ViewConfig   `toml:"view"`
	Labels LabelConfig  `toml:"labels"`
	Places PlaceConfig  `toml:"places"`
	Roads  RoadConfig   `toml:"roads"`
	Search SearchConfig `toml:"search"`
	Render RenderConfig `toml:"render"`
}

type ViewConfig struct {
	CoarseScale      string  `toml:"coarse_scale"`
	RelationMinScale string  `toml:"relation_min_scale"`
	EdgeBudget       int     `toml:"edge_budget"`
	MinEdgePixels    float64 `toml:"min_edge_pixels"`
	SnapRadius       float64 `toml:"snap_radius"`
	ZoomMargin       float64 `toml:"zoom_margin"`
	MinZoomSpan      float64 `toml:"min_zoom_span"`
	RelationCap      int     `toml:"relation_cap"`
}

type LabelConfig struct {
	Spacing        float64 `toml:"spacing"`
	MinEdgePixels  float64 `toml:"min_edge_pixels"`
	MaxLabels      int     `toml:"max_labels"`
	CalloutMin     float64 `toml:"callout_min_offset"`
	CalloutMax     float64 `toml:"callout_max_offset"`
	CalloutStep    float64 `toml:"callout_step"`
	CalloutMargin  float64 `toml:"callout_margin"`
	CalloutClaimed float64 `toml:"callout_claim_margin"`
}

type PlaceConfig struct {
	Visible       bool     `toml:"visible"`
	HiddenTypes   []string `toml:"hidden_types"`
	MinPopulation int      `toml:"min_population"`
}

type RoadConfig struct {
	HiddenTypes []string `toml:"hidden_types"`
}

type SearchConfig struct {
	TagLimit int    `toml:"tag_limit"`
	Locale   string `toml:"locale"`
}

type RenderConfig struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Supersample int     `toml:"supersample"`
	FontSize    float64 `toml:"font_size"`
	BaseWidth   float64 `toml:"base_width"`
	CoarseWidth float64 `toml:"coarse_width"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	vo := view.DefaultOptions()
	ro := render.DefaultOptions()
	so := search.DefaultOptions()
	xo := raster.DefaultOptions()
	return &Config{
		View: ViewConfig{
			CoarseScale:      vo.Culling.CoarseScale.String(),
			RelationMinScale: ro.RelationMinScale.String(),
			EdgeBudget:       vo.Culling.Budget,
			MinEdgePixels:    vo.Culling.MinEdgePixels,
			SnapRadius:       vo.SnapRadius,
			ZoomMargin:       vo.ZoomMargin,
			MinZoomSpan:      vo.MinZoomSpan,
			RelationCap:      ro.RelationCap,
		},
		Labels: LabelConfig{
			Spacing:        ro.LabelSpacing,
			MinEdgePixels:  ro.LabelMinEdge,
			MaxLabels:      ro.MaxLabels,
			CalloutMin:     ro.Callout.MinOffset,
			CalloutMax:     ro.Callout.MaxOffset,
			CalloutStep:    ro.Callout.Step,
			CalloutMargin:  ro.Callout.Margin,
			CalloutClaimed: ro.Callout.ClaimMargin,
		},
		Places: PlaceConfig{
			Visible:       true,
			MinPopulation: ro.PlaceMinPopulation,
		},
		Search: SearchConfig{
			TagLimit: so.TagLimit,
		},
		Render: RenderConfig{
			Width:       xo.Width,
			Height:      xo.Height,
			Supersample: xo.Supersample,
			FontSize:    xo.FontSize,
			BaseWidth:   ro.BaseWidth,
			CoarseWidth: ro.CoarseWidth,
		},
	}
}

// ConfigDir returns the roadview configuration directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "roadview")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".roadview")
	}
	return filepath.Join(home, ".config", "roadview")
}

// DefaultPath returns the path of the default config file.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks every named value and numeric range.
func (c *Config) Validate() error {
	if _, err := parseScale(c.View.CoarseScale); err != nil {
		return err
	}
	if _, err := parseScale(c.View.RelationMinScale); err != nil {
		return err
	}
	if _, err := c.roadTypes(); err != nil {
		return err
	}
	if _, err := c.placeTypes(); err != nil {
		return err
	}
	if _, err := c.locale(); err != nil {
		return err
	}
	switch {
	case c.View.EdgeBudget <= 0:
		return fmt.Errorf("%w: view.edge_budget must be positive", ErrInvalidValue)
	case c.View.ZoomMargin < 0:
		return fmt.Errorf("%w: view.zoom_margin must not be negative", ErrInvalidValue)
	case c.View.RelationCap < 0:
		return fmt.Errorf("%w: view.relation_cap must not be negative", ErrInvalidValue)
	case c.Labels.CalloutStep <= 0:
		return fmt.Errorf("%w: labels.callout_step must be positive", ErrInvalidValue)
	case c.Labels.CalloutMin > c.Labels.CalloutMax:
		return fmt.Errorf("%w: labels.callout_min_offset exceeds callout_max_offset", ErrInvalidValue)
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("%w: render size must be positive", ErrInvalidValue)
	case c.Render.Supersample < 1:
		return fmt.Errorf("%w: render.supersample must be at least 1", ErrInvalidValue)
	}
	return nil
}

// ViewOptions converts the settings for view.New.
func (c *Config) ViewOptions() view.Options {
	o := view.DefaultOptions()
	if s, err := parseScale(c.View.CoarseScale); err == nil {
		o.Culling.CoarseScale = s
	}
	o.Culling.Budget = c.View.EdgeBudget
	o.Culling.MinEdgePixels = c.View.MinEdgePixels
	o.SnapRadius = c.View.SnapRadius
	o.ZoomMargin = c.View.ZoomMargin
	o.MinZoomSpan = c.View.MinZoomSpan
	return o
}

// RenderOptions converts the settings for render.NewPipeline.
func (c *Config) RenderOptions() render.Options {
	o := render.DefaultOptions()
	if s, err := parseScale(c.View.RelationMinScale); err == nil {
		o.RelationMinScale = s
	}
	o.RelationCap = c.View.RelationCap
	o.BaseWidth = c.Render.BaseWidth
	o.CoarseWidth = c.Render.CoarseWidth
	o.LabelSpacing = c.Labels.Spacing
	o.LabelMinEdge = c.Labels.MinEdgePixels
	o.MaxLabels = c.Labels.MaxLabels
	o.Callout = render.CalloutOptions{
		MinOffset:   c.Labels.CalloutMin,
		MaxOffset:   c.Labels.CalloutMax,
		Step:        c.Labels.CalloutStep,
		Margin:      c.Labels.CalloutMargin,
		ClaimMargin: c.Labels.CalloutClaimed,
	}
	o.PlaceMinPopulation = c.Places.MinPopulation
	return o
}

// SearchOptions converts the settings for search.New.
func (c *Config) SearchOptions(version string) search.Options {
	o := search.DefaultOptions()
	o.TagLimit = c.Search.TagLimit
	o.Version = version
	if tag, err := c.locale(); err == nil {
		o.Locale = tag
	}
	return o
}

// RasterOptions converts the settings for raster.New.
func (c *Config) RasterOptions() raster.Options {
	o := raster.DefaultOptions()
	o.Width = c.Render.Width
	o.Height = c.Render.Height
	o.Supersample = c.Render.Supersample
	o.FontSize = c.Render.FontSize
	return o
}

// Apply sets the road and place filters of m.
func (c *Config) Apply(m *view.Model) error {
	roads, err := c.roadTypes()
	if err != nil {
		return err
	}
	places, err := c.placeTypes()
	if err != nil {
		return err
	}
	for _, t := range roads {
		m.SetRoadTypeVisible(t, false)
	}
	for _, t := range places {
		m.SetPlaceTypeVisible(t, false)
	}
	m.SetPlacesVisible(c.Places.Visible)
	return nil
}

func parseScale(name string) (zoom.Scale, error) {
	s, ok := zoom.Parse(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScale, name)
	}
	return s, nil
}

func (c *Config) roadTypes() ([]roadgraph.RoadType, error) {
	out := make([]roadgraph.RoadType, 0, len(c.Roads.HiddenTypes))
	for _, name := range c.Roads.HiddenTypes {
		t, ok := roadgraph.ParseRoadType(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRoadType, name)
		}
		out = append(out, t)
	}
	return out, nil
}

func (c *Config) placeTypes() ([]roadgraph.PlaceType, error) {
	out := make([]roadgraph.PlaceType, 0, len(c.Places.HiddenTypes))
	for _, name := range c.Places.HiddenTypes {
		t, ok := roadgraph.ParsePlaceType(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPlaceType, name)
		}
		out = append(out, t)
	}
	return out, nil
}

func (c *Config) locale() (language.Tag, error) {
	if c.Search.Locale == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(c.Search.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q", ErrInvalidLocale, c.Search.Locale)
	}
	return tag, nil
}
