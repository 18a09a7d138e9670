// Package search turns free-text queries into selections, highlights and
// zooms on a view.
//
// A Searcher holds an ordered list of matchers. Each matcher parses the
// query on its own terms and either declines or returns an Action; the
// first matcher to accept wins and its action is run. Parsing never
// fails loudly: input a matcher does not understand is simply passed on.
//
// The order is: literal commands, tag queries, geometric literals
// (rectangle, polyline, lat/long, route), map edge identifiers, generic
// identifiers, and finally road names.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/selection"
)

// Target is the view a searcher acts on. *view.Model satisfies it.
type Target interface {
	Graph() roadgraph.Graph
	Selection() *selection.State
	Viewport() geo.Rect
	ZoomTo(r geo.Rect)
	Reset()
	ToggleDebug() bool
}

// Browser opens a URL outside the viewer.
type Browser interface {
	Open(url string) error
}

// Action performs the side effects of a matched query.
type Action func() UserFeedback

// Matcher recognizes one kind of query.
type Matcher interface {
	Match(text string) (Action, bool)
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(text string) (Action, bool)

func (f MatcherFunc) Match(text string) (Action, bool) { return f(text) }

// Options configures a Searcher.
type Options struct {
	// TagLimit caps the edges highlighted by a tag query.
	TagLimit int
	// Locale overrides the graph locale for road-name matching.
	Locale language.Tag
	// Version is reported by the version command.
	Version string
	// Standardizer folds road names. Nil uses roadgraph.SuffixStandardizer.
	Standardizer roadgraph.Standardizer
}

// DefaultOptions returns the standard search options.
func DefaultOptions() Options {
	return Options{
		TagLimit:     1000,
		Version:      "dev",
		Standardizer: roadgraph.SuffixStandardizer{},
	}
}

type namedMatcher struct {
	name string
	m    Matcher
}

// Searcher resolves queries against a target.
type Searcher struct {
	target   Target
	opts     Options
	logger   *slog.Logger
	matchers []namedMatcher
}

// New creates a searcher with the standard matchers. browser may be nil,
// in which case open reports the URL instead of opening it.
func New(target Target, browser Browser, opts Options, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Standardizer == nil {
		opts.Standardizer = roadgraph.SuffixStandardizer{}
	}
	if opts.TagLimit <= 0 {
		opts.TagLimit = DefaultOptions().TagLimit
	}
	s := &Searcher{target: target, opts: opts, logger: logger}
	s.matchers = []namedMatcher{
		{"command", &commandMatcher{target: target, browser: browser, version: opts.Version}},
		{"tag", &tagMatcher{target: target, limit: opts.TagLimit}},
		{"rectangle", &rectangleMatcher{target: target}},
		{"polyline", &polylineMatcher{target: target}},
		{"latlng", &latLngMatcher{target: target}},
		{"route", &routeMatcher{target: target}},
		{"map-edge", &mapEdgeMatcher{target: target}},
		{"identifier", &identifierMatcher{target: target}},
		{"road-name", &roadNameMatcher{target: target, std: opts.Standardizer, locale: opts.Locale}},
	}
	return s
}

// Matchers returns the matcher names in resolution order.
func (s *Searcher) Matchers() []string {
	names := make([]string, len(s.matchers))
	for i, nm := range s.matchers {
		names[i] = nm.name
	}
	return names
}

// Query resolves text and runs the first matching action. When nothing
// matches the help text is returned with a note naming the input.
func (s *Searcher) Query(ctx context.Context, text string) UserFeedback {
	text = strings.TrimSpace(text)
	if text == "" {
		return Feedback("").WithText(helpText)
	}
	for _, nm := range s.matchers {
		action, ok := nm.m.Match(text)
		if !ok {
			continue
		}
		s.logger.Debug("query resolved", "query", text, "matcher", nm.name)
		recordResolution(ctx, nm.name)
		return action()
	}
	s.logger.Debug("query unresolved", "query", text)
	recordResolution(ctx, "none")
	status := fmt.Sprintf("couldn't find '%s'", text)
	return Feedback(status).WithText(status + "\n\n" + helpText)
}

// highlightAndZoom replaces the highlighted edges and shows them all.
func highlightAndZoom(t Target, edges []*roadgraph.Edge) {
	t.Selection().SetHighlighted(edges)
	var bounds geo.Rect
	for _, e := range edges {
		bounds = bounds.Union(e.Bounds())
	}
	if len(edges) > 0 {
		t.ZoomTo(bounds)
	}
}

// selectAndZoom selects e and shows bounds.
func selectAndZoom(t Target, e roadgraph.Entity, bounds geo.Rect) {
	t.Selection().Select(e)
	t.ZoomTo(bounds)
}
