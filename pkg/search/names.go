package search

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/roadgraph"
)

// roadNameMatcher highlights every edge whose standardized name contains
// the standardized query. Composite graphs are skipped: their parts may
// use different locales.
type roadNameMatcher struct {
	target Target
	std    roadgraph.Standardizer
	locale language.Tag
}

func (m *roadNameMatcher) Match(text string) (Action, bool) {
	g := m.target.Graph()
	if g == nil || g.IsComposite() {
		return nil, false
	}
	locale := m.locale
	if locale == language.Und {
		locale = g.Locale()
	}
	fold := cases.Fold()
	want := fold.String(m.std.Standardize(locale, text, roadgraph.BaseName))
	if want == "" {
		return nil, false
	}

	var matches []*roadgraph.Edge
	names := make(map[string]bool)
	cache := make(map[string]string)
	for _, e := range g.ForwardEdges(geo.Rect{}) {
		if e.Name == "" {
			continue
		}
		base, ok := cache[e.Name]
		if !ok {
			base = fold.String(m.std.Standardize(locale, e.Name, roadgraph.BaseName))
			cache[e.Name] = base
		}
		if strings.Contains(base, want) {
			matches = append(matches, e)
			names[e.Name] = true
		}
	}
	if len(matches) == 0 {
		return nil, false
	}
	return func() UserFeedback {
		highlightAndZoom(m.target, matches)
		status := fmt.Sprintf("%d edges named like '%s'", len(matches), strings.TrimSpace(text))
		list := make([]string, 0, len(names))
		for name := range names {
			list = append(list, name)
		}
		slices.Sort(list)
		return Feedback(status).WithText(strings.Join(list, "\n"))
	}, true
}
