// Package routesort orders localized routes so that more specific patterns
// are matched first.
package routesort

import (
	"sort"
	"strings"

	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
)

// Specificity sorts routes by specificity (static > typed > plain > catch-all).
// The sort is stable and applies recursively to children. It implements
// i18nroute.Sorter.
type Specificity struct{}

// Sort returns a sorted copy of routes.
func (s Specificity) Sort(routes []i18nroute.Route) []i18nroute.Route {
	sorted := make([]i18nroute.Route, len(routes))
	copy(sorted, routes)

	for i := range sorted {
		if len(sorted[i].Children) > 0 {
			sorted[i].Children = s.Sort(sorted[i].Children)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return Score(sorted[i].Path) > Score(sorted[j].Path)
	})
	return sorted
}

// Score returns a numeric specificity score for a route path.
// Higher scores = more specific = matched first.
//
// Segments are ":name" (param), ":name:type" (typed param) or "*name"
// (catch-all). Paths containing a catch-all score 0.
func Score(path string) int {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return 0
	}
	segments := strings.Split(trimmed, "/")

	// Start with segment count (more segments = more specific)
	score := len(segments) * 100

	for _, seg := range segments {
		switch {
		case strings.HasPrefix(seg, "*"):
			return 0
		case strings.HasPrefix(seg, ":"):
			if strings.Contains(seg[1:], ":") {
				score += 20
			} else {
				score += 10
			}
		default:
			score += 50
		}
	}
	return score
}
