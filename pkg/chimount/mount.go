// Package chimount registers localized route trees on a chi router.
//
// Child paths are resolved against their parents: absolute children are kept
// as they are, relative children are appended to the parent path. Route
// parameters are converted to chi notation:
//
//	:id      → {id}
//	:id:int  → {id:-?[0-9]+}
//	*slug    → *
//
// Component routes answer GET requests through the supplied HandlerFunc.
// Redirect routes answer every method with a 302 to their target.
package chimount

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
)

// HandlerFunc serves a request matched to a localized route.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, route i18nroute.Route)

// Entry is one registered pattern and the route it serves. Children holds
// no entries; children are flattened into their own entries.
type Entry struct {
	Pattern string          `json:"pattern"`
	Route   i18nroute.Route `json:"route"`
}

// typePatterns maps typed parameter suffixes to chi regular expressions.
var typePatterns = map[string]string{
	"int":    `-?[0-9]+`,
	"int8":   `-?[0-9]+`,
	"int16":  `-?[0-9]+`,
	"int32":  `-?[0-9]+`,
	"int64":  `-?[0-9]+`,
	"uint":   `[0-9]+`,
	"uint8":  `[0-9]+`,
	"uint16": `[0-9]+`,
	"uint32": `[0-9]+`,
	"uint64": `[0-9]+`,
	"uuid":   `[0-9a-fA-F-]+`,
}

// Routes flattens routes into chi patterns in registration order. Routes
// without a component or redirect are skipped but their children are not.
// When two routes resolve to the same pattern the first one is kept.
func Routes(routes []i18nroute.Route) []Entry {
	var entries []Entry
	seen := make(map[string]bool)
	walk(routes, "", func(full string, route i18nroute.Route) {
		if route.Component == "" && route.Redirect == "" {
			return
		}
		pattern := Pattern(full)
		if seen[pattern] {
			return
		}
		seen[pattern] = true
		route.Children = nil
		entries = append(entries, Entry{Pattern: pattern, Route: route})
	})
	return entries
}

// Mount registers routes on r and returns the registered entries.
func Mount(r chi.Router, routes []i18nroute.Route, h HandlerFunc) []Entry {
	entries := Routes(routes)
	for _, e := range entries {
		route := e.Route
		if route.Redirect != "" {
			target := route.Redirect
			r.HandleFunc(e.Pattern, func(w http.ResponseWriter, req *http.Request) {
				http.Redirect(w, req, target, http.StatusFound)
			})
			continue
		}
		r.Get(e.Pattern, func(w http.ResponseWriter, req *http.Request) {
			h(w, req, route)
		})
	}
	return entries
}

func walk(routes []i18nroute.Route, parent string, fn func(full string, route i18nroute.Route)) {
	for _, route := range routes {
		full := resolve(parent, route.Path)
		fn(full, route)
		if len(route.Children) > 0 {
			walk(route.Children, full, fn)
		}
	}
}

// resolve returns the absolute path of p under parent.
func resolve(parent, p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	if p == "" {
		if parent == "" {
			return "/"
		}
		return parent
	}
	return strings.TrimSuffix(parent, "/") + "/" + p
}

// Pattern converts a route path to a chi pattern.
func Pattern(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, "*"):
			segments[i] = "*"
		case strings.HasPrefix(seg, ":"):
			name, typ, typed := strings.Cut(seg[1:], ":")
			if expr, ok := typePatterns[typ]; typed && ok {
				segments[i] = "{" + name + ":" + expr + "}"
			} else {
				segments[i] = "{" + name + "}"
			}
		}
	}
	out := strings.Join(segments, "/")
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	return out
}
