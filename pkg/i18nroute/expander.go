package i18nroute

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vango-i18n/pkg/locale"
	"github.com/vango-dev/vango-i18n/pkg/routepath"
)

const tracerName = "github.com/vango-dev/vango-i18n/pkg/i18nroute"

// Expander localizes route trees. It holds only immutable configuration and
// is safe for concurrent use.
type Expander struct {
	cfg      Config
	codes    []string
	resolver PageOptionsResolver
	sorter   Sorter
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
}

// New creates an Expander. A nil resolver localizes every page for every
// configured locale.
func New(cfg Config, resolver PageOptionsResolver, opts ...Option) *Expander {
	if resolver == nil {
		resolver = allLocales
	}
	e := &Expander{
		cfg:      cfg,
		codes:    locale.Codes(cfg.Locales),
		resolver: resolver,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the expander configuration.
func (e *Expander) Config() Config {
	return e.cfg
}

// Expand localizes routes. See ExpandContext.
func (e *Expander) Expand(routes []Route) Result {
	return e.ExpandContext(context.Background(), routes)
}

// ExpandContext localizes every top-level route in order and returns the
// concatenated result, sorted when a Sorter is configured, together with the
// custom path map built across the whole forest.
func (e *Expander) ExpandContext(ctx context.Context, routes []Route) Result {
	ctx, span := e.tracer.Start(ctx, "i18nroute.Expand", trace.WithAttributes(
		attribute.String("i18n.strategy", e.cfg.Strategy.String()),
		attribute.Int("i18n.locales", len(e.codes)),
		attribute.Int("i18n.input_routes", len(routes)),
	))
	defer span.End()

	start := time.Now()
	run := &expansion{
		Expander: e,
		paths:    NewPathMap(),
		produced: make(map[string]int),
	}

	localized := make([]Route, 0, len(routes)*max(len(e.codes), 1))
	for _, route := range routes {
		localized = append(localized, run.build(route, e.codes, "", "", false)...)
	}

	if e.sorter != nil {
		localized = e.sorter.Sort(localized)
		span.SetAttributes(attribute.Bool("i18n.sorted", true))
	}

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Int("i18n.output_routes", len(localized)),
		attribute.Int("i18n.path_records", len(run.paths.All)),
	)
	e.metrics.observe(e.cfg.Strategy, run.produced, len(run.paths.All), elapsed)

	e.logger.DebugContext(ctx, "routes localized",
		"strategy", e.cfg.Strategy,
		"locales", e.codes,
		"input", len(routes),
		"output", len(localized),
		"duration", elapsed,
	)
	e.logger.DebugContext(ctx, "custom paths map", "paths", run.paths)

	return Result{Routes: localized, Paths: run.paths}
}

// expansion is the state of one Expand call. paths is the only mutable
// state and is owned by the call.
type expansion struct {
	*Expander
	paths    *PathMap
	produced map[string]int
}

// build localizes one route. parentPath is the unprefixed path accumulated
// from ancestors and keys the path map; mountedParent is the full produced
// path of the parent, which child records are resolved against. extraTree
// marks descendants of the unprefixed default locale copy created under
// StrategyPrefixAndDefault.
func (x *expansion) build(route Route, override []string, parentPath, mountedParent string, extraTree bool) []Route {
	if route.IsRedirectOnly() {
		x.produced[kindPassthrough]++
		return []Route{route}
	}

	page, ok := x.resolver.Resolve(route)
	if !ok {
		x.produced[kindPassthrough]++
		return []Route{route}
	}

	locales := x.effectiveLocales(page, override)
	isChild := parentPath != ""
	sep := x.cfg.RoutesNameSeparator

	var routes []Route
	for _, loc := range locales {
		localized := route
		localized.Children = nil
		if route.Name != "" {
			localized.Name = route.Name + sep + loc
		}

		path := route.Path
		if custom := page.Paths[loc]; custom != "" {
			path = custom
		}

		isDefault := loc == x.cfg.DefaultLocale
		relativeChild := isChild && !routepath.IsAbsolute(path)
		prefixed := x.shouldPrefix(isDefault, relativeChild)
		finalPath := path
		if prefixed {
			finalPath = "/" + loc + path
		}
		finalPath = routepath.NormalizeTrailingSlash(finalPath, x.cfg.TrailingSlash, relativeChild)

		if len(route.Children) > 0 {
			localized.Children = x.buildChildren(route.Children, loc, descend(parentPath, path), resolve(mountedParent, finalPath), extraTree)
		}

		if isDefault && x.cfg.Strategy == StrategyPrefixAndDefault {
			if !isChild {
				extra := localized
				extra.Path = routepath.NormalizeTrailingSlash(path, x.cfg.TrailingSlash, false)
				if route.Name != "" {
					extra.Name = localized.Name + sep + x.cfg.DefaultLocaleRouteNameSuffix
				}
				if len(route.Children) > 0 {
					extra.Children = x.buildChildren(route.Children, loc, path, extra.Path, true)
				}
				routes = x.add(routes, route, extra, loc, parentPath, mountedParent, kindDefault)
			} else if extraTree && route.Name != "" {
				localized.Name += sep + x.cfg.DefaultLocaleRouteNameSuffix
			}
		}

		if prefixed && isDefault && x.cfg.Strategy == StrategyPrefix && x.cfg.IncludeUnprefixedFallback {
			fallback := Route{Path: route.Path, Redirect: finalPath}
			routes = x.add(routes, route, fallback, loc, parentPath, mountedParent, kindRedirect)
		}

		localized.Path = finalPath
		routes = x.add(routes, route, localized, loc, parentPath, mountedParent, kindLocalized)
	}

	return routes
}

func (x *expansion) buildChildren(children []Route, loc, parentPath, mountedParent string, extraTree bool) []Route {
	pinned := []string{loc}
	out := make([]Route, 0, len(children))
	for _, child := range children {
		out = append(out, x.build(child, pinned, parentPath, mountedParent, extraTree)...)
	}
	return out
}

// effectiveLocales merges the configured locales, the page's own locales and
// the locale pinned by an ancestor. The result never contains a locale the
// page did not declare, when it declares any.
func (x *expansion) effectiveLocales(page PageOptions, override []string) []string {
	locales := x.codes
	if len(page.Locales) > 0 {
		locales = page.Locales
	}
	if override != nil {
		locales = override
	}
	if len(locales) == 0 || len(page.Locales) == 0 {
		return locales
	}

	filtered := make([]string, 0, len(locales))
	for _, loc := range locales {
		if locale.Contains(page.Locales, loc) {
			filtered = append(filtered, loc)
		}
	}
	return filtered
}

func (x *expansion) shouldPrefix(isDefault, relativeChild bool) bool {
	switch {
	case x.cfg.Strategy == StrategyNoPrefix:
		return false
	case x.cfg.DifferentDomains:
		return false
	case relativeChild:
		return false
	case isDefault && x.cfg.Strategy == StrategyPrefixExceptDefault:
		return false
	}
	return true
}

// add appends produced to routes and registers it in the path map under the
// original route's name and full path. The record holds the path produced
// resolved against the mounted parent.
func (x *expansion) add(routes []Route, original, produced Route, loc, parentPath, mountedParent, kind string) []Route {
	x.produced[kind]++
	if original.Name != "" {
		x.paths.Register(
			original.Name,
			routepath.Join(parentPath, original.Path),
			loc,
			PathRecord{Name: produced.Name, Path: resolve(mountedParent, produced.Path)},
		)
	}
	return append(routes, produced)
}

// descend appends a route path to the accumulated parent path. The result is
// empty only for an empty path at the top level.
func descend(parentPath, p string) string {
	if parentPath == "" || p == "" {
		return parentPath + p
	}
	return routepath.Join(parentPath, p)
}

// resolve returns the full path of p below parent. Absolute paths stand on
// their own.
func resolve(parent, p string) string {
	if routepath.IsAbsolute(p) || parent == "" {
		return routepath.Join(p)
	}
	return routepath.Join(parent, p)
}
