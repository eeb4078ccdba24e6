// Package i18nroute expands an application route tree into localized routes.
//
// Every renderable route is duplicated once per enabled locale. Each copy
// receives a locale-suffixed name, an optional per-locale custom path, and a
// "/{locale}" prefix depending on the configured Strategy. Children are
// expanded recursively and pinned to the locale of their parent copy.
//
// # Strategies
//
//	no_prefix              /about            /about
//	prefix                 /en/about         /fr/about
//	prefix_except_default  /about            /fr/about
//	prefix_and_default     /about + /en/about /fr/about
//
// Under prefix_and_default the default locale yields two routes: the bare
// one, named with an extra default suffix (about___en___default), and the
// prefixed one (about___en).
//
// # Custom Path Map
//
// Alongside the routes, Expand returns a PathMap indexing, for every named
// route, the produced path per locale. Entries are keyed both by the original
// route name and by the original full path, so link generation can translate
// either reference into a locale-specific path.
//
// # Usage
//
//	exp := i18nroute.New(i18nroute.Config{
//	    Locales:             locale.FromCodes("en", "fr"),
//	    DefaultLocale:       "en",
//	    Strategy:            i18nroute.StrategyPrefixExceptDefault,
//	    RoutesNameSeparator: "___",
//	}, resolver, i18nroute.WithSorter(routesort.Specificity{}))
//
//	result := exp.Expand(routes)
//	rec, ok := result.Paths.ByNameLocale("about", "fr") // rec.Path == "/fr/about"
//
// Page options come from a PageOptionsResolver. A resolver returning ok ==
// false opts the page out of localization; the route is passed through as is.
package i18nroute
