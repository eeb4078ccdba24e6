package i18nroute

import (
	"fmt"

	"github.com/vango-dev/vango-i18n/pkg/locale"
)

// Route is a node of the application route tree. The same type describes
// input routes and localized output routes.
type Route struct {
	// Path is the URL pattern. Child paths not starting with "/" are relative
	// to their parent.
	Path string `json:"path" yaml:"path"`

	// Name identifies the route for link generation. May be empty.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Component references the page rendered by this route, conventionally the
	// page's source file. Only its presence matters to the expander.
	Component string `json:"component,omitempty" yaml:"component,omitempty"`

	// ChunkName is the page source path without extension, as seen from the
	// project root (e.g., "app/routes/about").
	ChunkName string `json:"chunkName,omitempty" yaml:"chunkName,omitempty"`

	// Redirect is a target path. Routes with a redirect and no component are
	// never localized.
	Redirect string `json:"redirect,omitempty" yaml:"redirect,omitempty"`

	// Children are nested routes.
	Children []Route `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsRedirectOnly reports whether the route only redirects.
func (r Route) IsRedirectOnly() bool {
	return r.Redirect != "" && r.Component == ""
}

// PageOptions are the i18n options declared by a page.
type PageOptions struct {
	// Locales restricts the page to these locales. Empty means all locales.
	Locales []string `json:"locales,omitempty" yaml:"locales,omitempty"`

	// Paths maps a locale to a custom path replacing the route's own path.
	Paths map[string]string `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// PageOptionsResolver resolves the i18n options of a route's page.
// Returning ok == false opts the page out of localization.
type PageOptionsResolver interface {
	Resolve(route Route) (opts PageOptions, ok bool)
}

// ResolverFunc is a function adapter for PageOptionsResolver.
type ResolverFunc func(route Route) (PageOptions, bool)

// Resolve implements PageOptionsResolver.
func (f ResolverFunc) Resolve(route Route) (PageOptions, bool) {
	return f(route)
}

// allLocales localizes every page for every configured locale.
var allLocales = ResolverFunc(func(Route) (PageOptions, bool) {
	return PageOptions{}, true
})

// Sorter orders the flat list of localized routes.
type Sorter interface {
	Sort(routes []Route) []Route
}

// Strategy controls whether and when a locale code prefixes route paths.
type Strategy string

const (
	// StrategyNoPrefix never prefixes paths.
	StrategyNoPrefix Strategy = "no_prefix"
	// StrategyPrefix prefixes every locale, the default one included.
	StrategyPrefix Strategy = "prefix"
	// StrategyPrefixExceptDefault prefixes every locale but the default one.
	StrategyPrefixExceptDefault Strategy = "prefix_except_default"
	// StrategyPrefixAndDefault prefixes every locale and also keeps an
	// unprefixed copy of the default locale.
	StrategyPrefixAndDefault Strategy = "prefix_and_default"
)

// Strategies lists every supported strategy.
func Strategies() []Strategy {
	return []Strategy{
		StrategyNoPrefix,
		StrategyPrefix,
		StrategyPrefixExceptDefault,
		StrategyPrefixAndDefault,
	}
}

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown strategy %q", s)
	}
	return st, nil
}

// Valid reports whether s is a supported strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyNoPrefix, StrategyPrefix, StrategyPrefixExceptDefault, StrategyPrefixAndDefault:
		return true
	}
	return false
}

func (s Strategy) String() string {
	return string(s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	st, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// Config holds the options of one expansion run.
type Config struct {
	// DefaultLocale is the home locale, eligible for prefix suppression or
	// duplication depending on Strategy.
	DefaultLocale string

	// DefaultLocaleRouteNameSuffix is appended to the names of the unprefixed
	// default-locale routes under StrategyPrefixAndDefault.
	DefaultLocaleRouteNameSuffix string

	// DifferentDomains disables path prefixes; locales are served per domain.
	DifferentDomains bool

	// IncludeUnprefixedFallback adds, under StrategyPrefix, a redirect from
	// the unprefixed path to the default locale's prefixed path.
	IncludeUnprefixedFallback bool

	// Locales are the configured locales, in output order.
	Locales []locale.Descriptor

	// Strategy is the prefixing policy.
	Strategy Strategy

	// TrailingSlash appends a trailing slash to every produced path.
	TrailingSlash bool

	// RoutesNameSeparator joins a route name and its locale (e.g., "___").
	RoutesNameSeparator string
}

// Result is the outcome of an expansion run.
type Result struct {
	Routes []Route  `json:"routes" yaml:"routes"`
	Paths  *PathMap `json:"customPathsMap" yaml:"customPathsMap"`
}
