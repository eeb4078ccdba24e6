// Package i18nlink builds localized links from a custom path map.
//
// Links are resolved by original route name and locale, then route
// parameters are substituted into the localized pattern:
//
//	l := i18nlink.New(result.Paths, cfg)
//	l.Path("users-id", "fr", map[string]string{"id": "42"}, nil) // "/fr/utilisateurs/42"
//
// Alternates lists the same page in every locale, for hreflang link tags.
package i18nlink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
	"github.com/vango-dev/vango-i18n/pkg/locale"
)

// XDefault is the hreflang value of the default locale alternate.
const XDefault = "x-default"

var (
	// ErrRouteNotFound is returned when the path map has no record for a
	// route name and locale.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingParam is returned when a route parameter has no value.
	ErrMissingParam = errors.New("missing route parameter")
)

// Linker resolves localized links. It only reads the path map.
type Linker struct {
	paths            *i18nroute.PathMap
	locales          []locale.Descriptor
	defaultLocale    string
	differentDomains bool
	separator        string
}

// New creates a Linker for the path map produced with cfg.
func New(paths *i18nroute.PathMap, cfg i18nroute.Config) *Linker {
	if paths == nil {
		paths = i18nroute.NewPathMap()
	}
	return &Linker{
		paths:            paths,
		locales:          cfg.Locales,
		defaultLocale:    cfg.DefaultLocale,
		differentDomains: cfg.DifferentDomains,
		separator:        cfg.RoutesNameSeparator,
	}
}

// Path returns the path of the route named name in locale loc, with params
// substituted and query appended.
func (l *Linker) Path(name, loc string, params map[string]string, query url.Values) (string, error) {
	rec, ok := l.paths.ByNameLocale(name, loc)
	if !ok {
		return "", fmt.Errorf("%w: %s (%s)", ErrRouteNotFound, name, loc)
	}

	p, err := Fill(rec.Path, params)
	if err != nil {
		return "", fmt.Errorf("%s (%s): %w", name, loc, err)
	}
	if len(query) == 0 {
		return p, nil
	}
	return p + "?" + query.Encode(), nil
}

// BaseName strips the locale and default suffix from a localized route
// name: "about___fr" → "about".
func (l *Linker) BaseName(localized string) string {
	if l.separator == "" {
		return localized
	}
	base, _, _ := strings.Cut(localized, l.separator)
	return base
}

// Alternate is one hreflang entry.
type Alternate struct {
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

// Alternates returns the route in every configured locale that has it, in
// locale order, followed by an x-default entry for the default locale.
// baseURL prefixes every href unless locales are served on their own
// domains, in which case the locale domain is used when set.
func (l *Linker) Alternates(name string, params map[string]string, baseURL string) []Alternate {
	baseURL = strings.TrimSuffix(baseURL, "/")

	var alts []Alternate
	var xDefault *Alternate
	for _, desc := range l.locales {
		p, err := l.Path(name, desc.Code, params, nil)
		if err != nil {
			continue
		}
		alt := Alternate{Hreflang: hreflang(desc), Href: l.origin(desc, baseURL) + p}
		alts = append(alts, alt)
		if desc.Code == l.defaultLocale {
			xDefault = &Alternate{Hreflang: XDefault, Href: alt.Href}
		}
	}
	if xDefault != nil {
		alts = append(alts, *xDefault)
	}
	return alts
}

func (l *Linker) origin(desc locale.Descriptor, baseURL string) string {
	if l.differentDomains && desc.Domain != "" {
		if strings.Contains(desc.Domain, "://") {
			return strings.TrimSuffix(desc.Domain, "/")
		}
		return "https://" + strings.TrimSuffix(desc.Domain, "/")
	}
	return baseURL
}

// hreflang prefers the ISO tag of a locale over its code.
func hreflang(desc locale.Descriptor) string {
	if desc.ISO != "" {
		return desc.ISO
	}
	return desc.Code
}

// Fill substitutes params into a route pattern. ":name" and ":name:type"
// segments take params[name], path escaped. "*name" takes params[name] as a
// slash separated path whose segments are escaped one by one.
func Fill(pattern string, params map[string]string) (string, error) {
	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, ":"):
			name, _, _ := strings.Cut(seg[1:], ":")
			v, ok := params[name]
			if !ok || v == "" {
				return "", fmt.Errorf("%w %q", ErrMissingParam, name)
			}
			segments[i] = url.PathEscape(v)
		case strings.HasPrefix(seg, "*"):
			name := seg[1:]
			v, ok := params[name]
			if !ok {
				return "", fmt.Errorf("%w %q", ErrMissingParam, name)
			}
			parts := strings.Split(strings.Trim(v, "/"), "/")
			for j, part := range parts {
				parts[j] = url.PathEscape(part)
			}
			segments[i] = strings.Join(parts, "/")
		}
	}
	return strings.Join(segments, "/"), nil
}
