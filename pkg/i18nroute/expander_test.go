package i18nroute

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vango-i18n/pkg/locale"
)

func testConfig(strategy Strategy) Config {
	return Config{
		DefaultLocale:                "en",
		DefaultLocaleRouteNameSuffix: "default",
		Locales:                      locale.FromCodes("en", "fr"),
		Strategy:                     strategy,
		RoutesNameSeparator:          "___",
	}
}

// pages resolves options by route name.
func pages(byName map[string]PageOptions, disabled ...string) PageOptionsResolver {
	return ResolverFunc(func(r Route) (PageOptions, bool) {
		for _, name := range disabled {
			if r.Name == name {
				return PageOptions{}, false
			}
		}
		return byName[r.Name], true
	})
}

func about() Route {
	return Route{Name: "about", Path: "/about", Component: "app/routes/about.go"}
}

func nested(childPath string) Route {
	return Route{
		Name:      "parent",
		Path:      "/p",
		Component: "app/routes/p.go",
		Children: []Route{
			{Name: "child", Path: childPath, Component: "app/routes/p/child.go"},
		},
	}
}

// strip drops fields not relevant to path and name assertions.
func strip(routes []Route) []Route {
	out := make([]Route, len(routes))
	for i, r := range routes {
		out[i] = Route{Name: r.Name, Path: r.Path, Redirect: r.Redirect}
		if len(r.Children) > 0 {
			out[i].Children = strip(r.Children)
		}
	}
	return out
}

func TestExpandPrefixExceptDefault(t *testing.T) {
	result := New(testConfig(StrategyPrefixExceptDefault), nil).Expand([]Route{about()})

	assert.Equal(t, []Route{
		{Name: "about___en", Path: "/about"},
		{Name: "about___fr", Path: "/fr/about"},
	}, strip(result.Routes))

	assert.Equal(t, []PathRecord{
		{Name: "about___en", Path: "/about"},
		{Name: "about___fr", Path: "/fr/about"},
	}, result.Paths.All)
	assert.Equal(t, map[string]int{"en": 0, "fr": 1}, result.Paths.ByName["about"])
	assert.Equal(t, map[string]int{"en": 0, "fr": 1}, result.Paths.ByPath["/about"])
}

func TestExpandKeepsComponent(t *testing.T) {
	result := New(testConfig(StrategyPrefix), nil).Expand([]Route{about()})

	for _, r := range result.Routes {
		assert.Equal(t, "app/routes/about.go", r.Component)
	}
}

func TestExpandPrefixWithUnprefixedFallback(t *testing.T) {
	cfg := testConfig(StrategyPrefix)
	cfg.IncludeUnprefixedFallback = true

	result := New(cfg, nil).Expand([]Route{about()})

	assert.Equal(t, []Route{
		{Path: "/about", Redirect: "/en/about"},
		{Name: "about___en", Path: "/en/about"},
		{Name: "about___fr", Path: "/fr/about"},
	}, strip(result.Routes))

	// The redirect registers first and keeps the default locale slots.
	assert.Equal(t, []PathRecord{
		{Name: "", Path: "/about"},
		{Name: "about___fr", Path: "/fr/about"},
	}, result.Paths.All)
	assert.Equal(t, map[string]int{"en": 0, "fr": 1}, result.Paths.ByName["about"])
}

func TestExpandPrefixWithoutFallback(t *testing.T) {
	result := New(testConfig(StrategyPrefix), nil).Expand([]Route{about()})

	assert.Equal(t, []Route{
		{Name: "about___en", Path: "/en/about"},
		{Name: "about___fr", Path: "/fr/about"},
	}, strip(result.Routes))
}

func TestExpandFallbackOnlyUnderPrefix(t *testing.T) {
	for _, strategy := range []Strategy{StrategyNoPrefix, StrategyPrefixExceptDefault, StrategyPrefixAndDefault} {
		cfg := testConfig(strategy)
		cfg.IncludeUnprefixedFallback = true

		result := New(cfg, nil).Expand([]Route{about()})
		for _, r := range result.Routes {
			assert.Empty(t, r.Redirect, "strategy %s", strategy)
		}
	}
}

func TestExpandNoPrefix(t *testing.T) {
	result := New(testConfig(StrategyNoPrefix), nil).Expand([]Route{about()})

	assert.Equal(t, []Route{
		{Name: "about___en", Path: "/about"},
		{Name: "about___fr", Path: "/about"},
	}, strip(result.Routes))
}

func TestExpandDifferentDomains(t *testing.T) {
	cfg := testConfig(StrategyPrefix)
	cfg.DifferentDomains = true
	cfg.IncludeUnprefixedFallback = true

	result := New(cfg, nil).Expand([]Route{about()})

	assert.Equal(t, []Route{
		{Name: "about___en", Path: "/about"},
		{Name: "about___fr", Path: "/about"},
	}, strip(result.Routes))
}

func TestExpandPrefixAndDefault(t *testing.T) {
	result := New(testConfig(StrategyPrefixAndDefault), nil).Expand([]Route{about()})

	assert.Equal(t, []Route{
		{Name: "about___en___default", Path: "/about"},
		{Name: "about___en", Path: "/en/about"},
		{Name: "about___fr", Path: "/fr/about"},
	}, strip(result.Routes))

	// The unprefixed variant is first and wins the default locale slots.
	assert.Equal(t, []PathRecord{
		{Name: "about___en___default", Path: "/about"},
		{Name: "about___fr", Path: "/fr/about"},
	}, result.Paths.All)

	rec, ok := result.Paths.ByNameLocale("about", "en")
	require.True(t, ok)
	assert.Equal(t, "/about", rec.Path)
}

func TestExpandPrefixAndDefaultNested(t *testing.T) {
	result := New(testConfig(StrategyPrefixAndDefault), nil).Expand([]Route{nested("child")})

	assert.Equal(t, []Route{
		{Name: "parent___en___default", Path: "/p", Children: []Route{
			{Name: "child___en___default", Path: "child"},
		}},
		{Name: "parent___en", Path: "/en/p", Children: []Route{
			{Name: "child___en", Path: "child"},
		}},
		{Name: "parent___fr", Path: "/fr/p", Children: []Route{
			{Name: "child___fr", Path: "child"},
		}},
	}, strip(result.Routes))

	assert.Equal(t, []PathRecord{
		{Name: "child___en", Path: "/en/p/child"},
		{Name: "parent___en___default", Path: "/p"},
		{Name: "child___fr", Path: "/fr/p/child"},
		{Name: "parent___fr", Path: "/fr/p"},
	}, result.Paths.All)
}

func TestExpandPrefixAndDefaultTrailingSlash(t *testing.T) {
	cfg := testConfig(StrategyPrefixAndDefault)
	cfg.TrailingSlash = true

	result := New(cfg, nil).Expand([]Route{about()})

	assert.Equal(t, []Route{
		{Name: "about___en___default", Path: "/about/"},
		{Name: "about___en", Path: "/en/about/"},
		{Name: "about___fr", Path: "/fr/about/"},
	}, strip(result.Routes))
}

func TestExpandRelativeChild(t *testing.T) {
	for _, strategy := range []Strategy{StrategyPrefix, StrategyPrefixExceptDefault, StrategyPrefixAndDefault} {
		t.Run(strategy.String(), func(t *testing.T) {
			result := New(testConfig(strategy), nil).Expand([]Route{nested("child")})

			for _, parent := range result.Routes {
				require.Len(t, parent.Children, 1)
				assert.Equal(t, "child", parent.Children[0].Path)
			}
			last := result.Routes[len(result.Routes)-1]
			assert.Equal(t, "/fr/p", last.Path)
		})
	}
}

func TestExpandRelativeChildFullPath(t *testing.T) {
	result := New(testConfig(StrategyPrefix), nil).Expand([]Route{nested("child")})

	rec, ok := result.Paths.ByNameLocale("child", "fr")
	require.True(t, ok)
	assert.Equal(t, PathRecord{Name: "child___fr", Path: "/fr/p/child"}, rec)

	rec, ok = result.Paths.ByPathLocale("/p/child", "en")
	require.True(t, ok)
	assert.Equal(t, PathRecord{Name: "child___en", Path: "/en/p/child"}, rec)
}

func TestExpandNestedRecordsMountedPath(t *testing.T) {
	tree := Route{Name: "parent", Path: "/p", Component: "p.go", Children: []Route{
		{Name: "child", Path: "c", Component: "p/c.go", Children: []Route{
			{Name: "grandchild", Path: "g/", Component: "p/c/g.go"},
			{Name: "absolute", Path: "/abs", Component: "p/c/abs.go"},
		}},
	}}

	tests := []struct {
		strategy Strategy
		name     string
		locale   string
		want     string
	}{
		{StrategyPrefix, "grandchild", "en", "/en/p/c/g"},
		{StrategyPrefix, "grandchild", "fr", "/fr/p/c/g"},
		{StrategyPrefix, "absolute", "fr", "/fr/abs"},
		{StrategyPrefixExceptDefault, "grandchild", "en", "/p/c/g"},
		{StrategyPrefixExceptDefault, "child", "fr", "/fr/p/c"},
		{StrategyNoPrefix, "grandchild", "fr", "/p/c/g"},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.String()+"/"+tt.name+"/"+tt.locale, func(t *testing.T) {
			result := New(testConfig(tt.strategy), nil).Expand([]Route{tree})

			rec, ok := result.Paths.ByNameLocale(tt.name, tt.locale)
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Path)
		})
	}

	// Keys stay on the original unprefixed paths.
	result := New(testConfig(StrategyPrefix), nil).Expand([]Route{tree})
	rec, ok := result.Paths.ByPathLocale("/p/c/g", "fr")
	require.True(t, ok)
	assert.Equal(t, "grandchild___fr", rec.Name)
}

func TestExpandEmptyChildPath(t *testing.T) {
	cfg := testConfig(StrategyPrefix)
	cfg.TrailingSlash = true

	result := New(cfg, nil).Expand([]Route{nested("")})

	for _, parent := range result.Routes {
		require.Len(t, parent.Children, 1)
		assert.Equal(t, "", parent.Children[0].Path)
		assert.True(t, strings.HasSuffix(parent.Path, "/"))
	}
}

func TestExpandAbsoluteChild(t *testing.T) {
	result := New(testConfig(StrategyPrefix), nil).Expand([]Route{nested("/x")})

	assert.Equal(t, []Route{
		{Name: "parent___en", Path: "/en/p", Children: []Route{{Name: "child___en", Path: "/en/x"}}},
		{Name: "parent___fr", Path: "/fr/p", Children: []Route{{Name: "child___fr", Path: "/fr/x"}}},
	}, strip(result.Routes))

	rec, ok := result.Paths.ByPathLocale("/p/x", "fr")
	require.True(t, ok)
	assert.Equal(t, "/fr/x", rec.Path)
}

func TestExpandRedirectPassthrough(t *testing.T) {
	redirect := Route{Name: "old", Path: "/old", Redirect: "/new", Children: []Route{about()}}

	result := New(testConfig(StrategyPrefix), nil).Expand([]Route{redirect})

	require.Len(t, result.Routes, 1)
	assert.Equal(t, redirect, result.Routes[0])
	assert.Empty(t, result.Paths.All)
	assert.Empty(t, result.Paths.ByName)
	assert.Empty(t, result.Paths.ByPath)
}

func TestExpandRedirectWithComponentIsLocalized(t *testing.T) {
	r := Route{Name: "home", Path: "/home", Component: "home.go", Redirect: "/welcome"}

	result := New(testConfig(StrategyPrefixExceptDefault), nil).Expand([]Route{r})

	require.Len(t, result.Routes, 2)
	assert.Equal(t, "/fr/home", result.Routes[1].Path)
}

func TestExpandOptOut(t *testing.T) {
	secret := Route{Name: "secret", Path: "/secret", Component: "secret.go", Children: []Route{about()}}

	result := New(testConfig(StrategyPrefix), pages(nil, "secret")).Expand([]Route{secret, about()})

	require.Len(t, result.Routes, 3)
	assert.Equal(t, secret, result.Routes[0])
	assert.Equal(t, "/en/about", result.Routes[1].Path)
	_, ok := result.Paths.ByName["secret"]
	assert.False(t, ok)
}

func TestExpandPageLocales(t *testing.T) {
	resolver := pages(map[string]PageOptions{
		"about": {Locales: []string{"fr"}},
	})

	result := New(testConfig(StrategyPrefixExceptDefault), resolver).Expand([]Route{about()})

	assert.Equal(t, []Route{{Name: "about___fr", Path: "/fr/about"}}, strip(result.Routes))
}

func TestExpandPageLocalesKeepConfiguredOrder(t *testing.T) {
	cfg := testConfig(StrategyPrefix)
	cfg.Locales = locale.FromCodes("en", "fr", "de")
	resolver := pages(map[string]PageOptions{
		"about": {Locales: []string{"de", "en"}},
	})

	result := New(cfg, resolver).Expand([]Route{about()})

	assert.Equal(t, []Route{
		{Name: "about___en", Path: "/en/about"},
		{Name: "about___de", Path: "/de/about"},
	}, strip(result.Routes))
}

func TestExpandChildCannotRegainDisabledLocale(t *testing.T) {
	resolver := pages(map[string]PageOptions{
		"child": {Locales: []string{"en"}},
	})

	result := New(testConfig(StrategyPrefix), resolver).Expand([]Route{nested("child")})

	require.Len(t, result.Routes, 2)
	assert.Equal(t, []Route{{Name: "child___en", Path: "child"}}, strip(result.Routes[0].Children))
	assert.Empty(t, result.Routes[1].Children)
	_, ok := result.Paths.ByNameLocale("child", "fr")
	assert.False(t, ok)
}

func TestExpandCustomPaths(t *testing.T) {
	resolver := pages(map[string]PageOptions{
		"about": {Paths: map[string]string{"fr": "/a-propos"}},
	})

	result := New(testConfig(StrategyPrefixExceptDefault), resolver).Expand([]Route{about()})

	assert.Equal(t, []Route{
		{Name: "about___en", Path: "/about"},
		{Name: "about___fr", Path: "/fr/a-propos"},
	}, strip(result.Routes))

	rec, ok := result.Paths.ByPathLocale("/about", "fr")
	require.True(t, ok)
	assert.Equal(t, "/fr/a-propos", rec.Path)
}

func TestExpandCustomPathAccumulatesIntoChildren(t *testing.T) {
	resolver := pages(map[string]PageOptions{
		"parent": {Paths: map[string]string{"fr": "/parent-fr"}},
	})

	result := New(testConfig(StrategyPrefix), resolver).Expand([]Route{nested("child")})

	rec, ok := result.Paths.ByNameLocale("child", "fr")
	require.True(t, ok)
	assert.Equal(t, "/fr/parent-fr/child", rec.Path)
	assert.Equal(t, "/fr/parent-fr", result.Routes[1].Path)
}

func TestExpandTrailingSlash(t *testing.T) {
	routes := []Route{
		{Name: "index", Path: "/", Component: "index.go"},
		{Name: "about", Path: "/about/", Component: "about.go"},
	}

	t.Run("enabled", func(t *testing.T) {
		cfg := testConfig(StrategyPrefixExceptDefault)
		cfg.TrailingSlash = true
		result := New(cfg, nil).Expand(routes)

		assert.Equal(t, []Route{
			{Name: "index___en", Path: "/"},
			{Name: "index___fr", Path: "/fr/"},
			{Name: "about___en", Path: "/about/"},
			{Name: "about___fr", Path: "/fr/about/"},
		}, strip(result.Routes))
	})

	t.Run("disabled", func(t *testing.T) {
		result := New(testConfig(StrategyPrefixExceptDefault), nil).Expand(routes)

		assert.Equal(t, []Route{
			{Name: "index___en", Path: "/"},
			{Name: "index___fr", Path: "/fr"},
			{Name: "about___en", Path: "/about"},
			{Name: "about___fr", Path: "/fr/about"},
		}, strip(result.Routes))
	})
}

func TestExpandPrefixProperty(t *testing.T) {
	cfg := testConfig(StrategyPrefix)
	cfg.Locales = locale.FromCodes("en", "fr", "de")
	routes := []Route{about(), {Name: "contact", Path: "/contact", Component: "contact.go"}}

	for _, strategy := range Strategies() {
		t.Run(strategy.String(), func(t *testing.T) {
			cfg.Strategy = strategy
			result := New(cfg, nil).Expand(routes)

			for _, r := range result.Routes {
				loc := r.Name[strings.LastIndex(r.Name, "___")+3:]
				isDefaultVariant := strings.HasSuffix(r.Name, "___default")
				if isDefaultVariant {
					loc = "en"
				}
				prefixed := strings.HasPrefix(r.Path, "/"+loc+"/")

				switch {
				case strategy == StrategyNoPrefix:
					assert.False(t, prefixed, r.Name)
				case strategy == StrategyPrefix:
					assert.True(t, prefixed, r.Name)
				case strategy == StrategyPrefixExceptDefault:
					assert.Equal(t, loc != "en", prefixed, r.Name)
				case strategy == StrategyPrefixAndDefault:
					assert.Equal(t, !isDefaultVariant, prefixed, r.Name)
				}
			}

			want := len(routes) * 3
			if strategy == StrategyPrefixAndDefault {
				want += len(routes)
			}
			assert.Len(t, result.Routes, want)
		})
	}
}

func TestExpandUnnamedRoute(t *testing.T) {
	r := Route{Path: "/anon", Component: "anon.go"}

	result := New(testConfig(StrategyPrefixAndDefault), nil).Expand([]Route{r})

	assert.Equal(t, []Route{
		{Path: "/anon"},
		{Path: "/en/anon"},
		{Path: "/fr/anon"},
	}, strip(result.Routes))
	assert.Empty(t, result.Paths.All)
}

func TestExpandDoesNotMutateInput(t *testing.T) {
	input := []Route{nested("child"), about()}
	snapshot := []Route{nested("child"), about()}

	cfg := testConfig(StrategyPrefixAndDefault)
	cfg.TrailingSlash = true
	New(cfg, nil).Expand(input)

	assert.Equal(t, snapshot, input)
}

func TestExpandEmpty(t *testing.T) {
	result := New(testConfig(StrategyPrefix), nil).Expand(nil)

	assert.Empty(t, result.Routes)
	require.NotNil(t, result.Paths)
	assert.Empty(t, result.Paths.All)
}

func TestExpandDuplicateLocales(t *testing.T) {
	cfg := testConfig(StrategyPrefix)
	cfg.Locales = locale.FromCodes("en", "en")

	result := New(cfg, nil).Expand([]Route{about()})

	assert.Equal(t, []Route{
		{Name: "about___en", Path: "/en/about"},
		{Name: "about___en", Path: "/en/about"},
	}, strip(result.Routes))
	assert.Len(t, result.Paths.All, 1)
}

type reverseSorter struct{ calls int }

func (s *reverseSorter) Sort(routes []Route) []Route {
	s.calls++
	out := make([]Route, len(routes))
	for i, r := range routes {
		out[len(routes)-1-i] = r
	}
	return out
}

func TestExpandSorter(t *testing.T) {
	sorter := &reverseSorter{}

	result := New(testConfig(StrategyPrefix), nil, WithSorter(sorter)).Expand([]Route{about()})

	assert.Equal(t, 1, sorter.calls)
	assert.Equal(t, "about___fr", result.Routes[0].Name)
	assert.Equal(t, "about___en", result.Routes[1].Name)
}

func TestExpandMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	cfg := testConfig(StrategyPrefix)
	cfg.IncludeUnprefixedFallback = true
	exp := New(cfg, nil, WithMetrics(m))
	exp.Expand([]Route{about(), {Path: "/old", Redirect: "/about"}})
	exp.Expand(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.expansions.WithLabelValues("prefix")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.produced.WithLabelValues("prefix", kindLocalized)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.produced.WithLabelValues("prefix", kindRedirect)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.produced.WithLabelValues("prefix", kindPassthrough)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.records))
}
