package pageoptions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
)

func TestPageConfigJSON(t *testing.T) {
	var pages map[string]PageConfig
	err := json.Unmarshal([]byte(`{
		"about": {"fr": "/a-propos", "de": false},
		"admin": false,
		"home": true
	}`), &pages)
	require.NoError(t, err)

	assert.Equal(t, PageConfig{
		Paths:    map[string]string{"fr": "/a-propos"},
		Excluded: map[string]bool{"de": true},
	}, pages["about"])
	assert.True(t, pages["admin"].Disabled)
	assert.False(t, pages["home"].Disabled)
}

func TestPageConfigJSONInvalid(t *testing.T) {
	var c PageConfig
	assert.Error(t, json.Unmarshal([]byte(`{"fr": 3}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"fr": true}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`"about"`), &c))
}

func TestPageConfigYAML(t *testing.T) {
	src := `
about:
  fr: /a-propos
  de: false
admin: false
`
	var pages map[string]PageConfig
	require.NoError(t, yaml.Unmarshal([]byte(src), &pages))

	assert.Equal(t, PageConfig{
		Paths:    map[string]string{"fr": "/a-propos"},
		Excluded: map[string]bool{"de": true},
	}, pages["about"])
	assert.True(t, pages["admin"].Disabled)
}

func TestPageConfigYAMLInvalid(t *testing.T) {
	var c PageConfig
	assert.Error(t, yaml.Unmarshal([]byte("fr: true\n"), &c))
	assert.Error(t, yaml.Unmarshal([]byte("fr: [a]\n"), &c))
	assert.Error(t, yaml.Unmarshal([]byte("- a\n"), &c))
}

func TestPagesMapResolve(t *testing.T) {
	pm := &PagesMap{
		PagesDir: "app/routes",
		Locales:  []string{"en", "fr", "de"},
		Pages: map[string]PageConfig{
			"about":       {Paths: map[string]string{"fr": "/a-propos"}, Excluded: map[string]bool{"de": true}},
			"admin/index": {Disabled: true},
			"legal":       {Excluded: map[string]bool{"en": true, "fr": true, "de": true}},
		},
	}

	t.Run("configured page", func(t *testing.T) {
		opts, ok := pm.Resolve(i18nroute.Route{Name: "about", ChunkName: "app/routes/about"})
		require.True(t, ok)
		assert.Equal(t, []string{"en", "fr"}, opts.Locales)
		assert.Equal(t, map[string]string{"fr": "/a-propos"}, opts.Paths)
	})

	t.Run("disabled page", func(t *testing.T) {
		_, ok := pm.Resolve(i18nroute.Route{Name: "admin", ChunkName: "App/Routes/admin/index"})
		assert.False(t, ok)
	})

	t.Run("every locale excluded", func(t *testing.T) {
		_, ok := pm.Resolve(i18nroute.Route{Name: "legal", ChunkName: "app/routes/legal"})
		assert.False(t, ok)
	})

	t.Run("unconfigured page", func(t *testing.T) {
		opts, ok := pm.Resolve(i18nroute.Route{Name: "contact", ChunkName: "app/routes/contact"})
		require.True(t, ok)
		assert.Equal(t, []string{"en", "fr", "de"}, opts.Locales)
		assert.Empty(t, opts.Paths)
	})

	t.Run("falls back to route name", func(t *testing.T) {
		opts, ok := pm.Resolve(i18nroute.Route{Name: "about"})
		require.True(t, ok)
		assert.Equal(t, "/a-propos", opts.Paths["fr"])
	})

	t.Run("does not alias configured locales", func(t *testing.T) {
		opts, _ := pm.Resolve(i18nroute.Route{Name: "about"})
		opts.Locales[0] = "xx"
		assert.Equal(t, []string{"en", "fr", "de"}, pm.Locales)
	})
}

func TestPagesMapKey(t *testing.T) {
	pm := &PagesMap{PagesDir: "app/routes"}

	assert.Equal(t, "about", pm.Key(i18nroute.Route{ChunkName: "app/routes/about"}))
	assert.Equal(t, "users/_id_", pm.Key(i18nroute.Route{ChunkName: "APP/ROUTES/users/_id_"}))
	assert.Equal(t, "other/about", pm.Key(i18nroute.Route{ChunkName: "other/about"}))
	assert.Equal(t, "about", pm.Key(i18nroute.Route{Name: "about"}))

	// Case folding that changes byte length must not shift the cut.
	assert.Equal(t, "İstanbul/about", pm.Key(i18nroute.Route{ChunkName: "İstanbul/app/routes/about"}))
	assert.Equal(t, "İİİİİİ/x", pm.Key(i18nroute.Route{ChunkName: "İİİİİİ/app/routes/x"}))
}

func TestPageConfigMarshal(t *testing.T) {
	cfg := PageConfig{
		Paths:    map[string]string{"fr": "/a-propos"},
		Excluded: map[string]bool{"de": true},
	}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fr": "/a-propos", "de": false}`, string(data))

	var back PageConfig
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, cfg, back)

	data, err = json.Marshal(PageConfig{Disabled: true})
	require.NoError(t, err)
	assert.Equal(t, "false", string(data))

	out, err := yaml.Marshal(map[string]PageConfig{"about": cfg})
	require.NoError(t, err)
	var yback map[string]PageConfig
	require.NoError(t, yaml.Unmarshal(out, &yback))
	assert.Equal(t, cfg, yback["about"])
}
