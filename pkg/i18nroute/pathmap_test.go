package i18nroute

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathMapRegister(t *testing.T) {
	m := NewPathMap()

	assert.True(t, m.Register("about", "/about", "en", PathRecord{Name: "about___en___default", Path: "/about"}))
	assert.False(t, m.Register("about", "/about", "en", PathRecord{Name: "about___en", Path: "/en/about"}))
	assert.True(t, m.Register("about", "/about", "fr", PathRecord{Name: "about___fr", Path: "/fr/about"}))

	assert.Equal(t, []PathRecord{
		{Name: "about___en___default", Path: "/about"},
		{Name: "about___fr", Path: "/fr/about"},
	}, m.All)
}

func TestPathMapRegisterFillsOnlyEmptySlots(t *testing.T) {
	m := NewPathMap()

	require.True(t, m.Register("item", "/a/item", "en", PathRecord{Name: "item___en", Path: "/a/item"}))
	// Same name under another full path: the name slot is kept, the new path slot is filled.
	require.True(t, m.Register("item", "/b/item", "en", PathRecord{Name: "item___en", Path: "/b/item"}))

	assert.Len(t, m.All, 2)
	assert.Equal(t, 0, m.ByName["item"]["en"])
	assert.Equal(t, 0, m.ByPath["/a/item"]["en"])
	assert.Equal(t, 1, m.ByPath["/b/item"]["en"])
}

func TestPathMapLookup(t *testing.T) {
	m := NewPathMap()
	m.Register("about", "/about", "fr", PathRecord{Name: "about___fr", Path: "/fr/a-propos"})

	rec, ok := m.ByNameLocale("about", "fr")
	require.True(t, ok)
	assert.Equal(t, "/fr/a-propos", rec.Path)

	rec, ok = m.ByPathLocale("/about", "fr")
	require.True(t, ok)
	assert.Equal(t, "about___fr", rec.Name)

	_, ok = m.ByNameLocale("about", "de")
	assert.False(t, ok)
	_, ok = m.ByNameLocale("missing", "fr")
	assert.False(t, ok)
}

func TestPathMapJSON(t *testing.T) {
	m := NewPathMap()
	m.Register("about", "/about", "en", PathRecord{Name: "about___en", Path: "/about"})

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"byPath": {"/about": {"en": 0}},
		"byName": {"about": {"en": 0}},
		"all": [{"n": "about___en", "p": "/about"}]
	}`, string(data))
}
