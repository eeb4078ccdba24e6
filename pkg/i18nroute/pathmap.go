package i18nroute

// PathRecord is a produced route in the custom path map.
type PathRecord struct {
	Name string `json:"n" yaml:"n"`
	Path string `json:"p" yaml:"p"`
}

// PathMap indexes produced paths by original route name and by original full
// path, per locale. Indexes point into All.
type PathMap struct {
	ByPath map[string]map[string]int `json:"byPath" yaml:"byPath"`
	ByName map[string]map[string]int `json:"byName" yaml:"byName"`
	All    []PathRecord              `json:"all" yaml:"all"`
}

// NewPathMap returns an empty path map.
func NewPathMap() *PathMap {
	return &PathMap{
		ByPath: make(map[string]map[string]int),
		ByName: make(map[string]map[string]int),
		All:    []PathRecord{},
	}
}

// Register records rec for the (name, locale) and (fullPath, locale) slots.
//
// When both slots are already filled the record is dropped and Register
// returns false. Otherwise the record is appended and only the empty slots
// point at it, so the first registration of a slot always wins. This lets the
// default locale under prefix_and_default keep its first variant.
func (m *PathMap) Register(name, fullPath, locale string, rec PathRecord) bool {
	byName, ok := m.ByName[name]
	if !ok {
		byName = make(map[string]int)
		m.ByName[name] = byName
	}
	byPath, ok := m.ByPath[fullPath]
	if !ok {
		byPath = make(map[string]int)
		m.ByPath[fullPath] = byPath
	}

	_, nameSet := byName[locale]
	_, pathSet := byPath[locale]
	if nameSet && pathSet {
		return false
	}

	m.All = append(m.All, rec)
	idx := len(m.All) - 1
	if !nameSet {
		byName[locale] = idx
	}
	if !pathSet {
		byPath[locale] = idx
	}
	return true
}

// ByNameLocale returns the record registered for a route name and locale.
func (m *PathMap) ByNameLocale(name, locale string) (PathRecord, bool) {
	return m.lookup(m.ByName, name, locale)
}

// ByPathLocale returns the record registered for an original full path and locale.
func (m *PathMap) ByPathLocale(fullPath, locale string) (PathRecord, bool) {
	return m.lookup(m.ByPath, fullPath, locale)
}

func (m *PathMap) lookup(index map[string]map[string]int, key, locale string) (PathRecord, bool) {
	idx, ok := index[key][locale]
	if !ok || idx < 0 || idx >= len(m.All) {
		return PathRecord{}, false
	}
	return m.All[idx], true
}
