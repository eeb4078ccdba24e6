package pageoptions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
)

// PageConfig is the configured i18n setup of one page.
//
// It decodes from false (page not localized) or from a map of locale to
// either a custom path or false (locale disabled for the page):
//
//	{"fr": "/a-propos", "de": false}
type PageConfig struct {
	// Disabled opts the page out of localization.
	Disabled bool

	// Paths maps a locale to a custom path.
	Paths map[string]string

	// Excluded lists locales the page is not available in.
	Excluded map[string]bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *PageConfig) UnmarshalJSON(data []byte) error {
	var enabled bool
	if err := json.Unmarshal(data, &enabled); err == nil {
		*c = PageConfig{Disabled: !enabled}
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("page config: expected false or an object: %w", err)
	}

	cfg := PageConfig{}
	for loc, value := range raw {
		value = bytes.TrimSpace(value)
		var p string
		if err := json.Unmarshal(value, &p); err == nil {
			cfg.setPath(loc, p)
			continue
		}
		var b bool
		if err := json.Unmarshal(value, &b); err == nil && !b {
			cfg.exclude(loc)
			continue
		}
		return fmt.Errorf("page config: locale %q: expected a path or false", loc)
	}
	*c = cfg
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *PageConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("page config: expected false or a mapping: %w", err)
		}
		*c = PageConfig{Disabled: !enabled}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("page config: expected false or a mapping")
	}

	cfg := PageConfig{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		loc := node.Content[i].Value
		value := node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("page config: locale %q: expected a path or false", loc)
		}
		if value.Tag == "!!bool" {
			var b bool
			if err := value.Decode(&b); err != nil || b {
				return fmt.Errorf("page config: locale %q: expected a path or false", loc)
			}
			cfg.exclude(loc)
			continue
		}
		cfg.setPath(loc, value.Value)
	}
	*c = cfg
	return nil
}

// value returns the decoded form of c: false or a map of locale to path or
// false.
func (c PageConfig) value() any {
	if c.Disabled {
		return false
	}
	m := make(map[string]any, len(c.Paths)+len(c.Excluded))
	for loc, p := range c.Paths {
		m[loc] = p
	}
	for loc := range c.Excluded {
		m[loc] = false
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (c PageConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value())
}

// MarshalYAML implements yaml.Marshaler.
func (c PageConfig) MarshalYAML() (any, error) {
	return c.value(), nil
}

func (c *PageConfig) setPath(loc, p string) {
	if c.Paths == nil {
		c.Paths = make(map[string]string)
	}
	c.Paths[loc] = p
}

func (c *PageConfig) exclude(loc string) {
	if c.Excluded == nil {
		c.Excluded = make(map[string]bool)
	}
	c.Excluded[loc] = true
}

// PagesMap resolves page options from configuration keyed by page path.
type PagesMap struct {
	// Pages maps page keys (e.g., "about", "users/_id_") to their config.
	Pages map[string]PageConfig

	// PagesDir is removed from chunk names to form page keys.
	PagesDir string

	// Locales are the configured locale codes.
	Locales []string
}

// Resolve implements i18nroute.PageOptionsResolver.
func (p *PagesMap) Resolve(route i18nroute.Route) (i18nroute.PageOptions, bool) {
	opts := i18nroute.PageOptions{
		Locales: append([]string(nil), p.Locales...),
		Paths:   map[string]string{},
	}

	cfg, ok := p.Pages[p.Key(route)]
	if !ok {
		return opts, true
	}
	if cfg.Disabled {
		return i18nroute.PageOptions{}, false
	}

	if len(cfg.Excluded) > 0 {
		kept := opts.Locales[:0]
		for _, loc := range opts.Locales {
			if !cfg.Excluded[loc] {
				kept = append(kept, loc)
			}
		}
		// Excluding every locale leaves nothing to localize.
		if len(kept) == 0 && len(p.Locales) > 0 {
			return i18nroute.PageOptions{}, false
		}
		opts.Locales = kept
	}
	for loc, path := range cfg.Paths {
		opts.Paths[loc] = path
	}
	return opts, true
}

// Key returns the pages map key of a route: its chunk name without the pages
// directory, or its name when it has no chunk name.
func (p *PagesMap) Key(route i18nroute.Route) string {
	if route.ChunkName == "" {
		return route.Name
	}
	if p.PagesDir == "" {
		return route.ChunkName
	}

	prefix := p.PagesDir + "/"
	name := route.ChunkName
	for i := 0; i+len(prefix) <= len(name); i++ {
		if strings.EqualFold(name[i:i+len(prefix)], prefix) {
			return name[:i] + name[i+len(prefix):]
		}
	}
	return name
}
