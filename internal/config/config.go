package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vango-i18n/internal/errors"
	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
	"github.com/vango-dev/vango-i18n/pkg/locale"
	"github.com/vango-dev/vango-i18n/pkg/pageoptions"
	"github.com/vango-dev/vango-i18n/pkg/routepath"
	"github.com/vango-dev/vango-i18n/pkg/routescan"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "vango-i18n.json"

	// YAMLConfigFileName is the name of the YAML configuration file, used
	// when no JSON file exists.
	YAMLConfigFileName = "vango-i18n.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "VANGO_I18N_"

	// DefaultStrategy is the default prefixing strategy.
	DefaultStrategy = i18nroute.StrategyPrefixExceptDefault

	// DefaultRoutesNameSeparator joins route names and locale codes.
	DefaultRoutesNameSeparator = "___"

	// DefaultLocaleRouteNameSuffix names the unprefixed default locale
	// routes under prefix_and_default.
	DefaultLocaleRouteNameSuffix = "default"

	// DefaultPagesDir is the default pages directory.
	DefaultPagesDir = routescan.DefaultPagesDir
)

// Config represents the vango-i18n configuration file.
type Config struct {
	// Locales are the configured locales, as codes or descriptor objects.
	Locales []locale.Descriptor `json:"locales" yaml:"locales"`

	// DefaultLocale is the home locale.
	DefaultLocale string `json:"defaultLocale,omitempty" yaml:"defaultLocale,omitempty"`

	// DefaultLocaleRouteNameSuffix is appended to the names of unprefixed
	// default locale routes under prefix_and_default.
	DefaultLocaleRouteNameSuffix string `json:"defaultLocaleRouteNameSuffix,omitempty" yaml:"defaultLocaleRouteNameSuffix,omitempty"`

	// DifferentDomains disables path prefixes.
	DifferentDomains bool `json:"differentDomains,omitempty" yaml:"differentDomains,omitempty"`

	// IncludeUnprefixedFallback adds unprefixed redirects under prefix.
	IncludeUnprefixedFallback bool `json:"includeUnprefixedFallback,omitempty" yaml:"includeUnprefixedFallback,omitempty"`

	// Strategy is the prefixing strategy name.
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"`

	// TrailingSlash appends a trailing slash to every produced path.
	TrailingSlash bool `json:"trailingSlash,omitempty" yaml:"trailingSlash,omitempty"`

	// RoutesNameSeparator joins route names and locale codes.
	RoutesNameSeparator string `json:"routesNameSeparator,omitempty" yaml:"routesNameSeparator,omitempty"`

	// ParsePages reads page options from page sources. When false, Pages is
	// used instead. Default: true.
	ParsePages *bool `json:"parsePages,omitempty" yaml:"parsePages,omitempty"`

	// PagesDir is the pages directory relative to the project root.
	PagesDir string `json:"pagesDir,omitempty" yaml:"pagesDir,omitempty"`

	// Pages maps page keys to their options when ParsePages is false.
	Pages map[string]pageoptions.PageConfig `json:"pages,omitempty" yaml:"pages,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// envOverrides are the settings that can be overridden from the
// environment. Unset variables leave the field nil.
type envOverrides struct {
	Locales                      []string `env:"LOCALES" envSeparator:","`
	DefaultLocale                *string  `env:"DEFAULT_LOCALE"`
	DefaultLocaleRouteNameSuffix *string  `env:"DEFAULT_LOCALE_ROUTE_NAME_SUFFIX"`
	DifferentDomains             *bool    `env:"DIFFERENT_DOMAINS"`
	IncludeUnprefixedFallback    *bool    `env:"INCLUDE_UNPREFIXED_FALLBACK"`
	Strategy                     *string  `env:"STRATEGY"`
	TrailingSlash                *bool    `env:"TRAILING_SLASH"`
	RoutesNameSeparator          *string  `env:"ROUTES_NAME_SEPARATOR"`
	ParsePages                   *bool    `env:"PARSE_PAGES"`
	PagesDir                     *string  `env:"PAGES_DIR"`
}

// New creates a new Config with default values.
func New() *Config {
	parse := true
	return &Config{
		DefaultLocaleRouteNameSuffix: DefaultLocaleRouteNameSuffix,
		Strategy:                     string(DefaultStrategy),
		RoutesNameSeparator:          DefaultRoutesNameSeparator,
		ParsePages:                   &parse,
		PagesDir:                     DefaultPagesDir,
	}
}

// Load reads configuration from dir. It looks for vango-i18n.json, then
// vango-i18n.yaml. Without either file the defaults are used. Environment
// overrides are applied last.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	cfg := New()
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile reads configuration from the specified file path. Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E200").
			WithDetail(err.Error()).
			Wrap(err)
	}

	cfg := New()
	if err := cfg.decode(path, data); err != nil {
		return nil, errors.New("E201").
			WithDetail(fmt.Sprintf("failed to parse %s: %v", filepath.Base(path), err)).
			Wrap(err)
	}

	cfg.configPath = path
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, c)
	default:
		return json.Unmarshal(data, c)
	}
}

// ApplyEnv overrides settings from VANGO_I18N_* variables. A nil environ
// reads the process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return errors.New("E207").
			WithDetail(err.Error()).
			Wrap(fmt.Errorf("parse env: %w", err))
	}

	if len(o.Locales) > 0 {
		c.Locales = locale.FromCodes(o.Locales...)
	}
	setString(&c.DefaultLocale, o.DefaultLocale)
	setString(&c.DefaultLocaleRouteNameSuffix, o.DefaultLocaleRouteNameSuffix)
	setString(&c.Strategy, o.Strategy)
	setString(&c.RoutesNameSeparator, o.RoutesNameSeparator)
	setString(&c.PagesDir, o.PagesDir)
	setBool(&c.DifferentDomains, o.DifferentDomains)
	setBool(&c.IncludeUnprefixedFallback, o.IncludeUnprefixedFallback)
	setBool(&c.TrailingSlash, o.TrailingSlash)
	if o.ParsePages != nil {
		c.ParsePages = o.ParsePages
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path, as YAML when the extension asks
// for it and as indented JSON otherwise.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E201").WithDetail(err.Error()).Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E200").WithDetail(err.Error()).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Strategy == "" {
		c.Strategy = string(DefaultStrategy)
	}
	if c.RoutesNameSeparator == "" {
		c.RoutesNameSeparator = DefaultRoutesNameSeparator
	}
	if c.DefaultLocaleRouteNameSuffix == "" {
		c.DefaultLocaleRouteNameSuffix = DefaultLocaleRouteNameSuffix
	}
	if c.ParsePages == nil {
		parse := true
		c.ParsePages = &parse
	}
	if c.PagesDir == "" {
		c.PagesDir = DefaultPagesDir
	}
	c.PagesDir = filepath.ToSlash(filepath.Clean(c.PagesDir))
}

// Validate checks if the configuration is usable for expansion.
func (c *Config) Validate() error {
	if _, err := i18nroute.ParseStrategy(c.Strategy); err != nil {
		return errors.New("E202").
			WithDetail(fmt.Sprintf("strategy %q", c.Strategy))
	}

	if len(c.Locales) == 0 {
		return errors.New("E203").
			WithExample(`"locales": ["en", {"code": "fr", "iso": "fr-FR"}]`)
	}

	codes := c.LocaleCodes()
	for _, code := range codes {
		if err := locale.Validate(code); err != nil {
			return errors.New("E204").WithDetail(err.Error()).Wrap(err)
		}
	}

	if c.DefaultLocale != "" && !locale.Contains(codes, c.DefaultLocale) {
		return errors.New("E205").
			WithDetail(fmt.Sprintf("defaultLocale %q is not one of %v", c.DefaultLocale, codes)).
			WithExample(fmt.Sprintf(`"defaultLocale": %q`, codes[0]))
	}

	for key, page := range c.Pages {
		for loc, p := range page.Paths {
			if err := routepath.ValidateCustomPath(p); err != nil {
				return errors.New("E206").
					WithDetail(fmt.Sprintf("pages.%s.%s = %q: %v", key, loc, p, err)).
					Wrap(err)
			}
		}
	}

	return nil
}

// LocaleCodes returns the configured locale codes in order.
func (c *Config) LocaleCodes() []string {
	return locale.Codes(c.Locales)
}

// ParsePagesEnabled reports whether page options come from page sources.
func (c *Config) ParsePagesEnabled() bool {
	return c.ParsePages == nil || *c.ParsePages
}

// ExpanderConfig converts the configuration to expander options.
func (c *Config) ExpanderConfig() i18nroute.Config {
	return i18nroute.Config{
		DefaultLocale:                c.DefaultLocale,
		DefaultLocaleRouteNameSuffix: c.DefaultLocaleRouteNameSuffix,
		DifferentDomains:             c.DifferentDomains,
		IncludeUnprefixedFallback:    c.IncludeUnprefixedFallback,
		Locales:                      c.Locales,
		Strategy:                     i18nroute.Strategy(c.Strategy),
		TrailingSlash:                c.TrailingSlash,
		RoutesNameSeparator:          c.RoutesNameSeparator,
	}
}

// Resolver returns the page options resolver selected by ParsePages. Page
// sources are read from fsys, rooted at the project directory.
func (c *Config) Resolver(fsys fs.FS, logger *slog.Logger) i18nroute.PageOptionsResolver {
	return pageoptions.NewResolver(pageoptions.Options{
		ParsePages: c.ParsePagesEnabled(),
		FS:         fsys,
		Pages:      c.Pages,
		PagesDir:   c.PagesDir,
		Locales:    c.LocaleCodes(),
		Logger:     logger,
	})
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up from startDir to the first directory holding a
// config file. When none is found startDir itself is returned.
func FindProjectRoot(startDir string) (string, error) {
	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for dir := start; ; {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}
