// Package pageoptions resolves the i18n options of pages.
//
// Two sources are supported, selected by configuration through NewResolver:
//
// Static extraction (Extractor) reads the page's Go source and inspects a
// top-level I18n variable:
//
//	// app/routes/about.go
//	var I18n = i18nroute.PageOptions{
//	    Locales: []string{"en", "fr"},
//	    Paths:   map[string]string{"fr": "/a-propos"},
//	}
//
//	// app/routes/admin.go
//	var I18n = false // not localized
//
// File-based lookup (PagesMap) reads options from the project configuration,
// keyed by the page path relative to the pages directory:
//
//	"pages": {
//	  "about":       {"fr": "/a-propos", "de": false},
//	  "admin/index": false
//	}
package pageoptions

import (
	"io/fs"
	"log/slog"

	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
)

// Options selects and configures a resolver.
type Options struct {
	// ParsePages selects static extraction from page sources. Otherwise the
	// Pages map is used.
	ParsePages bool

	// FS is the filesystem page sources are read from (static extraction).
	FS fs.FS

	// Pages maps page keys to their options (file-based lookup).
	Pages map[string]PageConfig

	// PagesDir is stripped from chunk names to form page keys.
	PagesDir string

	// Locales are the configured locale codes.
	Locales []string

	// Logger receives extraction warnings. Default: slog.Default().
	Logger *slog.Logger
}

// NewResolver returns the resolver selected by opts.
func NewResolver(opts Options) i18nroute.PageOptionsResolver {
	if opts.ParsePages {
		return NewExtractor(opts.FS, opts.Logger)
	}
	return &PagesMap{
		Pages:    opts.Pages,
		PagesDir: opts.PagesDir,
		Locales:  opts.Locales,
	}
}
