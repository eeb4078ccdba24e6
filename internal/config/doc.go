// Package config loads the vango-i18n project configuration.
//
// The configuration is stored in vango-i18n.json (or vango-i18n.yaml) at the
// project root. Every setting except pages can be overridden from the
// environment with a VANGO_I18N_ prefix, e.g. VANGO_I18N_STRATEGY=prefix or
// VANGO_I18N_LOCALES=en,fr.
//
// # Configuration File Structure
//
//	{
//	  "locales": ["en", {"code": "fr", "iso": "fr-FR"}],
//	  "defaultLocale": "en",
//	  "strategy": "prefix_except_default",
//	  "includeUnprefixedFallback": false,
//	  "differentDomains": false,
//	  "trailingSlash": false,
//	  "routesNameSeparator": "___",
//	  "defaultLocaleRouteNameSuffix": "default",
//	  "pagesDir": "app/routes",
//	  "parsePages": false,
//	  "pages": {
//	    "about": {"fr": "/a-propos", "de": false},
//	    "admin": false
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	exp := i18nroute.New(cfg.ExpanderConfig(), cfg.Resolver(os.DirFS("."), nil))
package config
