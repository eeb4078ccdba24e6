package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E200-E219)
	// ============================================

	"E200": {
		Category:   CategoryConfig,
		Message:    "Failed to read config file",
		Suggestion: "Check that the config file exists and is readable.",
	},
	"E201": {
		Category:   CategoryConfig,
		Message:    "Invalid config file",
		Suggestion: "Check the file for syntax errors.",
	},
	"E202": {
		Category:   CategoryConfig,
		Message:    "Unknown routing strategy",
		Suggestion: "Use one of: no_prefix, prefix, prefix_except_default, prefix_and_default.",
	},
	"E203": {
		Category:   CategoryConfig,
		Message:    "No locales configured",
		Suggestion: "Add at least one locale.",
	},
	"E204": {
		Category:   CategoryConfig,
		Message:    "Invalid locale code",
		Suggestion: "Locale codes must be BCP 47 tags such as en, fr or pt-BR.",
	},
	"E205": {
		Category:   CategoryConfig,
		Message:    "Default locale is not a configured locale",
		Suggestion: "Add the default locale to locales or change defaultLocale.",
	},
	"E206": {
		Category:   CategoryConfig,
		Message:    "Invalid custom page path",
		Suggestion: "Custom paths must not contain backslashes, query strings, fragments or escape the root.",
	},
	"E207": {
		Category:   CategoryConfig,
		Message:    "Invalid environment override",
		Suggestion: "Check the VANGO_I18N_* environment variables.",
	},

	// ============================================
	// Scan Errors (E220-E239)
	// ============================================

	"E220": {
		Category:   CategoryScan,
		Message:    "Pages directory not found",
		Suggestion: "Set pagesDir or run the command from the project root with --dir.",
	},
	"E221": {
		Category:   CategoryScan,
		Message:    "Unparsable page file",
		Suggestion: "Fix the syntax error in the page file.",
	},
	"E222": {
		Category:   CategoryScan,
		Message:    "Duplicate route",
		Suggestion: "Rename or remove one of the page files.",
	},

	// ============================================
	// CLI Errors (E240-E259)
	// ============================================

	"E240": {
		Category:   CategoryCLI,
		Message:    "Unknown output format",
		Suggestion: "Use one of: json, yaml, table.",
	},
	"E241": {
		Category:   CategoryCLI,
		Message:    "Preview server failed",
		Suggestion: "Check that the address is free or choose another with --addr.",
	},
	"E242": {
		Category:   CategoryCLI,
		Message:    "Unknown error code",
		Suggestion: "Run vango-i18n codes to list every code.",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
