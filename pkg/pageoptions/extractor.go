package pageoptions

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
)

// OptionsVar is the name of the page variable holding i18n options.
const OptionsVar = "I18n"

// Extractor reads page options from the I18n variable of a page's Go source.
type Extractor struct {
	fsys   fs.FS
	logger *slog.Logger
}

// NewExtractor creates an extractor reading sources from fsys.
// A nil fsys reads from the working directory.
func NewExtractor(fsys fs.FS, logger *slog.Logger) *Extractor {
	if fsys == nil {
		fsys = os.DirFS(".")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{fsys: fsys, logger: logger}
}

// Resolve implements i18nroute.PageOptionsResolver.
// Unreadable sources and unsupported declarations are logged and treated as
// pages without options.
func (e *Extractor) Resolve(route i18nroute.Route) (i18nroute.PageOptions, bool) {
	if route.Component == "" {
		return i18nroute.PageOptions{}, true
	}

	opts, ok, err := e.Extract(route.Component)
	if err != nil {
		e.logger.Warn("failed to extract page i18n options",
			"component", route.Component,
			"error", err,
		)
		return i18nroute.PageOptions{}, true
	}
	return opts, ok
}

// Extract parses the source file and returns its options. ok is false when
// the page disables localization.
func (e *Extractor) Extract(filename string) (i18nroute.PageOptions, bool, error) {
	name := path.Clean(filepath.ToSlash(filename))
	src, err := fs.ReadFile(e.fsys, name)
	if err != nil {
		return i18nroute.PageOptions{}, true, fmt.Errorf("reading %s: %w", filename, err)
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return i18nroute.PageOptions{}, true, err
	}

	expr := findOptionsVar(f)
	if expr == nil {
		return i18nroute.PageOptions{}, true, nil
	}

	opts, ok, err := evalOptions(expr)
	if err != nil {
		return i18nroute.PageOptions{}, true, fmt.Errorf("%s: %w", fset.Position(expr.Pos()), err)
	}
	return opts, ok, nil
}

// findOptionsVar returns the initializer of the top-level I18n variable.
func findOptionsVar(f *ast.File) ast.Expr {
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, ident := range vs.Names {
				if ident.Name == OptionsVar && i < len(vs.Values) {
					return vs.Values[i]
				}
			}
		}
	}
	return nil
}

func evalOptions(expr ast.Expr) (i18nroute.PageOptions, bool, error) {
	switch x := expr.(type) {
	case *ast.Ident:
		switch x.Name {
		case "false":
			return i18nroute.PageOptions{}, false, nil
		case "true":
			return i18nroute.PageOptions{}, true, nil
		}
	case *ast.UnaryExpr:
		if x.Op == token.AND {
			return evalOptions(x.X)
		}
	case *ast.ParenExpr:
		return evalOptions(x.X)
	case *ast.CompositeLit:
		opts, err := evalOptionsLit(x)
		return opts, true, err
	}
	return i18nroute.PageOptions{}, true, fmt.Errorf("unsupported %s value", OptionsVar)
}

func evalOptionsLit(lit *ast.CompositeLit) (i18nroute.PageOptions, error) {
	var opts i18nroute.PageOptions
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			return opts, fmt.Errorf("%s fields must be keyed", OptionsVar)
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			return opts, fmt.Errorf("unsupported %s field", OptionsVar)
		}

		var err error
		switch key.Name {
		case "Locales":
			opts.Locales, err = stringSlice(kv.Value)
		case "Paths":
			opts.Paths, err = stringMap(kv.Value)
		default:
			err = fmt.Errorf("unknown %s field %s", OptionsVar, key.Name)
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func stringSlice(expr ast.Expr) ([]string, error) {
	lit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return nil, fmt.Errorf("Locales must be a []string literal")
	}
	out := make([]string, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		s, err := stringValue(elt)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func stringMap(expr ast.Expr) (map[string]string, error) {
	lit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return nil, fmt.Errorf("Paths must be a map[string]string literal")
	}
	out := make(map[string]string, len(lit.Elts))
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			return nil, fmt.Errorf("Paths entries must be key: value pairs")
		}
		k, err := stringValue(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := stringValue(kv.Value)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func stringValue(expr ast.Expr) (string, error) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", fmt.Errorf("expected string literal")
	}
	return strconv.Unquote(lit.Value)
}
