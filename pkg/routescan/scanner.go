package routescan

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path"
	"strings"

	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
)

// DefaultPagesDir is the conventional pages directory.
const DefaultPagesDir = "app/routes"

// ErrDuplicateRoute is returned when two page files resolve to the same path.
var ErrDuplicateRoute = errors.New("duplicate route")

// specialFiles define handlers but not routes.
var specialFiles = map[string]bool{
	"_layout":     true,
	"_middleware": true,
	"_error":      true,
	"_404":        true,
	"routes_gen":  true,
}

// Scanner scans a pages directory for page files.
type Scanner struct {
	fsys     fs.FS
	pagesDir string
}

// NewScanner creates a scanner for pagesDir inside fsys.
func NewScanner(fsys fs.FS, pagesDir string) *Scanner {
	if pagesDir == "" {
		pagesDir = DefaultPagesDir
	}
	return &Scanner{fsys: fsys, pagesDir: path.Clean(pagesDir)}
}

// Scan reads all page files and returns the route tree in lexical file order.
func (s *Scanner) Scan() ([]i18nroute.Route, error) {
	return s.scanDir(s.pagesDir, s.pagesDir)
}

// scanDir scans dir for pages. base is the directory the produced paths are
// relative to: the pages directory for top-level routes, the parent page's
// directory for children.
func (s *Scanner) scanDir(dir, base string) ([]i18nroute.Route, error) {
	entries, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	dirs := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			dirs[e.Name()] = true
		}
	}

	var routes []i18nroute.Route
	seen := make(map[string]string)
	consumed := make(map[string]bool)

	for _, e := range entries {
		name := e.Name()
		file := path.Join(dir, name)

		if e.IsDir() {
			continue
		}
		if !isPageFile(name) {
			continue
		}

		hasPage, err := s.hasPageHandler(file)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", file, err)
		}
		if !hasPage {
			continue
		}

		route := s.fileRoute(file, base)
		if prev, dup := seen[route.Path]; dup {
			return nil, fmt.Errorf("%w: %s and %s both resolve to %q", ErrDuplicateRoute, prev, file, route.Path)
		}
		seen[route.Path] = file

		stem := strings.TrimSuffix(name, ".go")
		if dirs[stem] {
			children, err := s.scanDir(path.Join(dir, stem), path.Join(dir, stem))
			if err != nil {
				return nil, err
			}
			route.Children = children
			consumed[stem] = true
			// The index child takes over the parent's name.
			for _, c := range children {
				if c.Path == "" {
					route.Name = ""
					break
				}
			}
		}
		routes = append(routes, route)
	}

	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || consumed[name] {
			continue
		}
		if dir == s.pagesDir && name == "api" {
			continue
		}
		nestedRoutes, err := s.scanDir(path.Join(dir, name), base)
		if err != nil {
			return nil, err
		}
		for _, r := range nestedRoutes {
			if prev, dup := seen[r.Path]; dup {
				return nil, fmt.Errorf("%w: %s and %s both resolve to %q", ErrDuplicateRoute, prev, r.Component, r.Path)
			}
			seen[r.Path] = r.Component
		}
		routes = append(routes, nestedRoutes...)
	}

	return routes, nil
}

func isPageFile(name string) bool {
	if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	stem := strings.TrimSuffix(name, ".go")
	if specialFiles[stem] {
		return false
	}
	// Special files start with _ but don't end with _ (e.g., _layout, _middleware)
	if strings.HasPrefix(stem, "_") && !strings.HasSuffix(stem, "_") {
		return false
	}
	return true
}

// hasPageHandler reports whether the file exports a function ending in "Page".
func (s *Scanner) hasPageHandler(file string) (bool, error) {
	src, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		return false, err
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, src, parser.SkipObjectResolution)
	if err != nil {
		return false, err
	}

	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv != nil || fd.Name == nil || !fd.Name.IsExported() {
			continue
		}
		if strings.HasSuffix(fd.Name.Name, "Page") {
			return true, nil
		}
	}
	return false, nil
}

// fileRoute builds the route of a page file.
func (s *Scanner) fileRoute(file, base string) i18nroute.Route {
	component := file
	rel := strings.TrimPrefix(strings.TrimSuffix(file, ".go"), base+"/")
	full := strings.TrimPrefix(strings.TrimSuffix(file, ".go"), s.pagesDir+"/")

	segments := URLSegments(rel)
	routePath := strings.Join(segments, "/")
	if base == s.pagesDir {
		routePath = "/" + routePath
	}

	return i18nroute.Route{
		Path:      routePath,
		Name:      RouteName(full),
		Component: component,
		ChunkName: strings.TrimSuffix(component, ".go"),
	}
}

// URLSegments converts a slash-separated file path without extension into
// route pattern segments. A trailing "index" is dropped.
//
//	"projects/[id]/edit" → ["projects", ":id", "edit"]
//	"users/index"        → ["users"]
//	"index"              → []
func URLSegments(rel string) []string {
	parts := strings.Split(rel, "/")
	if len(parts) > 0 && parts[len(parts)-1] == "index" {
		parts = parts[:len(parts)-1]
	}

	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, convertSegment(part))
	}
	return segments
}

// RouteName derives a route name from a file path without extension:
// segments joined by "-", parameter markers removed, "index" dropped.
//
//	"users/[id]"  → "users-id"
//	"users/index" → "users"
//	"index"       → "index"
func RouteName(rel string) string {
	segments := URLSegments(rel)
	if len(segments) == 0 {
		return "index"
	}

	names := make([]string, len(segments))
	for i, seg := range segments {
		names[i] = paramName(seg)
	}
	return strings.Join(names, "-")
}

// convertSegment converts one file path segment to router notation.
// Supports two conventions:
//
//  1. Bracket notation (Next.js/Remix style):
//     - [id] → :id
//     - [id:int] → :id:int
//     - [...slug] → *slug (catch-all)
//
//  2. Underscore notation (Go-friendly):
//     - _id_ → :id
//     - _slug___ → *slug (triple underscore for catch-all)
func convertSegment(seg string) string {
	if strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]") && len(seg) > 2 {
		inner := seg[1 : len(seg)-1]
		if rest, ok := strings.CutPrefix(inner, "..."); ok {
			return "*" + rest
		}
		return ":" + inner
	}
	if strings.HasPrefix(seg, "_") && strings.HasSuffix(seg, "___") && len(seg) > 4 {
		return "*" + seg[1:len(seg)-3]
	}
	if strings.HasPrefix(seg, "_") && strings.HasSuffix(seg, "_") && len(seg) > 2 {
		return ":" + seg[1:len(seg)-1]
	}
	return seg
}

// paramName strips parameter markers and types from a converted segment.
func paramName(seg string) string {
	switch {
	case strings.HasPrefix(seg, "*"):
		return seg[1:]
	case strings.HasPrefix(seg, ":"):
		name, _, _ := strings.Cut(seg[1:], ":")
		return name
	}
	return seg
}
