package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vango-i18n/internal/errors"
	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

func checkFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if f == format {
			return nil
		}
	}
	return errors.New("E240").
		WithDetail(fmt.Sprintf("format %q", format)).
		WithSuggestion("Use one of: " + strings.Join(allowed, ", ") + ".")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeRouteTable prints the route tree, one route per line, children
// indented below their parent.
func writeRouteTable(w io.Writer, routes []i18nroute.Route) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tNAME\tTARGET")
	writeRouteRows(tw, routes, 0)
	return tw.Flush()
}

func writeRouteRows(w io.Writer, routes []i18nroute.Route, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, r := range routes {
		path := r.Path
		if path == "" {
			path = `""`
		}
		target := r.Component
		if r.IsRedirectOnly() {
			target = "→ " + r.Redirect
		}
		name := r.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\n", indent, path, name, target)
		writeRouteRows(w, r.Children, depth+1)
	}
}
