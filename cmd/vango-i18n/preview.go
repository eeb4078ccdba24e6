package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-i18n/internal/errors"
	"github.com/vango-dev/vango-i18n/pkg/chimount"
	"github.com/vango-dev/vango-i18n/pkg/i18nlink"
	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
	"github.com/vango-dev/vango-i18n/pkg/locale"
	"github.com/vango-dev/vango-i18n/pkg/middleware"
)

const shutdownTimeout = 5 * time.Second

func previewCmd(opts *globalOptions) *cobra.Command {
	var (
		addr   string
		sorted bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve the localized routes for inspection",
		Long: `Start an HTTP server with every localized route mounted.

Each page answers with the matched route as JSON. Redirect routes
answer with a 302. The server also exposes:

  /metrics          Prometheus metrics
  /_i18n/routes     mounted patterns
  /_i18n/paths      custom paths map

Examples:
  vango-i18n preview
  vango-i18n preview --addr :8080 --sort`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, opts, addr, sorted)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":4000", "Address to listen on")
	cmd.Flags().BoolVar(&sorted, "sort", true, "Sort routes by specificity before mounting")

	return cmd
}

func runPreview(cmd *cobra.Command, opts *globalOptions, addr string, sorted bool) error {
	p, err := loadProject(opts)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := i18nroute.NewMetrics(i18nroute.WithRegistry(reg))

	result, err := p.expand(cmd.Context(), sorted, i18nroute.WithMetrics(metrics))
	if err != nil {
		return err
	}

	handler, entries := newPreviewHandler(result, previewOptions{
		registry: reg,
		logger:   p.logger,
		config:   p.cfg.ExpanderConfig(),
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.New("E241").WithDetail(err.Error()).Wrap(err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	success(cmd, "Preview server listening on http://%s", ln.Addr())
	info(cmd, "%d patterns mounted, metrics on /metrics", len(entries))

	select {
	case err := <-errCh:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.New("E241").WithDetail(err.Error()).Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	info(cmd, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("E241").WithDetail(err.Error()).Wrap(err)
	}
	return nil
}

type previewOptions struct {
	registry *prometheus.Registry
	logger   *slog.Logger
	config   i18nroute.Config
}

// previewPage is the body served for a matched page.
type previewPage struct {
	Locale     string               `json:"locale,omitempty"`
	Pattern    string               `json:"pattern"`
	Params     map[string]string    `json:"params,omitempty"`
	Route      i18nroute.Route      `json:"route"`
	Alternates []i18nlink.Alternate `json:"alternates,omitempty"`
}

// newPreviewHandler mounts the localized routes and the inspection
// endpoints on a chi router.
func newPreviewHandler(result i18nroute.Result, opts previewOptions) (http.Handler, []chimount.Entry) {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RequestLogger(&chimw.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(opts.logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(chimw.Recoverer)
	r.Use(middleware.OpenTelemetry())
	r.Use(middleware.Prometheus(middleware.WithRegistry(opts.registry)))

	linker := i18nlink.New(result.Paths, opts.config)
	locales := locale.Codes(opts.config.Locales)

	entries := chimount.Mount(r, result.Routes, func(w http.ResponseWriter, req *http.Request, route i18nroute.Route) {
		params := urlParams(req, route.Path)
		page := previewPage{
			Locale:  routeLocale(route.Name, opts.config.RoutesNameSeparator, locales),
			Pattern: middleware.RoutePattern(req),
			Params:  params,
			Route:   route,
		}
		if route.Name != "" {
			page.Alternates = linker.Alternates(linker.BaseName(route.Name), params, "http://"+req.Host)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := writeJSON(w, page); err != nil {
			opts.logger.Warn("failed to write preview page", "error", err)
		}
	})

	r.Handle("/metrics", promhttp.HandlerFor(opts.registry, promhttp.HandlerOpts{}))
	r.Get("/_i18n/routes", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = writeJSON(w, entries)
	})
	r.Get("/_i18n/paths", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = writeJSON(w, result.Paths)
	})

	return r, entries
}

// routeLocale finds the locale code in a localized route name, searching
// from the end so that default suffixes are skipped.
func routeLocale(name, sep string, locales []string) string {
	if name == "" || sep == "" {
		return ""
	}
	parts := strings.Split(name, sep)
	for i := len(parts) - 1; i > 0; i-- {
		if locale.Contains(locales, parts[i]) {
			return parts[i]
		}
	}
	return ""
}

// urlParams returns the chi URL params of r. The catch-all value, which chi
// stores under "*", is keyed by the wildcard name of pattern.
func urlParams(r *http.Request, pattern string) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	wildcard := "*"
	for _, seg := range strings.Split(pattern, "/") {
		if len(seg) > 1 && seg[0] == '*' {
			wildcard = seg[1:]
		}
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			key = wildcard
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

