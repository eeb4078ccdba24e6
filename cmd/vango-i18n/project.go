package main

import (
	"context"
	stderrors "errors"
	"go/scanner"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vango-dev/vango-i18n/internal/config"
	"github.com/vango-dev/vango-i18n/internal/errors"
	"github.com/vango-dev/vango-i18n/pkg/i18nroute"
	"github.com/vango-dev/vango-i18n/pkg/routescan"
	"github.com/vango-dev/vango-i18n/pkg/routesort"
)

// project is a loaded and validated project.
type project struct {
	root   string
	cfg    *config.Config
	fsys   fs.FS
	logger *slog.Logger
}

func loadProject(opts *globalOptions) (*project, error) {
	root, err := config.FindProjectRoot(opts.dir)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if opts.configFile != "" {
		cfg, err = config.LoadFile(opts.configFile)
	} else {
		cfg, err = config.Load(root)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.Default().With("project", filepath.Base(root))
	logger.Debug("config loaded",
		"path", cfg.Path(),
		"strategy", cfg.Strategy,
		"locales", cfg.LocaleCodes(),
		"parsePages", cfg.ParsePagesEnabled(),
	)

	return &project{
		root:   root,
		cfg:    cfg,
		fsys:   os.DirFS(root),
		logger: logger,
	}, nil
}

// scan reads the route tree from the pages directory.
func (p *project) scan() ([]i18nroute.Route, error) {
	routes, err := routescan.NewScanner(p.fsys, p.cfg.PagesDir).Scan()
	if err == nil {
		p.logger.Debug("pages scanned", "dir", p.cfg.PagesDir, "routes", len(routes))
		return routes, nil
	}

	var syntax scanner.ErrorList
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.New("E220").WithDetail(err.Error()).Wrap(err)
	case stderrors.Is(err, routescan.ErrDuplicateRoute):
		return nil, errors.New("E222").WithDetail(err.Error()).Wrap(err)
	case stderrors.As(err, &syntax):
		return nil, errors.New("E221").
			WithLocationFromError(p.fsys, err).
			WithDetail(syntax[0].Msg).
			Wrap(err)
	}
	return nil, err
}

// expand scans the pages and localizes them.
func (p *project) expand(ctx context.Context, sorted bool, opts ...i18nroute.Option) (i18nroute.Result, error) {
	routes, err := p.scan()
	if err != nil {
		return i18nroute.Result{}, err
	}

	opts = append([]i18nroute.Option{i18nroute.WithLogger(p.logger)}, opts...)
	if sorted {
		opts = append(opts, i18nroute.WithSorter(routesort.Specificity{}))
	}

	exp := i18nroute.New(p.cfg.ExpanderConfig(), p.cfg.Resolver(p.fsys, p.logger), opts...)
	return exp.ExpandContext(ctx, routes), nil
}
