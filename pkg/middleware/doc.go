// Package middleware provides observability middleware for the preview
// server.
//
// Both middlewares are plain func(http.Handler) http.Handler values and are
// meant to be installed on a chi router, where the matched route pattern is
// available after routing:
//
//	reg := prometheus.NewRegistry()
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry())
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//
// Requests are labelled by route pattern (e.g. "/fr/users/{id}"), never by
// raw path.
package middleware
