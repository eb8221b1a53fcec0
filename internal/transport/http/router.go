// Package httptransport assembles the HTTP surface: the shared middleware
// chain, the module routers, and the operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accountshandler "sangamsetu/internal/accounts/handler"
	caseshandler "sangamsetu/internal/cases/handler"
	"sangamsetu/internal/platform/middleware"
	"sangamsetu/pkg/platform/middleware/metadata"
	"sangamsetu/pkg/platform/middleware/requesttime"
)

const requestTimeout = 15 * time.Second

// NewRouter wires the full middleware chain and mounts the module handlers.
func NewRouter(accounts *accountshandler.Handler, cases *caseshandler.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	accounts.Register(r)
	cases.Register(r)

	return r
}
