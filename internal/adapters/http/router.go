package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/theRoadz/farcaster-neynar/internal/application"
	"github.com/theRoadz/farcaster-neynar/internal/contracts"
)

type Handler struct {
	service *application.Service
	logger  *slog.Logger
}

func NewHandler(service *application.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

type RouterOptions struct {
	Logger *slog.Logger
	// Observer and MetricsHandler are optional; /metrics is only mounted when
	// MetricsHandler is set.
	Observer       RequestObserver
	MetricsHandler http.Handler
	// Tracing wraps every route, typically the Zipkin server middleware.
	Tracing func(http.Handler) http.Handler
}

func NewRouter(handler *Handler, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	if opts.Tracing != nil {
		r.Use(opts.Tracing)
	}
	r.Use(recoverMiddleware(logger))
	r.Use(accessLogMiddleware(logger, opts.Observer))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, contracts.StatusResponse{Status: "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, contracts.StatusResponse{Status: "ready"})
	})
	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	r.Get("/", handler.dashboard)
	r.Get("/lookup-user", handler.lookupUser)
	r.Get("/lookup-onchain", handler.lookupOnchain)
	r.Route("/api", func(r chi.Router) {
		r.Get("/user", handler.lookupUser)
		r.Get("/onchain", handler.lookupOnchain)
	})
	return r
}
