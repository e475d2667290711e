package viewserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/middleware"
)

// Endpoints lists the routes served by Routes, for startup logging
var Endpoints = []string{
	"GET  /",
	"GET  /players",
	"GET  /ws",
	"GET  /health",
	"GET  /metrics",
}

// Routes builds the view server router
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	// no Timeout middleware: /ws connections are long-lived
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", h.HandlePage)
	r.Get("/players", h.HandlePage)
	r.Get("/ws", h.HandleWebSocket)
	r.Get("/health", h.HandleHealth)
	r.Get("/metrics", h.HandleMetrics)

	return r
}
