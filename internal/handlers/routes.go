package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/middleware"
)

// RequestTimeout bounds the slowest handlers, which scan the statistics datasets
const RequestTimeout = 30 * time.Second

// writeGrace leaves time to write a response after RequestTimeout fires
const writeGrace = 5 * time.Second

// Endpoints lists the routes served by Routes, for startup logging
var Endpoints = []string{
	"GET  /health",
	"GET  /api/players",
	"GET  /api/player-names",
	"GET  /api/player-averages/{playerName}",
	"GET  /api/teams",
	"GET  /api/team_averages",
}

// Routes builds the roster API router
func Routes(h *Handler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(RequestTimeout))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		// Players
		r.Get("/players", h.GetPlayers)
		r.Get("/player-names", h.GetPlayerNames)
		r.Get("/player-averages/{playerName}", h.GetPlayerAverages)

		// Teams
		r.Get("/teams", h.GetTeams)
		r.Get("/team_averages", h.GetTeamAverages)
	})

	return r
}

// NewServer creates the API http.Server.
// WriteTimeout outlasts RequestTimeout so timed-out handlers can still answer.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: RequestTimeout + writeGrace,
		IdleTimeout:  60 * time.Second,
	}
}
