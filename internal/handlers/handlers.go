package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/cache"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/roster"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/stats"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/store"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

// Handler contains dependencies for the roster API
type Handler struct {
	store   store.Store
	cache   cache.AveragesCache
	builder *roster.Builder
}

// NewHandler creates a new handler with dependencies.
// A nil cache disables caching.
func NewHandler(s store.Store, c cache.AveragesCache, b *roster.Builder) *Handler {
	if c == nil {
		c = cache.Noop{}
	}
	if b == nil {
		b = roster.NewBuilder()
	}
	return &Handler{
		store:   s,
		cache:   c,
		builder: b,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "store unhealthy", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "roster-api",
	})
}

// GetPlayers returns every player record
// GET /api/players
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	players, err := h.store.Players(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve players", err)
		return
	}

	teams, err := h.store.Teams(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusInternalServerError, "failed to retrieve teams", err)
		return
	}

	respondJSON(w, http.StatusOK, h.builder.Players(players, teams))
}

// GetPlayerNames returns the sorted player names
// GET /api/player-names
func (h *Handler) GetPlayerNames(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	players, err := h.store.Players(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve players", err)
		return
	}

	respondJSON(w, http.StatusOK, roster.Names(players))
}

// GetPlayerAverages returns per-game averages for one player
// GET /api/player-averages/{playerName}
func (h *Handler) GetPlayerAverages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	name, err := url.PathUnescape(chi.URLParam(r, "playerName"))
	if err != nil || name == "" {
		respondError(w, http.StatusBadRequest, "player name is required", err)
		return
	}

	if cached, err := h.cache.GetPlayerAverages(ctx, name); err == nil {
		// the cached copy carries the name it was first requested with
		cached.Set(models.FullNameKey, name)
		respondJSON(w, http.StatusOK, cached)
		return
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("[roster-api] cache read failed for %q: %v", name, err)
	}

	lines, err := h.store.PlayerStatistics(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve player statistics", err)
		return
	}

	avg, err := stats.PlayerAverages(lines, name)
	if err != nil {
		if errors.Is(err, stats.ErrPlayerNotFound) {
			// the view flags on the "error" key alone
			respondJSON(w, http.StatusNotFound, map[string]string{"error": "Player not found"})
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to compute player averages", err)
		return
	}

	if err := h.cache.SetPlayerAverages(ctx, name, avg); err != nil {
		log.Printf("[roster-api] cache write failed for %q: %v", name, err)
	}

	respondJSON(w, http.StatusOK, avg)
}

// GetTeams returns every team record
// GET /api/teams
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	teams, err := h.store.Teams(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "teams not available", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to retrieve teams", err)
		return
	}

	respondJSON(w, http.StatusOK, roster.Teams(teams))
}

// GetTeamAverages returns per-franchise game averages
// GET /api/team_averages
func (h *Handler) GetTeamAverages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	if cached, err := h.cache.GetTeamAverages(ctx); err == nil {
		respondJSON(w, http.StatusOK, cached)
		return
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("[roster-api] cache read failed for team averages: %v", err)
	}

	lines, err := h.store.TeamStatistics(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "team statistics not available", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to retrieve team statistics", err)
		return
	}

	averages, err := stats.TeamAverages(lines)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute team averages", err)
		return
	}

	if err := h.cache.SetTeamAverages(ctx, averages); err != nil {
		log.Printf("[roster-api] cache write failed for team averages: %v", err)
	}

	respondJSON(w, http.StatusOK, averages)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("error encoding response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		fmt.Printf("error: %s - %v\n", message, err)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		fmt.Printf("error encoding error response: %v\n", err)
	}
}
