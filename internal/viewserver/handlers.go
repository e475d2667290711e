package viewserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/session"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/view"
)

// PageTitle is the heading of the roster page
const PageTitle = "NBA Player Roster"

// Handler serves the roster page and its WebSocket sessions
type Handler struct {
	hub      *session.Hub
	fetcher  view.Fetcher
	renderer *view.Renderer
	upgrader websocket.Upgrader
	ctx      context.Context
}

// NewHandler creates a new handler instance.
// ctx bounds the lifetime of WebSocket sessions, which outlive their upgrade request.
func NewHandler(ctx context.Context, h *session.Hub, fetcher view.Fetcher, renderer *view.Renderer, allowedOrigins []string) *Handler {
	return &Handler{
		hub:      h,
		fetcher:  fetcher,
		renderer: renderer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		ctx: ctx,
	}
}

// HandlePage renders the roster page server-side.
// ?player= selects a player after loading and ?boxscore=1 opens that player's
// boxscore, so the page is usable without JavaScript.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctrl := view.NewController(h.fetcher)

	// a failed load renders the blank page
	if err := ctrl.Load(r.Context()); err == nil {
		if name := r.URL.Query().Get("player"); name != "" {
			ctrl.Select(name)
		}
		if r.URL.Query().Get("boxscore") != "" {
			ctrl.ClickPlayerLink(r.Context())
		}
	}

	doc := ctrl.Snapshot()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := h.renderer.Page(w, view.PageData{
		Title:         PageTitle,
		WebSocketPath: WebSocketPath(doc),
		Doc:           doc,
	})
	if err != nil {
		fmt.Printf("❌ page render error: %v\n", err)
	}
}

// HandleWebSocket upgrades HTTP connections to WebSocket sessions
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Printf("⚠️  WebSocket upgrade error: %v\n", err)
		return
	}

	query := r.URL.Query()
	initial := session.Initial{
		Player:   query.Get("player"),
		Boxscore: query.Get("boxscore") != "",
	}

	sessionID := uuid.New().String()
	s := session.NewSession(sessionID, conn, h.hub, view.NewController(h.fetcher), h.renderer)

	h.hub.Register(s)

	// Start session pumps (use handler context, not request context)
	go s.WritePump(h.ctx)
	go s.ReadPump(h.ctx)
	go s.Start(h.ctx, initial)

	fmt.Printf("✓ WebSocket session established: %s\n", sessionID)
}

// HandleHealth returns service health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":          "healthy",
		"service":         "roster-view",
		"active_sessions": h.hub.GetSessionCount(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// HandleMetrics returns hub metrics
func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := h.hub.GetMetrics()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

// WebSocketPath is the session URL for a rendered page.
// It carries the page's selection and open boxscore so the session
// resumes where the server-rendered page left off.
func WebSocketPath(doc view.Document) string {
	query := url.Values{}
	if doc.Select.Value != "" {
		query.Set("player", doc.Select.Value)
	}
	if doc.Modal.Shown {
		query.Set("boxscore", "1")
	}
	if len(query) == 0 {
		return "/ws"
	}
	return "/ws?" + query.Encode()
}

// checkOrigin accepts same-host requests and the listed origins
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}
