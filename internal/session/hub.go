package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Hub maintains the set of active view sessions
type Hub struct {
	// Registered sessions
	sessions   map[*Session]bool
	sessionsMu sync.RWMutex

	// Register requests from the upgrade handler
	register chan *Session

	// Unregister requests from sessions
	unregister chan *Session

	// Closed when Run returns
	done chan struct{}

	// Metrics
	totalConnections int64
	metricsMu        sync.Mutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[*Session]bool),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) {
	fmt.Println("✓ Hub started")
	defer close(h.done)

	go h.reportMetrics(ctx)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case s := <-h.register:
			h.registerSession(s)

		case s := <-h.unregister:
			h.unregisterSession(s)
		}
	}
}

// Register adds a session to the hub
func (h *Hub) Register(s *Session) {
	select {
	case h.register <- s:
	case <-h.done:
		s.Close()
	}
}

// Unregister removes a session from the hub
func (h *Hub) Unregister(s *Session) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

// registerSession adds a session to the active map
func (h *Hub) registerSession(s *Session) {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()

	h.sessions[s] = true
	h.metricsMu.Lock()
	h.totalConnections++
	h.metricsMu.Unlock()

	fmt.Printf("session %s connected (total: %d)\n", s.ID, len(h.sessions))
}

// unregisterSession removes a session from the active map
func (h *Hub) unregisterSession(s *Session) {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()

	if _, ok := h.sessions[s]; ok {
		delete(h.sessions, s)
		s.Close()
		fmt.Printf("session %s disconnected (total: %d)\n", s.ID, len(h.sessions))
	}
}

// GetMetrics returns hub metrics
func (h *Hub) GetMetrics() map[string]interface{} {
	h.sessionsMu.RLock()
	active := len(h.sessions)
	var sent, received int64
	for s := range h.sessions {
		stats := s.GetStats()
		sent += stats.MessagesSent
		received += stats.MessagesReceived
	}
	h.sessionsMu.RUnlock()

	h.metricsMu.Lock()
	totalConnections := h.totalConnections
	h.metricsMu.Unlock()

	return map[string]interface{}{
		"active_sessions":   active,
		"total_connections": totalConnections,
		"messages_sent":     sent,
		"messages_received": received,
	}
}

// GetSessionCount returns the number of active sessions
func (h *Hub) GetSessionCount() int {
	h.sessionsMu.RLock()
	defer h.sessionsMu.RUnlock()
	return len(h.sessions)
}

// shutdown closes all sessions
func (h *Hub) shutdown() {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()

	fmt.Printf("🛑 Shutting down hub (%d active sessions)\n", len(h.sessions))

	for s := range h.sessions {
		s.Close()
		delete(h.sessions, s)
	}
}

// reportMetrics periodically reports hub metrics
func (h *Hub) reportMetrics(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics := h.GetMetrics()
			fmt.Printf("📊 Hub Metrics: sessions=%d total_connections=%d sent=%d\n",
				metrics["active_sessions"],
				metrics["total_connections"],
				metrics["messages_sent"])
		}
	}
}
