package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/view"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Buffer size for outbound messages
	sendBufferSize = 64
)

// registry is the part of Hub a session reports to
type registry interface {
	Unregister(s *Session)
}

// Session is one browser tab connected over WebSocket.
// It owns a view.Controller and pushes re-rendered fragments after each event.
type Session struct {
	ID       string
	conn     *websocket.Conn
	Send     chan models.ServerMessage // Exported for hub access
	hub      registry
	ctrl     *view.Controller
	renderer *view.Renderer

	connectedAt      time.Time
	messagesSent     int64
	messagesReceived int64
	lastMessageAt    time.Time
	closed           bool
	mu               sync.Mutex
}

// NewSession creates a new session instance
func NewSession(id string, conn *websocket.Conn, hub registry, ctrl *view.Controller, renderer *view.Renderer) *Session {
	return &Session{
		ID:          id,
		conn:        conn,
		Send:        make(chan models.ServerMessage, sendBufferSize),
		hub:         hub,
		ctrl:        ctrl,
		renderer:    renderer,
		connectedAt: time.Now(),
	}
}

// Initial is the page state a session restores after loading,
// as rendered by the page the browser was served
type Initial struct {
	Player   string
	Boxscore bool
}

// Start loads the roster, restores initial and pushes the first render
func (s *Session) Start(ctx context.Context, initial Initial) {
	if err := s.ctrl.Load(ctx); err != nil {
		s.sendError("load_failed", "failed to load players")
		return
	}
	if initial.Player != "" {
		s.ctrl.Select(initial.Player)
	}

	showModal := false
	if initial.Boxscore {
		applied, err := s.ctrl.ClickPlayerLink(ctx)
		showModal = applied && err == nil
	}
	s.render(showModal, view.AllFragments...)
}

// ReadPump pumps messages from the WebSocket connection to the controller
func (s *Session) ReadPump(ctx context.Context) {
	defer func() {
		s.hub.Unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg models.ClientMessage
			if err := s.conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					fmt.Printf("session %s unexpected close: %v\n", s.ID, err)
				}
				return
			}

			s.updateReceived()
			s.handleClientMessage(ctx, msg)
		}
	}
}

// WritePump pumps messages from the session to the WebSocket connection
func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message, ok := <-s.Send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.conn.WriteJSON(message); err != nil {
				fmt.Printf("session %s write error: %v\n", s.ID, err)
				return
			}

			s.updateSent()

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend queues a message for the session (non-blocking).
// Returns false if the buffer is full or the session is closed.
func (s *Session) TrySend(msg models.ServerMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.Send <- msg:
		return true
	default:
		return false
	}
}

// Close closes the outbound channel; later sends are dropped
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.Send)
	}
}

// GetStats returns connection statistics
func (s *Session) GetStats() models.ConnectionStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.ConnectionStats{
		SessionID:        s.ID,
		ConnectedAt:      s.connectedAt,
		MessagesSent:     s.messagesSent,
		MessagesReceived: s.messagesReceived,
		LastMessageAt:    s.lastMessageAt,
	}
}

// handleClientMessage processes messages from the browser
func (s *Session) handleClientMessage(ctx context.Context, msg models.ClientMessage) {
	switch msg.Type {
	case models.MessageTypeSelect:
		s.ctrl.Select(msg.Name())
		s.render(false, view.TableFragments...)
	case models.MessageTypeBoxscore:
		name := msg.Name()
		if name == "" {
			s.sendError("invalid_name", "boxscore requires a player name")
			return
		}
		// loads run concurrently; the controller drops superseded results
		go s.showBoxscore(ctx, name)
	case models.MessageTypeHideModal:
		s.ctrl.HideModal()
	case models.MessageTypeHeartbeat:
		s.sendHeartbeat()
	default:
		s.sendError("unknown_message_type", fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}

// showBoxscore loads averages and pushes the modal if this request is still current
func (s *Session) showBoxscore(ctx context.Context, name string) {
	applied, err := s.ctrl.ShowBoxscore(ctx, name)
	if err != nil {
		s.sendError("boxscore_failed", "failed to load player stats")
		return
	}
	if applied {
		s.render(true, view.ModalFragments...)
	}
}

// render pushes the given fragments of the current page
func (s *Session) render(showModal bool, ids ...string) {
	fragments, err := s.renderer.Fragments(s.ctrl.Snapshot(), ids...)
	if err != nil {
		fmt.Printf("❌ session %s render error: %v\n", s.ID, err)
		s.sendError("render_failed", "failed to render page")
		return
	}

	s.TrySend(models.ServerMessage{
		Type: models.MessageTypeRender,
		Payload: models.RenderPayload{
			Fragments: fragments,
			ShowModal: showModal,
		},
		Timestamp: time.Now(),
	})
}

// sendHeartbeat sends a heartbeat response
func (s *Session) sendHeartbeat() {
	stats := s.GetStats()
	s.TrySend(models.ServerMessage{
		Type:      models.MessageTypeHeartbeat,
		Payload:   stats,
		Timestamp: time.Now(),
	})
}

// sendError sends an error message to the browser
func (s *Session) sendError(code, message string) {
	s.TrySend(models.ServerMessage{
		Type: models.MessageTypeError,
		Payload: models.ErrorMessage{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now(),
	})
}

// updateSent increments the sent message counter
func (s *Session) updateSent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messagesSent++
	s.lastMessageAt = time.Now()
}

// updateReceived increments the received message counter
func (s *Session) updateReceived() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messagesReceived++
	s.lastMessageAt = time.Now()
}
