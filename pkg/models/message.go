package models

import "time"

// Message types for WebSocket communication
const (
	MessageTypeSelect    = "select"
	MessageTypeBoxscore  = "boxscore"
	MessageTypeHideModal = "hide_modal"
	MessageTypeRender    = "render"
	MessageTypeHeartbeat = "heartbeat"
	MessageTypeError     = "error"
)

// ClientMessage represents a message from the browser to the view server
type ClientMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Name returns the player name carried by select/boxscore messages
func (m ClientMessage) Name() string {
	if m.Payload == nil {
		return ""
	}
	name, _ := m.Payload["name"].(string)
	return name
}

// ServerMessage represents a message from the view server to the browser
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// RenderPayload carries HTML fragments keyed by target element ID
type RenderPayload struct {
	Fragments map[string]string `json:"fragments"`
	ShowModal bool              `json:"show_modal,omitempty"`
}

// ConnectionStats represents per-session statistics
type ConnectionStats struct {
	SessionID        string    `json:"session_id"`
	ConnectedAt      time.Time `json:"connected_at"`
	MessagesSent     int64     `json:"messages_sent"`
	MessagesReceived int64     `json:"messages_received"`
	LastMessageAt    time.Time `json:"last_message_at"`
}

// ErrorMessage represents an error message
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
