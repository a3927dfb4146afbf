package domain

import "encoding/json"

// WebSocket event names. "sent-chat" and "chat-message" are the names the
// original clients speak; keep them stable.
const (
	EventSentChat    = "sent-chat"
	EventChatMessage = "chat-message"
	EventChatError   = "chat-error"
)

// Chat error codes sent to the client.
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
)

// Envelope wraps every WebSocket frame in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ChatErrorEvent is sent only to the client whose action failed.
type ChatErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEnvelope marshals data into an Envelope. Marshal errors are
// impossible for the fixed event payload types, so they are swallowed.
func NewEnvelope(event string, data interface{}) Envelope {
	raw, _ := json.Marshal(data)
	return Envelope{Event: event, Data: raw}
}
