package cache

import (
	"context"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
)

// MessageCache holds the recent chat history so the history endpoint
// does not hit the database on every page load. It is strictly an
// acceleration layer; persistence failures never consult it.
type MessageCache interface {
	// Append adds one message to the cached history.
	Append(ctx context.Context, msg *domain.ChatMessage) error
	// Recent returns the cached history in write order. A cold cache, or
	// one that can no longer prove it holds the complete backlog, reports
	// a miss with an empty result.
	Recent(ctx context.Context) ([]domain.ChatMessage, error)
	// Replace overwrites the cached history wholesale.
	Replace(ctx context.Context, msgs []domain.ChatMessage) error
}
