package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gasanadj/demo-rise360-backend/internal/audit"
	"github.com/gasanadj/demo-rise360-backend/internal/auth"
	"github.com/gasanadj/demo-rise360-backend/internal/cache"
	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/repository"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

type chatService struct {
	authenticator   *auth.SocketAuthenticator
	messages        repository.MessageRepository
	history         cache.MessageCache
	broadcaster     Broadcaster
	maxMessageChars int
}

func NewChatService(
	authenticator *auth.SocketAuthenticator,
	messages repository.MessageRepository,
	history cache.MessageCache,
	broadcaster Broadcaster,
	maxMessageChars int,
) ChatService {
	return &chatService{
		authenticator:   authenticator,
		messages:        messages,
		history:         history,
		broadcaster:     broadcaster,
		maxMessageChars: maxMessageChars,
	}
}

// HandleConnect resolves the handshake token to a user and activates the
// session. On any failure the client gets a chat-error frame and the
// returned error tells the transport layer to drop the connection.
func (s *chatService) HandleConnect(ctx context.Context, session *domain.Session, sender Sender, token string) error {
	user, err := s.authenticator.Authenticate(ctx, token)
	if err != nil {
		sender.SendMessage(domain.NewEnvelope(domain.EventChatError, domain.ChatErrorEvent{
			Code:    domain.ErrCodeUnauthorized,
			Message: "authentication failed",
		}))
		return err
	}

	session.Authenticate(user)
	audit.LogWithDetail(ctx, audit.ActionChatConnect, user.ID, session.ID, "chat session authenticated")
	return nil
}

// HandleIncoming decodes one frame and routes it by event name.
func (s *chatService) HandleIncoming(ctx context.Context, session *domain.Session, sender Sender, raw []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		sender.SendMessage(domain.NewEnvelope(domain.EventChatError, domain.ChatErrorEvent{
			Code:    domain.ErrCodeBadRequest,
			Message: "malformed frame",
		}))
		return
	}

	switch env.Event {
	case domain.EventSentChat:
		var content string
		if err := json.Unmarshal(env.Data, &content); err != nil {
			sender.SendMessage(domain.NewEnvelope(domain.EventChatError, domain.ChatErrorEvent{
				Code:    domain.ErrCodeBadRequest,
				Message: "chat payload must be a string",
			}))
			return
		}
		s.HandleChatMessage(ctx, session, sender, content)
	default:
		sender.SendMessage(domain.NewEnvelope(domain.EventChatError, domain.ChatErrorEvent{
			Code:    domain.ErrCodeBadRequest,
			Message: "unknown event: " + env.Event,
		}))
	}
}

// HandleChatMessage persists a chat line, then echoes it to the sender
// and fans it out to everyone else. Nothing is broadcast unless the
// write succeeded.
func (s *chatService) HandleChatMessage(ctx context.Context, session *domain.Session, sender Sender, content string) error {
	l := log.Ctx(ctx)

	if !session.IsAuthenticated() {
		return sender.SendMessage(domain.NewEnvelope(domain.EventChatError, domain.ChatErrorEvent{
			Code:    domain.ErrCodeUnauthorized,
			Message: "not authenticated",
		}))
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return sender.SendMessage(domain.NewEnvelope(domain.EventChatError, domain.ChatErrorEvent{
			Code:    domain.ErrCodeBadRequest,
			Message: "message is empty",
		}))
	}
	if s.maxMessageChars > 0 && len([]rune(content)) > s.maxMessageChars {
		return sender.SendMessage(domain.NewEnvelope(domain.EventChatError, domain.ChatErrorEvent{
			Code:    domain.ErrCodeBadRequest,
			Message: "message too long",
		}))
	}

	msg := &domain.ChatMessage{
		ID:       uuid.New().String(),
		UserID:   session.GetUserID(),
		UserName: session.GetUserName(),
		Message:  content,
		Date:     time.Now(),
	}

	if err := s.messages.Save(ctx, msg); err != nil {
		l.Error().Err(err).
			Str(log.FieldUserID, msg.UserID).
			Msg("chat message not persisted, suppressing broadcast")
		sender.SendMessage(domain.NewEnvelope(domain.EventChatError, domain.ChatErrorEvent{
			Code:    domain.ErrCodePersistenceFailure,
			Message: "message could not be saved",
		}))
		return err
	}

	// Cache append is best-effort; history falls back to the database.
	if err := s.history.Append(ctx, msg); err != nil {
		l.Warn().Err(err).Msg("chat history cache append failed")
	}

	event := domain.NewEnvelope(domain.EventChatMessage, domain.FormatMessage(msg.UserName, msg.Message))
	if err := sender.SendMessage(event); err != nil {
		l.Warn().Err(err).Str(log.FieldClientID, session.ID).Msg("failed to echo chat message to sender")
	}
	return s.broadcaster.Broadcast(event, session.ID)
}

// History serves the chat backlog, preferring the cache and falling back
// to the database on a miss.
func (s *chatService) History(ctx context.Context) ([]domain.ChatMessage, error) {
	l := log.Ctx(ctx)

	if cached, err := s.history.Recent(ctx); err == nil && len(cached) > 0 {
		return cached, nil
	}

	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(messages) > 0 {
		if err := s.history.Replace(ctx, messages); err != nil {
			l.Warn().Err(err).Msg("chat history cache refresh failed")
		}
	}
	return messages, nil
}
