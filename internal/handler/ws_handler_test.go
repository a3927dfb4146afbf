package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/gasanadj/demo-rise360-backend/internal/auth"
	"github.com/gasanadj/demo-rise360-backend/internal/config"
	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/hub"
	"github.com/gasanadj/demo-rise360-backend/internal/repository"
	"github.com/gasanadj/demo-rise360-backend/internal/service"
)

type wsUserRepo struct {
	users map[string]*domain.User
}

func (r *wsUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

func (r *wsUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *wsUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, repository.ErrUserNotFound
}

type wsMessageRepo struct {
	saved []domain.ChatMessage
}

func (r *wsMessageRepo) Save(ctx context.Context, msg *domain.ChatMessage) error {
	r.saved = append(r.saved, *msg)
	return nil
}

func (r *wsMessageRepo) List(ctx context.Context) ([]domain.ChatMessage, error) {
	return r.saved, nil
}

type wsNoopCache struct{}

func (wsNoopCache) Append(ctx context.Context, msg *domain.ChatMessage) error { return nil }
func (wsNoopCache) Recent(ctx context.Context) ([]domain.ChatMessage, error)  { return nil, nil }
func (wsNoopCache) Replace(ctx context.Context, msgs []domain.ChatMessage) error {
	return nil
}

func newWSTestServer(t *testing.T) (*httptest.Server, *auth.TokenManager, *wsMessageRepo) {
	t.Helper()

	wsCfg := config.WebSocketConfig{
		WriteWaitSeconds:    10,
		PongWaitSeconds:     60,
		PingIntervalSeconds: 54,
		MaxMessageSize:      4096,
	}

	tokens := auth.NewTokenManager("test-secret", "rise360-test", time.Hour)
	users := &wsUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Name: "Ama", Role: domain.RoleSeller},
	}}
	messages := &wsMessageRepo{}

	wsHub := hub.NewHub(wsCfg)
	go wsHub.Run()

	chatSvc := service.NewChatService(
		auth.NewSocketAuthenticator(tokens, users),
		messages, wsNoopCache{}, wsHub, 2000,
	)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	wsHandler := NewWSHandler(wsHub, chatSvc, wsCfg)
	r.GET("/chat/ws", wsHandler.HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, tokens, messages
}

func wsURL(srv *httptest.Server, token string) string {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	if token != "" {
		url += "?token=" + token
	}
	return url
}

func readEnvelope(t *testing.T, conn *websocket.Conn) domain.Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal frame %s: %v", data, err)
	}
	return env
}

func TestWebSocketChatRoundTrip(t *testing.T) {
	srv, tokens, messages := newWSTestServer(t)

	token, err := tokens.Generate("u1", domain.RoleSeller)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("handshake status = %d", resp.StatusCode)
	}

	frame, _ := json.Marshal(domain.NewEnvelope(domain.EventSentChat, "Hello"))
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("write frame: %v", err)
	}

	env := readEnvelope(t, conn)
	if env.Event != domain.EventChatMessage {
		t.Fatalf("event = %q, want %q", env.Event, domain.EventChatMessage)
	}
	var event domain.ChatEvent
	if err := json.Unmarshal(env.Data, &event); err != nil {
		t.Fatalf("unmarshal chat event: %v", err)
	}
	if event.UserName != "Ama" || event.Msg != "Hello" {
		t.Errorf("echo payload = %+v", event)
	}

	if len(messages.saved) != 1 || messages.saved[0].Message != "Hello" {
		t.Errorf("persisted messages = %+v", messages.saved)
	}
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	srv, _, messages := newWSTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "not-a-jwt"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	env := readEnvelope(t, conn)
	if env.Event != domain.EventChatError {
		t.Fatalf("event = %q, want %q", env.Event, domain.EventChatError)
	}
	var errEvt domain.ChatErrorEvent
	json.Unmarshal(env.Data, &errEvt)
	if errEvt.Code != domain.ErrCodeUnauthorized {
		t.Errorf("code = %q, want UNAUTHORIZED", errEvt.Code)
	}

	// The server must close the connection after the rejection frame.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("connection still open after failed authentication")
	}

	if len(messages.saved) != 0 {
		t.Errorf("rejected connection persisted %d messages", len(messages.saved))
	}
}

func TestWebSocketRejectsMissingToken(t *testing.T) {
	srv, _, _ := newWSTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	env := readEnvelope(t, conn)
	if env.Event != domain.EventChatError {
		t.Fatalf("event = %q, want %q", env.Event, domain.EventChatError)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("connection still open without a token")
	}
}
