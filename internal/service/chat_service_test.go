package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gasanadj/demo-rise360-backend/internal/auth"
	"github.com/gasanadj/demo-rise360-backend/internal/cache"
	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/repository"
)

// opLog records the order of side effects across fakes so tests can
// assert persistence happens before any delivery.
type opLog struct {
	ops []string
}

func (o *opLog) add(op string) { o.ops = append(o.ops, op) }

type fakeMessageRepo struct {
	log    *opLog
	saved  []domain.ChatMessage
	failed bool
}

func (f *fakeMessageRepo) Save(ctx context.Context, msg *domain.ChatMessage) error {
	if f.failed {
		return errors.New("database unavailable")
	}
	f.log.add("save")
	f.saved = append(f.saved, *msg)
	return nil
}

func (f *fakeMessageRepo) List(ctx context.Context) ([]domain.ChatMessage, error) {
	return f.saved, nil
}

type fakeSender struct {
	log  *opLog
	sent []domain.Envelope
}

func (f *fakeSender) SendMessage(message interface{}) error {
	f.log.add("echo")
	env, ok := message.(domain.Envelope)
	if !ok {
		return errors.New("unexpected payload type")
	}
	f.sent = append(f.sent, env)
	return nil
}

func (f *fakeSender) lastEvent() (string, domain.ChatErrorEvent) {
	if len(f.sent) == 0 {
		return "", domain.ChatErrorEvent{}
	}
	env := f.sent[len(f.sent)-1]
	var errEvt domain.ChatErrorEvent
	json.Unmarshal(env.Data, &errEvt)
	return env.Event, errEvt
}

type fakeBroadcaster struct {
	log      *opLog
	messages []domain.Envelope
	excluded []string
}

func (f *fakeBroadcaster) Broadcast(message interface{}, exclude string) error {
	f.log.add("broadcast")
	if env, ok := message.(domain.Envelope); ok {
		f.messages = append(f.messages, env)
	}
	f.excluded = append(f.excluded, exclude)
	return nil
}

type fakeCache struct {
	appended []domain.ChatMessage
}

func (f *fakeCache) Append(ctx context.Context, msg *domain.ChatMessage) error {
	f.appended = append(f.appended, *msg)
	return nil
}

func (f *fakeCache) Recent(ctx context.Context) ([]domain.ChatMessage, error) {
	return nil, nil
}

func (f *fakeCache) Replace(ctx context.Context, msgs []domain.ChatMessage) error {
	return nil
}

type chatFixture struct {
	svc       ChatService
	tokens    *auth.TokenManager
	repo      *fakeMessageRepo
	sender    *fakeSender
	broadcast *fakeBroadcaster
	cache     *fakeCache
	users     *stubUserRepo
	log       *opLog
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, repository.ErrUserNotFound
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	log := &opLog{}
	tokens := auth.NewTokenManager("test-secret", "rise360-test", time.Hour)
	users := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Name: "Ama", Role: domain.RoleSeller},
	}}
	repo := &fakeMessageRepo{log: log}
	sender := &fakeSender{log: log}
	broadcast := &fakeBroadcaster{log: log}
	cache := &fakeCache{}

	svc := NewChatService(auth.NewSocketAuthenticator(tokens, users), repo, cache, broadcast, 2000)
	return &chatFixture{
		svc:       svc,
		tokens:    tokens,
		repo:      repo,
		sender:    sender,
		broadcast: broadcast,
		cache:     cache,
		users:     users,
		log:       log,
	}
}

func authedSession(t *testing.T, f *chatFixture) *domain.Session {
	t.Helper()

	token, err := f.tokens.Generate("u1", domain.RoleSeller)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	session := domain.NewSession("c1")
	if err := f.svc.HandleConnect(context.Background(), session, f.sender, token); err != nil {
		t.Fatalf("HandleConnect: %v", err)
	}
	return session
}

func TestChatMessageEchoAndBroadcast(t *testing.T) {
	f := newChatFixture(t)
	session := authedSession(t, f)

	if err := f.svc.HandleChatMessage(context.Background(), session, f.sender, "Hello"); err != nil {
		t.Fatalf("HandleChatMessage: %v", err)
	}

	if len(f.repo.saved) != 1 {
		t.Fatalf("saved %d messages, want 1", len(f.repo.saved))
	}
	saved := f.repo.saved[0]
	if saved.UserID != "u1" || saved.UserName != "Ama" || saved.Message != "Hello" {
		t.Errorf("unexpected saved message: %+v", saved)
	}

	event, _ := f.sender.lastEvent()
	if event != domain.EventChatMessage {
		t.Errorf("sender got event %q, want %q", event, domain.EventChatMessage)
	}
	var echoed domain.ChatEvent
	json.Unmarshal(f.sender.sent[len(f.sender.sent)-1].Data, &echoed)
	if echoed.UserName != "Ama" || echoed.Msg != "Hello" {
		t.Errorf("unexpected echo payload: %+v", echoed)
	}

	if len(f.broadcast.messages) != 1 {
		t.Fatalf("broadcast %d messages, want 1", len(f.broadcast.messages))
	}
	if f.broadcast.excluded[0] != "c1" {
		t.Errorf("broadcast excluded %q, want %q", f.broadcast.excluded[0], "c1")
	}
}

func TestChatMessagePersistedBeforeDelivery(t *testing.T) {
	f := newChatFixture(t)
	session := authedSession(t, f)

	if err := f.svc.HandleChatMessage(context.Background(), session, f.sender, "ordering check"); err != nil {
		t.Fatalf("HandleChatMessage: %v", err)
	}

	if len(f.log.ops) < 3 {
		t.Fatalf("ops = %v, want save then echo then broadcast", f.log.ops)
	}
	if f.log.ops[0] != "save" {
		t.Errorf("first op = %q, want save; full sequence %v", f.log.ops[0], f.log.ops)
	}
	if f.log.ops[len(f.log.ops)-1] != "broadcast" {
		t.Errorf("last op = %q, want broadcast; full sequence %v", f.log.ops[len(f.log.ops)-1], f.log.ops)
	}
}

func TestChatMessagePersistenceFailureSuppressesBroadcast(t *testing.T) {
	f := newChatFixture(t)
	session := authedSession(t, f)
	f.repo.failed = true

	err := f.svc.HandleChatMessage(context.Background(), session, f.sender, "doomed")
	if err == nil {
		t.Fatal("expected error from failed save")
	}

	if len(f.broadcast.messages) != 0 {
		t.Fatalf("broadcast %d messages after failed save, want 0", len(f.broadcast.messages))
	}
	if len(f.cache.appended) != 0 {
		t.Fatalf("cache got %d messages after failed save, want 0", len(f.cache.appended))
	}

	event, errEvt := f.sender.lastEvent()
	if event != domain.EventChatError {
		t.Fatalf("sender got event %q, want %q", event, domain.EventChatError)
	}
	if errEvt.Code != domain.ErrCodePersistenceFailure {
		t.Errorf("error code = %q, want %q", errEvt.Code, domain.ErrCodePersistenceFailure)
	}
}

func TestChatMessageUnauthenticated(t *testing.T) {
	f := newChatFixture(t)
	session := domain.NewSession("c1")

	if err := f.svc.HandleChatMessage(context.Background(), session, f.sender, "Hello"); err != nil {
		t.Fatalf("HandleChatMessage: %v", err)
	}

	if len(f.repo.saved) != 0 {
		t.Fatalf("saved %d messages from unauthenticated session, want 0", len(f.repo.saved))
	}
	if len(f.broadcast.messages) != 0 {
		t.Fatalf("broadcast %d messages from unauthenticated session, want 0", len(f.broadcast.messages))
	}

	event, errEvt := f.sender.lastEvent()
	if event != domain.EventChatError || errEvt.Code != domain.ErrCodeUnauthorized {
		t.Errorf("got event %q code %q, want chat-error UNAUTHORIZED", event, errEvt.Code)
	}
}

func TestChatMessageEmptyRejected(t *testing.T) {
	f := newChatFixture(t)
	session := authedSession(t, f)

	if err := f.svc.HandleChatMessage(context.Background(), session, f.sender, "   "); err != nil {
		t.Fatalf("HandleChatMessage: %v", err)
	}

	if len(f.repo.saved) != 0 {
		t.Fatalf("saved %d blank messages, want 0", len(f.repo.saved))
	}
	event, errEvt := f.sender.lastEvent()
	if event != domain.EventChatError || errEvt.Code != domain.ErrCodeBadRequest {
		t.Errorf("got event %q code %q, want chat-error BAD_REQUEST", event, errEvt.Code)
	}
}

func TestConnectWithExpiredTokenLeavesNoTrace(t *testing.T) {
	f := newChatFixture(t)
	expired := auth.NewTokenManager("test-secret", "rise360-test", -time.Minute)
	token, err := expired.Generate("u1", domain.RoleSeller)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	session := domain.NewSession("c1")
	if err := f.svc.HandleConnect(context.Background(), session, f.sender, token); err == nil {
		t.Fatal("expected connect to fail with expired token")
	}

	if session.IsAuthenticated() {
		t.Error("session authenticated despite expired token")
	}
	if len(f.repo.saved) != 0 || len(f.broadcast.messages) != 0 {
		t.Errorf("expired token produced records (%d) or broadcasts (%d)", len(f.repo.saved), len(f.broadcast.messages))
	}

	event, errEvt := f.sender.lastEvent()
	if event != domain.EventChatError || errEvt.Code != domain.ErrCodeUnauthorized {
		t.Errorf("got event %q code %q, want chat-error UNAUTHORIZED", event, errEvt.Code)
	}
}

func TestHandleIncomingDispatch(t *testing.T) {
	f := newChatFixture(t)
	session := authedSession(t, f)

	frame, _ := json.Marshal(domain.NewEnvelope(domain.EventSentChat, "Hello"))
	f.svc.HandleIncoming(context.Background(), session, f.sender, frame)

	if len(f.repo.saved) != 1 || f.repo.saved[0].Message != "Hello" {
		t.Fatalf("saved = %+v, want one message %q", f.repo.saved, "Hello")
	}
}

func TestHandleIncomingMalformedFrame(t *testing.T) {
	f := newChatFixture(t)
	session := authedSession(t, f)

	f.svc.HandleIncoming(context.Background(), session, f.sender, []byte("{not json"))

	event, errEvt := f.sender.lastEvent()
	if event != domain.EventChatError || errEvt.Code != domain.ErrCodeBadRequest {
		t.Errorf("got event %q code %q, want chat-error BAD_REQUEST", event, errEvt.Code)
	}
	if len(f.repo.saved) != 0 {
		t.Errorf("malformed frame produced %d saves", len(f.repo.saved))
	}
}

func TestHandleIncomingUnknownEvent(t *testing.T) {
	f := newChatFixture(t)
	session := authedSession(t, f)

	frame, _ := json.Marshal(domain.NewEnvelope("presence-ping", "x"))
	f.svc.HandleIncoming(context.Background(), session, f.sender, frame)

	event, errEvt := f.sender.lastEvent()
	if event != domain.EventChatError || errEvt.Code != domain.ErrCodeBadRequest {
		t.Errorf("got event %q code %q, want chat-error BAD_REQUEST", event, errEvt.Code)
	}
}

func TestHistoryFallsBackToRepository(t *testing.T) {
	f := newChatFixture(t)
	session := authedSession(t, f)

	for _, text := range []string{"first", "second"} {
		if err := f.svc.HandleChatMessage(context.Background(), session, f.sender, text); err != nil {
			t.Fatalf("HandleChatMessage(%q): %v", text, err)
		}
	}

	// fakeCache.Recent always misses, so this exercises the repo path.
	messages, err := f.svc.History(context.Background())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("History returned %d messages, want 2", len(messages))
	}
	if messages[0].Message != "first" || messages[1].Message != "second" {
		t.Errorf("history out of order: %+v", messages)
	}
}

func TestHistoryCompleteBeyondCacheLimit(t *testing.T) {
	f := newChatFixture(t)
	session := authedSession(t, f)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	const cacheLimit = 3
	history := cache.NewRedisMessageCache(client, time.Minute, cacheLimit)
	svc := NewChatService(auth.NewSocketAuthenticator(f.tokens, f.users), f.repo, history, f.broadcast, 2000)

	const total = cacheLimit * 2
	for i := 0; i < total; i++ {
		if err := svc.HandleChatMessage(context.Background(), session, f.sender, fmt.Sprintf("line %d", i)); err != nil {
			t.Fatalf("HandleChatMessage(%d): %v", i, err)
		}
	}

	// The cache only retains the newest cacheLimit entries; the listing
	// must still return everything that was persisted.
	messages, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != total {
		t.Fatalf("History returned %d messages, want %d", len(messages), total)
	}
	if messages[0].Message != "line 0" {
		t.Errorf("oldest message = %q, want %q", messages[0].Message, "line 0")
	}

	// A repeated read must not be poisoned by the previous warm-up.
	again, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("History (second read): %v", err)
	}
	if len(again) != total {
		t.Fatalf("second History returned %d messages, want %d", len(again), total)
	}
}
