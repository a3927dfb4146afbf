package auth

import (
	"context"
	"errors"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/repository"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

var (
	// ErrMissingCredential means the connection presented no token at all.
	ErrMissingCredential = errors.New("authentication error: token missing")
	// ErrUnknownUser means the token verified but references no persisted user.
	ErrUnknownUser = errors.New("user not found")
)

// SocketAuthenticator resolves a raw connection credential to a persisted
// user. Every failure is logged here and reported as a nil user; callers
// must treat nil as "refuse to activate this connection", never as a
// reason to tear down the transport.
type SocketAuthenticator struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewSocketAuthenticator creates an authenticator over the given verifier
// and user store.
func NewSocketAuthenticator(tokens *TokenManager, users repository.UserRepository) *SocketAuthenticator {
	return &SocketAuthenticator{
		tokens: tokens,
		users:  users,
	}
}

// Authenticate verifies the token and looks up its user. The lookup is
// read-only; there are no side effects beyond logging.
func (a *SocketAuthenticator) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	l := log.Ctx(ctx)

	claims, err := a.tokens.Verify(token)
	if err != nil {
		l.Warn().Err(err).Msg("socket authentication failed: token rejected")
		return nil, err
	}
	if claims == nil {
		l.Warn().Msg("socket authentication failed: no credential presented")
		return nil, ErrMissingCredential
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			l.Warn().Str(log.FieldUserID, claims.UserID).Msg("socket authentication failed: unknown user")
			return nil, ErrUnknownUser
		}
		l.Error().Err(err).Str(log.FieldUserID, claims.UserID).Msg("socket authentication failed: user lookup error")
		return nil, err
	}

	return user, nil
}
