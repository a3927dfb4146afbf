package repository

import (
	"context"
	"errors"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already exists")
	ErrProductNotFound = errors.New("product not found")
)

// UserRepository handles user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ProductRepository handles product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// MessageRepository handles chat message persistence. Save must not
// return until the record is durably written; the chat loop broadcasts
// only after Save succeeds.
type MessageRepository interface {
	Save(ctx context.Context, msg *domain.ChatMessage) error
	List(ctx context.Context) ([]domain.ChatMessage, error)
}

// OrderRepository records completed checkout sessions.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
}
