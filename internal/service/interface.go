package service

import (
	"context"
	"errors"
	"io"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotOwner           = errors.New("not the owner of this product")
	ErrEmptyCart          = errors.New("cart is empty")
)

// Sender delivers a payload to one connected peer.
type Sender interface {
	SendMessage(message interface{}) error
}

// Broadcaster fans a payload out to every connected peer except one.
type Broadcaster interface {
	Broadcast(message interface{}, exclude string) error
}

// ChatService drives the live chat loop: connection activation, message
// handling, and history reads.
type ChatService interface {
	// HandleConnect authenticates a fresh connection. A non-nil error
	// means the connection must be closed by the caller.
	HandleConnect(ctx context.Context, session *domain.Session, sender Sender, token string) error
	// HandleIncoming parses and dispatches one raw frame.
	HandleIncoming(ctx context.Context, session *domain.Session, sender Sender, raw []byte)
	// HandleChatMessage runs the persist-then-broadcast sequence for one
	// chat line.
	HandleChatMessage(ctx context.Context, session *domain.Session, sender Sender, content string) error
	// History returns every persisted message in write order.
	History(ctx context.Context) ([]domain.ChatMessage, error)
}

// UserService handles registration and login.
type UserService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
}

// ImageUpload carries an uploaded product image into the service layer.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// ProductService manages marketplace listings.
type ProductService interface {
	Create(ctx context.Context, sellerID string, req *domain.CreateProductRequest, image *ImageUpload) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Delete(ctx context.Context, productID, requesterID string) error
}

// CheckoutService prices a cart and opens a payment session for it.
type CheckoutService interface {
	Checkout(ctx context.Context, buyerID string, req *domain.CheckoutRequest) (*domain.CheckoutResponse, error)
}
