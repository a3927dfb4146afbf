package payment

import (
	"context"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
)

// Session is a hosted payment page the buyer gets redirected to.
type Session struct {
	ID  string
	URL string
}

// Provider creates hosted checkout sessions for a priced cart.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, lines []domain.OrderLine) (*Session, error)
}
