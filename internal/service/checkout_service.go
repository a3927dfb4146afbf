package service

import (
	"context"
	"fmt"

	"github.com/gasanadj/demo-rise360-backend/internal/audit"
	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/payment"
	"github.com/gasanadj/demo-rise360-backend/internal/repository"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
	"github.com/gasanadj/demo-rise360-backend/pkg/mail"
)

type checkoutService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	payments payment.Provider
	mailer   mail.Mailer
}

func NewCheckoutService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	payments payment.Provider,
	mailer mail.Mailer,
) CheckoutService {
	return &checkoutService{
		products: products,
		orders:   orders,
		users:    users,
		payments: payments,
		mailer:   mailer,
	}
}

// Checkout prices the cart against current listings, opens a hosted
// payment session, and records the order. The confirmation mail is
// best-effort.
func (s *checkoutService) Checkout(ctx context.Context, buyerID string, req *domain.CheckoutRequest) (*domain.CheckoutResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	lines, total, err := s.priceCart(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	session, err := s.payments.CreateCheckoutSession(ctx, lines)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		BuyerID:          buyerID,
		Lines:            lines,
		TotalCents:       total,
		PaymentSessionID: session.ID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionCheckout, buyerID, order.ID, "checkout session opened")
	s.sendConfirmation(ctx, buyerID, order)

	return &domain.CheckoutResponse{
		OrderID:    order.ID,
		SessionURL: session.URL,
	}, nil
}

// priceCart resolves each cart item against the product catalog. Prices
// come from the listing, never from the client.
func (s *checkoutService) priceCart(ctx context.Context, items []domain.CartItem) ([]domain.OrderLine, int64, error) {
	lines := make([]domain.OrderLine, 0, len(items))
	var total int64

	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, 0, err
		}
		lines = append(lines, domain.OrderLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitCents: product.PriceCents,
			Quantity:  item.Quantity,
		})
		total += product.PriceCents * item.Quantity
	}
	return lines, total, nil
}

func (s *checkoutService) sendConfirmation(ctx context.Context, buyerID string, order *domain.Order) {
	l := log.Ctx(ctx)

	buyer, err := s.users.GetByID(ctx, buyerID)
	if err != nil {
		l.Warn().Err(err).Str(log.FieldOrderID, order.ID).Msg("skipping order confirmation mail, buyer lookup failed")
		return
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your order <b>%s</b> totalling $%.2f is awaiting payment. Complete the checkout to confirm it.</p>",
		buyer.Name, order.ID, float64(order.TotalCents)/100,
	)
	if err := s.mailer.Send(buyer.Email, "Your RiseFarmer360 order", body); err != nil {
		l.Warn().Err(err).Str(log.FieldOrderID, order.ID).Msg("failed to send order confirmation mail")
	}
}
