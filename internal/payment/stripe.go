package payment

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

// StripeProvider implements Provider over Stripe hosted checkout.
type StripeProvider struct {
	successURL string
	cancelURL  string
}

// NewStripeProvider configures the Stripe client. The secret key is
// process-global in the Stripe SDK.
func NewStripeProvider(secretKey, successURL, cancelURL string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// CreateCheckoutSession builds a hosted checkout session from the order
// lines, priced in USD cents.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, lines []domain.OrderLine) (*Session, error) {
	l := log.Ctx(ctx)

	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
				UnitAmount: stripe.Int64(line.UnitCents),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  items,
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		l.Error().Err(err).Msg("failed to create stripe checkout session")
		return nil, err
	}

	return &Session{ID: s.ID, URL: s.URL}, nil
}
