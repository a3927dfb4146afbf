package domain

import "time"

// CartItem is one entry of a checkout request.
type CartItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest is the body of POST /checkout.
type CheckoutRequest struct {
	Items []CartItem `json:"items" binding:"required,min=1,dive"`
}

// OrderLine is a priced line item resolved from the cart.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitCents int64  `json:"unit_cents"`
	Quantity  int64  `json:"quantity"`
}

// Order records a checkout that reached the payment provider.
type Order struct {
	ID               string      `json:"id"`
	BuyerID          string      `json:"buyer_id"`
	Lines            []OrderLine `json:"lines"`
	TotalCents       int64       `json:"total_cents"`
	PaymentSessionID string      `json:"payment_session_id"`
	CreatedAt        time.Time   `json:"created_at"`
}

// CheckoutResponse returns where the client should redirect to pay.
type CheckoutResponse struct {
	OrderID    string `json:"order_id"`
	SessionURL string `json:"session_url"`
}
