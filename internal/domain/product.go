package domain

import "time"

// Product is a marketplace listing. Seller name and phone are copied from
// the seller at creation so listings render without a user lookup.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SellerID    string    `json:"seller_id"`
	SellerName  string    `json:"seller"`
	SellerPhone string    `json:"phone"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    string    `json:"image"`
	StorageKey  string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProductRequest is the multipart form accompanying a product image.
type CreateProductRequest struct {
	Name        string `form:"name" binding:"required,min=2,max=100"`
	Description string `form:"description" binding:"required,max=1024"`
	PriceCents  int64  `form:"price_cents" binding:"required,gt=0"`
}
