package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gasanadj/demo-rise360-backend/internal/audit"
	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/repository"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
	"github.com/gasanadj/demo-rise360-backend/pkg/storage"
)

type productService struct {
	products repository.ProductRepository
	users    repository.UserRepository
	store    storage.Storage
}

func NewProductService(
	products repository.ProductRepository,
	users repository.UserRepository,
	store storage.Storage,
) ProductService {
	return &productService{
		products: products,
		users:    users,
		store:    store,
	}
}

// imageURLExpiry bounds presigned image URLs when the store has no
// public URL configured.
const imageURLExpiry = 24 * time.Hour

func (s *productService) Create(ctx context.Context, sellerID string, req *domain.CreateProductRequest, image *ImageUpload) (*domain.Product, error) {
	l := log.Ctx(ctx)

	seller, err := s.users.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		SellerID:    seller.ID,
		SellerName:  seller.Name,
		SellerPhone: seller.Phone,
		PriceCents:  req.PriceCents,
	}

	if image != nil {
		ext := strings.ToLower(filepath.Ext(image.Filename))
		key := fmt.Sprintf("products/%s%s", product.ID, ext)
		if err := s.store.Write(ctx, key, image.Reader, image.Size, image.ContentType); err != nil {
			l.Error().Err(err).Msg("failed to store product image")
			return nil, err
		}
		url, err := s.store.GetURL(ctx, key, imageURLExpiry)
		if err != nil {
			l.Error().Err(err).Msg("failed to resolve product image url")
			return nil, err
		}
		product.StorageKey = key
		product.ImageURL = url
	}

	if err := s.products.Create(ctx, product); err != nil {
		// Keep storage consistent with the database.
		if product.StorageKey != "" {
			if derr := s.store.Delete(ctx, product.StorageKey); derr != nil {
				l.Warn().Err(derr).Msg("failed to remove orphaned product image")
			}
		}
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionProductCreate, seller.ID, product.ID, "product listed")
	return product, nil
}

func (s *productService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *productService) Delete(ctx context.Context, productID, requesterID string) error {
	l := log.Ctx(ctx)

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.SellerID != requesterID {
		return ErrNotOwner
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}

	if product.StorageKey != "" {
		if err := s.store.Delete(ctx, product.StorageKey); err != nil {
			l.Warn().Err(err).Str(log.FieldProductID, productID).Msg("failed to delete product image")
		}
	}

	audit.LogWithDetail(ctx, audit.ActionProductDelete, requesterID, productID, "product removed")
	return nil
}
