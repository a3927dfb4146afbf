package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create creates a new product.
func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	l := log.Ctx(ctx)

	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	model := domain.ProductToModel(product)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to create product in db")
		return result.Error
	}

	product.CreatedAt = model.CreatedAt
	l.Debug().Str(log.FieldProductID, product.ID).Msg("product created in db")
	return nil
}

// GetByID retrieves a product by id.
func (r *GormProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	l := log.Ctx(ctx)

	var model domain.ProductModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		l.Error().Err(result.Error).Str(log.FieldProductID, id).Msg("failed to get product by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// List retrieves all products, newest first.
func (r *GormProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	l := log.Ctx(ctx)

	var models []domain.ProductModel
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to list products from db")
		return nil, result.Error
	}

	products := make([]domain.Product, len(models))
	for i, model := range models {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// Delete soft-deletes a product.
func (r *GormProductRepository) Delete(ctx context.Context, id string) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).Delete(&domain.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldProductID, id).Msg("failed to delete product in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	l.Debug().Str(log.FieldProductID, id).Msg("product deleted in db")
	return nil
}
