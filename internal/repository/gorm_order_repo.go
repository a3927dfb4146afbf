package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM-based order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create records a checkout order.
func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	l := log.Ctx(ctx)

	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return err
	}

	model := &domain.OrderModel{
		ID:               order.ID,
		BuyerID:          order.BuyerID,
		TotalCents:       order.TotalCents,
		PaymentSessionID: order.PaymentSessionID,
		LinesJSON:        string(lines),
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldOrderID, order.ID).Msg("failed to create order in db")
		return result.Error
	}

	order.CreatedAt = model.CreatedAt
	return nil
}
