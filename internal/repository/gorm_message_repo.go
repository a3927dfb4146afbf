package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

// GormMessageRepository implements MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-based message repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Save appends one chat message. It returns only after the row is
// written; the caller gates broadcast on that.
func (r *GormMessageRepository) Save(ctx context.Context, msg *domain.ChatMessage) error {
	l := log.Ctx(ctx)

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Date.IsZero() {
		msg.Date = time.Now()
	}

	model := domain.ChatMessageToModel(msg)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldUserID, msg.UserID).Msg("failed to save chat message")
		return result.Error
	}
	return nil
}

// List returns all persisted messages in write order.
func (r *GormMessageRepository) List(ctx context.Context) ([]domain.ChatMessage, error) {
	l := log.Ctx(ctx)

	var models []domain.ChatMessageModel
	result := r.db.WithContext(ctx).Order("date ASC").Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to list chat messages from db")
		return nil, result.Error
	}

	messages := make([]domain.ChatMessage, len(models))
	for i, model := range models {
		messages[i] = *model.ToDomain()
	}
	return messages, nil
}
