package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	l := log.Ctx(ctx)

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	model := domain.UserToModel(user)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) ||
			strings.Contains(strings.ToLower(result.Error.Error()), "duplicate") ||
			strings.Contains(strings.ToLower(result.Error.Error()), "unique") {
			return ErrEmailTaken
		}
		l.Error().Err(result.Error).Msg("failed to create user in db")
		return result.Error
	}

	user.CreatedAt = model.CreatedAt
	l.Debug().Str(log.FieldUserID, user.ID).Msg("user created in db")
	return nil
}

// GetByID retrieves a user by id.
func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	l := log.Ctx(ctx)

	var model domain.UserModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(result.Error).Str(log.FieldUserID, id).Msg("failed to get user by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// GetByEmail retrieves a user by email.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	l := log.Ctx(ctx)

	var model domain.UserModel
	result := r.db.WithContext(ctx).First(&model, "email = ?", strings.ToLower(strings.TrimSpace(email)))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(result.Error).Msg("failed to get user by email")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}
