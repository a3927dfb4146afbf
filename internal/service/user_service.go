package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/gasanadj/demo-rise360-backend/internal/audit"
	"github.com/gasanadj/demo-rise360-backend/internal/auth"
	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/repository"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

type userService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenManager) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
	}
}

func (s *userService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	l := log.Ctx(ctx)

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, repository.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         req.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionRegister, user.ID, user.Role, "user registered")
	return user, nil
}

func (s *userService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	l := log.Ctx(ctx)

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		audit.Log(ctx, audit.ActionLoginFailed, user.ID, "login rejected: wrong password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		l.Error().Err(err).Msg("failed to sign token")
		return nil, err
	}

	audit.Log(ctx, audit.ActionLogin, user.ID, "user logged in")
	return &domain.LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
