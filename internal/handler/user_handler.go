package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/repository"
	"github.com/gasanadj/demo-rise360-backend/internal/service"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
	"github.com/gasanadj/demo-rise360-backend/pkg/response"
)

// UserHandler handles registration and login.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles user registration.
func (h *UserHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid register request")
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			response.BadRequest(c, "email already exists")
			return
		}
		l.Error().Err(err).Msg("register failed")
		response.InternalError(c, "failed to register user")
		return
	}

	response.Created(c, user.ToResponse())
}

// Login handles user login.
func (h *UserHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid login request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.userService.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		l.Error().Err(err).Msg("login failed")
		response.InternalError(c, "failed to login")
		return
	}

	response.OK(c, result)
}
