package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/middleware"
	"github.com/gasanadj/demo-rise360-backend/internal/repository"
	"github.com/gasanadj/demo-rise360-backend/internal/service"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
	"github.com/gasanadj/demo-rise360-backend/pkg/response"
)

// CheckoutHandler opens payment sessions for carts.
type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout prices the submitted cart and returns the payment redirect.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid checkout request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.checkoutService.Checkout(ctx, middleware.GetUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			response.BadRequest(c, "cart references an unknown product")
		case errors.Is(err, service.ErrEmptyCart):
			response.BadRequest(c, "cart is empty")
		default:
			l.Error().Err(err).Msg("checkout failed")
			response.InternalError(c, "failed to start checkout")
		}
		return
	}

	response.OK(c, result)
}
