package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gasanadj/demo-rise360-backend/internal/middleware"
)

// Router bundles every handler behind one route table.
type Router struct {
	Users    *UserHandler
	Products *ProductHandler
	Chat     *ChatHandler
	Checkout *CheckoutHandler
	WS       *WSHandler
	Auth     *middleware.AuthMiddleware
}

// RegisterRoutes wires the public API surface.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/user/register", rt.Users.Register)
	r.POST("/user/login", rt.Users.Login)

	r.GET("/products", rt.Products.List)
	r.POST("/products/add", rt.Auth.RequireAuth(), rt.Auth.RequireRole("seller"), rt.Products.Create)
	r.DELETE("/products/delete/:id", rt.Auth.RequireAuth(), rt.Products.Delete)

	r.GET("/chat", rt.Chat.History)
	r.GET("/chat/ws", rt.WS.HandleWebSocket)

	r.POST("/checkout", rt.Auth.RequireAuth(), rt.Checkout.Checkout)
}
