package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gasanadj/demo-rise360-backend/internal/service"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
	"github.com/gasanadj/demo-rise360-backend/pkg/response"
)

// ChatHandler serves the persisted chat history over HTTP.
type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// History returns every chat message in write order.
func (h *ChatHandler) History(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	messages, err := h.chatService.History(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to load chat history")
		response.InternalError(c, "failed to load chat history")
		return
	}

	response.OK(c, messages)
}
