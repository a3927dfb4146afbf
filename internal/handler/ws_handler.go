package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/gasanadj/demo-rise360-backend/internal/config"
	"github.com/gasanadj/demo-rise360-backend/internal/hub"
	"github.com/gasanadj/demo-rise360-backend/internal/service"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades chat connections and feeds their frames to the
// chat service.
type WSHandler struct {
	hub     *hub.Hub
	service service.ChatService
	wsCfg   config.WebSocketConfig
}

func NewWSHandler(h *hub.Hub, svc service.ChatService, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:     h,
		service: svc,
		wsCfg:   wsCfg,
	}
}

// directSender writes frames straight to the connection. Used during the
// handshake, before the client's write pump exists, so a rejection frame
// reaches the peer before the close.
type directSender struct {
	conn *websocket.Conn
}

func (s directSender) SendMessage(message interface{}) error {
	return s.conn.WriteJSON(message)
}

// HandleWebSocket upgrades the connection and authenticates it from the
// handshake query token. A connection that fails authentication gets a
// close frame and is torn down; it never joins the hub.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)

	token := c.Request.URL.Query().Get("token")
	if err := h.service.HandleConnect(ctx, client.Session, directSender{conn: conn}, token); err != nil {
		l.Warn().Err(err).Str(log.FieldClientID, client.ID).Msg("closing unauthenticated chat connection")
		client.Close(websocket.ClosePolicyViolation, "authentication failed")
		return
	}

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.handleMessage)
}

func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	h.service.HandleIncoming(context.Background(), client.Session, client, message)
}
