package hub

import (
	"encoding/json"
	"sync"

	"github.com/gasanadj/demo-rise360-backend/internal/config"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

// Hub tracks every live chat connection and fans messages out to them.
// There is a single shared conversation, so no room bookkeeping.
type Hub struct {
	clients    map[string]*Client // clientID -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *OutboundMessage
	mu         sync.RWMutex
	config     config.WebSocketConfig
}

// OutboundMessage is one payload queued for fan-out.
type OutboundMessage struct {
	Message []byte
	Exclude string // client ID to skip, usually the sender
}

func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *OutboundMessage, 256),
		config:     cfg,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			l := log.L()
			l.Debug().Str(log.FieldClientID, client.ID).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			l := log.L()
			l.Debug().Str(log.FieldClientID, client.ID).Msg("client unregistered")

		case msg := <-h.broadcast:
			h.mu.RLock()
			for clientID, client := range h.clients {
				if clientID == msg.Exclude {
					continue
				}
				if !client.Session.IsAuthenticated() {
					continue
				}
				select {
				case client.Send <- msg.Message:
				default:
					go h.removeClient(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast fans a payload out to every authenticated client except the
// excluded one. Delivery is best-effort; slow consumers are dropped.
func (h *Hub) Broadcast(message interface{}, exclude string) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.broadcast <- &OutboundMessage{
		Message: data,
		Exclude: exclude,
	}
	return nil
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) removeClient(client *Client) {
	h.unregister <- client
}
