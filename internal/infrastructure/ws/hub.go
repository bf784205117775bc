package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"wallet_companion/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The gateway is a local companion process; cross-origin browser UIs
	// are expected.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Hub fans state-change events out to all connected WebSocket subscribers.
// It implements port.EventPublisher; Publish never blocks on a slow client.
type Hub struct {
	logger *zap.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:  logger.Named("WSHub"),
		clients: make(map[*Client]struct{}),
	}
}

// Publish implements port.EventPublisher.
func (h *Hub) Publish(event entity.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal event", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(payload)
	}
}

// HandleWS upgrades the request and registers the connection as a
// subscriber.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(conn, h.remove, h.logger)
	h.mu.Lock()
	h.clients[client] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("Websocket client connected", zap.Int("clients", count))

	go client.WritePump()
	go client.ReadPump()
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	delete(h.clients, client)
	count := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("Websocket client disconnected", zap.Int("clients", count))
}
