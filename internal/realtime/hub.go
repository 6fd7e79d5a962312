package realtime

import (
	"sync"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Client is one websocket connection subscribed to a ticket room.
type Client struct {
	ID       string
	TicketID int64
	Conn     *websocket.Conn

	mu sync.Mutex
}

// Send writes one JSON frame. Writes are serialized per connection because
// fiber websocket connections are not safe for concurrent writers.
func (c *Client) Send(payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(payload)
}

// Hub keeps per-ticket rooms of websocket clients and fans messages out to
// them.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[int64]map[string]*Client
	logger *zap.Logger
}

// NewHub builds an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[int64]map[string]*Client),
		logger: logger,
	}
}

// Register adds a client to its ticket room.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[client.TicketID]
	if !ok {
		room = make(map[string]*Client)
		h.rooms[client.TicketID] = room
	}
	room[client.ID] = client
	h.logger.Debug("websocket client joined",
		zap.Int64("ticket_id", client.TicketID),
		zap.String("conn_id", client.ID))
}

// Unregister removes a client and drops the room when it empties.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[client.TicketID]
	if !ok {
		return
	}
	delete(room, client.ID)
	if len(room) == 0 {
		delete(h.rooms, client.TicketID)
	}
}

// Broadcast delivers a payload to every client in the ticket room except the
// connection named by skipConn. The sender already rendered its own message
// locally; echoing it back would duplicate it.
func (h *Hub) Broadcast(ticketID int64, skipConn string, payload any) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[ticketID]))
	for _, client := range h.rooms[ticketID] {
		if client.ID == skipConn {
			continue
		}
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.Send(payload); err != nil {
			h.logger.Warn("websocket send failed",
				zap.Int64("ticket_id", ticketID),
				zap.String("conn_id", client.ID),
				zap.Error(err))
		}
	}
}

// RoomSize reports the number of clients in a ticket room.
func (h *Hub) RoomSize(ticketID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[ticketID])
}
