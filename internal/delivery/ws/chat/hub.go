package ws_chat

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/aspecthq/aspect/internal/model"
)

const (
	EventMessage        = "MESSAGE"
	EventPresenceUpdate = "PRESENCE_UPDATE"
	EventError          = "ERROR"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan Event
	user    model.User
	houseID uuid.UUID
}

type houseEvent struct {
	houseID uuid.UUID
	event   Event
}

// Hub fans chat events out to every open connection of a house. It also
// satisfies the chat usecase's Broadcaster so persisted messages reach
// live listeners without the usecase knowing about websockets.
type Hub struct {
	logger     *slog.Logger
	clients    map[*Client]bool
	houses     map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan houseEvent
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		logger:     slog.Default(),
		clients:    make(map[*Client]bool),
		houses:     make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan houseEvent),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case houseEvent := <-h.broadcast:
			h.broadcastToHouse(houseEvent.houseID, houseEvent.event)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if _, exists := h.houses[client.houseID]; !exists {
		h.houses[client.houseID] = make(map[*Client]bool)
	}
	h.houses[client.houseID][client] = true

	h.logger.Info("client registered",
		"user_id", client.user.ID.String(),
		"house", client.houseID.String())

	go h.broadcastPresence(client.houseID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		if houseClients, exists := h.houses[client.houseID]; exists {
			delete(houseClients, client)
			if len(houseClients) == 0 {
				delete(h.houses, client.houseID)
			}
		}
	}

	h.logger.Info("client unregistered",
		"user_id", client.user.ID.String(),
		"house", client.houseID.String())

	go h.broadcastPresence(client.houseID)
}

func (h *Hub) broadcastPresence(houseID uuid.UUID) {
	h.mu.RLock()
	count := len(h.houses[houseID])
	h.mu.RUnlock()

	h.broadcastToHouse(houseID, Event{
		Type: EventPresenceUpdate,
		Payload: map[string]interface{}{
			"online_count": count,
			"timestamp":    time.Now().Unix(),
		},
	})
}

func (h *Hub) broadcastToHouse(houseID uuid.UUID, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if houseClients, exists := h.houses[houseID]; exists {
		for client := range houseClients {
			select {
			case client.send <- event:
			default:
				// Evict the slow consumer from both maps so a later
				// unregister cannot close the channel twice.
				close(client.send)
				delete(h.clients, client)
				delete(houseClients, client)
			}
		}
	}
}

// BroadcastMessage pushes a persisted message to the house's listeners.
func (h *Hub) BroadcastMessage(houseID uuid.UUID, msg model.Message) {
	h.broadcast <- houseEvent{
		houseID: houseID,
		event: Event{
			Type: EventMessage,
			Payload: map[string]interface{}{
				"id":       msg.ID.String(),
				"house_id": msg.HouseID.String(),
				"user_id":  msg.UserID.String(),
				"text":     msg.Text,
				"sent_at":  msg.SentAt,
			},
		},
	}
}
