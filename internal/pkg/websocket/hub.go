package websocket

import (
	"github.com/hassy/readcycle/internal/pkg/logger"
)

type broadcast struct {
	room    string
	payload []byte
	exclude *Client
}

type membership struct {
	client *Client
	room   string
}

// Hub tracks connected clients and conversation rooms. A client may
// belong to any number of rooms. All state is owned by the run loop.
type Hub struct {
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	join       chan membership
	leave      chan membership
	send       chan broadcast
	done       chan struct{}
}

// NewHub creates a hub. Call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan membership),
		leave:      make(chan membership),
		send:       make(chan broadcast, 64),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until Close is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			logger.Debug().Str("user_id", client.userID).Msg("Client connected")

		case client := <-h.unregister:
			h.drop(client)

		case m := <-h.join:
			if !h.clients[m.client] {
				continue
			}
			if h.rooms[m.room] == nil {
				h.rooms[m.room] = make(map[*Client]bool)
			}
			h.rooms[m.room][m.client] = true
			m.client.rooms[m.room] = true

		case m := <-h.leave:
			h.removeFromRoom(m.client, m.room)

		case b := <-h.send:
			for client := range h.rooms[b.room] {
				if client == b.exclude {
					continue
				}
				select {
				case client.sendCh <- b.payload:
				default:
					// Slow consumer, cut it loose.
					h.drop(client)
				}
			}

		case <-h.done:
			for client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

func (h *Hub) drop(client *Client) {
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	for room := range client.rooms {
		h.removeFromRoom(client, room)
	}
	client.closeSend()
	logger.Debug().Str("user_id", client.userID).Msg("Client disconnected")
}

func (h *Hub) removeFromRoom(client *Client, room string) {
	if members := h.rooms[room]; members != nil {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(client.rooms, room)
}

// Register adds a connected client.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client and all its room memberships.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Join adds the client to a conversation room.
func (h *Hub) Join(client *Client, room string) {
	h.join <- membership{client: client, room: room}
}

// Broadcast fans an event out to a room. exclude may be nil. Delivery
// is fire-and-forget: nobody waits for slow sockets.
func (h *Hub) Broadcast(room, event string, data any, exclude *Client) {
	payload, err := EncodeFrame(event, data)
	if err != nil {
		logger.Error().Err(err).Str("event", event).Msg("Failed to encode frame")
		return
	}
	h.send <- broadcast{room: room, payload: payload, exclude: exclude}
}

// Close shuts the hub down and disconnects every client.
func (h *Hub) Close() {
	close(h.done)
}
