package realtime

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type subscription struct {
	client *Client
	room   string
}

type broadcastMsg struct {
	room string
	data []byte
}

// Hub owns the room membership map. Every mutation goes through its
// channels and is applied by the Run goroutine.
type Hub struct {
	rooms      map[string]map[*Client]bool
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	join       chan subscription
	leave      chan subscription
	broadcast  chan broadcastMsg
	done       chan struct{}
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan subscription),
		leave:      make(chan subscription),
		broadcast:  make(chan broadcastMsg, 256),
		done:       make(chan struct{}),
		log:        log.With(zap.String("component", "realtime_hub")),
	}
}

// Run processes hub traffic until ctx is cancelled, then closes every
// client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
			}
			h.clients = map[*Client]bool{}
			h.rooms = map[string]map[*Client]bool{}
			return

		case c := <-h.register:
			h.clients[c] = true

		case c := <-h.unregister:
			h.drop(c)

		case s := <-h.join:
			if !h.clients[s.client] {
				continue
			}
			if h.rooms[s.room] == nil {
				h.rooms[s.room] = make(map[*Client]bool)
			}
			h.rooms[s.room][s.client] = true

		case s := <-h.leave:
			h.removeFromRoom(s.client, s.room)

		case m := <-h.broadcast:
			for c := range h.rooms[m.room] {
				select {
				case c.send <- m.data:
				default:
					// slow subscriber
					h.log.Warn("Dropping slow websocket client", zap.String("user_id", c.userID.String()))
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	if !h.clients[c] {
		return
	}
	for room := range h.rooms {
		h.removeFromRoom(c, room)
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) removeFromRoom(c *Client, room string) {
	members := h.rooms[room]
	if members == nil {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Emit implements Broadcaster for a single instance.
func (h *Hub) Emit(clubID uuid.UUID, event string, data any) {
	frame, err := encodeFrame(event, data)
	if err != nil {
		h.log.Error("Failed to encode event", zap.String("event", event), zap.Error(err))
		return
	}
	h.Publish(Room(clubID), frame)
}

// Publish queues an encoded frame for a room without blocking.
func (h *Hub) Publish(room string, frame []byte) {
	select {
	case h.broadcast <- broadcastMsg{room: room, data: frame}:
	case <-h.done:
	default:
		h.log.Warn("Realtime broadcast queue full, event dropped", zap.String("room", room))
	}
}

// Subscribe and Unsubscribe block only until the hub accepts the request.
func (h *Hub) Subscribe(c *Client, room string) {
	select {
	case h.join <- subscription{client: c, room: room}:
	case <-h.done:
	}
}

func (h *Hub) Unsubscribe(c *Client, room string) {
	select {
	case h.leave <- subscription{client: c, room: room}:
	case <-h.done:
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
