package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 64
)

// Authorizer reports whether the user may subscribe to the club's events.
type Authorizer func(ctx context.Context, userID, clubID uuid.UUID) bool

// Client is one websocket subscriber. It may sit in several club rooms.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	userID    uuid.UUID
	authorize Authorizer
	log       *zap.Logger
}

// inbound is what subscribers may send: {"action":"join-club","clubId":"..."}.
type inbound struct {
	Action string `json:"action"`
	ClubID string `json:"clubId"`
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, authorize Authorizer, log *zap.Logger) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		userID:    userID,
		authorize: authorize,
		log:       log.With(zap.String("user_id", userID.String())),
	}
}

// Serve registers the client, joins its first club and runs both pumps.
// It returns when the connection closes.
func (c *Client) Serve(ctx context.Context, clubID uuid.UUID) {
	c.hub.Register(c)
	c.hub.Subscribe(c, Room(clubID))

	go c.writePump()
	c.readPump(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("Websocket read failed", zap.Error(err))
			}
			return
		}
		c.handle(ctx, raw)
	}
}

func (c *Client) handle(ctx context.Context, raw []byte) {
	var msg inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.log.Debug("Ignoring malformed websocket message", zap.Error(err))
		return
	}

	clubID, err := uuid.Parse(msg.ClubID)
	if err != nil {
		return
	}

	switch msg.Action {
	case "join-club":
		if !c.authorize(ctx, c.userID, clubID) {
			c.log.Warn("Websocket join refused", zap.String("club_id", clubID.String()))
			return
		}
		c.hub.Subscribe(c, Room(clubID))
	case "leave-club":
		c.hub.Unsubscribe(c, Room(clubID))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
