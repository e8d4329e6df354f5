package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

type redisEnvelope struct {
	Room  string          `json:"room"`
	Frame json.RawMessage `json:"frame"`
}

// RedisBus fans events out through a Redis channel so that subscribers
// connected to any instance receive them. Every instance runs the bus and
// forwards what it hears to its local hub.
type RedisBus struct {
	client  *redis.Client
	channel string
	hub     *Hub
	log     *zap.Logger
}

func NewRedisBus(client *redis.Client, channel string, hub *Hub, log *zap.Logger) *RedisBus {
	return &RedisBus{
		client:  client,
		channel: channel,
		hub:     hub,
		log:     log.With(zap.String("component", "realtime_redis")),
	}
}

// Emit publishes to Redis. If Redis is unreachable the event still reaches
// local subscribers.
func (b *RedisBus) Emit(clubID uuid.UUID, event string, data any) {
	frame, err := encodeFrame(event, data)
	if err != nil {
		b.log.Error("Failed to encode event", zap.String("event", event), zap.Error(err))
		return
	}
	room := Room(clubID)

	payload, err := json.Marshal(redisEnvelope{Room: room, Frame: frame})
	if err != nil {
		b.log.Error("Failed to encode redis envelope", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		b.log.Warn("Redis publish failed, delivering locally", zap.String("event", event), zap.Error(err))
		b.hub.Publish(room, frame)
	}
}

// Run forwards channel messages to the local hub until ctx is cancelled.
func (b *RedisBus) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	// wait for the subscription to be confirmed
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var env redisEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.log.Warn("Ignoring malformed redis event", zap.Error(err))
				continue
			}
			b.hub.Publish(env.Room, env.Frame)
		}
	}
}
