package realtime

import (
	"encoding/json"

	"github.com/google/uuid"
)

const (
	EventDancerCreated  = "dancer:created"
	EventQueueUpdated   = "queue:updated"
	EventQueueReordered = "queue:reordered"
	EventVipBooked      = "vip:booked"
	EventVipCheckout    = "vip:checkout"
	EventBarFee         = "financial:bar-fee"
)

// Broadcaster pushes an event to every subscriber of a club. Emit must not
// block the caller; delivery is best effort.
type Broadcaster interface {
	Emit(clubID uuid.UUID, event string, data any)
}

// Frame is the JSON message written to subscribers.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Room names the subscriber group of a club.
func Room(clubID uuid.UUID) string {
	return "club-" + clubID.String()
}

func encodeFrame(event string, data any) ([]byte, error) {
	return json.Marshal(Frame{Event: event, Data: data})
}

// Nop drops every event. Used where no subscribers exist, such as the CLI.
type Nop struct{}

func (Nop) Emit(uuid.UUID, string, any) {}
