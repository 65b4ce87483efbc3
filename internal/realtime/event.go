package realtime

import "time"

// Well-known event names pushed over the live channel.
const (
	EventOnlineUsers  = "onlineUsers"
	EventNotification = "notification"
	EventNewMessage   = "newMessage"
)

// Event is the envelope written to a live connection. It is transient and
// never persisted.
type Event struct {
	Name      string      `json:"event"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent wraps a payload in a timestamped envelope
func NewEvent(name string, payload interface{}) Event {
	return Event{Name: name, Payload: payload, Timestamp: time.Now().UTC()}
}
