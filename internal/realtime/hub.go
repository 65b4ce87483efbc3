package realtime

import "sync"

// Session is one live transport connection. Send must not block the caller;
// implementations report false when the event could not be queued. The hub
// only needs this narrow surface, which keeps it testable without a network
// connection.
type Session interface {
	ID() string
	Send(evt Event) bool
	Close()
}

// Hub tracks active sessions and the user->connection registry, and
// broadcasts a full presence snapshot to every session after each registry
// mutation.
type Hub struct {
	registry *Registry

	mu       sync.RWMutex
	sessions map[string]Session // connID -> session
}

// NewHub creates a hub with an empty registry
func NewHub() *Hub {
	return &Hub{
		registry: NewRegistry(),
		sessions: make(map[string]Session),
	}
}

// Attach registers a session for a user and broadcasts presence. A previous
// session of the same user is superseded in the registry but its transport
// stays open until its own disconnect arrives.
func (h *Hub) Attach(userID string, s Session) {
	h.mu.Lock()
	h.sessions[s.ID()] = s
	h.mu.Unlock()

	h.registry.Register(userID, s.ID())
	h.broadcastPresence()
}

// Detach removes a session. The registry entry is only cleared when it still
// belongs to this connection; a stale disconnect after a reconnect leaves the
// newer mapping intact. Presence is broadcast only when the registry changed.
func (h *Hub) Detach(userID, connID string) {
	h.mu.Lock()
	delete(h.sessions, connID)
	h.mu.Unlock()

	if h.registry.Unregister(userID, connID) {
		h.broadcastPresence()
	}
}

// Lookup resolves a user identity to its live connection id
func (h *Hub) Lookup(userID string) (string, bool) {
	return h.registry.Lookup(userID)
}

// Online returns the identities of all currently connected users
func (h *Hub) Online() []string {
	return h.registry.Snapshot()
}

// Send delivers an event to a single connection. Fire-and-forget: false
// means the connection is gone or its buffer is full, and the caller is not
// expected to react.
func (h *Hub) Send(connID string, evt Event) bool {
	h.mu.RLock()
	s, ok := h.sessions[connID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	return s.Send(evt)
}

// broadcastPresence pushes the full online-user set to every session. Full
// snapshots are idempotent to apply, so no ordering guarantee is needed
// between two broadcasts.
func (h *Hub) broadcastPresence() {
	evt := NewEvent(EventOnlineUsers, h.registry.Snapshot())

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.sessions {
		s.Send(evt)
	}
}
