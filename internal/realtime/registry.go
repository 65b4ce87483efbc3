package realtime

import "sync"

// Registry maps a user identity to its single live connection identifier.
// A user has at most one mapping at a time; a reconnect overwrites the
// previous entry without closing the superseded transport.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]string // userID -> connID
}

// NewRegistry creates an empty connection registry
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]string)}
}

// Register stores the mapping for userID, unconditionally overwriting any
// existing connection (last-connect-wins). It never fails.
func (r *Registry) Register(userID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[userID] = connID
}

// Unregister removes the mapping for userID only when the stored connection
// id matches connID. A disconnect from a superseded connection arriving after
// the user reconnected must not delete the newer mapping. Reports whether a
// mapping was removed.
func (r *Registry) Unregister(userID, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.conns[userID]; ok && current == connID {
		delete(r.conns, userID)
		return true
	}
	return false
}

// Lookup returns the connection id for userID, if any. Pure read.
func (r *Registry) Lookup(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	connID, ok := r.conns[userID]
	return connID, ok
}

// Snapshot returns the full set of currently registered user identities
func (r *Registry) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]string, 0, len(r.conns))
	for userID := range r.conns {
		users = append(users, userID)
	}
	return users
}
