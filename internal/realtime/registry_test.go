package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	r.Register("alice", "conn-1")

	connID, ok := r.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "conn-1", connID)

	_, ok = r.Lookup("bob")
	assert.False(t, ok)
}

func TestRegistryReconnectOverwrites(t *testing.T) {
	r := NewRegistry()

	r.Register("alice", "conn-1")
	r.Register("alice", "conn-2")

	connID, ok := r.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "conn-2", connID, "the newest connection wins")
	assert.Len(t, r.Snapshot(), 1, "a reconnect must not duplicate the user")
}

func TestRegistryUnregisterRequiresMatchingConnection(t *testing.T) {
	r := NewRegistry()

	r.Register("alice", "conn-1")
	r.Register("alice", "conn-2")

	// Disconnect of the superseded connection arrives late
	removed := r.Unregister("alice", "conn-1")
	assert.False(t, removed)

	connID, ok := r.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "conn-2", connID, "stale disconnect must not evict the newer mapping")

	removed = r.Unregister("alice", "conn-2")
	assert.True(t, removed)

	_, ok = r.Lookup("alice")
	assert.False(t, ok)
}

func TestRegistryUnregisterUnknownUser(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Unregister("ghost", "conn-1"))
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()

	r.Register("alice", "conn-1")
	r.Register("bob", "conn-2")
	r.Register("carol", "conn-3")
	r.Unregister("bob", "conn-2")

	assert.ElementsMatch(t, []string{"alice", "carol"}, r.Snapshot())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", n)
			r.Register(userID, "conn-a")
			r.Register(userID, "conn-b")
			r.Lookup(userID)
			r.Snapshot()
		}(i)
	}
	wg.Wait()

	assert.Len(t, r.Snapshot(), 50)
}
