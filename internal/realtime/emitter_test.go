package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterPushDeliversToConnectedUser(t *testing.T) {
	h := NewHub()
	alice := newFakeSession("conn-1")
	h.Attach("alice", alice)

	e := NewEmitter(h)
	e.Push("alice", EventNewMessage, map[string]string{"text": "hi"})

	last := alice.lastEvent()
	assert.Equal(t, EventNewMessage, last.Name)
	assert.Equal(t, map[string]string{"text": "hi"}, last.Payload)
	assert.False(t, last.Timestamp.IsZero())
}

func TestEmitterPushToOfflineUserIsSilent(t *testing.T) {
	h := NewHub()
	e := NewEmitter(h)

	// Must return without blocking, panicking, or queueing
	e.Push("nobody", EventNotification, "unseen")
	assert.Empty(t, h.Online())
}

func TestEmitterPushAfterReconnectTargetsNewConnection(t *testing.T) {
	h := NewHub()
	old := newFakeSession("conn-1")
	fresh := newFakeSession("conn-2")
	h.Attach("alice", old)
	h.Attach("alice", fresh)

	sentBefore := old.eventCount()

	e := NewEmitter(h)
	e.Push("alice", EventNotification, "for the new socket")

	require.NotZero(t, fresh.eventCount())
	assert.Equal(t, "for the new socket", fresh.lastEvent().Payload)
	assert.Equal(t, sentBefore, old.eventCount(), "superseded connection receives nothing")
}
