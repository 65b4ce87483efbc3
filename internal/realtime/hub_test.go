package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession records everything sent to it, in order. Send is safe for
// concurrent use, like the real channel-backed session.
type fakeSession struct {
	id string

	mu     sync.Mutex
	events []Event
	closed bool
	full   bool
}

func newFakeSession(id string) *fakeSession {
	return &fakeSession{id: id}
}

func (s *fakeSession) ID() string { return s.id }

func (s *fakeSession) Send(evt Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.full {
		return false
	}
	s.events = append(s.events, evt)
	return true
}

func (s *fakeSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// lastEvent returns the most recently sent event.
func (s *fakeSession) lastEvent() Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[len(s.events)-1]
}

func (s *fakeSession) eventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// lastPresence returns the user set carried by the most recent onlineUsers
// event, or nil if none arrived.
func (s *fakeSession) lastPresence() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].Name == EventOnlineUsers {
			return s.events[i].Payload.([]string)
		}
	}
	return nil
}

func TestHubAttachBroadcastsPresence(t *testing.T) {
	h := NewHub()
	alice := newFakeSession("conn-1")
	bob := newFakeSession("conn-2")

	h.Attach("alice", alice)
	h.Attach("bob", bob)

	assert.ElementsMatch(t, []string{"alice", "bob"}, h.Online())

	// Both sessions saw the final snapshot containing both users
	require.NotNil(t, alice.lastPresence())
	assert.ElementsMatch(t, []string{"alice", "bob"}, alice.lastPresence())
	assert.ElementsMatch(t, []string{"alice", "bob"}, bob.lastPresence())
}

func TestHubDetachBroadcastsPresence(t *testing.T) {
	h := NewHub()
	alice := newFakeSession("conn-1")
	bob := newFakeSession("conn-2")

	h.Attach("alice", alice)
	h.Attach("bob", bob)
	h.Detach("alice", "conn-1")

	assert.ElementsMatch(t, []string{"bob"}, h.Online())
	assert.ElementsMatch(t, []string{"bob"}, bob.lastPresence())

	_, ok := h.Lookup("alice")
	assert.False(t, ok)
}

func TestHubStaleDetachKeepsNewerSession(t *testing.T) {
	h := NewHub()
	old := newFakeSession("conn-1")
	fresh := newFakeSession("conn-2")

	h.Attach("alice", old)
	h.Attach("alice", fresh)

	// The superseded connection's disconnect arrives after the reconnect
	h.Detach("alice", "conn-1")

	connID, ok := h.Lookup("alice")
	require.True(t, ok, "user must stay online through a reconnect race")
	assert.Equal(t, "conn-2", connID)
	assert.ElementsMatch(t, []string{"alice"}, h.Online())

	// No presence broadcast fired for the no-op unregister: the last
	// snapshot the fresh session saw still contains alice.
	assert.ElementsMatch(t, []string{"alice"}, fresh.lastPresence())
}

func TestHubSend(t *testing.T) {
	h := NewHub()
	alice := newFakeSession("conn-1")
	h.Attach("alice", alice)

	evt := NewEvent(EventNotification, "hello")
	assert.True(t, h.Send("conn-1", evt))
	assert.Equal(t, evt, alice.lastEvent())

	assert.False(t, h.Send("conn-unknown", evt), "unknown connection is reported, not an error")
}

func TestHubConcurrentAttachPresence(t *testing.T) {
	h := NewHub()

	const n = 20
	var wg sync.WaitGroup
	want := make([]string, 0, n)
	for i := 0; i < n; i++ {
		userID := fmt.Sprintf("user-%d", i)
		want = append(want, userID)
		wg.Add(1)
		go func(userID string, i int) {
			defer wg.Done()
			h.Attach(userID, newFakeSession(fmt.Sprintf("conn-%d", i)))
		}(userID, i)
	}
	wg.Wait()

	assert.ElementsMatch(t, want, h.Online(), "snapshot holds exactly the attached identities regardless of arrival order")
}

func TestHubSendFullBuffer(t *testing.T) {
	h := NewHub()
	slow := newFakeSession("conn-1")
	h.Attach("alice", slow)
	slow.full = true

	assert.False(t, h.Send("conn-1", NewEvent(EventNotification, "dropped")))
}
