package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	sendBufferSize = 32
)

// wsSession adapts a gorilla websocket connection to the hub's Session
// interface. Writes go through a buffered channel drained by a single
// writer goroutine; when the buffer is full the event is dropped so a slow
// or hung peer can never block an action handler.
type wsSession struct {
	id   string
	conn *websocket.Conn

	send      chan Event
	closeOnce sync.Once
	done      chan struct{}
}

func newWSSession(id string, conn *websocket.Conn) *wsSession {
	return &wsSession{
		id:   id,
		conn: conn,
		send: make(chan Event, sendBufferSize),
		done: make(chan struct{}),
	}
}

func (s *wsSession) ID() string {
	return s.id
}

// Send queues an event for delivery. Non-blocking: returns false when the
// session is closed or its buffer is full.
func (s *wsSession) Send(evt Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- evt:
		return true
	default:
		// Drop rather than block the publisher.
		return false
	}
}

// Close shuts the session down. Safe to call more than once.
func (s *wsSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// writePump serializes all writes to the connection: queued events plus
// periodic pings. It exits when the session closes.
func (s *wsSession) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case evt := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			data, err := json.Marshal(evt)
			if err != nil {
				log.Printf("Failed to marshal %q event: %v", evt.Name, err)
				continue
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}
