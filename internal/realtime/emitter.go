package realtime

// Pusher delivers a payload to a user's live connection if one exists.
// Callers persist the durable record themselves before pushing; the push is
// an optimization, never the system of record.
type Pusher interface {
	Push(userID, event string, payload interface{})
}

// Emitter implements Pusher over an in-process hub.
type Emitter struct {
	hub *Hub
}

// NewEmitter creates an emitter bound to the given hub
func NewEmitter(hub *Hub) *Emitter {
	return &Emitter{hub: hub}
}

// Push looks up the recipient's connection and sends the payload tagged with
// the event name. When the recipient is offline it returns immediately: no
// error, no queueing, no retry. Delivery is not acknowledged; a dead but
// unreaped transport is indistinguishable from a successful send and is
// cleaned up once the transport layer detects the drop.
func (e *Emitter) Push(userID, event string, payload interface{}) {
	connID, ok := e.hub.Lookup(userID)
	if !ok {
		return
	}
	e.hub.Send(connID, NewEvent(event, payload))
}
