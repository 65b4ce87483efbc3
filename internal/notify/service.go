// Package notify wires the durable notification store to the live event
// emitter. Every action handler that produces a side effect visible to
// another user dispatches through this service: the durable record is the
// system of record, the live push is best-effort on top.
package notify

import (
	"context"
	"log"

	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/realtime"
	"github.com/itgram/backend/internal/repositories"
)

// Service persists notification records and pushes live copies to connected
// recipients.
type Service struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	pusher        realtime.Pusher
}

// NewService creates a new notification dispatch service
func NewService(notifications repositories.NotificationRepository, users repositories.UserRepository, pusher realtime.Pusher) *Service {
	return &Service{
		notifications: notifications,
		users:         users,
		pusher:        pusher,
	}
}

// Dispatch persists the notification and, when the recipient is connected,
// pushes an enriched copy as a "notification" event.
//
// Self-notifications (sender == recipient) are suppressed here rather than in
// each action handler, so the invariant cannot be forgotten by a new handler.
// Failures are logged and swallowed: notification delivery is auxiliary and
// must never fail the primary action.
func (s *Service) Dispatch(ctx context.Context, n *models.Notification) {
	if n.SenderID != "" && n.SenderID == n.RecipientID {
		return
	}

	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		log.Printf("Failed to create %s notification for user %s: %v", n.Kind, n.RecipientID, err)
		return
	}

	s.pusher.Push(n.RecipientID, realtime.EventNotification, s.enrich(n))
}

// enrich attaches the denormalized sender snippet so the client need not
// re-fetch the sender's profile.
func (s *Service) enrich(n *models.Notification) models.EnrichedNotification {
	enriched := models.EnrichedNotification{Notification: *n}
	if n.SenderID == "" || n.SenderID == models.SystemSender {
		return enriched
	}

	sender, err := s.users.GetUserByPublicID(n.SenderID)
	if err != nil {
		log.Printf("Failed to resolve sender %s for live notification: %v", n.SenderID, err)
		return enriched
	}
	enriched.SenderDetails = sender.ToCompact()
	return enriched
}
