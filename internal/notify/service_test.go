package notify

import (
	"context"
	"testing"

	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/realtime"
	"github.com/itgram/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore captures created notifications without a database.
type recordingStore struct {
	repositories.NotificationRepository
	created []*models.Notification
	failure error
}

func (s *recordingStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if s.failure != nil {
		return s.failure
	}
	if err := n.Validate(); err != nil {
		return err
	}
	s.created = append(s.created, n)
	return nil
}

// stubUsers resolves public IDs from a fixed set.
type stubUsers struct {
	repositories.UserRepository
	byPublicID map[string]*models.User
}

func (s *stubUsers) GetUserByPublicID(publicID string) (*models.User, error) {
	user, ok := s.byPublicID[publicID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

// recordingPusher captures pushed events.
type recordingPusher struct {
	pushes []pushedEvent
}

type pushedEvent struct {
	userID  string
	event   string
	payload interface{}
}

func (p *recordingPusher) Push(userID, event string, payload interface{}) {
	p.pushes = append(p.pushes, pushedEvent{userID: userID, event: event, payload: payload})
}

func newTestService(users map[string]*models.User) (*Service, *recordingStore, *recordingPusher) {
	store := &recordingStore{}
	pusher := &recordingPusher{}
	svc := NewService(store, &stubUsers{byPublicID: users}, pusher)
	return svc, store, pusher
}

func TestDispatchPersistsAndPushes(t *testing.T) {
	sender := &models.User{PublicID: "u-sender", Username: "maria"}
	svc, store, pusher := newTestService(map[string]*models.User{"u-sender": sender})

	svc.Dispatch(context.Background(), &models.Notification{
		RecipientID: "u-recipient",
		SenderID:    "u-sender",
		Kind:        models.NotificationLike,
		Message:     "maria liked your post",
	})

	require.Len(t, store.created, 1, "the durable record is written first")
	require.Len(t, pusher.pushes, 1)

	push := pusher.pushes[0]
	assert.Equal(t, "u-recipient", push.userID)
	assert.Equal(t, realtime.EventNotification, push.event)

	enriched, ok := push.payload.(models.EnrichedNotification)
	require.True(t, ok)
	assert.Equal(t, models.NotificationLike, enriched.Kind)
	assert.Equal(t, "maria", enriched.SenderDetails.Username)
}

func TestDispatchSuppressesSelfNotification(t *testing.T) {
	kinds := []string{models.NotificationLike, models.NotificationComment, models.NotificationFollow}
	for _, kind := range kinds {
		svc, store, pusher := newTestService(nil)

		svc.Dispatch(context.Background(), &models.Notification{
			RecipientID: "u-1",
			SenderID:    "u-1",
			Kind:        kind,
			Message:     "acted on own content",
		})

		assert.Emptyf(t, store.created, "self %s produces no record", kind)
		assert.Empty(t, pusher.pushes)
	}
}

func TestDispatchOfflineRecipientStillRecorded(t *testing.T) {
	// Real emitter over an empty hub: nobody is connected.
	store := &recordingStore{}
	emitter := realtime.NewEmitter(realtime.NewHub())
	svc := NewService(store, &stubUsers{}, emitter)

	svc.Dispatch(context.Background(), &models.Notification{
		RecipientID: "u-offline",
		SenderID:    "u-2",
		Kind:        models.NotificationComment,
		Message:     "commented on your post",
	})

	require.Len(t, store.created, 1, "the durable record does not depend on the recipient being online")
}

func TestDispatchSystemSenderIsNotSuppressed(t *testing.T) {
	svc, store, pusher := newTestService(nil)

	svc.Dispatch(context.Background(), &models.Notification{
		RecipientID: "u-1",
		SenderID:    models.SystemSender,
		Kind:        models.NotificationJobAccept,
		Message:     "your application was accepted",
	})

	require.Len(t, store.created, 1)
	require.Len(t, pusher.pushes, 1)

	enriched := pusher.pushes[0].payload.(models.EnrichedNotification)
	assert.Empty(t, enriched.SenderDetails.Username, "system sender has no profile to resolve")
}

func TestDispatchStoreFailureSkipsPush(t *testing.T) {
	svc, store, pusher := newTestService(nil)
	store.failure = assert.AnError

	svc.Dispatch(context.Background(), &models.Notification{
		RecipientID: "u-1",
		SenderID:    "u-2",
		Kind:        models.NotificationFollow,
		Message:     "started following you",
	})

	assert.Empty(t, pusher.pushes, "no live push without a durable record")
}

func TestDispatchInvalidKindIsSwallowed(t *testing.T) {
	svc, store, pusher := newTestService(nil)

	svc.Dispatch(context.Background(), &models.Notification{
		RecipientID: "u-1",
		SenderID:    "u-2",
		Kind:        "poke",
		Message:     "poked you",
	})

	assert.Empty(t, store.created)
	assert.Empty(t, pusher.pushes)
}

func TestDispatchUnknownSenderStillDelivers(t *testing.T) {
	svc, store, pusher := newTestService(nil)

	svc.Dispatch(context.Background(), &models.Notification{
		RecipientID: "u-1",
		SenderID:    "u-deleted",
		Kind:        models.NotificationMessage,
		Message:     "sent you a message",
	})

	require.Len(t, store.created, 1)
	require.Len(t, pusher.pushes, 1)

	enriched := pusher.pushes[0].payload.(models.EnrichedNotification)
	assert.Empty(t, enriched.SenderDetails.PublicID, "a missing sender degrades to an empty snippet")
}
