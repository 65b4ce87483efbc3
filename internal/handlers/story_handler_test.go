package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/notify"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubStoryRepo struct {
	repositories.StoryRepository
	story    *models.Story
	likedBy  []string
	comments []models.StoryComment
}

func (s *stubStoryRepo) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	if s.story == nil || s.story.ID.Hex() != id {
		return nil, repositories.ErrNotFound
	}
	return s.story, nil
}

func (s *stubStoryRepo) LikeStory(ctx context.Context, storyID, userID string) error {
	s.likedBy = append(s.likedBy, userID)
	return nil
}

func (s *stubStoryRepo) AddStoryComment(ctx context.Context, storyID string, comment models.StoryComment) error {
	s.comments = append(s.comments, comment)
	return nil
}

type recordingNotificationRepo struct {
	repositories.NotificationRepository
	created []*models.Notification
}

func (r *recordingNotificationRepo) CreateNotification(ctx context.Context, n *models.Notification) error {
	r.created = append(r.created, n)
	return nil
}

type discardPusher struct{}

func (discardPusher) Push(userID, event string, payload interface{}) {}

func newStoryTestHandler(storyRepo *stubStoryRepo, userRepo *stubUserRepo, notifRepo *recordingNotificationRepo) *StoryHandler {
	notifier := notify.NewService(notifRepo, userRepo, discardPusher{})
	return NewStoryHandler(storyRepo, userRepo, &stubFollowRepo{}, notifier)
}

type stubFollowRepo struct {
	repositories.FollowRepository
}

func TestLikeStoryNotifiesAuthor(t *testing.T) {
	e := echo.New()
	actor := &models.User{PublicID: "u-2", Username: "diego"}
	actor.ID = 7
	story := &models.Story{ID: primitive.NewObjectID(), AuthorID: "u-1"}
	storyRepo := &stubStoryRepo{story: story}
	notifRepo := &recordingNotificationRepo{}
	h := newStoryTestHandler(storyRepo, &stubUserRepo{user: actor}, notifRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stories/"+story.ID.Hex()+"/likes", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)
	c.SetParamNames("id")
	c.SetParamValues(story.ID.Hex())

	require.NoError(t, h.LikeStory(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"u-2"}, storyRepo.likedBy)

	require.Len(t, notifRepo.created, 1)
	n := notifRepo.created[0]
	assert.Equal(t, "u-1", n.RecipientID)
	assert.Equal(t, "u-2", n.SenderID)
	assert.Equal(t, models.NotificationLike, n.Kind)
	require.NotNil(t, n.StoryID)
	assert.Equal(t, story.ID, *n.StoryID)
}

func TestLikeOwnStoryStaysQuiet(t *testing.T) {
	e := echo.New()
	author := &models.User{PublicID: "u-1", Username: "maria"}
	author.ID = 7
	story := &models.Story{ID: primitive.NewObjectID(), AuthorID: "u-1"}
	storyRepo := &stubStoryRepo{story: story}
	notifRepo := &recordingNotificationRepo{}
	h := newStoryTestHandler(storyRepo, &stubUserRepo{user: author}, notifRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stories/"+story.ID.Hex()+"/likes", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)
	c.SetParamNames("id")
	c.SetParamValues(story.ID.Hex())

	require.NoError(t, h.LikeStory(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, notifRepo.created)
}

func TestReplyToStoryPersistsComment(t *testing.T) {
	e := echo.New()
	actor := &models.User{PublicID: "u-2", Username: "diego"}
	actor.ID = 7
	story := &models.Story{ID: primitive.NewObjectID(), AuthorID: "u-1"}
	storyRepo := &stubStoryRepo{story: story}
	notifRepo := &recordingNotificationRepo{}
	h := newStoryTestHandler(storyRepo, &stubUserRepo{user: actor}, notifRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stories/"+story.ID.Hex()+"/reply",
		strings.NewReader(`{"text":"nice shot"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)
	c.SetParamNames("id")
	c.SetParamValues(story.ID.Hex())

	require.NoError(t, h.ReplyToStory(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, storyRepo.comments, 1)
	assert.Equal(t, "u-2", storyRepo.comments[0].UserID)
	assert.Equal(t, "nice shot", storyRepo.comments[0].Text)
	assert.False(t, storyRepo.comments[0].CreatedAt.IsZero())

	require.Len(t, notifRepo.created, 1)
	n := notifRepo.created[0]
	assert.Equal(t, "u-1", n.RecipientID)
	assert.Equal(t, models.NotificationStoryReply, n.Kind)
	require.NotNil(t, n.StoryID)
	assert.Equal(t, story.ID, *n.StoryID)
	assert.Contains(t, n.Message, "nice shot")
}

func TestReplyToStoryMissingStory(t *testing.T) {
	e := echo.New()
	actor := &models.User{PublicID: "u-2", Username: "diego"}
	actor.ID = 7
	h := newStoryTestHandler(&stubStoryRepo{}, &stubUserRepo{user: actor}, &recordingNotificationRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stories/deadbeefdeadbeefdeadbeef/reply",
		strings.NewReader(`{"text":"hello"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)
	c.SetParamNames("id")
	c.SetParamValues("deadbeefdeadbeefdeadbeef")

	err := h.ReplyToStory(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
