package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubNotificationRepo struct {
	repositories.NotificationRepository
	notifications []models.Notification
	unread        int64
	readIDs       []string
	knownIDs      map[string]bool
	wrapNotFound  bool
}

func (s *stubNotificationRepo) GetByRecipientID(ctx context.Context, recipientID string, skip, limit int64) ([]models.Notification, int64, error) {
	return s.notifications, int64(len(s.notifications)), nil
}

func (s *stubNotificationRepo) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.unread, nil
}

func (s *stubNotificationRepo) MarkAsRead(ctx context.Context, id string) error {
	if !s.knownIDs[id] {
		if s.wrapNotFound {
			return fmt.Errorf("mark notification %s read: %w", id, repositories.ErrNotFound)
		}
		return repositories.ErrNotFound
	}
	s.readIDs = append(s.readIDs, id)
	return nil
}

type stubUserRepo struct {
	repositories.UserRepository
	user *models.User
}

func (s *stubUserRepo) GetUserByID(id uint) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, repositories.ErrNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) GetUserByPublicID(publicID string) (*models.User, error) {
	if s.user == nil || s.user.PublicID != publicID {
		return nil, repositories.ErrNotFound
	}
	return s.user, nil
}

type stubPostRepo struct {
	repositories.PostRepository
	posts map[string]*models.Post
}

func (s *stubPostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

type stubJobRepo struct {
	repositories.JobRepository
	jobs map[string]*models.Job
}

func (s *stubJobRepo) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	job, ok := s.jobs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return job, nil
}

func newNotificationTestHandler(notifRepo *stubNotificationRepo, userRepo *stubUserRepo, postRepo *stubPostRepo, jobRepo *stubJobRepo) *NotificationHandler {
	if postRepo == nil {
		postRepo = &stubPostRepo{}
	}
	if jobRepo == nil {
		jobRepo = &stubJobRepo{}
	}
	return NewNotificationHandler(notifRepo, userRepo, postRepo, jobRepo)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID uint) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: userID})
	return c
}

func TestGetUnreadCount(t *testing.T) {
	e := echo.New()
	user := &models.User{PublicID: "u-1", Username: "maria"}
	user.ID = 7
	notifRepo := &stubNotificationRepo{unread: 3}
	h := newNotificationTestHandler(notifRepo, &stubUserRepo{user: user}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/unread-count", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	require.NoError(t, h.GetUnreadCount(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unread_count":3`)
}

func TestGetMyNotificationsEnrichesSender(t *testing.T) {
	e := echo.New()
	user := &models.User{PublicID: "u-1", Username: "maria"}
	user.ID = 7
	notifRepo := &stubNotificationRepo{notifications: []models.Notification{
		{RecipientID: "u-1", SenderID: "u-1", Kind: models.NotificationFollow, Message: "started following you"},
	}}
	h := newNotificationTestHandler(notifRepo, &stubUserRepo{user: user}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	require.NoError(t, h.GetMyNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), `"username":"maria"`)
}

func TestGetMyNotificationsEnrichesSubjects(t *testing.T) {
	e := echo.New()
	user := &models.User{PublicID: "u-1", Username: "maria"}
	user.ID = 7

	postID := primitive.NewObjectID()
	jobID := primitive.NewObjectID()
	goneJobID := primitive.NewObjectID()
	notifRepo := &stubNotificationRepo{notifications: []models.Notification{
		{RecipientID: "u-1", SenderID: "u-2", Kind: models.NotificationLike, PostID: &postID},
		{RecipientID: "u-1", SenderID: "u-2", Kind: models.NotificationJobAccept, JobID: &jobID},
		{RecipientID: "u-1", SenderID: "u-2", Kind: models.NotificationJobReject, JobID: &goneJobID},
	}}
	postRepo := &stubPostRepo{posts: map[string]*models.Post{
		postID.Hex(): {ID: postID, AuthorID: "u-1", Caption: "sunset at the pier"},
	}}
	jobRepo := &stubJobRepo{jobs: map[string]*models.Job{
		jobID.Hex(): {ID: jobID, JobTitle: "Backend Engineer", CompanyName: "Acme"},
	}}
	h := newNotificationTestHandler(notifRepo, &stubUserRepo{user: user}, postRepo, jobRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	require.NoError(t, h.GetMyNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"caption":"sunset at the pier"`)
	assert.Contains(t, body, `"job_title":"Backend Engineer"`)
	// The notification referencing a deleted job still renders, without a summary
	assert.Contains(t, body, `"total":3`)
}

func TestMarkAsReadNotFound(t *testing.T) {
	e := echo.New()
	notifRepo := &stubNotificationRepo{knownIDs: map[string]bool{}}
	h := newNotificationTestHandler(notifRepo, &stubUserRepo{}, nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/notifications/abc/read", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)
	c.SetParamNames("id")
	c.SetParamValues("deadbeefdeadbeefdeadbeef")

	err := h.MarkAsRead(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestMarkAsReadWrappedNotFound(t *testing.T) {
	e := echo.New()
	// The repository may wrap the sentinel with context; the handler must
	// still map it to a 404, not a 500.
	notifRepo := &stubNotificationRepo{knownIDs: map[string]bool{}, wrapNotFound: true}
	h := newNotificationTestHandler(notifRepo, &stubUserRepo{}, nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/notifications/abc/read", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)
	c.SetParamNames("id")
	c.SetParamValues("deadbeefdeadbeefdeadbeef")

	err := h.MarkAsRead(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestMarkAsReadUnauthenticated(t *testing.T) {
	e := echo.New()
	h := newNotificationTestHandler(&stubNotificationRepo{}, &stubUserRepo{}, nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/notifications/abc/read", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.MarkAsRead(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
