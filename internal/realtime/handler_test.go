package realtime

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestServeRejectsUnauthenticatedHandshake(t *testing.T) {
	e := echo.New()
	hub := NewHub()
	h := NewWSHandler(hub, &stubUserRepo{})

	// An anonymous client naming another user's identity in the query
	// string must not be able to occupy that user's registry slot.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws?user_id=victim-user", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Serve(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

	_, found := hub.Lookup("victim-user")
	assert.False(t, found)
	assert.Empty(t, hub.Online())
}

func TestServeRejectsUnknownUser(t *testing.T) {
	e := echo.New()
	hub := NewHub()
	h := NewWSHandler(hub, &stubUserRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: 42})

	err := h.Serve(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	assert.Empty(t, hub.Online())
}
