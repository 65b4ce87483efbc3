package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/itgram/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func runMiddleware(e *echo.Echo, req *http.Request) (echo.Context, error) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	next := func(c echo.Context) error { return nil }
	return c, JWTAuthMiddleware()(next)(c)
}

func TestJWTAuthMiddlewareBearerHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "test-secret", 7))

	c, err := runMiddleware(e, req)
	require.NoError(t, err)

	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	require.True(t, ok)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestJWTAuthMiddlewareQueryParamToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := echo.New()

	// Websocket handshakes cannot carry an Authorization header from a
	// browser; the token rides in the query string instead.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws?token="+signTestToken(t, "test-secret", 9), nil)

	c, err := runMiddleware(e, req)
	require.NoError(t, err)

	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	require.True(t, ok)
	assert.Equal(t, uint(9), claims.UserID)
}

func TestJWTAuthMiddlewareMissingToken(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)

	_, err := runMiddleware(e, req)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestJWTAuthMiddlewareBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws?token="+signTestToken(t, "wrong-secret", 7), nil)

	_, err := runMiddleware(e, req)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
