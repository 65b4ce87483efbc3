package handlers

import (
	"net/http"

	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext extracts the authenticated user's ID from the JWT
// claims stored by the auth middleware. Returns 0 when unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// currentUser resolves the authenticated user record or fails with a 401
func currentUser(c echo.Context, users repositories.UserRepository) (*models.User, error) {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	user, err := users.GetUserByID(userID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}
	return user, nil
}
