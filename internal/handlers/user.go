package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"

	"github.com/itgram/backend/internal/models"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers user profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMyProfile)
	g.PUT("/users/me", h.UpdateMyProfile)
	g.GET("/users/:id", h.GetUserProfile)
	g.GET("/users/suggested", h.GetSuggestedUsers)
}

// GetMyProfile returns the authenticated user's profile
func (h *UserHandler) GetMyProfile(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// UpdateMyProfile updates the authenticated user's profile
func (h *UserHandler) UpdateMyProfile(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.ProfilePictureURL != "" {
		user.ProfilePictureURL = req.ProfilePictureURL
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// GetUserProfile returns another user's public profile by their public ID
func (h *UserHandler) GetUserProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByPublicID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{
		"public_id":           user.PublicID,
		"username":            user.Username,
		"bio":                 user.Bio,
		"profile_picture_url": user.ProfilePictureURL,
		"followers_count":     user.FollowersCount,
		"following_count":     user.FollowingCount,
	}})
}

// SearchUsers searches users by username or email
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(users))
	for i, u := range users {
		results[i] = u.ToCompact()
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": results})
}

// GetSuggestedUsers returns users the authenticated user might want to follow
func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.userRepository.SuggestedUsers(userID, 10)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(users))
	for i, u := range users {
		results[i] = u.ToCompact()
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": results})
}
