package handlers

import (
	"errors"
	"net/http"

	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/notify"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	notifier         *notify.Service
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifier *notify.Service) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		notifier:         notifier,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser follows a user identified by their public ID
func (h *FollowHandler) FollowUser(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	target, err := h.userRepository.GetUserByPublicID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if user.ID == target.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	// Check if already following
	isFollowing, err := h.followRepository.IsFollowing(user.ID, target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if isFollowing {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	follow := &models.Follow{
		FollowerID:  user.ID,
		FollowingID: target.ID,
	}

	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Update counts
	h.userRepository.IncrementFollowingCount(user.ID)
	h.userRepository.IncrementFollowersCount(target.ID)

	h.notifier.Dispatch(c.Request().Context(), &models.Notification{
		RecipientID: target.PublicID,
		SenderID:    user.PublicID,
		Kind:        models.NotificationFollow,
		Message:     user.Username + " started following you",
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser unfollows a user identified by their public ID
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	target, err := h.userRepository.GetUserByPublicID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if err := h.followRepository.DeleteFollow(user.ID, target.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Update counts
	h.userRepository.DecrementFollowingCount(user.ID)
	h.userRepository.DecrementFollowersCount(target.ID)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}
