package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/notify"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyRepository  repositories.StoryRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	notifier         *notify.Service
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyRepo repositories.StoryRepository, userRepo repositories.UserRepository, followRepo repositories.FollowRepository, notifier *notify.Service) *StoryHandler {
	return &StoryHandler{
		storyRepository:  storyRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		notifier:         notifier,
	}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.GET("/stories/feed", h.GetStoriesFeed)
	g.POST("/stories/:id/likes", h.LikeStory)
	g.DELETE("/stories/:id/likes", h.UnlikeStory)
	g.POST("/stories/:id/reply", h.ReplyToStory)
	g.POST("/stories/:id/seen", h.MarkStorySeen)
	g.DELETE("/stories/:id", h.DeleteStory)
}

// CreateStory creates a new story that expires after 24 hours
func (h *StoryHandler) CreateStory(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story := &models.Story{
		AuthorID:  user.PublicID,
		Caption:   req.Caption,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
	}

	if err := h.storyRepository.CreateStory(c.Request().Context(), story); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": story})
}

// GetStoriesFeed returns the active stories of the users the authenticated
// user follows, plus their own
func (h *StoryHandler) GetStoriesFeed(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	authorIDs := []string{user.PublicID}
	for _, id := range followingIDs {
		followed, err := h.userRepository.GetUserByID(id)
		if err != nil {
			continue
		}
		authorIDs = append(authorIDs, followed.PublicID)
	}

	stories, err := h.storyRepository.GetActiveStoriesByAuthorIDs(c.Request().Context(), authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	seenIDs, err := h.storyRepository.GetSeenStoryIDs(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{
		"stories":  stories,
		"seen_ids": seenIDs,
	}})
}

// LikeStory adds the user to the story's like set and notifies its author
func (h *StoryHandler) LikeStory(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	story, err := h.storyRepository.GetStoryByID(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}

	if err := h.storyRepository.LikeStory(ctx, story.ID.Hex(), user.PublicID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Story not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifier.Dispatch(ctx, &models.Notification{
		RecipientID: story.AuthorID,
		SenderID:    user.PublicID,
		Kind:        models.NotificationLike,
		StoryID:     &story.ID,
		Message:     user.Username + " liked your story",
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"liked": true}})
}

// UnlikeStory removes the user from the story's like set
func (h *StoryHandler) UnlikeStory(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	if err := h.storyRepository.UnlikeStory(c.Request().Context(), c.Param("id"), user.PublicID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Story not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"liked": false}})
}

// ReplyToStory records a reply on the story document and notifies its author
func (h *StoryHandler) ReplyToStory(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.ReplyToStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	story, err := h.storyRepository.GetStoryByID(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}

	comment := models.StoryComment{
		UserID:    user.PublicID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}
	if err := h.storyRepository.AddStoryComment(ctx, story.ID.Hex(), comment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Story not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifier.Dispatch(ctx, &models.Notification{
		RecipientID: story.AuthorID,
		SenderID:    user.PublicID,
		Kind:        models.NotificationStoryReply,
		StoryID:     &story.ID,
		Message:     user.Username + " replied to your story: " + req.Text,
	})

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": comment})
}

// MarkStorySeen records that the authenticated user viewed a story
func (h *StoryHandler) MarkStorySeen(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	storyID := c.Param("id")
	if _, err := h.storyRepository.GetStoryByID(c.Request().Context(), storyID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}

	if err := h.storyRepository.MarkStorySeen(storyID, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"seen": true}})
}

// DeleteStory deletes a story the authenticated user owns
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	storyID := c.Param("id")
	story, err := h.storyRepository.GetStoryByID(c.Request().Context(), storyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}
	if story.AuthorID != user.PublicID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to delete this story")
	}

	if err := h.storyRepository.DeleteStory(c.Request().Context(), storyID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
