package handlers

import (
	"errors"
	"net/http"

	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// SavedPostHandler handles bookmark HTTP requests
type SavedPostHandler struct {
	savedPostRepository repositories.SavedPostRepository
	postRepository      repositories.PostRepository
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(savedPostRepo repositories.SavedPostRepository, postRepo repositories.PostRepository) *SavedPostHandler {
	return &SavedPostHandler{
		savedPostRepository: savedPostRepo,
		postRepository:      postRepo,
	}
}

// RegisterSavedPostRoutes registers bookmark routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/save", h.SavePost)
	g.DELETE("/posts/:post_id/save", h.UnsavePost)
	g.GET("/saved-posts", h.GetSavedPosts)
}

// SavePost bookmarks a post for the authenticated user
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("post_id")

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	saved, err := h.savedPostRepository.IsPostSaved(postID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if saved {
		return echo.NewHTTPError(http.StatusConflict, "Post already saved")
	}

	if err := h.savedPostRepository.SavePost(postID, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"saved": true}})
}

// UnsavePost removes a bookmark
func (h *SavedPostHandler) UnsavePost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.savedPostRepository.UnsavePost(c.Param("post_id"), userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Saved post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetSavedPosts returns the authenticated user's bookmarked posts
func (h *SavedPostHandler) GetSavedPosts(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ids, err := h.savedPostRepository.GetSavedPostIDs(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.GetPostsByIDs(c.Request().Context(), ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": posts})
}
