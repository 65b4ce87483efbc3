package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/notify"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository   repositories.PostRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	notifier         *notify.Service
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, followRepo repositories.FollowRepository, notifier *notify.Service) *PostHandler {
	return &PostHandler{
		postRepository:   postRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		notifier:         notifier,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:post_id", h.GetPost)
	g.GET("/posts", h.GetAllPosts)
	g.GET("/users/:id/posts", h.GetPostsByUser)
	g.GET("/feed", h.GetFollowingFeed)
	g.PUT("/posts/:post_id", h.UpdatePost)
	g.DELETE("/posts/:post_id", h.DeletePost)
}

// CreatePost creates a new post. Tagged users each receive a postTag
// notification.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		AuthorID:      user.PublicID,
		Caption:       req.Caption,
		ImageURLs:     req.ImageURLs,
		VideoURLs:     req.VideoURLs,
		TaggedUserIDs: req.TaggedUserIDs,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for _, taggedID := range req.TaggedUserIDs {
		h.notifier.Dispatch(c.Request().Context(), &models.Notification{
			RecipientID: taggedID,
			SenderID:    user.PublicID,
			Kind:        models.NotificationPostTag,
			PostID:      &post.ID,
			Message:     user.Username + " tagged you in a post",
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post})
}

// GetPost retrieves a single post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("post_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}

// GetAllPosts retrieves all posts with pagination
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	skip, limit := paginationParams(c)
	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": posts})
}

// GetPostsByUser retrieves posts authored by the given user
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	skip, limit := paginationParams(c)
	posts, err := h.postRepository.GetPostsByAuthorID(c.Request().Context(), c.Param("id"), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": posts})
}

// GetFollowingFeed retrieves the newest posts of the users the authenticated
// user follows
func (h *PostHandler) GetFollowingFeed(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	authorIDs := make([]string, 0, len(followingIDs))
	for _, id := range followingIDs {
		followed, err := h.userRepository.GetUserByID(id)
		if err != nil {
			continue
		}
		authorIDs = append(authorIDs, followed.PublicID)
	}

	skip, limit := paginationParams(c)
	posts, err := h.postRepository.GetPostsByAuthorIDs(c.Request().Context(), authorIDs, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": posts})
}

// UpdatePost updates a post the authenticated user owns
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	postID := c.Param("post_id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != user.PublicID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to update this post")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Caption != "" {
		post.Caption = req.Caption
	}
	if req.ImageURLs != nil {
		post.ImageURLs = req.ImageURLs
	}
	if req.VideoURLs != nil {
		post.VideoURLs = req.VideoURLs
	}

	if err := h.postRepository.UpdatePost(c.Request().Context(), postID, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}

// DeletePost deletes a post the authenticated user owns
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	postID := c.Param("post_id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != user.PublicID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// paginationParams extracts skip/limit from page/limit query parameters
func paginationParams(c echo.Context) (int64, int64) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return int64((page - 1) * limit), int64(limit)
}
