package handlers

import (
	"net/http"

	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AdminHandler handles administrative HTTP requests
type AdminHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
	jobRepository  repositories.JobRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, jobRepo repositories.JobRepository) *AdminHandler {
	return &AdminHandler{
		userRepository: userRepo,
		postRepository: postRepo,
		jobRepository:  jobRepo,
	}
}

// RegisterAdminRoutes registers admin-only routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/admin/stats", h.GetStats)
}

// GetStats returns platform-wide counters for the admin dashboard
func (h *AdminHandler) GetStats(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	}

	ctx := c.Request().Context()
	userCount, err := h.userRepository.CountUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	postCount, err := h.postRepository.CountPosts(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	jobCount, err := h.jobRepository.CountJobs(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	applicationCount, err := h.jobRepository.CountApplications(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{
		"users":        userCount,
		"posts":        postCount,
		"jobs":         jobCount,
		"applications": applicationCount,
	}})
}
