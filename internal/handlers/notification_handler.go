package handlers

import (
	"errors"
	"net/http"

	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	postRepository         repositories.PostRepository
	jobRepository          repositories.JobRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository, postRepo repositories.PostRepository, jobRepo repositories.JobRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notificationRepo,
		userRepository:         userRepo,
		postRepository:         postRepo,
		jobRepository:          jobRepo,
	}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetMyNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.DELETE("/notifications/:id", h.DeleteNotification)
}

// GetMyNotifications returns the authenticated user's notifications newest
// first, with sender details and post/job snippets resolved for display
func (h *NotificationHandler) GetMyNotifications(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	skip, limit := paginationParams(c)
	notifications, total, err := h.notificationRepository.GetByRecipientID(ctx, user.PublicID, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Sender snippets and subject summaries are resolved at read time so
	// stale usernames, captions, and titles never get served from the
	// notification document. A deleted subject degrades to a nil summary.
	senders := make(map[string]models.UserCompact)
	posts := make(map[string]*models.Post)
	jobs := make(map[string]*models.JobCompact)
	enriched := make([]models.EnrichedNotification, 0, len(notifications))
	for _, n := range notifications {
		e := models.EnrichedNotification{Notification: n}
		if n.SenderID != "" && n.SenderID != models.SystemSender {
			details, ok := senders[n.SenderID]
			if !ok {
				if sender, err := h.userRepository.GetUserByPublicID(n.SenderID); err == nil {
					details = sender.ToCompact()
				}
				senders[n.SenderID] = details
			}
			e.SenderDetails = details
		}
		if n.PostID != nil {
			id := n.PostID.Hex()
			summary, ok := posts[id]
			if !ok {
				summary, _ = h.postRepository.GetPostByID(ctx, id)
				posts[id] = summary
			}
			e.PostSummary = summary
		}
		if n.JobID != nil {
			id := n.JobID.Hex()
			summary, ok := jobs[id]
			if !ok {
				if job, err := h.jobRepository.GetJobByID(ctx, id); err == nil {
					compact := job.ToCompact()
					summary = &compact
				}
				jobs[id] = summary
			}
			e.JobSummary = summary
		}
		enriched = append(enriched, e)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{
		"notifications": enriched,
		"total":         total,
	}})
}

// GetUnreadCount returns the number of unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	count, err := h.notificationRepository.GetUnreadCount(c.Request().Context(), user.PublicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"unread_count": count}})
}

// MarkAsRead marks a single notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	if getUserIDFromContext(c) == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.notificationRepository.MarkAsRead(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"read": true}})
}

// MarkAllAsRead marks every unread notification of the authenticated user as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), user.PublicID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"read": true}})
}

// DeleteNotification deletes a notification by ID
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	if getUserIDFromContext(c) == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.notificationRepository.DeleteNotification(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
