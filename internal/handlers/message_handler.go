package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/notify"
	"github.com/itgram/backend/internal/realtime"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct messaging HTTP requests
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
	notifier          *notify.Service
	pusher            realtime.Pusher
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, notifier *notify.Service, pusher realtime.Pusher) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
		notifier:          notifier,
		pusher:            pusher,
	}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages/:userId", h.SendMessage)
	g.GET("/messages/:userId", h.GetMessages)
	g.DELETE("/messages/:id", h.DeleteMessage)
}

// SendMessage sends a direct message to another user. The message is stored
// first; the live "newMessage" event and the notification record ride on top.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	sender, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	receiver, err := h.userRepository.GetUserByPublicID(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if receiver.PublicID == sender.PublicID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot message yourself")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	conversation, err := h.messageRepository.FindOrCreateConversation(ctx, sender.PublicID, receiver.PublicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := &models.Message{
		SenderID:   sender.PublicID,
		ReceiverID: receiver.PublicID,
		Text:       req.Text,
	}
	if err := h.messageRepository.CreateMessage(ctx, conversation.ID, message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Deliver the message itself to the receiver's open connection, then
	// record the notification. Neither can fail the send.
	h.pusher.Push(receiver.PublicID, realtime.EventNewMessage, message)
	h.notifier.Dispatch(ctx, &models.Notification{
		RecipientID: receiver.PublicID,
		SenderID:    sender.PublicID,
		Kind:        models.NotificationMessage,
		Message:     sender.Username + " sent you a message",
	})

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": message})
}

// GetMessages returns the message history with another user, oldest first
func (h *MessageHandler) GetMessages(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	other, err := h.userRepository.GetUserByPublicID(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	messages, err := h.messageRepository.GetConversationMessages(c.Request().Context(), user.PublicID, other.PublicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": messages})
}

// DeleteMessage deletes a message the authenticated user sent
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	if getUserIDFromContext(c) == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.messageRepository.DeleteMessage(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Message not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
