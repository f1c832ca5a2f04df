package handler

import (
	"log/slog"
	"net/http"

	"github.com/alliyn/alliyn-backend/internal/usecase/notification"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUseCase *notification.NotificationUseCase
	logger              *slog.Logger
}

func NewNotificationHandler(notificationUseCase *notification.NotificationUseCase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		logger:              logger,
	}
}

// GetNotifications handles GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	feed, err := h.notificationUseCase.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get notifications")
		return
	}
	c.JSON(http.StatusOK, feed)
}

// MarkAllRead handles POST /notifications/read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.notificationUseCase.MarkAllRead(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err, "failed to mark notifications as read")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "notifications marked as read"})
}
