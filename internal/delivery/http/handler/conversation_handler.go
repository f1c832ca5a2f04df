package handler

import (
	"log/slog"
	"net/http"

	"github.com/alliyn/alliyn-backend/internal/usecase/messaging"
	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	messagingUseCase *messaging.MessagingUseCase
	logger           *slog.Logger
}

func NewConversationHandler(messagingUseCase *messaging.MessagingUseCase, logger *slog.Logger) *ConversationHandler {
	return &ConversationHandler{
		messagingUseCase: messagingUseCase,
		logger:           logger,
	}
}

// GetConversations handles GET /conversations
func (h *ConversationHandler) GetConversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	inbox, err := h.messagingUseCase.GetConversations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get conversations")
		return
	}
	c.JSON(http.StatusOK, inbox)
}

// GetConversation handles GET /conversations/:id
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conv, err := h.messagingUseCase.GetConversation(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "failed to get conversation")
		return
	}
	c.JSON(http.StatusOK, conv)
}

// SendMessage handles POST /conversations/:id/messages
// @Summary Send a message
// @Description Appends the message and schedules the counterpart's reply
// @Tags conversations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body messaging.SendMessageRequest true "Message"
// @Success 201 {object} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /conversations/{id}/messages [post]
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req messaging.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	msg, err := h.messagingUseCase.SendMessage(c.Request.Context(), userID, c.Param("id"), req.Message)
	if err != nil {
		respondError(c, h.logger, err, "failed to send message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *ConversationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.messagingUseCase.MarkAsRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.logger, err, "failed to mark conversation as read")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "conversation marked as read"})
}

func (h *ConversationHandler) MarkMatchesAsViewed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.messagingUseCase.MarkMatchesAsViewed(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err, "failed to mark matches as viewed")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "matches marked as viewed"})
}
