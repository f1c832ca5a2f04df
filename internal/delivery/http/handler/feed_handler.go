package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alliyn/alliyn-backend/internal/usecase/feed"
	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
	logger      *slog.Logger
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
		logger:      logger,
	}
}

// GetNextProfile handles GET /feed/next
// @Summary Next candidate
// @Description First profile the user has neither swiped nor matched, with its compatibility
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Success 200 {object} feed.FeedProfile
// @Failure 404 {object} ErrorResponse
// @Router /feed/next [get]
func (h *FeedHandler) GetNextProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	next, err := h.feedUseCase.GetNextProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get next profile")
		return
	}
	c.JSON(http.StatusOK, next)
}

// GetCandidates handles GET /feed/candidates?limit=
func (h *FeedHandler) GetCandidates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 100 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be between 0 and 100"})
			return
		}
		limit = n
	}

	candidates, err := h.feedUseCase.GetCandidates(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, h.logger, err, "failed to get candidates")
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// ResetHistory handles POST /feed/reset
func (h *FeedHandler) ResetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	res, err := h.feedUseCase.ResetHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to reset swipe history")
		return
	}
	c.JSON(http.StatusOK, res)
}
