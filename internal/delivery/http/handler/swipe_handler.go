package handler

import (
	"log/slog"
	"net/http"

	"github.com/alliyn/alliyn-backend/internal/usecase/swipe"
	"github.com/gin-gonic/gin"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
	logger       *slog.Logger
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase, logger *slog.Logger) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
		logger:       logger,
	}
}

func outcomeStatus(o swipe.Outcome) int {
	switch o {
	case swipe.OutcomeSwipeLimitReached, swipe.OutcomeMatchLimitReached:
		return http.StatusTooManyRequests
	case swipe.OutcomeAlreadySwiped, swipe.OutcomeAlreadyMatched:
		return http.StatusConflict
	case swipe.OutcomePremiumRequired:
		return http.StatusForbidden
	}
	return http.StatusOK
}

// CreateSwipe handles POST /swipe
// @Summary Swipe on a profile
// @Description Records a left or right swipe; right swipes create a match
// @Tags swipe
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body swipe.SwipeRequest true "Swipe"
// @Success 200 {object} swipe.SwipeResult
// @Failure 409 {object} swipe.SwipeResult
// @Failure 429 {object} swipe.SwipeResult
// @Router /swipe [post]
func (h *SwipeHandler) CreateSwipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req swipe.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.swipeUseCase.Swipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err, "failed to swipe")
		return
	}
	c.JSON(outcomeStatus(result.Outcome), result)
}

// GetMatches handles GET /matches
func (h *SwipeHandler) GetMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matches, err := h.swipeUseCase.GetMatches(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get matches")
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "total": len(matches)})
}

// AutoMatch handles POST /matches/auto. Premium only.
func (h *SwipeHandler) AutoMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.swipeUseCase.AutoMatch(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to auto-match")
		return
	}
	c.JSON(outcomeStatus(result.Outcome), result)
}
