package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alliyn/alliyn-backend/internal/usecase/deals"
	"github.com/gin-gonic/gin"
)

type DealsHandler struct {
	dealsUseCase *deals.DealsUseCase
	logger       *slog.Logger
}

func NewDealsHandler(dealsUseCase *deals.DealsUseCase, logger *slog.Logger) *DealsHandler {
	return &DealsHandler{
		dealsUseCase: dealsUseCase,
		logger:       logger,
	}
}

// ListDeals handles GET /deals
func (h *DealsHandler) ListDeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	res, err := h.dealsUseCase.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get deals")
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateDeal handles POST /deals
// @Summary Record a deal
// @Tags deals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body deals.CreateDealRequest true "Deal"
// @Success 201 {object} domain.Deal
// @Failure 400 {object} ErrorResponse
// @Router /deals [post]
func (h *DealsHandler) CreateDeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req deals.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	deal, err := h.dealsUseCase.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err, "failed to create deal")
		return
	}
	c.JSON(http.StatusCreated, deal)
}

// UpdateDeal handles PATCH /deals/:id
func (h *DealsHandler) UpdateDeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req deals.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	deal, err := h.dealsUseCase.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err, "failed to update deal")
		return
	}
	c.JSON(http.StatusOK, deal)
}

// Leaderboard handles GET /deals/leaderboard?limit=
func (h *DealsHandler) Leaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		return
	}

	entries, err := h.dealsUseCase.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err, "failed to build leaderboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
