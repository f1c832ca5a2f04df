package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alliyn/alliyn-backend/internal/infrastructure/clock"
	"github.com/alliyn/alliyn-backend/internal/usecase/goals"
	"github.com/gin-gonic/gin"
)

type GoalsHandler struct {
	goalsUseCase *goals.GoalsUseCase
	clock        clock.Clock
	logger       *slog.Logger
}

func NewGoalsHandler(goalsUseCase *goals.GoalsUseCase, clk clock.Clock, logger *slog.Logger) *GoalsHandler {
	return &GoalsHandler{
		goalsUseCase: goalsUseCase,
		clock:        clk,
		logger:       logger,
	}
}

// GetGoals handles GET /goals
// @Summary Goals and points
// @Tags goals
// @Security BearerAuth
// @Produce json
// @Success 200 {object} goals.GoalsResponse
// @Router /goals [get]
func (h *GoalsHandler) GetGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	res, err := h.goalsUseCase.GetGoals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get goals")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetProgress handles GET /goals/:goal_id/progress
func (h *GoalsHandler) GetProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goalID := c.Param("goal_id")
	progress, err := h.goalsUseCase.GetProgress(c.Request.Context(), userID, goalID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get goal progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal_id": goalID, "progress": progress})
}

type achievementsQuery struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=2000,max=9999"`
}

// GetAchievements handles GET /achievements?month=&year=, defaulting to the
// current month.
func (h *GoalsHandler) GetAchievements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var q achievementsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid month or year"})
		return
	}
	now := h.clock.Now()
	month, year := now.Month(), now.Year()
	if q.Month != 0 {
		month = time.Month(q.Month)
	}
	if q.Year != 0 {
		year = q.Year
	}

	achievements, err := h.goalsUseCase.GetAchievementsByMonth(c.Request.Context(), userID, month, year)
	if err != nil {
		respondError(c, h.logger, err, "failed to get achievements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": int(month), "year": year, "achievements": achievements})
}
