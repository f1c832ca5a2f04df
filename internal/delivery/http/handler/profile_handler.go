package handler

import (
	"log/slog"
	"net/http"

	"github.com/alliyn/alliyn-backend/internal/usecase/account"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	accountUseCase *account.AccountUseCase
	logger         *slog.Logger
}

func NewProfileHandler(accountUseCase *account.AccountUseCase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Description Get current user's business profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.accountUseCase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile handles PUT /profile/me
// @Summary Update my profile
// @Description Replace current user's business profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body account.UpdateProfileRequest true "Profile data"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /profile/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req account.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.accountUseCase.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err, "failed to update profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Upgrade handles POST /account/upgrade
func (h *ProfileHandler) Upgrade(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.accountUseCase.UpgradeToPremium(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to upgrade account")
		return
	}
	c.JSON(http.StatusOK, user)
}

// ToggleStatus handles POST /account/toggle-status
func (h *ProfileHandler) ToggleStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.accountUseCase.ToggleStatus(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to change account status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_active": profile.IsActive})
}

func (h *ProfileHandler) Limits(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limits, err := h.accountUseCase.GetLimits(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get limits")
		return
	}
	c.JSON(http.StatusOK, limits)
}
