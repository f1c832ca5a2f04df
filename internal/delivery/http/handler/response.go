package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alliyn/alliyn-backend/internal/delivery/http/middleware"
	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrProfileNotFound, http.StatusNotFound},
	{domain.ErrConversationNotFound, http.StatusNotFound},
	{domain.ErrGoalNotFound, http.StatusNotFound},
	{domain.ErrDealNotFound, http.StatusNotFound},
	{domain.ErrMatchNotFound, http.StatusNotFound},
	{domain.ErrProductNotFound, http.StatusNotFound},
	{domain.ErrNoCandidates, http.StatusNotFound},
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrCannotSwipeSelf, http.StatusBadRequest},
	{domain.ErrProfileRequired, http.StatusConflict},
	{domain.ErrThemeAlreadyUnlocked, http.StatusConflict},
	{domain.ErrNotMatched, http.StatusForbidden},
	{domain.ErrThemeLocked, http.StatusForbidden},
	{domain.ErrPremiumRequired, http.StatusForbidden},
	{domain.ErrInsufficientCoins, http.StatusPaymentRequired},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
}

func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the status mapped from err. Unmapped errors are
// logged and hidden behind message.
func respondError(c *gin.Context, logger *slog.Logger, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(message, "path", c.FullPath(), "error", err)
		c.JSON(status, ErrorResponse{Error: message})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
}

func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	return id, true
}
