package handler

import (
	"log/slog"
	"net/http"

	"github.com/alliyn/alliyn-backend/internal/usecase/account"
	"github.com/alliyn/alliyn-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase    *auth.TokenAuthUseCase
	accountUseCase *account.AccountUseCase
	logger         *slog.Logger
}

func NewAuthHandler(authUseCase *auth.TokenAuthUseCase, accountUseCase *account.AccountUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase:    authUseCase,
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// AuthResponse is the response structure
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expires_at"`
	User      interface{} `json:"user"`
	IsNewUser bool        `json:"is_new_user"`
}

// TestAuth issues a token for an email, creating the user if needed (for development/testing only)
// @Summary Test authentication
// @Description Create or sign in a user by email without verification (dev only)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body account.CreateUserRequest true "Test user data"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/test [post]
func (h *AuthHandler) TestAuth(c *gin.Context) {
	var req account.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.authUseCase.AuthenticateTest(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "test auth failed")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Unix(),
		User:      result.User,
		IsNewUser: result.IsNewUser,
	})
}

// Me returns current user info
// @Summary Get current user
// @Description Get authenticated user with daily counters rolled over
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.accountUseCase.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get user")
		return
	}
	c.JSON(http.StatusOK, user)
}
