package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/usecase/wallet"
	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletUseCase *wallet.WalletUseCase
	logger        *slog.Logger
}

func NewWalletHandler(walletUseCase *wallet.WalletUseCase, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
		logger:        logger,
	}
}

// GetWallet handles GET /wallet
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	w, err := h.walletUseCase.GetWallet(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get wallet")
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WalletHandler) Deposit(c *gin.Context) {
	h.transfer(c, h.walletUseCase.Deposit, "failed to deposit")
}

func (h *WalletHandler) Withdraw(c *gin.Context) {
	h.transfer(c, h.walletUseCase.Withdraw, "failed to withdraw")
}

type transferFunc func(ctx context.Context, userID string, dollars float64) (*domain.Transaction, error)

func (h *WalletHandler) transfer(c *gin.Context, op transferFunc, message string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req wallet.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	tx, err := op(c.Request.Context(), userID, req.Dollars)
	if err != nil {
		respondError(c, h.logger, err, message)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// Catalog handles GET /shop/catalog
func (h *WalletHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.walletUseCase.Catalog())
}

// SendGift handles POST /shop/gift
// @Summary Send a gift
// @Description Buys a catalog gift for one of the user's matches
// @Tags shop
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body wallet.GiftRequest true "Gift"
// @Success 200 {object} wallet.GiftResponse
// @Failure 402 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shop/gift [post]
func (h *WalletHandler) SendGift(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req wallet.GiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.walletUseCase.SendGift(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err, "failed to send gift")
		return
	}
	c.JSON(http.StatusOK, res)
}

// BuyProfileCard handles POST /shop/profile-card
func (h *WalletHandler) BuyProfileCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req wallet.ProfileCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.walletUseCase.BuyProfileCard(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err, "failed to buy profile card")
		return
	}
	c.JSON(http.StatusOK, res)
}
