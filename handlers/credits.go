package handlers

import (
	"io"
	"net/http"
	"strconv"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/credits"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxWebhookBody = int64(65536)

// CreditHandler serves balances, purchases and the payment webhook.
type CreditHandler struct {
	Credits credits.CreditService
}

func NewCreditHandler(cs credits.CreditService) *CreditHandler {
	return &CreditHandler{Credits: cs}
}

func (h *CreditHandler) BalanceHandler(c *gin.Context) {
	bal, err := h.Credits.Balance(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bal)
}

func (h *CreditHandler) HistoryHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	txs, err := h.Credits.History(c.Request.Context(), middleware.CurrentUser(c).ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

// PurchaseHandler starts a credit purchase and returns the client secret.
func (h *CreditHandler) PurchaseHandler(c *gin.Context) {
	var req models.CreditPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	purchase, err := h.Credits.StartPurchase(c.Request.Context(), middleware.CurrentUser(c).ID, req.Credits)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

// WebhookHandler needs the raw body for signature verification.
func (h *CreditHandler) WebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Credits.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		getLogger(c).Warn("webhook rejected", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
