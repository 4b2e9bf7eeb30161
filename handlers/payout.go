package handlers

import (
	"net/http"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/payout"

	"github.com/gin-gonic/gin"
)

type PayoutHandler struct {
	Payouts payout.PayoutService
}

func NewPayoutHandler(ps payout.PayoutService) *PayoutHandler {
	return &PayoutHandler{Payouts: ps}
}

// RequestPayoutHandler cashes out the doctor's whole credit balance.
func (h *PayoutHandler) RequestPayoutHandler(c *gin.Context) {
	var req models.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Payouts.Request(c.Request.Context(), middleware.CurrentUser(c).ID, req.PaypalEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PayoutHandler) ListPayoutsHandler(c *gin.Context) {
	payouts, err := h.Payouts.ForDoctor(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payouts)
}
