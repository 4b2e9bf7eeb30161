package handlers

import (
	"net/http"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/doctor"
	"medibook/services/payout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Doctors doctor.DoctorService
	Payouts payout.PayoutService
}

func NewAdminHandler(ds doctor.DoctorService, ps payout.PayoutService) *AdminHandler {
	return &AdminHandler{Doctors: ds, Payouts: ps}
}

type verificationRequest struct {
	Status models.VerificationStatus `json:"status" binding:"required"`
}

// PendingDoctorsHandler lists doctors awaiting credential review.
func (ah *AdminHandler) PendingDoctorsHandler(c *gin.Context) {
	doctors, err := ah.Doctors.PendingDoctors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (ah *AdminHandler) SetVerificationHandler(c *gin.Context) {
	var req verificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := ah.Doctors.SetVerification(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("verification set",
		zap.String("adminId", middleware.CurrentUser(c).ID),
		zap.String("doctorId", u.ID),
		zap.String("status", string(u.VerificationStatus)),
	)
	c.JSON(http.StatusOK, u)
}

func (ah *AdminHandler) PendingPayoutsHandler(c *gin.Context) {
	payouts, err := ah.Payouts.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payouts)
}

func (ah *AdminHandler) ApprovePayoutHandler(c *gin.Context) {
	p, err := ah.Payouts.Approve(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
