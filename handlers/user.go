package handlers

import (
	"net/http"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/doctor"
	"medibook/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the caller's own account and onboarding.
type UserHandler struct {
	Users   user.UserService
	Doctors doctor.DoctorService
}

func NewUserHandler(us user.UserService, ds doctor.DoctorService) *UserHandler {
	return &UserHandler{Users: us, Doctors: ds}
}

// GetMeHandler returns the authenticated account.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// SetFCMTokenHandler stores the device token used for push notifications.
func (h *UserHandler) SetFCMTokenHandler(c *gin.Context) {
	var req models.FCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u := middleware.CurrentUser(c)
	if err := h.Users.SetFCMToken(c.Request.Context(), u.ID, req.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token updated"})
}

func (h *UserHandler) OnboardPatientHandler(c *gin.Context) {
	u, err := h.Doctors.OnboardPatient(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// OnboardDoctorHandler takes a multipart form with the profile fields and a
// "credential" document.
func (h *UserHandler) OnboardDoctorHandler(c *gin.Context) {
	var profile models.DoctorProfile
	if err := c.ShouldBind(&profile); err != nil {
		badRequest(c, err)
		return
	}
	fileHeader, err := c.FormFile("credential")
	if err != nil {
		badRequest(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	current := middleware.CurrentUser(c)
	u, err := h.Doctors.OnboardDoctor(c.Request.Context(), current.ID, profile, file, fileHeader.Filename)
	if err != nil {
		getLogger(c).Warn("doctor onboarding failed", zap.String("userId", current.ID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
