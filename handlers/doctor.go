package handlers

import (
	"net/http"
	"strconv"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/availability"
	"medibook/services/doctor"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// DoctorHandler serves the doctor directory, slots and availability windows.
type DoctorHandler struct {
	Doctors      doctor.DoctorService
	Availability availability.AvailabilityService
}

func NewDoctorHandler(ds doctor.DoctorService, as availability.AvailabilityService) *DoctorHandler {
	return &DoctorHandler{Doctors: ds, Availability: as}
}

func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	doctors, err := h.Doctors.ListDoctors(c.Request.Context(), c.Query("specialty"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) GetDoctorHandler(c *gin.Context) {
	d, err := h.Doctors.GetDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DoctorSlotsHandler returns the free slots for the next ?days= days.
func (h *DoctorHandler) DoctorSlotsHandler(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 14 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "days must be between 1 and 14")
			return
		}
		days = n
	}
	resp, err := h.Availability.DoctorSlots(c.Request.Context(), c.Param("id"), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DoctorHandler) GetMyAvailabilityHandler(c *gin.Context) {
	w, err := h.Doctors.GetAvailability(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": w, "label": w.Label()})
}

// SetMyAvailabilityHandler replaces the doctor's daily window; times are "15:04".
func (h *DoctorHandler) SetMyAvailabilityHandler(c *gin.Context) {
	var req models.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	start, err := doctor.ParseClock(req.StartTime)
	if err != nil {
		badRequest(c, err)
		return
	}
	end, err := doctor.ParseClock(req.EndTime)
	if err != nil {
		badRequest(c, err)
		return
	}
	w, err := h.Doctors.SetAvailability(c.Request.Context(), middleware.CurrentUser(c).ID, start, end, req.TimeZone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": w, "label": w.Label()})
}
