package handlers

import (
	"net/http"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves booking and the appointment lifecycle.
type AppointmentHandler struct {
	Bookings booking.BookingService
}

func NewAppointmentHandler(bs booking.BookingService) *AppointmentHandler {
	return &AppointmentHandler{Bookings: bs}
}

// BookAppointmentHandler books a slot for the authenticated patient.
func (h *AppointmentHandler) BookAppointmentHandler(c *gin.Context) {
	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	patient := middleware.CurrentUser(c)
	appt, err := h.Bookings.Book(c.Request.Context(), patient.ID, req)
	if err != nil {
		getLogger(c).Info("booking rejected",
			zap.String("patientId", patient.ID),
			zap.String("doctorId", req.DoctorID),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	appts, err := h.Bookings.ListForUser(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	appt, err := h.Bookings.Cancel(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) UpdateNotesHandler(c *gin.Context) {
	var req models.AppointmentNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	appt, err := h.Bookings.AddNotes(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) CompleteAppointmentHandler(c *gin.Context) {
	appt, err := h.Bookings.Complete(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
