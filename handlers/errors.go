package handlers

import (
	"errors"
	"net/http"

	"medibook/services"
	"medibook/services/availability"
	"medibook/services/booking"
	"medibook/services/credits"
	ai "medibook/services/intelligence"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto its HTTP status.
func respondError(c *gin.Context, err error) {
	var cfgErr *availability.ConfigurationError
	var valErr *services.ValidationError

	switch {
	case errors.As(err, &cfgErr):
		utils.JSONErrorWithCode(c, http.StatusPreconditionFailed, cfgErr.Code, "Doctor availability is not usable", cfgErr.Message)
	case errors.As(err, &valErr):
		utils.JSONErrorWithCode(c, http.StatusBadRequest, valErr.Field, "Invalid input", valErr.Message)
	case errors.Is(err, availability.ErrInvalidSlot),
		errors.Is(err, credits.ErrInvalidSignature),
		errors.Is(err, ai.ErrEmptyMessage):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, services.ErrNotFound), errors.Is(err, availability.ErrDoctorNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Access denied", err.Error())
	case errors.Is(err, booking.ErrSlotTaken), errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, services.ErrInsufficientCredits):
		utils.JSONError(c, http.StatusPaymentRequired, "Insufficient credits", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
}
