package handlers

import (
	"medibook/middleware"
	"medibook/utils"
)

// HandlerBundle groups all endpoint handlers and what the routes need to
// authenticate callers.
type HandlerBundle struct {
	JWTSecret  []byte
	Identities middleware.IdentityResolver
	Limiter    *middleware.RateLimiter
	Health     *utils.HealthMonitor

	User        *UserHandler
	Doctor      *DoctorHandler
	Appointment *AppointmentHandler
	Credit      *CreditHandler
	Payout      *PayoutHandler
	AI          *AIHandler
	Admin       *AdminHandler
}
