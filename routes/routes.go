package routes

import (
	"time"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func authenticated(r *gin.Engine, path string, hb *handlers.HandlerBundle) *gin.RouterGroup {
	g := r.Group(path)
	g.Use(middleware.JWTAuthMiddleware(hb.JWTSecret, hb.Identities))
	return g
}

// RegisterUserRoutes registers the caller's account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := authenticated(r, "/api/users/me", hb)
	{
		api.GET("", hb.User.GetMeHandler)
		api.PUT("/fcm-token", hb.User.SetFCMTokenHandler)
		api.POST("/onboard/patient", hb.User.OnboardPatientHandler)
		api.POST("/onboard/doctor", hb.User.OnboardDoctorHandler)
	}
}

// RegisterDoctorRoutes registers the directory, slots and the doctor's own window.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := authenticated(r, "/api/doctors", hb)
	{
		mine := api.Group("/me", middleware.RequireRole(models.RoleDoctor))
		mine.GET("/availability", hb.Doctor.GetMyAvailabilityHandler)
		mine.PUT("/availability", hb.Doctor.SetMyAvailabilityHandler)

		api.GET("", hb.Doctor.ListDoctorsHandler)
		api.GET("/:id", hb.Doctor.GetDoctorHandler)
		api.GET("/:id/slots", hb.Doctor.DoctorSlotsHandler)
	}
}

// RegisterAppointmentRoutes registers booking and the appointment lifecycle.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := authenticated(r, "/api/appointments", hb)
	{
		doctorOnly := middleware.RequireRole(models.RoleDoctor)
		api.POST("", middleware.RequireRole(models.RolePatient), hb.Appointment.BookAppointmentHandler)
		api.GET("", hb.Appointment.ListAppointmentsHandler)
		api.POST("/:id/cancel", hb.Appointment.CancelAppointmentHandler)
		api.PUT("/:id/notes", doctorOnly, hb.Appointment.UpdateNotesHandler)
		api.POST("/:id/complete", doctorOnly, hb.Appointment.CompleteAppointmentHandler)
	}
}

// RegisterCreditRoutes registers balances, purchases and the public webhook.
func RegisterCreditRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/credits/webhook", hb.Credit.WebhookHandler)

	api := authenticated(r, "/api/credits", hb)
	{
		api.GET("", hb.Credit.BalanceHandler)
		api.GET("/history", hb.Credit.HistoryHandler)
		api.POST("/purchase", middleware.RequireRole(models.RolePatient), hb.Credit.PurchaseHandler)
	}
}

func RegisterPayoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := authenticated(r, "/api/payouts", hb)
	{
		api.Use(middleware.RequireRole(models.RoleDoctor))
		api.POST("", hb.Payout.RequestPayoutHandler)
		api.GET("", hb.Payout.ListPayoutsHandler)
	}
}

// RegisterAIRoutes registers AI endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := authenticated(r, "/api/ai", hb)
	{
		api.POST("/chat", hb.AI.ChatHandler)
		api.DELETE("/chat", hb.AI.ResetChatHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := authenticated(r, "/api/admin", hb)
	{
		adminGroup.Use(middleware.RequireRole(models.RoleAdmin))
		adminGroup.GET("/doctors/pending", hb.Admin.PendingDoctorsHandler)
		adminGroup.PATCH("/doctors/:id/verification", hb.Admin.SetVerificationHandler)
		adminGroup.GET("/payouts/pending", hb.Admin.PendingPayoutsHandler)
		adminGroup.POST("/payouts/:id/approve", hb.Admin.ApprovePayoutHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", handlers.HealthHandler(hb.Health))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(handlers.RequestLogger())
	if hb.Limiter != nil {
		r.Use(hb.Limiter.Middleware())
	}

	RegisterHealthRoute(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterCreditRoutes(r, hb)
	RegisterPayoutRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
