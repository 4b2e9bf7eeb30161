package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	appointmentRepo "medibook/database/repository/appointment"
	availabilityRepo "medibook/database/repository/availability"
	payoutRepo "medibook/database/repository/payout"
	userRepoPkg "medibook/database/repository/user"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/availability"
	"medibook/services/booking"
	"medibook/services/credits"
	"medibook/services/doctor"
	ai "medibook/services/intelligence"
	"medibook/services/notification"
	"medibook/services/payout"
	"medibook/services/storage"
	"medibook/services/tasks"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cache := utils.GetCacheClient()
	stripe.Key = cfg.StripeKey

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	windowRepo := availabilityRepo.NewMongoAvailabilityRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	payoutsRepo := payoutRepo.NewMongoPayoutRepo()

	// integrations.
	var notifier notification.NotificationService
	fcm, err := utils.FirebaseMessaging(rootCtx)
	if err != nil {
		logger.Warn("push notifications disabled", zap.Error(err))
	} else if svc, err := notification.NewDefaultNotificationService(userRepo, fcm, logger.Named("notification")); err != nil {
		logger.Warn("push notifications disabled", zap.Error(err))
	} else {
		notifier = svc
	}

	credentialStore, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Fatal("failed to initialize cloudinary storage", zap.Error(err))
	}

	gemini, err := ai.NewGeminiClient(rootCtx, cfg.GeminiAPIKey, cfg.GeminiModel, ai.SystemPrompt)
	if err != nil {
		logger.Fatal("failed to initialize gemini client", zap.Error(err))
	}
	defer gemini.Close()

	queueClient := asynq.NewClient(cron.RedisOpt())
	defer queueClient.Close()
	inspector := asynq.NewInspector(cron.RedisOpt())
	defer inspector.Close()
	reminders := tasks.NewAsynqReminderScheduler(queueClient, inspector,
		time.Duration(cfg.ReminderLeadMinutes)*time.Minute, logger.Named("reminders"))

	// services.
	userService := &user.DefaultUserService{Repo: userRepo, Logger: logger.Named("user")}

	availabilityService := &availability.DefaultAvailabilityService{
		Users:        userRepo,
		Windows:      windowRepo,
		Appointments: apptRepo,
		Calculator:   availability.NewCalculator(time.Duration(cfg.SlotMinutes) * time.Minute),
		DefaultZone:  cfg.DefaultTimezone,
		DefaultDays:  cfg.AvailabilityDays,
		Logger:       logger.Named("availability"),
	}

	doctorService := &doctor.DefaultDoctorService{
		Users:          userRepo,
		Windows:        windowRepo,
		Storage:        credentialStore,
		Notifier:       notifier,
		InitialCredits: cfg.InitialPatientCredits,
		Logger:         logger.Named("doctor"),
	}

	bookingService := &booking.DefaultBookingService{
		Users:        userRepo,
		Appointments: apptRepo,
		Availability: availabilityService,
		Notifier:     notifier,
		Reminders:    reminders,
		CreditCost:   cfg.AppointmentCreditCost,
		Logger:       logger.Named("booking"),
	}

	creditService := &credits.DefaultCreditService{
		Users:      userRepo,
		Gateway:    &credits.StripeGateway{WebhookSecret: cfg.StripeWebhookSecret},
		PriceCents: cfg.CreditPriceCents,
		Currency:   cfg.CreditCurrency,
		Logger:     logger.Named("credits"),
	}

	payoutService := &payout.DefaultPayoutService{
		Users:    userRepo,
		Payouts:  payoutsRepo,
		Notifier: notifier,
		Rates:    payout.Rates{CreditValue: cfg.CreditValue, PlatformFeePerCredit: cfg.PlatformFeePerCredit},
		Logger:   logger.Named("payout"),
	}

	assistant := &ai.DefaultAssistantService{
		Store:    ai.NewRedisContextStore(cache, time.Duration(cfg.AIContextTTLMinutes)*time.Minute),
		Model:    gemini,
		MaxTurns: cfg.AIHistoryTurns,
		Logger:   logger.Named("assistant"),
	}

	// background work.
	var worker *asynq.Server
	if notifier != nil {
		worker = cron.InitReminderWorker(notifier)
	}

	health := utils.NewHealthMonitor(database.Ping, func(ctx context.Context) error {
		return cache.Ping(ctx).Err()
	}, 30*time.Second)
	health.Start(rootCtx)

	handlerBundle := &handlers.HandlerBundle{
		JWTSecret:   []byte(cfg.JWTSecret),
		Identities:  userService,
		Limiter:     middleware.NewRateLimiter(cfg.MaxRequestsPerMin),
		Health:      health,
		User:        handlers.NewUserHandler(userService, doctorService),
		Doctor:      handlers.NewDoctorHandler(doctorService, availabilityService),
		Appointment: handlers.NewAppointmentHandler(bookingService),
		Credit:      handlers.NewCreditHandler(creditService),
		Payout:      handlers.NewPayoutHandler(payoutService),
		AI:          handlers.NewAIHandler(assistant),
		Admin:       handlers.NewAdminHandler(doctorService, payoutService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	_ = cache.Close()

	logger.Sugar().Info("main: server stopped gracefully")
}
