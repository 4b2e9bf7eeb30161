package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Third-party integrations.
	StripeKey               string `mapstructure:"STRIPE_KEY"`
	StripeWebhookSecret     string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	GeminiAPIKey            string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel             string `mapstructure:"GEMINI_MODEL"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	CloudinaryCloudName     string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey        string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret     string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Scheduling.
	DefaultTimezone     string `mapstructure:"DEFAULT_TIMEZONE"`
	SlotMinutes         int    `mapstructure:"SLOT_MINUTES"`
	AvailabilityDays    int    `mapstructure:"AVAILABILITY_DAYS"`
	ReminderLeadMinutes int    `mapstructure:"REMINDER_LEAD_MINUTES"`
	WorkerConcurrency   int    `mapstructure:"WORKER_CONCURRENCY"`

	// Credits. CreditValue and PlatformFeePerCredit are in whole currency units.
	AppointmentCreditCost int    `mapstructure:"APPOINTMENT_CREDIT_COST"`
	InitialPatientCredits int    `mapstructure:"INITIAL_PATIENT_CREDITS"`
	CreditPriceCents      int64  `mapstructure:"CREDIT_PRICE_CENTS"`
	CreditCurrency        string `mapstructure:"CREDIT_CURRENCY"`
	CreditValue           int    `mapstructure:"CREDIT_VALUE"`
	PlatformFeePerCredit  int    `mapstructure:"PLATFORM_FEE_PER_CREDIT"`

	// Assistant.
	AIContextTTLMinutes int `mapstructure:"AI_CONTEXT_TTL_MINUTES"`
	AIHistoryTurns      int `mapstructure:"AI_HISTORY_TURNS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("JWT_SECRET", "")

	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "medibook")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 3)

	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "config/firebase.json")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")

	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("SLOT_MINUTES", 30)
	viper.SetDefault("AVAILABILITY_DAYS", 4)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 30)
	viper.SetDefault("WORKER_CONCURRENCY", 10)

	viper.SetDefault("APPOINTMENT_CREDIT_COST", 2)
	viper.SetDefault("INITIAL_PATIENT_CREDITS", 2)
	viper.SetDefault("CREDIT_PRICE_CENTS", 1000)
	viper.SetDefault("CREDIT_CURRENCY", "usd")
	viper.SetDefault("CREDIT_VALUE", 10)
	viper.SetDefault("PLATFORM_FEE_PER_CREDIT", 2)

	viper.SetDefault("AI_CONTEXT_TTL_MINUTES", 30)
	viper.SetDefault("AI_HISTORY_TURNS", 10)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
