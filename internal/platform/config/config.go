package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	JWTSecret     string
	JWTExpiry     time.Duration
	JWTIssuer     string
	CORSOrigins   []string
	LoginRateSpec string // ulule/limiter formatted rate, e.g. "5-M"

	// Ledger settings. The platform account is a process-wide constant,
	// ensured once at startup rather than lazily per call site.
	PlatformAccountNumber  string
	PlatformHolderName     string
	PlatformInitialBalance decimal.Decimal
	InitialAccountBalance  decimal.Decimal
	InstructorShareRate    decimal.Decimal
	CourseUploadPayment    decimal.Decimal
	MaxActiveCourses       int
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Environment variables override .env values which override the
// defaults below.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "lms-backend")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("PLATFORM_BANK_ACCOUNT", "LMS-0000000001")
	viper.SetDefault("PLATFORM_HOLDER_NAME", "LMS Organization")
	viper.SetDefault("PLATFORM_INITIAL_BALANCE", "30000")
	viper.SetDefault("INITIAL_ACCOUNT_BALANCE", "10000")
	viper.SetDefault("INSTRUCTOR_COMMISSION_RATE", "0.70")
	viper.SetDefault("COURSE_UPLOAD_PAYMENT", "5000")
	viper.SetDefault("MAX_ACTIVE_COURSES", 5)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	expiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil {
		expiry = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", expiryStr, expiry)
	}
	cfg.JWTExpiry = expiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.CORSOrigins = viper.GetStringSlice("CORS_ORIGINS")
	cfg.LoginRateSpec = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.PlatformAccountNumber = viper.GetString("PLATFORM_BANK_ACCOUNT")
	cfg.PlatformHolderName = viper.GetString("PLATFORM_HOLDER_NAME")

	cfg.PlatformInitialBalance, err = decimal.NewFromString(viper.GetString("PLATFORM_INITIAL_BALANCE"))
	if err != nil {
		cfg.PlatformInitialBalance = decimal.NewFromInt(30000)
		log.Printf("Warning: Invalid PLATFORM_INITIAL_BALANCE. Defaulting to %s.\n", cfg.PlatformInitialBalance)
	}

	cfg.InitialAccountBalance, err = decimal.NewFromString(viper.GetString("INITIAL_ACCOUNT_BALANCE"))
	if err != nil {
		cfg.InitialAccountBalance = decimal.NewFromInt(10000)
		log.Printf("Warning: Invalid INITIAL_ACCOUNT_BALANCE. Defaulting to %s.\n", cfg.InitialAccountBalance)
	}

	cfg.InstructorShareRate, err = decimal.NewFromString(viper.GetString("INSTRUCTOR_COMMISSION_RATE"))
	if err != nil || cfg.InstructorShareRate.LessThanOrEqual(decimal.Zero) || cfg.InstructorShareRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		cfg.InstructorShareRate = decimal.NewFromFloat(0.70)
		log.Printf("Warning: Invalid INSTRUCTOR_COMMISSION_RATE. Defaulting to %s.\n", cfg.InstructorShareRate)
	}

	cfg.CourseUploadPayment, err = decimal.NewFromString(viper.GetString("COURSE_UPLOAD_PAYMENT"))
	if err != nil {
		cfg.CourseUploadPayment = decimal.NewFromInt(5000)
		log.Printf("Warning: Invalid COURSE_UPLOAD_PAYMENT. Defaulting to %s.\n", cfg.CourseUploadPayment)
	}

	cfg.MaxActiveCourses = viper.GetInt("MAX_ACTIVE_COURSES")
	if cfg.MaxActiveCourses <= 0 {
		cfg.MaxActiveCourses = 5
	}

	return cfg, nil
}
