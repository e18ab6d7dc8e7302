package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"cgm-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AppConfig is built once at startup and passed to the components that need
// it; nothing reads the environment after Load returns.
type AppConfig struct {
	Environment string
	Version     string
	Port        string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret string

	// DemoMode permits ownerless ingestion and disables auth on /api.
	DemoMode bool

	DefaultQueryLimit int
	MaxQueryLimit     int
	DefaultStatsHours int

	AWSRegion   string
	SNSFCMArn   string
	SESSender   string
	AlertEmails bool
}

func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	return &AppConfig{
		Environment: getEnv("APP_ENV", "development"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		Port:        getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "glucose"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		DemoMode:  getEnv("DEMO_MODE", "false") == "true",

		DefaultQueryLimit: getEnvInt("DEFAULT_QUERY_LIMIT", 10),
		MaxQueryLimit:     getEnvInt("MAX_QUERY_LIMIT", 100),
		DefaultStatsHours: getEnvInt("DEFAULT_STATS_HOURS", 24),

		AWSRegion:   getEnv("AWS_REGION", "ap-south-1"),
		SNSFCMArn:   os.Getenv("SNS_FCM_ARN"),
		SESSender:   os.Getenv("SES_EMAIL"),
		AlertEmails: getEnv("ALERT_EMAILS", "false") == "true",
	}
}

func InitDB(cfg *AppConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	// TranslateError so unique-constraint conflicts surface as
	// gorm.ErrDuplicatedKey instead of a driver-specific pg error.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.GlucoseReading{},
		&models.Alert{},
		&models.UserDevice{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	return db
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
