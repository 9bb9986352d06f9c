package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	// Server
	Port        string
	Environment string // development/production

	// Storage
	DatabasePath string
	AutoMigrate  bool // schema auto-sync; keep OFF against pre-existing data
	VerboseQuery bool

	// Auth
	JWTSecret     string
	JWTExpiration time.Duration

	// Rate limiting on login (requests per second per IP, with burst)
	LoginRateLimit float64
	LoginRateBurst int
}

func Load() *Config {
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		Port:        getEnv("APP_PORT", "4000"),
		Environment: env,

		DatabasePath: getEnv("DATABASE_PATH", "database.sqlite"),
		AutoMigrate:  getEnvBool("AUTO_MIGRATE", env != "production"),
		VerboseQuery: getEnvBool("VERBOSE_QUERY_LOG", env != "production"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpiration: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,

		LoginRateLimit: float64(getEnvInt("LOGIN_RATE_LIMIT", 5)),
		LoginRateBurst: getEnvInt("LOGIN_RATE_BURST", 10),
	}

	return cfg
}

func (c *Config) Validate(log *zap.Logger) {
	if c.JWTSecret == "change-me-in-production" {
		log.Warn("JWT_SECRET is default, change in production")
	}
	if c.Environment == "production" && c.AutoMigrate {
		log.Warn("AUTO_MIGRATE is enabled in production; schema sync can mutate existing tables")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}
