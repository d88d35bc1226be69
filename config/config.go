package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config is the single configuration surface for the whole process, loaded
// once in main and handed to everything that needs a setting. Values come
// from the environment (optionally via a .env file loaded by the caller).
type Config struct {
	ServerPort string
	GinMode    string

	DBHost     string
	DBPort     string
	DBDatabase string
	DBUsername string
	DBPassword string
	DebugSQL   bool

	JWTSecret    string
	JWTExpiry    time.Duration
	TokenIssuer  string
	CookieSecure bool

	UploadPath    string
	MaxUploadSize int64
	LogPath       string

	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPass          string
	SMTPFrom          string
	SMTPSkipTLSVerify bool
}

// Load reads configuration from the environment and applies defaults.
// A missing JWT secret is a fatal startup condition, reported here so the
// process refuses to boot rather than failing on the first login.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:  envOr("SERVER_PORT", "8080"),
		GinMode:     os.Getenv("GIN_MODE"),
		DBHost:      envOr("DB_HOST", "localhost"),
		DBPort:      envOr("DB_PORT", "3306"),
		DBDatabase:  envOr("DB_DATABASE", "document_approval"),
		DBUsername:  os.Getenv("DB_USERNAME"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DebugSQL:    os.Getenv("DEBUG_SQL") == "true",
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenIssuer: "document-approval-system",
		UploadPath:  envOr("UPLOAD_PATH", "./uploads"),
		LogPath:     envOr("LOG_PATH", "logs/approval-api.log"),

		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          envIntOr("SMTP_PORT", 587),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		SMTPFrom:          os.Getenv("SMTP_FROM"),
		SMTPSkipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	expireHours := envIntOr("JWT_EXPIRE_HOURS", 24)
	cfg.JWTExpiry = time.Duration(expireHours) * time.Hour

	maxMB := envIntOr("MAX_UPLOAD_MB", 10)
	cfg.MaxUploadSize = int64(maxMB) * 1024 * 1024

	cfg.CookieSecure = cfg.GinMode == "release"

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
