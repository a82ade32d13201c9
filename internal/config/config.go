package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	Environment string
	LogLevel    string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	CORSOrigins []string

	StorageDriver string
	StoragePath   string
	DatabaseURL   string

	LoginDelay         time.Duration
	ClearAuditOnLogout bool
	BcryptCost         int
	// LoginRatePerMinute limits login attempts per client address. The default 0 disables it.
	LoginRatePerMinute int
	LoginBurst         int

	AdminPassword       string
	StaffPassword       string
	DirectoratePassword string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:                fallback(os.Getenv("PORT"), "8080"),
		Environment:         fallback(os.Getenv("APP_ENV"), "development"),
		LogLevel:            strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		JWTSecret:           strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:           fallback(os.Getenv("JWT_ISSUER"), "civic-tracker"),
		CORSOrigins:         parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		StorageDriver:       strings.ToLower(fallback(os.Getenv("STORAGE_DRIVER"), StorageMemory)),
		StoragePath:         fallback(os.Getenv("STORAGE_PATH"), "civic-tracker.json"),
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AdminPassword:       fallback(os.Getenv("ADMIN_PASSWORD"), "admin123"),
		StaffPassword:       fallback(os.Getenv("STAFF_PASSWORD"), "staff123"),
		DirectoratePassword: fallback(os.Getenv("DIRECTORATE_PASSWORD"), "Belediye22"),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "480")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 480 * time.Minute
	}

	delay := fallback(os.Getenv("LOGIN_DELAY_MS"), "1000")
	if ms, err := strconv.Atoi(delay); err == nil && ms >= 0 {
		cfg.LoginDelay = time.Duration(ms) * time.Millisecond
	} else {
		cfg.LoginDelay = time.Second
	}

	clearAudit, err := strconv.ParseBool(fallback(os.Getenv("CLEAR_AUDIT_ON_LOGOUT"), "false"))
	if err != nil {
		return Config{}, fmt.Errorf("CLEAR_AUDIT_ON_LOGOUT: %w", err)
	}
	cfg.ClearAuditOnLogout = clearAudit

	cost := fallback(os.Getenv("BCRYPT_COST"), "10")
	if c, err := strconv.Atoi(cost); err == nil && c >= 4 && c <= 31 {
		cfg.BcryptCost = c
	} else {
		cfg.BcryptCost = 10
	}

	rate := fallback(os.Getenv("LOGIN_RATE_PER_MINUTE"), "0")
	if n, err := strconv.Atoi(rate); err == nil && n >= 0 {
		cfg.LoginRatePerMinute = n
	}
	burst := fallback(os.Getenv("LOGIN_RATE_BURST"), "5")
	if n, err := strconv.Atoi(burst); err == nil && n > 0 {
		cfg.LoginBurst = n
	} else {
		cfg.LoginBurst = 5
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	switch cfg.StorageDriver {
	case StorageMemory, StorageFile:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for the postgres storage driver")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
