package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go-leave/internal/shared/connection"

	"go.uber.org/zap"
)

const (
	defaultPort       = "3000"
	defaultPolicyFile = "configs/policy.yaml"
	defaultMinReason  = 1
)

// Config is read from the environment; cmd/* loads .env first.
type Config struct {
	Env             string
	Port            string
	DB              connection.DBConfig
	RedisAddr       string
	KafkaBroker     string
	JWTSecret       string
	PolicyFile      string
	RBACModel       string
	TraceOutput     string
	MinReasonLength int
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Env:  envOr("APP_ENV", "development"),
		Port: envOr("PORT", defaultPort),
		DB: connection.DBConfig{
			Driver:     strings.ToLower(os.Getenv("DB_DRIVER")),
			Host:       os.Getenv("DB_HOST"),
			User:       os.Getenv("DB_USER"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       os.Getenv("DB_NAME"),
			Port:       os.Getenv("DB_PORT"),
			SSLMode:    envOr("DB_SSLMODE", "disable"),
			SQLitePath: os.Getenv("SQLITE_PATH"),
		},
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		KafkaBroker:     os.Getenv("KAFKA_BROKER"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		PolicyFile:      envOr("POLICY_FILE", defaultPolicyFile),
		RBACModel:       os.Getenv("RBAC_MODEL"),
		TraceOutput:     os.Getenv("TRACE_OUTPUT"),
		MinReasonLength: defaultMinReason,
	}

	if raw := os.Getenv("MIN_REASON_LENGTH"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("MIN_REASON_LENGTH must be a positive integer, got %q", raw)
		}
		cfg.MinReasonLength = n
	}

	return cfg, nil
}

// ValidateAPI checks what the HTTP server cannot run without.
func (c Config) ValidateAPI() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func (c Config) Production() bool {
	return c.Env == "production"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewLogger builds the process logger: JSON in production, console otherwise.
func NewLogger(cfg Config) (*zap.Logger, error) {
	if cfg.Production() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
