package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	TransitionsPermissive = "permissive"
	TransitionsStrict     = "strict"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Port                   string        `mapstructure:"PORT"`
	Env                    string        `mapstructure:"ENV"`
	LogLevel               string        `mapstructure:"LOG_LEVEL"`
	DBURL                  string        `mapstructure:"DB_URL"`
	RedisURL               string        `mapstructure:"REDIS_URL"`
	AdminToken             string        `mapstructure:"ADMIN_TOKEN"`
	SymmetricKey           string        `mapstructure:"SYMMETRIC_KEY"`
	CORSOrigins            []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS           float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst         int           `mapstructure:"RATE_LIMIT_BURST"`
	LedgerMaxAttempts      int           `mapstructure:"LEDGER_MAX_ATTEMPTS"`
	LedgerRetryBase        time.Duration `mapstructure:"LEDGER_RETRY_BASE"`
	AppointmentTransitions string        `mapstructure:"APPOINTMENT_TRANSITIONS"`
	AMQPURL                string        `mapstructure:"AMQP_URL"`
	AMQPExchange           string        `mapstructure:"AMQP_EXCHANGE"`
	SMTPHost               string        `mapstructure:"SMTP_HOST"`
	SMTPPort               int           `mapstructure:"SMTP_PORT"`
	SMTPUser               string        `mapstructure:"SMTP_USER"`
	SMTPPass               string        `mapstructure:"SMTP_PASS"`
	AlertDedupeTTL         time.Duration `mapstructure:"ALERT_DEDUPE_TTL"`
}

var envKeys = []string{
	"PORT", "ENV", "LOG_LEVEL", "DB_URL", "REDIS_URL", "ADMIN_TOKEN", "SYMMETRIC_KEY",
	"CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LEDGER_MAX_ATTEMPTS",
	"LEDGER_RETRY_BASE", "APPOINTMENT_TRANSITIONS", "AMQP_URL", "AMQP_EXCHANGE",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "ALERT_DEDUPE_TTL",
}

// Load reads the configuration from the environment, falling back to a .env file
// when one is present.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8930")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("LEDGER_MAX_ATTEMPTS", 5)
	v.SetDefault("LEDGER_RETRY_BASE", "20ms")
	v.SetDefault("APPOINTMENT_TRANSITIONS", TransitionsPermissive)
	v.SetDefault("AMQP_EXCHANGE", "hospital.ledger")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("ALERT_DEDUPE_TTL", "30m")

	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// viper hands comma separated env values over as a single element
	if origins := v.GetString("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	return cfg, cfg.Validate()
}

// Validate checks the values every command depends on.
func (c *AppConfig) Validate() error {
	if c.DBURL == "" {
		return fmt.Errorf("DB_URL is required")
	}
	if c.SymmetricKey != "" && len(c.SymmetricKey) != 32 {
		return fmt.Errorf("SYMMETRIC_KEY must be exactly 32 bytes, got %d", len(c.SymmetricKey))
	}
	switch c.AppointmentTransitions {
	case TransitionsPermissive, TransitionsStrict:
	default:
		return fmt.Errorf("APPOINTMENT_TRANSITIONS must be %q or %q, got %q",
			TransitionsPermissive, TransitionsStrict, c.AppointmentTransitions)
	}
	if c.LedgerMaxAttempts < 1 {
		return fmt.Errorf("LEDGER_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// ValidateServe checks the values only the HTTP server needs.
func (c *AppConfig) ValidateServe() error {
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if c.AdminToken == "" {
		return fmt.Errorf("ADMIN_TOKEN is required")
	}
	if len(c.SymmetricKey) != 32 {
		return fmt.Errorf("SYMMETRIC_KEY is required")
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development"
}

// GetBearerToken returns the static admin token
func (c *AppConfig) GetBearerToken() string {
	return c.AdminToken
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
