package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://localhost/smc")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8930", cfg.Port)
		assert.Equal(t, TransitionsPermissive, cfg.AppointmentTransitions)
		assert.Equal(t, 5, cfg.LedgerMaxAttempts)
		assert.Equal(t, 20*time.Millisecond, cfg.LedgerRetryBase)
		assert.Equal(t, 30*time.Minute, cfg.AlertDedupeTTL)
		assert.Equal(t, "hospital.ledger", cfg.AMQPExchange)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://localhost/smc")
		t.Setenv("APPOINTMENT_TRANSITIONS", "strict")
		t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("LEDGER_MAX_ATTEMPTS", "3")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, TransitionsStrict, cfg.AppointmentTransitions)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
		assert.Equal(t, 3, cfg.LedgerMaxAttempts)
	})

	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DB_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown transition policy", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://localhost/smc")
		t.Setenv("APPOINTMENT_TRANSITIONS", "loose")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidateServe(t *testing.T) {
	cfg := &AppConfig{RedisURL: "redis://localhost:6379", AdminToken: "ops"}
	assert.Error(t, cfg.ValidateServe())

	cfg.SymmetricKey = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, cfg.ValidateServe())

	cfg.AdminToken = ""
	assert.Error(t, cfg.ValidateServe())
}
