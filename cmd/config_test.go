package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "fulfillment")
	t.Setenv("DB_NAME", "fulfillment")
	t.Setenv("BACKEND_BASE_URL", "https://orders.example.com/api")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		// Given
		setRequiredEnv(t)

		// When
		cfg, err := cmd.LoadConfig("")

		// Then
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
		assert.Equal(t, 30*time.Second, cfg.ActionTimeout)
		assert.Equal(t, 5, cfg.OTPMaxAttempts)
		assert.Equal(t, 15*time.Minute, cfg.OTPLockoutWindow)
		assert.Equal(t, 72*time.Hour, cfg.LedgerRetention)
		assert.Equal(t, "order.changed", cfg.KafkaOrderChangedTopic)
		assert.Empty(t, cfg.KafkaBrokers())
	})

	t.Run("should read overrides from the environment", func(t *testing.T) {
		// Given
		setRequiredEnv(t)
		t.Setenv("ACTION_TIMEOUT", "45s")
		t.Setenv("OTP_MAX_ATTEMPTS", "3")
		t.Setenv("KAFKA_HOST", "kafka-1:9092, kafka-2:9092")

		// When
		cfg, err := cmd.LoadConfig("")

		// Then
		require.NoError(t, err)
		assert.Equal(t, 45*time.Second, cfg.ActionTimeout)
		assert.Equal(t, 3, cfg.OTPMaxAttempts)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
	})

	t.Run("should load a dotenv file", func(t *testing.T) {
		// Given
		setRequiredEnv(t)
		t.Setenv("HTTP_PORT", "")
		require.NoError(t, os.Unsetenv("HTTP_PORT"))
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=9090\n"), 0o600))

		// When
		cfg, err := cmd.LoadConfig(path)

		// Then
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTPPort)
	})

	t.Run("should tolerate a missing dotenv file", func(t *testing.T) {
		setRequiredEnv(t)

		_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

		assert.NoError(t, err)
	})

	t.Run("should report every missing setting", func(t *testing.T) {
		// Given
		setRequiredEnv(t)
		t.Setenv("BACKEND_BASE_URL", "")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("LEDGER_RETENTION", "0s")

		// When
		_, err := cmd.LoadConfig("")

		// Then
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "BACKEND_BASE_URL")
		assert.Contains(t, err.Error(), "JWT_SECRET")
		assert.Contains(t, err.Error(), "LEDGER_RETENTION")
	})
}

func TestConfig_DSN(t *testing.T) {
	cfg := cmd.Config{
		DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSslMode: "disable",
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DSN())
}
