package cmd_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() cmd.Config {
	return cmd.Config{
		HTTPPort:         "8080",
		BackendBaseURL:   "https://orders.example.com/api",
		BackendTimeout:   time.Second,
		ActionTimeout:    5 * time.Second,
		OTPMaxAttempts:   5,
		OTPLockoutWindow: 15 * time.Minute,
		LedgerRetention:  72 * time.Hour,
		JWTSecret:        "secret",
	}
}

func TestCompositionRoot(t *testing.T) {
	t.Run("should reject a relative order store url", func(t *testing.T) {
		cfg := testConfig()
		cfg.BackendBaseURL = "orders"

		_, err := cmd.NewCompositionRoot(t.Context(), cfg, nil, logging.Discard())

		assert.Error(t, err)
	})

	t.Run("should build the router without kafka and s3", func(t *testing.T) {
		// Given
		app, err := cmd.NewCompositionRoot(t.Context(), testConfig(), nil, logging.Discard())
		require.NoError(t, err)

		// When
		handler, err := app.CreateHTTPHandler()
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		// Then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, app.CreateJobManager())
	})

	t.Run("should reject an invalid otp policy", func(t *testing.T) {
		cfg := testConfig()
		cfg.OTPMaxAttempts = 0
		app, err := cmd.NewCompositionRoot(t.Context(), cfg, nil, logging.Discard())
		require.NoError(t, err)

		_, err = app.CreateOrderStateMachine()

		assert.Error(t, err)
	})
}
