package errs_test

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError(stringer("Delivered"), stringer("cancel"))

	assert.Equal(t, "Delivered", err.From)
	assert.Equal(t, "cancel", err.Action)
	assert.Equal(t, "transition is not allowed: Delivered is not a valid status to cancel", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestExceedsAvailableError(t *testing.T) {
	err := errs.NewExceedsAvailableError("P-1", stringer("15"), stringer("10"))

	assert.Equal(t, "quantity exceeds available stock: product P-1 requested 15, available 10", err.Error())
	require.ErrorIs(t, err, errs.ErrExceedsAvailable)
}

func TestNetworkError(t *testing.T) {
	t.Run("matches sentinel and cause", func(t *testing.T) {
		cause := fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED)
		err := errs.NewNetworkError(errs.NetworkConnectionRefused, "dispatch", cause)

		require.ErrorIs(t, err, errs.ErrNetwork)
		require.ErrorIs(t, err, syscall.ECONNREFUSED)
		assert.Contains(t, err.Error(), "connection_refused")
		assert.Contains(t, err.Error(), "during dispatch")
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewNetworkError(errs.NetworkGeneric, "cancel", nil)

		require.ErrorIs(t, err, errs.ErrNetwork)
		assert.Equal(t, "network error (generic) during cancel", err.Error())
	})

	t.Run("each kind has a distinct message", func(t *testing.T) {
		messages := map[string]struct{}{}
		for _, kind := range []errs.NetworkKind{errs.NetworkConnectionRefused, errs.NetworkTimeout, errs.NetworkGeneric} {
			messages[kind.UserMessage()] = struct{}{}
		}
		assert.Len(t, messages, 3)
	})
}

func TestBackendRejectionError(t *testing.T) {
	err := errs.NewBackendRejectionError(400, "Invalid OTP")

	assert.Equal(t, "Invalid OTP", err.Message)
	assert.Equal(t, "request rejected by backend (status 400): Invalid OTP", err.Error())
	require.ErrorIs(t, err, errs.ErrBackendRejection)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("reason")))
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("quantity")))
	assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("returnQuantity", 9, 1, 5)))
	assert.True(t, errs.IsValidation(errors.Join(errs.NewValueIsRequiredError("productId"))))
	assert.False(t, errs.IsValidation(errs.NewBackendRejectionError(500, "boom")))
	assert.False(t, errs.IsValidation(nil))
}
