package order_test

import (
	"bytes"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOTPConfirmation(t *testing.T) {
	t.Run("accepts six digits", func(t *testing.T) {
		otp, err := order.NewOTPConfirmation(" 042917 ")

		require.NoError(t, err)
		assert.Equal(t, "042917", otp.Code())
		assert.Equal(t, order.DeliveryByOTP, otp.Method())
	})

	t.Run("missing otp", func(t *testing.T) {
		_, err := order.NewOTPConfirmation("  ")

		require.ErrorIs(t, err, order.ErrOTPRequired)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	for _, bad := range []string{"12345", "1234567", "12a456", "12 456"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := order.NewOTPConfirmation(bad)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestNewSignedInvoiceConfirmation(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

	t.Run("sniffs content type", func(t *testing.T) {
		inv, err := order.NewSignedInvoiceConfirmation("../invoice.png", "", png)

		require.NoError(t, err)
		assert.Equal(t, "invoice.png", inv.FileName())
		assert.Equal(t, "image/png", inv.ContentType())
		assert.Equal(t, order.DeliveryBySignedInvoice, inv.Method())
	})

	t.Run("accepts pdf", func(t *testing.T) {
		_, err := order.NewSignedInvoiceConfirmation("invoice.pdf", "application/pdf", []byte("%PDF-1.4"))
		require.NoError(t, err)
	})

	t.Run("requires file", func(t *testing.T) {
		_, err := order.NewSignedInvoiceConfirmation("", "", nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "fileName")
		assert.Contains(t, err.Error(), "signedInvoice")
	})

	t.Run("rejects other content", func(t *testing.T) {
		_, err := order.NewSignedInvoiceConfirmation("notes.txt", "", []byte("hello there"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		_, err := order.NewSignedInvoiceConfirmation("big.png", "image/png", make([]byte, order.MaxSignedInvoiceSize+1))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
