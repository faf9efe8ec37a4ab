package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancellation(t *testing.T) {
	record, err := order.NewCancellation("  duplicate order  ", updatedAt)

	require.NoError(t, err)
	assert.Equal(t, "duplicate order", record.Reason())
	assert.False(t, record.IsDispatchedReturn())
	assert.Equal(t, order.Cancel, record.Action())

	for _, blank := range []string{"", "   "} {
		_, err := order.NewCancellation(blank, updatedAt)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	}
}

func TestNewDispatchedReturn(t *testing.T) {
	valid := order.ReturnDetails{
		ProductID:      "P-1",
		ReturnType:     order.QualityIssue,
		ReturnReason:   "moisture",
		ReturnQuantity: decimal.NewFromInt(2),
		PaymentMode:    order.CreditNote,
		Description:    "  found at unloading ",
	}

	t.Run("should build return record", func(t *testing.T) {
		record, err := order.NewDispatchedReturn(valid, updatedAt)

		require.NoError(t, err)
		assert.True(t, record.IsDispatchedReturn())
		assert.Equal(t, order.ReturnCancel, record.Action())
		assert.Equal(t, "moisture", record.Reason())
		ret, ok := record.Return()
		require.True(t, ok)
		assert.Equal(t, "found at unloading", ret.Description)
	})

	omit := map[string]func(d *order.ReturnDetails){
		"productId":      func(d *order.ReturnDetails) { d.ProductID = "" },
		"returnType":     func(d *order.ReturnDetails) { d.ReturnType = "" },
		"returnReason":   func(d *order.ReturnDetails) { d.ReturnReason = " " },
		"returnQuantity": func(d *order.ReturnDetails) { d.ReturnQuantity = decimal.Zero },
		"paymentMode":    func(d *order.ReturnDetails) { d.PaymentMode = "" },
	}
	for field, mutate := range omit {
		t.Run("should require "+field, func(t *testing.T) {
			d := valid
			mutate(&d)

			_, err := order.NewDispatchedReturn(d, updatedAt)

			require.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.Contains(t, err.Error(), field)
		})
	}

	t.Run("should reject unknown enums", func(t *testing.T) {
		d := valid
		d.ReturnType = "lost"
		d.PaymentMode = "cash"

		_, err := order.NewDispatchedReturn(d, updatedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "returnType")
		assert.Contains(t, err.Error(), "paymentMode")
	})

	t.Run("description is optional", func(t *testing.T) {
		d := valid
		d.Description = ""

		_, err := order.NewDispatchedReturn(d, updatedAt)

		require.NoError(t, err)
	})
}

func TestParseReturnTypeAndPaymentMode(t *testing.T) {
	for _, rt := range order.ReturnTypes() {
		got, err := order.ParseReturnType(string(rt))
		require.NoError(t, err)
		assert.Equal(t, rt, got)
	}
	for _, pm := range order.PaymentModes() {
		got, err := order.ParsePaymentMode(" " + string(pm))
		require.NoError(t, err)
		assert.Equal(t, pm, got)
	}
}
