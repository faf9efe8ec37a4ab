package dispatch_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_ValidateVehicle(t *testing.T) {
	ok := dispatch.Request{TruckNumber: "KA-01-X-9", DriverName: "Imran", DriverMobile: "9000000001"}
	require.NoError(t, ok.ValidateVehicle())

	err := dispatch.Request{DriverName: " "}.ValidateVehicle()
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "truckNumber")
	assert.Contains(t, err.Error(), "driverName")
	assert.Contains(t, err.Error(), "driverMobile")
}

func TestNotEligibleError(t *testing.T) {
	err := dispatch.NewNotEligibleError("Insufficient stock")

	require.ErrorIs(t, err, dispatch.ErrNotEligible)
	assert.Equal(t, "order is not eligible for dispatch: Insufficient stock", err.Error())
	assert.Equal(t, "order is not eligible for dispatch", dispatch.NewNotEligibleError("").Error())
}

func TestStatusSnapshot_Product(t *testing.T) {
	s := dispatch.StatusSnapshot{Products: []dispatch.ProductStatus{
		{ProductID: "P-1", Available: dispatch.Quantity(decimal.NewFromInt(10))},
	}}

	p, ok := s.Product("P-1")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(10).Equal(*p.Available))

	_, ok = s.Product("P-2")
	assert.False(t, ok)
}
