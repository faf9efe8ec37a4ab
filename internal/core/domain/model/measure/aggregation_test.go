package measure_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/measure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestLineKilograms(t *testing.T) {
	tests := []struct {
		name string
		line measure.Line
		want string
	}{
		{
			name: "packed kg counts bags",
			line: measure.Line{ProductType: measure.Packed, Unit: measure.Kilograms, Quantity: d("10"), PackageWeight: d("50")},
			want: "500",
		},
		{
			name: "packed tons divides by 1000",
			line: measure.Line{ProductType: measure.Packed, Unit: measure.Tons, Quantity: d("2"), PackageWeight: d("25")},
			want: "0.05",
		},
		{
			name: "loose kg is taken as is",
			line: measure.Line{ProductType: measure.Loose, Unit: measure.Kilograms, Quantity: d("125.5")},
			want: "125.5",
		},
		{
			name: "loose tons divides by 1000",
			line: measure.Line{ProductType: measure.Loose, Unit: measure.Tons, Quantity: d("3")},
			want: "0.003",
		},
		{
			name: "zero quantity contributes nothing",
			line: measure.Line{ProductType: measure.Packed, Unit: measure.Kilograms, Quantity: decimal.Zero, PackageWeight: d("50")},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, measure.LineKilograms(tt.line))
		})
	}
}

func TestAggregateTons(t *testing.T) {
	t.Run("two packed lines of 10 bags x 50 kg make one ton", func(t *testing.T) {
		// Given
		lines := []measure.Line{
			{ProductType: measure.Packed, Unit: measure.Kilograms, Quantity: d("10"), PackageWeight: d("50")},
			{ProductType: measure.Packed, Unit: measure.Kilograms, Quantity: d("10"), PackageWeight: d("50")},
		}

		// When
		tons := measure.AggregateTons(lines)

		// Then
		assertDecimal(t, "1", tons)
		assertDecimal(t, "1000", measure.AggregateKilograms(lines))
	})

	t.Run("mixed lines", func(t *testing.T) {
		lines := []measure.Line{
			{ProductType: measure.Packed, Unit: measure.Kilograms, Quantity: d("4"), PackageWeight: d("25")},
			{ProductType: measure.Loose, Unit: measure.Kilograms, Quantity: d("900")},
			{ProductType: measure.Loose, Unit: measure.Tons, Quantity: d("1000")},
		}

		assertDecimal(t, "1.001", measure.AggregateTons(lines))
	})

	t.Run("empty order", func(t *testing.T) {
		assertDecimal(t, "0", measure.AggregateTons(nil))
	})
}
