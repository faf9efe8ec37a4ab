package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("destination not constructed")

		// When
		err := g.Validate(expected)

		// Then
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type shipment struct {
		truck string
		guard guard.ConstructorGuard
	}

	errNotConstructed := errors.New("shipment must be created via newShipment")

	newShipment := func(truck string) (shipment, error) {
		if truck == "" {
			return shipment{}, errors.New("truck is required")
		}
		return shipment{truck: truck, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_marks_value", func(t *testing.T) {
		// When
		s, err := newShipment("MH-12-AB-1234")

		// Then
		require.NoError(t, err)
		require.NoError(t, s.guard.Validate(errNotConstructed))
	})

	t.Run("zero_value_is_rejected", func(t *testing.T) {
		// Given
		var s shipment

		// Then
		assert.Equal(t, errNotConstructed, s.guard.Validate(errNotConstructed))
	})

	t.Run("copy_keeps_mark", func(t *testing.T) {
		// Given
		s, err := newShipment("KA-01-X-9")
		require.NoError(t, err)

		// When
		cp := s

		// Then
		require.NoError(t, cp.guard.Validate(errNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
