package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderID(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		id, err := kernel.NewOrderID("  SO-2024-0042 ")

		require.NoError(t, err)
		assert.Equal(t, "SO-2024-0042", id.String())
		assert.NoError(t, id.Validate())
	})

	t.Run("rejects blank values", func(t *testing.T) {
		for _, in := range []string{"", "   ", "\t"} {
			_, err := kernel.NewOrderID(in)
			require.ErrorIs(t, err, errs.ErrValueIsRequired)
		}
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var id kernel.OrderID

		assert.True(t, id.IsZero())
		require.ErrorIs(t, id.Validate(), errs.ErrValueIsRequired)
	})

	t.Run("equality by value", func(t *testing.T) {
		a, _ := kernel.NewOrderID("665f1c")
		b, _ := kernel.NewOrderID("665f1c")
		c, _ := kernel.NewOrderID("665f1d")

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})
}
