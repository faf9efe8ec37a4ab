package commands_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderLocker(t *testing.T) {
	t.Run("should serialize holders of the same order", func(t *testing.T) {
		locker := commands.NewOrderLocker()
		id := orderID(t)

		var (
			wg      sync.WaitGroup
			holders atomic.Int32
			maxSeen atomic.Int32
		)
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := locker.Lock(context.Background(), id)
				if !assert.NoError(t, err) {
					return
				}
				n := holders.Add(1)
				if n > maxSeen.Load() {
					maxSeen.Store(n)
				}
				time.Sleep(time.Millisecond)
				holders.Add(-1)
				unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), maxSeen.Load())
		assert.Equal(t, 0, locker.Len())
	})

	t.Run("should not block other orders", func(t *testing.T) {
		locker := commands.NewOrderLocker()
		other, err := kernel.NewOrderID("SO-9999")
		require.NoError(t, err)

		unlock, err := locker.Lock(t.Context(), orderID(t))
		require.NoError(t, err)
		defer unlock()

		ctx, cancel := context.WithTimeout(t.Context(), time.Second)
		defer cancel()
		unlockOther, err := locker.Lock(ctx, other)
		require.NoError(t, err)
		unlockOther()
	})

	t.Run("should give up when the context ends", func(t *testing.T) {
		locker := commands.NewOrderLocker()
		unlock, err := locker.Lock(t.Context(), orderID(t))
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(ctx, orderID(t))

		require.ErrorIs(t, err, context.DeadlineExceeded)
		unlock()
		assert.Equal(t, 0, locker.Len())
	})
}
