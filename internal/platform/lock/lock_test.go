package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutexLocker(t *testing.T) {
	t.Run("serializes holders of one key", func(t *testing.T) {
		locker := NewMutexLocker()
		ctx := context.Background()

		const goroutines = 32
		var wg sync.WaitGroup
		counter := 0

		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release, err := locker.Acquire(ctx, "request-1")
				require.NoError(t, err)
				defer release()
				counter++
			}()
		}
		wg.Wait()
		assert.Equal(t, goroutines, counter)
	})

	t.Run("keys are independent", func(t *testing.T) {
		locker := NewMutexLocker()
		ctx := context.Background()

		release, err := locker.Acquire(ctx, "request-1")
		require.NoError(t, err)
		defer release()

		otherRelease, err := locker.Acquire(ctx, "request-2")
		require.NoError(t, err)
		otherRelease()
	})

	t.Run("acquire honours context cancellation", func(t *testing.T) {
		locker := NewMutexLocker()
		release, err := locker.Acquire(context.Background(), "request-1")
		require.NoError(t, err)
		defer release()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err = locker.Acquire(ctx, "request-1")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
