//go:build integration

package lock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"razeflow/internal/platform/lock"
	"razeflow/pkg/testutil/containers"
)

type RedisLockerSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	locker *lock.RedisLocker
}

func TestRedisLockerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLockerSuite))
}

func (s *RedisLockerSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.locker = lock.NewRedisLocker(s.redis.Client, 5*time.Second)
}

func (s *RedisLockerSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisLockerSuite) TestAcquireRelease() {
	ctx := context.Background()

	release, err := s.locker.Acquire(ctx, "request-1")
	s.Require().NoError(err)

	// A second acquire on the same key must wait for the release.
	blockedCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = s.locker.Acquire(blockedCtx, "request-1")
	s.ErrorIs(err, context.DeadlineExceeded)

	// A different key is independent.
	otherRelease, err := s.locker.Acquire(ctx, "request-2")
	s.Require().NoError(err)
	otherRelease()

	release()
	reacquired, err := s.locker.Acquire(ctx, "request-1")
	s.Require().NoError(err)
	reacquired()
}

func (s *RedisLockerSuite) TestMutualExclusion() {
	ctx := context.Background()

	const goroutines = 16
	var wg sync.WaitGroup
	var counter int
	var inside sync.Mutex

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := s.locker.Acquire(ctx, "shared")
			if err != nil {
				return
			}
			defer release()

			// TryLock failing here would mean two holders at once.
			if !inside.TryLock() {
				s.Fail("lock held concurrently")
				return
			}
			counter++
			time.Sleep(5 * time.Millisecond)
			inside.Unlock()
		}()
	}
	wg.Wait()

	s.Equal(goroutines, counter)
}

func (s *RedisLockerSuite) TestExpiredLockIsReacquirable() {
	ctx := context.Background()
	short := lock.NewRedisLocker(s.redis.Client, 100*time.Millisecond)

	_, err := short.Acquire(ctx, "request-1")
	s.Require().NoError(err)

	// Never released; the TTL has to free it.
	acquireCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	release, err := short.Acquire(acquireCtx, "request-1")
	s.Require().NoError(err)
	release()
}
