package pending

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clinickart/backend/internal/domain"
	"github.com/clinickart/backend/pkg/hash"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type harness struct {
	store   Store
	advance func(d time.Duration)
}

func newMemoryHarness(t *testing.T) harness {
	t.Helper()
	clock := newFakeClock()
	store := NewMemoryStore(Options{
		Hasher: hash.NewSHA256Hasher("pepper"),
		Now:    clock.Now,
	})
	return harness{store: store, advance: clock.Add}
}

func newRedisHarness(t *testing.T) harness {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clock := newFakeClock()
	store := NewRedisStore(client, Options{
		Hasher: hash.NewSHA256Hasher("pepper"),
		Now:    clock.Now,
	})
	return harness{
		store: store,
		advance: func(d time.Duration) {
			clock.Add(d)
			mr.FastForward(d)
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, h harness)) {
	backends := map[string]func(t *testing.T) harness{
		"memory": newMemoryHarness,
		"redis":  newRedisHarness,
	}
	for name, mk := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, mk(t))
		})
	}
}

func jane() domain.PendingRegistration {
	return domain.PendingRegistration{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "Jane@X.com",
		Password:  "Secret123",
	}
}

func TestStore_StoreAndGetNormalizesEmail(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		stored, err := h.store.Store(ctx, jane())
		require.NoError(t, err)
		assert.Equal(t, "jane@x.com", stored.Email)
		assert.Equal(t, DefaultRegistrationTTL, stored.ExpiresAt.Sub(stored.CreatedAt))

		got, err := h.store.Get(ctx, " JANE@x.com ")
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.FirstName)
		assert.Equal(t, "Secret123", got.Password)
	})
}

func TestStore_LastWriteWins(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		_, err := h.store.Store(ctx, jane())
		require.NoError(t, err)

		second := jane()
		second.FirstName = "Janet"
		_, err = h.store.Store(ctx, second)
		require.NoError(t, err)

		got, err := h.store.Get(ctx, "jane@x.com")
		require.NoError(t, err)
		assert.Equal(t, "Janet", got.FirstName)
	})
}

func TestStore_RegistrationExpires(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		_, err := h.store.Store(ctx, jane())
		require.NoError(t, err)

		h.advance(DefaultRegistrationTTL - time.Second)
		_, err = h.store.Get(ctx, "jane@x.com")
		require.NoError(t, err)

		h.advance(time.Second)
		_, err = h.store.Get(ctx, "jane@x.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_VerifyAndConsume(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		_, err := h.store.Store(ctx, jane())
		require.NoError(t, err)
		_, err = h.store.StoreOTP(ctx, "jane@x.com", "123456")
		require.NoError(t, err)

		_, err = h.store.VerifyAndConsume(ctx, "jane@x.com", "000000")
		assert.ErrorIs(t, err, domain.ErrInvalidCode)

		reg, err := h.store.VerifyAndConsume(ctx, "jane@x.com", "123456")
		require.NoError(t, err)
		assert.Equal(t, "jane@x.com", reg.Email)

		_, err = h.store.VerifyAndConsume(ctx, "jane@x.com", "123456")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = h.store.Get(ctx, "jane@x.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_TooManyAttemptsKeepsRecord(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		_, err := h.store.Store(ctx, jane())
		require.NoError(t, err)
		_, err = h.store.StoreOTP(ctx, "jane@x.com", "123456")
		require.NoError(t, err)

		for i := 0; i < DefaultMaxAttempts; i++ {
			_, err = h.store.VerifyAndConsume(ctx, "jane@x.com", "999999")
			require.ErrorIs(t, err, domain.ErrInvalidCode)
		}

		_, err = h.store.VerifyAndConsume(ctx, "jane@x.com", "123456")
		assert.ErrorIs(t, err, domain.ErrTooManyAttempts)

		_, err = h.store.Get(ctx, "jane@x.com")
		assert.NoError(t, err)
	})
}

func TestStore_NewOTPInvalidatesPrevious(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		_, err := h.store.Store(ctx, jane())
		require.NoError(t, err)
		_, err = h.store.StoreOTP(ctx, "jane@x.com", "111111")
		require.NoError(t, err)
		_, err = h.store.VerifyAndConsume(ctx, "jane@x.com", "000000")
		require.ErrorIs(t, err, domain.ErrInvalidCode)

		_, err = h.store.StoreOTP(ctx, "jane@x.com", "222222")
		require.NoError(t, err)

		_, err = h.store.VerifyAndConsume(ctx, "jane@x.com", "111111")
		assert.ErrorIs(t, err, domain.ErrInvalidCode)

		_, err = h.store.VerifyAndConsume(ctx, "jane@x.com", "222222")
		assert.NoError(t, err)
	})
}

func TestStore_OTPExpires(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		_, err := h.store.Store(ctx, jane())
		require.NoError(t, err)
		expiresAt, err := h.store.StoreOTP(ctx, "jane@x.com", "123456")
		require.NoError(t, err)
		assert.False(t, expiresAt.IsZero())

		h.advance(DefaultOTPTTL)

		_, err = h.store.VerifyAndConsume(ctx, "jane@x.com", "123456")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_VerifyWithoutRegistration(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		_, err := h.store.StoreOTP(ctx, "ghost@x.com", "123456")
		require.NoError(t, err)

		_, err = h.store.VerifyAndConsume(ctx, "ghost@x.com", "123456")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_ResendCooldown(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		ctx := context.Background()
		cooldown := 2 * time.Minute

		ok, err := h.store.CanResend(ctx, "jane@x.com", cooldown)
		require.NoError(t, err)
		assert.True(t, ok, "no otp yet")

		_, err = h.store.StoreOTP(ctx, "jane@x.com", "123456")
		require.NoError(t, err)

		ok, err = h.store.CanResend(ctx, "jane@x.com", cooldown)
		require.NoError(t, err)
		assert.False(t, ok)

		prev, err := h.store.ResendCooldownRemaining(ctx, "jane@x.com", cooldown)
		require.NoError(t, err)
		assert.Equal(t, 120, prev)

		for _, step := range []time.Duration{30 * time.Second, 45 * time.Second, 44*time.Second + 500*time.Millisecond} {
			h.advance(step)
			left, err := h.store.ResendCooldownRemaining(ctx, "jane@x.com", cooldown)
			require.NoError(t, err)
			assert.Positive(t, left)
			assert.Less(t, left, prev)
			prev = left
		}
		assert.Equal(t, 1, prev, "half a second left rounds up")

		h.advance(500 * time.Millisecond)
		left, err := h.store.ResendCooldownRemaining(ctx, "jane@x.com", cooldown)
		require.NoError(t, err)
		assert.Zero(t, left)

		ok, err = h.store.CanResend(ctx, "jane@x.com", cooldown)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestStore_DeleteAndStats(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		_, err := h.store.Store(ctx, jane())
		require.NoError(t, err)
		_, err = h.store.StoreOTP(ctx, "jane@x.com", "123456")
		require.NoError(t, err)

		other := jane()
		other.Email = "john@x.com"
		_, err = h.store.Store(ctx, other)
		require.NoError(t, err)

		stats, err := h.store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.PendingStats{Registrations: 2, OTPs: 1}, stats)

		require.NoError(t, h.store.Delete(ctx, "JANE@x.com"))

		stats, err = h.store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.PendingStats{Registrations: 1, OTPs: 0}, stats)
	})
}

func TestStore_ConcurrentVerifySucceedsOnce(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		_, err := h.store.Store(ctx, jane())
		require.NoError(t, err)
		_, err = h.store.StoreOTP(ctx, "jane@x.com", "123456")
		require.NoError(t, err)

		var (
			wg        sync.WaitGroup
			successes atomic.Int32
		)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := h.store.VerifyAndConsume(ctx, "jane@x.com", "123456"); err == nil {
					successes.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), successes.Load())
	})
}

func TestMemoryStore_SweepRemovesOnlyExpired(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(Options{Now: clock.Now})
	ctx := context.Background()

	_, err := store.Store(ctx, jane())
	require.NoError(t, err)
	_, err = store.StoreOTP(ctx, "jane@x.com", "123456")
	require.NoError(t, err)

	clock.Add(11 * time.Minute)

	fresh := jane()
	fresh.Email = "fresh@x.com"
	_, err = store.Store(ctx, fresh)
	require.NoError(t, err)
	_, err = store.StoreOTP(ctx, "fresh@x.com", "654321")
	require.NoError(t, err)

	res, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Registrations: 0, OTPs: 1}, res)

	clock.Add(5 * time.Minute)

	res, err = store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Registrations: 1, OTPs: 0}, res)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PendingStats{Registrations: 1, OTPs: 1}, stats)

	_, err = store.VerifyAndConsume(ctx, "fresh@x.com", "654321")
	assert.NoError(t, err)
}

func TestMemoryStore_OTPIsStoredAsDigest(t *testing.T) {
	store := NewMemoryStore(Options{Hasher: hash.NewSHA256Hasher("pepper")})
	ctx := context.Background()

	_, err := store.StoreOTP(ctx, "jane@x.com", "123456")
	require.NoError(t, err)

	sh := store.shardFor("jane@x.com")
	rec := sh.otps["jane@x.com"]
	require.NotNil(t, rec)
	assert.NotEqual(t, "123456", rec.Digest)
	assert.Len(t, rec.Digest, 64)
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(Options{Now: clock.Now})
	sweeper := NewSweeper(store, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeper_SweepOnce(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(Options{Now: clock.Now})
	ctx := context.Background()

	_, err := store.Store(ctx, jane())
	require.NoError(t, err)
	clock.Add(DefaultRegistrationTTL)

	res := NewSweeper(store, time.Minute).SweepOnce(ctx)
	assert.Equal(t, 1, res.Registrations)
}

// backend names the embedded field so it does not hide the Store method.
type backend = Store

type countingStore struct {
	backend
	statsCalls atomic.Int32
}

func (s *countingStore) Stats(ctx context.Context) (domain.PendingStats, error) {
	s.statsCalls.Add(1)
	return s.backend.Stats(ctx)
}

func TestSweeper_LastStats(t *testing.T) {
	store := &countingStore{backend: NewMemoryStore(Options{})}
	sweeper := NewSweeper(store, time.Minute)
	ctx := context.Background()

	_, ok := sweeper.LastStats()
	assert.False(t, ok)

	_, err := store.Store(ctx, jane())
	require.NoError(t, err)
	sweeper.SweepOnce(ctx)

	for i := 0; i < 10; i++ {
		snap, ok := sweeper.LastStats()
		require.True(t, ok)
		assert.Equal(t, domain.PendingStats{Registrations: 1}, snap.Stats)
		assert.False(t, snap.At.IsZero())
	}
	assert.Equal(t, int32(1), store.statsCalls.Load())
}

func TestStore_Ping(t *testing.T) {
	forEachBackend(t, func(t *testing.T, h harness) {
		assert.NoError(t, h.store.Ping(context.Background()))
	})
}

func TestRedisStore_PingFailsWhenServerIsGone(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, Options{})
	require.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
