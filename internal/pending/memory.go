package pending

import (
	"context"
	"sync"
	"time"

	"github.com/clinickart/backend/internal/domain"

	"github.com/cespare/xxhash/v2"
)

const defaultShards = 32

type shard struct {
	mu   sync.Mutex
	regs map[string]*domain.PendingRegistration
	otps map[string]*domain.PendingOTP
}

// MemoryStore keeps both records of an email in the same shard so that a
// single shard lock covers verify-and-consume.
type MemoryStore struct {
	opts   Options
	shards []*shard
}

func NewMemoryStore(opts Options) *MemoryStore {
	s := &MemoryStore{
		opts:   opts.withDefaults(),
		shards: make([]*shard, defaultShards),
	}
	for i := range s.shards {
		s.shards[i] = &shard{
			regs: make(map[string]*domain.PendingRegistration),
			otps: make(map[string]*domain.PendingOTP),
		}
	}
	return s
}

func (s *MemoryStore) shardFor(key string) *shard {
	return s.shards[xxhash.Sum64String(key)%uint64(len(s.shards))]
}

func (s *MemoryStore) Store(_ context.Context, reg domain.PendingRegistration) (*domain.PendingRegistration, error) {
	key := NormalizeEmail(reg.Email)
	now := s.opts.Now()

	reg.Email = key
	reg.CreatedAt = now
	reg.ExpiresAt = now.Add(s.opts.RegistrationTTL)

	sh := s.shardFor(key)
	sh.mu.Lock()
	stored := reg
	sh.regs[key] = &stored
	sh.mu.Unlock()

	return &reg, nil
}

func (s *MemoryStore) StoreOTP(_ context.Context, email string, code string) (time.Time, error) {
	key := NormalizeEmail(email)
	now := s.opts.Now()
	rec := &domain.PendingOTP{
		Digest:    s.opts.Hasher.Hash(code),
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.OTPTTL),
	}

	sh := s.shardFor(key)
	sh.mu.Lock()
	sh.otps[key] = rec
	sh.mu.Unlock()

	return rec.ExpiresAt, nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (*domain.PendingRegistration, error) {
	key := NormalizeEmail(email)
	now := s.opts.Now()

	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	reg, ok := sh.regs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if reg.Expired(now) {
		delete(sh.regs, key)
		delete(sh.otps, key)
		return nil, domain.ErrNotFound
	}

	out := *reg
	return &out, nil
}

// liveOTP must be called with the shard lock held.
func (s *MemoryStore) liveOTP(sh *shard, key string, now time.Time) *domain.PendingOTP {
	rec, ok := sh.otps[key]
	if !ok {
		return nil
	}
	if rec.Expired(now) {
		delete(sh.otps, key)
		return nil
	}
	return rec
}

func (s *MemoryStore) CanResend(ctx context.Context, email string, cooldown time.Duration) (bool, error) {
	left, err := s.ResendCooldownRemaining(ctx, email, cooldown)
	if err != nil {
		return false, err
	}
	return left == 0, nil
}

func (s *MemoryStore) ResendCooldownRemaining(_ context.Context, email string, cooldown time.Duration) (int, error) {
	key := NormalizeEmail(email)
	now := s.opts.Now()

	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec := s.liveOTP(sh, key, now)
	if rec == nil {
		return 0, nil
	}
	return remainingSeconds(rec.CreatedAt, cooldown, now), nil
}

func (s *MemoryStore) VerifyAndConsume(_ context.Context, email string, code string) (*domain.PendingRegistration, error) {
	key := NormalizeEmail(email)
	now := s.opts.Now()

	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec := s.liveOTP(sh, key, now)
	if rec == nil {
		return nil, domain.ErrNotFound
	}

	reg, ok := sh.regs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if reg.Expired(now) {
		delete(sh.regs, key)
		delete(sh.otps, key)
		return nil, domain.ErrNotFound
	}

	if rec.Attempts >= s.opts.MaxAttempts {
		return nil, domain.ErrTooManyAttempts
	}

	if !s.opts.Hasher.Verify(code, rec.Digest) {
		rec.Attempts++
		return nil, domain.ErrInvalidCode
	}

	delete(sh.otps, key)
	delete(sh.regs, key)

	out := *reg
	return &out, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	key := NormalizeEmail(email)

	sh := s.shardFor(key)
	sh.mu.Lock()
	delete(sh.regs, key)
	delete(sh.otps, key)
	sh.mu.Unlock()

	return nil
}

// Sweep purges expired entries one shard at a time.
func (s *MemoryStore) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	now := s.opts.Now()

	for _, sh := range s.shards {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		sh.mu.Lock()
		for key, reg := range sh.regs {
			if reg.Expired(now) {
				delete(sh.regs, key)
				res.Registrations++
			}
		}
		for key, rec := range sh.otps {
			if rec.Expired(now) {
				delete(sh.otps, key)
				res.OTPs++
			}
		}
		sh.mu.Unlock()
	}

	return res, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Stats(_ context.Context) (domain.PendingStats, error) {
	var stats domain.PendingStats
	for _, sh := range s.shards {
		sh.mu.Lock()
		stats.Registrations += int64(len(sh.regs))
		stats.OTPs += int64(len(sh.otps))
		sh.mu.Unlock()
	}
	return stats, nil
}
