package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/clinickart/backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "pending:"
	regPattern   = keyPrefix + "*:reg"
	otpPattern   = keyPrefix + "*:otp"
	scanPageSize = 500

	fieldDigest    = "digest"
	fieldAttempts  = "attempts"
	fieldCreatedAt = "created_at"
)

const (
	verifyNotFound int64 = iota
	verifyOK
	verifyTooMany
	verifyInvalid
)

// KEYS[1] otp hash, KEYS[2] registration; ARGV[1] digest, ARGV[2] max attempts.
var verifyScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return {0}
end
local payload = redis.call('GET', KEYS[2])
if not payload then
	return {0}
end
local attempts = tonumber(redis.call('HGET', KEYS[1], 'attempts') or '0')
if attempts >= tonumber(ARGV[2]) then
	return {2}
end
if redis.call('HGET', KEYS[1], 'digest') ~= ARGV[1] then
	redis.call('HINCRBY', KEYS[1], 'attempts', 1)
	return {3}
end
redis.call('DEL', KEYS[1], KEYS[2])
return {1, payload}
`)

// RedisStore relies on key TTLs for expiry. Both keys of an email share a
// hash tag so the verify script stays within one cluster slot.
type RedisStore struct {
	client redis.UniversalClient
	opts   Options
}

func NewRedisStore(client redis.UniversalClient, opts Options) *RedisStore {
	return &RedisStore{
		client: client,
		opts:   opts.withDefaults(),
	}
}

func regKey(email string) string {
	return keyPrefix + "{" + email + "}:reg"
}

func otpKey(email string) string {
	return keyPrefix + "{" + email + "}:otp"
}

func (s *RedisStore) Store(ctx context.Context, reg domain.PendingRegistration) (*domain.PendingRegistration, error) {
	const op = "pending.RedisStore.Store"

	key := NormalizeEmail(reg.Email)
	now := s.opts.Now()

	reg.Email = key
	reg.CreatedAt = now
	reg.ExpiresAt = now.Add(s.opts.RegistrationTTL)

	payload, err := json.Marshal(reg)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal: %w", op, err)
	}

	if err := s.client.Set(ctx, regKey(key), payload, s.opts.RegistrationTTL).Err(); err != nil {
		return nil, fmt.Errorf("%s: set: %w", op, err)
	}

	return &reg, nil
}

func (s *RedisStore) StoreOTP(ctx context.Context, email string, code string) (time.Time, error) {
	const op = "pending.RedisStore.StoreOTP"

	key := otpKey(NormalizeEmail(email))
	now := s.opts.Now()

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldDigest, s.opts.Hasher.Hash(code),
			fieldAttempts, 0,
			fieldCreatedAt, now.UnixMilli(),
		)
		pipe.PExpire(ctx, key, s.opts.OTPTTL)
		return nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return now.Add(s.opts.OTPTTL), nil
}

func (s *RedisStore) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	const op = "pending.RedisStore.Get"

	payload, err := s.client.Get(ctx, regKey(NormalizeEmail(email))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var reg domain.PendingRegistration
	if err := json.Unmarshal(payload, &reg); err != nil {
		return nil, fmt.Errorf("%s: unmarshal: %w", op, err)
	}

	return &reg, nil
}

func (s *RedisStore) CanResend(ctx context.Context, email string, cooldown time.Duration) (bool, error) {
	left, err := s.ResendCooldownRemaining(ctx, email, cooldown)
	if err != nil {
		return false, err
	}
	return left == 0, nil
}

func (s *RedisStore) ResendCooldownRemaining(ctx context.Context, email string, cooldown time.Duration) (int, error) {
	const op = "pending.RedisStore.ResendCooldownRemaining"

	raw, err := s.client.HGet(ctx, otpKey(NormalizeEmail(email)), fieldCreatedAt).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: parse created_at: %w", op, err)
	}

	return remainingSeconds(time.UnixMilli(ms), cooldown, s.opts.Now()), nil
}

func (s *RedisStore) VerifyAndConsume(ctx context.Context, email string, code string) (*domain.PendingRegistration, error) {
	const op = "pending.RedisStore.VerifyAndConsume"

	key := NormalizeEmail(email)
	keys := []string{otpKey(key), regKey(key)}

	res, err := verifyScript.Run(ctx, s.client, keys, s.opts.Hasher.Hash(code), s.opts.MaxAttempts).Slice()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("%s: empty script result", op)
	}

	status, ok := res[0].(int64)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected status %T", op, res[0])
	}

	switch status {
	case verifyNotFound:
		return nil, domain.ErrNotFound
	case verifyTooMany:
		return nil, domain.ErrTooManyAttempts
	case verifyInvalid:
		return nil, domain.ErrInvalidCode
	case verifyOK:
	default:
		return nil, fmt.Errorf("%s: unexpected status %d", op, status)
	}

	if len(res) < 2 {
		return nil, fmt.Errorf("%s: missing payload", op)
	}
	payload, ok := res[1].(string)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected payload %T", op, res[1])
	}

	var reg domain.PendingRegistration
	if err := json.Unmarshal([]byte(payload), &reg); err != nil {
		return nil, fmt.Errorf("%s: unmarshal: %w", op, err)
	}

	return &reg, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	key := NormalizeEmail(email)
	if err := s.client.Del(ctx, otpKey(key), regKey(key)).Err(); err != nil {
		return fmt.Errorf("pending.RedisStore.Delete: %w", err)
	}
	return nil
}

// Sweep is a no-op, redis expires the keys itself.
func (s *RedisStore) Sweep(context.Context) (SweepResult, error) {
	return SweepResult{}, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pending.RedisStore.Ping: %w", err)
	}
	return nil
}

func (s *RedisStore) Stats(ctx context.Context) (domain.PendingStats, error) {
	const op = "pending.RedisStore.Stats"

	regs, err := s.count(ctx, regPattern)
	if err != nil {
		return domain.PendingStats{}, fmt.Errorf("%s: %w", op, err)
	}
	otps, err := s.count(ctx, otpPattern)
	if err != nil {
		return domain.PendingStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.PendingStats{Registrations: regs, OTPs: otps}, nil
}

func (s *RedisStore) count(ctx context.Context, pattern string) (int64, error) {
	if cluster, ok := s.client.(*redis.ClusterClient); ok {
		var total atomic.Int64
		err := cluster.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			n, err := scanCount(ctx, node, pattern)
			if err != nil {
				return err
			}
			total.Add(n)
			return nil
		})
		return total.Load(), err
	}

	return scanCount(ctx, s.client, pattern)
}

func scanCount(ctx context.Context, c redis.Cmdable, pattern string) (int64, error) {
	var total int64
	iter := c.Scan(ctx, 0, pattern, scanPageSize).Iterator()
	for iter.Next(ctx) {
		total++
	}
	return total, iter.Err()
}
