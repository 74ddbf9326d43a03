// Package pending keeps signup data and one-time codes for registrations
// that have not been verified yet. Nothing here is durable.
package pending

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/clinickart/backend/internal/domain"
	"github.com/clinickart/backend/pkg/hash"
	"github.com/clinickart/backend/pkg/otp"
)

const (
	DefaultRegistrationTTL = 15 * time.Minute
	DefaultOTPTTL          = 10 * time.Minute
	DefaultMaxAttempts     = 5
)

// Store is keyed by the normalized email of the registration.
type Store interface {
	// Store upserts the registration. The last write wins.
	Store(ctx context.Context, reg domain.PendingRegistration) (*domain.PendingRegistration, error)
	// StoreOTP replaces any previous code for the email and resets its attempts.
	StoreOTP(ctx context.Context, email string, code string) (time.Time, error)
	// Get returns domain.ErrNotFound for absent or expired registrations.
	Get(ctx context.Context, email string) (*domain.PendingRegistration, error)
	CanResend(ctx context.Context, email string, cooldown time.Duration) (bool, error)
	// ResendCooldownRemaining returns whole seconds, rounded up, until a resend is allowed.
	ResendCooldownRemaining(ctx context.Context, email string, cooldown time.Duration) (int, error)
	// VerifyAndConsume hands out the registration at most once per stored code.
	// It fails with domain.ErrNotFound, domain.ErrTooManyAttempts or domain.ErrInvalidCode.
	VerifyAndConsume(ctx context.Context, email string, code string) (*domain.PendingRegistration, error)
	Delete(ctx context.Context, email string) error
	Sweep(ctx context.Context) (SweepResult, error)
	// Stats counts live entries. It may walk the whole keyspace, keep it off
	// unauthenticated paths.
	Stats(ctx context.Context) (domain.PendingStats, error)
	// Ping checks the backend is reachable without touching any entry.
	Ping(ctx context.Context) error
}

type SweepResult struct {
	Registrations int
	OTPs          int
}

type Options struct {
	RegistrationTTL time.Duration
	OTPTTL          time.Duration
	MaxAttempts     int
	Hasher          otp.Hasher
	Now             func() time.Time
}

func (o Options) withDefaults() Options {
	if o.RegistrationTTL <= 0 {
		o.RegistrationTTL = DefaultRegistrationTTL
	}
	if o.OTPTTL <= 0 {
		o.OTPTTL = DefaultOTPTTL
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Hasher == nil {
		o.Hasher = hash.NewSHA256Hasher("")
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func remainingSeconds(createdAt time.Time, cooldown time.Duration, now time.Time) int {
	left := createdAt.Add(cooldown).Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}
