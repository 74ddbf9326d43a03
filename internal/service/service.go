package service

import (
	"context"
	"time"

	"github.com/clinickart/backend/internal/config"
	"github.com/clinickart/backend/internal/domain"
	"github.com/clinickart/backend/internal/pending"
	"github.com/clinickart/backend/internal/repository"
	"github.com/clinickart/backend/pkg/auth"
	"github.com/clinickart/backend/pkg/hash"
	"github.com/clinickart/backend/pkg/otp"

	"github.com/google/uuid"
)

type Services struct {
	Vendors Vendors
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	PendingStore pending.Store
	PendingStats PendingStatsSource
	Notifier     Notifier
	Repos        *repository.Repositories
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewServices(deps Deps) *Services {
	vendors := newVendorService(deps.Repos.Vendors,
		deps.Repos.VendorProfiles,
		deps.PendingStore,
		deps.Hasher,
		deps.TokenManager,
		deps.OtpGenerator,
		deps.Notifier,
		deps.Config.Registration,
		deps.Now,
	)
	vendors.pendingStats = deps.PendingStats

	return &Services{
		Vendors: vendors,
	}
}

// PendingStatsSource serves pending counts without walking the store.
// *pending.Sweeper implements it.
type PendingStatsSource interface {
	LastStats() (pending.StatsSnapshot, bool)
}

type Vendors interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	ResendOTP(ctx context.Context, email string) (*ResendResult, error)
	VerifyEmail(ctx context.Context, email string, code string) (*AuthResult, error)
	SetupProfile(ctx context.Context, vendorID uuid.UUID, input ProfileInput) (*ProfileResult, error)
	Login(ctx context.Context, email string, password string) (*AuthResult, error)
	Logout(ctx context.Context, vendorID uuid.UUID, refreshToken string) error
	RefreshTokens(ctx context.Context, refreshToken string) (*AuthResult, error)
	RegistrationStatus(ctx context.Context, vendorID uuid.UUID) (*RegistrationStatus, error)
	GetProfile(ctx context.Context, vendorID uuid.UUID) (*ProfileResult, error)
	UpdateProfile(ctx context.Context, vendorID uuid.UUID, input UpdateProfileInput) (*ProfileResult, error)
	Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error)
	Stats(ctx context.Context) (*Stats, error)
	Health(ctx context.Context) (*Health, error)
}
