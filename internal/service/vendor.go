package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/clinickart/backend/internal/config"
	"github.com/clinickart/backend/internal/domain"
	"github.com/clinickart/backend/internal/metrics"
	"github.com/clinickart/backend/internal/pending"
	"github.com/clinickart/backend/internal/repository"
	"github.com/clinickart/backend/pkg/auth"
	"github.com/clinickart/backend/pkg/hash"
	"github.com/clinickart/backend/pkg/logger"
	"github.com/clinickart/backend/pkg/otp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RoleVendor = "vendor"

	otpPurposeRegistration = "registration"

	// Compared against on unknown emails so both login failures cost one bcrypt round.
	dummyPassword = "clinickart-timing-equaliser"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type RegisterResult struct {
	Email        string
	NextStep     domain.RegistrationStep
	OTPExpiresIn time.Duration
	OTPExpiresAt time.Time
	// OTP is only set when codes are exposed for testing.
	OTP string
}

type ResendResult struct {
	Email        string
	OTPExpiresIn time.Duration
	OTPExpiresAt time.Time
	OTP          string
}

type Tokens struct {
	AccessToken  string
	AccessTTL    time.Duration
	RefreshToken string
	RefreshTTL   time.Duration
}

type AuthResult struct {
	Vendor *domain.Vendor
	Tokens Tokens
}

type ProfileInput struct {
	Phone                      string
	AlternatePhone             string
	BusinessName               string
	BusinessType               domain.BusinessType
	BusinessRegistrationNumber string
	GSTNumber                  string
	LicenseNumber              string
	Address                    domain.Address
	Description                string
	EstablishedYear            int
	BankDetails                domain.BankDetails
}

// UpdateProfileInput lists every field a vendor may change after setup.
// Nil fields are left untouched.
type UpdateProfileInput struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	AlternatePhone  *string
	BusinessName    *string
	GSTNumber       *string
	LicenseNumber   *string
	Description     *string
	EstablishedYear *int
	Address         *domain.Address
	BankDetails     *domain.BankDetails
}

type ProfileResult struct {
	Vendor  *domain.Vendor
	Profile *domain.VendorProfile
}

type RegistrationStatus struct {
	VendorID               uuid.UUID
	Email                  string
	FullName               string
	IsEmailVerified        bool
	IsRegistrationComplete bool
	IsProfileComplete      bool
	RegistrationStep       domain.RegistrationStep
	CanAddProducts         bool
	NextAction             domain.NextAction
}

// Health.PendingAt is nil until the first sweep has finished.
type Health struct {
	Pending   domain.PendingStats
	PendingAt *time.Time
}

type Stats struct {
	Vendors       int64
	VendorsByStep map[domain.RegistrationStep]int64
	Pending       domain.PendingStats
}

type vendorService struct {
	vendorRepository  repository.Vendors
	profileRepository repository.VendorProfiles
	pendingStore      pending.Store
	hasher            hash.PasswordHasher
	tokenManager      auth.TokenManager
	otpGenerator      otp.Generator
	notifier          Notifier
	registration      config.RegistrationConfig
	now               func() time.Time
	pendingStats      PendingStatsSource

	dummyOnce sync.Once
	dummyHash string
}

func newVendorService(vendorRepository repository.Vendors,
	profileRepository repository.VendorProfiles,
	pendingStore pending.Store,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	otpGenerator otp.Generator,
	notifier Notifier,
	registration config.RegistrationConfig,
	now func() time.Time,
) *vendorService {
	if now == nil {
		now = time.Now
	}
	return &vendorService{
		vendorRepository:  vendorRepository,
		profileRepository: profileRepository,
		pendingStore:      pendingStore,
		hasher:            hasher,
		tokenManager:      tokenManager,
		otpGenerator:      otpGenerator,
		notifier:          notifier,
		registration:      registration,
		now:               now,
	}
}

func (s *vendorService) otpTTL() time.Duration {
	if s.registration.OTPTTL > 0 {
		return s.registration.OTPTTL
	}
	return pending.DefaultOTPTTL
}

// Register holds the signup in the pending store and sends a fresh code.
// Nothing durable is written until the email is verified.
func (s *vendorService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	email := pending.NormalizeEmail(input.Email)

	// The password is only hashed once the code is consumed, so anything
	// bcrypt would refuse must be rejected here.
	if len(input.Password) > hash.MaxPasswordLength {
		metrics.VendorRegistrations.WithLabelValues("invalid").Inc()
		return nil, ErrPasswordTooLong
	}

	_, err := s.vendorRepository.GetByEmail(ctx, email)
	if err == nil {
		metrics.VendorRegistrations.WithLabelValues("exists").Inc()
		// A leftover signup for a verified email can never be promoted.
		if err := s.pendingStore.Delete(ctx, email); err != nil {
			logger.Warn("drop stale pending registration failed", zap.String("email", email), zap.Error(err))
		}
		return nil, ErrVendorAlreadyExists
	}
	if !errors.Is(err, domain.ErrNotFound) {
		metrics.VendorRegistrations.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("get vendor by email failed: %w", err)
	}

	reg := domain.PendingRegistration{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Password:  input.Password,
	}
	if s.registration.HashAtIntake {
		hashed, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password failed: %w", err)
		}
		reg.Password = hashed
		reg.PasswordHashed = true
	}

	if _, err := s.pendingStore.Store(ctx, reg); err != nil {
		metrics.VendorRegistrations.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("store pending registration failed: %w", err)
	}

	code, expiresAt, err := s.issueOTP(ctx, email)
	if err != nil {
		metrics.VendorRegistrations.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	metrics.VendorRegistrations.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logger.Info("vendor registration initiated", zap.String("email", email))

	result := &RegisterResult{
		Email:        email,
		NextStep:     domain.StepEmailVerification,
		OTPExpiresIn: s.otpTTL(),
		OTPExpiresAt: expiresAt,
	}
	if s.registration.ExposeOTP {
		result.OTP = code
	}
	return result, nil
}

func (s *vendorService) ResendOTP(ctx context.Context, email string) (*ResendResult, error) {
	email = pending.NormalizeEmail(email)

	if _, err := s.pendingStore.Get(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrNoPendingRegistration
		}
		return nil, fmt.Errorf("get pending registration failed: %w", err)
	}

	cooldown := s.registration.ResendCooldown
	ok, err := s.pendingStore.CanResend(ctx, email, cooldown)
	if err != nil {
		return nil, fmt.Errorf("check resend cooldown failed: %w", err)
	}
	if !ok {
		remaining, err := s.pendingStore.ResendCooldownRemaining(ctx, email, cooldown)
		if err != nil {
			return nil, fmt.Errorf("get resend cooldown failed: %w", err)
		}
		return nil, &RateLimitedError{RetryAfter: max(remaining, 1)}
	}

	code, expiresAt, err := s.issueOTP(ctx, email)
	if err != nil {
		return nil, err
	}

	result := &ResendResult{
		Email:        email,
		OTPExpiresIn: s.otpTTL(),
		OTPExpiresAt: expiresAt,
	}
	if s.registration.ExposeOTP {
		result.OTP = code
	}
	return result, nil
}

func (s *vendorService) issueOTP(ctx context.Context, email string) (string, time.Time, error) {
	code := s.otpGenerator.Generate()
	expiresAt, err := s.pendingStore.StoreOTP(ctx, email, code)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("store otp failed: %w", err)
	}

	s.notifier.SendOTP(ctx, email, code, otpPurposeRegistration)
	return code, expiresAt, nil
}

// VerifyEmail consumes the pending registration and creates the vendor
// with its first session.
func (s *vendorService) VerifyEmail(ctx context.Context, email string, code string) (*AuthResult, error) {
	email = pending.NormalizeEmail(email)

	reg, err := s.pendingStore.VerifyAndConsume(ctx, email, code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			metrics.OTPVerifications.WithLabelValues("not_found").Inc()
			return nil, ErrNoPendingRegistration
		case errors.Is(err, domain.ErrInvalidCode):
			metrics.OTPVerifications.WithLabelValues("invalid").Inc()
			return nil, ErrInvalidOTP
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.OTPVerifications.WithLabelValues("too_many").Inc()
			return nil, ErrTooManyOTPAttempts
		}
		metrics.OTPVerifications.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("verify otp failed: %w", err)
	}

	// Two verifications for one email can overlap with a registration that
	// was already promoted.
	if _, err := s.vendorRepository.GetByEmail(ctx, reg.Email); err == nil {
		return nil, ErrVendorAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get vendor by email failed: %w", err)
	}

	password := reg.Password
	if !reg.PasswordHashed {
		password, err = s.hasher.Hash(reg.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password failed: %w", err)
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate vendor id failed: %w", err)
	}

	now := s.now()
	vendor := &domain.Vendor{
		ID:                      id,
		FirstName:               reg.FirstName,
		LastName:                reg.LastName,
		Email:                   reg.Email,
		Password:                password,
		Role:                    RoleVendor,
		IsEmailVerified:         true,
		IsRegistrationComplete:  true,
		RegistrationCompletedAt: &now,
		RegistrationStep:        domain.StepEmailVerification,
		IsActive:                true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	vendor.AdvanceStep(domain.StepProfileSetup)

	tokens, err := s.createSession(vendor, now)
	if err != nil {
		return nil, err
	}

	if err := s.vendorRepository.Create(ctx, vendor); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrVendorAlreadyExists
		}
		metrics.OTPVerifications.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("create vendor failed: %w", err)
	}

	metrics.OTPVerifications.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logger.Info("vendor created", zap.String("vendor_id", vendor.ID.String()))

	s.notifier.SendWelcome(ctx, vendor.Email, vendor.FullName(), vendor.Role)

	return &AuthResult{Vendor: vendor, Tokens: *tokens}, nil
}

// createSession issues a token pair and records the refresh token on the
// vendor. The caller persists the vendor.
func (s *vendorService) createSession(vendor *domain.Vendor, now time.Time) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewAccessToken(vendor.ID.String(), vendor.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	res.RefreshToken, res.RefreshTTL, err = s.tokenManager.NewRefreshToken(vendor.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token failed: %w", err)
	}

	vendor.AddRefreshToken(res.RefreshToken, now)
	return &res, nil
}

func (s *vendorService) getVendor(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	vendor, err := s.vendorRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("get vendor by id failed: %w", err)
	}
	return vendor, nil
}

// SetupProfile writes the profile first and flips the vendor flags second.
// A vendor that already owns a profile but is not marked complete had the
// second write fail earlier, so only the flag update is redriven.
func (s *vendorService) SetupProfile(ctx context.Context, vendorID uuid.UUID, input ProfileInput) (*ProfileResult, error) {
	vendor, err := s.getVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsEmailVerified {
		return nil, ErrEmailNotVerified
	}
	if vendor.IsProfileComplete {
		return nil, ErrProfileAlreadyComplete
	}

	profile, err := s.profileRepository.GetByVendorID(ctx, vendor.ID)
	switch {
	case err == nil:
		logger.Info("redriving vendor profile completion", zap.String("vendor_id", vendor.ID.String()))
	case errors.Is(err, domain.ErrNotFound):
		profile, err = s.createProfile(ctx, vendor.ID, input)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("get vendor profile failed: %w", err)
	}

	now := s.now()
	vendor.IsProfileComplete = true
	vendor.ProfileCompletedAt = &now
	vendor.AdvanceStep(domain.StepCompleted)
	vendor.UpdatedAt = now

	if err := s.vendorRepository.Update(ctx, vendor); err != nil {
		return nil, fmt.Errorf("update vendor failed: %w", err)
	}

	return &ProfileResult{Vendor: vendor, Profile: profile}, nil
}

func (s *vendorService) createProfile(ctx context.Context, vendorID uuid.UUID, input ProfileInput) (*domain.VendorProfile, error) {
	regNumber := strings.TrimSpace(input.BusinessRegistrationNumber)

	if _, err := s.profileRepository.GetByRegistrationNumber(ctx, regNumber); err == nil {
		return nil, ErrDuplicateRegistrationNumber
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get vendor profile by registration number failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate profile id failed: %w", err)
	}

	address := input.Address
	if strings.TrimSpace(address.Country) == "" {
		address.Country = domain.DefaultCountry
	}

	now := s.now()
	profile := &domain.VendorProfile{
		ID:                         id,
		VendorID:                   vendorID,
		Phone:                      input.Phone,
		AlternatePhone:             input.AlternatePhone,
		BusinessName:               strings.TrimSpace(input.BusinessName),
		BusinessType:               input.BusinessType,
		BusinessRegistrationNumber: regNumber,
		GSTNumber:                  strings.ToUpper(input.GSTNumber),
		LicenseNumber:              input.LicenseNumber,
		Address:                    address,
		Description:                input.Description,
		EstablishedYear:            input.EstablishedYear,
		BankDetails:                input.BankDetails,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	profile.BankDetails.IFSCCode = strings.ToUpper(profile.BankDetails.IFSCCode)

	if err := s.profileRepository.Create(ctx, profile); err != nil {
		if !errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, fmt.Errorf("create vendor profile failed: %w", err)
		}
		// Either the number was taken in the meantime or a concurrent setup
		// for this vendor won.
		existing, getErr := s.profileRepository.GetByVendorID(ctx, vendorID)
		if getErr == nil {
			return existing, nil
		}
		return nil, ErrDuplicateRegistrationNumber
	}

	return profile, nil
}

func (s *vendorService) Login(ctx context.Context, email string, password string) (*AuthResult, error) {
	email = pending.NormalizeEmail(email)

	vendor, err := s.vendorRepository.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			metrics.VendorLogins.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, fmt.Errorf("get vendor by email failed: %w", err)
		}
		_ = s.hasher.Compare(s.dummyPasswordHash(), password)
		metrics.VendorLogins.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(vendor.Password, password); err != nil {
		if !errors.Is(err, hash.ErrMismatch) {
			logger.Error("compare vendor password failed", zap.String("vendor_id", vendor.ID.String()), zap.Error(err))
		}
		metrics.VendorLogins.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, ErrInvalidCredentials
	}

	if !vendor.IsActive {
		metrics.VendorLogins.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, ErrVendorDeactivated
	}

	now := s.now()
	tokens, err := s.createSession(vendor, now)
	if err != nil {
		return nil, err
	}
	vendor.LastLoginAt = &now
	vendor.UpdatedAt = now

	if err := s.vendorRepository.Update(ctx, vendor); err != nil {
		metrics.VendorLogins.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("update vendor failed: %w", err)
	}

	metrics.VendorLogins.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return &AuthResult{Vendor: vendor, Tokens: *tokens}, nil
}

func (s *vendorService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hashed, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			logger.Error("hash dummy password failed", zap.Error(err))
			return
		}
		s.dummyHash = hashed
	})
	return s.dummyHash
}

// Logout forgets the refresh token. Unknown tokens are not an error.
func (s *vendorService) Logout(ctx context.Context, vendorID uuid.UUID, refreshToken string) error {
	vendor, err := s.getVendor(ctx, vendorID)
	if err != nil {
		return err
	}

	if !vendor.RemoveRefreshToken(refreshToken) {
		return nil
	}
	vendor.UpdatedAt = s.now()

	if err := s.vendorRepository.Update(ctx, vendor); err != nil {
		return fmt.Errorf("update vendor failed: %w", err)
	}
	return nil
}

// RefreshTokens rotates a refresh token: the presented token is dropped
// and a new pair is issued. A token that was already rotated is rejected.
func (s *vendorService) RefreshTokens(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.tokenManager.ParseRefreshToken(refreshToken)
	if err != nil {
		logger.Debug("refresh token rejected", zap.Error(err))
		return nil, ErrUnauthorized
	}

	vendorID, err := uuid.Parse(claims.Subject)
	if err != nil {
		logger.Debug("refresh token subject is not a uuid", zap.String("subject", claims.Subject))
		return nil, ErrUnauthorized
	}

	vendor, err := s.getVendor(ctx, vendorID)
	if err != nil {
		if errors.Is(err, ErrVendorNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if !vendor.HasRefreshToken(refreshToken) {
		logger.Debug("refresh token is not active", zap.String("vendor_id", vendor.ID.String()))
		return nil, ErrUnauthorized
	}
	if !vendor.IsActive {
		return nil, ErrVendorDeactivated
	}

	now := s.now()
	vendor.RemoveRefreshToken(refreshToken)
	tokens, err := s.createSession(vendor, now)
	if err != nil {
		return nil, err
	}
	vendor.UpdatedAt = now

	if err := s.vendorRepository.Update(ctx, vendor); err != nil {
		return nil, fmt.Errorf("update vendor failed: %w", err)
	}

	return &AuthResult{Vendor: vendor, Tokens: *tokens}, nil
}

func (s *vendorService) RegistrationStatus(ctx context.Context, vendorID uuid.UUID) (*RegistrationStatus, error) {
	vendor, err := s.getVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	return &RegistrationStatus{
		VendorID:               vendor.ID,
		Email:                  vendor.Email,
		FullName:               vendor.FullName(),
		IsEmailVerified:        vendor.IsEmailVerified,
		IsRegistrationComplete: vendor.IsRegistrationComplete,
		IsProfileComplete:      vendor.IsProfileComplete,
		RegistrationStep:       vendor.RegistrationStep,
		CanAddProducts:         vendor.CanAddProducts(),
		NextAction:             vendor.NextAction(),
	}, nil
}

// GetProfile returns the vendor and, once setup is done, its profile.
func (s *vendorService) GetProfile(ctx context.Context, vendorID uuid.UUID) (*ProfileResult, error) {
	vendor, err := s.getVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	result := &ProfileResult{Vendor: vendor}
	if !vendor.IsProfileComplete {
		return result, nil
	}

	profile, err := s.profileRepository.GetByVendorID(ctx, vendor.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get vendor profile failed: %w", err)
	}
	result.Profile = profile
	return result, nil
}

func (s *vendorService) UpdateProfile(ctx context.Context, vendorID uuid.UUID, input UpdateProfileInput) (*ProfileResult, error) {
	vendor, err := s.getVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepository.GetByVendorID(ctx, vendor.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		profile = nil
	case err != nil:
		return nil, fmt.Errorf("get vendor profile failed: %w", err)
	}

	profileChanged := profile != nil && applyProfileUpdate(profile, input)
	// Nothing is written when the update would leave a mandatory field blank.
	if profileChanged && !profile.IsComplete() {
		return nil, ErrProfileIncomplete
	}

	now := s.now()
	vendorChanged := setIfPresent(&vendor.FirstName, input.FirstName)
	vendorChanged = setIfPresent(&vendor.LastName, input.LastName) || vendorChanged
	if vendorChanged {
		vendor.UpdatedAt = now
		if err := s.vendorRepository.Update(ctx, vendor); err != nil {
			return nil, fmt.Errorf("update vendor failed: %w", err)
		}
	}

	if profileChanged {
		profile.UpdatedAt = now
		if err := s.profileRepository.Update(ctx, profile); err != nil {
			return nil, fmt.Errorf("update vendor profile failed: %w", err)
		}
	}

	return &ProfileResult{Vendor: vendor, Profile: profile}, nil
}

func applyProfileUpdate(profile *domain.VendorProfile, input UpdateProfileInput) bool {
	changed := false
	for _, field := range []struct {
		dst *string
		src *string
	}{
		{&profile.Phone, input.Phone},
		{&profile.AlternatePhone, input.AlternatePhone},
		{&profile.BusinessName, input.BusinessName},
		{&profile.GSTNumber, input.GSTNumber},
		{&profile.LicenseNumber, input.LicenseNumber},
		{&profile.Description, input.Description},
	} {
		changed = setIfPresent(field.dst, field.src) || changed
	}
	if input.EstablishedYear != nil && *input.EstablishedYear != profile.EstablishedYear {
		profile.EstablishedYear = *input.EstablishedYear
		changed = true
	}
	if input.Address != nil {
		address := *input.Address
		if strings.TrimSpace(address.Country) == "" {
			address.Country = domain.DefaultCountry
		}
		profile.Address = address
		changed = true
	}
	if input.BankDetails != nil {
		profile.BankDetails = *input.BankDetails
		profile.BankDetails.IFSCCode = strings.ToUpper(profile.BankDetails.IFSCCode)
		changed = true
	}
	profile.GSTNumber = strings.ToUpper(profile.GSTNumber)

	return changed
}

func setIfPresent(dst *string, src *string) bool {
	if src == nil || *src == *dst {
		return false
	}
	*dst = *src
	return true
}

// Authenticate turns an access token into the calling principal. Every
// failure is reported as ErrUnauthorized.
func (s *vendorService) Authenticate(_ context.Context, accessToken string) (*domain.Principal, error) {
	claims, err := s.tokenManager.ParseAccessToken(accessToken)
	if err != nil {
		logger.Debug("access token rejected", zap.Error(err))
		return nil, ErrUnauthorized
	}

	kind := domain.PrincipalKind(claims.Role)
	if !kind.Valid() {
		logger.Debug("access token has unknown role", zap.String("role", claims.Role))
		return nil, ErrUnauthorized
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		logger.Debug("access token subject is not a uuid", zap.String("subject", claims.Subject))
		return nil, ErrUnauthorized
	}

	principal := &domain.Principal{
		Kind: kind,
		ID:   id,
		Claims: map[string]any{
			"role": claims.Role,
			"jti":  claims.ID,
		},
	}
	if claims.ExpiresAt != nil {
		principal.Claims["exp"] = claims.ExpiresAt.Unix()
	}
	return principal, nil
}

func (s *vendorService) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.vendorRepository.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count vendors failed: %w", err)
	}

	byStep, err := s.vendorRepository.CountByStep(ctx)
	if err != nil {
		return nil, fmt.Errorf("count vendors by step failed: %w", err)
	}

	pendingStats, err := s.pendingStore.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("pending stats failed: %w", err)
	}

	return &Stats{
		Vendors:       total,
		VendorsByStep: byStep,
		Pending:       pendingStats,
	}, nil
}

// Health pings the pending store and reports the counts from the last sweep.
// It never counts entries itself.
func (s *vendorService) Health(ctx context.Context) (*Health, error) {
	if err := s.pendingStore.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping pending store failed: %w", err)
	}

	health := &Health{}
	if s.pendingStats == nil {
		return health, nil
	}
	if snap, ok := s.pendingStats.LastStats(); ok {
		health.Pending = snap.Stats
		health.PendingAt = &snap.At
	}
	return health, nil
}
