package domain

import (
	"time"

	"github.com/google/uuid"
)

const MaxRefreshTokens = 5

type RegistrationStep string

const (
	StepEmailVerification RegistrationStep = "email_verification"
	StepProfileSetup      RegistrationStep = "profile_setup"
	StepCompleted         RegistrationStep = "completed"
)

func (s RegistrationStep) rank() int {
	switch s {
	case StepEmailVerification:
		return 1
	case StepProfileSetup:
		return 2
	case StepCompleted:
		return 3
	}
	return 0
}

func (s RegistrationStep) Valid() bool {
	return s.rank() > 0
}

type NextAction string

const (
	ActionVerifyEmail     NextAction = "verify_email"
	ActionCompleteProfile NextAction = "complete_profile"
	ActionStartSelling    NextAction = "start_selling"
)

type RefreshToken struct {
	Token     string    `json:"token" db:"token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Vendor struct {
	ID                      uuid.UUID        `json:"id" db:"id"`
	FirstName               string           `json:"first_name" db:"first_name"`
	LastName                string           `json:"last_name" db:"last_name"`
	Email                   string           `json:"email" db:"email"`
	Password                string           `json:"-" db:"password"`
	Role                    string           `json:"role" db:"role"`
	IsEmailVerified         bool             `json:"is_email_verified" db:"is_email_verified"`
	IsRegistrationComplete  bool             `json:"is_registration_complete" db:"is_registration_complete"`
	RegistrationCompletedAt *time.Time       `json:"registration_completed_at,omitempty" db:"registration_completed_at"`
	RegistrationStep        RegistrationStep `json:"registration_step" db:"registration_step"`
	IsProfileComplete       bool             `json:"is_profile_complete" db:"is_profile_complete"`
	ProfileCompletedAt      *time.Time       `json:"profile_completed_at,omitempty" db:"profile_completed_at"`
	IsActive                bool             `json:"is_active" db:"is_active"`
	IsApproved              bool             `json:"is_approved" db:"is_approved"`
	RefreshTokens           []RefreshToken   `json:"-" db:"-"`
	LastLoginAt             *time.Time       `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt               time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at" db:"updated_at"`
}

func (v *Vendor) FullName() string {
	return v.FirstName + " " + v.LastName
}

// NextAction is derived from the verification and profile flags only.
func (v *Vendor) NextAction() NextAction {
	if !v.IsEmailVerified {
		return ActionVerifyEmail
	}
	if !v.IsProfileComplete {
		return ActionCompleteProfile
	}
	return ActionStartSelling
}

func (v *Vendor) CanAddProducts() bool {
	return v.IsEmailVerified && v.IsProfileComplete
}

// AdvanceStep moves the registration step forward. Moving backwards or
// to an unknown step is a no-op and reports false.
func (v *Vendor) AdvanceStep(step RegistrationStep) bool {
	if !step.Valid() || step.rank() <= v.RegistrationStep.rank() {
		return false
	}
	v.RegistrationStep = step
	return true
}

// AddRefreshToken appends the token and evicts the oldest ones so that at
// most MaxRefreshTokens remain.
func (v *Vendor) AddRefreshToken(token string, at time.Time) {
	v.RefreshTokens = append(v.RefreshTokens, RefreshToken{Token: token, CreatedAt: at})
	if n := len(v.RefreshTokens); n > MaxRefreshTokens {
		kept := make([]RefreshToken, MaxRefreshTokens)
		copy(kept, v.RefreshTokens[n-MaxRefreshTokens:])
		v.RefreshTokens = kept
	}
}

// RemoveRefreshToken drops every exact match and reports whether anything
// was removed. Absent tokens are not an error.
func (v *Vendor) RemoveRefreshToken(token string) bool {
	kept := v.RefreshTokens[:0]
	removed := false
	for _, rt := range v.RefreshTokens {
		if rt.Token == token {
			removed = true
			continue
		}
		kept = append(kept, rt)
	}
	v.RefreshTokens = kept
	return removed
}

func (v *Vendor) HasRefreshToken(token string) bool {
	for _, rt := range v.RefreshTokens {
		if rt.Token == token {
			return true
		}
	}
	return false
}
