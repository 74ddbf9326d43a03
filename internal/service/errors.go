package service

import (
	"errors"
	"fmt"
)

var (
	ErrVendorAlreadyExists         = errors.New("vendor already exists with this email")
	ErrVendorNotFound              = errors.New("vendor not found")
	ErrNoPendingRegistration       = errors.New("no pending registration found for this email")
	ErrInvalidOTP                  = errors.New("invalid otp")
	ErrTooManyOTPAttempts          = errors.New("too many otp attempts")
	ErrEmailNotVerified            = errors.New("email is not verified")
	ErrProfileAlreadyComplete      = errors.New("profile is already complete")
	ErrDuplicateRegistrationNumber = errors.New("business registration number already exists")
	ErrInvalidCredentials          = errors.New("invalid credentials")
	ErrVendorDeactivated           = errors.New("vendor account has been deactivated")
	ErrUnauthorized                = errors.New("unauthorized")
	ErrPasswordTooLong             = errors.New("password is too long")
	ErrProfileIncomplete           = errors.New("profile is missing mandatory fields")
)

// RateLimitedError is returned when an action is retried before its
// cooldown has passed. RetryAfter is in whole seconds and always positive.
type RateLimitedError struct {
	RetryAfter int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %d seconds", e.RetryAfter)
}
