package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/clinickart/backend/internal/service"
	"github.com/clinickart/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "internal server error"

	VendorAlreadyExistsCode    = 1001
	VendorAlreadyExistsMessage = "vendor already exists with this email"

	VendorNotFoundCode    = 1002
	VendorNotFoundMessage = "vendor not found"

	NoPendingRegistrationCode    = 1003
	NoPendingRegistrationMessage = "no pending registration found for this email, please register again"

	InvalidOTPCode    = 1004
	InvalidOTPMessage = "invalid or expired otp"

	TooManyOTPAttemptsCode    = 1005
	TooManyOTPAttemptsMessage = "too many failed attempts, please request a new otp"

	EmailNotVerifiedCode    = 1006
	EmailNotVerifiedMessage = "please verify your email first"

	ProfileAlreadyCompleteCode    = 1007
	ProfileAlreadyCompleteMessage = "profile is already complete"

	DuplicateRegistrationNumberCode    = 1008
	DuplicateRegistrationNumberMessage = "business registration number already exists"

	InvalidCredentialsCode    = 1009
	InvalidCredentialsMessage = "invalid email or password"

	VendorDeactivatedCode    = 1010
	VendorDeactivatedMessage = "your account has been deactivated, please contact support"

	OTPRateLimitedCode    = 1011
	OTPRateLimitedMessage = "please wait before requesting a new otp"

	PasswordTooLongCode    = 1012
	PasswordTooLongMessage = "password must be at most 72 bytes"

	ProfileIncompleteCode    = 1013
	ProfileIncompleteMessage = "profile is missing mandatory fields"

	TooManyRequestsCode    = 1014
	TooManyRequestsMessage = "too many requests, please try again later"

	UnauthorizedCode    = 2001
	UnauthorizedMessage = "not authorized to access this route"
	ForbiddenCode       = 2002
	ForbiddenMessage    = "you do not have permission to access this route"
	IncompleteCode      = 2003
	IncompleteMessage   = "please complete your registration first"

	NotImplementedCode = 5001

	ValidationErrorCode    = 6000
	ValidationErrorMessage = "validation error"
)

type ErrorCode int

type serviceError struct {
	err     error
	status  int
	code    ErrorCode
	message string
}

var serviceErrors = []serviceError{
	{service.ErrNoPendingRegistration, http.StatusBadRequest, NoPendingRegistrationCode, NoPendingRegistrationMessage},
	{service.ErrInvalidOTP, http.StatusBadRequest, InvalidOTPCode, InvalidOTPMessage},
	{service.ErrEmailNotVerified, http.StatusBadRequest, EmailNotVerifiedCode, EmailNotVerifiedMessage},
	{service.ErrPasswordTooLong, http.StatusBadRequest, PasswordTooLongCode, PasswordTooLongMessage},
	{service.ErrProfileIncomplete, http.StatusBadRequest, ProfileIncompleteCode, ProfileIncompleteMessage},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, InvalidCredentialsCode, InvalidCredentialsMessage},
	{service.ErrUnauthorized, http.StatusUnauthorized, UnauthorizedCode, UnauthorizedMessage},
	{service.ErrVendorDeactivated, http.StatusForbidden, VendorDeactivatedCode, VendorDeactivatedMessage},
	{service.ErrVendorNotFound, http.StatusNotFound, VendorNotFoundCode, VendorNotFoundMessage},
	{service.ErrVendorAlreadyExists, http.StatusConflict, VendorAlreadyExistsCode, VendorAlreadyExistsMessage},
	{service.ErrProfileAlreadyComplete, http.StatusConflict, ProfileAlreadyCompleteCode, ProfileAlreadyCompleteMessage},
	{service.ErrDuplicateRegistrationNumber, http.StatusConflict, DuplicateRegistrationNumberCode, DuplicateRegistrationNumberMessage},
	{service.ErrTooManyOTPAttempts, http.StatusTooManyRequests, TooManyOTPAttemptsCode, TooManyOTPAttemptsMessage},
}

// TooManyRequestsResponse is the body for requests dropped by the rate limiter.
func TooManyRequestsResponse(c *gin.Context, retryAfter int) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
		StatusCode: http.StatusTooManyRequests,
		ErrorCode:  TooManyRequestsCode,
		Message:    TooManyRequestsMessage,
		RetryAfter: retryAfter,
	})
}

// serviceErrorResponse maps a service error onto the failure envelope.
// Anything unrecognised is logged and reported as a bare 500.
func serviceErrorResponse(c *gin.Context, err error) {
	var limited *service.RateLimitedError
	if errors.As(err, &limited) {
		c.Header("Retry-After", strconv.Itoa(limited.RetryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
			StatusCode: http.StatusTooManyRequests,
			ErrorCode:  OTPRateLimitedCode,
			Message:    OTPRateLimitedMessage,
			RetryAfter: limited.RetryAfter,
		})
		return
	}

	for _, e := range serviceErrors {
		if errors.Is(err, e.err) {
			errorResponse(c, e.status, e.code, e.message)
			return
		}
	}

	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	errorResponse(c, http.StatusInternalServerError, UnknownErrorCode, UnknownErrorMessage)
}
