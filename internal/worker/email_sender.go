package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinickart/backend/internal/config"
	emailProvider "github.com/clinickart/backend/pkg/email"
	"github.com/clinickart/backend/pkg/logger"
	"github.com/clinickart/backend/templates"

	"github.com/pkg/errors"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

type emailSender struct {
	sender       emailProvider.Sender
	config       config.EmailConfig
	registration config.RegistrationConfig
	breaker      *gobreaker.CircuitBreaker[struct{}]
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
	registration config.RegistrationConfig,
	breaker config.BreakerConfig,
) *emailSender {
	return &emailSender{
		sender:       sender,
		config:       config,
		registration: registration,
		breaker:      newBreaker("email", breaker),
	}
}

func newBreaker(name string, cfg config.BreakerConfig) *gobreaker.CircuitBreaker[struct{}] {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("email circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

type otpEmailInput struct {
	Code             string
	Purpose          string
	ExpiresInMinutes int
}

type welcomeEmailInput struct {
	Name         string
	Role         string
	DashboardURL string
}

func (s *emailSender) SendOTPEmail(ctx context.Context, email string, code string, purpose string) error {
	minutes := int(s.registration.OTPTTL.Minutes())

	input := emailProvider.SendEmailInput{
		To:      email,
		Subject: fmt.Sprintf("ClinicKart - Your %s OTP", strings.ToUpper(purpose)),
		Text:    fmt.Sprintf("Your ClinicKart %s OTP is: %s. This OTP will expire in %d minutes.", purpose, code, minutes),
	}

	data := otpEmailInput{Code: code, Purpose: purpose, ExpiresInMinutes: minutes}
	if err := input.GenerateBodyFromTemplate(templates.FS, templates.OTP, data); err != nil {
		return errors.Wrap(err, "generate otp email failed")
	}

	return s.send(ctx, input)
}

func (s *emailSender) SendWelcomeEmail(ctx context.Context, email string, name string, role string) error {
	dashboardURL := strings.TrimRight(s.config.FrontendURL, "/") + "/" + role + "/dashboard"

	input := emailProvider.SendEmailInput{
		To:      email,
		ToName:  name,
		Subject: "Welcome to ClinicKart!",
		Text:    fmt.Sprintf("Welcome to ClinicKart, %s! Visit %s to get started.", name, dashboardURL),
	}

	data := welcomeEmailInput{Name: name, Role: role, DashboardURL: dashboardURL}
	if err := input.GenerateBodyFromTemplate(templates.FS, templates.Welcome, data); err != nil {
		return errors.Wrap(err, "generate welcome email failed")
	}

	return s.send(ctx, input)
}

func (s *emailSender) send(ctx context.Context, input emailProvider.SendEmailInput) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "send email cancelled")
	}

	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.sender.Send(ctx, input)
	})
	if err != nil {
		return errors.Wrap(err, "send email failed")
	}

	return nil
}
