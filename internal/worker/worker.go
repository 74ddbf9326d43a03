package worker

import (
	"context"

	"github.com/clinickart/backend/internal/config"
	emailProvider "github.com/clinickart/backend/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendOTPEmail(ctx context.Context, email string, code string, purpose string) error
	SendWelcomeEmail(ctx context.Context, email string, name string, role string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email, deps.Config.Registration, deps.Config.Notify.Breaker),
	}
}
