package sendgrid

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/clinickart/backend/pkg/email"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Sender struct {
	from   *mail.Email
	client *sendgrid.Client
}

func NewSender(apiKey, from, fromName string) (*Sender, error) {
	if apiKey == "" {
		return nil, errors.New("empty sendgrid api key")
	}

	if !email.IsEmailValid(from) {
		return nil, errors.New("invalid from email")
	}

	return &Sender{
		from:   mail.NewEmail(fromName, from),
		client: sendgrid.NewSendClient(apiKey),
	}, nil
}

func (s *Sender) Send(ctx context.Context, input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	to := mail.NewEmail(input.ToName, input.To)
	message := mail.NewSingleEmail(s.from, input.Subject, to, input.Text, input.Body)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected email, status code: %d", response.StatusCode)
	}

	return nil
}
