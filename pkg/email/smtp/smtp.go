package smtp

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinickart/backend/pkg/email"

	"github.com/go-gomail/gomail"
)

type SMTPSender struct {
	from     string
	fromName string
	dialer   *gomail.Dialer
}

func NewSMTPSender(from, fromName, user, pass, host string, port int) (*SMTPSender, error) {
	if !email.IsEmailValid(from) {
		return nil, errors.New("invalid from email")
	}

	return &SMTPSender{
		from:     from,
		fromName: fromName,
		dialer:   gomail.NewDialer(host, port, user, pass),
	}, nil
}

// Send gives up when ctx is done. gomail has no context support, so an
// abandoned exchange finishes or fails in the background.
func (s *SMTPSender) Send(ctx context.Context, input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.from, s.fromName)
	msg.SetHeader("To", input.To)
	msg.SetHeader("Subject", input.Subject)

	switch {
	case input.Body != "" && input.Text != "":
		msg.SetBody("text/plain", input.Text)
		msg.AddAlternative("text/html", input.Body)
	case input.Body != "":
		msg.SetBody("text/html", input.Body)
	default:
		msg.SetBody("text/plain", input.Text)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email via smtp: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send abandoned: %w", ctx.Err())
	}
}
