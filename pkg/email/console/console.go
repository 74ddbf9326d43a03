// Package console is an email sender for local runs. It only logs.
package console

import (
	"context"

	"github.com/clinickart/backend/pkg/email"
	"github.com/clinickart/backend/pkg/logger"

	"go.uber.org/zap"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Info("email would be sent",
		zap.String("to", input.To),
		zap.String("subject", input.Subject),
	)

	return nil
}
