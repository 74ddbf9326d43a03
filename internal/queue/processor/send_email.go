package processor

import (
	"context"
	"encoding/json"

	"github.com/clinickart/backend/internal/queue/task"
	"github.com/clinickart/backend/internal/worker"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

type sendOTPEmailProcessor struct {
	workers *worker.Workers
}

func NewSendOTPEmailProcessor(workers *worker.Workers) *sendOTPEmailProcessor {
	return &sendOTPEmailProcessor{
		workers: workers,
	}
}

func (p *sendOTPEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendOTPEmail
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return errors.Wrap(asynq.SkipRetry, "process send otp email task json unmarshal failed: "+err.Error())
	}

	if err := p.workers.EmailSender.SendOTPEmail(ctx, data.Email, data.Code, data.Purpose); err != nil {
		return errors.Wrap(err, "send otp email failed")
	}

	return nil
}

type sendWelcomeEmailProcessor struct {
	workers *worker.Workers
}

func NewSendWelcomeEmailProcessor(workers *worker.Workers) *sendWelcomeEmailProcessor {
	return &sendWelcomeEmailProcessor{
		workers: workers,
	}
}

func (p *sendWelcomeEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendWelcomeEmail
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return errors.Wrap(asynq.SkipRetry, "process send welcome email task json unmarshal failed: "+err.Error())
	}

	if err := p.workers.EmailSender.SendWelcomeEmail(ctx, data.Email, data.Name, data.Role); err != nil {
		return errors.Wrap(err, "send welcome email failed")
	}

	return nil
}
