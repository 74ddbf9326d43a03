package service

import (
	"context"
	"sync"
	"time"

	"github.com/clinickart/backend/internal/config"
	"github.com/clinickart/backend/internal/metrics"
	"github.com/clinickart/backend/internal/queue/client"
	"github.com/clinickart/backend/internal/queue/task"
	"github.com/clinickart/backend/internal/worker"
	"github.com/clinickart/backend/pkg/logger"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	notificationOTP     = "otp"
	notificationWelcome = "welcome"

	defaultNotifyTimeout = 10 * time.Second
)

// Notifier delivers vendor notifications. Delivery is best-effort: errors
// are logged and counted but never reach the caller.
type Notifier interface {
	SendOTP(ctx context.Context, email string, code string, purpose string)
	SendWelcome(ctx context.Context, email string, name string, role string)
}

// NewNotifier picks the delivery mode from config. In queue mode tasks are
// enqueued with the client installed by client.SetClient.
func NewNotifier(cfg *config.Config, workers *worker.Workers) Notifier {
	if !cfg.Email.Enabled {
		return disabledNotifier{}
	}
	if cfg.Notify.Mode == config.NotifyModeQueue {
		return &queueNotifier{timeout: cfg.Notify.Timeout}
	}
	return NewDirectNotifier(workers.EmailSender, cfg.Notify.Timeout)
}

func recordNotification(kind string, email string, err error) {
	if err != nil {
		metrics.Notifications.WithLabelValues(kind, metrics.OutcomeError).Inc()
		logger.Warn("notification not delivered",
			zap.String("kind", kind),
			zap.String("email", email),
			zap.Error(err),
		)
		return
	}
	metrics.Notifications.WithLabelValues(kind, metrics.OutcomeSuccess).Inc()
}

// DirectNotifier sends in a background goroutine with a context detached
// from the request and bounded by timeout.
type DirectNotifier struct {
	sender  worker.EmailSender
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDirectNotifier(sender worker.EmailSender, timeout time.Duration) *DirectNotifier {
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	return &DirectNotifier{
		sender:  sender,
		timeout: timeout,
	}
}

func (n *DirectNotifier) SendOTP(ctx context.Context, email string, code string, purpose string) {
	n.dispatch(ctx, notificationOTP, email, func(ctx context.Context) error {
		return n.sender.SendOTPEmail(ctx, email, code, purpose)
	})
}

func (n *DirectNotifier) SendWelcome(ctx context.Context, email string, name string, role string) {
	n.dispatch(ctx, notificationWelcome, email, func(ctx context.Context) error {
		return n.sender.SendWelcomeEmail(ctx, email, name, role)
	})
}

// Wait blocks until every dispatched send has returned.
func (n *DirectNotifier) Wait() {
	n.wg.Wait()
}

func (n *DirectNotifier) dispatch(ctx context.Context, kind string, email string, send func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("notification panicked", zap.String("kind", kind), zap.Any("panic", r))
				metrics.Notifications.WithLabelValues(kind, metrics.OutcomeError).Inc()
			}
		}()

		sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
		defer cancel()

		recordNotification(kind, email, send(sendCtx))
	}()
}

type queueNotifier struct {
	timeout time.Duration
}

func (n *queueNotifier) SendOTP(ctx context.Context, email string, code string, purpose string) {
	t, err := task.NewSendOTPEmailTask(email, code, purpose)
	if err == nil {
		err = n.enqueue(ctx, t)
	}
	recordNotification(notificationOTP, email, err)
}

func (n *queueNotifier) SendWelcome(ctx context.Context, email string, name string, role string) {
	t, err := task.NewSendWelcomeEmailTask(email, name, role)
	if err == nil {
		err = n.enqueue(ctx, t)
	}
	recordNotification(notificationWelcome, email, err)
}

func (n *queueNotifier) enqueue(ctx context.Context, t *asynq.Task) error {
	timeout := n.timeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	info, err := client.Enqueue(ctx, t)
	if err != nil {
		return err
	}
	logger.Debug("notification enqueued", zap.String("task_id", info.ID), zap.String("type", t.Type()))
	return nil
}

type disabledNotifier struct{}

func (disabledNotifier) SendOTP(_ context.Context, email string, _ string, purpose string) {
	logger.Debug("email disabled, otp not sent", zap.String("email", email), zap.String("purpose", purpose))
}

func (disabledNotifier) SendWelcome(_ context.Context, email string, _ string, _ string) {
	logger.Debug("email disabled, welcome not sent", zap.String("email", email))
}
