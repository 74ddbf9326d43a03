package client

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

var (
	globalClient *asynq.Client
	globalMu     sync.RWMutex

	ErrNoClient = errors.New("asynq client is not configured")
)

func getClient() *asynq.Client {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalClient
}

// SetClient replaces the global Client, and returns a
// function to restore the original value. It's safe for concurrent use.
func SetClient(client *asynq.Client) func() {
	globalMu.Lock()
	prev := globalClient
	globalClient = client
	globalMu.Unlock()
	return func() { SetClient(prev) }
}

// Enqueue puts t on the queue with the client installed by SetClient.
func Enqueue(ctx context.Context, t *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	c := getClient()
	if c == nil {
		return nil, ErrNoClient
	}

	info, err := c.EnqueueContext(ctx, t, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "enqueue %s failed", t.Type())
	}

	return info, nil
}
