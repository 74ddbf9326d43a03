package smtp

import (
	"context"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/clinickart/backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silentServer accepts connections and never sends the SMTP greeting.
func silentServer(t *testing.T) (string, int) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return host, p
}

func TestSMTPSender_SendStopsAtDeadline(t *testing.T) {
	host, port := silentServer(t)

	sender, err := NewSMTPSender("noreply@clinickart.test", "ClinicKart", "", "", host, port)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = sender.Send(ctx, email.SendEmailInput{To: "jane@x.com", Subject: "Hi", Text: "hi"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSMTPSender_SendValidatesInput(t *testing.T) {
	sender, err := NewSMTPSender("noreply@clinickart.test", "ClinicKart", "", "", "127.0.0.1", 1)
	require.NoError(t, err)

	assert.Error(t, sender.Send(context.Background(), email.SendEmailInput{To: "jane@x.com"}))
}

func TestNewSMTPSender_InvalidFrom(t *testing.T) {
	_, err := NewSMTPSender("not-an-email", "ClinicKart", "", "", "127.0.0.1", 25)
	assert.Error(t, err)
}
