package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2.0,
	}
}

var errUnavailable = &HTTPError{StatusCode: http.StatusServiceUnavailable, Message: "503 Service Unavailable"}

func TestWithBackoff(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		failures  int   // calls that fail before success
		failWith  error // error returned by failing calls
		wantCalls int
		wantErr   bool
	}{
		{name: "first call succeeds", attempts: 3, wantCalls: 1},
		{name: "succeeds after retries", attempts: 3, failures: 2, failWith: errUnavailable, wantCalls: 3},
		{name: "attempts exhausted", attempts: 3, failures: 10, failWith: errUnavailable, wantCalls: 3, wantErr: true},
		{name: "non-retryable stops at once", attempts: 3, failures: 10,
			failWith: &HTTPError{StatusCode: http.StatusNotFound}, wantCalls: 1, wantErr: true},
		{name: "zero attempts means one", attempts: 0, failures: 10, failWith: errUnavailable, wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithBackoff(context.Background(), fastConfig(tt.attempts), func() error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.failWith)
		})
	}
}

func TestWithBackoff_ExhaustedMessage(t *testing.T) {
	err := WithBackoff(context.Background(), fastConfig(2), func() error { return errUnavailable })

	assert.EqualError(t, err, "max retry attempts (2) exceeded: HTTP 503: 503 Service Unavailable")
}

func TestWithBackoff_NonRetryableReturnedAsIs(t *testing.T) {
	notFound := &HTTPError{StatusCode: http.StatusNotFound, Message: "404 Not Found"}
	err := WithBackoff(context.Background(), fastConfig(3), func() error { return notFound })

	assert.Same(t, notFound, err)
}

func TestWithBackoff_ContextCanceledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{MaxAttempts: 5, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 1}

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- WithBackoff(ctx, cfg, func() error {
			calls++
			return errUnavailable
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, err.Error(), "retry aborted")
		assert.Equal(t, 1, calls)
	case <-time.After(2 * time.Second):
		t.Fatal("WithBackoff did not return after cancel")
	}
}

func TestWithBackoff_CustomClassifier(t *testing.T) {
	errFlaky := errors.New("flaky")
	cfg := fastConfig(3)
	cfg.Retryable = func(err error) bool { return errors.Is(err, errFlaky) }

	calls := 0
	err := WithBackoff(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("wrapped: %w", errFlaky)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "deadline", err: fmt.Errorf("fetch: %w", context.DeadlineExceeded), want: false},
		{name: "net timeout", err: &net.OpError{Op: "read", Err: timeoutErr{}}, want: true},
		{name: "connection refused", err: fmt.Errorf("dial: %w", syscall.ECONNREFUSED), want: true},
		{name: "connection reset", err: syscall.ECONNRESET, want: true},
		{name: "500", err: &HTTPError{StatusCode: 500}, want: true},
		{name: "503 wrapped", err: fmt.Errorf("page 3: %w", errUnavailable), want: true},
		{name: "429", err: &HTTPError{StatusCode: http.StatusTooManyRequests}, want: true},
		{name: "408", err: &HTTPError{StatusCode: http.StatusRequestTimeout}, want: true},
		{name: "400", err: &HTTPError{StatusCode: http.StatusBadRequest}, want: false},
		{name: "404", err: &HTTPError{StatusCode: http.StatusNotFound}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestConfigs(t *testing.T) {
	def := DefaultConfig()
	assert.Equal(t, 3, def.MaxAttempts)
	assert.Equal(t, time.Second, def.InitialDelay)

	cat := CatalogAPIConfig()
	assert.Equal(t, 3, cat.MaxAttempts)
	assert.Less(t, cat.InitialDelay, def.InitialDelay)
	assert.LessOrEqual(t, cat.MaxDelay, 2*time.Second)
}

func TestHTTPError_Error(t *testing.T) {
	assert.Equal(t, "HTTP 502: 502 Bad Gateway", (&HTTPError{StatusCode: 502, Message: "502 Bad Gateway"}).Error())
}
