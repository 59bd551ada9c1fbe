package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("503")}
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0
	permanent := errors.New("404")
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return &RetryableError{Err: errors.New("timeout")}
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckStatus(t *testing.T) {
	req := &http.Request{URL: &url.URL{Scheme: "https", Host: "registry.example.com", Path: "/pkg"}}
	tests := []struct {
		status    int
		wantErr   bool
		retryable bool
	}{
		{http.StatusOK, false, false},
		{http.StatusNotFound, true, false},
		{http.StatusTooManyRequests, true, true},
		{http.StatusBadGateway, true, true},
	}

	for _, tt := range tests {
		err := CheckStatus(&http.Response{StatusCode: tt.status, Request: req})
		if !tt.wantErr {
			assert.NoError(t, err)
			continue
		}
		assert.Error(t, err)
		assert.Equal(t, tt.retryable, isRetryable(err), "status %d", tt.status)
	}
}
