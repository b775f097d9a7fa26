package httpx

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_Execute_Success(t *testing.T) {
	breaker := NewCircuitBreaker("gateway", 30*time.Second, 3)

	calls := 0
	err := breaker.Execute(func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCircuitBreaker_Execute_WrapsError(t *testing.T) {
	breaker := NewCircuitBreaker("gateway", 30*time.Second, 3)

	upstreamErr := errors.New("connection refused")
	err := breaker.Execute(func() error { return upstreamErr })

	require.Error(t, err)
	assert.ErrorIs(t, err, upstreamErr)
	assert.Contains(t, err.Error(), "breaker (gateway)")
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	breaker := NewCircuitBreaker("gateway", time.Minute, 2)

	upstreamErr := errors.New("connection refused")
	for i := 0; i < 2; i++ {
		err := breaker.Execute(func() error { return upstreamErr })
		require.ErrorIs(t, err, upstreamErr)
	}

	// breaker is open now, fn must not run
	calls := 0
	err := breaker.Execute(func() error {
		calls++
		return nil
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, upstreamErr)
	assert.Equal(t, 0, calls)
}
