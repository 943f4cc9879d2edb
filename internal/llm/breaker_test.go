package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyClient struct {
	err   error
	calls int
}

func (f *flakyClient) Provider() string { return "flaky" }

func (f *flakyClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "ok", nil
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	inner := &flakyClient{}
	b := NewBreakerClient(inner, zerolog.Nop())

	out, err := b.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "flaky", b.Provider())
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	inner := &flakyClient{err: &ProviderError{Provider: "flaky", Status: 500}}
	b := NewBreakerClient(inner, zerolog.Nop())

	for i := 0; i < 5; i++ {
		_, err := b.Complete(context.Background(), "p")
		require.Error(t, err)
		assert.True(t, IsProviderError(err))
	}

	// Circuit is now open: calls are rejected without reaching the provider.
	before := inner.calls
	_, err := b.Complete(context.Background(), "p")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, before, inner.calls)
}

func TestBreakerStaysClosedBelowThreshold(t *testing.T) {
	inner := &flakyClient{err: errors.New("boom")}
	b := NewBreakerClient(inner, zerolog.Nop())

	for i := 0; i < 4; i++ {
		_, err := b.Complete(context.Background(), "p")
		require.Error(t, err)
		require.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	inner.err = nil
	out, err := b.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}
