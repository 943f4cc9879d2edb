package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerClient wraps a Client with a circuit breaker so a failing
// provider is rejected fast instead of burning the request budget. It
// preserves the gateway contract: requests through an open circuit fail
// immediately and nothing is retried.
type BreakerClient struct {
	inner Client
	cb    *gobreaker.CircuitBreaker[string]
}

// NewBreakerClient decorates client with a breaker that opens at a 60%
// failure rate over at least 5 requests, and probes again after 30s.
func NewBreakerClient(client Client, log zerolog.Logger) *BreakerClient {
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "llm-" + client.Provider(),
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("llm circuit breaker state change")
		},
	})

	return &BreakerClient{inner: client, cb: cb}
}

func (b *BreakerClient) Provider() string {
	return b.inner.Provider()
}

func (b *BreakerClient) Complete(ctx context.Context, prompt string) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.inner.Complete(ctx, prompt)
	})
}
