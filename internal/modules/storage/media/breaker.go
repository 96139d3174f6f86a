package media

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig tunes the circuit breaker guarding a Backend.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// BreakerBackend stops calling a failing Backend until it recovers.
type BreakerBackend struct {
	next    Backend
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerBackend(next Backend, cfg BreakerConfig, log *zap.Logger) *BreakerBackend {
	if log == nil {
		log = zap.NewNop()
	}
	settings := gobreaker.Settings{
		Name:        "media-store",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrObjectMissing)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("circuit", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	return &BreakerBackend{next: next, breaker: gobreaker.NewCircuitBreaker(settings)}
}

// State reports the breaker state.
func (b *BreakerBackend) State() gobreaker.State { return b.breaker.State() }

func (b *BreakerBackend) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return b.next.Put(ctx, key, contentType, data)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (b *BreakerBackend) Remove(ctx context.Context, key string) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, b.next.Remove(ctx, key)
	})
	return err
}
