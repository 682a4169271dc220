package store

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

var remoteBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "storefront_persistence_breaker_state",
		Help: "State of the remote persistence circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

func breakerStateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// NewRemoteBreaker builds the circuit breaker guarding remote persistence
// writes. Session state is served from memory either way; the breaker only
// stops a degraded database from soaking up a write per mutation.
func NewRemoteBreaker(name string, logger *slog.Logger) *gobreaker.CircuitBreaker[struct{}] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("persistence circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			remoteBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	}

	remoteBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[struct{}](settings)
}
