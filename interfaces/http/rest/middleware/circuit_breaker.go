package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	apperrors "graphboard-backend/pkg/errors"
)

// errServerFailure marks a request that already answered with a 5xx.
var errServerFailure = errors.New("handler answered with a server error")

// CircuitBreakerConfig holds configuration for circuit breaker
type CircuitBreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// Trip once at least MinRequests were seen and the failure ratio
	// reaches FailureThreshold.
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultCircuitBreakerConfig returns a default configuration for circuit breaker
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// CircuitBreaker sheds load with 503s once too many requests end in 5xx.
// Rejections are written by errorHandler.
func CircuitBreaker(config CircuitBreakerConfig, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) func(http.Handler) http.Handler {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := cb.Execute(func() (interface{}, error) {
				ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
				next.ServeHTTP(ww, r)

				if ww.Status() >= 500 {
					return nil, errServerFailure
				}
				return nil, nil
			})

			switch {
			case err == nil, errors.Is(err, errServerFailure):
				// response already written
			case errors.Is(err, gobreaker.ErrOpenState):
				logger.Warn("Circuit breaker open, rejecting request",
					zap.String("name", config.Name),
					zap.String("path", r.URL.Path),
				)
				errorHandler.Handle(w, r, apperrors.NewUnavailableError(config.Name).
					WithDetails(map[string]interface{}{"reason": "too many failures"}))
			case errors.Is(err, gobreaker.ErrTooManyRequests):
				logger.Warn("Circuit breaker half-open, rejecting request",
					zap.String("name", config.Name),
					zap.String("path", r.URL.Path),
				)
				errorHandler.Handle(w, r, apperrors.NewUnavailableError(config.Name).
					WithDetails(map[string]interface{}{"reason": "too many requests"}))
			default:
				errorHandler.Handle(w, r, apperrors.NewInternalError("circuit breaker failure").WithCause(err))
			}
		})
	}
}
