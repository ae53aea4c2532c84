package middleware

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"studentsites/internal/dto"
	"studentsites/internal/server/response"
)

// RateLimit rejects requests with 429 once limiter has no tokens left. A nil
// limiter disables throttling.
func RateLimit(limiter *rate.Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warn("request throttled",
					zap.String("requestId", RequestIDFromContext(r.Context())),
					zap.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", "1")
				response.JSON(w, http.StatusTooManyRequests, dto.ErrorResponse{
					Error:   response.CodeRateLimited,
					Message: "too many requests, please try again shortly",
				}, logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewLimiter builds the submission limiter. A non-positive rps disables it.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
