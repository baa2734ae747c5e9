package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/plateful/recipe-api/internal/api/metrics"
)

const (
	rateLimitWindow      = time.Minute
	rateLimitMaxRequests = 20
	rateLimitKeyPrefix   = "ratelimit:"
)

// LimiterClient is the slice of the redis client the limiter needs.
// *redis.Client satisfies it.
type LimiterClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
}

// RateLimit applies a fixed-window per-IP limit backed by Redis, intended
// for the unauthenticated auth endpoints. Redis failures fail open: an
// unavailable limiter must not take down logins.
func RateLimit(rdb LimiterClient) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := rateLimitKeyPrefix + c.RealIP()

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				rdb.Expire(ctx, key, rateLimitWindow)
			}

			if count > rateLimitMaxRequests {
				metrics.RateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, try again later")
			}

			return next(c)
		}
	}
}
