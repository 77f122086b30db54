package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"Socialmedia/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimiter is a fixed window counter per route and client IP, kept in Redis.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

// NewRateLimiter allows limit requests per window for each key.
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, logger zerolog.Logger) *RateLimiter {
	if window < time.Millisecond {
		window = time.Minute
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, logger: logger, now: time.Now}
}

// Allow counts one request for key and reports whether it fits the limit.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (allowed bool, remaining int, resetAt time.Time, err error) {
	windowMs := rl.window.Milliseconds()
	bucket := rl.now().UnixMilli() / windowMs
	windowKey := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, key, bucket)

	pipe := rl.rdb.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, rl.window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incr.Val())
	remaining = rl.limit - count
	if remaining < 0 {
		remaining = 0
	}
	resetAt = time.UnixMilli((bucket + 1) * windowMs)
	return count <= rl.limit, remaining, resetAt, nil
}

// Middleware rejects requests over the limit with 429. Redis failures let
// the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		key := route + ":" + c.ClientIP()

		allowed, remaining, resetAt, err := rl.Allow(c.Request.Context(), key)
		if err != nil {
			rl.logger.Warn().Err(err).Str("route", route).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			metrics.RateLimitHits.WithLabelValues(route).Inc()
			retry := time.Until(resetAt)
			if retry < time.Second {
				retry = time.Second
			}
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
