package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// HitCounter counts hits per key within a window that starts at the first hit.
type HitCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// ResettableCounter is a HitCounter that can also drop a key.
type ResettableCounter interface {
	HitCounter
	Reset(ctx context.Context, key string) error
}

// RateLimit returns a stage allowing max requests per client IP per window for the named
// endpoint. A failing counter lets the request through.
func RateLimit(counter HitCounter, name string, max int, window time.Duration, logger *zap.Logger) func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if counter == nil || max <= 0 {
			return nil
		}
		key := limitKey(name, c)
		count, err := counter.Hit(c.UserContext(), key, window)
		if err != nil {
			logger.Warn("rate limit counter unavailable", zap.String("key", key), zap.Error(err))
			return nil
		}
		if count > int64(max) {
			logger.Warn("rate limit exceeded", zap.String("key", key), zap.Int64("count", count))
			c.Set(fiber.HeaderRetryAfter, formatSeconds(window))
			return apperrors.NewTooManyRequests("Too many attempts. Please try again later.")
		}
		return nil
	}
}

// ResetOnSuccess clears the named endpoint's counter for the client IP once the rest of
// the chain finishes with a non-error status, so only failed attempts accumulate.
func ResetOnSuccess(counter ResettableCounter, name string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		if counter == nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}
		key := limitKey(name, c)
		if err := counter.Reset(c.UserContext(), key); err != nil {
			logger.Warn("rate limit reset failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
}

func limitKey(name string, c *fiber.Ctx) string {
	return "ratelimit:" + name + ":" + c.IP()
}

func formatSeconds(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
