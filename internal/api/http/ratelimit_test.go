package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingCounter struct{}

func (failingCounter) Hit(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("redis: connection refused")
}

func limitedApp(counter HitCounter, max int) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	stage := RateLimit(counter, "login", max, 30*time.Second, zap.NewNop())
	app.Post("/login", func(c *fiber.Ctx) error {
		if err := stage(c); err != nil {
			return err
		}
		return c.SendStatus(nethttp.StatusNoContent)
	})
	return app
}

func post(t *testing.T, app *fiber.App) *nethttp.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(nethttp.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	return resp
}

func TestRateLimit_BlocksAfterMax(t *testing.T) {
	counter := &memoryCounter{hits: map[string]int64{}}
	app := limitedApp(counter, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, nethttp.StatusNoContent, post(t, app).StatusCode)
	}
	resp := post(t, app)
	assert.Equal(t, nethttp.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "30", resp.Header.Get(fiber.HeaderRetryAfter))
	require.Len(t, counter.hits, 1)
	for key, hits := range counter.hits {
		assert.Contains(t, key, "ratelimit:login:")
		assert.Equal(t, int64(4), hits)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	app := limitedApp(failingCounter{}, 1)

	for i := 0; i < 3; i++ {
		assert.Equal(t, nethttp.StatusNoContent, post(t, app).StatusCode)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	counter := &memoryCounter{hits: map[string]int64{}}
	app := limitedApp(counter, 0)

	assert.Equal(t, nethttp.StatusNoContent, post(t, app).StatusCode)
	assert.Empty(t, counter.hits)
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "1", formatSeconds(200*time.Millisecond))
	assert.Equal(t, "900", formatSeconds(15*time.Minute))
}

type stubbornCounter struct {
	memoryCounter
}

func (*stubbornCounter) Reset(context.Context, string) error {
	return errors.New("redis: connection refused")
}

func resettingApp(counter ResettableCounter, status int) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Post("/login", ResetOnSuccess(counter, "login", zap.NewNop()), func(c *fiber.Ctx) error {
		if _, err := counter.Hit(c.UserContext(), limitKey("login", c), time.Minute); err != nil {
			return err
		}
		if status >= fiber.StatusBadRequest {
			return fiber.NewError(status, "nope")
		}
		return c.SendStatus(status)
	})
	return app
}

func TestResetOnSuccess(t *testing.T) {
	counter := &memoryCounter{hits: map[string]int64{}}

	assert.Equal(t, nethttp.StatusUnauthorized, post(t, resettingApp(counter, nethttp.StatusUnauthorized)).StatusCode)
	assert.Equal(t, nethttp.StatusUnauthorized, post(t, resettingApp(counter, nethttp.StatusUnauthorized)).StatusCode)
	require.Len(t, counter.hits, 1)
	for _, hits := range counter.hits {
		assert.Equal(t, int64(2), hits)
	}

	assert.Equal(t, nethttp.StatusOK, post(t, resettingApp(counter, nethttp.StatusOK)).StatusCode)
	assert.Empty(t, counter.hits)
}

func TestResetOnSuccess_ResetFailureKeepsResponse(t *testing.T) {
	counter := &stubbornCounter{memoryCounter{hits: map[string]int64{}}}

	assert.Equal(t, nethttp.StatusOK, post(t, resettingApp(counter, nethttp.StatusOK)).StatusCode)
	assert.Len(t, counter.hits, 1)
}
