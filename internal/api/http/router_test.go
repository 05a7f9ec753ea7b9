package http

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/observability"
	"github.com/spec-kit/job-board/internal/service"
	"github.com/spec-kit/job-board/internal/validation"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

type routeStore map[int64]*domain.User

func (s routeStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

type routeAccounts struct {
	handlers.AccountService
	logins int
}

func (a *routeAccounts) Login(_ context.Context, email, password string) (*service.Session, error) {
	a.logins++
	if password == "wrong" {
		return nil, apperrors.NewUnauthorized("Wrong password")
	}
	return &service.Session{User: &domain.User{ID: 5, Email: email}, Token: "tok"}, nil
}

type routeUsers struct {
	handlers.UserAdminService
	calls int
}

func (u *routeUsers) GetUser(_ context.Context, id int64) (*domain.User, error) {
	u.calls++
	return &domain.User{ID: id, Role: domain.RoleApplicant}, nil
}

func (u *routeUsers) ListUsers(context.Context) ([]domain.User, error) {
	u.calls++
	return []domain.User{{ID: 1}}, nil
}

type routeJobs struct {
	handlers.JobUseCases
}

type routeApplications struct {
	handlers.ApplicationUseCases
}

type memoryCounter struct {
	hits map[string]int64
}

func (m *memoryCounter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.hits[key]++
	return m.hits[key], nil
}

func (m *memoryCounter) Reset(_ context.Context, key string) error {
	delete(m.hits, key)
	return nil
}

type routerFixture struct {
	app      *fiber.App
	tokens   *auth.TokenManager
	accounts *routeAccounts
	users    *routeUsers
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	tokens, err := auth.NewTokenManager("router-test-secret", time.Hour)
	require.NoError(t, err)
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	fx := &routerFixture{tokens: tokens, accounts: &routeAccounts{}, users: &routeUsers{}}
	counter := &memoryCounter{hits: map[string]int64{}}
	fx.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	RegisterMiddlewares(fx.app, logger, metrics, MiddlewareConfig{Timeout: time.Second})

	store := routeStore{
		1: {ID: 1, Email: "root@x.com", Role: domain.RoleAdmin},
		5: {ID: 5, Email: "ann@x.com", Role: domain.RoleApplicant},
	}
	RegisterRoutes(fx.app, RouteConfig{
		Prefix:         "/api/v1",
		Health:         handlers.NewHealthHandler("job-board-api", "test", nil, metrics, logger),
		Users:          handlers.NewUsersHandler(fx.accounts),
		Jobs:           handlers.NewJobsHandler(&routeJobs{}),
		Applications:   handlers.NewApplicationsHandler(&routeApplications{}),
		Admin:          handlers.NewAdminHandler(fx.users, &routeJobs{}, &routeApplications{}),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, store, time.Second),
		Validator:      validation.New(),
		LoginLimiter:   RateLimit(counter, "login", 2, time.Minute, logger),
		LoginReset:     ResetOnSuccess(counter, "login", logger),
	})
	return fx
}

func (fx *routerFixture) bearer(t *testing.T, id int64) string {
	t.Helper()
	token, _, err := fx.tokens.Issue(id, "someone@x.com")
	require.NoError(t, err)
	return "Bearer " + token
}

func (fx *routerFixture) do(t *testing.T, method, target, authHeader, body string) (*nethttp.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp, out
}

func TestRoutes_AdminGateOrder(t *testing.T) {
	fx := newRouterFixture(t)

	resp, body := fx.do(t, fiber.MethodGet, "/api/v1/admin/getUser/abc", "", "")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing Token. Please log in.", body["message"])

	resp, body = fx.do(t, fiber.MethodGet, "/api/v1/admin/getUser/abc", fx.bearer(t, 5), "")
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access denied. Required roles: admin.", body["message"])

	resp, body = fx.do(t, fiber.MethodGet, "/api/v1/admin/getUser/abc", fx.bearer(t, 1), "")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Please provide a valid User ID", body["message"])
	assert.Zero(t, fx.users.calls)

	resp, body = fx.do(t, fiber.MethodGet, "/api/v1/admin/getUser/7", fx.bearer(t, 1), "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1, fx.users.calls)
}

func TestRoutes_AdminListWithoutRules(t *testing.T) {
	fx := newRouterFixture(t)

	resp, body := fx.do(t, fiber.MethodGet, "/api/v1/admin/allUsers", fx.bearer(t, 1), "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Len(t, body["users"], 1)
}

func TestRoutes_ValidationJoinsMessages(t *testing.T) {
	fx := newRouterFixture(t)

	resp, body := fx.do(t, fiber.MethodPost, "/api/v1/auth/login", "", `{"email":"nope"}`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Please enter a valid email, Please enter password", body["message"])
	assert.Zero(t, fx.accounts.logins)
}

func TestRoutes_LoginRateLimited(t *testing.T) {
	fx := newRouterFixture(t)
	payload := `{"email":"ann@x.com","password":"wrong"}`

	for i := 0; i < 2; i++ {
		resp, _ := fx.do(t, fiber.MethodPost, "/api/v1/auth/login", "", payload)
		assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	}
	resp, body := fx.do(t, fiber.MethodPost, "/api/v1/auth/login", "", payload)
	assert.Equal(t, nethttp.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too many attempts. Please try again later.", body["message"])
	assert.Equal(t, "60", resp.Header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, 2, fx.accounts.logins)
}

func TestRoutes_SuccessfulLoginResetsAttempts(t *testing.T) {
	fx := newRouterFixture(t)
	wrong := `{"email":"ann@x.com","password":"wrong"}`
	right := `{"email":"ann@x.com","password":"pw"}`

	for i := 0; i < 5; i++ {
		resp, _ := fx.do(t, fiber.MethodPost, "/api/v1/auth/login", "", right)
		assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	}

	resp, _ := fx.do(t, fiber.MethodPost, "/api/v1/auth/login", "", wrong)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	resp, _ = fx.do(t, fiber.MethodPost, "/api/v1/auth/login", "", right)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	resp, _ = fx.do(t, fiber.MethodPost, "/api/v1/auth/login", "", wrong)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 8, fx.accounts.logins)
}

func TestRoutes_OptionalAuthOnStatus(t *testing.T) {
	fx := newRouterFixture(t)

	_, body := fx.do(t, fiber.MethodGet, "/api/v1/auth/status", "", "")
	assert.Equal(t, false, body["isLogin"])

	_, body = fx.do(t, fiber.MethodGet, "/api/v1/auth/status", fx.bearer(t, 5), "")
	assert.Equal(t, true, body["isLogin"])

	resp, _ := fx.do(t, fiber.MethodGet, "/api/v1/auth/status", "Bearer broken", "")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_DeletedPrincipal(t *testing.T) {
	fx := newRouterFixture(t)

	resp, body := fx.do(t, fiber.MethodGet, "/api/v1/auth/me", fx.bearer(t, 42), "")
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found. Please log in again.", body["message"])
}

func TestRoutes_UnknownRouteUsesEnvelope(t *testing.T) {
	fx := newRouterFixture(t)

	resp, body := fx.do(t, fiber.MethodGet, "/api/v1/nowhere", "", "")
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestRoutes_Health(t *testing.T) {
	fx := newRouterFixture(t)

	resp, body := fx.do(t, fiber.MethodGet, "/api/v1/health/live", "", "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
	assert.NotEmpty(t, resp.Header.Get(headerRequestID))
}
