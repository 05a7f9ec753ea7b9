package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-board/internal/domain"
)

func TestRequireRole_ForbiddenMentionsRequiredRole(t *testing.T) {
	fx := newGateFixture(t, RequireRole(domain.RoleAdmin))

	status, body := fx.do(t, "/protected", "Bearer "+fx.token(t, 5))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Access denied. Required roles: admin.", body["message"])
	assert.Zero(t, fx.reached)
}

func TestRequireRole_Allows(t *testing.T) {
	fx := newGateFixture(t, RequireRole(domain.RoleAdmin, domain.RoleApplicant, domain.RoleAdmin))

	status, _ := fx.do(t, "/protected", "Bearer "+fx.token(t, 5))
	assert.Equal(t, http.StatusOK, status)
	status, _ = fx.do(t, "/protected", "Bearer "+fx.token(t, 1))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, fx.reached)
}

func TestRequireRole_WithoutPrincipal(t *testing.T) {
	app := fiber.New()
	stage := RequireRole(domain.RoleAdmin)
	var got error
	app.Get("/", func(c *fiber.Ctx) error {
		got = stage(c)
		return c.SendStatus(http.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Error(t, got)
	assert.Equal(t, "User not authenticated. Please log in.", got.Error())
}
