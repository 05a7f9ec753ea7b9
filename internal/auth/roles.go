package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/domain"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// RequireRole ensures the authenticated principal holds one of the allowed roles.
// It must run after Authenticate.
func RequireRole(allowed ...domain.Role) func(*fiber.Ctx) error {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	names := make([]string, 0, len(allowed))
	for _, role := range allowed {
		if _, dup := allowedSet[role]; dup {
			continue
		}
		allowedSet[role] = struct{}{}
		names = append(names, string(role))
	}
	denied := fmt.Sprintf("Access denied. Required roles: %s.", strings.Join(names, ", "))

	return func(c *fiber.Ctx) error {
		principal, err := MustPrincipal(c)
		if err != nil {
			return err
		}
		if _, exists := allowedSet[principal.Role()]; !exists {
			return apperrors.NewForbidden(denied)
		}
		return nil
	}
}

// MustPrincipal returns the attached principal, or Unauthenticated when the gate did not run.
func MustPrincipal(c *fiber.Ctx) (*Principal, error) {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthenticated("User not authenticated. Please log in.")
	}
	return principal, nil
}
