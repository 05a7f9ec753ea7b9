package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-board/internal/domain"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

const (
	principalKey = "auth_principal"
	bearerScheme = "Bearer"
)

// Principal represents the authenticated caller as currently stored.
type Principal struct {
	User *domain.User
}

// ID returns the caller's identity.
func (p *Principal) ID() int64 { return p.User.ID }

// Role returns the caller's role as read from the store.
func (p *Principal) Role() domain.Role { return p.User.Role }

// PrincipalStore loads a caller's current record. It is only ever read from.
type PrincipalStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TokenVerifier is the part of TokenManager the middleware depends on.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens        TokenVerifier
	users         PrincipalStore
	lookupTimeout time.Duration
}

// NewAuthMiddleware constructs middleware. lookupTimeout bounds each principal lookup; zero
// disables the bound and leaves only the request deadline.
func NewAuthMiddleware(tokens TokenVerifier, users PrincipalStore, lookupTimeout time.Duration) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, lookupTimeout: lookupTimeout}
}

// Authenticate requires a valid bearer token for an existing user.
func (m *AuthMiddleware) Authenticate(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewMissingCredential("Missing Token. Please log in.")
	}
	return m.authenticate(c, authHeader)
}

// AuthenticateOptional attaches a principal when a token is presented and passes through
// anonymously otherwise. A presented but bad token is still rejected.
func (m *AuthMiddleware) AuthenticateOptional(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil
	}
	return m.authenticate(c, authHeader)
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx, authHeader string) error {
	token, ok := bearerToken(authHeader)
	if !ok {
		return apperrors.NewMalformedCredential("Invalid authorization header. Expected: Bearer <token>")
	}

	identity, err := m.tokens.Verify(token)
	switch {
	case errors.Is(err, ErrExpiredCredential):
		return apperrors.NewExpiredCredential("Token expired. Please log in again.")
	case err != nil:
		return apperrors.NewMalformedCredential("Invalid token. Please log in again.")
	}

	user, err := m.lookup(c.UserContext(), identity.ID)
	if err != nil {
		return err
	}

	c.Locals(principalKey, &Principal{User: user})
	return nil
}

func (m *AuthMiddleware) lookup(parent context.Context, id int64) (*domain.User, error) {
	ctx := parent
	if m.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, m.lookupTimeout)
		defer cancel()
	}

	user, err := m.users.GetByID(ctx, id)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return nil, apperrors.NewPrincipalNotFound("User not found. Please log in again.")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), ctx.Err() != nil:
		return nil, apperrors.NewUpstreamUnavailable(err)
	default:
		return nil, apperrors.MapError(err)
	}
}

// bearerToken splits "Bearer <token>" into exactly two parts with a case-sensitive scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal != nil && principal.User != nil
}
