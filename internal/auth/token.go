package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSecret is returned when a TokenManager is built without a signing secret.
	ErrMissingSecret = errors.New("jwt signing secret is required")
	// ErrExpiredCredential means the token signature is valid but its expiry has passed.
	ErrExpiredCredential = errors.New("credential expired")
	// ErrMalformedCredential covers bad signatures, foreign algorithms and unparsable tokens.
	ErrMalformedCredential = errors.New("credential malformed")
)

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	ID    int64
	Email string
}

// Claims describes JWT payload.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customises a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the wall clock, used for expiry checks in tests.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager. A non-positive ttl falls back to one hour.
func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	tm := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue builds and signs a JWT binding the identity and email.
func (tm *TokenManager) Issue(id int64, email string) (string, time.Time, error) {
	issuedAt := tm.now().Truncate(jwt.TimePrecision)
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		UserID: id,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(id),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates signature and expiry and returns the embedded identity.
func (tm *TokenManager) Verify(tokenStr string) (Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	},
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("%w: %v", ErrExpiredCredential, err)
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
	if !parsed.Valid || claims.UserID == 0 {
		return Identity{}, ErrMalformedCredential
	}
	return Identity{ID: claims.UserID, Email: claims.Email}, nil
}
