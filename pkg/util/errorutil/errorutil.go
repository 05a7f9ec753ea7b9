package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error codes used across the API. They are logged and counted, never sent to clients.
const (
	CodeMissingCredential   = "MISSING_CREDENTIAL"
	CodeMalformedCredential = "MALFORMED_CREDENTIAL"
	CodeExpiredCredential   = "EXPIRED_CREDENTIAL"
	CodePrincipalNotFound   = "PRINCIPAL_NOT_FOUND"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeBadRequest          = "BAD_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so callers can compare against the constructors' results.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewMissingCredential(message string) error {
	return NewDomainError(CodeMissingCredential, message, http.StatusUnauthorized, nil)
}

func NewMalformedCredential(message string) error {
	return NewDomainError(CodeMalformedCredential, message, http.StatusUnauthorized, nil)
}

func NewExpiredCredential(message string) error {
	return NewDomainError(CodeExpiredCredential, message, http.StatusUnauthorized, nil)
}

func NewPrincipalNotFound(message string) error {
	return NewDomainError(CodePrincipalNotFound, message, http.StatusNotFound, nil)
}

func NewUnauthenticated(message string) error {
	return NewDomainError(CodeUnauthenticated, message, http.StatusUnauthorized, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewBadRequest(message string) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewTooManyRequests(message string) error {
	return NewDomainError(CodeTooManyRequests, message, http.StatusTooManyRequests, nil)
}

func NewUpstreamUnavailable(err error) error {
	return &DomainError{
		Code:       CodeUpstreamUnavailable,
		Message:    "service temporarily unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource", nil).(*DomainError)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewUpstreamUnavailable(err).(*DomainError)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			detail := pgErr.Detail
			if detail == "" {
				detail = pgErr.ConstraintName
			}
			return &DomainError{Code: CodeBadRequest, Message: "Duplicate field - " + detail, HTTPStatus: http.StatusBadRequest, Err: err}
		case "22P02":
			return &DomainError{Code: CodeBadRequest, Message: "Invalid input format", HTTPStatus: http.StatusBadRequest, Err: err}
		case "23503":
			return &DomainError{Code: CodeBadRequest, Message: "Foreign key constraint violation", HTTPStatus: http.StatusBadRequest, Err: err}
		case "22003":
			return &DomainError{Code: CodeBadRequest, Message: "Numeric value out of range", HTTPStatus: http.StatusBadRequest, Err: err}
		case "22001":
			return &DomainError{Code: CodeBadRequest, Message: "Value too long", HTTPStatus: http.StatusBadRequest, Err: err}
		}
		if strings.HasPrefix(pgErr.Code, "08") {
			return NewUpstreamUnavailable(err).(*DomainError)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return NewUpstreamUnavailable(err).(*DomainError)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{
			Code:       codeForStatus(fiberErr.Code),
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
		}
	}

	return NewInternalError(err).(*DomainError)
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// Envelope renders the client-facing error body.
func Envelope(err *DomainError) fiber.Map {
	return fiber.Map{
		"success": false,
		"message": err.Message,
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusTooManyRequests:
		return CodeTooManyRequests
	case http.StatusServiceUnavailable:
		return CodeUpstreamUnavailable
	}
	if status >= 500 {
		return CodeInternal
	}
	return CodeBadRequest
}
