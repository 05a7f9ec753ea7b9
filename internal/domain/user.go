package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownRole is returned when a stored or submitted role is outside the enum.
var ErrUnknownRole = errors.New("unknown role")

// Role enumerates capability classes gating routes.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

// roleAliases maps legacy spellings onto the enum.
var roleAliases = map[string]Role{
	"applicant": RoleApplicant,
	"user":      RoleApplicant,
	"admin":     RoleAdmin,
}

// ParseRole validates a raw role value. Matching is case-insensitive and "user" is read as
// RoleApplicant.
func ParseRole(raw string) (Role, error) {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
	return role, nil
}

// Valid reports whether r is a member of the enum.
func (r Role) Valid() bool {
	return r == RoleApplicant || r == RoleAdmin
}

// User is the domain model for job seekers and administrators.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	AvatarURL    string
	Skills       []string
	ResumeURL    string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// SplitList turns a comma separated form value into trimmed, non-empty items.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
