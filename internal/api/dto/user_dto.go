package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// UserRegisterRequest payload for new users. Files arrive as multipart parts avatar and resume.
type UserRegisterRequest struct {
	Name     string     `json:"name" form:"name"`
	Email    string     `json:"email" form:"email"`
	Password string     `json:"password" form:"password"`
	Skills   StringList `json:"skills" form:"-"`
	Role     string     `json:"role" form:"role"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" form:"oldPassword"`
	NewPassword     string `json:"newPassword" form:"newPassword"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// UpdateProfileRequest payload; empty fields are left unchanged.
type UpdateProfileRequest struct {
	NewName   string     `json:"newName" form:"newName"`
	NewEmail  string     `json:"newEmail" form:"newEmail"`
	NewSkills StringList `json:"newSkills" form:"-"`
}

// DeleteAccountRequest payload.
type DeleteAccountRequest struct {
	Password string `json:"password" form:"password"`
}

// UpdateUserRoleRequest payload.
type UpdateUserRoleRequest struct {
	Role string `json:"role" form:"role"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	AvatarURL string      `json:"avatar_url"`
	Skills    []string    `json:"skills"`
	ResumeURL string      `json:"resume_url"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse maps a user without its password hash.
func NewUserResponse(u *domain.User) UserResponse {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Skills:    skills,
		ResumeURL: u.ResumeURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses maps a slice of users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// AuthResponse carries an issued access token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
