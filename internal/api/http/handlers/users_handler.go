package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/service"
)

// UsersHandler exposes the account endpoints.
type UsersHandler struct {
	accounts AccountService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accounts AccountService) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.accounts.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Skills:   formList(c, "skills", req.Skills),
		Role:     req.Role,
		Avatar:   formFile(c, "avatar"),
		Resume:   formFile(c, "resume"),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    dto.NewUserResponse(session.User),
		"auth":    dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user":    dto.NewUserResponse(session.User),
		"auth":    dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
	})
}

// Status handles GET /auth/status behind optional authentication.
func (h *UsersHandler) Status(c *fiber.Ctx) error {
	_, ok := auth.PrincipalFromContext(c)
	return c.JSON(fiber.Map{"success": true, "isLogin": ok})
}

// Me handles GET /auth/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "user": dto.NewUserResponse(user)})
}

// ChangePassword handles PUT /auth/password/change.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.accounts.ChangePassword(c.UserContext(), user, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Password changed successfully"})
}

// UpdateProfile handles PUT /auth/profile/update.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updated, err := h.accounts.UpdateProfile(c.UserContext(), user, service.UpdateProfileInput{
		Name:   optional(req.NewName),
		Email:  optional(req.NewEmail),
		Skills: formList(c, "newSkills", req.NewSkills),
		Avatar: formFile(c, "avatar"),
		Resume: formFile(c, "resume"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    dto.NewUserResponse(updated),
	})
}

// DeleteAccount handles DELETE /auth/account/delete.
func (h *UsersHandler) DeleteAccount(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.DeleteAccountRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.accounts.DeleteAccount(c.UserContext(), user, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Account deleted successfully"})
}
