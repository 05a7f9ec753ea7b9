package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
)

// AdminHandler exposes management endpoints; every route sits behind the admin role.
type AdminHandler struct {
	users        UserAdminService
	jobs         JobUseCases
	applications ApplicationUseCases
}

// NewAdminHandler constructs handler.
func NewAdminHandler(users UserAdminService, jobs JobUseCases, applications ApplicationUseCases) *AdminHandler {
	return &AdminHandler{users: users, jobs: jobs, applications: applications}
}

// AllJobs handles GET /admin/allJobs.
func (h *AdminHandler) AllJobs(c *fiber.Ctx) error {
	filter, err := jobFilter(c)
	if err != nil {
		return err
	}
	jobs, err := h.jobs.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "jobs": dto.NewJobResponses(jobs)})
}

// GetJob handles GET /admin/getJob/:id.
func (h *AdminHandler) GetJob(c *fiber.Ctx) error {
	id, err := pathID(c, "Job")
	if err != nil {
		return err
	}
	job, err := h.jobs.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "job": dto.NewJobResponse(job)})
}

// UpdateJob handles PUT /admin/updateJob/:id; a new logo replaces the old one.
func (h *AdminHandler) UpdateJob(c *fiber.Ctx) error {
	id, err := pathID(c, "Job")
	if err != nil {
		return err
	}
	in, err := jobInput(c)
	if err != nil {
		return err
	}

	job, err := h.jobs.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Job updated successfully", "job": dto.NewJobResponse(job)})
}

// DeleteJob handles DELETE /admin/deleteJob/:id.
func (h *AdminHandler) DeleteJob(c *fiber.Ctx) error {
	id, err := pathID(c, "Job")
	if err != nil {
		return err
	}
	if err := h.jobs.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Job deleted successfully"})
}

// AllUsers handles GET /admin/allUsers.
func (h *AdminHandler) AllUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "users": dto.NewUserResponses(users)})
}

// GetUser handles GET /admin/getUser/:id.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := pathID(c, "User")
	if err != nil {
		return err
	}
	user, err := h.users.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "user": dto.NewUserResponse(user)})
}

// UpdateUser handles PUT /admin/updateUser/:id; only the role is editable.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := pathID(c, "User")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateUserRole(c.UserContext(), id, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "User updated successfully", "user": dto.NewUserResponse(user)})
}

// DeleteUser handles DELETE /admin/deleteUser/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "User")
	if err != nil {
		return err
	}
	if err := h.users.DeleteUser(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
}

// AllApplications handles GET /admin/allApplications.
func (h *AdminHandler) AllApplications(c *fiber.Ctx) error {
	apps, err := h.applications.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "applications": dto.NewApplicationResponses(apps)})
}

// GetApplication handles GET /admin/getApplication/:id.
func (h *AdminHandler) GetApplication(c *fiber.Ctx) error {
	id, err := pathID(c, "Application")
	if err != nil {
		return err
	}
	app, err := h.applications.GetAny(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "application": dto.NewApplicationResponse(app)})
}

// UpdateApplication handles PUT /admin/updateApplication/:id.
func (h *AdminHandler) UpdateApplication(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "Application")
	if err != nil {
		return err
	}
	var req dto.UpdateApplicationStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	app, err := h.applications.UpdateStatus(c.UserContext(), actor, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Application status updated successfully",
		"application": dto.NewApplicationResponse(app),
	})
}

// DeleteApplication handles DELETE /admin/deleteApplication/:id.
func (h *AdminHandler) DeleteApplication(c *fiber.Ctx) error {
	id, err := pathID(c, "Application")
	if err != nil {
		return err
	}
	if err := h.applications.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Application deleted successfully"})
}
