package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
)

// ApplicationsHandler serves the applicant side of applications.
type ApplicationsHandler struct {
	applications ApplicationUseCases
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applications ApplicationUseCases) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications}
}

// Create handles POST /createApplication/:id where id is the job.
func (h *ApplicationsHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "Job")
	if err != nil {
		return err
	}

	app, err := h.applications.Apply(c.UserContext(), user, jobID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "Application submitted successfully",
		"application": dto.NewApplicationResponse(app),
	})
}

// Single handles GET /singleApplication/:id.
func (h *ApplicationsHandler) Single(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "Application")
	if err != nil {
		return err
	}

	app, err := h.applications.Get(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "application": dto.NewApplicationResponse(app)})
}

// Mine handles GET /user/applications.
func (h *ApplicationsHandler) Mine(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	apps, err := h.applications.ListMine(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "applications": dto.NewApplicationResponses(apps)})
}

// Delete handles DELETE /deleteApplication/:id.
func (h *ApplicationsHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "Application")
	if err != nil {
		return err
	}

	if err := h.applications.Withdraw(c.UserContext(), user, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Application deleted successfully"})
}
