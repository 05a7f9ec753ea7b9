package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

const maxJobPageSize = 100

// JobsHandler serves postings and the saved-jobs list.
type JobsHandler struct {
	jobs JobUseCases
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobs JobUseCases) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// Create handles POST /job/create.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	in, err := jobInput(c)
	if err != nil {
		return err
	}

	job, err := h.jobs.Create(c.UserContext(), user, in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Job created successfully",
		"job":     dto.NewJobResponse(job),
	})
}

// List handles GET /jobs.
func (h *JobsHandler) List(c *fiber.Ctx) error {
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

// Get handles GET /job/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
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

// ToggleSave handles POST /job/save/:id.
func (h *JobsHandler) ToggleSave(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "Job")
	if err != nil {
		return err
	}

	saved, err := h.jobs.ToggleSaved(c.UserContext(), user.ID, id)
	if err != nil {
		return err
	}
	message := "Job Unsaved"
	if saved {
		message = "Job saved"
	}
	return c.JSON(fiber.Map{"success": true, "message": message, "saved": saved})
}

// SavedJobs handles GET /user/saved-jobs.
func (h *JobsHandler) SavedJobs(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	jobs, err := h.jobs.SavedJobs(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "savedJobs": dto.NewJobResponses(jobs)})
}

// jobInput maps a create or update payload; absent fields stay nil.
func jobInput(c *fiber.Ctx) (service.JobInput, error) {
	var req dto.JobRequest
	if err := parseBody(c, &req); err != nil {
		return service.JobInput{}, err
	}

	in := service.JobInput{
		Title:          optional(req.Title),
		Description:    optional(req.Description),
		CompanyName:    optional(req.CompanyName),
		Location:       optional(req.Location),
		SkillsRequired: formList(c, "skillsRequired", req.SkillsRequired),
		Experience:     optional(req.Experience),
		Category:       optional(req.Category),
		EmploymentType: optional(req.EmploymentType),
		Status:         optional(req.Status),
		Logo:           formFile(c, "logo"),
	}
	if raw := strings.TrimSpace(req.Salary.String()); raw != "" {
		salary, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return service.JobInput{}, apperrors.NewValidationError("Salary must be a number", nil)
		}
		in.Salary = &salary
	}
	return in, nil
}

func jobFilter(c *fiber.Ctx) (repository.JobFilter, error) {
	filter := repository.JobFilter{
		Category:   optional(strings.TrimSpace(c.Query("category"))),
		Location:   optional(strings.TrimSpace(c.Query("location"))),
		SearchTerm: optional(strings.TrimSpace(c.Query("search"))),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseJobStatus(raw)
		if err != nil {
			return filter, apperrors.NewValidationError("Status must be active or closed", nil)
		}
		filter.Status = &status
	}
	if raw := c.Query("employmentType"); raw != "" {
		kind, err := domain.ParseEmploymentType(raw)
		if err != nil {
			return filter, apperrors.NewValidationError("Employment type is invalid", nil)
		}
		filter.EmploymentType = &kind
	}

	filter.Limit = c.QueryInt("limit", 0)
	if filter.Limit < 0 || filter.Limit > maxJobPageSize {
		filter.Limit = maxJobPageSize
	}
	filter.Offset = c.QueryInt("offset", 0)
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter, nil
}
