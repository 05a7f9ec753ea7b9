package handlers

import (
	"context"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// AccountService is the self-service part of the auth service.
type AccountService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.Session, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword, confirmPassword string) error
	UpdateProfile(ctx context.Context, user *domain.User, in service.UpdateProfileInput) (*domain.User, error)
	DeleteAccount(ctx context.Context, user *domain.User, password string) error
}

// UserAdminService is the administrative part of the auth service.
type UserAdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUserRole(ctx context.Context, id int64, rawRole string) (*domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.User, id int64) error
}

// JobUseCases is implemented by service.JobService.
type JobUseCases interface {
	Create(ctx context.Context, poster *domain.User, in service.JobInput) (*domain.Job, error)
	List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error)
	Get(ctx context.Context, id int64) (*domain.Job, error)
	Update(ctx context.Context, id int64, in service.JobInput) (*domain.Job, error)
	Delete(ctx context.Context, id int64) error
	ToggleSaved(ctx context.Context, userID, jobID int64) (bool, error)
	SavedJobs(ctx context.Context, userID int64) ([]domain.Job, error)
}

// ApplicationUseCases is implemented by service.ApplicationService.
type ApplicationUseCases interface {
	Apply(ctx context.Context, applicant *domain.User, jobID int64) (*domain.Application, error)
	Get(ctx context.Context, viewer *domain.User, id int64) (*domain.Application, error)
	ListMine(ctx context.Context, applicantID int64) ([]domain.Application, error)
	ListAll(ctx context.Context) ([]domain.Application, error)
	Withdraw(ctx context.Context, applicant *domain.User, id int64) error
	UpdateStatus(ctx context.Context, actor *domain.User, id int64, rawStatus string) (*domain.Application, error)
	Delete(ctx context.Context, id int64) error
	GetAny(ctx context.Context, id int64) (*domain.Application, error)
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, err := auth.MustPrincipal(c)
	if err != nil {
		return nil, err
	}
	return principal.User, nil
}

// pathID reads the numeric :id parameter. The validation stage has already checked it, so a
// failure here only happens on routes registered without one.
func pathID(c *fiber.Ctx, resource string) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Please provide a valid "+resource+" ID", nil)
	}
	return id, nil
}

// formFile returns the uploaded part or nil when the request carries none.
func formFile(c *fiber.Ctx, field string) *multipart.FileHeader {
	if c.Is("json") {
		return nil
	}
	header, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return header
}

// parseBody decodes JSON, urlencoded and multipart payloads alike.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	return nil
}

// formList reads a comma separated form value for non JSON requests.
func formList(c *fiber.Ctx, field string, fromJSON []string) []string {
	if c.Is("json") {
		return fromJSON
	}
	return domain.SplitList(c.FormValue(field))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
