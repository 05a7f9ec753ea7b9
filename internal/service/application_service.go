package service

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// ApplicationService coordinates job applications.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// ApplicationDependencies bundles repositories for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	JobRepo         repository.JobRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		jobs:         deps.JobRepo,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
	}
}

// Apply submits the applicant's current resume to an open job. One application per job.
func (s *ApplicationService) Apply(ctx context.Context, applicant *domain.User, jobID int64) (*domain.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFound(err, "Job")
	}
	if job.Status == domain.JobStatusClosed {
		return nil, apperrors.NewBadRequest("This job is no longer accepting applications")
	}

	exists, err := s.applications.Exists(ctx, jobID, applicant.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("You have already applied for this job", nil)
	}
	if applicant.ResumeURL == "" {
		return nil, apperrors.NewBadRequest("You must upload a resume to apply for jobs")
	}

	app := &domain.Application{
		JobID:              jobID,
		ApplicantID:        applicant.ID,
		ApplicantResumeURL: applicant.ResumeURL,
		Status:             domain.ApplicationPending,
		JobTitle:           job.Title,
		JobDescription:     job.Description,
		CompanyName:        job.CompanyName,
		ApplicantName:      applicant.Name,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrAlreadyApplied) {
			return nil, apperrors.NewConflict("You have already applied for this job", nil)
		}
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventApplicationSubmitted, applicant.ID, app.ID, events.ApplicationSubmittedPayload{
		JobID:    job.ID,
		JobTitle: job.Title,
	}))
	return app, nil
}

// Get returns an application visible to viewer: its applicant or an administrator.
func (s *ApplicationService) Get(ctx context.Context, viewer *domain.User, id int64) (*domain.Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != viewer.ID && !viewer.IsAdmin() {
		return nil, apperrors.NewForbidden("You can only view your own applications")
	}
	return app, nil
}

// ListMine returns the applicant's applications.
func (s *ApplicationService) ListMine(ctx context.Context, applicantID int64) ([]domain.Application, error) {
	return s.applications.ListByApplicant(ctx, applicantID)
}

// ListAll returns every application for administrators.
func (s *ApplicationService) ListAll(ctx context.Context) ([]domain.Application, error) {
	return s.applications.List(ctx)
}

// Withdraw deletes the applicant's own application. Applications of others are reported as
// missing.
func (s *ApplicationService) Withdraw(ctx context.Context, applicant *domain.User, id int64) error {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil || app.ApplicantID != applicant.ID {
		if err != nil && !isNoRows(err) {
			return err
		}
		return apperrors.NewDomainError(apperrors.CodeNotFound, "Application not found or already deleted", http.StatusNotFound, nil)
	}
	return notFound(s.applications.Delete(ctx, id), "Application")
}

// UpdateStatus moves an application through review on behalf of an administrator.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *domain.User, id int64, rawStatus string) (*domain.Application, error) {
	status, err := domain.ParseApplicationStatus(rawStatus)
	if err != nil {
		return nil, apperrors.NewBadRequest("Status must be pending, accepted or rejected")
	}
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status == status {
		return app, nil
	}
	if err := s.applications.UpdateStatus(ctx, id, status); err != nil {
		return nil, notFound(err, "Application")
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventApplicationStatusChanged, actor.ID, id, events.ApplicationStatusChangedPayload{
		ApplicantID: app.ApplicantID,
		OldStatus:   app.Status,
		NewStatus:   status,
	}))
	app.Status = status
	return app, nil
}

// Delete removes any application on behalf of an administrator.
func (s *ApplicationService) Delete(ctx context.Context, id int64) error {
	return notFound(s.applications.Delete(ctx, id), "Application")
}

// GetAny loads an application without an ownership check.
func (s *ApplicationService) GetAny(ctx context.Context, id int64) (*domain.Application, error) {
	return s.load(ctx, id)
}

func (s *ApplicationService) load(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Application")
	}
	return app, nil
}
