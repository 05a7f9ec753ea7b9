package service

import (
	"context"
	"math"
	"mime/multipart"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	"github.com/spec-kit/job-board/internal/storage"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// JobService coordinates postings and bookmarks.
type JobService struct {
	jobs       repository.JobRepository
	saved      repository.SavedJobRepository
	files      FileStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	policy     *bluemonday.Policy
}

// JobDependencies bundles repositories for the job service.
type JobDependencies struct {
	JobRepo      repository.JobRepository
	SavedJobRepo repository.SavedJobRepository
	Files        FileStore
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// JobInput describes a posting. Pointer fields are optional on update.
type JobInput struct {
	Title          *string
	Description    *string
	CompanyName    *string
	Location       *string
	SkillsRequired []string
	Experience     *string
	Salary         *float64
	Category       *string
	EmploymentType *string
	Status         *string
	Logo           *multipart.FileHeader
}

// maxSalary is the largest value jobs.salary NUMERIC(12,2) holds.
const maxSalary = 9_999_999_999.99

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{
		jobs:       deps.JobRepo,
		saved:      deps.SavedJobRepo,
		files:      deps.Files,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		policy:     bluemonday.UGCPolicy(),
	}
}

// Create publishes a new posting by poster.
func (s *JobService) Create(ctx context.Context, poster *domain.User, in JobInput) (*domain.Job, error) {
	if in.Logo == nil {
		return nil, apperrors.NewBadRequest("Company logo is required")
	}

	job := &domain.Job{PostedBy: poster.ID, PostedByName: poster.Name}
	if err := s.apply(job, in); err != nil {
		return nil, err
	}

	logoURL, err := s.files.Save(storage.KindLogo, in.Logo)
	if err != nil {
		return nil, uploadError(err, "company logo")
	}
	job.CompanyLogoURL = logoURL

	if err := s.jobs.Create(ctx, job); err != nil {
		s.files.Remove(logoURL)
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventJobPosted, poster.ID, job.ID, events.JobPostedPayload{
		Title:       job.Title,
		CompanyName: job.CompanyName,
	}))
	return job, nil
}

// List returns postings matching filter.
func (s *JobService) List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	return s.jobs.List(ctx, filter)
}

// Get returns one posting with its poster's name.
func (s *JobService) Get(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Job")
	}
	return job, nil
}

// Update applies the provided fields and swaps the logo when a new one is uploaded.
func (s *JobService) Update(ctx context.Context, id int64, in JobInput) (*domain.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldLogo := job.CompanyLogoURL
	if err := s.apply(job, in); err != nil {
		return nil, err
	}

	if in.Logo != nil {
		url, err := s.files.Save(storage.KindLogo, in.Logo)
		if err != nil {
			return nil, uploadError(err, "company logo")
		}
		job.CompanyLogoURL = url
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		if in.Logo != nil {
			s.files.Remove(job.CompanyLogoURL)
		}
		return nil, notFound(err, "Job")
	}
	if in.Logo != nil {
		s.files.Remove(oldLogo)
	}
	return job, nil
}

// Delete removes a posting and its logo.
func (s *JobService) Delete(ctx context.Context, id int64) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return notFound(err, "Job")
	}
	s.files.Remove(job.CompanyLogoURL)
	return nil
}

// ToggleSaved bookmarks or un-bookmarks a job for the user and reports the new state.
func (s *JobService) ToggleSaved(ctx context.Context, userID, jobID int64) (bool, error) {
	if _, err := s.Get(ctx, jobID); err != nil {
		return false, err
	}
	saved, err := s.saved.Toggle(ctx, userID, jobID)
	return saved, notFound(err, "Job")
}

// SavedJobs lists the user's bookmarks, most recent first.
func (s *JobService) SavedJobs(ctx context.Context, userID int64) ([]domain.Job, error) {
	return s.saved.ListJobs(ctx, userID)
}

// apply copies set fields onto job, sanitising free text and parsing the enums.
func (s *JobService) apply(job *domain.Job, in JobInput) error {
	if in.Title != nil {
		job.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		job.Description = strings.TrimSpace(s.policy.Sanitize(*in.Description))
	}
	if in.CompanyName != nil {
		job.CompanyName = strings.TrimSpace(*in.CompanyName)
	}
	if in.Location != nil {
		job.Location = strings.TrimSpace(*in.Location)
	}
	if in.SkillsRequired != nil {
		job.SkillsRequired = in.SkillsRequired
	}
	if in.Experience != nil {
		job.Experience = strings.TrimSpace(*in.Experience)
	}
	if in.Salary != nil {
		if math.IsNaN(*in.Salary) {
			return apperrors.NewBadRequest("Salary must be a number")
		}
		if *in.Salary < 0 {
			return apperrors.NewBadRequest("Salary cannot be negative")
		}
		if *in.Salary > maxSalary {
			return apperrors.NewBadRequest("Salary is too large")
		}
		job.Salary = *in.Salary
	}
	if in.Category != nil {
		job.Category = strings.TrimSpace(*in.Category)
	}

	if in.EmploymentType != nil || job.EmploymentType == "" {
		var raw string
		if in.EmploymentType != nil {
			raw = *in.EmploymentType
		}
		employment, err := domain.ParseEmploymentType(raw)
		if err != nil {
			return apperrors.NewBadRequest("Employment type must be full-time, part-time, contract or internship")
		}
		job.EmploymentType = employment
	}
	if in.Status != nil || job.Status == "" {
		var raw string
		if in.Status != nil {
			raw = *in.Status
		}
		status, err := domain.ParseJobStatus(raw)
		if err != nil {
			return apperrors.NewBadRequest("Status must be active or closed")
		}
		job.Status = status
	}
	return nil
}
