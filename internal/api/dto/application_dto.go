package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// UpdateApplicationStatusRequest payload.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" form:"status"`
}

// ApplicationResponse is the public view of an application.
type ApplicationResponse struct {
	ID                 int64                    `json:"id"`
	JobID              int64                    `json:"job_id"`
	ApplicantID        int64                    `json:"applicant_id"`
	ApplicantResumeURL string                   `json:"applicant_resume_url"`
	Status             domain.ApplicationStatus `json:"status"`
	CreatedAt          time.Time                `json:"created_at"`
	JobTitle           string                   `json:"job_title,omitempty"`
	JobDescription     string                   `json:"job_description,omitempty"`
	CompanyName        string                   `json:"company_name,omitempty"`
	ApplicantName      string                   `json:"applicant_name,omitempty"`
}

// NewApplicationResponse maps an application.
func NewApplicationResponse(a *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                 a.ID,
		JobID:              a.JobID,
		ApplicantID:        a.ApplicantID,
		ApplicantResumeURL: a.ApplicantResumeURL,
		Status:             a.Status,
		CreatedAt:          a.CreatedAt,
		JobTitle:           a.JobTitle,
		JobDescription:     a.JobDescription,
		CompanyName:        a.CompanyName,
		ApplicantName:      a.ApplicantName,
	}
}

// NewApplicationResponses maps a slice of applications.
func NewApplicationResponses(apps []domain.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationResponse(&apps[i]))
	}
	return out
}
