package dto

import (
	"encoding/json"
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// JobRequest payload for creating or updating a posting. The logo arrives as multipart part
// logo.
type JobRequest struct {
	Title          string      `json:"title" form:"title"`
	Description    string      `json:"description" form:"description"`
	CompanyName    string      `json:"companyName" form:"companyName"`
	Location       string      `json:"location" form:"location"`
	SkillsRequired StringList  `json:"skillsRequired" form:"-"`
	Experience     string      `json:"experience" form:"experience"`
	Salary         json.Number `json:"salary" form:"salary"`
	Category       string      `json:"category" form:"category"`
	EmploymentType string      `json:"employmentType" form:"employmentType"`
	Status         string      `json:"status" form:"status"`
}

// JobResponse is the public view of a posting.
type JobResponse struct {
	ID             int64                 `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	CompanyName    string                `json:"company_name"`
	CompanyLogoURL string                `json:"company_logo_url"`
	Location       string                `json:"location"`
	SkillsRequired []string              `json:"skills_required"`
	Experience     string                `json:"experience"`
	Salary         float64               `json:"salary"`
	Category       string                `json:"category"`
	EmploymentType domain.EmploymentType `json:"employment_type"`
	Status         domain.JobStatus      `json:"status"`
	PostedBy       int64                 `json:"posted_by"`
	PostedByName   string                `json:"posted_by_name,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// NewJobResponse maps a job.
func NewJobResponse(j *domain.Job) JobResponse {
	skills := j.SkillsRequired
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		CompanyName:    j.CompanyName,
		CompanyLogoURL: j.CompanyLogoURL,
		Location:       j.Location,
		SkillsRequired: skills,
		Experience:     j.Experience,
		Salary:         j.Salary,
		Category:       j.Category,
		EmploymentType: j.EmploymentType,
		Status:         j.Status,
		PostedBy:       j.PostedBy,
		PostedByName:   j.PostedByName,
		CreatedAt:      j.CreatedAt,
	}
}

// NewJobResponses maps a slice of jobs.
func NewJobResponses(jobs []domain.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, NewJobResponse(&jobs[i]))
	}
	return out
}
