package domain

import (
	"fmt"
	"time"
)

// ApplicationStatus tracks review progress of an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ParseApplicationStatus validates a raw application status.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	switch s := ApplicationStatus(raw); s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return s, nil
	}
	return "", fmt.Errorf("unknown application status %q", raw)
}

// Application links an applicant to a job.
type Application struct {
	ID                 int64
	JobID              int64
	ApplicantID        int64
	ApplicantResumeURL string
	Status             ApplicationStatus
	CreatedAt          time.Time

	// Joined, read-only fields.
	JobTitle       string
	JobDescription string
	CompanyName    string
	ApplicantName  string
}

// SavedJob is a bookmark of a job by a user.
type SavedJob struct {
	UserID    int64
	JobID     int64
	CreatedAt time.Time
}
