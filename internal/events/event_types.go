package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/job-board/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobPosted                EventType = "job_posted"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventAccountDeleted           EventType = "account_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	ActorID   int64     `json:"actor_id"`
	SubjectID int64     `json:"subject_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, actorID, subjectID int64, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JobPostedPayload payload.
type JobPostedPayload struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	JobID    int64  `json:"job_id"`
	JobTitle string `json:"job_title"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	ApplicantID int64                    `json:"applicant_id"`
	OldStatus   domain.ApplicationStatus `json:"old_status"`
	NewStatus   domain.ApplicationStatus `json:"new_status"`
}

// AccountDeletedPayload payload.
type AccountDeletedPayload struct {
	Email   string `json:"email"`
	ByAdmin bool   `json:"by_admin"`
}
