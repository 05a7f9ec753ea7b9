package domain

import (
	"fmt"
	"time"
)

// EmploymentType enumerates contract kinds for a posting.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

// ParseEmploymentType validates a raw employment type.
func ParseEmploymentType(raw string) (EmploymentType, error) {
	switch t := EmploymentType(raw); t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return t, nil
	case "":
		return EmploymentFullTime, nil
	}
	return "", fmt.Errorf("unknown employment type %q", raw)
}

// JobStatus represents whether a posting accepts applications.
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

// ParseJobStatus validates a raw job status; empty defaults to active.
func ParseJobStatus(raw string) (JobStatus, error) {
	switch s := JobStatus(raw); s {
	case JobStatusActive, JobStatusClosed:
		return s, nil
	case "":
		return JobStatusActive, nil
	}
	return "", fmt.Errorf("unknown job status %q", raw)
}

// Job is a posting published by an administrator.
type Job struct {
	ID             int64
	Title          string
	Description    string
	CompanyName    string
	CompanyLogoURL string
	Location       string
	SkillsRequired []string
	Experience     string
	Salary         float64
	Category       string
	EmploymentType EmploymentType
	Status         JobStatus
	PostedBy       int64
	PostedByName   string
	CreatedAt      time.Time
}
