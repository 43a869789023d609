package models

import (
	"strings"
	"time"
)

// ApplicationStatus is the recruiter-controlled state of an application.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
)

// ApplicationStatuses lists the allowed statuses in display order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusRejected,
	ApplicationStatusShortlisted,
	ApplicationStatusAccepted,
}

// Valid reports whether s is one of ApplicationStatuses.
func (s ApplicationStatus) Valid() bool {
	for _, allowed := range ApplicationStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// AllowedApplicationStatuses renders ApplicationStatuses for error messages.
func AllowedApplicationStatuses() string {
	names := make([]string, len(ApplicationStatuses))
	for i, s := range ApplicationStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Application links a job, its applicant and the recruiter that owned the job
// when the application was submitted.
type Application struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	JobID       uint              `gorm:"not null;uniqueIndex:idx_applications_job_applicant" json:"jobId"`
	Job         *Job              `gorm:"foreignKey:JobID" json:"job,omitempty"`
	ApplicantID uint              `gorm:"not null;uniqueIndex:idx_applications_job_applicant;index" json:"applicantId"`
	Applicant   *User             `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	RecruiterID uint              `gorm:"not null;index" json:"recruiterId"`
	Recruiter   *User             `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CoverLetter string            `gorm:"type:text" json:"coverLetter,omitempty"`
	Resume      string            `gorm:"not null" json:"resume"`
	CreatedAt   time.Time         `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// OwnerID returns the recruiter allowed to change the application status.
func (a *Application) OwnerID() uint {
	if a == nil {
		return 0
	}
	return a.RecruiterID
}
