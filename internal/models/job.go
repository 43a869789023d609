package models

import "time"

// JobStatus is the lifecycle state of a posting.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// Valid reports whether s is open or closed.
func (s JobStatus) Valid() bool {
	return s == JobStatusOpen || s == JobStatusClosed
}

// Job represents a posting owned by a recruiter.
type Job struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	RecruiterID        uint      `gorm:"not null;index" json:"recruiterId"`
	Recruiter          *User     `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
	Title              string    `gorm:"not null" json:"title"`
	Description        string    `gorm:"type:text;not null" json:"description"`
	Company            string    `gorm:"not null" json:"company"`
	Skills             []string  `gorm:"type:text;serializer:json;not null" json:"skills"`
	Locations          string    `gorm:"not null" json:"locations"`
	JobType            string    `gorm:"not null;index" json:"jobType"`
	MinSalary          int64     `gorm:"not null" json:"minSalary"`
	MaxSalary          int64     `gorm:"not null" json:"maxSalary"`
	LastDateToApply    time.Time `gorm:"not null" json:"lastDateToApply"`
	ExperienceRequired string    `gorm:"not null" json:"experienceRequired"`
	Status             JobStatus `gorm:"type:varchar(20);not null;default:open;index" json:"status"`
	CreatedAt          time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// OwnerID returns the recruiter that may mutate the job.
func (j *Job) OwnerID() uint {
	if j == nil {
		return 0
	}
	return j.RecruiterID
}
