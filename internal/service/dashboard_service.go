package service

import (
	"context"
	"strings"
	"time"

	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/validation"
)

const msgInvalidDate = "Invalid date format. Use YYYY-MM-DD format"

// DateRange is an optional createdAt window. It only applies when both ends
// are set.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDateRange parses the startDate and endDate query values. Any value
// that is present must parse; the end is extended to the last millisecond of
// its day.
func ParseDateRange(startDate, endDate string) (DateRange, error) {
	var r DateRange
	if startDate = strings.TrimSpace(startDate); startDate != "" {
		from, err := validation.ParseDate(startDate)
		if err != nil {
			return DateRange{}, models.NewValidationError(msgInvalidDate)
		}
		from = from.UTC()
		r.From = &from
	}
	if endDate = strings.TrimSpace(endDate); endDate != "" {
		to, err := validation.ParseDate(endDate)
		if err != nil {
			return DateRange{}, models.NewValidationError(msgInvalidDate)
		}
		to = validation.EndOfDay(to)
		r.To = &to
	}
	return r, nil
}

type JobSeekerStats struct {
	TotalApplications       int64 `json:"totalApplications"`
	ShortlistedApplications int64 `json:"shortlistedApplications"`
	RejectedApplications    int64 `json:"rejectedApplications"`
	PendingApplications     int64 `json:"pendingApplications"`
}

type RecruiterStats struct {
	ApplicationsReceived    int64 `json:"applicationsReceived"`
	ShortlistedApplications int64 `json:"shortlistedApplications"`
	RejectedApplications    int64 `json:"rejectedApplications"`
	PendingApplications     int64 `json:"pendingApplications"`
	TotalJobsPosted         int64 `json:"totalJobsPosted"`
}

type DashboardService struct {
	appRepo repository.ApplicationRepository
	jobRepo repository.JobRepository
}

func NewDashboardService(appRepo repository.ApplicationRepository, jobRepo repository.JobRepository) *DashboardService {
	return &DashboardService{appRepo: appRepo, jobRepo: jobRepo}
}

func (s *DashboardService) JobSeekerStats(ctx context.Context, applicantID uint, window DateRange) (*JobSeekerStats, error) {
	counts, err := s.appRepo.CountByStatus(ctx, repository.ApplicationScope{
		ApplicantID: applicantID,
		From:        window.From,
		To:          window.To,
	})
	if err != nil {
		return nil, err
	}
	return &JobSeekerStats{
		TotalApplications:       total(counts),
		ShortlistedApplications: counts[models.ApplicationStatusShortlisted],
		RejectedApplications:    counts[models.ApplicationStatusRejected],
		PendingApplications:     counts[models.ApplicationStatusPending],
	}, nil
}

// RecruiterStats counts applications received in the window. Jobs posted is
// an all-time total.
func (s *DashboardService) RecruiterStats(ctx context.Context, recruiterID uint, window DateRange) (*RecruiterStats, error) {
	counts, err := s.appRepo.CountByStatus(ctx, repository.ApplicationScope{
		RecruiterID: recruiterID,
		From:        window.From,
		To:          window.To,
	})
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.CountByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	return &RecruiterStats{
		ApplicationsReceived:    total(counts),
		ShortlistedApplications: counts[models.ApplicationStatusShortlisted],
		RejectedApplications:    counts[models.ApplicationStatusRejected],
		PendingApplications:     counts[models.ApplicationStatusPending],
		TotalJobsPosted:         jobs,
	}, nil
}

func total(counts map[models.ApplicationStatus]int64) int64 {
	var n int64
	for _, c := range counts {
		n += c
	}
	return n
}
