package service

import (
	"context"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const (
	msgApplyRequired            = "Job ID and resume are required"
	msgNoRecruiterApplications  = "No applications found for this recruiter"
	msgNoApplicantApplications  = "No applications found for this job seeker"
	msgNoJobApplications        = "No applications found for this job"
	msgCannotViewApplications   = "You are not authorized to view applications for this job"
	msgCannotUpdateApplication  = "You are not authorized to update this application"
	msgInvalidApplicationStatus = "Invalid status. Allowed statuses: "
)

type ApplicationService struct {
	appRepo repository.ApplicationRepository
	jobRepo repository.JobRepository
}

type ApplyInput struct {
	ApplicantID uint
	JobID       uint
	CoverLetter string
	Resume      string
}

type UpdateApplicationStatusInput struct {
	RecruiterID   uint
	ApplicationID uint
	Status        models.ApplicationStatus
}

func NewApplicationService(appRepo repository.ApplicationRepository, jobRepo repository.JobRepository) *ApplicationService {
	return &ApplicationService{appRepo: appRepo, jobRepo: jobRepo}
}

// Apply submits an application for the job. The recruiter is copied from the
// job so the application stays attributable after the job is deleted.
func (s *ApplicationService) Apply(ctx context.Context, in ApplyInput) (*models.Application, error) {
	ctx, end := observability.StartSpan(ctx, "ApplicationService.Apply",
		attribute.Int64("job.id", int64(in.JobID)))
	app, err := s.apply(ctx, in)
	end(err)
	return app, err
}

func (s *ApplicationService) apply(ctx context.Context, in ApplyInput) (*models.Application, error) {
	resume := strings.TrimSpace(in.Resume)
	if in.JobID == 0 || resume == "" {
		return nil, models.NewValidationError(msgApplyRequired)
	}

	job, err := s.jobRepo.GetByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	applied, err := s.appRepo.Exists(ctx, job.ID, in.ApplicantID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, models.ErrAlreadyApplied
	}

	app := &models.Application{
		JobID:       job.ID,
		ApplicantID: in.ApplicantID,
		RecruiterID: job.RecruiterID,
		Status:      models.ApplicationStatusPending,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		Resume:      resume,
	}
	// A concurrent duplicate slips past Exists and is rejected by the unique index.
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	observability.ApplicationsSubmitted.Inc()
	return app, nil
}

func (s *ApplicationService) ListReceived(ctx context.Context, recruiterID uint) ([]models.Application, error) {
	apps, err := s.appRepo.ListByRecruiter(ctx, recruiterID)
	return nonEmpty(apps, err, msgNoRecruiterApplications)
}

func (s *ApplicationService) ListSubmitted(ctx context.Context, applicantID uint) ([]models.Application, error) {
	apps, err := s.appRepo.ListByApplicant(ctx, applicantID)
	return nonEmpty(apps, err, msgNoApplicantApplications)
}

// ListForJob returns the applications of a job owned by recruiterID.
func (s *ApplicationService) ListForJob(ctx context.Context, recruiterID, jobID uint) ([]models.Application, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !models.IsOwnedBy(job, recruiterID) {
		return nil, models.NewForbiddenError(msgCannotViewApplications)
	}
	apps, err := s.appRepo.ListByJob(ctx, job.ID)
	return nonEmpty(apps, err, msgNoJobApplications)
}

// UpdateStatus moves an application to any allowed status. Transitions are
// not restricted.
func (s *ApplicationService) UpdateStatus(ctx context.Context, in UpdateApplicationStatusInput) (*models.Application, error) {
	if !in.Status.Valid() {
		return nil, models.NewValidationError(msgInvalidApplicationStatus + models.AllowedApplicationStatuses())
	}

	app, err := s.appRepo.GetByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	if !models.IsOwnedBy(app, in.RecruiterID) {
		return nil, models.NewForbiddenError(msgCannotUpdateApplication)
	}

	if err := s.appRepo.UpdateStatus(ctx, app.ID, in.Status); err != nil {
		return nil, err
	}
	return s.appRepo.GetWithDetails(ctx, app.ID)
}

func nonEmpty(apps []models.Application, err error, emptyMessage string) ([]models.Application, error) {
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, notFound(emptyMessage)
	}
	return apps, nil
}
