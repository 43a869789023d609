package service

import (
	"context"
	"strings"

	"jobboard/internal/cache"
	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"
	"jobboard/internal/validation"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

const (
	msgAllFieldsRequired = "All fields are required"
	msgSalaryRange       = "minSalary must not exceed maxSalary"
	msgNoRecruiterJobs   = "No jobs found for this recruiter"
	msgNoOpenJobs        = "No open jobs found matching your criteria"
	msgCannotUpdateJob   = "You are not authorized to update this job"
	msgCannotDeleteJob   = "You are not authorized to delete this job"
)

type JobService struct {
	jobRepo repository.JobRepository
	redis   *redis.Client
}

type CreateJobInput struct {
	RecruiterID        uint
	Title              string
	Description        string
	Company            string
	Skills             []string
	Locations          string
	JobType            string
	MinSalary          int64
	MaxSalary          int64
	LastDateToApply    string
	ExperienceRequired string
}

// UpdateJobInput carries a partial update. Nil fields keep their stored value.
type UpdateJobInput struct {
	RecruiterID        uint
	JobID              uint
	Title              *string
	Description        *string
	Company            *string
	Skills             *[]string
	Locations          *string
	JobType            *string
	MinSalary          *int64
	MaxSalary          *int64
	LastDateToApply    *string
	ExperienceRequired *string
	Status             *models.JobStatus
}

type DeleteJobInput struct {
	RecruiterID uint
	JobID       uint
}

func NewJobService(jobRepo repository.JobRepository, rdb *redis.Client) *JobService {
	return &JobService{jobRepo: jobRepo, redis: rdb}
}

func (s *JobService) CreateJob(ctx context.Context, in CreateJobInput) (*models.Job, error) {
	skills := cleanSkills(in.Skills)
	if isBlank(in.Title, in.Description, in.Company, in.Locations, in.JobType, in.ExperienceRequired, in.LastDateToApply) ||
		len(skills) == 0 || in.MinSalary <= 0 || in.MaxSalary <= 0 {
		return nil, models.NewValidationError(msgAllFieldsRequired)
	}
	lastDate, err := validation.ParseDate(in.LastDateToApply)
	if err != nil {
		return nil, models.NewValidationError(msgAllFieldsRequired)
	}
	if in.MinSalary > in.MaxSalary {
		return nil, models.NewValidationError(msgSalaryRange)
	}

	job := &models.Job{
		RecruiterID:        in.RecruiterID,
		Title:              strings.TrimSpace(in.Title),
		Description:        strings.TrimSpace(in.Description),
		Company:            strings.TrimSpace(in.Company),
		Skills:             skills,
		Locations:          strings.TrimSpace(in.Locations),
		JobType:            strings.TrimSpace(in.JobType),
		MinSalary:          in.MinSalary,
		MaxSalary:          in.MaxSalary,
		LastDateToApply:    lastDate.UTC(),
		ExperienceRequired: strings.TrimSpace(in.ExperienceRequired),
		Status:             models.JobStatusOpen,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) ListRecruiterJobs(ctx context.Context, recruiterID uint) ([]models.Job, error) {
	jobs, err := s.jobRepo.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, notFound(msgNoRecruiterJobs)
	}
	return jobs, nil
}

// GetJob serves a single posting through the Redis cache.
func (s *JobService) GetJob(ctx context.Context, jobID uint) (*models.Job, error) {
	var job models.Job
	err := cache.Aside(ctx, s.redis, cache.JobKey(jobID), &job, cache.JobTTL, func() error {
		found, err := s.jobRepo.GetByID(ctx, jobID)
		if err != nil {
			return err
		}
		job = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) SearchOpenJobs(ctx context.Context, filter repository.JobFilter) ([]models.Job, error) {
	ctx, end := observability.StartSpan(ctx, "JobService.SearchOpenJobs",
		attribute.Int("jobs.keywords", len(filter.Keywords)))
	jobs, err := s.jobRepo.Search(ctx, filter)
	if err == nil && len(jobs) == 0 {
		err = notFound(msgNoOpenJobs)
	}
	end(err)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) UpdateJob(ctx context.Context, in UpdateJobInput) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if !models.IsOwnedBy(job, in.RecruiterID) {
		return nil, models.NewForbiddenError(msgCannotUpdateJob)
	}

	if err := applyJobUpdate(job, in); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	cache.InvalidateJob(ctx, s.redis, job.ID)

	return s.jobRepo.GetByID(ctx, job.ID)
}

func applyJobUpdate(job *models.Job, in UpdateJobInput) error {
	for _, field := range []struct {
		value *string
		dest  *string
	}{
		{in.Title, &job.Title},
		{in.Description, &job.Description},
		{in.Company, &job.Company},
		{in.Locations, &job.Locations},
		{in.JobType, &job.JobType},
		{in.ExperienceRequired, &job.ExperienceRequired},
	} {
		if field.value == nil {
			continue
		}
		v := strings.TrimSpace(*field.value)
		if v == "" {
			return models.NewValidationError(msgAllFieldsRequired)
		}
		*field.dest = v
	}

	if in.Skills != nil {
		skills := cleanSkills(*in.Skills)
		if len(skills) == 0 {
			return models.NewValidationError(msgAllFieldsRequired)
		}
		job.Skills = skills
	}
	if in.MinSalary != nil {
		job.MinSalary = *in.MinSalary
	}
	if in.MaxSalary != nil {
		job.MaxSalary = *in.MaxSalary
	}
	if job.MinSalary <= 0 || job.MaxSalary <= 0 {
		return models.NewValidationError(msgAllFieldsRequired)
	}
	if job.MinSalary > job.MaxSalary {
		return models.NewValidationError(msgSalaryRange)
	}
	if in.LastDateToApply != nil {
		lastDate, err := validation.ParseDate(*in.LastDateToApply)
		if err != nil {
			return models.NewValidationError("Invalid lastDateToApply. Use YYYY-MM-DD format")
		}
		job.LastDateToApply = lastDate.UTC()
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return models.NewValidationError("Invalid job status. Allowed statuses: open, closed")
		}
		job.Status = *in.Status
	}
	return nil
}

func (s *JobService) DeleteJob(ctx context.Context, in DeleteJobInput) error {
	job, err := s.jobRepo.GetByID(ctx, in.JobID)
	if err != nil {
		return err
	}
	if !models.IsOwnedBy(job, in.RecruiterID) {
		return models.NewForbiddenError(msgCannotDeleteJob)
	}
	if err := s.jobRepo.Delete(ctx, job.ID); err != nil {
		return err
	}
	cache.InvalidateJob(ctx, s.redis, job.ID)
	return nil
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}

func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func notFound(message string) *models.AppError {
	return &models.AppError{Code: models.CodeNotFound, Message: message}
}
