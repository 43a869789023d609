package repository

import (
	"context"
	"errors"

	"jobboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	// GetByID returns the job with its recruiter populated.
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.Job, error)
	Search(ctx context.Context, filter JobFilter) ([]models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id uint) error
	CountByRecruiter(ctx context.Context, recruiterID uint) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository returns a new JobRepository implementation.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).Preload("Recruiter").First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrJobNotFound
		}
		return nil, models.NewInternalError(err)
	}
	return &job, nil
}

func (r *jobRepository) ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.WithContext(ctx).
		Preload("Recruiter").
		Where("recruiter_id = ?", recruiterID).
		Scopes(newestFirst).
		Find(&jobs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

func (r *jobRepository) Search(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Preload("Recruiter").
		Scopes(filter.Scopes()...).
		Scopes(newestFirst).
		Find(&jobs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

// Update persists every column of job except its id, owner and creation time.
func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	result := r.db.WithContext(ctx).
		Model(&models.Job{ID: job.ID}).
		Select("*").
		Omit("id", "recruiter_id", "created_at", clause.Associations).
		Updates(job)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Job{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) CountByRecruiter(ctx context.Context, recruiterID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("recruiter_id = ?", recruiterID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
