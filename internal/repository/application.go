package repository

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplicationScope selects the applications a dashboard counts. Exactly one
// of RecruiterID and ApplicantID is expected; From and To bound created_at
// inclusively when both are set.
type ApplicationScope struct {
	RecruiterID uint
	ApplicantID uint
	From        *time.Time
	To          *time.Time
}

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	Exists(ctx context.Context, jobID, applicantID uint) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	// GetWithDetails returns the application with its job and applicant populated.
	GetWithDetails(ctx context.Context, id uint) (*models.Application, error)
	ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.Application, error)
	ListByApplicant(ctx context.Context, applicantID uint) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID uint) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error
	CountByStatus(ctx context.Context, scope ApplicationScope) (map[models.ApplicationStatus]int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository returns a new ApplicationRepository implementation.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(app).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.ErrAlreadyApplied
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) Exists(ctx context.Context, jobID, applicantID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *applicationRepository) GetWithDetails(ctx context.Context, id uint) (*models.Application, error) {
	return r.get(r.db.WithContext(ctx).Preload("Job").Preload("Applicant"), id)
}

func (r *applicationRepository) get(db *gorm.DB, id uint) (*models.Application, error) {
	var app models.Application
	if err := db.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrApplicationNotFound
		}
		return nil, models.NewInternalError(err)
	}
	return &app, nil
}

func (r *applicationRepository) ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.Application, error) {
	return r.list(r.db.WithContext(ctx).
		Preload("Job").
		Preload("Applicant").
		Where("recruiter_id = ?", recruiterID))
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID uint) ([]models.Application, error) {
	return r.list(r.db.WithContext(ctx).
		Preload("Job").
		Preload("Recruiter").
		Where("applicant_id = ?", applicantID))
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	return r.list(r.db.WithContext(ctx).
		Preload("Applicant").
		Where("job_id = ?", jobID))
}

func (r *applicationRepository) list(db *gorm.DB) ([]models.Application, error) {
	var apps []models.Application
	if err := db.Scopes(newestFirst).Find(&apps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return apps, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Application{ID: id}).
		Update("status", status)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrApplicationNotFound
	}
	return nil
}

type statusCount struct {
	Status models.ApplicationStatus
	Count  int64
}

// CountByStatus counts the scoped applications per status in one grouped
// query. Statuses with no applications are absent from the map.
func (r *applicationRepository) CountByStatus(ctx context.Context, scope ApplicationScope) (map[models.ApplicationStatus]int64, error) {
	db := r.db.WithContext(ctx).Model(&models.Application{})
	if scope.RecruiterID != 0 {
		db = db.Where("recruiter_id = ?", scope.RecruiterID)
	}
	if scope.ApplicantID != 0 {
		db = db.Where("applicant_id = ?", scope.ApplicantID)
	}
	if scope.From != nil && scope.To != nil {
		db = db.Where("created_at >= ? AND created_at <= ?", scope.From.UTC(), scope.To.UTC())
	}

	var rows []statusCount
	if err := db.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
