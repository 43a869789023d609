package service

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/models"
	"jobboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, _ uint) (*models.User, error) { return nil, models.ErrUserNotFound },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
	}
}

// jobRepoStub is a stub for repository.JobRepository.
type jobRepoStub struct {
	createFn           func(context.Context, *models.Job) error
	getByIDFn          func(context.Context, uint) (*models.Job, error)
	listByRecruiterFn  func(context.Context, uint) ([]models.Job, error)
	searchFn           func(context.Context, repository.JobFilter) ([]models.Job, error)
	updateFn           func(context.Context, *models.Job) error
	deleteFn           func(context.Context, uint) error
	countByRecruiterFn func(context.Context, uint) (int64, error)
}

func (s *jobRepoStub) Create(ctx context.Context, job *models.Job) error {
	return s.createFn(ctx, job)
}
func (s *jobRepoStub) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	return s.getByIDFn(ctx, id)
}
func (s *jobRepoStub) ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.Job, error) {
	return s.listByRecruiterFn(ctx, recruiterID)
}
func (s *jobRepoStub) Search(ctx context.Context, filter repository.JobFilter) ([]models.Job, error) {
	return s.searchFn(ctx, filter)
}
func (s *jobRepoStub) Update(ctx context.Context, job *models.Job) error {
	return s.updateFn(ctx, job)
}
func (s *jobRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *jobRepoStub) CountByRecruiter(ctx context.Context, recruiterID uint) (int64, error) {
	return s.countByRecruiterFn(ctx, recruiterID)
}

func noopJobRepo() *jobRepoStub {
	return &jobRepoStub{
		createFn:           func(_ context.Context, _ *models.Job) error { return nil },
		getByIDFn:          func(_ context.Context, _ uint) (*models.Job, error) { return nil, models.ErrJobNotFound },
		listByRecruiterFn:  func(_ context.Context, _ uint) ([]models.Job, error) { return nil, nil },
		searchFn:           func(_ context.Context, _ repository.JobFilter) ([]models.Job, error) { return nil, nil },
		updateFn:           func(_ context.Context, _ *models.Job) error { return nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
		countByRecruiterFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// appRepoStub is a stub for repository.ApplicationRepository.
type appRepoStub struct {
	createFn          func(context.Context, *models.Application) error
	existsFn          func(context.Context, uint, uint) (bool, error)
	getByIDFn         func(context.Context, uint) (*models.Application, error)
	getWithDetailsFn  func(context.Context, uint) (*models.Application, error)
	listByRecruiterFn func(context.Context, uint) ([]models.Application, error)
	listByApplicantFn func(context.Context, uint) ([]models.Application, error)
	listByJobFn       func(context.Context, uint) ([]models.Application, error)
	updateStatusFn    func(context.Context, uint, models.ApplicationStatus) error
	countByStatusFn   func(context.Context, repository.ApplicationScope) (map[models.ApplicationStatus]int64, error)
}

func (s *appRepoStub) Create(ctx context.Context, app *models.Application) error {
	return s.createFn(ctx, app)
}
func (s *appRepoStub) Exists(ctx context.Context, jobID, applicantID uint) (bool, error) {
	return s.existsFn(ctx, jobID, applicantID)
}
func (s *appRepoStub) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	return s.getByIDFn(ctx, id)
}
func (s *appRepoStub) GetWithDetails(ctx context.Context, id uint) (*models.Application, error) {
	return s.getWithDetailsFn(ctx, id)
}
func (s *appRepoStub) ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.Application, error) {
	return s.listByRecruiterFn(ctx, recruiterID)
}
func (s *appRepoStub) ListByApplicant(ctx context.Context, applicantID uint) ([]models.Application, error) {
	return s.listByApplicantFn(ctx, applicantID)
}
func (s *appRepoStub) ListByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	return s.listByJobFn(ctx, jobID)
}
func (s *appRepoStub) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *appRepoStub) CountByStatus(ctx context.Context, scope repository.ApplicationScope) (map[models.ApplicationStatus]int64, error) {
	return s.countByStatusFn(ctx, scope)
}

func noopAppRepo() *appRepoStub {
	return &appRepoStub{
		createFn: func(_ context.Context, _ *models.Application) error { return nil },
		existsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Application, error) {
			return nil, models.ErrApplicationNotFound
		},
		getWithDetailsFn: func(_ context.Context, _ uint) (*models.Application, error) {
			return nil, models.ErrApplicationNotFound
		},
		listByRecruiterFn: func(_ context.Context, _ uint) ([]models.Application, error) { return nil, nil },
		listByApplicantFn: func(_ context.Context, _ uint) ([]models.Application, error) { return nil, nil },
		listByJobFn:       func(_ context.Context, _ uint) ([]models.Application, error) { return nil, nil },
		updateStatusFn:    func(_ context.Context, _ uint, _ models.ApplicationStatus) error { return nil },
		countByStatusFn: func(_ context.Context, _ repository.ApplicationScope) (map[models.ApplicationStatus]int64, error) {
			return map[models.ApplicationStatus]int64{}, nil
		},
	}
}

// assertAppError asserts that err is an AppError with the given code and,
// when message is set, the given message.
func assertAppError(t *testing.T, err error, code, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}
