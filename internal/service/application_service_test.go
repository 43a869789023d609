package service

import (
	"context"
	"testing"

	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"
	"jobboard/internal/seed"
	"jobboard/internal/testutil"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applicationFixture struct {
	factory *seed.Factory
	svc     *ApplicationService
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return &applicationFixture{
		factory: testutil.NewFactory(db),
		svc:     NewApplicationService(repository.NewApplicationRepository(db), repository.NewJobRepository(db)),
	}
}

func (f *applicationFixture) user(t *testing.T, role models.Role) *models.User {
	t.Helper()
	u, err := f.factory.CreateUser(role)
	require.NoError(t, err)
	return u
}

func (f *applicationFixture) job(t *testing.T, recruiter *models.User) *models.Job {
	t.Helper()
	j, err := f.factory.CreateJob(recruiter)
	require.NoError(t, err)
	return j
}

func TestApplicationService_Apply(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	recruiter := f.user(t, models.RoleRecruiter)
	seeker := f.user(t, models.RoleJobSeeker)
	job := f.job(t, recruiter)

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.svc.Apply(ctx, ApplyInput{ApplicantID: seeker.ID, JobID: job.ID, Resume: "  "})
		assertAppError(t, err, models.CodeValidation, "Job ID and resume are required")
		_, err = f.svc.Apply(ctx, ApplyInput{ApplicantID: seeker.ID, Resume: "cv.pdf"})
		assertAppError(t, err, models.CodeValidation, "Job ID and resume are required")
	})

	t.Run("unknown job", func(t *testing.T) {
		_, err := f.svc.Apply(ctx, ApplyInput{ApplicantID: seeker.ID, JobID: 9999, Resume: "cv.pdf"})
		assertAppError(t, err, models.CodeNotFound, "Job not found")
	})

	t.Run("first application", func(t *testing.T) {
		before := promtest.ToFloat64(observability.ApplicationsSubmitted)
		app, err := f.svc.Apply(ctx, ApplyInput{ApplicantID: seeker.ID, JobID: job.ID, Resume: "cv.pdf", CoverLetter: "Hi"})
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusPending, app.Status)
		assert.Equal(t, recruiter.ID, app.RecruiterID)
		assert.Equal(t, seeker.ID, app.ApplicantID)
		assert.Equal(t, before+1, promtest.ToFloat64(observability.ApplicationsSubmitted))
	})

	t.Run("second application for the same job", func(t *testing.T) {
		_, err := f.svc.Apply(ctx, ApplyInput{ApplicantID: seeker.ID, JobID: job.ID, Resume: "cv-v2.pdf"})
		assert.ErrorIs(t, err, models.ErrAlreadyApplied)
		assertAppError(t, err, models.CodeConflict, "You have already applied for this job")
	})
}

func TestApplicationService_Apply_RaceHitsUniqueIndex(t *testing.T) {
	t.Parallel()

	jobs := noopJobRepo()
	jobs.getByIDFn = func(_ context.Context, id uint) (*models.Job, error) {
		return &models.Job{ID: id, RecruiterID: 5}, nil
	}
	apps := noopAppRepo()
	apps.existsFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
	apps.createFn = func(_ context.Context, _ *models.Application) error { return models.ErrAlreadyApplied }
	svc := NewApplicationService(apps, jobs)

	_, err := svc.Apply(context.Background(), ApplyInput{ApplicantID: 1, JobID: 2, Resume: "cv.pdf"})
	assert.ErrorIs(t, err, models.ErrAlreadyApplied)
}

func TestApplicationService_Lists(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	recruiter := f.user(t, models.RoleRecruiter)
	other := f.user(t, models.RoleRecruiter)
	seeker := f.user(t, models.RoleJobSeeker)
	job := f.job(t, recruiter)

	_, err := f.svc.ListReceived(ctx, recruiter.ID)
	assertAppError(t, err, models.CodeNotFound, "No applications found for this recruiter")
	_, err = f.svc.ListSubmitted(ctx, seeker.ID)
	assertAppError(t, err, models.CodeNotFound, "No applications found for this job seeker")
	_, err = f.svc.ListForJob(ctx, recruiter.ID, job.ID)
	assertAppError(t, err, models.CodeNotFound, "No applications found for this job")

	_, err = f.svc.Apply(ctx, ApplyInput{ApplicantID: seeker.ID, JobID: job.ID, Resume: "cv.pdf"})
	require.NoError(t, err)

	received, err := f.svc.ListReceived(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Applicant)
	assert.Equal(t, seeker.Email, received[0].Applicant.Email)

	submitted, err := f.svc.ListSubmitted(ctx, seeker.ID)
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	require.NotNil(t, submitted[0].Job)
	assert.Equal(t, job.Title, submitted[0].Job.Title)

	forJob, err := f.svc.ListForJob(ctx, recruiter.ID, job.ID)
	require.NoError(t, err)
	assert.Len(t, forJob, 1)

	_, err = f.svc.ListForJob(ctx, other.ID, job.ID)
	assertAppError(t, err, models.CodeForbidden, "You are not authorized to view applications for this job")
	_, err = f.svc.ListForJob(ctx, recruiter.ID, 9999)
	assertAppError(t, err, models.CodeNotFound, "Job not found")
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	recruiter := f.user(t, models.RoleRecruiter)
	other := f.user(t, models.RoleRecruiter)
	seeker := f.user(t, models.RoleJobSeeker)
	job := f.job(t, recruiter)

	app, err := f.svc.Apply(ctx, ApplyInput{ApplicantID: seeker.ID, JobID: job.ID, Resume: "cv.pdf"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   UpdateApplicationStatusInput
		code    string
		message string
	}{
		{
			name:    "invalid status",
			input:   UpdateApplicationStatusInput{RecruiterID: recruiter.ID, ApplicationID: app.ID, Status: "hired"},
			code:    models.CodeValidation,
			message: "Invalid status. Allowed statuses: pending, rejected, shortlisted, accepted",
		},
		{
			name:    "unknown application",
			input:   UpdateApplicationStatusInput{RecruiterID: recruiter.ID, ApplicationID: 9999, Status: models.ApplicationStatusAccepted},
			code:    models.CodeNotFound,
			message: "Application not found",
		},
		{
			name:    "other recruiter",
			input:   UpdateApplicationStatusInput{RecruiterID: other.ID, ApplicationID: app.ID, Status: models.ApplicationStatusAccepted},
			code:    models.CodeForbidden,
			message: "You are not authorized to update this application",
		},
		{
			name:    "applicant cannot update own application",
			input:   UpdateApplicationStatusInput{RecruiterID: seeker.ID, ApplicationID: app.ID, Status: models.ApplicationStatusAccepted},
			code:    models.CodeForbidden,
			message: "You are not authorized to update this application",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.UpdateStatus(ctx, tc.input)
			assertAppError(t, err, tc.code, tc.message)
		})
	}

	for _, status := range []models.ApplicationStatus{
		models.ApplicationStatusShortlisted,
		models.ApplicationStatusPending,
		models.ApplicationStatusAccepted,
	} {
		updated, err := f.svc.UpdateStatus(ctx, UpdateApplicationStatusInput{
			RecruiterID: recruiter.ID, ApplicationID: app.ID, Status: status,
		})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
		require.NotNil(t, updated.Job)
		require.NotNil(t, updated.Applicant)
	}
}
