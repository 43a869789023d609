package repository

import (
	"testing"

	"jobboard/internal/models"
	"jobboard/internal/seed"
	"jobboard/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	factory *seed.Factory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return &fixture{db: db, factory: testutil.NewFactory(db)}
}

func (f *fixture) user(t *testing.T, role models.Role) *models.User {
	t.Helper()
	u, err := f.factory.CreateUser(role)
	require.NoError(t, err)
	return u
}

func (f *fixture) job(t *testing.T, recruiter *models.User, overrides ...func(*models.Job)) *models.Job {
	t.Helper()
	j, err := f.factory.CreateJob(recruiter, overrides...)
	require.NoError(t, err)
	return j
}

func (f *fixture) application(t *testing.T, job *models.Job, applicant *models.User, overrides ...func(*models.Application)) *models.Application {
	t.Helper()
	a, err := f.factory.CreateApplication(job, applicant, overrides...)
	require.NoError(t, err)
	return a
}
