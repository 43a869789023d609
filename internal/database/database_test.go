package database

import (
	"testing"

	"jobboard/internal/config"
	"jobboard/internal/models"
	"jobboard/internal/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestDialector(t *testing.T) {
	d, err := Dialector(&config.Config{DBDriver: "sqlite", DBSQLitePath: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = Dialector(&config.Config{DBDriver: "postgres", DBHost: "localhost", DBPort: "5432"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(&config.Config{DBDriver: "mongo"})
	assert.Error(t, err)
}

func TestConnect_SQLiteMigrates(t *testing.T) {
	db, err := Connect(&config.Config{Env: "test", DBDriver: "sqlite", DBSQLitePath: ":memory:"})
	require.NoError(t, err)

	for _, m := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Application{}, "idx_applications_job_applicant"))

	user := &models.User{Name: "Ada", Email: "ada@example.com", Password: "x", Role: models.RoleRecruiter}
	require.NoError(t, db.Create(user).Error)

	var found models.User
	require.NoError(t, db.First(&found, user.ID).Error)
	assert.Equal(t, "ada@example.com", found.Email)

	assert.Positive(t, testutil.CollectAndCount(observability.DatabaseQueryLatency))
}

func TestMigrate_JobSkillsRoundTrip(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	job := &models.Job{
		RecruiterID: 1, Title: "Go Engineer", Description: "d", Company: "c",
		Skills: []string{"go", "sql"}, Locations: "Remote", JobType: "full-time",
		MinSalary: 1, MaxSalary: 2, ExperienceRequired: "3 years",
	}
	require.NoError(t, db.Create(job).Error)

	var found models.Job
	require.NoError(t, db.First(&found, job.ID).Error)
	assert.Equal(t, []string{"go", "sql"}, found.Skills)
	assert.Equal(t, models.JobStatusOpen, found.Status)
}
