// Package seed provides helpers to create demo and test data for the job
// board database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"strings"
	"time"

	"jobboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db     *gorm.DB
	preset Preset
	faker  *gofakeit.Faker
	hash   string
	seq    int
}

// NewFactory creates a Factory bound to db. A zero preset.Seed picks a
// time-based seed.
func NewFactory(db *gorm.DB, preset Preset) *Factory {
	seed := preset.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{db: db, preset: preset, faker: gofakeit.New(seed)}
}

// Password returns the plain-text password every generated user shares.
func (f *Factory) Password() string {
	return f.preset.Password
}

func (f *Factory) passwordHash() (string, error) {
	if f.hash != "" {
		return f.hash, nil
	}
	cost := f.preset.PasswordCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(f.preset.Password), cost)
	if err != nil {
		return "", fmt.Errorf("hash seed password: %w", err)
	}
	f.hash = string(hashed)
	return f.hash, nil
}

// CreateUser persists a user with role and a unique generated email.
func (f *Factory) CreateUser(role models.Role, overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := f.passwordHash()
	if err != nil {
		return nil, err
	}

	f.seq++
	first, last := f.faker.FirstName(), f.faker.LastName()
	user := &models.User{
		Name:     first + " " + last,
		Email:    strings.ToLower(fmt.Sprintf("%s.%s.%d@example.com", first, last, f.seq)),
		Password: hashed,
		Role:     role,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// BuildJob constructs an open job owned by recruiter without persisting it.
func (f *Factory) BuildJob(recruiter *models.User, overrides ...func(*models.Job)) *models.Job {
	minSalary := int64(f.faker.Number(30, 120)) * 1000
	job := &models.Job{
		RecruiterID:        recruiter.ID,
		Title:              f.faker.JobTitle(),
		Description:        f.faker.Paragraph(1, 3, 12, " "),
		Company:            f.faker.Company(),
		Skills:             f.pick(f.preset.Skills, 3),
		Locations:          f.faker.RandomString(f.preset.Locations),
		JobType:            f.faker.RandomString(f.preset.JobTypes),
		MinSalary:          minSalary,
		MaxSalary:          minSalary + int64(f.faker.Number(10, 60))*1000,
		LastDateToApply:    time.Now().UTC().AddDate(0, 0, f.faker.Number(7, 60)),
		ExperienceRequired: f.faker.RandomString(f.preset.ExperienceLevels),
		Status:             models.JobStatusOpen,
		CreatedAt:          f.pastTime(),
	}
	for _, override := range overrides {
		override(job)
	}
	return job
}

// CreateJob persists a job built by BuildJob.
func (f *Factory) CreateJob(recruiter *models.User, overrides ...func(*models.Job)) (*models.Job, error) {
	job := f.BuildJob(recruiter, overrides...)
	if err := f.db.Omit(clause.Associations).Create(job).Error; err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// CreateApplication persists a pending application by applicant to job.
func (f *Factory) CreateApplication(job *models.Job, applicant *models.User, overrides ...func(*models.Application)) (*models.Application, error) {
	app := &models.Application{
		JobID:       job.ID,
		ApplicantID: applicant.ID,
		RecruiterID: job.RecruiterID,
		Status:      models.ApplicationStatusPending,
		CoverLetter: f.faker.Paragraph(1, 2, 10, " "),
		Resume:      fmt.Sprintf("https://files.example.com/resumes/%s.pdf", f.faker.UUID()),
		CreatedAt:   f.pastTime(),
	}
	for _, override := range overrides {
		override(app)
	}
	if err := f.db.Omit(clause.Associations).Create(app).Error; err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// pick returns up to n distinct entries of pool.
func (f *Factory) pick(pool []string, n int) []string {
	shuffled := append([]string(nil), pool...)
	f.faker.ShuffleStrings(shuffled)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func (f *Factory) pastTime() time.Time {
	maxDays := f.preset.MaxDays
	if maxDays <= 0 {
		maxDays = 60
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute
	return time.Now().UTC().Add(-back)
}
