package seed

import (
	"context"
	"fmt"
	"log/slog"

	"jobboard/internal/middleware"
	"jobboard/internal/models"

	"gorm.io/gorm"
)

// Summary reports what a seeding run created.
type Summary struct {
	Recruiters   int
	JobSeekers   int
	Jobs         int
	Applications int
}

// Run creates the users, jobs and applications described by preset in one
// transaction. Every job seeker applies to distinct jobs, so the
// one-application-per-job rule always holds.
func Run(ctx context.Context, db *gorm.DB, preset Preset) (Summary, error) {
	if err := preset.Validate(); err != nil {
		return Summary{}, err
	}

	var summary Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		summary = Summary{}
		f := NewFactory(tx, preset)

		var jobs []*models.Job
		for i := 0; i < preset.Recruiters; i++ {
			recruiter, err := f.CreateUser(models.RoleRecruiter)
			if err != nil {
				return err
			}
			summary.Recruiters++

			for j := 0; j < preset.JobsPerRecruiter; j++ {
				job, err := f.CreateJob(recruiter)
				if err != nil {
					return err
				}
				jobs = append(jobs, job)
				summary.Jobs++
			}
		}

		for i := 0; i < preset.JobSeekers; i++ {
			seeker, err := f.CreateUser(models.RoleJobSeeker)
			if err != nil {
				return err
			}
			summary.JobSeekers++

			applied := 0
			for _, idx := range f.faker.Rand.Perm(len(jobs)) {
				if applied >= preset.ApplicationsPerSeeker {
					break
				}
				status := models.ApplicationStatuses[f.faker.Number(0, len(models.ApplicationStatuses)-1)]
				if _, err := f.CreateApplication(jobs[idx], seeker, func(a *models.Application) {
					a.Status = status
				}); err != nil {
					return err
				}
				applied++
				summary.Applications++
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("seed %q: %w", preset.Name, err)
	}

	middleware.Logger.InfoContext(ctx, "seed completed",
		slog.String("preset", preset.Name),
		slog.Int("recruiters", summary.Recruiters),
		slog.Int("job_seekers", summary.JobSeekers),
		slog.Int("jobs", summary.Jobs),
		slog.Int("applications", summary.Applications),
	)
	return summary, nil
}

// Clean removes every application, job and user.
func Clean(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Application{}, &models.Job{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clean %T: %w", model, err)
			}
		}
		return nil
	})
}
