package repository

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobTitles(jobs []models.Job) []string {
	titles := make([]string, len(jobs))
	for i, j := range jobs {
		titles[i] = j.Title
	}
	return titles
}

func TestJobRepository_CRUD(t *testing.T) {
	f := newFixture(t)
	repo := NewJobRepository(f.db)
	ctx := context.Background()
	recruiter := f.user(t, models.RoleRecruiter)

	job := f.factory.BuildJob(recruiter, func(j *models.Job) { j.Title = "Backend Engineer" })
	require.NoError(t, repo.Create(ctx, job))
	require.NotZero(t, job.ID)

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)
	require.NotNil(t, got.Recruiter)
	assert.Equal(t, recruiter.Email, got.Recruiter.Email)

	got.Title = "Staff Engineer"
	got.Status = models.JobStatusClosed
	got.RecruiterID = 9999
	require.NoError(t, repo.Update(ctx, got))

	reloaded, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", reloaded.Title)
	assert.Equal(t, models.JobStatusClosed, reloaded.Status)
	assert.Equal(t, recruiter.ID, reloaded.RecruiterID, "owner must not change")

	require.NoError(t, repo.Delete(ctx, job.ID))
	_, err = repo.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, models.ErrJobNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, job.ID), models.ErrJobNotFound)
}

func TestJobRepository_ListByRecruiter(t *testing.T) {
	f := newFixture(t)
	repo := NewJobRepository(f.db)
	ctx := context.Background()
	owner := f.user(t, models.RoleRecruiter)
	other := f.user(t, models.RoleRecruiter)

	now := time.Now().UTC()
	f.job(t, owner, func(j *models.Job) { j.Title = "old"; j.CreatedAt = now.Add(-2 * time.Hour) })
	f.job(t, owner, func(j *models.Job) { j.Title = "new"; j.CreatedAt = now })
	f.job(t, other, func(j *models.Job) { j.Title = "foreign" })

	jobs, err := repo.ListByRecruiter(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, jobTitles(jobs))

	count, err := repo.CountByRecruiter(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	none, err := repo.ListByRecruiter(ctx, 12345)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJobRepository_Search(t *testing.T) {
	f := newFixture(t)
	repo := NewJobRepository(f.db)
	ctx := context.Background()
	recruiter := f.user(t, models.RoleRecruiter)
	now := time.Now().UTC()

	f.job(t, recruiter, func(j *models.Job) {
		j.Title = "Go Developer"
		j.Description = "Build services"
		j.Skills = []string{"golang", "postgres"}
		j.Locations = "Remote, Berlin"
		j.JobType = "full-time"
		j.MinSalary, j.MaxSalary = 40000, 60000
		j.ExperienceRequired = "3-5 years"
		j.CreatedAt = now.Add(-3 * time.Hour)
	})
	f.job(t, recruiter, func(j *models.Job) {
		j.Title = "Frontend Engineer"
		j.Description = "Remote friendly team"
		j.Skills = []string{"react", "go"}
		j.Locations = "London"
		j.JobType = "contract"
		j.MinSalary, j.MaxSalary = 20000, 45000
		j.ExperienceRequired = "Entry level"
		j.CreatedAt = now.Add(-2 * time.Hour)
	})
	f.job(t, recruiter, func(j *models.Job) {
		j.Title = "Data Analyst"
		j.Description = "SQL reporting"
		j.Skills = []string{"sql"}
		j.Locations = "Toronto"
		j.JobType = "full-time"
		j.MinSalary, j.MaxSalary = 70000, 90000
		j.ExperienceRequired = "Senior"
		j.CreatedAt = now.Add(-time.Hour)
	})
	f.job(t, recruiter, func(j *models.Job) {
		j.Title = "Closed Go Role"
		j.Skills = []string{"go"}
		j.Status = models.JobStatusClosed
		j.CreatedAt = now
	})
	f.job(t, recruiter, func(j *models.Job) {
		j.Title = "100% Remote_Ops"
		j.Description = "ops"
		j.Skills = []string{"R&D"}
		j.Locations = "Remote"
		j.JobType = "part-time"
		j.MinSalary, j.MaxSalary = 10000, 20000
		j.ExperienceRequired = "1-3 years"
		j.CreatedAt = now.Add(-4 * time.Hour)
	})
	f.job(t, recruiter, func(j *models.Job) {
		j.Title = "Systems Programmer"
		j.Description = "Low level work"
		j.Skills = []string{"C<"}
		j.Locations = "Paris"
		j.JobType = "internship"
		j.MinSalary, j.MaxSalary = 5000, 9000
		j.ExperienceRequired = "Junior"
		j.CreatedAt = now.Add(-5 * time.Hour)
	})

	int64p := func(v int64) *int64 { return &v }

	tests := []struct {
		name     string
		filter   JobFilter
		expected []string
	}{
		{
			name:     "No filter returns open jobs newest first",
			expected: []string{"Data Analyst", "Frontend Engineer", "Go Developer", "100% Remote_Ops", "Systems Programmer"},
		},
		{
			name:     "Keyword matches title, description or skill",
			filter:   JobFilter{Keywords: []string{"go"}},
			expected: []string{"Frontend Engineer", "Go Developer"},
		},
		{
			name:     "Keywords are ANDed",
			filter:   JobFilter{Keywords: []string{"go", "remote"}},
			expected: []string{"Frontend Engineer"},
		},
		{
			name:     "Keyword match is case-insensitive",
			filter:   JobFilter{Keywords: []string{"POSTGRES"}},
			expected: []string{"Go Developer"},
		},
		{
			name:     "Min salary keeps jobs whose max reaches it",
			filter:   JobFilter{MinSalary: int64p(50000)},
			expected: []string{"Data Analyst", "Go Developer"},
		},
		{
			name:     "Salary range overlap",
			filter:   JobFilter{MinSalary: int64p(42000), MaxSalary: int64p(50000)},
			expected: []string{"Frontend Engineer", "Go Developer"},
		},
		{
			name:     "Location substring",
			filter:   JobFilter{Location: "berlin"},
			expected: []string{"Go Developer"},
		},
		{
			name:     "Job type exact",
			filter:   JobFilter{JobType: "contract"},
			expected: []string{"Frontend Engineer"},
		},
		{
			name:     "Experience substring",
			filter:   JobFilter{ExperienceLevel: "SENIOR"},
			expected: []string{"Data Analyst"},
		},
		{
			name:     "Percent is literal",
			filter:   JobFilter{Keywords: []string{"100%"}},
			expected: []string{"100% Remote_Ops"},
		},
		{
			name:     "Underscore is literal",
			filter:   JobFilter{Keywords: []string{"e_o"}},
			expected: []string{"100% Remote_Ops"},
		},
		{
			name:     "Skill with ampersand",
			filter:   JobFilter{Keywords: []string{"r&d"}},
			expected: []string{"100% Remote_Ops"},
		},
		{
			name:     "Skill with angle bracket",
			filter:   JobFilter{Keywords: []string{"c<"}},
			expected: []string{"Systems Programmer"},
		},
		{
			name:     "Closing bracket of skills array does not match",
			filter:   JobFilter{Keywords: []string{"]"}},
			expected: []string{},
		},
		{
			name:     "Opening bracket of skills array does not match",
			filter:   JobFilter{Keywords: []string{"["}},
			expected: []string{},
		},
		{
			name:     "Unicode escape of stored skill does not match",
			filter:   JobFilter{Keywords: []string{"u003c"}},
			expected: []string{},
		},
		{
			name:     "Quote around stored skill does not match",
			filter:   JobFilter{Keywords: []string{`"go"`}},
			expected: []string{},
		},
		{
			name:     "Nothing matches",
			filter:   JobFilter{Keywords: []string{"cobol"}},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := repo.Search(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, jobTitles(jobs))
			for _, j := range jobs {
				assert.Equal(t, models.JobStatusOpen, j.Status)
				assert.NotNil(t, j.Recruiter)
			}
		})
	}
}
