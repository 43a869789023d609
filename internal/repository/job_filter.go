package repository

import (
	"math"
	"strconv"
	"strings"

	"jobboard/internal/models"

	"gorm.io/gorm"
)

// JobFilter is the open-job search built from query parameters. Every set
// field narrows the result; zero values are ignored.
type JobFilter struct {
	// Keywords must each appear in the title, the description or a skill.
	Keywords        []string
	Location        string
	JobType         string
	MinSalary       *int64
	MaxSalary       *int64
	ExperienceLevel string
}

// ParseJobFilter reads keywords, location, jobType, minSalary, maxSalary and
// experienceLevel from query. Unparsable salaries are a validation error.
func ParseJobFilter(query map[string]string) (JobFilter, error) {
	filter := JobFilter{
		Keywords:        splitKeywords(query["keywords"]),
		Location:        strings.TrimSpace(query["location"]),
		JobType:         strings.TrimSpace(query["jobType"]),
		ExperienceLevel: strings.TrimSpace(query["experienceLevel"]),
	}

	var err error
	if filter.MinSalary, err = parseSalary(query["minSalary"], "minSalary"); err != nil {
		return JobFilter{}, err
	}
	if filter.MaxSalary, err = parseSalary(query["maxSalary"], "maxSalary"); err != nil {
		return JobFilter{}, err
	}
	return filter, nil
}

func splitKeywords(raw string) []string {
	var keywords []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func parseSalary(raw, name string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return nil, models.NewValidationError("Invalid " + name + " value")
		}
		if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return nil, models.NewValidationError("Invalid " + name + " value")
		}
		v = int64(f)
	}
	return &v, nil
}

// Scopes translates the filter into GORM scopes. Only open jobs ever match.
func (f JobFilter) Scopes() []func(*gorm.DB) *gorm.DB {
	scopes := []func(*gorm.DB) *gorm.DB{
		func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.JobStatusOpen)
		},
	}

	for _, keyword := range f.Keywords {
		pattern := containsPattern(keyword)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR "+skillMatch(db)+")",
				pattern, pattern, pattern,
			)
		})
	}

	if f.Location != "" {
		pattern := containsPattern(f.Location)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(locations) LIKE ? ESCAPE '\\'", pattern)
		})
	}
	if f.JobType != "" {
		jobType := f.JobType
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("job_type = ?", jobType)
		})
	}
	// Salary bounds select postings whose range overlaps the requested one.
	if f.MinSalary != nil {
		minSalary := *f.MinSalary
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("max_salary >= ?", minSalary)
		})
	}
	if f.MaxSalary != nil {
		maxSalary := *f.MaxSalary
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("min_salary <= ?", maxSalary)
		})
	}
	if f.ExperienceLevel != "" {
		pattern := containsPattern(f.ExperienceLevel)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(experience_required) LIKE ? ESCAPE '\\'", pattern)
		})
	}

	return scopes
}

// containsPattern builds a case-insensitive substring LIKE pattern with the
// wildcards in s escaped.
func containsPattern(s string) string {
	return "%" + escapeLike(strings.ToLower(s)) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// skillMatch is true when any single element of the JSON skills array
// matches the bound LIKE pattern.
func skillMatch(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "EXISTS (SELECT 1 FROM json_array_elements_text(skills::json) AS skill(value) WHERE LOWER(skill.value) LIKE ? ESCAPE '\\')"
	}
	return "EXISTS (SELECT 1 FROM json_each(skills) WHERE LOWER(json_each.value) LIKE ? ESCAPE '\\')"
}
