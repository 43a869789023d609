package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset describes how much demo data to generate and which vocabularies to
// draw from. It is loaded from YAML.
type Preset struct {
	Name                  string   `yaml:"name"`
	Seed                  int64    `yaml:"seed"`
	Recruiters            int      `yaml:"recruiters"`
	JobSeekers            int      `yaml:"jobSeekers"`
	JobsPerRecruiter      int      `yaml:"jobsPerRecruiter"`
	ApplicationsPerSeeker int      `yaml:"applicationsPerSeeker"`
	Password              string   `yaml:"password"`
	PasswordCost          int      `yaml:"passwordCost"`
	MaxDays               int      `yaml:"maxDays"`
	Skills                []string `yaml:"skills"`
	JobTypes              []string `yaml:"jobTypes"`
	Locations             []string `yaml:"locations"`
	ExperienceLevels      []string `yaml:"experienceLevels"`
}

// DefaultPreset is used when no preset file is given.
func DefaultPreset() Preset {
	return Preset{
		Name:                  "default",
		Recruiters:            3,
		JobSeekers:            10,
		JobsPerRecruiter:      4,
		ApplicationsPerSeeker: 3,
		Password:              "password123",
		MaxDays:               60,
		Skills: []string{
			"go", "postgres", "redis", "docker", "kubernetes", "react", "typescript",
			"node.js", "python", "aws", "graphql", "terraform", "java", "sql",
		},
		JobTypes:         []string{"full-time", "part-time", "contract", "internship"},
		Locations:        []string{"Remote", "New York", "Berlin", "London", "Bangalore", "Toronto"},
		ExperienceLevels: []string{"Entry level", "1-3 years", "3-5 years", "5+ years", "Senior"},
	}
}

// ParsePreset decodes YAML over DefaultPreset, so a file only needs the keys
// it changes.
func ParsePreset(data []byte) (Preset, error) {
	preset := DefaultPreset()
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return Preset{}, fmt.Errorf("parse seed preset: %w", err)
	}
	if err := preset.Validate(); err != nil {
		return Preset{}, err
	}
	return preset, nil
}

// LoadPreset reads and parses the preset at path.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read seed preset: %w", err)
	}
	return ParsePreset(data)
}

// Validate rejects presets that cannot produce consistent data.
func (p Preset) Validate() error {
	if p.Recruiters < 0 || p.JobSeekers < 0 || p.JobsPerRecruiter < 0 || p.ApplicationsPerSeeker < 0 {
		return fmt.Errorf("seed preset %q: counts must not be negative", p.Name)
	}
	if len(p.Password) < 8 {
		return fmt.Errorf("seed preset %q: password must be at least 8 characters", p.Name)
	}
	if len(p.Skills) == 0 || len(p.JobTypes) == 0 || len(p.Locations) == 0 || len(p.ExperienceLevels) == 0 {
		return fmt.Errorf("seed preset %q: skills, jobTypes, locations and experienceLevels must be non-empty", p.Name)
	}
	return nil
}
