package server

import (
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createJobRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Company            string   `json:"company"`
	Skills             []string `json:"skills"`
	Locations          string   `json:"locations"`
	JobType            string   `json:"jobType"`
	MinSalary          int64    `json:"minSalary"`
	MaxSalary          int64    `json:"maxSalary"`
	LastDateToApply    string   `json:"lastDateToApply"`
	ExperienceRequired string   `json:"experienceRequired"`
}

type updateJobRequest struct {
	Title              *string           `json:"title"`
	Description        *string           `json:"description"`
	Company            *string           `json:"company"`
	Skills             *[]string         `json:"skills"`
	Locations          *string           `json:"locations"`
	JobType            *string           `json:"jobType"`
	MinSalary          *int64            `json:"minSalary"`
	MaxSalary          *int64            `json:"maxSalary"`
	LastDateToApply    *string           `json:"lastDateToApply"`
	ExperienceRequired *string           `json:"experienceRequired"`
	Status             *models.JobStatus `json:"status"`
}

// CreateJob handles POST /api/jobs/create
// @Summary Post a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createJobRequest true "Job posting"
// @Success 201 {object} object{message=string,job=models.Job}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /jobs/create [post]
func (s *Server) CreateJob(c *fiber.Ctx) error {
	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	job, err := s.jobService.CreateJob(c.UserContext(), service.CreateJobInput{
		RecruiterID:        currentUserID(c),
		Title:              req.Title,
		Description:        req.Description,
		Company:            req.Company,
		Skills:             req.Skills,
		Locations:          req.Locations,
		JobType:            req.JobType,
		MinSalary:          req.MinSalary,
		MaxSalary:          req.MaxSalary,
		LastDateToApply:    req.LastDateToApply,
		ExperienceRequired: req.ExperienceRequired,
	})
	if err != nil {
		return respondServiceError(c, err, "creating job")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Job posted successfully",
		"job":     job,
	})
}

// GetRecruiterJobs handles GET /api/jobs/recruiter/jobs
// @Summary List own jobs
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string,jobs=[]models.Job}
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/recruiter/jobs [get]
func (s *Server) GetRecruiterJobs(c *fiber.Ctx) error {
	jobs, err := s.jobService.ListRecruiterJobs(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err, "fetching jobs")
	}
	return c.JSON(fiber.Map{
		"message": "Jobs retrieved successfully",
		"jobs":    jobs,
	})
}

// GetOpenJobs handles GET /api/jobs/job-seeker/open
// @Summary Search open jobs
// @Description Every filter is optional. Comma-separated keywords must each match the title, description or a skill.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param keywords query string false "Comma-separated keywords"
// @Param location query string false "Location substring"
// @Param jobType query string false "Exact job type"
// @Param minSalary query int false "Jobs paying at least this much"
// @Param maxSalary query int false "Jobs starting at or below this much"
// @Param experienceLevel query string false "Experience substring"
// @Success 200 {object} object{message=string,jobs=[]models.Job,count=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/job-seeker/open [get]
func (s *Server) GetOpenJobs(c *fiber.Ctx) error {
	filter, err := repository.ParseJobFilter(c.Queries())
	if err != nil {
		return respondServiceError(c, err, "fetching open jobs")
	}

	jobs, err := s.jobService.SearchOpenJobs(c.UserContext(), filter)
	if err != nil {
		return respondServiceError(c, err, "fetching open jobs")
	}
	return c.JSON(fiber.Map{
		"message": "Open jobs retrieved successfully",
		"jobs":    jobs,
		"count":   len(jobs),
	})
}

// GetJob handles GET /api/jobs/:jobId
// @Summary Fetch a job
// @Tags jobs
// @Produce json
// @Param jobId path int true "Job ID"
// @Success 200 {object} object{message=string,job=models.Job}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{jobId} [get]
func (s *Server) GetJob(c *fiber.Ctx) error {
	jobID, err := parseID(c, "jobId")
	if err != nil {
		return nil
	}

	job, err := s.jobService.GetJob(c.UserContext(), jobID)
	if err != nil {
		return respondServiceError(c, err, "fetching job")
	}
	return c.JSON(fiber.Map{
		"message": "Job retrieved successfully",
		"job":     job,
	})
}

// UpdateJob handles PUT /api/jobs/:jobId
// @Summary Update a job
// @Description Only provided fields change. Restricted to the owning recruiter.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID"
// @Param request body updateJobRequest true "Fields to change"
// @Success 200 {object} object{message=string,job=models.Job}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{jobId} [put]
func (s *Server) UpdateJob(c *fiber.Ctx) error {
	jobID, err := parseID(c, "jobId")
	if err != nil {
		return nil
	}

	var req updateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	job, err := s.jobService.UpdateJob(c.UserContext(), service.UpdateJobInput{
		RecruiterID:        currentUserID(c),
		JobID:              jobID,
		Title:              req.Title,
		Description:        req.Description,
		Company:            req.Company,
		Skills:             req.Skills,
		Locations:          req.Locations,
		JobType:            req.JobType,
		MinSalary:          req.MinSalary,
		MaxSalary:          req.MaxSalary,
		LastDateToApply:    req.LastDateToApply,
		ExperienceRequired: req.ExperienceRequired,
		Status:             req.Status,
	})
	if err != nil {
		return respondServiceError(c, err, "updating job")
	}
	return c.JSON(fiber.Map{
		"message": "Job updated successfully",
		"job":     job,
	})
}

// DeleteJob handles DELETE /api/jobs/:jobId
// @Summary Delete a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{jobId} [delete]
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	jobID, err := parseID(c, "jobId")
	if err != nil {
		return nil
	}

	if err := s.jobService.DeleteJob(c.UserContext(), service.DeleteJobInput{
		RecruiterID: currentUserID(c),
		JobID:       jobID,
	}); err != nil {
		return respondServiceError(c, err, "deleting job")
	}
	return c.JSON(fiber.Map{"message": "Job deleted successfully"})
}
