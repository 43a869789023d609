package server

import (
	"jobboard/internal/models"
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Apply handles POST /api/applications/apply
// @Summary Apply for a job
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{jobId=int,coverLetter=string,resume=string} true "Application"
// @Success 201 {object} object{message=string,application=models.Application}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /applications/apply [post]
func (s *Server) Apply(c *fiber.Ctx) error {
	var req struct {
		JobID       uint   `json:"jobId"`
		CoverLetter string `json:"coverLetter"`
		Resume      string `json:"resume"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	app, err := s.applicationService.Apply(c.UserContext(), service.ApplyInput{
		ApplicantID: currentUserID(c),
		JobID:       req.JobID,
		CoverLetter: req.CoverLetter,
		Resume:      req.Resume,
	})
	if err != nil {
		return respondServiceError(c, err, "submitting application")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

// GetReceivedApplications handles GET /api/applications/recruiter/applications
// @Summary Applications received by the caller
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string,applications=[]models.Application,count=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /applications/recruiter/applications [get]
func (s *Server) GetReceivedApplications(c *fiber.Ctx) error {
	apps, err := s.applicationService.ListReceived(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err, "fetching applications")
	}
	return applicationsResponse(c, apps)
}

// GetSubmittedApplications handles GET /api/applications/job-seeker/applications
// @Summary Applications submitted by the caller
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string,applications=[]models.Application,count=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /applications/job-seeker/applications [get]
func (s *Server) GetSubmittedApplications(c *fiber.Ctx) error {
	apps, err := s.applicationService.ListSubmitted(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err, "fetching applications")
	}
	return applicationsResponse(c, apps)
}

// GetJobApplications handles GET /api/applications/job/:jobId
// @Summary Applications for one of the caller's jobs
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID"
// @Success 200 {object} object{message=string,applications=[]models.Application,count=int}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /applications/job/{jobId} [get]
func (s *Server) GetJobApplications(c *fiber.Ctx) error {
	jobID, err := parseID(c, "jobId")
	if err != nil {
		return nil
	}

	apps, err := s.applicationService.ListForJob(c.UserContext(), currentUserID(c), jobID)
	if err != nil {
		return respondServiceError(c, err, "fetching applications")
	}
	return applicationsResponse(c, apps)
}

// UpdateApplicationStatus handles PUT /api/applications/:applicationId
// @Summary Change an application's status
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicationId path int true "Application ID"
// @Param request body object{status=string} true "pending, rejected, shortlisted or accepted"
// @Success 200 {object} object{message=string,application=models.Application}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /applications/{applicationId} [put]
func (s *Server) UpdateApplicationStatus(c *fiber.Ctx) error {
	appID, err := parseID(c, "applicationId")
	if err != nil {
		return nil
	}

	var req struct {
		Status models.ApplicationStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	app, err := s.applicationService.UpdateStatus(c.UserContext(), service.UpdateApplicationStatusInput{
		RecruiterID:   currentUserID(c),
		ApplicationID: appID,
		Status:        req.Status,
	})
	if err != nil {
		return respondServiceError(c, err, "updating application status")
	}
	return c.JSON(fiber.Map{
		"message":     "Application status updated successfully",
		"application": app,
	})
}

func applicationsResponse(c *fiber.Ctx, apps []models.Application) error {
	return c.JSON(fiber.Map{
		"message":      "Applications retrieved successfully",
		"applications": apps,
		"count":        len(apps),
	})
}
