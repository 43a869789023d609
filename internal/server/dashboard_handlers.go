package server

import (
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

const dashboardOperation = "fetching dashboard statistics"

// GetJobSeekerDashboard handles GET /api/dashboard/job-seeker
// @Summary Job seeker statistics
// @Description The window applies only when both dates are given; endDate includes the whole day.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} service.JobSeekerStats
// @Failure 400 {object} models.ErrorResponse
// @Router /dashboard/job-seeker [get]
func (s *Server) GetJobSeekerDashboard(c *fiber.Ctx) error {
	window, err := service.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return respondServiceError(c, err, dashboardOperation)
	}

	stats, err := s.dashboardService.JobSeekerStats(c.UserContext(), currentUserID(c), window)
	if err != nil {
		return respondServiceError(c, err, dashboardOperation)
	}
	return c.JSON(stats)
}

// GetRecruiterDashboard handles GET /api/dashboard/recruiter
// @Summary Recruiter statistics
// @Description totalJobsPosted is never windowed.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} service.RecruiterStats
// @Failure 400 {object} models.ErrorResponse
// @Router /dashboard/recruiter [get]
func (s *Server) GetRecruiterDashboard(c *fiber.Ctx) error {
	window, err := service.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return respondServiceError(c, err, dashboardOperation)
	}

	stats, err := s.dashboardService.RecruiterStats(c.UserContext(), currentUserID(c), window)
	if err != nil {
		return respondServiceError(c, err, dashboardOperation)
	}
	return c.JSON(stats)
}
