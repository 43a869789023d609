package server

import (
	"log/slog"
	"time"

	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/security"
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/users/register
// @Summary Register
// @Description Create a job seeker or recruiter account
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,password=string,role=string} true "Registration request"
// @Success 201 {object} object{message=string,user=models.PublicUser}
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /users/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string      `json:"name"`
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return respondServiceError(c, err, "")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user.Public(),
	})
}

// Login handles POST /api/users/login
// @Summary Login
// @Description Authenticate and receive a token in the body and the token cookie
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string,role=string} true "Login credentials"
// @Success 200 {object} object{message=string,token=string,user=models.PublicUser}
// @Failure 401 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /users/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	result, err := s.userService.Login(c.UserContext(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return respondServiceError(c, err, "")
	}

	s.setTokenCookie(c, result.Token, security.TokenTTL)
	return c.JSON(fiber.Map{
		"message": "User logged in successfully",
		"token":   result.Token,
		"user":    result.User.Public(),
	})
}

// Logout handles POST /api/users/logout
// @Summary Logout
// @Description Revoke the current token and clear the token cookie
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /users/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if claims, ok := middleware.ClaimsFrom(c); ok {
		if err := security.Revoke(c.UserContext(), s.redis, claims); err != nil {
			// The cookie is still cleared; the token expires on its own.
			middleware.Logger.WarnContext(c.UserContext(), "token revocation failed", slog.String("error", err.Error()))
		}
	}

	s.setTokenCookie(c, "", -time.Hour)
	return c.JSON(fiber.Map{"message": "User logged out successfully"})
}

// GetProfile handles GET /api/users/profile
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{user=models.User}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/profile [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.Profile(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err, "")
	}
	return c.JSON(fiber.Map{"user": user})
}

// setTokenCookie writes the HttpOnly token cookie. A non-positive ttl expires it.
func (s *Server) setTokenCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	cookie := &fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if s.config.IsProduction() {
		cookie.SameSite = fiber.CookieSameSiteNoneMode
		cookie.Secure = true
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = time.Now().Add(ttl)
	} else {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	}
	c.Cookie(cookie)
}
