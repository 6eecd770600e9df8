package server

import (
	"pressroom/internal/models"
	"pressroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// registrationClosedFlag is an operational kill switch for self-service
// signup, e.g. during a spam wave. Provisioning via admins stays open.
const registrationClosedFlag = "registration_closed"

// Register handles POST /api/auth/register. Self-service accounts are always
// readers; a role field in the payload is ignored.
func (s *Server) Register(c *fiber.Ctx) error {
	// A deliberate policy refusal, not a transient outage, so no 503.
	if s.flags.Enabled(registrationClosedFlag, 0) {
		return models.RespondWithError(c,
			models.NewForbiddenError("Registration is temporarily closed"))
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.userService.Register(c.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// RegisterByAdmin handles POST /api/auth/register-admin. Admins may provision
// accounts with any role.
func (s *Server) RegisterByAdmin(c *fiber.Ctx) error {
	actor, err := s.identity(c)
	if err != nil {
		return nil
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.userService.RegisterWithRole(c.Context(), actor, service.ProvisionUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.userService.Login(c.Context(), service.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(result)
}

// WhoAmI handles GET /api/auth/whoami, echoing the authenticated identity.
func (s *Server) WhoAmI(c *fiber.Ctx) error {
	actor, err := s.identity(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), actor.UserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"user_id": actor.UserID,
		"role":    actor.Role,
		"user":    user,
	})
}
