package handlers

import (
	"log"

	"porto/internal/middleware"
	"porto/internal/models"
	"porto/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the auth routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, optionalIdentity fiber.Handler) {
	routes := router.Group("/auth")
	routes.Post("/login", h.HandleLogin)
	routes.Get("/me", optionalIdentity, h.HandleMe)
}

// HandleLogin verifies credentials with the identity provider and returns
// its token pair plus the resolved user.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_request_body")
	}
	if err := h.validate.Struct(req); err != nil {
		return detail(c, fiber.StatusBadRequest, "email_or_username_and_password_required")
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		log.Printf("Login failed: %v", err)
		return detail(c, fiber.StatusBadRequest, services.LoginFailureDetail(err))
	}
	return c.JSON(resp)
}

// HandleMe returns the authenticated user and their admin status.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	if user == nil {
		return detail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"isAdmin": h.authService.IsAdmin(user.ID),
	})
}
