package handlers

import (
	"runtime"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler serves the liveness and diagnostic endpoints.
type HealthHandler struct {
	configured map[string]bool
}

// NewHealthHandler creates a new HealthHandler. configured maps setting
// names to whether they were present at startup; values are never exposed.
func NewHealthHandler(configured map[string]bool) *HealthHandler {
	return &HealthHandler{configured: configured}
}

// RegisterRoutes registers the root, health and diag routes.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleRoot)
	router.Get("/health", h.HandleHealth)
	router.Get("/diag", h.HandleDiag)
}

// HandleRoot returns basic service info.
func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Porto API",
		"version": "1.0.0",
	})
}

// HandleHealth is the liveness check.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// HandleDiag reports the runtime and which settings are configured.
func (h *HealthHandler) HandleDiag(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"go":  runtime.Version(),
		"env": h.configured,
	})
}
