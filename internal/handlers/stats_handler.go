package handlers

import (
	"log"

	"porto/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler handles the aggregate-count endpoint.
type StatsHandler struct {
	service *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// RegisterRoutes registers the stats routes with the Fiber app.
func (h *StatsHandler) RegisterRoutes(router fiber.Router, requireAdmin fiber.Handler) {
	router.Get("/stats", requireAdmin, h.HandleGet)
}

// HandleGet returns exact counts across the collections (admin only).
func (h *StatsHandler) HandleGet(c *fiber.Ctx) error {
	stats, err := h.service.Collect()
	if err != nil {
		log.Printf("Error collecting stats: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_collect_stats")
	}
	return c.JSON(stats)
}
