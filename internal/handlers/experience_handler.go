package handlers

import (
	"errors"
	"log"

	"porto/internal/models"
	"porto/internal/repositories"
	"porto/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	experienceDefaultLimit = 50
	experienceMaxLimit     = 200
)

// ExperienceHandler handles HTTP requests for work experiences.
type ExperienceHandler struct {
	service  *services.ExperienceService
	validate *validator.Validate
}

// NewExperienceHandler creates a new ExperienceHandler.
func NewExperienceHandler(service *services.ExperienceService) *ExperienceHandler {
	return &ExperienceHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the experience routes with the Fiber app.
func (h *ExperienceHandler) RegisterRoutes(router fiber.Router, requireAdmin fiber.Handler) {
	routes := router.Group("/experiences")
	routes.Get("/", h.HandleList)
	routes.Post("/", requireAdmin, h.HandleCreate)
	routes.Post("/update", requireAdmin, h.HandleUpdate)
	routes.Delete("/:id", requireAdmin, h.HandleDelete)
}

// HandleList retrieves a page of experiences ordered by start date (public).
func (h *ExperienceHandler) HandleList(c *fiber.Ctx) error {
	limit, offset, err := listBounds(c, experienceDefaultLimit, experienceMaxLimit)
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	experiences, total, err := h.service.List(limit, offset)
	if err != nil {
		log.Printf("Error listing experiences: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_list_experiences")
	}
	return paginated(c, experiences, total)
}

// HandleCreate creates a new experience (admin only).
func (h *ExperienceHandler) HandleCreate(c *fiber.Ctx) error {
	var experience models.Experience
	if err := c.BodyParser(&experience); err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_request_body")
	}
	if err := h.validate.Struct(experience); err != nil {
		return detail(c, fiber.StatusBadRequest, "validation_failed")
	}

	if err := h.service.Create(&experience); err != nil {
		log.Printf("Error creating experience: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_create_experience")
	}
	return c.Status(fiber.StatusCreated).JSON(experience)
}

// HandleUpdate applies a partial update to an experience by body id (admin
// only).
func (h *ExperienceHandler) HandleUpdate(c *fiber.Ctx) error {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_request_body")
	}

	id, _ := data["id"].(string)
	if id == "" {
		return detail(c, fiber.StatusBadRequest, "id_required")
	}

	experience, err := h.service.Update(id, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUpdatableFields):
			return detail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrNotFound):
			return detail(c, fiber.StatusNotFound, "experience_not_found")
		}
		log.Printf("Error updating experience %s: %v", id, err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_update_experience")
	}
	return c.JSON(experience)
}

// HandleDelete deletes an experience by id (admin only).
func (h *ExperienceHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		log.Printf("Error deleting experience: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_delete_experience")
	}
	return c.JSON(fiber.Map{"ok": true})
}
