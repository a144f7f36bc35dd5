package handlers

import (
	"errors"
	"log"
	"strings"

	"porto/internal/models"
	"porto/internal/repositories"
	"porto/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	projectDefaultLimit = 24
	projectMaxLimit     = 100
)

// ProjectHandler handles HTTP requests for projects.
type ProjectHandler struct {
	service  *services.ProjectService
	validate *validator.Validate
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the project routes with the Fiber app.
func (h *ProjectHandler) RegisterRoutes(router fiber.Router, requireAdmin fiber.Handler) {
	routes := router.Group("/projects")
	routes.Get("/", h.HandleList)
	routes.Get("/featured", h.HandleFeatured)
	routes.Post("/", requireAdmin, h.HandleCreate)
	routes.Post("/update", requireAdmin, h.HandleUpdate)
	routes.Delete("/:id", requireAdmin, h.HandleDelete)
}

// HandleList retrieves a filtered page of projects (public).
func (h *ProjectHandler) HandleList(c *fiber.Ctx) error {
	limit, offset, err := listBounds(c, projectDefaultLimit, projectMaxLimit)
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	params := repositories.ProjectListParams{
		Query:  c.Query("q"),
		Stack:  splitCSV(c.Query("stack")),
		Limit:  limit,
		Offset: offset,
	}

	projects, total, err := h.service.List(params)
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_list_projects")
	}
	return paginated(c, projects, total)
}

// HandleFeatured retrieves the newest featured projects (public).
func (h *ProjectHandler) HandleFeatured(c *fiber.Ctx) error {
	projects, err := h.service.Featured()
	if err != nil {
		log.Printf("Error listing featured projects: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_list_projects")
	}
	return c.JSON(projects)
}

// HandleCreate creates a new project (admin only).
func (h *ProjectHandler) HandleCreate(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_request_body")
	}
	if err := h.validate.Struct(project); err != nil {
		return detail(c, fiber.StatusBadRequest, "validation_failed")
	}

	if err := h.service.Create(&project); err != nil {
		log.Printf("Error creating project: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_create_project")
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleUpdate applies a partial update to a project by body id (admin only).
func (h *ProjectHandler) HandleUpdate(c *fiber.Ctx) error {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_request_body")
	}

	id, _ := data["id"].(string)
	if id == "" {
		return detail(c, fiber.StatusBadRequest, "id_required")
	}

	project, err := h.service.Update(id, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUpdatableFields):
			return detail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrNotFound):
			return detail(c, fiber.StatusNotFound, "project_not_found")
		}
		log.Printf("Error updating project %s: %v", id, err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_update_project")
	}
	return c.JSON(project)
}

// HandleDelete deletes a project by id (admin only).
func (h *ProjectHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		log.Printf("Error deleting project: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_delete_project")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// splitCSV splits a comma-separated filter value, dropping empty parts.
func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
