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

// MessageHandler handles HTTP requests for contact messages.
type MessageHandler struct {
	service  *services.MessageService
	validate *validator.Validate
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the message routes with the Fiber app. Updates
// accept both PATCH and POST for compatibility with existing clients.
func (h *MessageHandler) RegisterRoutes(router fiber.Router, requireAdmin fiber.Handler) {
	routes := router.Group("/messages")
	routes.Get("/", requireAdmin, h.HandleGetAll)
	routes.Post("/", h.HandleCreate)
	routes.Post("/reset", requireAdmin, h.HandleReset)
	routes.Patch("/:id", requireAdmin, h.HandleUpdate)
	routes.Post("/:id", requireAdmin, h.HandleUpdate)
	routes.Delete("/:id", requireAdmin, h.HandleDelete)
}

// HandleGetAll retrieves all messages, newest first (admin only).
func (h *MessageHandler) HandleGetAll(c *fiber.Ctx) error {
	messages, err := h.service.GetAll()
	if err != nil {
		log.Printf("Error listing messages: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_list_messages")
	}
	return c.JSON(messages)
}

// HandleCreate stores a new contact message (public).
func (h *MessageHandler) HandleCreate(c *fiber.Ctx) error {
	var message models.Message
	if err := c.BodyParser(&message); err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_request_body")
	}
	if err := h.validate.Struct(message); err != nil {
		return detail(c, fiber.StatusBadRequest, "validation_failed")
	}

	message.ID = 0
	message.Read = nil
	if err := h.service.Create(&message); err != nil {
		log.Printf("Error creating message: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_create_message")
	}
	return c.JSON(message)
}

// HandleUpdate updates the read flag of a message (admin only).
func (h *MessageHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_id")
	}

	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_request_body")
	}

	message, err := h.service.Update(int64(id), data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUpdatableFields):
			return detail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrNotFound):
			return detail(c, fiber.StatusNotFound, "message_not_found")
		}
		log.Printf("Error updating message %d: %v", id, err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_update_message")
	}
	return c.JSON(message)
}

// HandleDelete deletes a message by id (admin only).
func (h *MessageHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_id")
	}

	if err := h.service.Delete(int64(id)); err != nil {
		log.Printf("Error deleting message %d: %v", id, err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_delete_message")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleReset empties the message collection (admin only).
func (h *MessageHandler) HandleReset(c *fiber.Ctx) error {
	if err := h.service.Reset(); err != nil {
		log.Printf("Error resetting messages: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_reset_messages")
	}
	return c.JSON(fiber.Map{"ok": true})
}
