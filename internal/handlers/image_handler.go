package handlers

import (
	"errors"
	"io"
	"log"

	"porto/internal/repositories"
	"porto/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	imageDefaultLimit = 24
	imageMaxLimit     = 100
)

// ImageHandler handles HTTP requests for stored images.
type ImageHandler struct {
	service *services.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(service *services.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// RegisterRoutes registers the image routes with the Fiber app. Updates
// accept both PATCH and POST for compatibility with existing clients.
func (h *ImageHandler) RegisterRoutes(router fiber.Router, requireAdmin fiber.Handler) {
	routes := router.Group("/images")
	routes.Get("/", requireAdmin, h.HandleList)
	routes.Post("/", requireAdmin, h.HandleUpload)
	routes.Post("/upload-for-editor", requireAdmin, h.HandleEditorUpload)
	routes.Get("/:id", h.HandleFetch)
	routes.Patch("/:id", requireAdmin, h.HandleUpdate)
	routes.Post("/:id", requireAdmin, h.HandleUpdate)
	routes.Delete("/:id", requireAdmin, h.HandleDelete)
}

// HandleList retrieves a page of image metadata (admin only).
func (h *ImageHandler) HandleList(c *fiber.Ctx) error {
	limit, offset, err := listBounds(c, imageDefaultLimit, imageMaxLimit)
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	images, total, err := h.service.List(limit, offset)
	if err != nil {
		log.Printf("Error listing images: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_list_images")
	}
	return paginated(c, images, total)
}

// uploadRequest is the non-multipart upload payload.
type uploadRequest struct {
	DataURI  string `json:"data_uri" form:"data_uri"`
	Filename string `json:"filename" form:"filename"`
	MimeType string `json:"mime_type" form:"mime_type"`
}

// HandleUpload stores a new image from either a multipart file or a
// pre-built data URI; exactly one must be provided (admin only).
func (h *ImageHandler) HandleUpload(c *fiber.Ctx) error {
	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return detail(c, fiber.StatusBadRequest, "unreadable_file")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return detail(c, fiber.StatusBadRequest, "unreadable_file")
		}

		image, err := h.service.CreateFromBytes(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
		if err != nil {
			log.Printf("Error uploading image: %v", err)
			return detail(c, fiber.StatusInternalServerError, "failed_to_upload_image")
		}
		return c.JSON(fiber.Map{
			"id":        image.ID,
			"filename":  image.Filename,
			"mime_type": image.MimeType,
			"url":       "/images/" + image.ID,
		})
	}

	var req uploadRequest
	if err := c.BodyParser(&req); err != nil || req.DataURI == "" {
		return detail(c, fiber.StatusBadRequest, "no_file_or_data_uri_provided")
	}

	image, err := h.service.CreateFromDataURI(req.Filename, req.MimeType, req.DataURI)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDataURI) {
			return detail(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("Error uploading image: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_upload_image")
	}
	return c.JSON(fiber.Map{
		"id":        image.ID,
		"filename":  image.Filename,
		"mime_type": image.MimeType,
		"url":       "/images/" + image.ID,
	})
}

// HandleEditorUpload stores a multipart upload for the content editor, with
// a hard size cap checked before encoding (admin only).
func (h *ImageHandler) HandleEditorUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		return detail(c, fiber.StatusBadRequest, "file_required")
	}
	if fileHeader.Size > services.MaxEditorUploadBytes {
		return detail(c, fiber.StatusBadRequest, "file_too_large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return detail(c, fiber.StatusBadRequest, "unreadable_file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return detail(c, fiber.StatusBadRequest, "unreadable_file")
	}
	if len(data) > services.MaxEditorUploadBytes {
		return detail(c, fiber.StatusBadRequest, "file_too_large")
	}

	filename := fileHeader.Filename
	if filename == "" {
		filename = "editor-upload.jpg"
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	image, err := h.service.CreateFromBytes(filename, mimeType, data)
	if err != nil {
		log.Printf("Error uploading editor image: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_upload_image")
	}
	return c.JSON(fiber.Map{"url": "/images/" + image.ID})
}

// HandleFetch serves the stored image as a binary response with immutable
// caching (public).
func (h *ImageHandler) HandleFetch(c *fiber.Ctx) error {
	contentType, data, err := h.service.Fetch(c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return detail(c, fiber.StatusNotFound, "not_found")
		case errors.Is(err, services.ErrCorruptData):
			return detail(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("Error fetching image: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_fetch_image")
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}

// HandleUpdate applies a metadata-only update (admin only).
func (h *ImageHandler) HandleUpdate(c *fiber.Ctx) error {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_request_body")
	}

	image, err := h.service.UpdateMeta(c.Params("id"), data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUpdatableFields):
			return detail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrNotFound):
			return detail(c, fiber.StatusNotFound, "image_not_found")
		}
		log.Printf("Error updating image: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_update_image")
	}
	return c.JSON(image)
}

// HandleDelete deletes an image by id (admin only).
func (h *ImageHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		log.Printf("Error deleting image: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_delete_image")
	}
	return c.JSON(fiber.Map{"ok": true})
}
