package handlers

import (
	"errors"
	"log"

	"porto/internal/middleware"
	"porto/internal/models"
	"porto/internal/repositories"
	"porto/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	blogPublicDefaultLimit = 12
	blogPublicMaxLimit     = 50
	blogAdminDefaultLimit  = 50
	blogAdminMaxLimit      = 200
)

// BlogHandler handles HTTP requests for blog posts. It needs the auth
// service alongside the blog service because the public list and
// get-by-slug endpoints gate unpublished posts on live admin status.
type BlogHandler struct {
	service     *services.BlogService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service *services.BlogService, authService *services.AuthService) *BlogHandler {
	return &BlogHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the blog routes with the Fiber app. The fixed
// paths must be registered before the slug catch-all.
func (h *BlogHandler) RegisterRoutes(router fiber.Router, optionalIdentity, requireAdmin fiber.Handler) {
	routes := router.Group("/blog")
	routes.Get("/", optionalIdentity, h.HandleList)
	routes.Get("/posts", requireAdmin, h.HandleAdminList)
	routes.Post("/posts", requireAdmin, h.HandleCreate)
	routes.Post("/update", requireAdmin, h.HandleUpdate)
	routes.Get("/:slug", optionalIdentity, h.HandleGetBySlug)
	routes.Delete("/:id", requireAdmin, h.HandleDelete)
}

// callerIsAdmin reports whether the optionally-resolved caller is on the
// admin allowlist.
func (h *BlogHandler) callerIsAdmin(c *fiber.Ctx) bool {
	user := middleware.UserFromContext(c)
	return user != nil && h.authService.IsAdmin(user.ID)
}

// HandleList retrieves a page of post summaries. Anonymous and non-admin
// callers only see published posts.
func (h *BlogHandler) HandleList(c *fiber.Ctx) error {
	limit, offset, err := listBounds(c, blogPublicDefaultLimit, blogPublicMaxLimit)
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	params := repositories.BlogListParams{
		Query:         c.Query("q"),
		PublishedOnly: !h.callerIsAdmin(c),
		Limit:         limit,
		Offset:        offset,
	}
	if tag := c.Query("tag"); tag != "" {
		params.Tags = []string{tag}
	}

	posts, total, err := h.service.List(params)
	if err != nil {
		log.Printf("Error listing blog posts: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_list_blog_posts")
	}
	return paginated(c, posts, total)
}

// HandleAdminList retrieves a page of complete post rows, published or not
// (admin only).
func (h *BlogHandler) HandleAdminList(c *fiber.Ctx) error {
	limit, offset, err := listBounds(c, blogAdminDefaultLimit, blogAdminMaxLimit)
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	params := repositories.BlogListParams{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}

	posts, total, err := h.service.ListFull(params)
	if err != nil {
		log.Printf("Error listing blog posts: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_list_blog_posts")
	}
	return paginated(c, posts, total)
}

// HandleGetBySlug retrieves a single post by slug, with the same published
// gate as the list.
func (h *BlogHandler) HandleGetBySlug(c *fiber.Ctx) error {
	post, err := h.service.GetBySlug(c.Params("slug"), !h.callerIsAdmin(c))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return detail(c, fiber.StatusNotFound, "post_not_found")
		}
		log.Printf("Error getting blog post: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_get_blog_post")
	}
	return c.JSON(post)
}

// HandleCreate creates a new post; the slug is derived from the title when
// absent and published defaults to false (admin only).
func (h *BlogHandler) HandleCreate(c *fiber.Ctx) error {
	var post models.BlogPost
	if err := c.BodyParser(&post); err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_request_body")
	}
	if err := h.validate.Struct(post); err != nil {
		return detail(c, fiber.StatusBadRequest, "validation_failed")
	}

	if err := h.service.Create(&post); err != nil {
		log.Printf("Error creating blog post: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_create_blog_post")
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// HandleUpdate applies a partial update to a post by body id (admin only).
func (h *BlogHandler) HandleUpdate(c *fiber.Ctx) error {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_request_body")
	}

	id, _ := data["id"].(string)
	if id == "" {
		return detail(c, fiber.StatusBadRequest, "id_required")
	}

	post, err := h.service.Update(id, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUpdatableFields):
			return detail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrNotFound):
			return detail(c, fiber.StatusNotFound, "blog_post_not_found")
		}
		log.Printf("Error updating blog post %s: %v", id, err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_update_blog_post")
	}
	return c.JSON(post)
}

// HandleDelete deletes a post by id (admin only).
func (h *BlogHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		log.Printf("Error deleting blog post: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_delete_blog_post")
	}
	return c.JSON(fiber.Map{"ok": true})
}
