package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"porto/internal/models"
	"porto/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const (
	commentDefaultLimit = 50
	commentMaxLimit     = 200

	// streamPollInterval is the fixed cadence of the comment stream;
	// streamRetryInterval is the back-off after a failed poll.
	streamPollInterval  = 2 * time.Second
	streamRetryInterval = 5 * time.Second
)

// CommentHandler handles HTTP requests for comments, including the
// long-lived comment stream.
type CommentHandler struct {
	service       *services.CommentService
	pollInterval  time.Duration
	retryInterval time.Duration
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{
		service:       service,
		pollInterval:  streamPollInterval,
		retryInterval: streamRetryInterval,
	}
}

// RegisterRoutes registers the comment routes with the Fiber app.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, requireAdmin fiber.Handler) {
	routes := router.Group("/comments")
	routes.Get("/", h.HandleList)
	routes.Get("/stream", h.HandleStream)
	routes.Post("/", h.HandleCreate)
	routes.Post("/reset", requireAdmin, h.HandleReset)
	routes.Delete("/:id", requireAdmin, h.HandleDelete)
}

// HandleList retrieves a page of comments (public).
func (h *CommentHandler) HandleList(c *fiber.Ctx) error {
	limit, offset, err := listBounds(c, commentDefaultLimit, commentMaxLimit)
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	comments, total, err := h.service.List(limit, offset)
	if err != nil {
		log.Printf("Error listing comments: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_list_comments")
	}
	return paginated(c, comments, total)
}

// HandleCreate stores a new comment (public).
func (h *CommentHandler) HandleCreate(c *fiber.Ctx) error {
	var comment models.Comment
	if err := c.BodyParser(&comment); err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_request_body")
	}

	comment.ID = 0
	if err := h.service.Create(&comment); err != nil {
		if errors.Is(err, services.ErrMessageRequired) {
			return detail(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("Error creating comment: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_create_comment")
	}
	return c.JSON(comment)
}

// HandleDelete deletes a comment by id (admin only).
func (h *CommentHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, "invalid_id")
	}

	if err := h.service.Delete(int64(id)); err != nil {
		log.Printf("Error deleting comment %d: %v", id, err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_delete_comment")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleReset empties the comment collection (admin only).
func (h *CommentHandler) HandleReset(c *fiber.Ctx) error {
	if err := h.service.Reset(); err != nil {
		log.Printf("Error resetting comments: %v", err)
		return detail(c, fiber.StatusInternalServerError, "failed_to_reset_comments")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleStream holds the connection open and emits new comments as
// server-sent events. The loop ends only when the client goes away,
// observed as a write or flush failure.
func (h *CommentHandler) HandleStream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		h.stream(w, -1)
	}))
	return nil
}

// stream emits the comment event stream to w: a connected event first, then
// polls on a fixed interval with an ascending-id cursor. An empty poll
// writes a keepalive comment line; a failed poll emits a non-fatal error
// event and backs off to the retry interval. A negative maxPolls runs until
// a write fails.
func (h *CommentHandler) stream(w *bufio.Writer, maxPolls int) {
	writeEvent := func(name string, payload interface{}) error {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
			return err
		}
		return w.Flush()
	}

	if err := writeEvent("connected", fiber.Map{"ok": true}); err != nil {
		return
	}

	lastID, err := h.service.Baseline()
	if err != nil {
		lastID = 0
	}

	interval := h.pollInterval
	for polls := 0; maxPolls < 0 || polls < maxPolls; polls++ {
		time.Sleep(interval)
		interval = h.pollInterval

		comments, err := h.service.After(lastID)
		if err != nil {
			if writeErr := writeEvent("error", fiber.Map{"message": "stream_error"}); writeErr != nil {
				return
			}
			interval = h.retryInterval
			continue
		}

		if len(comments) == 0 {
			if _, err := w.WriteString(": keepalive\n\n"); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
			continue
		}

		for _, comment := range comments {
			if err := writeEvent("comment", comment); err != nil {
				return
			}
			lastID = comment.ID
		}
	}
}
