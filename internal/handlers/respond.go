package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	errInvalidLimit  = errors.New("invalid_limit")
	errInvalidOffset = errors.New("invalid_offset")
)

// detail writes the uniform error body: a status code plus a snake_case
// detail string.
func detail(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{"detail": code})
}

// paginated writes the uniform list envelope. Total is the exact count of
// rows matching the same filters as items.
func paginated(c *fiber.Ctx, items interface{}, total int64) error {
	return c.JSON(fiber.Map{"items": items, "total": total})
}

// listBounds reads limit/offset off the query string. Out-of-range values
// are rejected, not clamped; ceilings are a per-resource compatibility
// contract.
func listBounds(c *fiber.Ctx, defaultLimit, maxLimit int) (int, int, error) {
	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 || limit > maxLimit {
		return 0, 0, errInvalidLimit
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		return 0, 0, errInvalidOffset
	}
	return limit, offset, nil
}
