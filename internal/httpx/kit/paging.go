package kit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Limit reads the `limit` query parameter, defaulting to def and capped at max.
func Limit(c *fiber.Ctx, def, max int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, BadRequest("limit must be a positive integer", raw)
	}
	return min(n, max), nil
}
