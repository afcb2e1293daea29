package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// paginationParams reads offset/limit query params with sane bounds.
func paginationParams(c *fiber.Ctx) (int, int) {
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(c.Query("limit", "25"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 25
	}
	return offset, limit
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
