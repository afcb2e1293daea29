package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sabhahq/sabha/app/repository"
)

// HandleListPages returns all active informational pages.
func HandleListPages(c *fiber.Ctx) error {
	pages, err := repository.GetGlobalFactory().GetPageRepository().GetActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load pages"})
	}
	return c.JSON(fiber.Map{"pages": pages})
}

// HandleGetPage returns one active page by slug.
func HandleGetPage(c *fiber.Ctx) error {
	slug := c.Params("slug")
	page, err := repository.GetGlobalFactory().GetPageRepository().GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Page not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load page"})
	}
	return c.JSON(page)
}
