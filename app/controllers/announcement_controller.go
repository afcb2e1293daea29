package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sabhahq/sabha/app/repository"
)

// HandleListAnnouncements returns published announcements, newest first.
func HandleListAnnouncements(c *fiber.Ctx) error {
	offset, limit := paginationParams(c)
	items, err := repository.GetGlobalFactory().GetAnnouncementRepository().GetPublished(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load announcements"})
	}
	return c.JSON(fiber.Map{"announcements": items})
}

// HandleGetAnnouncement returns one announcement by slug.
func HandleGetAnnouncement(c *fiber.Ctx) error {
	slug := c.Params("slug")
	a, err := repository.GetGlobalFactory().GetAnnouncementRepository().GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Announcement not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load announcement"})
	}
	if !a.Published {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Announcement not found"})
	}
	return c.JSON(a)
}
