package controllers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sabhahq/sabha/app/models"
	"github.com/sabhahq/sabha/app/repository"
	"github.com/sabhahq/sabha/internal/pkg/cache"
)

const planCacheKey = "membership_plans:active"
const planCacheTTL = 5 * time.Minute

// HandleListPlans returns the active membership plans. The catalog changes
// rarely, so it is served from the cache when possible.
func HandleListPlans(c *fiber.Ctx) error {
	if cached, err := cache.Get(planCacheKey); err == nil && cached != "" {
		var plans []models.MembershipPlan
		if err := json.Unmarshal([]byte(cached), &plans); err == nil {
			return c.JSON(fiber.Map{"plans": plans})
		}
	}

	plans, err := repository.GetGlobalFactory().GetPlanRepository().GetActive()
	if err != nil {
		log.Printf("plan listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load plans"})
	}

	if encoded, err := json.Marshal(plans); err == nil {
		if err := cache.Set(planCacheKey, string(encoded), planCacheTTL); err != nil {
			log.Printf("plan cache write failed: %v", err)
		}
	}

	return c.JSON(fiber.Map{"plans": plans})
}

// InvalidatePlanCache drops the cached plan catalog after admin changes.
func InvalidatePlanCache() {
	if err := cache.Delete(planCacheKey); err != nil {
		log.Printf("plan cache invalidation failed: %v", err)
	}
}
