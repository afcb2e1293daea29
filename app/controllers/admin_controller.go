package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sabhahq/sabha/app/models"
	"github.com/sabhahq/sabha/app/repository"
	"github.com/sabhahq/sabha/internal/pkg/database"
	"github.com/sabhahq/sabha/internal/pkg/payment"
	"github.com/sabhahq/sabha/internal/pkg/usercontext"
)

type manualGrantRequest struct {
	UserID uint `json:"user_id"`
	PlanID uint `json:"plan_id"`
}

type planRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	DurationMonths int     `json:"duration_months"`
	IsActive       *bool   `json:"is_active"`
}

type pageRequest struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	IsActive *bool  `json:"is_active"`
}

type announcementRequest struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
}

// HandleAdminListMembers lists memberships with user and plan details.
func HandleAdminListMembers(c *fiber.Ctx) error {
	offset, limit := paginationParams(c)
	repo := repository.GetGlobalFactory().GetMembershipRepository()

	memberships, err := repo.List(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load memberships"})
	}
	total, err := repo.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load memberships"})
	}

	items := make([]fiber.Map, 0, len(memberships))
	for _, m := range memberships {
		items = append(items, fiber.Map{
			"id":             m.ID,
			"user_id":        m.UserID,
			"user_name":      m.User.Name,
			"user_email":     m.User.Email,
			"plan_id":        m.PlanID,
			"plan_name":      m.Plan.Name,
			"amount":         m.Amount,
			"currency":       m.Currency,
			"status":         m.Status,
			"payment_status": m.PaymentStatus,
			"is_manual":      m.IsManual,
			"valid_from":     m.ValidFrom,
			"valid_until":    formatTimePtr(m.ValidUntil),
			"created_at":     m.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"members": items,
		"total":   total,
		"offset":  offset,
		"limit":   limit,
	})
}

// HandleAdminGrantMembership activates a membership for a user without a
// payment. The resulting row is flagged as manual and produces no ledger
// entry.
func HandleAdminGrantMembership(c *fiber.Ctx) error {
	var req manualGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	svc := payment.NewServiceFromDB(database.GetDB(), gatewayConfigFromEnv())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := svc.GrantManual(ctx, req.UserID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "user_id and plan_id are required"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "User or plan not found"})
		default:
			log.Printf("manual grant failed for user %d plan %d: %v", req.UserID, req.PlanID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Membership grant failed"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"membership_id": res.MembershipID,
		"user_id":       res.UserID,
		"valid_from":    res.ValidFrom,
		"valid_until":   formatTimePtr(res.ValidUntil),
	})
}

// HandleAdminListPayments lists the append-only payment tracking ledger.
func HandleAdminListPayments(c *fiber.Ctx) error {
	offset, limit := paginationParams(c)
	repo := repository.GetGlobalFactory().GetPaymentRecordRepository()

	records, err := repo.List(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load payment records"})
	}
	total, err := repo.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load payment records"})
	}

	return c.JSON(fiber.Map{
		"payments": records,
		"total":    total,
		"offset":   offset,
		"limit":    limit,
	})
}

// HandleAdminListPlans returns all plans including inactive ones.
func HandleAdminListPlans(c *fiber.Ctx) error {
	plans, err := repository.GetGlobalFactory().GetPlanRepository().GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load plans"})
	}
	return c.JSON(fiber.Map{"plans": plans})
}

func HandleAdminCreatePlan(c *fiber.Ctx) error {
	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	plan := models.MembershipPlan{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Currency:       models.CurrencyINR,
		DurationMonths: req.DurationMonths,
		IsActive:       true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if err := plan.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}
	if err := repository.GetGlobalFactory().GetPlanRepository().Create(&plan); err != nil {
		log.Printf("create plan failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create plan"})
	}

	InvalidatePlanCache()
	return c.Status(fiber.StatusCreated).JSON(plan)
}

func HandleAdminUpdatePlan(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid plan id"})
	}
	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	repo := repository.GetGlobalFactory().GetPlanRepository()
	plan, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Plan not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load plan"})
	}

	plan.Name = req.Name
	plan.Description = req.Description
	plan.Price = req.Price
	plan.DurationMonths = req.DurationMonths
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if err := plan.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}
	if err := repo.Update(plan); err != nil {
		log.Printf("update plan %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update plan"})
	}

	InvalidatePlanCache()
	return c.JSON(plan)
}

func HandleAdminDeletePlan(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid plan id"})
	}
	if err := repository.GetGlobalFactory().GetPlanRepository().Delete(id); err != nil {
		log.Printf("delete plan %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete plan"})
	}
	InvalidatePlanCache()
	return c.JSON(fiber.Map{"success": true})
}

// HandleAdminListPages returns all pages including inactive ones.
func HandleAdminListPages(c *fiber.Ctx) error {
	pages, err := repository.GetGlobalFactory().GetPageRepository().GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load pages"})
	}
	return c.JSON(fiber.Map{"pages": pages})
}

func HandleAdminCreatePage(c *fiber.Ctx) error {
	var req pageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	page := models.Page{
		Title:    req.Title,
		Slug:     req.Slug,
		Content:  req.Content,
		IsActive: true,
	}
	if req.IsActive != nil {
		page.IsActive = *req.IsActive
	}
	if err := page.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}
	if err := repository.GetGlobalFactory().GetPageRepository().Create(&page); err != nil {
		log.Printf("create page failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create page"})
	}

	return c.Status(fiber.StatusCreated).JSON(page)
}

func HandleAdminUpdatePage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid page id"})
	}
	var req pageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	repo := repository.GetGlobalFactory().GetPageRepository()
	page, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Page not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load page"})
	}

	page.Title = req.Title
	page.Slug = req.Slug
	page.Content = req.Content
	if req.IsActive != nil {
		page.IsActive = *req.IsActive
	}
	if err := page.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}
	if err := repo.Update(page); err != nil {
		log.Printf("update page %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update page"})
	}

	return c.JSON(page)
}

func HandleAdminDeletePage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid page id"})
	}
	if err := repository.GetGlobalFactory().GetPageRepository().Delete(id); err != nil {
		log.Printf("delete page %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete page"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleAdminListAnnouncements returns all announcements, drafts included.
func HandleAdminListAnnouncements(c *fiber.Ctx) error {
	offset, limit := paginationParams(c)
	repo := repository.GetGlobalFactory().GetAnnouncementRepository()

	items, err := repo.GetAll(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load announcements"})
	}
	total, err := repo.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load announcements"})
	}

	return c.JSON(fiber.Map{
		"announcements": items,
		"total":         total,
		"offset":        offset,
		"limit":         limit,
	})
}

func HandleAdminCreateAnnouncement(c *fiber.Ctx) error {
	var req announcementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	a := models.Announcement{
		Title:   req.Title,
		Slug:    req.Slug,
		Content: req.Content,
		UserID:  usercontext.GetUserID(c),
	}
	if req.Published != nil {
		a.Published = *req.Published
	}
	if err := a.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}
	if err := repository.GetGlobalFactory().GetAnnouncementRepository().Create(&a); err != nil {
		log.Printf("create announcement failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create announcement"})
	}

	return c.Status(fiber.StatusCreated).JSON(a)
}

func HandleAdminUpdateAnnouncement(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid announcement id"})
	}
	var req announcementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	repo := repository.GetGlobalFactory().GetAnnouncementRepository()
	a, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Announcement not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load announcement"})
	}

	a.Title = req.Title
	a.Slug = req.Slug
	a.Content = req.Content
	if req.Published != nil {
		a.Published = *req.Published
	}
	if err := a.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}
	if err := repo.Update(a); err != nil {
		log.Printf("update announcement %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update announcement"})
	}

	return c.JSON(a)
}

func HandleAdminDeleteAnnouncement(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid announcement id"})
	}
	if err := repository.GetGlobalFactory().GetAnnouncementRepository().Delete(id); err != nil {
		log.Printf("delete announcement %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete announcement"})
	}
	return c.JSON(fiber.Map{"success": true})
}
