package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/sabhahq/sabha/app/controllers"
	"github.com/sabhahq/sabha/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Sabha API",
		})
	})

	v1 := api.Group("/v1")

	// Auth
	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleAuthRegister)
	auth.Post("/login", controllers.HandleAuthLogin)
	auth.Post("/logout", controllers.HandleAuthLogout)
	auth.Get("/me", middleware.TokenAuthMiddleware(), middleware.RequireAuth, controllers.HandleAuthMe)
	auth.Post("/token", middleware.TokenAuthMiddleware(), middleware.RequireAuth, controllers.HandleIssueAPIToken)

	// Public content
	v1.Get("/plans", controllers.HandleListPlans)
	v1.Get("/pages", controllers.HandleListPages)
	v1.Get("/pages/:slug", controllers.HandleGetPage)
	v1.Get("/announcements", controllers.HandleListAnnouncements)
	v1.Get("/announcements/:slug", controllers.HandleGetAnnouncement)

	// Payment workflow. The checkout page posts from the gateway's
	// browser context, so this group allows cross-origin calls.
	pay := v1.Group("/payment", cors.New(), middleware.TokenAuthMiddleware())
	pay.Post("/create-order", controllers.HandleCreateOrder)
	pay.Get("/orders", controllers.HandleListMyOrders)
	pay.Post("/verify-payment", controllers.HandleVerifyPayment)
	pay.Post("/verify-razorpay-payment", controllers.HandleVerifyRazorpayPayment)

	// Admin
	admin := v1.Group("/admin", middleware.TokenAuthMiddleware(), middleware.RequireAdmin)
	admin.Get("/members", controllers.HandleAdminListMembers)
	admin.Post("/memberships/grant", controllers.HandleAdminGrantMembership)
	admin.Get("/payments", controllers.HandleAdminListPayments)
	admin.Get("/plans", controllers.HandleAdminListPlans)
	admin.Post("/plans", controllers.HandleAdminCreatePlan)
	admin.Put("/plans/:id", controllers.HandleAdminUpdatePlan)
	admin.Delete("/plans/:id", controllers.HandleAdminDeletePlan)
	admin.Get("/pages", controllers.HandleAdminListPages)
	admin.Post("/pages", controllers.HandleAdminCreatePage)
	admin.Put("/pages/:id", controllers.HandleAdminUpdatePage)
	admin.Delete("/pages/:id", controllers.HandleAdminDeletePage)
	admin.Get("/announcements", controllers.HandleAdminListAnnouncements)
	admin.Post("/announcements", controllers.HandleAdminCreateAnnouncement)
	admin.Put("/announcements/:id", controllers.HandleAdminUpdateAnnouncement)
	admin.Delete("/announcements/:id", controllers.HandleAdminDeleteAnnouncement)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
