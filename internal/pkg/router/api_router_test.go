package router

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestApiRouterRegistersPaymentRoutes(t *testing.T) {
	app := fiber.New()
	NewApiRouter().InstallRouter(app)

	registered := map[string]bool{}
	for _, route := range app.GetRoutes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/payment/create-order",
		"GET /api/v1/payment/orders",
		"POST /api/v1/payment/verify-payment",
		"POST /api/v1/payment/verify-razorpay-payment",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"GET /api/v1/admin/members",
		"POST /api/v1/admin/memberships/grant",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}
