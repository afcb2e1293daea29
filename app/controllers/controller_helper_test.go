package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimePtr(t *testing.T) {
	assert.Nil(t, formatTimePtr(nil))

	now := time.Date(2026, 3, 1, 12, 34, 56, 0, time.Local)
	formatted := formatTimePtr(&now)
	assert.IsType(t, "", formatted)

	expected := now.UTC().Format(time.RFC3339)
	assert.Equal(t, expected, formatted)
}

func TestPaginationParams(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
	}{
		{"defaults", "", 0, 25},
		{"explicit", "offset=50&limit=10", 50, 10},
		{"negative offset", "offset=-5&limit=10", 0, 10},
		{"zero limit", "limit=0", 0, 25},
		{"limit above cap", "limit=500", 0, 25},
		{"garbage", "offset=abc&limit=xyz", 0, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/list", func(c *fiber.Ctx) error {
				offset, limit := paginationParams(c)
				assert.Equal(t, tc.wantOffset, offset)
				assert.Equal(t, tc.wantLimit, limit)
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/list?"+tc.query, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		})
	}
}

func TestParseIDParam(t *testing.T) {
	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		assert.Equal(t, uint(42), id)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/42", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/items/notanumber", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGatewayConfigFromEnv(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")

	cfg := gatewayConfigFromEnv()
	assert.Equal(t, "rzp_test_key", cfg.KeyID)
	assert.Equal(t, "rzp_test_secret", cfg.KeySecret)
}
