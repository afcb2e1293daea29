package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sabhahq/sabha/app/repository"
	"github.com/sabhahq/sabha/internal/pkg/database"
	"github.com/sabhahq/sabha/internal/pkg/env"
	"github.com/sabhahq/sabha/internal/pkg/mail"
	"github.com/sabhahq/sabha/internal/pkg/payment"
	"github.com/sabhahq/sabha/internal/pkg/usercontext"
)

type createOrderRequest struct {
	MembershipPlanID uint    `json:"membership_plan_id"`
	Amount           float64 `json:"amount"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type verifyRazorpayRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	MembershipID      uint   `json:"membership_id"`
	PaymentMethod     string `json:"payment_method"`
}

// gatewayConfigFromEnv builds the payment config at the handler boundary.
// The payment package itself never reads the environment.
func gatewayConfigFromEnv() payment.Config {
	return payment.Config{
		KeyID:     env.GetEnv("RAZORPAY_KEY_ID", ""),
		KeySecret: env.GetEnv("RAZORPAY_KEY_SECRET", ""),
	}
}

// HandleCreateOrder starts a payment attempt: it creates a gateway order and
// the local pending membership and order rows.
func HandleCreateOrder(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	svc := payment.NewServiceFromDB(database.GetDB(), gatewayConfigFromEnv())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	res, err := svc.CreateOrder(ctx, payment.CreateOrderInput{
		UserID: userCtx.UserID,
		PlanID: req.MembershipPlanID,
		Amount: req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
		case errors.Is(err, payment.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "membership_plan_id and a positive amount are required"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Unknown membership plan"})
		case errors.Is(err, payment.ErrConfiguration):
			log.Print("create order: gateway credentials are not configured")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "configuration_error", "message": "Payment gateway is not configured"})
		default:
			log.Printf("create order failed for user %d: %v", userCtx.UserID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Order creation failed"})
		}
	}

	return c.JSON(fiber.Map{
		"order_id":      res.OrderID,
		"amount":        res.Amount,
		"currency":      res.Currency,
		"key_id":        res.KeyID,
		"membership_id": res.MembershipID,
	})
}

// HandleVerifyPayment is the trusted internal confirmation path: no
// signature verification and a fixed one-year validity. Replays of a
// completed payment are harmless.
func HandleVerifyPayment(c *fiber.Ctx) error {
	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	svc := payment.NewServiceFromDB(database.GetDB(), gatewayConfigFromEnv())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	res, err := svc.ActivateFixed(ctx, payment.FixedActivationInput{
		RazorpayOrderID:   req.OrderID,
		RazorpayPaymentID: req.PaymentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "order_id and payment_id are required"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Membership not found"})
		default:
			log.Printf("verify payment failed for order %s: %v", req.OrderID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Payment verification failed"})
		}
	}

	go sendConfirmationMail(res)

	return c.JSON(fiber.Map{"success": true})
}

// HandleVerifyRazorpayPayment is the signature-checked activation path. An
// invalid signature leaves all state untouched.
func HandleVerifyRazorpayPayment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req verifyRazorpayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	svc := payment.NewServiceFromDB(database.GetDB(), gatewayConfigFromEnv())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	res, err := svc.ActivateVerified(ctx, payment.VerifiedActivationInput{
		MembershipID:      req.MembershipID,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
		PaymentMethod:     req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "razorpay_order_id, razorpay_payment_id and razorpay_signature are required"})
		case errors.Is(err, payment.ErrSignatureMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_signature", "message": "Invalid signature"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Membership not found"})
		case errors.Is(err, payment.ErrConfiguration):
			log.Print("verify razorpay payment: gateway secret is not configured")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "configuration_error", "message": "Payment gateway is not configured"})
		default:
			log.Printf("verify razorpay payment failed for membership %d: %v", req.MembershipID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Payment verification failed"})
		}
	}

	go sendConfirmationMail(res)

	return c.JSON(fiber.Map{"success": true, "message": "Payment verified and membership activated"})
}

// HandleListMyOrders returns the caller's payment attempts, newest first.
func HandleListMyOrders(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	offset, limit := paginationParams(c)
	orders, err := repository.GetGlobalFactory().GetOrderRepository().GetByUserID(userCtx.UserID, offset, limit)
	if err != nil {
		log.Printf("order listing failed for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load orders"})
	}

	return c.JSON(fiber.Map{"orders": orders, "offset": offset, "limit": limit})
}

// sendConfirmationMail emails the member after activation. Best effort, the
// membership is already committed.
func sendConfirmationMail(res *payment.ActivationResult) {
	factory := repository.GetGlobalFactory()
	if factory == nil {
		return
	}
	user, err := factory.GetUserRepository().GetByID(res.UserID)
	if err != nil {
		log.Printf("confirmation mail: user %d lookup failed: %v", res.UserID, err)
		return
	}
	membership, err := factory.GetMembershipRepository().GetByID(res.MembershipID)
	if err != nil {
		log.Printf("confirmation mail: membership %d lookup failed: %v", res.MembershipID, err)
		return
	}
	until := ""
	if res.ValidUntil != nil {
		until = res.ValidUntil.Format("2006-01-02")
	}
	_ = mail.SendMembershipConfirmation(user.Email, user.Name, membership.Plan.Name, until)
}
