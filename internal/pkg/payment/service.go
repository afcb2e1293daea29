package payment

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sabhahq/sabha/app/models"
)

// Service implements the payment-order lifecycle: order creation against the
// gateway, the two activation paths, and the tracking ledger append.
type Service struct {
	repo    Repository
	gateway Gateway
	cfg     Config
}

// NewService creates a payment service from injected collaborators.
func NewService(repo Repository, gateway Gateway, cfg Config) *Service {
	return &Service{repo: repo, gateway: gateway, cfg: cfg}
}

// NewServiceFromDB creates a payment service from a GORM DB handle and a
// gateway config.
func NewServiceFromDB(db *gorm.DB, cfg Config) *Service {
	return NewService(NewRepository(db), NewClient(cfg), cfg)
}

// CreateOrder creates a remote gateway order plus the local pending
// membership and order rows. The gateway is paid in paise, so the amount is
// multiplied by 100. A local insert failure after a successful gateway call
// surfaces as an error and leaves the remote order orphaned; reconciliation
// of that window is an admin task, not something this workflow retries.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	if in.UserID == 0 {
		return nil, ErrUnauthorized
	}
	if in.PlanID == 0 || in.Amount <= 0 {
		return nil, fmt.Errorf("%w: membership plan id and a positive amount are required", ErrValidation)
	}
	if s.cfg.KeyID == "" || s.cfg.KeySecret == "" {
		return nil, ErrConfiguration
	}

	if _, err := s.repo.FindPlan(in.PlanID); err != nil {
		return nil, err
	}

	amountPaise := int64(math.Round(in.Amount * 100))
	receipt := newReceipt()

	gwOrder, err := s.gateway.CreateOrder(ctx, amountPaise, models.CurrencyINR, receipt)
	if err != nil {
		return nil, err
	}

	membership := &models.Membership{
		UserID:          in.UserID,
		PlanID:          in.PlanID,
		Amount:          in.Amount,
		Currency:        models.CurrencyINR,
		Status:          models.MembershipStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		RazorpayOrderID: gwOrder.ID,
	}
	if err := s.repo.CreateMembership(membership); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:          in.UserID,
		MembershipID:    membership.ID,
		RazorpayOrderID: gwOrder.ID,
		Amount:          in.Amount,
		Currency:        models.CurrencyINR,
		Status:          models.OrderStatusPending,
	}
	if err := s.repo.CreateOrder(order); err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		OrderID:      gwOrder.ID,
		Amount:       amountPaise,
		Currency:     models.CurrencyINR,
		KeyID:        s.cfg.KeyID,
		MembershipID: membership.ID,
	}, nil
}

// ActivateVerified is the signature-checked activation path. The validity
// window comes from the membership's plan; duration_months of zero grants a
// lifetime membership. An invalid signature mutates nothing.
func (s *Service) ActivateVerified(ctx context.Context, in VerifiedActivationInput) (*ActivationResult, error) {
	_ = ctx
	if strings.TrimSpace(in.RazorpayOrderID) == "" || strings.TrimSpace(in.RazorpayPaymentID) == "" || strings.TrimSpace(in.RazorpaySignature) == "" {
		return nil, fmt.Errorf("%w: order id, payment id and signature are required", ErrValidation)
	}
	if s.cfg.KeySecret == "" {
		return nil, ErrConfiguration
	}

	membership, err := s.lookupMembership(in.MembershipID, in.RazorpayOrderID)
	if err != nil {
		return nil, err
	}

	// A signature only proves the payment for its own order. When the
	// membership was loaded by id, the order it was created for must match
	// the one being verified, otherwise a valid signature for a cheap order
	// could activate an unrelated membership.
	if membership.RazorpayOrderID != "" && membership.RazorpayOrderID != in.RazorpayOrderID {
		return nil, fmt.Errorf("%w: order does not belong to this membership", ErrValidation)
	}

	if !VerifyPaymentSignature(in.RazorpayOrderID, in.RazorpayPaymentID, s.cfg.KeySecret, in.RazorpaySignature) {
		return nil, ErrSignatureMismatch
	}

	validFrom := time.Now()
	var validUntil *time.Time
	if membership.Plan.DurationMonths > 0 {
		until := validFrom.AddDate(0, membership.Plan.DurationMonths, 0)
		validUntil = &until
	}

	return s.finishActivation(membership, in.RazorpayOrderID, in.RazorpayPaymentID, in.PaymentMethod, validFrom, validUntil)
}

// ActivateFixed is the trusted internal activation path: no signature check
// and a fixed one-year validity regardless of the plan. Re-applying the same
// activation is harmless, so retries of a completed payment are idempotent
// for the membership state.
func (s *Service) ActivateFixed(ctx context.Context, in FixedActivationInput) (*ActivationResult, error) {
	_ = ctx
	if strings.TrimSpace(in.RazorpayOrderID) == "" || strings.TrimSpace(in.RazorpayPaymentID) == "" {
		return nil, fmt.Errorf("%w: order id and payment id are required", ErrValidation)
	}

	membership, err := s.repo.FindMembershipByRazorpayOrderID(in.RazorpayOrderID)
	if err != nil {
		return nil, err
	}

	validFrom := time.Now()
	until := validFrom.AddDate(1, 0, 0)

	return s.finishActivation(membership, in.RazorpayOrderID, in.RazorpayPaymentID, in.PaymentMethod, validFrom, &until)
}

// GrantManual creates an already-active membership without any payment. The
// row is flagged is_manual; no order or ledger entry is written because no
// gateway transaction exists.
func (s *Service) GrantManual(ctx context.Context, userID, planID uint) (*ActivationResult, error) {
	_ = ctx
	if userID == 0 || planID == 0 {
		return nil, fmt.Errorf("%w: user id and plan id are required", ErrValidation)
	}

	plan, err := s.repo.FindPlan(planID)
	if err != nil {
		return nil, err
	}

	validFrom := time.Now()
	var validUntil *time.Time
	if plan.DurationMonths > 0 {
		until := validFrom.AddDate(0, plan.DurationMonths, 0)
		validUntil = &until
	}

	membership := &models.Membership{
		UserID:        userID,
		PlanID:        planID,
		Amount:        plan.Price,
		Currency:      models.CurrencyINR,
		Status:        models.MembershipStatusActive,
		PaymentStatus: models.PaymentStatusPaid,
		ValidFrom:     &validFrom,
		ValidUntil:    validUntil,
		IsManual:      true,
	}
	if err := s.repo.CreateMembership(membership); err != nil {
		return nil, err
	}

	return &ActivationResult{
		MembershipID: membership.ID,
		UserID:       membership.UserID,
		ValidFrom:    validFrom,
		ValidUntil:   validUntil,
	}, nil
}

// finishActivation applies the state transition shared by both activation
// paths and appends the tracking record. The ledger write is best effort: a
// failure is logged and does not roll back the committed activation.
func (s *Service) finishActivation(membership *models.Membership, orderID, paymentID, method string, validFrom time.Time, validUntil *time.Time) (*ActivationResult, error) {
	membership.Status = models.MembershipStatusActive
	membership.PaymentStatus = models.PaymentStatusPaid
	membership.RazorpayPaymentID = paymentID
	membership.ValidFrom = &validFrom
	membership.ValidUntil = validUntil
	if err := s.repo.SaveMembership(membership); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":              models.OrderStatusCompleted,
		"razorpay_payment_id": paymentID,
	}
	if method != "" {
		updates["payment_method"] = method
	}
	if err := s.repo.UpdateOrderByRazorpayOrderID(orderID, updates); err != nil {
		return nil, err
	}

	rec := &models.PaymentTrackingRecord{
		MembershipID:      membership.ID,
		UserID:            membership.UserID,
		Amount:            membership.Amount,
		Currency:          membership.Currency,
		PaymentMethod:     method,
		RazorpayPaymentID: paymentID,
		RazorpayOrderID:   orderID,
		PaymentStatus:     models.PaymentStatusPaid,
		PaymentDate:       validFrom,
	}
	if err := s.repo.AppendTrackingRecord(rec); err != nil {
		log.Printf("payment tracking append failed for membership %d: %v", membership.ID, err)
	}

	return &ActivationResult{
		MembershipID: membership.ID,
		UserID:       membership.UserID,
		ValidFrom:    validFrom,
		ValidUntil:   validUntil,
	}, nil
}

func (s *Service) lookupMembership(membershipID uint, orderID string) (*models.Membership, error) {
	if membershipID != 0 {
		return s.repo.FindMembershipWithPlan(membershipID)
	}
	return s.repo.FindMembershipByRazorpayOrderID(orderID)
}

// newReceipt builds a gateway receipt identifier unique within the key's
// namespace: current time plus a short random suffix for concurrent callers.
func newReceipt() string {
	return fmt.Sprintf("rcpt_%d_%s", time.Now().UnixNano(), uuid.NewString()[:8])
}
