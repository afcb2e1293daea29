package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/sabhahq/sabha/app/models"
)

type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	lastReceipt  string
	calls        int
	err          error
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountPaise int64, currency, receipt string) (*GatewayOrder, error) {
	g.calls++
	g.lastAmount = amountPaise
	g.lastCurrency = currency
	g.lastReceipt = receipt
	if g.err != nil {
		return nil, g.err
	}
	return &GatewayOrder{ID: "order_test123", Amount: amountPaise, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

type fakeRepo struct {
	plans       map[uint]*models.MembershipPlan
	memberships map[uint]*models.Membership
	orders      map[string]*models.Order
	records     []models.PaymentTrackingRecord

	nextMembershipID uint
	recordErr        error
	createErr        error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		plans:            map[uint]*models.MembershipPlan{},
		memberships:      map[uint]*models.Membership{},
		orders:           map[string]*models.Order{},
		nextMembershipID: 1,
	}
}

func (r *fakeRepo) FindPlan(id uint) (*models.MembershipPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeRepo) FindMembershipWithPlan(id uint) (*models.Membership, error) {
	m, ok := r.memberships[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if p, ok := r.plans[m.PlanID]; ok {
		m.Plan = *p
	}
	return m, nil
}

func (r *fakeRepo) FindMembershipByRazorpayOrderID(orderID string) (*models.Membership, error) {
	for _, m := range r.memberships {
		if m.RazorpayOrderID == orderID {
			if p, ok := r.plans[m.PlanID]; ok {
				m.Plan = *p
			}
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) CreateMembership(m *models.Membership) error {
	if r.createErr != nil {
		return r.createErr
	}
	m.ID = r.nextMembershipID
	r.nextMembershipID++
	r.memberships[m.ID] = m
	return nil
}

func (r *fakeRepo) SaveMembership(m *models.Membership) error {
	r.memberships[m.ID] = m
	return nil
}

func (r *fakeRepo) CreateOrder(o *models.Order) error {
	o.ID = uint(len(r.orders) + 1)
	r.orders[o.RazorpayOrderID] = o
	return nil
}

func (r *fakeRepo) UpdateOrderByRazorpayOrderID(orderID string, updates map[string]interface{}) error {
	o, ok := r.orders[orderID]
	if !ok {
		return nil
	}
	if v, ok := updates["status"]; ok {
		o.Status = v.(string)
	}
	if v, ok := updates["razorpay_payment_id"]; ok {
		o.RazorpayPaymentID = v.(string)
	}
	if v, ok := updates["payment_method"]; ok {
		o.PaymentMethod = v.(string)
	}
	return nil
}

func (r *fakeRepo) AppendTrackingRecord(rec *models.PaymentTrackingRecord) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.records = append(r.records, *rec)
	return nil
}

var testCfg = Config{KeyID: "rzp_test_key", KeySecret: "rzp_test_secret"}

func newTestService(repo *fakeRepo, gw *fakeGateway) *Service {
	return NewService(repo, gw, testCfg)
}

func seedPlan(repo *fakeRepo, id uint, months int) {
	repo.plans[id] = &models.MembershipPlan{ID: id, Name: "Annual", Price: 500, Currency: models.CurrencyINR, DurationMonths: months, IsActive: true}
}

func seedPendingMembership(repo *fakeRepo, planID uint, orderID string) *models.Membership {
	m := &models.Membership{
		UserID:          7,
		PlanID:          planID,
		Amount:          500,
		Currency:        models.CurrencyINR,
		Status:          models.MembershipStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		RazorpayOrderID: orderID,
	}
	_ = repo.CreateMembership(m)
	_ = repo.CreateOrder(&models.Order{UserID: 7, MembershipID: m.ID, RazorpayOrderID: orderID, Amount: 500, Currency: models.CurrencyINR, Status: models.OrderStatusPending})
	return m
}

func TestCreateOrder_ConvertsToPaise(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 1, 12)
	gw := &fakeGateway{}
	svc := newTestService(repo, gw)

	res, err := svc.CreateOrder(context.Background(), CreateOrderInput{UserID: 7, PlanID: 1, Amount: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastAmount != 50000 {
		t.Fatalf("expected gateway amount 50000 paise, got %d", gw.lastAmount)
	}
	if gw.lastCurrency != models.CurrencyINR {
		t.Fatalf("expected currency INR, got %q", gw.lastCurrency)
	}
	if res.Amount != 50000 || res.Currency != models.CurrencyINR || res.KeyID != testCfg.KeyID {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.HasPrefix(gw.lastReceipt, "rcpt_") {
		t.Fatalf("unexpected receipt format: %q", gw.lastReceipt)
	}

	m, ok := repo.memberships[res.MembershipID]
	if !ok {
		t.Fatalf("expected membership row to be created")
	}
	if m.Status != models.MembershipStatusPending || m.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("expected pending membership, got status=%q payment_status=%q", m.Status, m.PaymentStatus)
	}
	o, ok := repo.orders["order_test123"]
	if !ok || o.Status != models.OrderStatusPending || o.MembershipID != m.ID {
		t.Fatalf("expected pending order referencing membership, got %+v", o)
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 1, 12)
	gw := &fakeGateway{}
	svc := newTestService(repo, gw)

	tests := []struct {
		name string
		in   CreateOrderInput
		want error
	}{
		{name: "unauthenticated", in: CreateOrderInput{PlanID: 1, Amount: 500}, want: ErrUnauthorized},
		{name: "missing plan", in: CreateOrderInput{UserID: 7, Amount: 500}, want: ErrValidation},
		{name: "zero amount", in: CreateOrderInput{UserID: 7, PlanID: 1}, want: ErrValidation},
		{name: "negative amount", in: CreateOrderInput{UserID: 7, PlanID: 1, Amount: -5}, want: ErrValidation},
	}

	for _, tt := range tests {
		if _, err := svc.CreateOrder(context.Background(), tt.in); !errors.Is(err, tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
	if gw.calls != 0 {
		t.Fatalf("expected no gateway calls on validation failure, got %d", gw.calls)
	}
}

func TestCreateOrder_MissingCredentials(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 1, 12)
	svc := NewService(repo, &fakeGateway{}, Config{})

	if _, err := svc.CreateOrder(context.Background(), CreateOrderInput{UserID: 7, PlanID: 1, Amount: 500}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCreateOrder_GatewayFailureSurfaces(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 1, 12)
	gw := &fakeGateway{err: errors.New("razorpay order creation failed: status=502")}
	svc := newTestService(repo, gw)

	if _, err := svc.CreateOrder(context.Background(), CreateOrderInput{UserID: 7, PlanID: 1, Amount: 500}); err == nil {
		t.Fatalf("expected gateway error to surface")
	}
	if len(repo.memberships) != 0 {
		t.Fatalf("expected no membership row after gateway failure")
	}
}

func TestActivateVerified_PlanDuration(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 1, 12)
	m := seedPendingMembership(repo, 1, "order_abc")
	svc := newTestService(repo, &fakeGateway{})

	sig := signFor("order_abc", "pay_xyz", testCfg.KeySecret)
	res, err := svc.ActivateVerified(context.Background(), VerifiedActivationInput{
		MembershipID:      m.ID,
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: sig,
		PaymentMethod:     "upi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ValidUntil == nil {
		t.Fatalf("expected a bounded validity window on a 12 month plan")
	}
	want := res.ValidFrom.AddDate(0, 12, 0)
	if !res.ValidUntil.Equal(want) {
		t.Fatalf("expected valid_until %v, got %v", want, *res.ValidUntil)
	}

	stored := repo.memberships[m.ID]
	if stored.Status != models.MembershipStatusActive || stored.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("expected active/paid membership, got %q/%q", stored.Status, stored.PaymentStatus)
	}
	if stored.RazorpayPaymentID != "pay_xyz" {
		t.Fatalf("expected payment id to be stored, got %q", stored.RazorpayPaymentID)
	}

	o := repo.orders["order_abc"]
	if o.Status != models.OrderStatusCompleted || o.PaymentMethod != "upi" {
		t.Fatalf("expected completed order with method, got %+v", o)
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected exactly one tracking record, got %d", len(repo.records))
	}
	rec := repo.records[0]
	if rec.MembershipID != m.ID || rec.RazorpayOrderID != "order_abc" || rec.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("unexpected tracking record: %+v", rec)
	}
}

func TestActivateVerified_LifetimePlan(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 2, 0)
	m := seedPendingMembership(repo, 2, "order_life")
	svc := newTestService(repo, &fakeGateway{})

	sig := signFor("order_life", "pay_life", testCfg.KeySecret)
	res, err := svc.ActivateVerified(context.Background(), VerifiedActivationInput{
		MembershipID:      m.ID,
		RazorpayOrderID:   "order_life",
		RazorpayPaymentID: "pay_life",
		RazorpaySignature: sig,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidUntil != nil {
		t.Fatalf("expected lifetime membership (nil valid_until), got %v", *res.ValidUntil)
	}
}

func TestActivateVerified_InvalidSignature(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 1, 12)
	m := seedPendingMembership(repo, 1, "order_bad")
	svc := newTestService(repo, &fakeGateway{})

	_, err := svc.ActivateVerified(context.Background(), VerifiedActivationInput{
		MembershipID:      m.ID,
		RazorpayOrderID:   "order_bad",
		RazorpayPaymentID: "pay_bad",
		RazorpaySignature: "deadbeef",
	})
	if !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected signature mismatch, got %v", err)
	}

	stored := repo.memberships[m.ID]
	if stored.Status != models.MembershipStatusPending {
		t.Fatalf("expected membership to stay pending on invalid signature, got %q", stored.Status)
	}
	if len(repo.records) != 0 {
		t.Fatalf("expected no tracking record on invalid signature")
	}
}

func TestActivateVerified_RejectsForeignOrder(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 1, 12)
	seedPlan(repo, 2, 0)
	seedPendingMembership(repo, 1, "order_cheap")
	lifetime := seedPendingMembership(repo, 2, "order_lifetime")
	svc := newTestService(repo, &fakeGateway{})

	// A valid signature for one order must not activate a membership that
	// was created for a different order.
	sig := signFor("order_cheap", "pay_cheap", testCfg.KeySecret)
	_, err := svc.ActivateVerified(context.Background(), VerifiedActivationInput{
		MembershipID:      lifetime.ID,
		RazorpayOrderID:   "order_cheap",
		RazorpayPaymentID: "pay_cheap",
		RazorpaySignature: sig,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for mismatched order, got %v", err)
	}

	stored := repo.memberships[lifetime.ID]
	if stored.Status != models.MembershipStatusPending {
		t.Fatalf("expected lifetime membership to stay pending, got %q", stored.Status)
	}
	if stored.RazorpayPaymentID != "" {
		t.Fatalf("expected no payment id on the untouched membership, got %q", stored.RazorpayPaymentID)
	}
	if repo.orders["order_cheap"].Status != models.OrderStatusPending {
		t.Fatalf("expected the paying order to stay pending, got %q", repo.orders["order_cheap"].Status)
	}
	if len(repo.records) != 0 {
		t.Fatalf("expected no tracking record for a rejected activation")
	}
}

func TestActivateVerified_MembershipNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeGateway{})

	_, err := svc.ActivateVerified(context.Background(), VerifiedActivationInput{
		MembershipID:      99,
		RazorpayOrderID:   "order_missing",
		RazorpayPaymentID: "pay_x",
		RazorpaySignature: "sig",
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("expected no tracking record when membership is missing")
	}
}

func TestActivateFixed_OneYearWindowAndIdempotency(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 1, 12)
	m := seedPendingMembership(repo, 1, "order_fix")
	svc := newTestService(repo, &fakeGateway{})

	in := FixedActivationInput{RazorpayOrderID: "order_fix", RazorpayPaymentID: "pay_fix"}

	res, err := svc.ActivateFixed(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidUntil == nil || !res.ValidUntil.Equal(res.ValidFrom.AddDate(1, 0, 0)) {
		t.Fatalf("expected fixed one-year window, got from=%v until=%v", res.ValidFrom, res.ValidUntil)
	}

	// Replaying the same activation must leave the membership active.
	if _, err := svc.ActivateFixed(context.Background(), in); err != nil {
		t.Fatalf("expected replay to succeed, got %v", err)
	}
	if repo.memberships[m.ID].Status != models.MembershipStatusActive {
		t.Fatalf("expected membership to remain active after replay")
	}
}

func TestFinishActivation_LedgerFailureDoesNotRollBack(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 1, 12)
	m := seedPendingMembership(repo, 1, "order_ledger")
	repo.recordErr = errors.New("insert failed")
	svc := newTestService(repo, &fakeGateway{})

	sig := signFor("order_ledger", "pay_l", testCfg.KeySecret)
	if _, err := svc.ActivateVerified(context.Background(), VerifiedActivationInput{
		MembershipID:      m.ID,
		RazorpayOrderID:   "order_ledger",
		RazorpayPaymentID: "pay_l",
		RazorpaySignature: sig,
	}); err != nil {
		t.Fatalf("expected activation to succeed despite ledger failure, got %v", err)
	}
	if repo.memberships[m.ID].Status != models.MembershipStatusActive {
		t.Fatalf("expected membership active even when ledger append fails")
	}
}

func TestGrantManual(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 1, 12)
	svc := newTestService(repo, &fakeGateway{})

	res, err := svc.GrantManual(context.Background(), 11, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := repo.memberships[res.MembershipID]
	if !m.IsManual {
		t.Fatalf("expected manual membership to be flagged is_manual")
	}
	if m.Status != models.MembershipStatusActive {
		t.Fatalf("expected manual membership to be active, got %q", m.Status)
	}
	if res.ValidUntil == nil || !res.ValidUntil.Equal(res.ValidFrom.AddDate(0, 12, 0)) {
		t.Fatalf("expected plan-length validity on a 12 month plan, got %v", res.ValidUntil)
	}
	if len(repo.records) != 0 {
		t.Fatalf("expected no ledger entry for a manual grant")
	}
	if len(repo.orders) != 0 {
		t.Fatalf("expected no order row for a manual grant")
	}
}

func TestGrantManual_LifetimePlan(t *testing.T) {
	repo := newFakeRepo()
	seedPlan(repo, 2, 0)
	svc := newTestService(repo, &fakeGateway{})

	res, err := svc.GrantManual(context.Background(), 11, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidUntil != nil {
		t.Fatalf("expected lifetime grant (nil valid_until), got %v", *res.ValidUntil)
	}
}
