package payment

import "time"

// Config carries the gateway credentials. It is built at the handler
// boundary from the environment and injected at construction; the payment
// package never reads ambient configuration itself.
type Config struct {
	KeyID     string
	KeySecret string
}

// CreateOrderInput is the normalized input for starting a payment attempt.
// Amount is in whole currency units; the gateway receives paise.
type CreateOrderInput struct {
	UserID uint
	PlanID uint
	Amount float64
}

// CreateOrderResult is returned to the client so it can open the gateway
// checkout with the remote order id and the public key id.
type CreateOrderResult struct {
	OrderID      string
	Amount       int64
	Currency     string
	KeyID        string
	MembershipID uint
}

// VerifiedActivationInput drives the signature-checked activation path.
type VerifiedActivationInput struct {
	MembershipID      uint
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
	PaymentMethod     string
}

// FixedActivationInput drives the trusted internal activation path, which
// applies a fixed one-year validity window regardless of plan duration.
type FixedActivationInput struct {
	RazorpayOrderID   string
	RazorpayPaymentID string
	PaymentMethod     string
}

// ActivationResult reports the membership state after activation.
type ActivationResult struct {
	MembershipID uint
	UserID       uint
	ValidFrom    time.Time
	ValidUntil   *time.Time
}
