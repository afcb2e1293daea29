package models

import "time"

// CurrencyINR is the only currency the payment workflow handles.
const CurrencyINR = "INR"

const (
	MembershipStatusPending = "pending"
	MembershipStatusActive  = "active"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Membership tracks one enrollment attempt and its lifecycle state. A
// membership moves pending -> active exactly once, on a verified payment;
// renewals create a new row. ValidUntil of nil means lifetime.
type Membership struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"not null;index" json:"user_id"`
	PlanID            uint       `gorm:"not null;index" json:"plan_id"`
	Amount            float64    `gorm:"not null" json:"amount"`
	Currency          string     `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	Status            string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus     string     `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	RazorpayOrderID   string     `gorm:"type:varchar(100);index" json:"razorpay_order_id"`
	RazorpayPaymentID string     `gorm:"type:varchar(100)" json:"razorpay_payment_id"`
	ValidFrom         *time.Time `gorm:"type:timestamp;default:null" json:"valid_from,omitempty"`
	ValidUntil        *time.Time `gorm:"type:timestamp;default:null" json:"valid_until,omitempty"`
	IsManual          bool       `gorm:"default:false" json:"is_manual"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Plan MembershipPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

// IsActiveNow reports whether the membership is active and inside its
// validity window at the given time.
func (m *Membership) IsActiveNow(now time.Time) bool {
	if m.Status != MembershipStatusActive {
		return false
	}
	if m.ValidFrom != nil && now.Before(*m.ValidFrom) {
		return false
	}
	if m.ValidUntil == nil {
		return true
	}
	return now.Before(*m.ValidUntil)
}
