package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCompleted = "completed"
)

// Order tracks one payment attempt against the gateway. Exactly one order
// exists per gateway order id; the membership reference never changes after
// creation.
type Order struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	MembershipID      uint      `gorm:"not null;index" json:"membership_id"`
	RazorpayOrderID   string    `gorm:"type:varchar(100);uniqueIndex" json:"razorpay_order_id"`
	RazorpayPaymentID string    `gorm:"type:varchar(100)" json:"razorpay_payment_id"`
	Amount            float64   `gorm:"not null" json:"amount"`
	Currency          string    `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	Status            string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod     string    `gorm:"type:varchar(50)" json:"payment_method"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Membership Membership `gorm:"foreignKey:MembershipID" json:"membership,omitempty"`
}
