package models

import "time"

// PaymentTrackingRecord is an append-only audit entry written after a
// verified payment. Rows are never updated or deleted by the payment
// workflow; duplicates under concurrent retries are accepted.
type PaymentTrackingRecord struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	MembershipID      uint      `gorm:"not null;index" json:"membership_id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	Amount            float64   `gorm:"not null" json:"amount"`
	Currency          string    `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	PaymentMethod     string    `gorm:"type:varchar(50)" json:"payment_method"`
	RazorpayPaymentID string    `gorm:"type:varchar(100);index" json:"razorpay_payment_id"`
	RazorpayOrderID   string    `gorm:"type:varchar(100);index" json:"razorpay_order_id"`
	PaymentStatus     string    `gorm:"type:varchar(20);not null" json:"payment_status"`
	PaymentDate       time.Time `gorm:"type:timestamp;not null" json:"payment_date"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (PaymentTrackingRecord) TableName() string {
	return "payment_tracking_records"
}
