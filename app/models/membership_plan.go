package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// MembershipPlan defines a membership tier: price in whole currency units
// (INR) and validity in months. DurationMonths of zero means lifetime.
type MembershipPlan struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=3,max=150"`
	Description    string         `gorm:"type:text" json:"description"`
	Price          float64        `gorm:"not null" json:"price" validate:"gte=0"`
	Currency       string         `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	DurationMonths int            `gorm:"not null;default:12" json:"duration_months" validate:"gte=0"`
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *MembershipPlan) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

// IsLifetime reports whether memberships on this plan never expire.
func (p *MembershipPlan) IsLifetime() bool {
	return p.DurationMonths == 0
}
