package repository

import (
	"github.com/sabhahq/sabha/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPITokenHash(hash string) (*models.User, error)
	Update(user *models.User) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// PlanRepository defines the interface for membership plan operations
type PlanRepository interface {
	Create(plan *models.MembershipPlan) error
	GetByID(id uint) (*models.MembershipPlan, error)
	GetActive() ([]models.MembershipPlan, error)
	GetAll() ([]models.MembershipPlan, error)
	Update(plan *models.MembershipPlan) error
	Delete(id uint) error
}

// MembershipRepository defines the interface for membership queries outside
// the payment workflow (admin surfaces).
type MembershipRepository interface {
	GetByID(id uint) (*models.Membership, error)
	GetByUserID(userID uint) ([]models.Membership, error)
	GetLatestByUserID(userID uint) (*models.Membership, error)
	List(offset, limit int) ([]models.Membership, error)
	Count() (int64, error)
}

// OrderRepository defines the interface for order queries
type OrderRepository interface {
	GetByRazorpayOrderID(orderID string) (*models.Order, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Order, error)
	List(offset, limit int) ([]models.Order, error)
}

// PaymentRecordRepository reads the append-only tracking ledger
type PaymentRecordRepository interface {
	List(offset, limit int) ([]models.PaymentTrackingRecord, error)
	GetByUserID(userID uint) ([]models.PaymentTrackingRecord, error)
	Count() (int64, error)
}

// PageRepository defines the interface for content page operations
type PageRepository interface {
	Create(page *models.Page) error
	GetByID(id uint) (*models.Page, error)
	GetBySlug(slug string) (*models.Page, error)
	GetActive() ([]models.Page, error)
	GetAll() ([]models.Page, error)
	Update(page *models.Page) error
	Delete(id uint) error
}

// AnnouncementRepository defines the interface for announcement operations
type AnnouncementRepository interface {
	Create(a *models.Announcement) error
	GetByID(id uint) (*models.Announcement, error)
	GetBySlug(slug string) (*models.Announcement, error)
	GetPublished(offset, limit int) ([]models.Announcement, error)
	GetAll(offset, limit int) ([]models.Announcement, error)
	Update(a *models.Announcement) error
	Delete(id uint) error
	Count() (int64, error)
}
