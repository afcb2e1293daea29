package payment

import (
	"github.com/sabhahq/sabha/app/models"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the payment service. Each call
// is a self-contained write or read against durable storage; the workflow
// holds no state between requests.
type Repository interface {
	FindPlan(id uint) (*models.MembershipPlan, error)
	FindMembershipWithPlan(id uint) (*models.Membership, error)
	FindMembershipByRazorpayOrderID(orderID string) (*models.Membership, error)
	CreateMembership(m *models.Membership) error
	SaveMembership(m *models.Membership) error
	CreateOrder(o *models.Order) error
	UpdateOrderByRazorpayOrderID(orderID string, updates map[string]interface{}) error
	AppendTrackingRecord(rec *models.PaymentTrackingRecord) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payment repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindPlan(id uint) (*models.MembershipPlan, error) {
	var plan models.MembershipPlan
	if err := r.db.First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *gormRepository) FindMembershipWithPlan(id uint) (*models.Membership, error) {
	var m models.Membership
	if err := r.db.Preload("Plan").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) FindMembershipByRazorpayOrderID(orderID string) (*models.Membership, error) {
	var m models.Membership
	if err := r.db.Preload("Plan").Where("razorpay_order_id = ?", orderID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) CreateMembership(m *models.Membership) error {
	return r.db.Create(m).Error
}

func (r *gormRepository) SaveMembership(m *models.Membership) error {
	return r.db.Save(m).Error
}

func (r *gormRepository) CreateOrder(o *models.Order) error {
	return r.db.Create(o).Error
}

func (r *gormRepository) UpdateOrderByRazorpayOrderID(orderID string, updates map[string]interface{}) error {
	return r.db.Model(&models.Order{}).Where("razorpay_order_id = ?", orderID).Updates(updates).Error
}

func (r *gormRepository) AppendTrackingRecord(rec *models.PaymentTrackingRecord) error {
	return r.db.Create(rec).Error
}
