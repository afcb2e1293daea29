package repository

import (
	"github.com/sabhahq/sabha/app/models"
	"gorm.io/gorm"
)

// membershipRepository implements the MembershipRepository interface
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository instance
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) GetByID(id uint) (*models.Membership, error) {
	var m models.Membership
	if err := r.db.Preload("Plan").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) GetByUserID(userID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Preload("Plan").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&memberships).Error
	return memberships, err
}

func (r *membershipRepository) GetLatestByUserID(userID uint) (*models.Membership, error) {
	var m models.Membership
	err := r.db.Preload("Plan").Where("user_id = ?", userID).
		Order("created_at DESC").First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) List(offset, limit int) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Preload("User").Preload("Plan").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&memberships).Error
	return memberships, err
}

func (r *membershipRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).Count(&count).Error
	return count, err
}
