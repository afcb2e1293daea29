package repository

import (
	"github.com/sabhahq/sabha/app/models"
	"gorm.io/gorm"
)

// announcementRepository implements the AnnouncementRepository interface
type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository instance
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(a *models.Announcement) error {
	return r.db.Create(a).Error
}

func (r *announcementRepository) GetByID(id uint) (*models.Announcement, error) {
	var a models.Announcement
	err := r.db.Preload("User").First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) GetBySlug(slug string) (*models.Announcement, error) {
	var a models.Announcement
	err := r.db.Preload("User").Where("slug = ?", slug).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) GetPublished(offset, limit int) ([]models.Announcement, error) {
	var items []models.Announcement
	err := r.db.Preload("User").Where("published = ?", true).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, err
}

func (r *announcementRepository) GetAll(offset, limit int) ([]models.Announcement, error) {
	var items []models.Announcement
	err := r.db.Preload("User").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&items).Error
	return items, err
}

func (r *announcementRepository) Update(a *models.Announcement) error {
	return r.db.Save(a).Error
}

func (r *announcementRepository) Delete(id uint) error {
	return r.db.Delete(&models.Announcement{}, id).Error
}

func (r *announcementRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Announcement{}).Count(&count).Error
	return count, err
}
