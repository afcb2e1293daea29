package repository

import (
	"github.com/sabhahq/sabha/app/models"
	"gorm.io/gorm"
)

// paymentRecordRepository reads the append-only payment tracking ledger.
// Writes go through the payment workflow only; this repository deliberately
// exposes no update or delete operations.
type paymentRecordRepository struct {
	db *gorm.DB
}

// NewPaymentRecordRepository creates a new payment ledger repository instance
func NewPaymentRecordRepository(db *gorm.DB) PaymentRecordRepository {
	return &paymentRecordRepository{db: db}
}

func (r *paymentRecordRepository) List(offset, limit int) ([]models.PaymentTrackingRecord, error) {
	var records []models.PaymentTrackingRecord
	err := r.db.Order("payment_date DESC").Offset(offset).Limit(limit).Find(&records).Error
	return records, err
}

func (r *paymentRecordRepository) GetByUserID(userID uint) ([]models.PaymentTrackingRecord, error) {
	var records []models.PaymentTrackingRecord
	err := r.db.Where("user_id = ?", userID).Order("payment_date DESC").Find(&records).Error
	return records, err
}

func (r *paymentRecordRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.PaymentTrackingRecord{}).Count(&count).Error
	return count, err
}
