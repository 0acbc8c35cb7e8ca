package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RateRepository interface {
	FindRange(ctx context.Context, roomTypeID int64, from, to time.Time) ([]models.NightlyRate, error)
	CountRange(ctx context.Context, tx *gorm.DB, roomTypeID int64, from, to time.Time) (int64, error)
	Upsert(ctx context.Context, rate *models.NightlyRate) error
}

type rateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

// FindRange returns the rates of the nights from..to, both inclusive, ordered by date.
func (r *rateRepository) FindRange(ctx context.Context, roomTypeID int64, from, to time.Time) ([]models.NightlyRate, error) {
	var rates []models.NightlyRate
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND date >= ? AND date <= ?", roomTypeID, from, to).
		Order("date ASC").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *rateRepository) CountRange(ctx context.Context, tx *gorm.DB, roomTypeID int64, from, to time.Time) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.NightlyRate{}).
		Where("room_type_id = ? AND date >= ? AND date <= ?", roomTypeID, from, to).
		Count(&count).Error
	return count, err
}

// Upsert inserts the rate or overwrites the amount of the same room type and night.
func (r *rateRepository) Upsert(ctx context.Context, rate *models.NightlyRate) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_type_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(rate).Error
}
