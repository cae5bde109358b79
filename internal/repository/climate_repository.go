package repository

import (
	"context"

	"gorm.io/gorm"

	"apoteka/internal/model"
)

// ClimateRepository defines temperature/humidity log persistence.
type ClimateRepository interface {
	Create(ctx context.Context, entry *model.TemperatureHumidityLog) error
	Update(ctx context.Context, entry *model.TemperatureHumidityLog) error
	FindByID(ctx context.Context, id uint) (*model.TemperatureHumidityLog, error)
	List(ctx context.Context) ([]model.TemperatureHumidityLog, error)
	Delete(ctx context.Context, id uint) error
}

type climateRepository struct {
	db *gorm.DB
}

// NewClimateRepository creates a new climate repository.
func NewClimateRepository(db *gorm.DB) ClimateRepository {
	return &climateRepository{db: db}
}

func (r *climateRepository) Create(ctx context.Context, entry *model.TemperatureHumidityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *climateRepository) Update(ctx context.Context, entry *model.TemperatureHumidityLog) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *climateRepository) FindByID(ctx context.Context, id uint) (*model.TemperatureHumidityLog, error) {
	var entry model.TemperatureHumidityLog
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns readings newest first.
func (r *climateRepository) List(ctx context.Context) ([]model.TemperatureHumidityLog, error) {
	var entries []model.TemperatureHumidityLog
	if err := r.db.WithContext(ctx).Order("recorded_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *climateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.TemperatureHumidityLog{}, id).Error
}
