package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
	"apoteka/internal/repository"
)

// ClimateService records storage-room temperature/humidity readings.
type ClimateService interface {
	Record(ctx context.Context, temperature, humidity float64) (*model.TemperatureHumidityLog, error)
	Get(ctx context.Context, id uint) (*model.TemperatureHumidityLog, error)
	List(ctx context.Context) ([]model.TemperatureHumidityLog, error)
	Update(ctx context.Context, id uint, temperature, humidity float64) (*model.TemperatureHumidityLog, error)
	Delete(ctx context.Context, id uint) error
}

type climateService struct {
	repo repository.ClimateRepository
}

// NewClimateService creates a new climate service.
func NewClimateService(repo repository.ClimateRepository) ClimateService {
	return &climateService{repo: repo}
}

func (s *climateService) Record(ctx context.Context, temperature, humidity float64) (*model.TemperatureHumidityLog, error) {
	entry := &model.TemperatureHumidityLog{
		Temperature: temperature,
		Humidity:    humidity,
		RecordedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *climateService) Get(ctx context.Context, id uint) (*model.TemperatureHumidityLog, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLogEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *climateService) List(ctx context.Context) ([]model.TemperatureHumidityLog, error) {
	return s.repo.List(ctx)
}

func (s *climateService) Update(ctx context.Context, id uint, temperature, humidity float64) (*model.TemperatureHumidityLog, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.Temperature = temperature
	entry.Humidity = humidity
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *climateService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
