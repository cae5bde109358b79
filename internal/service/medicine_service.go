package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"apoteka/internal/cache"
	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
	"apoteka/internal/repository"
)

const (
	medicineCacheTTL = 5 * time.Minute
	// expiringSoonWindow is how far ahead the expiring-soon report looks.
	expiringSoonWindow = 90 * 24 * time.Hour
)

// CreateMedicineInput carries the fields for a new medicine record.
type CreateMedicineInput struct {
	Name           string
	Description    string
	Manufacturer   string
	DosageForm     string
	Strength       string
	Quantity       int
	ExpirationDate *time.Time
	Price          decimal.Decimal
	TypeID         uint
	SupplierID     *uint
	ImagePath      string
}

// UpdateMedicineInput carries partial changes; nil fields are untouched.
// Quantity is deliberately absent: stock moves only through
// AdjustQuantity so the audit trail stays complete.
type UpdateMedicineInput struct {
	Name           *string
	Description    *string
	Manufacturer   *string
	DosageForm     *string
	Strength       *string
	ExpirationDate *time.Time
	Price          *decimal.Decimal
	TypeID         *uint
	SupplierID     *uint
	ImagePath      *string
}

// MedicineService is the inventory ledger: medicine records plus the
// audited quantity adjustments against them.
type MedicineService interface {
	Get(ctx context.Context, id uint) (*model.Medicine, error)
	List(ctx context.Context) ([]model.Medicine, error)
	Create(ctx context.Context, input CreateMedicineInput) (*model.Medicine, error)
	Update(ctx context.Context, id uint, input UpdateMedicineInput) (*model.Medicine, error)
	Delete(ctx context.Context, id uint) error
	AdjustQuantity(ctx context.Context, id uint, delta int, reason string) (newQuantity int, err error)
	ExpiringSoon(ctx context.Context) ([]model.Medicine, error)
	StockHistory(ctx context.Context, id uint) ([]model.StockLog, error)
}

type medicineService struct {
	medicineRepo repository.MedicineRepository
	typeRepo     repository.MedicineTypeRepository
	stockLogRepo repository.StockLogRepository
	cache        *cache.Client
}

// NewMedicineService creates a new medicine service.
func NewMedicineService(
	medicineRepo repository.MedicineRepository,
	typeRepo repository.MedicineTypeRepository,
	stockLogRepo repository.StockLogRepository,
	cache *cache.Client,
) MedicineService {
	return &medicineService{
		medicineRepo: medicineRepo,
		typeRepo:     typeRepo,
		stockLogRepo: stockLogRepo,
		cache:        cache,
	}
}

// medicineCacheKey is the cache key for one medicine. Checkout shares it
// so its invalidations hit the same keys as the read cache.
func medicineCacheKey(id uint) string {
	return fmt.Sprintf("medicine:%d", id)
}

// Get retrieves a medicine by ID with caching.
func (s *medicineService) Get(ctx context.Context, id uint) (*model.Medicine, error) {
	if data, _ := s.cache.Get(ctx, medicineCacheKey(id)); data != nil {
		var cached model.Medicine
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	medicine, err := s.medicineRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMedicineNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(medicine); err == nil {
		_ = s.cache.Set(ctx, medicineCacheKey(id), payload, medicineCacheTTL)
	}
	return medicine, nil
}

func (s *medicineService) List(ctx context.Context) ([]model.Medicine, error) {
	return s.medicineRepo.List(ctx)
}

// Create adds a new medicine; the type must exist.
func (s *medicineService) Create(ctx context.Context, input CreateMedicineInput) (*model.Medicine, error) {
	if input.Quantity < 0 {
		return nil, apperrors.ErrInvalidQuantity
	}
	if _, err := s.typeRepo.FindByID(ctx, input.TypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMedicineTypeNotFound
		}
		return nil, err
	}

	medicine := &model.Medicine{
		Name:           input.Name,
		Description:    input.Description,
		Manufacturer:   input.Manufacturer,
		DosageForm:     input.DosageForm,
		Strength:       input.Strength,
		Quantity:       input.Quantity,
		ExpirationDate: input.ExpirationDate,
		Price:          input.Price,
		TypeID:         input.TypeID,
		SupplierID:     input.SupplierID,
		ImagePath:      input.ImagePath,
	}

	if err := s.medicineRepo.Create(ctx, medicine); err != nil {
		return nil, fmt.Errorf("create medicine: %w", err)
	}
	return medicine, nil
}

// Update applies the non-nil fields to an existing medicine.
func (s *medicineService) Update(ctx context.Context, id uint, input UpdateMedicineInput) (*model.Medicine, error) {
	medicine, err := s.medicineRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMedicineNotFound
		}
		return nil, err
	}

	if input.TypeID != nil {
		if _, err := s.typeRepo.FindByID(ctx, *input.TypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrMedicineTypeNotFound
			}
			return nil, err
		}
		medicine.TypeID = *input.TypeID
	}
	if input.Name != nil {
		medicine.Name = *input.Name
	}
	if input.Description != nil {
		medicine.Description = *input.Description
	}
	if input.Manufacturer != nil {
		medicine.Manufacturer = *input.Manufacturer
	}
	if input.DosageForm != nil {
		medicine.DosageForm = *input.DosageForm
	}
	if input.Strength != nil {
		medicine.Strength = *input.Strength
	}
	if input.ExpirationDate != nil {
		medicine.ExpirationDate = input.ExpirationDate
	}
	if input.Price != nil {
		medicine.Price = *input.Price
	}
	if input.SupplierID != nil {
		medicine.SupplierID = input.SupplierID
	}
	if input.ImagePath != nil {
		medicine.ImagePath = *input.ImagePath
	}

	if err := s.medicineRepo.Update(ctx, medicine); err != nil {
		return nil, fmt.Errorf("update medicine: %w", err)
	}
	_ = s.cache.Delete(ctx, medicineCacheKey(id))
	return medicine, nil
}

// Delete removes a medicine together with its cart rows and stock logs.
func (s *medicineService) Delete(ctx context.Context, id uint) error {
	if _, err := s.medicineRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMedicineNotFound
		}
		return err
	}
	if err := s.medicineRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete medicine: %w", err)
	}
	_ = s.cache.Delete(ctx, medicineCacheKey(id))
	return nil
}

// AdjustQuantity applies a signed delta to a medicine's quantity under a
// row lock and appends a stock log entry in the same transaction. It
// fails with InsufficientStockError when the delta would take the
// quantity below zero, leaving both quantity and trail untouched.
func (s *medicineService) AdjustQuantity(ctx context.Context, id uint, delta int, reason string) (int, error) {
	var newQuantity int
	err := s.medicineRepo.WithTransaction(ctx, func(ctx context.Context, tx interface{}) error {
		medicine, err := s.medicineRepo.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrMedicineNotFound
			}
			return err
		}

		newQuantity = medicine.Quantity + delta
		if newQuantity < 0 {
			return &apperrors.InsufficientStockError{
				Medicine:  medicine.Name,
				Available: medicine.Quantity,
			}
		}

		if err := s.medicineRepo.UpdateQuantityTx(ctx, tx, id, newQuantity); err != nil {
			return err
		}
		return s.stockLogRepo.CreateTx(ctx, tx, &model.StockLog{
			MedicineID: id,
			Change:     delta,
			Reason:     reason,
		})
	})
	if err != nil {
		return 0, err
	}

	_ = s.cache.Delete(ctx, medicineCacheKey(id))
	return newQuantity, nil
}

// ExpiringSoon lists medicines expiring within the next 90 days.
func (s *medicineService) ExpiringSoon(ctx context.Context) ([]model.Medicine, error) {
	now := time.Now()
	return s.medicineRepo.FindExpiringBetween(ctx, now, now.Add(expiringSoonWindow))
}

// StockHistory returns the audit trail for a medicine, newest first.
func (s *medicineService) StockHistory(ctx context.Context, id uint) ([]model.StockLog, error) {
	if _, err := s.medicineRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMedicineNotFound
		}
		return nil, err
	}
	return s.stockLogRepo.ListByMedicine(ctx, id)
}
