package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
	"apoteka/internal/repository"
)

// UpdateSupplierInput carries partial supplier changes.
type UpdateSupplierInput struct {
	Name    *string
	Address *string
	Phone   *string
	Email   *string
}

// LookupService manages the medicine type and supplier lookup tables.
type LookupService interface {
	ListMedicineTypes(ctx context.Context) ([]model.MedicineType, error)
	CreateMedicineType(ctx context.Context, mt *model.MedicineType) (*model.MedicineType, error)
	UpdateMedicineType(ctx context.Context, id uint, name, description *string) (*model.MedicineType, error)
	DeleteMedicineType(ctx context.Context, id uint) error

	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	CreateSupplier(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	UpdateSupplier(ctx context.Context, id uint, input UpdateSupplierInput) (*model.Supplier, error)
	DeleteSupplier(ctx context.Context, id uint) error
}

type lookupService struct {
	typeRepo     repository.MedicineTypeRepository
	supplierRepo repository.SupplierRepository
}

// NewLookupService creates a new lookup service.
func NewLookupService(typeRepo repository.MedicineTypeRepository, supplierRepo repository.SupplierRepository) LookupService {
	return &lookupService{typeRepo: typeRepo, supplierRepo: supplierRepo}
}

func (s *lookupService) ListMedicineTypes(ctx context.Context) ([]model.MedicineType, error) {
	return s.typeRepo.List(ctx)
}

func (s *lookupService) CreateMedicineType(ctx context.Context, mt *model.MedicineType) (*model.MedicineType, error) {
	if err := s.typeRepo.Create(ctx, mt); err != nil {
		return nil, err
	}
	return mt, nil
}

func (s *lookupService) UpdateMedicineType(ctx context.Context, id uint, name, description *string) (*model.MedicineType, error) {
	mt, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMedicineTypeNotFound
		}
		return nil, err
	}
	if name != nil {
		mt.Name = *name
	}
	if description != nil {
		mt.Description = *description
	}
	if err := s.typeRepo.Update(ctx, mt); err != nil {
		return nil, err
	}
	return mt, nil
}

func (s *lookupService) DeleteMedicineType(ctx context.Context, id uint) error {
	if _, err := s.typeRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMedicineTypeNotFound
		}
		return err
	}
	return s.typeRepo.Delete(ctx, id)
}

func (s *lookupService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.supplierRepo.List(ctx)
}

func (s *lookupService) CreateSupplier(ctx context.Context, supplier *model.Supplier) (*model.Supplier, error) {
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *lookupService) UpdateSupplier(ctx context.Context, id uint, input UpdateSupplierInput) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSupplierNotFound
		}
		return nil, err
	}
	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.Address != nil {
		supplier.Address = *input.Address
	}
	if input.Phone != nil {
		supplier.Phone = *input.Phone
	}
	if input.Email != nil {
		supplier.Email = *input.Email
	}
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *lookupService) DeleteSupplier(ctx context.Context, id uint) error {
	if _, err := s.supplierRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSupplierNotFound
		}
		return err
	}
	return s.supplierRepo.Delete(ctx, id)
}
