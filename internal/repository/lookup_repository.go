package repository

import (
	"context"

	"gorm.io/gorm"

	"apoteka/internal/model"
)

// MedicineTypeRepository defines medicine type lookup persistence.
type MedicineTypeRepository interface {
	Create(ctx context.Context, mt *model.MedicineType) error
	Update(ctx context.Context, mt *model.MedicineType) error
	FindByID(ctx context.Context, id uint) (*model.MedicineType, error)
	List(ctx context.Context) ([]model.MedicineType, error)
	Delete(ctx context.Context, id uint) error
}

type medicineTypeRepository struct {
	db *gorm.DB
}

// NewMedicineTypeRepository creates a new medicine type repository.
func NewMedicineTypeRepository(db *gorm.DB) MedicineTypeRepository {
	return &medicineTypeRepository{db: db}
}

func (r *medicineTypeRepository) Create(ctx context.Context, mt *model.MedicineType) error {
	return r.db.WithContext(ctx).Create(mt).Error
}

func (r *medicineTypeRepository) Update(ctx context.Context, mt *model.MedicineType) error {
	return r.db.WithContext(ctx).Save(mt).Error
}

func (r *medicineTypeRepository) FindByID(ctx context.Context, id uint) (*model.MedicineType, error) {
	var mt model.MedicineType
	if err := r.db.WithContext(ctx).First(&mt, id).Error; err != nil {
		return nil, err
	}
	return &mt, nil
}

func (r *medicineTypeRepository) List(ctx context.Context) ([]model.MedicineType, error) {
	var types []model.MedicineType
	if err := r.db.WithContext(ctx).Order("name").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *medicineTypeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.MedicineType{}, id).Error
}

// SupplierRepository defines supplier lookup persistence.
type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	Update(ctx context.Context, s *model.Supplier) error
	FindByID(ctx context.Context, id uint) (*model.Supplier, error)
	List(ctx context.Context) ([]model.Supplier, error)
	Delete(ctx context.Context, id uint) error
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository.
func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplierRepository) Update(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supplierRepository) FindByID(ctx context.Context, id uint) (*model.Supplier, error) {
	var s model.Supplier
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *supplierRepository) List(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if err := r.db.WithContext(ctx).Order("name").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *supplierRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Supplier{}, id).Error
}
