package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"apoteka/internal/model"
)

// MedicineRepository defines medicine persistence operations. The Tx
// variants take the transaction handle produced by WithTransaction so
// checkout can lock and mutate rows across repositories atomically.
type MedicineRepository interface {
	Create(ctx context.Context, medicine *model.Medicine) error
	Update(ctx context.Context, medicine *model.Medicine) error
	FindByID(ctx context.Context, id uint) (*model.Medicine, error)
	List(ctx context.Context) ([]model.Medicine, error)
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Medicine, error)
	Delete(ctx context.Context, id uint) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interface{}) error) error
	FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Medicine, error)
	UpdateQuantityTx(ctx context.Context, tx interface{}, id uint, newQuantity int) error
}

type medicineRepository struct {
	db *gorm.DB
}

// NewMedicineRepository creates a new medicine repository.
func NewMedicineRepository(db *gorm.DB) MedicineRepository {
	return &medicineRepository{db: db}
}

func (r *medicineRepository) Create(ctx context.Context, medicine *model.Medicine) error {
	return r.db.WithContext(ctx).Create(medicine).Error
}

func (r *medicineRepository) Update(ctx context.Context, medicine *model.Medicine) error {
	return r.db.WithContext(ctx).Save(medicine).Error
}

func (r *medicineRepository) FindByID(ctx context.Context, id uint) (*model.Medicine, error) {
	var medicine model.Medicine
	if err := r.db.WithContext(ctx).Preload("Type").Preload("Supplier").
		First(&medicine, id).Error; err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *medicineRepository) List(ctx context.Context) ([]model.Medicine, error) {
	var medicines []model.Medicine
	if err := r.db.WithContext(ctx).Preload("Type").Preload("Supplier").
		Order("id").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

func (r *medicineRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Medicine, error) {
	var medicines []model.Medicine
	if err := r.db.WithContext(ctx).
		Where("expiration_date IS NOT NULL AND expiration_date BETWEEN ? AND ?", from, to).
		Order("expiration_date").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// Delete removes the medicine; its cart rows and stock logs cascade.
func (r *medicineRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select("StockLogs", "CartItems").
		Delete(&model.Medicine{ID: id}).Error
}

// WithTransaction executes fn inside a database transaction. The tx
// handle passed to fn is accepted by every *Tx repository method, on
// this and the other repositories.
func (r *medicineRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interface{}) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, tx)
	})
}

// FindByIDForUpdateTx fetches a medicine under a row-level write lock.
// The lock is held until the surrounding transaction commits or rolls
// back, serializing concurrent checkouts on the same medicine.
func (r *medicineRepository) FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Medicine, error) {
	txDB := tx.(*gorm.DB)
	var medicine model.Medicine
	if err := txDB.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&medicine, id).Error; err != nil {
		return nil, err
	}
	return &medicine, nil
}

// UpdateQuantityTx sets the quantity within a transaction.
func (r *medicineRepository) UpdateQuantityTx(ctx context.Context, tx interface{}, id uint, newQuantity int) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Model(&model.Medicine{}).
		Where("id = ?", id).
		Update("quantity", newQuantity).Error
}
