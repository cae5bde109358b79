package repository

import (
	"context"

	"gorm.io/gorm"

	"apoteka/internal/model"
)

// CartRepository defines cart persistence operations. The Tx variants
// run against the transaction handle from MedicineRepository's
// WithTransaction so checkout can drain the cart atomically with the
// inventory decrements.
type CartRepository interface {
	Create(ctx context.Context, item *model.CartItem) error
	Update(ctx context.Context, item *model.CartItem) error
	FindByID(ctx context.Context, id uint) (*model.CartItem, error)
	FindByIDWithMedicine(ctx context.Context, id uint) (*model.CartItem, error)
	FindByUserAndMedicine(ctx context.Context, userID, medicineID uint) (*model.CartItem, error)
	ListByUser(ctx context.Context, userID uint) ([]model.CartItem, error)
	Delete(ctx context.Context, id uint) error
	// Transaction methods
	ListByUserTx(ctx context.Context, tx interface{}, userID uint) ([]model.CartItem, error)
	DeleteTx(ctx context.Context, tx interface{}, id uint) error
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepository) Update(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartRepository) FindByID(ctx context.Context, id uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindByIDWithMedicine(ctx context.Context, id uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.WithContext(ctx).Preload("Medicine").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindByUserAndMedicine(ctx context.Context, userID, medicineID uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND medicine_id = ?", userID, medicineID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByUser returns the user's cart in insertion order with medicine
// details attached.
func (r *cartRepository) ListByUser(ctx context.Context, userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := r.db.WithContext(ctx).Preload("Medicine").
		Where("user_id = ?", userID).
		Order("added_at, id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.CartItem{}, id).Error
}

// ListByUserTx reads the cart inside a transaction.
func (r *cartRepository) ListByUserTx(ctx context.Context, tx interface{}, userID uint) ([]model.CartItem, error) {
	txDB := tx.(*gorm.DB)
	var items []model.CartItem
	if err := txDB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at, id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteTx removes a cart row inside a transaction.
func (r *cartRepository) DeleteTx(ctx context.Context, tx interface{}, id uint) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Delete(&model.CartItem{}, id).Error
}
