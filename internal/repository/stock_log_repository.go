package repository

import (
	"context"

	"gorm.io/gorm"

	"apoteka/internal/model"
)

// StockLogRepository defines stock audit trail persistence. The trail is
// append-only; there are no update or delete operations.
type StockLogRepository interface {
	CreateTx(ctx context.Context, tx interface{}, entry *model.StockLog) error
	ListByMedicine(ctx context.Context, medicineID uint) ([]model.StockLog, error)
}

type stockLogRepository struct {
	db *gorm.DB
}

// NewStockLogRepository creates a new stock log repository.
func NewStockLogRepository(db *gorm.DB) StockLogRepository {
	return &stockLogRepository{db: db}
}

// CreateTx appends an entry within a transaction. Entries are only ever
// written alongside the quantity change they describe, so a rollback
// discards both together.
func (r *stockLogRepository) CreateTx(ctx context.Context, tx interface{}, entry *model.StockLog) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Create(entry).Error
}

func (r *stockLogRepository) ListByMedicine(ctx context.Context, medicineID uint) ([]model.StockLog, error) {
	var entries []model.StockLog
	if err := r.db.WithContext(ctx).Where("medicine_id = ?", medicineID).
		Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
