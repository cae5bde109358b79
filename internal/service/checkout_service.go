package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"apoteka/internal/cache"
	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
	"apoteka/internal/repository"
)

// checkoutReason is the audit trail reason for checkout decrements.
const checkoutReason = "checkout"

// CheckoutResult summarizes a successful checkout.
type CheckoutResult struct {
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// CheckoutService commits a cart against inventory. The whole flow runs
// in one transaction: either every line is decremented, logged and
// drained, or nothing changes at all.
type CheckoutService interface {
	Checkout(ctx context.Context, userID uint) (*CheckoutResult, error)
}

type checkoutService struct {
	medicineRepo repository.MedicineRepository
	cartRepo     repository.CartRepository
	stockLogRepo repository.StockLogRepository
	cache        *cache.Client
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	medicineRepo repository.MedicineRepository,
	cartRepo repository.CartRepository,
	stockLogRepo repository.StockLogRepository,
	cache *cache.Client,
) CheckoutService {
	return &checkoutService{
		medicineRepo: medicineRepo,
		cartRepo:     cartRepo,
		stockLogRepo: stockLogRepo,
		cache:        cache,
	}
}

// Checkout validates and commits the user's cart atomically. Medicine
// rows are locked FOR UPDATE in ascending id order, so two checkouts
// sharing two or more medicines always acquire locks in the same order
// and cannot deadlock. Validation runs over every line before any
// mutation; a concurrent checkout that drained the stock first is seen
// here because the lock read returns the committed quantity.
func (s *checkoutService) Checkout(ctx context.Context, userID uint) (*CheckoutResult, error) {
	result := &CheckoutResult{Total: decimal.Zero}
	var touched []string

	err := s.medicineRepo.WithTransaction(ctx, func(ctx context.Context, tx interface{}) error {
		items, err := s.cartRepo.ListByUserTx(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(items) == 0 {
			return apperrors.ErrEmptyCart
		}

		sort.Slice(items, func(i, j int) bool {
			return items[i].MedicineID < items[j].MedicineID
		})

		// Phase 1: lock and validate every line. No writes yet, so an
		// abort here rolls back to exactly the pre-call state.
		medicines := make(map[uint]*model.Medicine, len(items))
		for _, item := range items {
			medicine, err := s.medicineRepo.FindByIDForUpdateTx(ctx, tx, item.MedicineID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrMedicineNotFound
				}
				return fmt.Errorf("lock medicine %d: %w", item.MedicineID, err)
			}
			if medicine.Quantity < item.Quantity {
				return &apperrors.InsufficientStockError{
					Medicine:  medicine.Name,
					Available: medicine.Quantity,
				}
			}
			medicines[item.MedicineID] = medicine
		}

		// Phase 2: every line validated; decrement, log and drain.
		for _, item := range items {
			medicine := medicines[item.MedicineID]
			if err := s.medicineRepo.UpdateQuantityTx(ctx, tx, medicine.ID, medicine.Quantity-item.Quantity); err != nil {
				return fmt.Errorf("decrement medicine %d: %w", medicine.ID, err)
			}
			if err := s.stockLogRepo.CreateTx(ctx, tx, &model.StockLog{
				MedicineID: medicine.ID,
				Change:     -item.Quantity,
				Reason:     checkoutReason,
			}); err != nil {
				return fmt.Errorf("log stock change: %w", err)
			}
			if err := s.cartRepo.DeleteTx(ctx, tx, item.ID); err != nil {
				return fmt.Errorf("drain cart item %d: %w", item.ID, err)
			}

			result.ItemCount++
			result.Total = result.Total.Add(
				medicine.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			touched = append(touched, medicineCacheKey(medicine.ID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, touched...)
	return result, nil
}
