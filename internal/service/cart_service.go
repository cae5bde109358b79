package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
	"apoteka/internal/repository"
)

// CartService manages a user's pending reservations. Availability is
// not checked here: a cart may exceed momentarily available stock and
// the conflict resolves at checkout.
type CartService interface {
	AddItem(ctx context.Context, userID, medicineID uint, quantity int) (*model.CartItem, error)
	ListItems(ctx context.Context, userID uint) ([]model.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID uint) error
}

type cartService struct {
	cartRepo     repository.CartRepository
	medicineRepo repository.MedicineRepository
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, medicineRepo repository.MedicineRepository) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		medicineRepo: medicineRepo,
	}
}

// AddItem puts quantity units of a medicine into the user's cart. If a
// row for (user, medicine) already exists its quantity is incremented;
// the cart never holds two rows for the same medicine.
func (s *cartService) AddItem(ctx context.Context, userID, medicineID uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, apperrors.ErrInvalidQuantity
	}

	if _, err := s.medicineRepo.FindByID(ctx, medicineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMedicineNotFound
		}
		return nil, err
	}

	existing, err := s.cartRepo.FindByUserAndMedicine(ctx, userID, medicineID)
	switch {
	case err == nil:
		existing.Quantity += quantity
		if err := s.cartRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update cart item: %w", err)
		}
		return s.cartRepo.FindByIDWithMedicine(ctx, existing.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &model.CartItem{
			UserID:     userID,
			MedicineID: medicineID,
			Quantity:   quantity,
		}
		if err := s.cartRepo.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("create cart item: %w", err)
		}
		return s.cartRepo.FindByIDWithMedicine(ctx, item.ID)
	default:
		return nil, err
	}
}

// ListItems returns the user's cart in insertion order.
func (s *cartService) ListItems(ctx context.Context, userID uint) ([]model.CartItem, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

// RemoveItem deletes a cart row. A row that does not exist or belongs
// to another user is the same not-found to the caller.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCartItemNotFound
		}
		return err
	}
	if item.UserID != userID {
		return apperrors.ErrCartItemNotFound
	}
	return s.cartRepo.Delete(ctx, itemID)
}
