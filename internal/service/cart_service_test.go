package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
)

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Update(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uint) (*model.CartItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindByIDWithMedicine(ctx context.Context, id uint) (*model.CartItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindByUserAndMedicine(ctx context.Context, userID, medicineID uint) (*model.CartItem, error) {
	args := m.Called(ctx, userID, medicineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID uint) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) ListByUserTx(ctx context.Context, tx interface{}, userID uint) ([]model.CartItem, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *MockCartRepository) DeleteTx(ctx context.Context, tx interface{}, id uint) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func TestCartService_AddItemIncrementsExistingRow(t *testing.T) {
	mockCart := new(MockCartRepository)
	mockMedicine := new(MockMedicineRepository)

	mockMedicine.On("FindByID", mock.Anything, uint(3)).
		Return(&model.Medicine{ID: 3, Name: "Ibuprofen", Quantity: 100}, nil)
	mockCart.On("FindByUserAndMedicine", mock.Anything, uint(1), uint(3)).
		Return(&model.CartItem{ID: 9, UserID: 1, MedicineID: 3, Quantity: 2}, nil)
	mockCart.On("Update", mock.Anything, mock.MatchedBy(func(item *model.CartItem) bool {
		// 2 already in the cart plus 3 more collapses into one row of 5.
		return item.ID == 9 && item.Quantity == 5
	})).Return(nil)
	mockCart.On("FindByIDWithMedicine", mock.Anything, uint(9)).
		Return(&model.CartItem{ID: 9, UserID: 1, MedicineID: 3, Quantity: 5}, nil)

	service := NewCartService(mockCart, mockMedicine)
	item, err := service.AddItem(context.Background(), 1, 3, 3)

	assert.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	mockCart.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockCart.AssertExpectations(t)
}

func TestCartService_AddItemCreatesNewRow(t *testing.T) {
	mockCart := new(MockCartRepository)
	mockMedicine := new(MockMedicineRepository)

	mockMedicine.On("FindByID", mock.Anything, uint(3)).
		Return(&model.Medicine{ID: 3, Name: "Ibuprofen", Quantity: 100}, nil)
	mockCart.On("FindByUserAndMedicine", mock.Anything, uint(1), uint(3)).
		Return(nil, gorm.ErrRecordNotFound)
	mockCart.On("Create", mock.Anything, mock.MatchedBy(func(item *model.CartItem) bool {
		return item.UserID == 1 && item.MedicineID == 3 && item.Quantity == 2
	})).Return(nil)
	mockCart.On("FindByIDWithMedicine", mock.Anything, mock.Anything).
		Return(&model.CartItem{UserID: 1, MedicineID: 3, Quantity: 2}, nil)

	service := NewCartService(mockCart, mockMedicine)
	item, err := service.AddItem(context.Background(), 1, 3, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	mockCart.AssertExpectations(t)
}

func TestCartService_AddItemValidation(t *testing.T) {
	mockCart := new(MockCartRepository)
	mockMedicine := new(MockMedicineRepository)
	service := NewCartService(mockCart, mockMedicine)

	t.Run("quantity below one", func(t *testing.T) {
		_, err := service.AddItem(context.Background(), 1, 3, 0)
		assert.Equal(t, apperrors.ErrInvalidQuantity, err)
	})

	t.Run("unknown medicine", func(t *testing.T) {
		mockMedicine.On("FindByID", mock.Anything, uint(404)).
			Return(nil, gorm.ErrRecordNotFound)
		_, err := service.AddItem(context.Background(), 1, 404, 2)
		assert.Equal(t, apperrors.ErrMedicineNotFound, err)
	})

	mockCart.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCartService_RemoveItem(t *testing.T) {
	t.Run("removes own item", func(t *testing.T) {
		mockCart := new(MockCartRepository)
		mockCart.On("FindByID", mock.Anything, uint(9)).
			Return(&model.CartItem{ID: 9, UserID: 1}, nil)
		mockCart.On("Delete", mock.Anything, uint(9)).Return(nil)

		service := NewCartService(mockCart, new(MockMedicineRepository))
		assert.NoError(t, service.RemoveItem(context.Background(), 1, 9))
		mockCart.AssertExpectations(t)
	})

	t.Run("another user's item reads as not found", func(t *testing.T) {
		mockCart := new(MockCartRepository)
		mockCart.On("FindByID", mock.Anything, uint(9)).
			Return(&model.CartItem{ID: 9, UserID: 2}, nil)

		service := NewCartService(mockCart, new(MockMedicineRepository))
		err := service.RemoveItem(context.Background(), 1, 9)
		assert.Equal(t, apperrors.ErrCartItemNotFound, err)
		mockCart.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing item", func(t *testing.T) {
		mockCart := new(MockCartRepository)
		mockCart.On("FindByID", mock.Anything, uint(9)).
			Return(nil, gorm.ErrRecordNotFound)

		service := NewCartService(mockCart, new(MockMedicineRepository))
		err := service.RemoveItem(context.Background(), 1, 9)
		assert.Equal(t, apperrors.ErrCartItemNotFound, err)
	})
}
