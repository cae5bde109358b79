package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
)

// MockMedicineRepository is a mock implementation of MedicineRepository.
type MockMedicineRepository struct {
	mock.Mock
}

func (m *MockMedicineRepository) Create(ctx context.Context, medicine *model.Medicine) error {
	args := m.Called(ctx, medicine)
	return args.Error(0)
}

func (m *MockMedicineRepository) Update(ctx context.Context, medicine *model.Medicine) error {
	args := m.Called(ctx, medicine)
	return args.Error(0)
}

func (m *MockMedicineRepository) FindByID(ctx context.Context, id uint) (*model.Medicine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medicine), args.Error(1)
}

func (m *MockMedicineRepository) List(ctx context.Context) ([]model.Medicine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Medicine), args.Error(1)
}

func (m *MockMedicineRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Medicine, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Medicine), args.Error(1)
}

func (m *MockMedicineRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTransaction runs fn directly when the expectation returns nil, so
// tests exercise the real transactional closure.
func (m *MockMedicineRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interface{}) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, &gorm.DB{})
}

func (m *MockMedicineRepository) FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Medicine, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medicine), args.Error(1)
}

func (m *MockMedicineRepository) UpdateQuantityTx(ctx context.Context, tx interface{}, id uint, newQuantity int) error {
	args := m.Called(ctx, tx, id, newQuantity)
	return args.Error(0)
}

// MockStockLogRepository is a mock implementation of StockLogRepository.
type MockStockLogRepository struct {
	mock.Mock
}

func (m *MockStockLogRepository) CreateTx(ctx context.Context, tx interface{}, entry *model.StockLog) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockStockLogRepository) ListByMedicine(ctx context.Context, medicineID uint) ([]model.StockLog, error) {
	args := m.Called(ctx, medicineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StockLog), args.Error(1)
}

// MockMedicineTypeRepository is a mock implementation of MedicineTypeRepository.
type MockMedicineTypeRepository struct {
	mock.Mock
}

func (m *MockMedicineTypeRepository) Create(ctx context.Context, mt *model.MedicineType) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}

func (m *MockMedicineTypeRepository) Update(ctx context.Context, mt *model.MedicineType) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}

func (m *MockMedicineTypeRepository) FindByID(ctx context.Context, id uint) (*model.MedicineType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicineType), args.Error(1)
}

func (m *MockMedicineTypeRepository) List(ctx context.Context) ([]model.MedicineType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MedicineType), args.Error(1)
}

func (m *MockMedicineTypeRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestMedicineService_AdjustQuantity(t *testing.T) {
	tests := []struct {
		name        string
		delta       int
		reason      string
		setupMock   func(*MockMedicineRepository, *MockStockLogRepository)
		expectedQty int
		expectErr   bool
		checkErr    func(*testing.T, error)
	}{
		{
			name:   "restock increases quantity and logs the delta",
			delta:  25,
			reason: "delivery",
			setupMock: func(mRepo *MockMedicineRepository, mLog *MockStockLogRepository) {
				mRepo.On("WithTransaction", mock.Anything).Return(nil)
				mRepo.On("FindByIDForUpdateTx", mock.Anything, mock.Anything, uint(1)).
					Return(&model.Medicine{ID: 1, Name: "Paracetamol", Quantity: 10}, nil)
				mRepo.On("UpdateQuantityTx", mock.Anything, mock.Anything, uint(1), 35).Return(nil)
				mLog.On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(entry *model.StockLog) bool {
					return entry.MedicineID == 1 && entry.Change == 25 && entry.Reason == "delivery"
				})).Return(nil)
			},
			expectedQty: 35,
		},
		{
			name:   "negative delta below zero fails and writes nothing",
			delta:  -11,
			reason: "damage",
			setupMock: func(mRepo *MockMedicineRepository, mLog *MockStockLogRepository) {
				mRepo.On("WithTransaction", mock.Anything).Return(nil)
				mRepo.On("FindByIDForUpdateTx", mock.Anything, mock.Anything, uint(1)).
					Return(&model.Medicine{ID: 1, Name: "Paracetamol", Quantity: 10}, nil)
			},
			expectErr: true,
			checkErr: func(t *testing.T, err error) {
				var stockErr *apperrors.InsufficientStockError
				assert.ErrorAs(t, err, &stockErr)
				assert.Equal(t, "Paracetamol", stockErr.Medicine)
				assert.Equal(t, 10, stockErr.Available)
			},
		},
		{
			name:   "unknown medicine",
			delta:  5,
			reason: "delivery",
			setupMock: func(mRepo *MockMedicineRepository, mLog *MockStockLogRepository) {
				mRepo.On("WithTransaction", mock.Anything).Return(nil)
				mRepo.On("FindByIDForUpdateTx", mock.Anything, mock.Anything, uint(1)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectErr: true,
			checkErr: func(t *testing.T, err error) {
				assert.Equal(t, apperrors.ErrMedicineNotFound, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMedicineRepository)
			mockLog := new(MockStockLogRepository)
			tt.setupMock(mockRepo, mockLog)

			service := NewMedicineService(mockRepo, new(MockMedicineTypeRepository), mockLog, nil)
			newQty, err := service.AdjustQuantity(context.Background(), 1, tt.delta, tt.reason)

			if tt.expectErr {
				assert.Error(t, err)
				tt.checkErr(t, err)
				// No quantity update and no stock log entry on failure.
				mockRepo.AssertNotCalled(t, "UpdateQuantityTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				mockLog.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedQty, newQty)
			}

			mockRepo.AssertExpectations(t)
			mockLog.AssertExpectations(t)
		})
	}
}

func TestMedicineService_CreateRequiresExistingType(t *testing.T) {
	mockRepo := new(MockMedicineRepository)
	mockTypes := new(MockMedicineTypeRepository)
	mockTypes.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewMedicineService(mockRepo, mockTypes, new(MockStockLogRepository), nil)
	medicine, err := service.Create(context.Background(), CreateMedicineInput{
		Name:   "Paracetamol",
		TypeID: 99,
	})

	assert.Equal(t, apperrors.ErrMedicineTypeNotFound, err)
	assert.Nil(t, medicine)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMedicineCacheKey(t *testing.T) {
	assert.Equal(t, "medicine:42", medicineCacheKey(42))
}

func TestMedicineService_StockHistoryUnknownMedicine(t *testing.T) {
	mockRepo := new(MockMedicineRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

	service := NewMedicineService(mockRepo, new(MockMedicineTypeRepository), new(MockStockLogRepository), nil)
	entries, err := service.StockHistory(context.Background(), 7)

	assert.Equal(t, apperrors.ErrMedicineNotFound, err)
	assert.Nil(t, entries)
}
