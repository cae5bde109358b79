package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
)

// memState is a snapshot of inventory, cart and audit trail. Transaction
// handles in the fakes below are *memState working copies: commit swaps
// the copy in, rollback discards it, which mirrors what the database
// transaction gives the real repositories.
type memState struct {
	medicines map[uint]model.Medicine
	cart      map[uint]model.CartItem
	logs      []model.StockLog
}

func (s *memState) clone() *memState {
	next := &memState{
		medicines: make(map[uint]model.Medicine, len(s.medicines)),
		cart:      make(map[uint]model.CartItem, len(s.cart)),
		logs:      append([]model.StockLog(nil), s.logs...),
	}
	for id, m := range s.medicines {
		next.medicines[id] = m
	}
	for id, item := range s.cart {
		next.cart[id] = item
	}
	return next
}

// memDB holds committed state; the mutex serializes transactions the way
// row locks serialize concurrent checkouts.
type memDB struct {
	mu    sync.Mutex
	state *memState
}

func newMemDB() *memDB {
	return &memDB{state: &memState{
		medicines: make(map[uint]model.Medicine),
		cart:      make(map[uint]model.CartItem),
	}}
}

// fakeMedicineRepo implements MedicineRepository over memDB.
type fakeMedicineRepo struct{ db *memDB }

func (r *fakeMedicineRepo) Create(ctx context.Context, medicine *model.Medicine) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.state.medicines[medicine.ID] = *medicine
	return nil
}

func (r *fakeMedicineRepo) Update(ctx context.Context, medicine *model.Medicine) error {
	return r.Create(ctx, medicine)
}

func (r *fakeMedicineRepo) FindByID(ctx context.Context, id uint) (*model.Medicine, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.state.medicines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *fakeMedicineRepo) List(ctx context.Context) ([]model.Medicine, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	medicines := make([]model.Medicine, 0, len(r.db.state.medicines))
	for _, m := range r.db.state.medicines {
		medicines = append(medicines, m)
	}
	return medicines, nil
}

func (r *fakeMedicineRepo) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Medicine, error) {
	return nil, nil
}

func (r *fakeMedicineRepo) Delete(ctx context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.state.medicines, id)
	return nil
}

func (r *fakeMedicineRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interface{}) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	work := r.db.state.clone()
	if err := fn(ctx, work); err != nil {
		return err
	}
	r.db.state = work
	return nil
}

func (r *fakeMedicineRepo) FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Medicine, error) {
	st := tx.(*memState)
	m, ok := st.medicines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *fakeMedicineRepo) UpdateQuantityTx(ctx context.Context, tx interface{}, id uint, newQuantity int) error {
	st := tx.(*memState)
	m := st.medicines[id]
	m.Quantity = newQuantity
	st.medicines[id] = m
	return nil
}

// fakeCartRepo implements CartRepository over memDB.
type fakeCartRepo struct{ db *memDB }

func (r *fakeCartRepo) Create(ctx context.Context, item *model.CartItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.state.cart[item.ID] = *item
	return nil
}

func (r *fakeCartRepo) Update(ctx context.Context, item *model.CartItem) error {
	return r.Create(ctx, item)
}

func (r *fakeCartRepo) FindByID(ctx context.Context, id uint) (*model.CartItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item, ok := r.db.state.cart[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakeCartRepo) FindByIDWithMedicine(ctx context.Context, id uint) (*model.CartItem, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeCartRepo) FindByUserAndMedicine(ctx context.Context, userID, medicineID uint) (*model.CartItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, item := range r.db.state.cart {
		if item.UserID == userID && item.MedicineID == medicineID {
			return &item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCartRepo) ListByUser(ctx context.Context, userID uint) ([]model.CartItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return cartOf(r.db.state, userID), nil
}

func (r *fakeCartRepo) Delete(ctx context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.state.cart, id)
	return nil
}

func (r *fakeCartRepo) ListByUserTx(ctx context.Context, tx interface{}, userID uint) ([]model.CartItem, error) {
	return cartOf(tx.(*memState), userID), nil
}

func (r *fakeCartRepo) DeleteTx(ctx context.Context, tx interface{}, id uint) error {
	delete(tx.(*memState).cart, id)
	return nil
}

func cartOf(st *memState, userID uint) []model.CartItem {
	var items []model.CartItem
	for _, item := range st.cart {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items
}

// fakeStockLogRepo implements StockLogRepository over memDB.
type fakeStockLogRepo struct{ db *memDB }

func (r *fakeStockLogRepo) CreateTx(ctx context.Context, tx interface{}, entry *model.StockLog) error {
	st := tx.(*memState)
	entry.ID = uint(len(st.logs) + 1)
	st.logs = append(st.logs, *entry)
	return nil
}

func (r *fakeStockLogRepo) ListByMedicine(ctx context.Context, medicineID uint) ([]model.StockLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var entries []model.StockLog
	for _, entry := range r.db.state.logs {
		if entry.MedicineID == medicineID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func newCheckoutFixture() (*memDB, CheckoutService) {
	db := newMemDB()
	service := NewCheckoutService(
		&fakeMedicineRepo{db: db},
		&fakeCartRepo{db: db},
		&fakeStockLogRepo{db: db},
		nil,
	)
	return db, service
}

func TestCheckoutService_Success(t *testing.T) {
	db, service := newCheckoutFixture()
	db.state.medicines[1] = model.Medicine{ID: 1, Name: "Paracetamol", Quantity: 10, Price: decimal.NewFromFloat(2.50)}
	db.state.medicines[2] = model.Medicine{ID: 2, Name: "Ibuprofen", Quantity: 5, Price: decimal.NewFromFloat(4.00)}
	db.state.cart[1] = model.CartItem{ID: 1, UserID: 1, MedicineID: 1, Quantity: 3}
	db.state.cart[2] = model.CartItem{ID: 2, UserID: 1, MedicineID: 2, Quantity: 2}

	result, err := service.Checkout(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.ItemCount)
	assert.True(t, decimal.NewFromFloat(15.50).Equal(result.Total), "total was %s", result.Total)

	assert.Equal(t, 7, db.state.medicines[1].Quantity)
	assert.Equal(t, 3, db.state.medicines[2].Quantity)
	assert.Empty(t, db.state.cart)

	assert.Len(t, db.state.logs, 2)
	for _, entry := range db.state.logs {
		assert.Equal(t, "checkout", entry.Reason)
		assert.Negative(t, entry.Change)
	}
}

func TestCheckoutService_InsufficientStockChangesNothing(t *testing.T) {
	db, service := newCheckoutFixture()
	db.state.medicines[1] = model.Medicine{ID: 1, Name: "Paracetamol", Quantity: 10, Price: decimal.NewFromFloat(2.50)}
	db.state.medicines[2] = model.Medicine{ID: 2, Name: "Ibuprofen", Quantity: 1, Price: decimal.NewFromFloat(4.00)}
	db.state.cart[1] = model.CartItem{ID: 1, UserID: 1, MedicineID: 1, Quantity: 3}
	db.state.cart[2] = model.CartItem{ID: 2, UserID: 1, MedicineID: 2, Quantity: 2}

	result, err := service.Checkout(context.Background(), 1)

	var stockErr *apperrors.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Ibuprofen", stockErr.Medicine)
	assert.Equal(t, 1, stockErr.Available)
	assert.Nil(t, result)

	// The first line validated fine, but the failure on the second
	// rolled the whole transaction back.
	assert.Equal(t, 10, db.state.medicines[1].Quantity)
	assert.Equal(t, 1, db.state.medicines[2].Quantity)
	assert.Len(t, db.state.cart, 2)
	assert.Empty(t, db.state.logs)
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	db, service := newCheckoutFixture()
	db.state.medicines[1] = model.Medicine{ID: 1, Name: "Paracetamol", Quantity: 10, Price: decimal.NewFromFloat(2.50)}

	result, err := service.Checkout(context.Background(), 1)

	assert.Equal(t, apperrors.ErrEmptyCart, err)
	assert.Nil(t, result)
	assert.Equal(t, 10, db.state.medicines[1].Quantity)
	assert.Empty(t, db.state.logs)
}

func TestCheckoutService_MedicineRemovedFromCatalog(t *testing.T) {
	db, service := newCheckoutFixture()
	db.state.cart[1] = model.CartItem{ID: 1, UserID: 1, MedicineID: 42, Quantity: 1}

	result, err := service.Checkout(context.Background(), 1)

	assert.Equal(t, apperrors.ErrMedicineNotFound, err)
	assert.Nil(t, result)
	assert.Len(t, db.state.cart, 1)
}

func TestCheckoutService_ConcurrentCheckoutsNeverOversell(t *testing.T) {
	db, service := newCheckoutFixture()
	db.state.medicines[1] = model.Medicine{ID: 1, Name: "Paracetamol", Quantity: 5, Price: decimal.NewFromFloat(2.50)}
	db.state.cart[1] = model.CartItem{ID: 1, UserID: 1, MedicineID: 1, Quantity: 3}
	db.state.cart[2] = model.CartItem{ID: 2, UserID: 2, MedicineID: 1, Quantity: 3}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, userID := range []uint{1, 2} {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			_, errs[i] = service.Checkout(context.Background(), userID)
		}(i, userID)
	}
	wg.Wait()

	// 5 units cannot satisfy two orders of 3: exactly one checkout wins.
	var failures int
	for _, err := range errs {
		if err != nil {
			var stockErr *apperrors.InsufficientStockError
			assert.ErrorAs(t, err, &stockErr)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	assert.Equal(t, 2, db.state.medicines[1].Quantity)
	assert.Len(t, db.state.logs, 1)
	assert.Equal(t, -3, db.state.logs[0].Change)
	// The losing user's cart is untouched and can retry later.
	assert.Len(t, db.state.cart, 1)
}
