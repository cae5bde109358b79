package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// queryRecorder captures the SQL a DryRun session generates, so tests
// can pin the statements the repository emits without a database.
type queryRecorder struct {
	queries []string
}

func (r *queryRecorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *queryRecorder) Info(context.Context, string, ...interface{}) {}

func (r *queryRecorder) Warn(context.Context, string, ...interface{}) {}

func (r *queryRecorder) Error(context.Context, string, ...interface{}) {}
func (r *queryRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, _ := fc()
	r.queries = append(r.queries, sql)
}

func newDryRunDB(t *testing.T, rec *queryRecorder) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:password@tcp(localhost:3306)/pharmacy?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, Logger: rec, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestMedicineRepository_FindByIDForUpdateTxLocksRow(t *testing.T) {
	rec := &queryRecorder{}
	db := newDryRunDB(t, rec)
	repo := NewMedicineRepository(db)

	_, _ = repo.FindByIDForUpdateTx(context.Background(), db, 1)

	// The lock read must carry FOR UPDATE; without it two concurrent
	// checkouts can both validate against the same stale quantity.
	assert.NotEmpty(t, rec.queries)
	last := rec.queries[len(rec.queries)-1]
	assert.Contains(t, last, "SELECT")
	assert.Contains(t, last, "FOR UPDATE")
}

func TestMedicineRepository_UpdateQuantityTxTargetsQuantityColumn(t *testing.T) {
	rec := &queryRecorder{}
	db := newDryRunDB(t, rec)
	repo := NewMedicineRepository(db)

	_ = repo.UpdateQuantityTx(context.Background(), db, 1, 7)

	assert.NotEmpty(t, rec.queries)
	last := rec.queries[len(rec.queries)-1]
	assert.Contains(t, last, "UPDATE")
	assert.Contains(t, last, "quantity")
}
