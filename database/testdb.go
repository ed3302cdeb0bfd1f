package database

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter uint64

// NewTestDB returns a migrated, private in-memory sqlite database that is
// closed when the test ends.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	// Each test gets its own named shared-cache memory DB so every pooled
	// connection sees the same tables without leaking across tests.
	id := atomic.AddUint64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:dormaid_test_%d?mode=memory&cache=shared", id)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("NewTestDB: open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("NewTestDB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("NewTestDB: %v", err)
	}
	return db
}
