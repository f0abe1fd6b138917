// Package testdb provides sqlite-backed gorm databases for tests.
//
// Every call creates a database file in the test's temp directory, so tests
// never share state. The connection is closed when the test completes.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.New(t)
//	    repo, err := repository.NewGormLeaveEventRepository(db)
//	    ...
//	}
package testdb

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens an isolated sqlite database for a single test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "leave_calendar_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testdb: failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("testdb: failed to get sql.DB: %v", err)
	}
	// sqlite пишет только одним соединением
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
