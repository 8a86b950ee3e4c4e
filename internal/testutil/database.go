// Package testutil provides test helpers: an in-memory database, fixture
// constructors, and assertions over the service error taxonomy.
package testutil

import (
	"fmt"
	"testing"

	"grana/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels lists every GORM model migrated into test databases.
var allModels = []interface{}{
	&models.User{},
	&models.Category{},
	&models.Transaction{},
	&models.MonthlyBudget{},
}

// SetupTestDB opens a private in-memory SQLite database with the full
// schema migrated. Each call gets its own named database; cache=shared
// keeps it visible across the connections of the pool.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", nextID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
