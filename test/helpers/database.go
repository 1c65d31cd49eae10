package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/fueleu-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed when the test ends
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return db
}
