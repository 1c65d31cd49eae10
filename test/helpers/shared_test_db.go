package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/fueleu-go/internal/adapters/persistence"
	"github.com/andrescamacho/fueleu-go/internal/infrastructure/database"
)

// SharedTestDB is opened once per BDD run and emptied between scenarios
var SharedTestDB *gorm.DB

// InitializeSharedTestDB opens and migrates SharedTestDB
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables deletes every row of every model, members before pools
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	models := persistence.AllModels()
	for i := len(models) - 1; i >= 0; i-- {
		err := SharedTestDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(models[i]).Error
		if err != nil {
			return fmt.Errorf("failed to truncate %T: %w", models[i], err)
		}
	}
	return nil
}

// CloseSharedTestDB closes SharedTestDB if it was opened
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	err := database.Close(SharedTestDB)
	SharedTestDB = nil
	return err
}
