package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
)

// setupTestDB swaps storage.DB for an in-memory sqlite database with the
// full schema. Tests run sequentially, so a plain :memory: handle is fine.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Property{},
		&models.Room{},
		&models.Booking{},
		&models.CalendarConnection{},
		&models.PricingRule{},
		&models.PriceHistory{},
		&models.SystemSetting{},
	))
	storage.DB = db
	return db
}

func boolPtr(b bool) *bool        { return &b }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
