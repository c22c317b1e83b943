package storage

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.Property{},
		&models.Room{},
		&models.Booking{},
		&models.CalendarConnection{},
		&models.PricingRule{},
		&models.PriceHistory{},
		&models.SystemSetting{},
		&models.APIKey{},
		&models.AuditLog{},
	)
}

func InitializeDB() {
	db := connectToDB()
	performMigrations(db)
	seedDefaultSettings(db)
}

// seedDefaultSettings inserts the pricing knobs the engine reads so a fresh
// database behaves sensibly before anyone touches the settings API.
func seedDefaultSettings(db *gorm.DB) {
	defaults := map[string]string{
		models.SettingFloorPrice:            "0",
		models.SettingCeilingPrice:          "0",
		models.SettingSurgeMultiplier:       "1.2",
		models.SettingSurgeEnabled:          "true",
		models.SettingDynamicPricingEnabled: "true",
	}
	for key, value := range defaults {
		var existing models.SystemSetting
		if err := db.Where("key = ?", key).First(&existing).Error; err != nil {
			db.Create(&models.SystemSetting{Key: key, Value: value})
		}
	}
}
