package routes

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/utils"
)

// buildTestApp creates a minimal Iris app with the API routes backed by an
// in-memory sqlite database.
func buildTestApp(t *testing.T) *iris.Application {
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
		&models.APIKey{},
		&models.AuditLog{},
	))
	storage.DB = db

	app := iris.New()
	app.Validator = validator.New()

	properties := app.Party("/api/properties")
	{
		properties.Post("/", CreateProperty)
		properties.Get("/{id}/bookings", GetBookingsByProperty)
	}
	bookings := app.Party("/api/bookings")
	{
		bookings.Post("/", CreateBooking)
		bookings.Post("/{id}/cancel", CancelBooking)
	}
	pricing := app.Party("/api/pricing")
	{
		pricing.Post("/execute", ExecutePricing)
		pricing.Get("/cron", utils.CronSecretMiddleware, CronPricing)
	}
	webhooks := app.Party("/api/webhooks", utils.APIKeyMiddleware)
	{
		webhooks.Post("/bookings", WebhookCreateBooking)
	}

	require.NoError(t, app.Build())
	return app
}
