package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/routes"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/services"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/utils"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key, Idempotency-Key")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	properties := app.Party("/api/properties")
	{
		properties.Post("/", routes.CreateProperty)
		properties.Get("/", routes.GetProperties)
		properties.Get("/{id}", routes.GetProperty)
		properties.Patch("/{id}", routes.UpdateProperty)
		properties.Delete("/{id}", routes.DeleteProperty)
		properties.Get("/{id}/rooms", routes.GetRoomsByProperty)
		properties.Get("/{id}/bookings", routes.GetBookingsByProperty)
		properties.Get("/{id}/rules", routes.GetPricingRules)
	}

	rooms := app.Party("/api/rooms")
	{
		rooms.Post("/", routes.CreateRoom)
		rooms.Patch("/{id}", routes.UpdateRoom)
		rooms.Get("/{id}/history", routes.GetRoomPriceHistory)
	}

	bookings := app.Party("/api/bookings")
	{
		bookings.Post("/", routes.CreateBooking)
		bookings.Post("/{id}/cancel", routes.CancelBooking)
	}

	calendar := app.Party("/api/calendar")
	{
		calendar.Post("/connections", routes.CreateCalendarConnection)
		calendar.Get("/connections", routes.GetCalendarConnections)
		calendar.Delete("/connections/{id}", routes.DeleteCalendarConnection)
		calendar.Post("/sync", routes.TriggerCalendarSync)
	}

	pricing := app.Party("/api/pricing")
	{
		pricing.Post("/execute", routes.ExecutePricing)
		pricing.Get("/cron", utils.CronSecretMiddleware, routes.CronPricing)
		pricing.Post("/rules", routes.CreatePricingRule)
		pricing.Delete("/rules/{id}", routes.DeletePricingRule)
	}

	insights := app.Party("/api/insights")
	{
		insights.Get("/pricing/{propertyID}", routes.GetPricingSuggestions)
		insights.Post("/approve", routes.ApproveInsight)
	}

	webhooks := app.Party("/api/webhooks", utils.APIKeyMiddleware)
	{
		webhooks.Post("/bookings", routes.WebhookCreateBooking)
		webhooks.Post("/bookings/cancel", routes.WebhookCancelBooking)
	}

	settings := app.Party("/api/settings")
	{
		settings.Get("/", routes.GetSystemSettings)
		settings.Put("/", routes.UpsertSystemSetting)
	}

	if scheduler := services.StartScheduler(); scheduler != nil {
		log.Println("in-process scheduler started")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	app.Listen(":" + port)
}
