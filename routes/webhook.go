package routes

import (
	"context"
	"math"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/utils"
)

var webhookCtx = context.Background()

type WebhookBookingInput struct {
	PropertyID uint      `json:"propertyID" validate:"required"`
	RoomID     uint      `json:"roomID" validate:"required"`
	ExternalID string    `json:"externalID" validate:"required"`
	GuestName  string    `json:"guestName"`
	CheckIn    time.Time `json:"checkIn" validate:"required"`
	CheckOut   time.Time `json:"checkOut" validate:"required"`
	TotalPaid  float64   `json:"totalPaid" validate:"min=0"`
}

type WebhookCancelInput struct {
	ExternalID string `json:"externalID" validate:"required"`
}

// WebhookCreateBooking lets an integration push a booking. Deliveries are
// deduplicated by external id, and an Idempotency-Key header short-circuits
// retried deliveries without touching the database.
func WebhookCreateBooking(ctx iris.Context) {
	if replayed(ctx) {
		ctx.JSON(iris.Map{"status": "duplicate_delivery"})
		return
	}

	var input WebhookBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !input.CheckIn.Before(input.CheckOut) {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_dates", "checkOut must be after checkIn")
		return
	}

	var room models.Room
	if result := storage.DB.Where("id = ? AND property_id = ?", input.RoomID, input.PropertyID).First(&room); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}

	// A delivery re-sent with a known external id is a no-op.
	var existing models.Booking
	if err := storage.DB.Where("property_id = ? AND external_id = ?", input.PropertyID, input.ExternalID).
		First(&existing).Error; err == nil {
		ctx.JSON(existing)
		return
	}

	if roomHasOverlap(room.ID, input.CheckIn, input.CheckOut) {
		utils.CreateConflict(ctx, "requested dates conflict with an existing booking")
		return
	}

	nights := int(math.Ceil(input.CheckOut.Sub(input.CheckIn).Seconds() / 86400))
	var amount float64
	if room.CurrentPrice != nil {
		amount = *room.CurrentPrice * float64(nights)
	}

	externalID := input.ExternalID
	booking := models.Booking{
		RoomID:      room.ID,
		PropertyID:  input.PropertyID,
		GuestName:   input.GuestName,
		CheckIn:     input.CheckIn,
		CheckOut:    input.CheckOut,
		Nights:      nights,
		Status:      models.BookingStatusConfirmed,
		Source:      models.BookingSourceWebhook,
		ExternalID:  &externalID,
		TotalAmount: amount,
		TotalPaid:   input.TotalPaid,
	}
	if result := storage.DB.Create(&booking); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	rememberDelivery(ctx)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

// WebhookCancelBooking cancels a previously pushed booking by external id.
func WebhookCancelBooking(ctx iris.Context) {
	var input WebhookCancelInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if result := storage.DB.Where("external_id = ?", input.ExternalID).First(&booking); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if booking.Status != models.BookingStatusCancelled {
		if result := storage.DB.Model(&booking).Update("status", models.BookingStatusCancelled); result.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		releaseRoomIfFree(booking.RoomID)
	}
	ctx.JSON(booking)
}

func replayed(ctx iris.Context) bool {
	key := ctx.GetHeader("Idempotency-Key")
	if key == "" || storage.Redis == nil {
		return false
	}
	seen, err := storage.Redis.Get(webhookCtx, "webhook:idem:"+key).Result()
	return err == nil && seen != ""
}

func rememberDelivery(ctx iris.Context) {
	key := ctx.GetHeader("Idempotency-Key")
	if key == "" || storage.Redis == nil {
		return
	}
	storage.Redis.Set(webhookCtx, "webhook:idem:"+key, "1", 24*time.Hour)
}
