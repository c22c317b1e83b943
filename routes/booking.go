package routes

import (
	"math"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/utils"
)

type CreateBookingInput struct {
	RoomID     uint      `json:"roomID" validate:"required"`
	GuestName  string    `json:"guestName" validate:"required"`
	GuestEmail string    `json:"guestEmail" validate:"omitempty,email"`
	CheckIn    time.Time `json:"checkIn" validate:"required"`
	CheckOut   time.Time `json:"checkOut" validate:"required"`
	TotalPaid  float64   `json:"totalPaid" validate:"min=0"`
}

func CreateBooking(ctx iris.Context) {
	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !input.CheckIn.Before(input.CheckOut) {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_dates", "checkOut must be after checkIn")
		return
	}

	var room models.Room
	if result := storage.DB.First(&room, input.RoomID); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if conflict := roomHasOverlap(room.ID, input.CheckIn, input.CheckOut); conflict {
		utils.CreateConflict(ctx, "room is already booked for part of the requested dates")
		return
	}

	nights := int(math.Ceil(input.CheckOut.Sub(input.CheckIn).Seconds() / 86400))
	var amount float64
	if room.CurrentPrice != nil {
		amount = *room.CurrentPrice * float64(nights)
	}

	booking := models.Booking{
		RoomID:      room.ID,
		PropertyID:  room.PropertyID,
		GuestName:   input.GuestName,
		GuestEmail:  input.GuestEmail,
		CheckIn:     input.CheckIn,
		CheckOut:    input.CheckOut,
		Nights:      nights,
		Status:      models.BookingStatusConfirmed,
		Source:      models.BookingSourceDirect,
		TotalAmount: amount,
		TotalPaid:   input.TotalPaid,
	}
	if result := storage.DB.Create(&booking); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.Model(&room).Update("status", models.RoomStatusOccupied)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

func GetBookingsByProperty(ctx iris.Context) {
	propertyID, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid property ID")
		return
	}

	query := storage.DB.Where("property_id = ?", propertyID)

	// Optional half-open date-range filter.
	if from := ctx.URLParam("from"); from != "" {
		fromDate, parseErr := time.Parse("2006-01-02", from)
		if parseErr != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid from date")
			return
		}
		query = query.Where("check_out > ?", fromDate)
	}
	if to := ctx.URLParam("to"); to != "" {
		toDate, parseErr := time.Parse("2006-01-02", to)
		if parseErr != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid to date")
			return
		}
		query = query.Where("check_in < ?", toDate)
	}

	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := ctx.URLParamIntDefault("per_page", 50)
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	var total int64
	if result := query.Model(&models.Booking{}).Count(&total); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var bookings []models.Booking
	result := query.Order("check_in ASC").Offset((page - 1) * perPage).Limit(perPage).Find(&bookings)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, bookings, page, perPage, total)
}

func CancelBooking(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid booking ID")
		return
	}
	var booking models.Booking
	if result := storage.DB.First(&booking, id); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if booking.Status == models.BookingStatusCancelled {
		ctx.JSON(booking)
		return
	}

	if result := storage.DB.Model(&booking).Update("status", models.BookingStatusCancelled); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	releaseRoomIfFree(booking.RoomID)
	ctx.JSON(booking)
}

// releaseRoomIfFree flips an occupied room back to available once its last
// non-cancelled booking is gone, so the room can be picked as a sync target
// again. Maintenance status is never touched here.
func releaseRoomIfFree(roomID uint) {
	var remaining int64
	storage.DB.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ?", roomID, models.BookingStatusCancelled).
		Count(&remaining)
	if remaining > 0 {
		return
	}
	storage.DB.Model(&models.Room{}).
		Where("id = ? AND status = ?", roomID, models.RoomStatusOccupied).
		Update("status", models.RoomStatusAvailable)
}

// roomHasOverlap checks the half-open interval [checkIn, checkOut) against
// the room's non-cancelled bookings.
func roomHasOverlap(roomID uint, checkIn, checkOut time.Time) bool {
	var count int64
	storage.DB.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ? AND check_in < ? AND ? < check_out",
			roomID, models.BookingStatusCancelled, checkOut, checkIn).
		Count(&count)
	return count > 0
}
