package services

import (
	"time"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
)

// OccupancyForDate returns the fraction of the property's non-maintenance
// rooms that are booked on the given date. A property with no rooms has an
// occupancy of 0. The value is recomputed on every call; it is a snapshot,
// not a cache.
func OccupancyForDate(propertyID uint, date time.Time) float64 {
	var roomCount int64
	storage.DB.Model(&models.Room{}).
		Where("property_id = ? AND status <> ?", propertyID, models.RoomStatusMaintenance).
		Count(&roomCount)
	if roomCount == 0 {
		return 0
	}

	// A room with overlapping bookings still only counts once.
	var bookedRooms int64
	storage.DB.Model(&models.Booking{}).
		Distinct("room_id").
		Where("property_id = ? AND status <> ? AND check_in <= ? AND check_out > ?",
			propertyID, models.BookingStatusCancelled, date, date).
		Count(&bookedRooms)

	occupancy := float64(bookedRooms) / float64(roomCount)
	if occupancy > 1 {
		occupancy = 1
	}
	return occupancy
}
