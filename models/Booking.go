package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCancelled  = "cancelled"
)

const (
	BookingSourceDirect  = "direct"
	BookingSourceWebhook = "webhook"
	BookingSourceICal    = "ical"
)

// Booking dates form a half-open interval: check-in inclusive, check-out exclusive.
type Booking struct {
	gorm.Model
	RoomID      uint      `json:"roomID" gorm:"not null;index"`
	PropertyID  uint      `json:"propertyID" gorm:"not null;index"`
	GuestName   string    `json:"guestName"`
	GuestEmail  string    `json:"guestEmail"`
	CheckIn     time.Time `json:"checkIn" gorm:"not null;index"`
	CheckOut    time.Time `json:"checkOut" gorm:"not null;index"`
	Nights      int       `json:"nights"`
	Status      string    `json:"status" gorm:"size:20;default:'confirmed';index"` // confirmed, checked_in, checked_out, cancelled
	Source      string    `json:"source" gorm:"size:40;default:'direct'"`          // direct, webhook, ical, platform name
	ExternalID  *string   `json:"externalID" gorm:"index"`                         // uid of an externally imported booking
	TotalAmount float64   `json:"totalAmount"`
	TotalPaid   float64   `json:"totalPaid"`
	Room        Room      `json:"-" gorm:"foreignKey:RoomID"`
	Property    Property  `json:"-" gorm:"foreignKey:PropertyID"`
}

// Overlaps reports whether the booking's stay intersects the half-open
// interval [from, to): two intervals [a,b) and [c,d) overlap iff
// a < d && c < b. Touching boundaries do not overlap.
func (b *Booking) Overlaps(from, to time.Time) bool {
	return b.CheckIn.Before(to) && from.Before(b.CheckOut)
}
