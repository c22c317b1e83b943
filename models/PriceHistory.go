package models

import (
	"time"
)

// PriceHistory is an append-only audit trail of room price changes. Rows are
// never updated or deleted.
type PriceHistory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	RoomID     uint      `json:"roomID" gorm:"not null;index"`
	PropertyID uint      `json:"propertyID" gorm:"index"`
	OldPrice   float64   `json:"oldPrice"`
	NewPrice   float64   `json:"newPrice"`
	Reason     string    `json:"reason" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
}
