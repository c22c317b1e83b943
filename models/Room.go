package models

import (
	"gorm.io/gorm"
)

const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

type Room struct {
	gorm.Model
	PropertyID      uint     `json:"propertyID" gorm:"not null;index"`
	Name            string   `json:"name" gorm:"not null"`
	Status          string   `json:"status" gorm:"size:20;default:'available';index"` // available, occupied, maintenance
	BasePrice       float64  `json:"basePrice"`                                       // 0 falls back to property base price
	CurrentPrice    *float64 `json:"currentPrice"`                                    // last computed price, nil until first run
	LastLogicReason string   `json:"lastLogicReason" gorm:"type:text"`
	Property        Property `json:"-" gorm:"foreignKey:PropertyID"`
}

// EffectiveBasePrice returns the room's own base price, falling back to
// the owning property's base price when the room has none.
func (r *Room) EffectiveBasePrice(p *Property) float64 {
	if r.BasePrice > 0 {
		return r.BasePrice
	}
	return p.BasePrice
}
