package models

import (
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	Name      string  `json:"name" gorm:"not null"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone" gorm:"default:'UTC'"`
	Currency  string  `json:"currency" gorm:"size:3;default:'USD'"`
	BasePrice float64 `json:"basePrice" gorm:"not null"`
	MinPrice  float64 `json:"minPrice"` // derived as 0.5x base when not supplied
	MaxPrice  float64 `json:"maxPrice"` // derived as 2x base when not supplied
	IsActive  *bool   `json:"isActive" gorm:"default:true"`
	Rooms     []Room  `json:"rooms"`
}
