package models

import (
	"gorm.io/gorm"
)

// Well-known settings keys read by the pricing core.
const (
	SettingFloorPrice            = "floor_price"
	SettingCeilingPrice          = "ceiling_price"
	SettingSurgeMultiplier       = "surge_multiplier"
	SettingSurgeEnabled          = "surge_enabled"
	SettingDynamicPricingEnabled = "dynamic_pricing_enabled"
)

type SystemSetting struct {
	gorm.Model
	Key   string `json:"key" gorm:"size:64;uniqueIndex;not null"`
	Value string `json:"value" gorm:"not null"`
}
