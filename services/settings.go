package services

import (
	"strconv"
	"strings"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
)

// Settings is a read-only snapshot of the system_settings table, loaded once
// per engine invocation and passed by value into the pricing functions. A
// zero FloorPrice or CeilingPrice means the bound is not set.
type Settings struct {
	FloorPrice            float64
	CeilingPrice          float64
	SurgeMultiplier       float64
	SurgeEnabled          bool
	DynamicPricingEnabled bool
}

// DefaultSettings are used when the table is empty or unreadable.
func DefaultSettings() Settings {
	return Settings{
		SurgeMultiplier:       1.2,
		SurgeEnabled:          true,
		DynamicPricingEnabled: true,
	}
}

// LoadSettings reads the pricing knobs from system_settings. Missing or
// malformed rows keep their defaults.
func LoadSettings() Settings {
	s := DefaultSettings()

	var rows []models.SystemSetting
	if err := storage.DB.Find(&rows).Error; err != nil {
		return s
	}

	for _, row := range rows {
		switch row.Key {
		case models.SettingFloorPrice:
			if v, err := strconv.ParseFloat(row.Value, 64); err == nil {
				s.FloorPrice = v
			}
		case models.SettingCeilingPrice:
			if v, err := strconv.ParseFloat(row.Value, 64); err == nil {
				s.CeilingPrice = v
			}
		case models.SettingSurgeMultiplier:
			if v, err := strconv.ParseFloat(row.Value, 64); err == nil && v > 0 {
				s.SurgeMultiplier = v
			}
		case models.SettingSurgeEnabled:
			s.SurgeEnabled = parseBool(row.Value, s.SurgeEnabled)
		case models.SettingDynamicPricingEnabled:
			s.DynamicPricingEnabled = parseBool(row.Value, s.DynamicPricingEnabled)
		}
	}
	return s
}

func parseBool(v string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return fallback
}
