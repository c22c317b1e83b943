package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
)

func TestLoadSettingsReadsKnownKeys(t *testing.T) {
	db := setupTestDB(t)
	rows := map[string]string{
		models.SettingFloorPrice:            "45.5",
		models.SettingCeilingPrice:          "900",
		models.SettingSurgeMultiplier:       "1.35",
		models.SettingSurgeEnabled:          "false",
		models.SettingDynamicPricingEnabled: "yes",
	}
	for k, v := range rows {
		require.NoError(t, db.Create(&models.SystemSetting{Key: k, Value: v}).Error)
	}

	s := LoadSettings()
	assert.Equal(t, 45.5, s.FloorPrice)
	assert.Equal(t, 900.0, s.CeilingPrice)
	assert.Equal(t, 1.35, s.SurgeMultiplier)
	assert.False(t, s.SurgeEnabled)
	assert.True(t, s.DynamicPricingEnabled)
}

func TestLoadSettingsDefaultsOnEmptyTable(t *testing.T) {
	setupTestDB(t)

	s := LoadSettings()
	assert.Equal(t, 0.0, s.FloorPrice)
	assert.Equal(t, 1.2, s.SurgeMultiplier)
	assert.True(t, s.SurgeEnabled)
	assert.True(t, s.DynamicPricingEnabled)
}

func TestLoadSettingsIgnoresMalformedValues(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.SystemSetting{Key: models.SettingSurgeMultiplier, Value: "not-a-number"}).Error)

	s := LoadSettings()
	assert.Equal(t, 1.2, s.SurgeMultiplier)
}
