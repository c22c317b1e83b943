package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
)

func addRule(t *testing.T, db *gorm.DB, rule models.PricingRule) models.PricingRule {
	t.Helper()
	require.NoError(t, db.Create(&rule).Error)
	return rule
}

func TestRulesComposeMultiplicativelyInPriorityOrder(t *testing.T) {
	db := setupTestDB(t)
	// min == base so that 0% occupancy still starts the chain at 100.
	property := models.Property{Name: "H", BasePrice: 100, MinPrice: 100, MaxPrice: 1000}
	require.NoError(t, db.Create(&property).Error)
	room := models.Room{PropertyID: property.ID, Name: "101", Status: models.RoomStatusAvailable}
	require.NoError(t, db.Create(&room).Error)

	high := addRule(t, db, models.PricingRule{
		PropertyID: property.ID, Name: "ten", Priority: 10,
		ActionType: models.RuleActionPercentage, ActionValue: 10,
	})
	low := addRule(t, db, models.PricingRule{
		PropertyID: property.ID, Name: "five", Priority: 5,
		ActionType: models.RuleActionPercentage, ActionValue: 5,
	})

	run, err := ExecuteRulesForProperty(property.ID, testSettings())
	require.NoError(t, err)

	// 100 * 1.10 * 1.05, not 100 + 10 + 5.
	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	require.NotNil(t, updated.CurrentPrice)
	assert.Equal(t, 115.5, *updated.CurrentPrice)

	assert.Equal(t, 1, run.UpdatedRooms)
	assert.Equal(t, []uint{high.ID, low.ID}, run.AppliedRules)

	var history []models.PriceHistory
	require.NoError(t, db.Where("room_id = ?", room.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, 0.0, history[0].OldPrice)
	assert.Equal(t, 115.5, history[0].NewPrice)
	assert.Contains(t, history[0].Reason, "ten")
	assert.Contains(t, history[0].Reason, "five")
}

func TestRulesRunIsIdempotentOnPrice(t *testing.T) {
	db := setupTestDB(t)
	property := models.Property{Name: "H", BasePrice: 100, MinPrice: 100, MaxPrice: 1000}
	require.NoError(t, db.Create(&property).Error)
	room := models.Room{PropertyID: property.ID, Name: "101", Status: models.RoomStatusAvailable}
	require.NoError(t, db.Create(&room).Error)

	first, err := ExecuteRulesForProperty(property.ID, testSettings())
	require.NoError(t, err)
	assert.Equal(t, 1, first.UpdatedRooms)

	second, err := ExecuteRulesForProperty(property.ID, testSettings())
	require.NoError(t, err)
	assert.Equal(t, 0, second.UpdatedRooms, "unchanged price must not count as updated")

	var count int64
	db.Model(&models.PriceHistory{}).Where("room_id = ?", room.ID).Count(&count)
	assert.EqualValues(t, 1, count, "no history row without a price change")
}

func TestPropertyFloorBeatsLooserSystemFloor(t *testing.T) {
	db := setupTestDB(t)
	property := models.Property{Name: "H", BasePrice: 100, MinPrice: 80, MaxPrice: 400}
	require.NoError(t, db.Create(&property).Error)
	room := models.Room{PropertyID: property.ID, Name: "101", Status: models.RoomStatusAvailable}
	require.NoError(t, db.Create(&room).Error)

	addRule(t, db, models.PricingRule{
		PropertyID: property.ID, Name: "slash", Priority: 1,
		ActionType: models.RuleActionPercentage, ActionValue: -50,
	})

	settings := testSettings()
	settings.FloorPrice = 50

	_, err := ExecuteRulesForProperty(property.ID, settings)
	require.NoError(t, err)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	require.NotNil(t, updated.CurrentPrice)
	assert.Equal(t, 80.0, *updated.CurrentPrice, "property min 80 is tighter than system floor 50")
	assert.Contains(t, updated.LastLogicReason, "floor")
}

func TestSystemCeilingBeatsLooserPropertyMax(t *testing.T) {
	db := setupTestDB(t)
	property := models.Property{Name: "H", BasePrice: 100, MinPrice: 100, MaxPrice: 1000}
	require.NoError(t, db.Create(&property).Error)
	room := models.Room{PropertyID: property.ID, Name: "101", Status: models.RoomStatusAvailable}
	require.NoError(t, db.Create(&room).Error)

	addRule(t, db, models.PricingRule{
		PropertyID: property.ID, Name: "triple", Priority: 1,
		ActionType: models.RuleActionPercentage, ActionValue: 200,
	})

	settings := testSettings()
	settings.CeilingPrice = 250

	_, err := ExecuteRulesForProperty(property.ID, settings)
	require.NoError(t, err)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, 250.0, *updated.CurrentPrice)
	assert.Contains(t, updated.LastLogicReason, "ceiling")
}

func TestFixedActionSetsPrice(t *testing.T) {
	db := setupTestDB(t)
	property := models.Property{Name: "H", BasePrice: 100, MinPrice: 50, MaxPrice: 1000}
	require.NoError(t, db.Create(&property).Error)
	room := models.Room{PropertyID: property.ID, Name: "101", Status: models.RoomStatusAvailable}
	require.NoError(t, db.Create(&room).Error)

	addRule(t, db, models.PricingRule{
		PropertyID: property.ID, Name: "event weekend", Priority: 1,
		ActionType: models.RuleActionFixed, ActionValue: 222,
	})

	_, err := ExecuteRulesForProperty(property.ID, testSettings())
	require.NoError(t, err)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, 222.0, *updated.CurrentPrice)
}

func TestInactiveAndExpiredRulesDoNotFire(t *testing.T) {
	db := setupTestDB(t)
	property := models.Property{Name: "H", BasePrice: 100, MinPrice: 100, MaxPrice: 1000}
	require.NoError(t, db.Create(&property).Error)
	room := models.Room{PropertyID: property.ID, Name: "101", Status: models.RoomStatusAvailable}
	require.NoError(t, db.Create(&room).Error)

	addRule(t, db, models.PricingRule{
		PropertyID: property.ID, Name: "disabled", Priority: 5, IsActive: boolPtr(false),
		ActionType: models.RuleActionPercentage, ActionValue: 50,
	})
	lastYear := time.Now().UTC().AddDate(-1, 0, 0)
	addRule(t, db, models.PricingRule{
		PropertyID: property.ID, Name: "expired", Priority: 4, DateTo: &lastYear,
		ActionType: models.RuleActionPercentage, ActionValue: 50,
	})

	run, err := ExecuteRulesForProperty(property.ID, testSettings())
	require.NoError(t, err)
	assert.Empty(t, run.AppliedRules)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, 100.0, *updated.CurrentPrice)
}

func TestNightsConditionsAgainstOneNightContext(t *testing.T) {
	db := setupTestDB(t)
	property := models.Property{Name: "H", BasePrice: 100, MinPrice: 100, MaxPrice: 1000}
	require.NoError(t, db.Create(&property).Error)
	room := models.Room{PropertyID: property.ID, Name: "101", Status: models.RoomStatusAvailable}
	require.NoError(t, db.Create(&room).Error)

	// Batch runs price a one-night stay, so a two-night minimum can never fire there.
	addRule(t, db, models.PricingRule{
		PropertyID: property.ID, Name: "long stay", Priority: 2, MinNights: intPtr(2),
		ActionType: models.RuleActionPercentage, ActionValue: 50,
	})
	oneNight := addRule(t, db, models.PricingRule{
		PropertyID: property.ID, Name: "one night", Priority: 1, MaxNights: intPtr(1),
		ActionType: models.RuleActionPercentage, ActionValue: 10,
	})

	run, err := ExecuteRulesForProperty(property.ID, testSettings())
	require.NoError(t, err)
	assert.Equal(t, []uint{oneNight.ID}, run.AppliedRules)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	require.NotNil(t, updated.CurrentPrice)
	assert.InDelta(t, 110.0, *updated.CurrentPrice, 1e-9)
}

func TestDayOfWeekCondition(t *testing.T) {
	db := setupTestDB(t)
	property := models.Property{Name: "H", BasePrice: 100, MinPrice: 100, MaxPrice: 1000}
	require.NoError(t, db.Create(&property).Error)
	room := models.Room{PropertyID: property.ID, Name: "101", Status: models.RoomStatusAvailable}
	require.NoError(t, db.Create(&room).Error)

	today := int(time.Now().UTC().Weekday())
	otherDay := (today + 3) % 7

	todayJSON, _ := json.Marshal([]int{today})
	otherJSON, _ := json.Marshal([]int{otherDay})

	matching := addRule(t, db, models.PricingRule{
		PropertyID: property.ID, Name: "today only", Priority: 2,
		DaysOfWeek: datatypes.JSON(todayJSON),
		ActionType: models.RuleActionPercentage, ActionValue: 10,
	})
	addRule(t, db, models.PricingRule{
		PropertyID: property.ID, Name: "other day", Priority: 1,
		DaysOfWeek: datatypes.JSON(otherJSON),
		ActionType: models.RuleActionPercentage, ActionValue: 50,
	})

	run, err := ExecuteRulesForProperty(property.ID, testSettings())
	require.NoError(t, err)
	assert.Equal(t, []uint{matching.ID}, run.AppliedRules)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.InDelta(t, 110.0, *updated.CurrentPrice, 1e-9)
}

func TestExecuteAllRulesSkipsInactiveProperties(t *testing.T) {
	db := setupTestDB(t)

	for _, active := range []bool{true, true, false} {
		property := models.Property{Name: "H", BasePrice: 100, MinPrice: 100, MaxPrice: 1000, IsActive: boolPtr(active)}
		require.NoError(t, db.Create(&property).Error)
		room := models.Room{PropertyID: property.ID, Name: "101", Status: models.RoomStatusAvailable}
		require.NoError(t, db.Create(&room).Error)
	}

	batch := ExecuteAllRules(testSettings())
	assert.Equal(t, 2, batch.PropertiesProcessed)
	assert.Equal(t, 2, batch.TotalUpdated)
	assert.Len(t, batch.Results, 2)
}
