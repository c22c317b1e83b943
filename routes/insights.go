package routes

import (
	"strconv"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/services"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/utils"
)

type roomSuggestion struct {
	RoomID       uint     `json:"roomID"`
	RoomName     string   `json:"roomName"`
	CurrentPrice *float64 `json:"currentPrice"`
	Suggested    float64  `json:"suggested"`
	Reason       string   `json:"reason"`
}

type ApproveInsightInput struct {
	RoomID uint    `json:"roomID" validate:"required"`
	Price  float64 `json:"price" validate:"required,gt=0"`
	Reason string  `json:"reason" validate:"required"`
}

// GetPricingSuggestions computes advisory prices for every room of a
// property without persisting anything. An upstream assistant (or a human)
// reviews these and approves individual changes.
func GetPricingSuggestions(ctx iris.Context) {
	propertyID, err := strconv.ParseUint(ctx.Params().Get("propertyID"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid property ID")
		return
	}

	var property models.Property
	if result := storage.DB.First(&property, propertyID); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}
	var rooms []models.Room
	if result := storage.DB.Where("property_id = ?", propertyID).Order("id ASC").Find(&rooms); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	settings := services.LoadSettings()
	today := time.Now().UTC()
	occupancy := services.OccupancyForDate(property.ID, today)

	suggestions := make([]roomSuggestion, 0, len(rooms))
	for i := range rooms {
		room := &rooms[i]
		quote := services.DeterminePrice(room.EffectiveBasePrice(&property),
			property.MinPrice, property.MaxPrice, occupancy, 0, settings)
		suggestions = append(suggestions, roomSuggestion{
			RoomID:       room.ID,
			RoomName:     room.Name,
			CurrentPrice: room.CurrentPrice,
			Suggested:    quote.Price,
			Reason:       quote.Reason,
		})
	}

	ctx.JSON(iris.Map{
		"propertyID":  property.ID,
		"occupancy":   occupancy,
		"suggestions": suggestions,
	})
}

// ApproveInsight applies one approved price suggestion: updates the room and
// appends a price-history row, the same write path the rules engine uses.
func ApproveInsight(ctx iris.Context) {
	var input ApproveInsightInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var room models.Room
	if result := storage.DB.First(&room, input.RoomID); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}

	oldPrice := 0.0
	if room.CurrentPrice != nil {
		oldPrice = *room.CurrentPrice
	}

	updates := map[string]interface{}{
		"current_price":     input.Price,
		"last_logic_reason": input.Reason,
	}
	if result := storage.DB.Model(&room).Updates(updates); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	history := models.PriceHistory{
		RoomID:     room.ID,
		PropertyID: room.PropertyID,
		OldPrice:   oldPrice,
		NewPrice:   input.Price,
		Reason:     input.Reason,
	}
	storage.DB.Create(&history)

	utils.Audit(ctx, "approve_insight", "room", room.ID, oldPrice, input.Price)
	ctx.JSON(iris.Map{
		"roomID":   room.ID,
		"oldPrice": oldPrice,
		"newPrice": input.Price,
	})
}
