package routes

import (
	"strconv"

	"github.com/kataras/iris/v12"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/utils"
)

type CreateRoomInput struct {
	PropertyID uint    `json:"propertyID" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	BasePrice  float64 `json:"basePrice" validate:"min=0"`
}

type UpdateRoomInput struct {
	Name      *string  `json:"name"`
	Status    *string  `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
	BasePrice *float64 `json:"basePrice"`
}

func CreateRoom(ctx iris.Context) {
	var input CreateRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if result := storage.DB.First(&property, input.PropertyID); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}

	room := models.Room{
		PropertyID: input.PropertyID,
		Name:       input.Name,
		Status:     models.RoomStatusAvailable,
		BasePrice:  input.BasePrice,
	}
	if result := storage.DB.Create(&room); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(room)
}

func GetRoomsByProperty(ctx iris.Context) {
	propertyID, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid property ID")
		return
	}

	var rooms []models.Room
	if result := storage.DB.Where("property_id = ?", propertyID).Order("id ASC").Find(&rooms); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(rooms)
}

func UpdateRoom(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid room ID")
		return
	}
	var room models.Room
	if result := storage.DB.First(&room, id); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input UpdateRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.BasePrice != nil {
		updates["base_price"] = *input.BasePrice
	}
	if len(updates) > 0 {
		if result := storage.DB.Model(&room).Updates(updates); result.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}
	ctx.JSON(room)
}

func GetRoomPriceHistory(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid room ID")
		return
	}

	var history []models.PriceHistory
	if result := storage.DB.Where("room_id = ?", id).Order("created_at DESC").Limit(100).Find(&history); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(history)
}
