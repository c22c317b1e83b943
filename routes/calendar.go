package routes

import (
	"strconv"

	"github.com/kataras/iris/v12"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/services"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/utils"
)

type CreateConnectionInput struct {
	PropertyID uint   `json:"propertyID" validate:"required"`
	RoomID     *uint  `json:"roomID"`
	Platform   string `json:"platform" validate:"required"`
	ICalURL    string `json:"icalURL" validate:"required,url"`
}

type SyncInput struct {
	ConnectionID *uint `json:"connectionID"`
}

func CreateCalendarConnection(ctx iris.Context) {
	var input CreateConnectionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if result := storage.DB.First(&property, input.PropertyID); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if input.RoomID != nil {
		var room models.Room
		if result := storage.DB.Where("id = ? AND property_id = ?", *input.RoomID, input.PropertyID).First(&room); result.Error != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "room does not belong to property")
			return
		}
	}

	conn := models.CalendarConnection{
		PropertyID: input.PropertyID,
		RoomID:     input.RoomID,
		Platform:   input.Platform,
		ICalURL:    input.ICalURL,
		SyncStatus: models.SyncStatusPending,
	}
	if result := storage.DB.Create(&conn); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(conn)
}

func GetCalendarConnections(ctx iris.Context) {
	var connections []models.CalendarConnection
	query := storage.DB.Order("id ASC")
	if propertyID := ctx.URLParam("propertyID"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}
	if result := query.Find(&connections); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(connections)
}

func DeleteCalendarConnection(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid connection ID")
		return
	}
	var conn models.CalendarConnection
	if result := storage.DB.First(&conn, id); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if result := storage.DB.Delete(&conn); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}

// TriggerCalendarSync syncs one connection when a connectionID is supplied,
// otherwise every active connection. The response is always a partial-success
// summary; a failing connection never blocks the rest.
func TriggerCalendarSync(ctx iris.Context) {
	var input SyncInput
	if ctx.GetContentLength() > 0 {
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}
	}

	if input.ConnectionID != nil {
		var conn models.CalendarConnection
		if result := storage.DB.First(&conn, *input.ConnectionID); result.Error != nil {
			utils.CreateNotFound(ctx)
			return
		}
		res := services.SyncConnection(&conn)
		ctx.JSON(iris.Map{
			"totalImported":  res.Imported,
			"totalConflicts": res.Conflicts,
			"results": []services.ConnectionSyncResult{{
				ConnectionID: conn.ID,
				Platform:     conn.Platform,
				Imported:     res.Imported,
				Conflicts:    res.Conflicts,
				Errors:       res.Errors,
			}},
		})
		return
	}

	batch := services.SyncAllConnections()
	ctx.JSON(iris.Map{
		"totalImported":  batch.TotalImported,
		"totalConflicts": batch.TotalConflicts,
		"results":        batch.Results,
	})
}
