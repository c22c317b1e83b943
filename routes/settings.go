package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/utils"
)

type UpdateSettingInput struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
}

func GetSystemSettings(ctx iris.Context) {
	var settings []models.SystemSetting
	if result := storage.DB.Order("key ASC").Find(&settings); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(settings)
}

func UpsertSystemSetting(ctx iris.Context) {
	var input UpdateSettingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var setting models.SystemSetting
	err := storage.DB.Where("key = ?", input.Key).First(&setting).Error
	if err != nil {
		setting = models.SystemSetting{Key: input.Key, Value: input.Value}
		if result := storage.DB.Create(&setting); result.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		utils.Audit(ctx, "create", "system_setting", setting.ID, nil, setting)
		ctx.StatusCode(iris.StatusCreated)
		ctx.JSON(setting)
		return
	}

	before := setting
	if result := storage.DB.Model(&setting).Update("value", input.Value); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "update", "system_setting", setting.ID, before, setting)
	ctx.JSON(setting)
}
