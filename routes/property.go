package routes

import (
	"strconv"

	"github.com/kataras/iris/v12"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/utils"
)

type CreatePropertyInput struct {
	Name      string  `json:"name" validate:"required"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
	Currency  string  `json:"currency" validate:"omitempty,len=3"`
	BasePrice float64 `json:"basePrice" validate:"required,gt=0"`
	MinPrice  float64 `json:"minPrice" validate:"min=0"`
	MaxPrice  float64 `json:"maxPrice" validate:"min=0"`
}

type UpdatePropertyInput struct {
	Name     *string  `json:"name"`
	City     *string  `json:"city"`
	Country  *string  `json:"country"`
	MinPrice *float64 `json:"minPrice"`
	MaxPrice *float64 `json:"maxPrice"`
	IsActive *bool    `json:"isActive"`
}

func CreateProperty(ctx iris.Context) {
	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Derive missing bounds from the base price.
	minPrice := input.MinPrice
	if minPrice == 0 {
		minPrice = input.BasePrice * 0.5
	}
	maxPrice := input.MaxPrice
	if maxPrice == 0 {
		maxPrice = input.BasePrice * 2
	}
	if minPrice > input.BasePrice || input.BasePrice > maxPrice {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_bounds",
			"minPrice <= basePrice <= maxPrice must hold")
		return
	}

	property := models.Property{
		Name:      input.Name,
		City:      input.City,
		Country:   input.Country,
		Timezone:  input.Timezone,
		Currency:  input.Currency,
		BasePrice: input.BasePrice,
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
	}
	if result := storage.DB.Create(&property); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

func GetProperties(ctx iris.Context) {
	var properties []models.Property
	query := storage.DB.Preload("Rooms")
	if ctx.URLParamDefault("active", "") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if result := query.Find(&properties); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(properties)
}

func GetProperty(ctx iris.Context) {
	property, ok := findProperty(ctx)
	if !ok {
		return
	}
	ctx.JSON(property)
}

func UpdateProperty(ctx iris.Context) {
	property, ok := findProperty(ctx)
	if !ok {
		return
	}

	var input UpdatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.City != nil {
		updates["city"] = *input.City
	}
	if input.Country != nil {
		updates["country"] = *input.Country
	}
	if input.MinPrice != nil {
		updates["min_price"] = *input.MinPrice
	}
	if input.MaxPrice != nil {
		updates["max_price"] = *input.MaxPrice
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if result := storage.DB.Model(property).Updates(updates); result.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}
	ctx.JSON(property)
}

func DeleteProperty(ctx iris.Context) {
	property, ok := findProperty(ctx)
	if !ok {
		return
	}
	if result := storage.DB.Delete(property); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}

func findProperty(ctx iris.Context) (*models.Property, bool) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid property ID")
		return nil, false
	}
	var property models.Property
	if result := storage.DB.Preload("Rooms").First(&property, id); result.Error != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	return &property, true
}
