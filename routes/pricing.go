package routes

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/services"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/utils"
)

type ExecutePricingInput struct {
	PropertyID *uint `json:"propertyID"`
}

type CreatePricingRuleInput struct {
	PropertyID  uint       `json:"propertyID" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	RuleType    string     `json:"ruleType" validate:"omitempty,oneof=occupancy seasonal day_of_week length_of_stay"`
	Priority    int        `json:"priority"`
	DateFrom    *time.Time `json:"dateFrom"`
	DateTo      *time.Time `json:"dateTo"`
	DaysOfWeek  []int      `json:"daysOfWeek" validate:"omitempty,dive,min=0,max=6"`
	MinNights   *int       `json:"minNights"`
	MaxNights   *int       `json:"maxNights"`
	ActionType  string     `json:"actionType" validate:"required,oneof=percentage fixed"`
	ActionValue float64    `json:"actionValue" validate:"required"`
}

// ExecutePricing recomputes rule-based prices for one property (body carries
// a propertyID) or for every active property (empty body).
func ExecutePricing(ctx iris.Context) {
	var input ExecutePricingInput
	if ctx.GetContentLength() > 0 {
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}
	}

	settings := services.LoadSettings()

	if input.PropertyID != nil {
		run, err := services.ExecuteRulesForProperty(*input.PropertyID, settings)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.CreateNotFound(ctx)
				return
			}
			utils.CreateInternalServerError(ctx)
			return
		}
		ctx.JSON(run)
		return
	}

	ctx.JSON(services.ExecuteAllRules(settings))
}

// CronPricing is the scheduled variant of ExecutePricing, guarded by the
// shared cron secret. Always runs the all-properties batch.
func CronPricing(ctx iris.Context) {
	settings := services.LoadSettings()
	batch := services.ExecuteAllRules(settings)
	utils.Audit(ctx, "cron_pricing_run", "property", 0, nil, batch)
	ctx.JSON(batch)
}

func CreatePricingRule(ctx iris.Context) {
	var input CreatePricingRuleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if result := storage.DB.First(&property, input.PropertyID); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if input.DateFrom != nil && input.DateTo != nil && input.DateTo.Before(*input.DateFrom) {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_dates", "dateTo must not precede dateFrom")
		return
	}

	rule := models.PricingRule{
		PropertyID:  input.PropertyID,
		Name:        input.Name,
		RuleType:    input.RuleType,
		Priority:    input.Priority,
		DateFrom:    input.DateFrom,
		DateTo:      input.DateTo,
		MinNights:   input.MinNights,
		MaxNights:   input.MaxNights,
		ActionType:  input.ActionType,
		ActionValue: input.ActionValue,
	}
	if len(input.DaysOfWeek) > 0 {
		encoded, _ := json.Marshal(input.DaysOfWeek)
		rule.DaysOfWeek = datatypes.JSON(encoded)
	}

	if result := storage.DB.Create(&rule); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "create", "pricing_rule", rule.ID, nil, rule)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(rule)
}

func GetPricingRules(ctx iris.Context) {
	propertyID, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid property ID")
		return
	}

	var rules []models.PricingRule
	query := storage.DB.Where("property_id = ?", propertyID).Order("priority DESC, id ASC")
	if ctx.URLParamDefault("active", "") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if result := query.Find(&rules); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(rules)
}

func DeletePricingRule(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid rule ID")
		return
	}
	var rule models.PricingRule
	if result := storage.DB.First(&rule, id); result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if result := storage.DB.Delete(&rule); result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "delete", "pricing_rule", rule.ID, rule, nil)
	ctx.StatusCode(iris.StatusNoContent)
}
