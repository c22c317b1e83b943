package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RuleActionPercentage = "percentage"
	RuleActionFixed      = "fixed"
)

type PricingRule struct {
	gorm.Model
	PropertyID  uint           `json:"propertyID" gorm:"not null;index"`
	Name        string         `json:"name" gorm:"not null"`
	RuleType    string         `json:"ruleType" gorm:"size:40"` // occupancy, seasonal, day_of_week, length_of_stay
	Priority    int            `json:"priority" gorm:"default:0;index"`
	IsActive    *bool          `json:"isActive" gorm:"default:true"`
	DateFrom    *time.Time     `json:"dateFrom"`
	DateTo      *time.Time     `json:"dateTo"`
	DaysOfWeek  datatypes.JSON `json:"daysOfWeek"` // JSON array of ints, 0=Sunday..6=Saturday
	MinNights   *int           `json:"minNights"`
	MaxNights   *int           `json:"maxNights"`
	ActionType  string         `json:"actionType" gorm:"size:20;not null"` // percentage, fixed
	ActionValue float64        `json:"actionValue"`
	Property    Property       `json:"-" gorm:"foreignKey:PropertyID"`
}

// Weekdays decodes the DaysOfWeek column. A nil or empty column means the
// rule has no day-of-week condition.
func (r *PricingRule) Weekdays() []int {
	if len(r.DaysOfWeek) == 0 {
		return nil
	}
	var days []int
	if err := json.Unmarshal(r.DaysOfWeek, &days); err != nil {
		return nil
	}
	return days
}

// Matches reports whether the rule applies on the given evaluation date for
// a stay of the given length. Unset conditions always match.
func (r *PricingRule) Matches(date time.Time, nights int) bool {
	if r.DateFrom != nil && date.Before(*r.DateFrom) {
		return false
	}
	if r.DateTo != nil && date.After(*r.DateTo) {
		return false
	}
	if days := r.Weekdays(); len(days) > 0 {
		ok := false
		for _, d := range days {
			if d == int(date.Weekday()) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if r.MinNights != nil && nights < *r.MinNights {
		return false
	}
	if r.MaxNights != nil && nights > *r.MaxNights {
		return false
	}
	return true
}
