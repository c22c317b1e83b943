package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
)

// RulesRunResult reports a rules-engine run for one property.
type RulesRunResult struct {
	PropertyID   uint   `json:"propertyID"`
	UpdatedRooms int    `json:"updatedRooms"`
	AppliedRules []uint `json:"appliedRules"`
}

// PropertyRunOutcome is one property's slot in the batch response; Error is
// set when that property's run was aborted.
type PropertyRunOutcome struct {
	PropertyID   uint   `json:"propertyID"`
	UpdatedRooms int    `json:"updatedRooms"`
	AppliedRules []uint `json:"appliedRules"`
	Error        string `json:"error,omitempty"`
}

// BatchRulesResult aggregates a rules run across all active properties.
type BatchRulesResult struct {
	PropertiesProcessed int                  `json:"propertiesProcessed"`
	TotalUpdated        int                  `json:"totalUpdated"`
	Results             []PropertyRunOutcome `json:"results"`
}

// ExecuteRulesForProperty recomputes every room price for one property:
// base determination from today's occupancy, then each matching active rule
// in priority order (ties broken by rule id ascending). Percentage actions
// compose multiplicatively; a fixed action sets the price outright. The
// final price is clamped to the intersection of the system floor/ceiling
// and the property's own min/max, whichever bound is tighter.
func ExecuteRulesForProperty(propertyID uint, s Settings) (*RulesRunResult, error) {
	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		return nil, fmt.Errorf("property %d not found: %w", propertyID, err)
	}

	var rules []models.PricingRule
	if err := storage.DB.
		Where("property_id = ? AND is_active = ?", propertyID, true).
		Order("priority DESC, id ASC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("loading rules for property %d: %w", propertyID, err)
	}

	var rooms []models.Room
	if err := storage.DB.Where("property_id = ?", propertyID).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("loading rooms for property %d: %w", propertyID, err)
	}

	today := truncateToDay(time.Now().UTC())
	occupancy := OccupancyForDate(propertyID, today)

	result := &RulesRunResult{PropertyID: propertyID, AppliedRules: []uint{}}
	applied := make(map[uint]bool)

	for i := range rooms {
		room := &rooms[i]

		price, reason, fired := priceRoom(room, &property, rules, occupancy, today, s)

		for _, id := range fired {
			if !applied[id] {
				applied[id] = true
				result.AppliedRules = append(result.AppliedRules, id)
			}
		}

		oldPrice := 0.0
		hadPrice := room.CurrentPrice != nil
		if hadPrice {
			oldPrice = *room.CurrentPrice
		}
		changed := !hadPrice || oldPrice != price

		updates := map[string]interface{}{
			"current_price":     price,
			"last_logic_reason": reason,
		}
		if err := storage.DB.Model(room).Updates(updates).Error; err != nil {
			log.Printf("rules engine: room %d skipped: %v", room.ID, err)
			continue
		}

		if changed {
			history := models.PriceHistory{
				RoomID:     room.ID,
				PropertyID: propertyID,
				OldPrice:   oldPrice,
				NewPrice:   price,
				Reason:     reason,
			}
			if err := storage.DB.Create(&history).Error; err != nil {
				log.Printf("rules engine: price history for room %d failed: %v", room.ID, err)
			}
			result.UpdatedRooms++
		}
	}

	return result, nil
}

// ExecuteAllRules runs the rules engine for every active property. One
// property's failure is recorded and never aborts the rest of the batch.
func ExecuteAllRules(s Settings) *BatchRulesResult {
	batch := &BatchRulesResult{Results: []PropertyRunOutcome{}}

	var properties []models.Property
	if err := storage.DB.Where("is_active = ?", true).Find(&properties).Error; err != nil {
		log.Println("rules engine: loading properties failed:", err)
		return batch
	}

	for _, property := range properties {
		run, err := ExecuteRulesForProperty(property.ID, s)
		if err != nil {
			log.Printf("rules engine: property %d aborted: %v", property.ID, err)
			batch.Results = append(batch.Results, PropertyRunOutcome{
				PropertyID: property.ID,
				Error:      err.Error(),
			})
			continue
		}
		batch.PropertiesProcessed++
		batch.TotalUpdated += run.UpdatedRooms
		batch.Results = append(batch.Results, PropertyRunOutcome{
			PropertyID:   property.ID,
			UpdatedRooms: run.UpdatedRooms,
			AppliedRules: run.AppliedRules,
		})
	}
	return batch
}

// priceRoom computes one room's price and reason trail. Rules are assumed
// pre-sorted by priority descending. The evaluation context for a batch
// recomputation of "today" is a one-night stay with zero lead time.
func priceRoom(room *models.Room, property *models.Property, rules []models.PricingRule,
	occupancy float64, today time.Time, s Settings) (float64, string, []uint) {

	const stayNights = 1
	base := room.EffectiveBasePrice(property)

	var price float64
	reasons := make([]string, 0, len(rules)+2)

	if s.DynamicPricingEnabled {
		quote := DeterminePrice(base, property.MinPrice, property.MaxPrice, occupancy, 0, s)
		price = quote.Price
		reasons = append(reasons, quote.Reason)
	} else {
		price = base
		reasons = append(reasons, "dynamic pricing disabled, base price")
	}

	var fired []uint
	for _, rule := range rules {
		if !rule.Matches(today, stayNights) {
			continue
		}
		switch rule.ActionType {
		case models.RuleActionPercentage:
			price *= 1 + rule.ActionValue/100
			reasons = append(reasons, fmt.Sprintf("rule %q %+.0f%%", rule.Name, rule.ActionValue))
		case models.RuleActionFixed:
			price = rule.ActionValue
			reasons = append(reasons, fmt.Sprintf("rule %q fixed %.2f", rule.Name, rule.ActionValue))
		default:
			continue
		}
		fired = append(fired, rule.ID)
	}

	floor, ceiling := effectiveBounds(property, s)
	if floor > 0 && price < floor {
		price = floor
		reasons = append(reasons, fmt.Sprintf("raised to floor %.2f", floor))
	}
	if ceiling > 0 && price > ceiling {
		price = ceiling
		reasons = append(reasons, fmt.Sprintf("capped at ceiling %.2f", ceiling))
	}

	return round2(price), strings.Join(reasons, "; "), fired
}

// effectiveBounds intersects the system-wide floor/ceiling with the
// property's own min/max; the tighter bound wins. Zero means unset.
func effectiveBounds(property *models.Property, s Settings) (float64, float64) {
	floor := property.MinPrice
	if s.FloorPrice > floor {
		floor = s.FloorPrice
	}

	ceiling := property.MaxPrice
	if s.CeilingPrice > 0 && (ceiling == 0 || s.CeilingPrice < ceiling) {
		ceiling = s.CeilingPrice
	}
	return floor, ceiling
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
