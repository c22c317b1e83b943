package services

import (
	"fmt"
	"math"
)

// PriceQuote is the result of a price determination: the recommended price
// and a human-readable justification that ends up in last_logic_reason and
// the price history.
type PriceQuote struct {
	Price  float64 `json:"price"`
	Reason string  `json:"reason"`
}

// DeterminePrice computes a recommended nightly price from occupancy and
// lead time. Pure function: all inputs are scalars, settings is a snapshot.
//
// Occupancy tiers (p = occupancy in percent):
//
//	p < 40        -> minimum price                 "Low Demand"
//	40 <= p <= 70 -> base price                    "Standard Demand"
//	p > 70        -> base * (1 + 0.15 per started 10% above 70)
//
// A last-minute surge multiplier applies when leadDays <= 2 and p > 80. The
// result is capped at maxPrice. There is deliberately no re-clamp to
// minPrice after the surge step; the tiers themselves never go below it.
func DeterminePrice(basePrice, minPrice, maxPrice, occupancy float64, leadDays int, s Settings) PriceQuote {
	p := occupancy * 100

	var price float64
	var reason string

	switch {
	case p < 40:
		price = minPrice
		reason = fmt.Sprintf("Low Demand (%.0f%% occupancy)", p)
	case p <= 70:
		price = basePrice
		reason = fmt.Sprintf("Standard Demand (%.0f%% occupancy)", p)
	default:
		steps := math.Ceil((p - 70) / 10)
		increase := 0.15 * steps
		price = basePrice * (1 + increase)
		reason = fmt.Sprintf("High Demand (%.0f%% occupancy, +%.0f%%)", p, increase*100)
	}

	if s.SurgeEnabled && leadDays <= 2 && p > 80 {
		multiplier := s.SurgeMultiplier
		if multiplier <= 0 {
			multiplier = 1.2
		}
		price *= multiplier
		reason += fmt.Sprintf(", last-minute surge x%.2f", multiplier)
	}

	if price > maxPrice {
		price = maxPrice
		reason += ", capped at max"
	}

	return PriceQuote{Price: round2(price), Reason: reason}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
