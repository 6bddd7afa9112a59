// Package oddsmath provides conversions between American odds, decimal odds
// and implied probability, plus the small numeric helpers the fair-odds and
// EV engines are built on.
package oddsmath

import "math"

// EvenMoneyOdds is the sentinel returned for probabilities outside (0, 1).
// Callers that need to distinguish "real +100" from "degraded input" must
// validate the probability before converting.
const EvenMoneyOdds = 100

// AmericanToProbability converts an American price to its implied probability.
// -150 → 0.60, +150 → 0.40. Zero is treated as the positive branch and yields
// 1.0; zero is never a valid price (see IsValidAmericanOdds) but the function
// degrades instead of panicking.
func AmericanToProbability(odds int) float64 {
	if odds < 0 {
		return float64(-odds) / (float64(-odds) + 100.0)
	}
	return 100.0 / (float64(odds) + 100.0)
}

// ProbabilityToAmerican converts a probability to the nearest American price.
// Results are clamped so they never land in the invalid open interval
// (-99, 99). Probabilities outside (0, 1) return EvenMoneyOdds.
func ProbabilityToAmerican(prob float64) int {
	if prob <= 0 || prob >= 1 {
		return EvenMoneyOdds
	}

	if prob >= 0.5 {
		odds := -int(math.Round(prob / (1.0 - prob) * 100.0))
		if odds > -100 {
			odds = -100
		}
		return odds
	}

	odds := int(math.Round((1.0 - prob) / prob * 100.0))
	if odds < 100 {
		odds = 100
	}
	return odds
}

// AmericanToDecimal converts an American price to decimal odds. The conversion
// routes through implied probability so the three representations always agree
// to rounding tolerance. Returns 0 when the implied probability is zero.
func AmericanToDecimal(odds int) float64 {
	prob := AmericanToProbability(odds)
	if prob <= 0 {
		return 0
	}
	return 1.0 / prob
}

// DecimalToAmerican converts decimal odds to the nearest American price,
// routing through probability. Decimal odds at or below 1.0 have no valid
// probability and return EvenMoneyOdds.
func DecimalToAmerican(dec float64) int {
	if dec <= 0 {
		return EvenMoneyOdds
	}
	return ProbabilityToAmerican(1.0 / dec)
}

// IsValidAmericanOdds reports whether a value is a well-formed American price:
// exactly +100, or magnitude at least 100. Conversions do not call this; it
// exists for sanitizing upstream input.
func IsValidAmericanOdds(odds int) bool {
	return odds <= -100 || odds >= 100
}

// AmericanToProfit returns the gross profit per $1 staked at the given price.
// +150 → 1.5, -200 → 0.5. Zero odds return 0.
func AmericanToProfit(odds int) float64 {
	if odds == 0 {
		return 0
	}
	if odds > 0 {
		return float64(odds) / 100.0
	}
	return 100.0 / float64(-odds)
}
