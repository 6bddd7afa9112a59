// Package market builds canonical keys for wagering propositions and decides
// whether a group's current quotes are usable for fair-odds computation.
package market

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/yourusername/fairline/internal/models"
)

// BetGroupKey returns the canonical key for a proposition:
// {gameId}|{marketKey}|{subjectId or empty}|{line or empty}.
// Lines always format to exactly one decimal place so 7 and 7.0 agree.
func BetGroupKey(g *models.BetGroup) string {
	return fmt.Sprintf("%s|%s|%s|%s", g.GameID, g.Market.Key(), g.SubjectID, FormatLine(g.Line))
}

// SelectionKey returns the canonical key for one side of a proposition:
// {betGroupKey}:{side}.
func SelectionKey(g *models.BetGroup, side models.Side) string {
	return fmt.Sprintf("%s:%s", BetGroupKey(g), side)
}

// FormatLine renders a line value to one decimal place, or an empty string
// for nil lines.
func FormatLine(line *float64) string {
	if line == nil {
		return ""
	}
	return decimal.NewFromFloat(*line).StringFixed(1)
}

// FormatAbsLine renders the absolute value of a line to one decimal place,
// or "nil" for missing lines. Spreads quote +7 on one team and -7 on the
// other; the absolute value makes both hash alike.
func FormatAbsLine(line *float64) string {
	if line == nil {
		return "nil"
	}
	return decimal.NewFromFloat(math.Abs(*line)).StringFixed(1)
}
