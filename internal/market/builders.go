package market

import "github.com/yourusername/fairline/internal/models"

// NewMoneylineGroup assembles a moneyline proposition from per-side price
// lists.
func NewMoneylineGroup(gameID, homeLabel, awayLabel string, homePrices, awayPrices []models.BookPrice) *models.BetGroup {
	return &models.BetGroup{
		GameID: gameID,
		Market: models.ParseMarketType("moneyline"),
		Selections: []models.Selection{
			{Side: models.SideHome, Label: homeLabel, Prices: DedupePrices(homePrices)},
			{Side: models.SideAway, Label: awayLabel, Prices: DedupePrices(awayPrices)},
		},
	}
}

// NewSpreadGroup assembles a point-spread proposition. The line is the home
// side's handicap.
func NewSpreadGroup(gameID string, line float64, homeLabel, awayLabel string, homePrices, awayPrices []models.BookPrice) *models.BetGroup {
	return &models.BetGroup{
		GameID: gameID,
		Market: models.ParseMarketType("spread"),
		Line:   &line,
		Selections: []models.Selection{
			{Side: models.SideHome, Label: homeLabel, Prices: DedupePrices(homePrices)},
			{Side: models.SideAway, Label: awayLabel, Prices: DedupePrices(awayPrices)},
		},
	}
}

// NewTotalGroup assembles an over/under proposition at the given total.
func NewTotalGroup(gameID string, line float64, overPrices, underPrices []models.BookPrice) *models.BetGroup {
	return &models.BetGroup{
		GameID: gameID,
		Market: models.ParseMarketType("total"),
		Line:   &line,
		Selections: []models.Selection{
			{Side: models.SideOver, Label: "Over", Prices: DedupePrices(overPrices)},
			{Side: models.SideUnder, Label: "Under", Prices: DedupePrices(underPrices)},
		},
	}
}

// NewPlayerPropGroup assembles a player prop proposition for a subject at the
// given line.
func NewPlayerPropGroup(gameID, subjectID string, line float64, overPrices, underPrices []models.BookPrice) *models.BetGroup {
	return &models.BetGroup{
		GameID:    gameID,
		Market:    models.ParseMarketType("player_prop"),
		SubjectID: subjectID,
		Line:      &line,
		Selections: []models.Selection{
			{Side: models.SideOver, Label: "Over", SubjectID: subjectID, Prices: DedupePrices(overPrices)},
			{Side: models.SideUnder, Label: "Under", SubjectID: subjectID, Prices: DedupePrices(underPrices)},
		},
	}
}

// DedupePrices keeps at most one price per book, preferring the first seen.
// Selections hold one price per book per snapshot. The input slice is left
// untouched; callers keep the raw feed records around for persistence.
func DedupePrices(prices []models.BookPrice) []models.BookPrice {
	if len(prices) < 2 {
		return prices
	}

	seen := make(map[string]struct{}, len(prices))
	out := make([]models.BookPrice, 0, len(prices))
	for _, p := range prices {
		if _, ok := seen[p.BookKey]; ok {
			continue
		}
		seen[p.BookKey] = struct{}{}
		out = append(out, p)
	}
	return out
}
