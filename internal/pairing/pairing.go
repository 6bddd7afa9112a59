// Package pairing discovers which flat feed records are opposite sides of the
// same underlying market, so vig removal has something to pair against.
package pairing

import (
	"fmt"
	"strings"

	"github.com/yourusername/fairline/internal/market"
	"github.com/yourusername/fairline/internal/models"
)

// Key returns the bucket key under which a record and its opposite side hash
// together: {league}|{homeTeam}|{awayTeam}|{marketKey}|{abs(line) or "nil"}.
// The absolute value of the line makes a +7 spread on one team and -7 on the
// other land in the same bucket.
func Key(rec *models.BetRecord) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		rec.League, rec.HomeTeam, rec.AwayTeam, rec.Market().Key(), market.FormatAbsLine(rec.Line))
}

// OppositeSelection returns the selection label of the record's opposite side.
// Moneylines and spreads oppose the other team; totals oppose over/under.
// Pairing is only defined for two-outcome symmetric markets, so props,
// alternates and unrecognized markets have no automatic opposite.
func OppositeSelection(rec *models.BetRecord) (string, bool) {
	switch rec.Market().Kind {
	case models.MarketMoneyline, models.MarketSpread:
		if strings.EqualFold(rec.Selection, rec.HomeTeam) {
			return rec.AwayTeam, true
		}
		if strings.EqualFold(rec.Selection, rec.AwayTeam) {
			return rec.HomeTeam, true
		}
		return "", false
	case models.MarketTotal:
		switch strings.ToLower(rec.Selection) {
		case "over":
			return "Under", true
		case "under":
			return "Over", true
		}
		return "", false
	default:
		return "", false
	}
}

// PairBets finds, for each record, the record representing the opposite side
// of the same market. The result maps record ID to the opposing record in
// both directions. One grouping pass plus a per-group linear scan keeps the
// whole thing O(n); callers run this once per data refresh and reuse the map
// for every downstream computation in the pass.
func PairBets(records []*models.BetRecord) map[string]*models.BetRecord {
	buckets := make(map[string][]*models.BetRecord, len(records))
	for _, rec := range records {
		k := Key(rec)
		buckets[k] = append(buckets[k], rec)
	}

	pairs := make(map[string]*models.BetRecord)
	for _, group := range buckets {
		if len(group) < 2 {
			continue
		}

		bySelection := make(map[string]*models.BetRecord, len(group))
		for _, rec := range group {
			bySelection[strings.ToLower(rec.Selection)] = rec
		}

		for _, rec := range group {
			opposite, ok := OppositeSelection(rec)
			if !ok {
				continue
			}
			match, ok := bySelection[strings.ToLower(opposite)]
			if !ok || match.ID == rec.ID {
				continue
			}
			pairs[rec.ID] = match
			pairs[match.ID] = rec
		}
	}

	return pairs
}
