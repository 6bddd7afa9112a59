package ev

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fairline/internal/market"
	"github.com/yourusername/fairline/internal/models"
	"github.com/yourusername/fairline/internal/oddsmath"
)

// Engine computes expected value per book given fair probabilities. Fee
// profiles are fixed at construction.
type Engine struct {
	fees   FeeTable
	logger *logrus.Logger
}

// NewEngine creates an EV engine with the given fee table. A nil table means
// no book charges fees.
func NewEngine(fees FeeTable, logger *logrus.Logger) *Engine {
	return &Engine{fees: fees, logger: logger}
}

// ComputeBookEV returns the expected net return per $1 staked at a book's
// price, given the fair probability: ev = p*netProfit - (1-p). EVPercent is
// the same figure scaled to a percentage. Edge, the simpler display metric,
// is the probability difference fairProb - bookImpliedProb.
func (e *Engine) ComputeBookEV(bookKey string, odds int, fairProb float64) models.EVResult {
	netProfit := e.fees.Lookup(bookKey).Apply(oddsmath.AmericanToProfit(odds))
	ev := fairProb*netProfit - (1.0 - fairProb)

	return models.EVResult{
		BookKey:          bookKey,
		Price:            odds,
		EV:               ev,
		EVPercent:        ev * 100.0,
		Edge:             Edge(fairProb, odds),
		FairProbability:  fairProb,
		FairAmericanOdds: oddsmath.ProbabilityToAmerican(fairProb),
	}
}

// Edge returns the probability difference between the fair estimate and the
// book's implied probability. Zero-probability prices return 0.
func Edge(fairProb float64, odds int) float64 {
	implied := oddsmath.AmericanToProbability(odds)
	if implied <= 0 {
		return 0
	}
	return fairProb - implied
}

// ComputeGroupEV evaluates every book's price on every side of a group
// against the group's fair odds, reporting each book's EV and the best found.
// Sides without a fair-odds result are skipped. The scan is linear in the
// number of quotes and independent across groups.
func (e *Engine) ComputeGroupEV(group *models.BetGroup, fair *models.BetGroupFairOdds) *models.GroupEVReport {
	report := &models.GroupEVReport{GroupKey: market.BetGroupKey(group)}
	if fair == nil {
		return report
	}

	for i := range group.Selections {
		sel := &group.Selections[i]
		fairResult, ok := fair.Result(sel.Side)
		if !ok {
			continue
		}

		for _, price := range sel.Prices {
			if !oddsmath.IsValidAmericanOdds(price.Price) {
				continue
			}
			result := e.ComputeBookEV(price.BookKey, price.Price, fairResult.FairProbability)
			result.Side = sel.Side
			result.Confidence = fairResult.Confidence
			report.PerBook = append(report.PerBook, result)

			if report.Best == nil || result.EV > report.Best.EV {
				best := result
				report.Best = &best
			}
		}
	}

	if e.logger != nil && report.Best != nil {
		e.logger.WithFields(logrus.Fields{
			"group":      report.GroupKey,
			"book":       report.Best.BookKey,
			"ev_percent": report.Best.EVPercent,
		}).Debug("Computed group EV")
	}

	return report
}
