// Package fairodds removes bookmaker margin from quoted prices and aggregates
// across books to estimate a fair probability per side of a proposition,
// together with a confidence tier reflecting how much data backed it.
package fairodds

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/fairline/internal/market"
	"github.com/yourusername/fairline/internal/models"
	"github.com/yourusername/fairline/internal/oddsmath"
)

// normalizationTolerance is how far the per-side fair probabilities may drift
// from summing to 1.0 before they are rescaled.
const normalizationTolerance = 0.001

// Engine computes fair odds for bet groups. It holds only immutable
// configuration; every computation is deterministic given its inputs.
type Engine struct {
	cfg    Config
	logger *logrus.Logger
}

// NewEngine creates a fair-odds engine with the given configuration.
func NewEngine(cfg Config, logger *logrus.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger}
}

// ComputeGroup estimates fair probabilities for every side of a group. When
// at least one book quotes all sides, each such book's margin is removed
// proportionally and the cross-book median is taken; otherwise the engine
// falls back to a median of single-sided implied probabilities with
// confidence capped at low.
func (e *Engine) ComputeGroup(group *models.BetGroup, league string) *models.BetGroupFairOdds {
	status := market.DeterminePairingStatus(group.Selections)

	if status == models.PairingStatusPaired {
		if fair := e.computePairedDevig(group, league); fair != nil {
			return fair
		}
		// No qualifying book survived price validation; degrade to consensus.
	}

	return e.computeMedianConsensus(group)
}

// computePairedDevig runs Strategy A: per-book proportional vig removal over
// the books that quote every side, restricted to the league's sharp books
// when any of them qualify.
func (e *Engine) computePairedDevig(group *models.BetGroup, league string) *models.BetGroupFairOdds {
	common := group.CommonBooks()

	contributing := common
	sharpUsed := false
	if sharp := intersectOrdered(e.cfg.SharpBooksFor(league), common); len(sharp) > 0 {
		contributing = sharp
		sharpUsed = true
	}

	perSide := make(map[models.Side][]float64, len(group.Selections))
	var vigs []float64

	for _, book := range contributing {
		probs := make(map[models.Side]float64, len(group.Selections))
		total := 0.0
		ok := true
		for i := range group.Selections {
			sel := &group.Selections[i]
			price, found := sel.PriceFor(book)
			if !found || !oddsmath.IsValidAmericanOdds(price.Price) {
				ok = false
				break
			}
			p := oddsmath.AmericanToProbability(price.Price)
			probs[sel.Side] = p
			total += p
		}
		if !ok || total <= 0 {
			// Book excluded from this strategy's contributing set.
			continue
		}

		vigs = append(vigs, total-1.0)
		for side, p := range probs {
			perSide[side] = append(perSide[side], p/total)
		}
	}

	if len(vigs) == 0 {
		return nil
	}

	avgVig := 0.0
	for _, v := range vigs {
		avgVig += v
	}
	avgVig /= float64(len(vigs))

	conf := e.pairedConfidence(len(vigs), sharpUsed)

	var sharpBooksUsed []string
	if sharpUsed {
		sharpBooksUsed = contributing
	}

	results := make(map[models.Side]models.FairOddsResult, len(perSide))
	for side, devigged := range perSide {
		fair := oddsmath.Median(devigged)
		results[side] = models.FairOddsResult{
			Side:             side,
			FairProbability:  fair,
			FairAmericanOdds: oddsmath.ProbabilityToAmerican(fair),
			Confidence:       conf,
			SharpBooksUsed:   sharpBooksUsed,
			VigRemoved:       avgVig,
		}
	}
	normalize(results)

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"group":    market.BetGroupKey(group),
			"books":    len(vigs),
			"sharp":    sharpUsed,
			"avg_vig":  avgVig,
			"strategy": StrategyPairedDevig.String(),
		}).Debug("Computed paired fair odds")
	}

	return &models.BetGroupFairOdds{
		GroupKey:   market.BetGroupKey(group),
		Results:    results,
		MarketVig:  avgVig,
		Strategy:   StrategyPairedDevig.String(),
		ComputedAt: time.Now().UTC(),
	}
}

// computeMedianConsensus runs Strategy B: the per-side median of implied
// probabilities with nothing to devig against. Confidence never exceeds low,
// and drops to none when the books disagree too widely.
func (e *Engine) computeMedianConsensus(group *models.BetGroup) *models.BetGroupFairOdds {
	threshold := e.cfg.MaxConsensusSpread
	if group.Market.Kind == models.MarketSpread {
		threshold = e.cfg.SpreadMarketMaxSpread
	}

	results := make(map[models.Side]models.FairOddsResult)
	for i := range group.Selections {
		sel := &group.Selections[i]
		var implied []float64
		for _, price := range sel.Prices {
			if oddsmath.IsValidAmericanOdds(price.Price) {
				implied = append(implied, oddsmath.AmericanToProbability(price.Price))
			}
		}
		if len(implied) == 0 {
			continue
		}

		conf := models.ConfidenceLow
		if spreadOf(implied) > threshold {
			conf = models.ConfidenceNone
		}

		fair := oddsmath.Median(implied)
		results[sel.Side] = models.FairOddsResult{
			Side:             sel.Side,
			FairProbability:  fair,
			FairAmericanOdds: oddsmath.ProbabilityToAmerican(fair),
			Confidence:       conf,
		}
	}

	// For two-way markets with only one quoted side, the other side is the
	// complement.
	if len(group.Selections) == 2 && len(results) == 1 {
		for i := range group.Selections {
			sel := &group.Selections[i]
			if _, ok := results[sel.Side]; ok {
				continue
			}
			opp, ok := sel.Side.Opposite()
			if !ok {
				continue
			}
			if known, ok := results[opp]; ok {
				fair := 1.0 - known.FairProbability
				results[sel.Side] = models.FairOddsResult{
					Side:             sel.Side,
					FairProbability:  fair,
					FairAmericanOdds: oddsmath.ProbabilityToAmerican(fair),
					Confidence:       known.Confidence,
				}
			}
		}
	}

	normalize(results)

	return &models.BetGroupFairOdds{
		GroupKey:   market.BetGroupKey(group),
		Results:    results,
		Strategy:   StrategyMedianConsensus.String(),
		ComputedAt: time.Now().UTC(),
	}
}

// FromServerAnnotations builds the fair-odds aggregate for a two-way group
// whose feed record already carries a server-computed fair probability and
// confidence tier. The opposite side gets the complement probability.
func FromServerAnnotations(group *models.BetGroup, side models.Side, trueProb float64, tier string) *models.BetGroupFairOdds {
	conf := models.ParseConfidence(tier)

	results := map[models.Side]models.FairOddsResult{
		side: {
			Side:             side,
			FairProbability:  trueProb,
			FairAmericanOdds: oddsmath.ProbabilityToAmerican(trueProb),
			Confidence:       conf,
		},
	}
	if opp, ok := side.Opposite(); ok {
		results[opp] = models.FairOddsResult{
			Side:             opp,
			FairProbability:  1.0 - trueProb,
			FairAmericanOdds: oddsmath.ProbabilityToAmerican(1.0 - trueProb),
			Confidence:       conf,
		}
	}

	return &models.BetGroupFairOdds{
		GroupKey:   market.BetGroupKey(group),
		Results:    results,
		Strategy:   StrategyServerProvided.String(),
		ComputedAt: time.Now().UTC(),
	}
}

func (e *Engine) pairedConfidence(bookCount int, sharpUsed bool) models.Confidence {
	if sharpUsed {
		switch {
		case bookCount >= e.cfg.MinSharpBooksForHigh:
			return models.ConfidenceHigh
		case bookCount >= e.cfg.MinSharpBooksForMedium:
			return models.ConfidenceMedium
		default:
			return models.ConfidenceLow
		}
	}

	switch {
	case bookCount >= e.cfg.MinCommonBooksForHigh:
		return models.ConfidenceHigh
	case bookCount >= e.cfg.MinCommonBooksForMedium:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// normalize rescales per-side probabilities so they sum to 1.0 whenever the
// raw sum drifts more than the tolerance away. Post-condition for every
// multi-side aggregate.
func normalize(results map[models.Side]models.FairOddsResult) {
	if len(results) < 2 {
		return
	}

	sum := 0.0
	for _, r := range results {
		sum += r.FairProbability
	}
	if sum <= 0 || math.Abs(sum-1.0) <= normalizationTolerance {
		return
	}

	for side, r := range results {
		r.FairProbability /= sum
		r.FairAmericanOdds = oddsmath.ProbabilityToAmerican(r.FairProbability)
		results[side] = r
	}
}

// intersectOrdered returns the members of ordered that appear in candidates,
// preserving the order of the first argument.
func intersectOrdered(ordered, candidates []string) []string {
	if len(ordered) == 0 || len(candidates) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		set[c] = struct{}{}
	}

	var out []string
	for _, o := range ordered {
		if _, ok := set[o]; ok {
			out = append(out, o)
		}
	}
	return out
}

func spreadOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}
