// Package engine orchestrates a full computation pass: validate the feed
// snapshot, discover opposite-side pairings, remove vig, and score every
// book's price for expected value.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fairline/internal/ev"
	"github.com/yourusername/fairline/internal/fairodds"
	"github.com/yourusername/fairline/internal/market"
	"github.com/yourusername/fairline/internal/metrics"
	"github.com/yourusername/fairline/internal/models"
	"github.com/yourusername/fairline/internal/pairing"
)

// Engine runs computation passes over feed snapshots. All configuration is
// fixed at construction; passes share no mutable state and are safe to run
// concurrently.
type Engine struct {
	fair     *fairodds.Engine
	ev       *ev.Engine
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewEngine wires a computation engine from its configuration.
func NewEngine(fairCfg fairodds.Config, fees ev.FeeTable, logger *logrus.Logger) *Engine {
	return &Engine{
		fair:     fairodds.NewEngine(fairCfg, logger),
		ev:       ev.NewEngine(fees, logger),
		validate: validator.New(),
		logger:   logger,
	}
}

// GroupReport is the outcome for one proposition within a pass.
type GroupReport struct {
	GroupKey string                   `json:"group_key"`
	Status   models.PairingStatus     `json:"pairing_status"`
	Strategy string                   `json:"strategy"`
	FairOdds *models.BetGroupFairOdds `json:"fair_odds,omitempty"`
	EV       *models.GroupEVReport    `json:"ev,omitempty"`
	// DisabledReason is set when the feed explicitly disabled EV for the
	// underlying record; fair odds may still be present for display.
	DisabledReason string `json:"disabled_reason,omitempty"`
}

// PassResult summarizes one full computation pass.
type PassResult struct {
	PassID      uuid.UUID     `json:"pass_id"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	RecordCount int           `json:"record_count"`
	PairCount   int           `json:"pair_count"`
	Reports     []GroupReport `json:"reports"`
}

// RunPass computes fair odds and EV for an entire snapshot of feed records.
// Pairing completes fully before any fair-odds computation begins; after
// that, each group is independent. Malformed records abort the pass with
// ErrInvalidInput; every softer failure degrades per group instead.
func (e *Engine) RunPass(records []*models.BetRecord) (*PassResult, error) {
	started := time.Now().UTC()
	result := &PassResult{
		PassID:      uuid.New(),
		StartedAt:   started,
		RecordCount: len(records),
	}

	for _, rec := range records {
		if err := e.validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("%w: record %q: %v", models.ErrInvalidInput, rec.ID, err)
		}
	}

	pairs := pairing.PairBets(records)
	result.PairCount = len(pairs) / 2
	metrics.PairsFound.Add(float64(result.PairCount))

	processed := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, done := processed[rec.ID]; done {
			continue
		}
		processed[rec.ID] = struct{}{}

		opposite := pairs[rec.ID]
		if opposite != nil {
			processed[opposite.ID] = struct{}{}
		}

		report, ok := e.computeGroup(rec, opposite)
		if !ok {
			continue
		}
		result.Reports = append(result.Reports, report)
	}

	result.Duration = time.Since(started)
	metrics.PassesTotal.Inc()
	metrics.RecordsProcessed.Add(float64(len(records)))
	metrics.PassDuration.Observe(result.Duration.Seconds())

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"pass_id":  result.PassID,
			"records":  result.RecordCount,
			"pairs":    result.PairCount,
			"groups":   len(result.Reports),
			"duration": result.Duration,
		}).Info("Computation pass complete")
	}

	return result, nil
}

// computeGroup assembles a bet group from a record and its paired opposite
// (when one exists) and runs the fair-odds and EV computations for it.
func (e *Engine) computeGroup(rec, opposite *models.BetRecord) (GroupReport, bool) {
	group, side, ok := e.buildGroup(rec, opposite)
	if !ok {
		return GroupReport{}, false
	}

	status := market.DeterminePairingStatus(group.Selections)
	strategy := fairodds.SelectStrategy(rec.TrueProb, status)
	metrics.StrategyUsed.WithLabelValues(strategy.String()).Inc()

	var fair *models.BetGroupFairOdds
	if strategy == fairodds.StrategyServerProvided {
		fair = fairodds.FromServerAnnotations(group, side, *rec.TrueProb, rec.EVConfidenceTier)
	} else {
		fair = e.fair.ComputeGroup(group, rec.League)
	}

	report := GroupReport{
		GroupKey: fair.GroupKey,
		Status:   status,
		Strategy: fair.Strategy,
		FairOdds: fair,
	}

	if rec.EVDisabledReason != "" {
		report.DisabledReason = rec.EVDisabledReason
		return report, true
	}

	report.EV = e.ev.ComputeGroupEV(group, fair)
	if report.EV.Best != nil && report.EV.Best.EV > 0 {
		metrics.PositiveEVFound.Inc()
	}
	return report, true
}

// buildGroup turns one or two flat feed records into a canonical bet group.
// Returns the side the primary record speaks for, so server annotations can
// be attributed. Records whose selection label cannot be classified are
// skipped rather than failing the pass.
func (e *Engine) buildGroup(rec, opposite *models.BetRecord) (*models.BetGroup, models.Side, bool) {
	side, ok := sideForRecord(rec)
	if !ok {
		if e.logger != nil {
			e.logger.WithFields(logrus.Fields{
				"record":    rec.ID,
				"selection": rec.Selection,
			}).Debug("Skipping record with unclassifiable selection")
		}
		return nil, "", false
	}

	selections := []models.Selection{{
		Side:      side,
		Label:     rec.Selection,
		SubjectID: rec.SubjectID,
		Prices:    market.DedupePrices(rec.Prices),
	}}

	if opposite != nil {
		if oppSide, ok := sideForRecord(opposite); ok && oppSide != side {
			selections = append(selections, models.Selection{
				Side:      oppSide,
				Label:     opposite.Selection,
				SubjectID: opposite.SubjectID,
				Prices:    market.DedupePrices(opposite.Prices),
			})
		}
	} else if oppSide, ok := side.Opposite(); ok {
		// Keep the unquoted opposite side in the group so pairing status and
		// complement probabilities have a slot to land in.
		selections = append(selections, models.Selection{Side: oppSide})
	}

	return &models.BetGroup{
		GameID:     rec.GameID,
		Market:     rec.Market(),
		SubjectID:  rec.SubjectID,
		Line:       rec.Line,
		Selections: selections,
	}, side, true
}

// sideForRecord classifies a record's selection label into a canonical side.
func sideForRecord(rec *models.BetRecord) (models.Side, bool) {
	switch strings.ToLower(rec.Selection) {
	case "over":
		return models.SideOver, true
	case "under":
		return models.SideUnder, true
	case "draw":
		return models.SideDraw, true
	}
	if strings.EqualFold(rec.Selection, rec.HomeTeam) {
		return models.SideHome, true
	}
	if strings.EqualFold(rec.Selection, rec.AwayTeam) {
		return models.SideAway, true
	}
	return "", false
}
