// Package service orchestrates computation passes: fetching feed snapshots,
// running the fair-odds and EV engine, and persisting the results.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fairline/internal/datasource"
	"github.com/yourusername/fairline/internal/engine"
	"github.com/yourusername/fairline/internal/logger"
	"github.com/yourusername/fairline/internal/metrics"
	"github.com/yourusername/fairline/internal/models"
	"github.com/yourusername/fairline/internal/repository"
)

// PassObserver is notified when a computation pass completes.
type PassObserver interface {
	RecordPass(at time.Time)
}

// PassService runs full computation passes over the configured leagues.
type PassService struct {
	source       datasource.OddsSource
	engine       *engine.Engine
	repos        *repository.Repositories
	leagues      []string
	minEVPercent float64
	observer     PassObserver
	log          *logrus.Logger
	passLog      *logger.PassLogger
}

// Config holds the dependencies and tunables for a PassService.
type Config struct {
	Source       datasource.OddsSource
	Engine       *engine.Engine
	Repositories *repository.Repositories
	Leagues      []string
	MinEVPercent float64
	Observer     PassObserver
	Logger       *logrus.Logger
}

// NewPassService creates a new pass service
func NewPassService(cfg Config) *PassService {
	return &PassService{
		source:       cfg.Source,
		engine:       cfg.Engine,
		repos:        cfg.Repositories,
		leagues:      cfg.Leagues,
		minEVPercent: cfg.MinEVPercent,
		observer:     cfg.Observer,
		log:          cfg.Logger,
		passLog:      logger.NewPassLogger(cfg.Logger),
	}
}

// RunOnce fetches a snapshot for every configured league, runs one
// computation pass over the combined records and persists the outcome.
// A league whose fetch fails is logged and skipped; the pass proceeds
// with whatever records were fetched.
func (s *PassService) RunOnce(ctx context.Context) (*engine.PassResult, error) {
	records := s.fetchAll(ctx)
	if len(records) == 0 {
		return nil, fmt.Errorf("no records fetched: %w", models.ErrFeedUnavailable)
	}

	return s.RunOnRecords(ctx, records)
}

// RunOnRecords runs one computation pass over an already-fetched record set,
// such as a live update pushed over the stream.
func (s *PassService) RunOnRecords(ctx context.Context, records []*models.BetRecord) (*engine.PassResult, error) {
	pass, err := s.engine.RunPass(records)
	if err != nil {
		return nil, fmt.Errorf("pass failed: %w", err)
	}

	s.persist(ctx, pass, records)

	if s.observer != nil {
		s.observer.RecordPass(pass.StartedAt.Add(pass.Duration))
	}

	s.passLog.LogPassSummary(pass.PassID.String(), pass.RecordCount, pass.PairCount, len(pass.Reports), pass.Duration)
	s.logOpportunities(pass)

	return pass, nil
}

// Cleanup removes persisted rows older than the retention window.
func (s *PassService) Cleanup(ctx context.Context, retention time.Duration) error {
	if s.repos == nil {
		return nil
	}

	cutoff := time.Now().UTC().Add(-retention)

	snapshots, err := s.repos.Snapshot.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("snapshot cleanup failed: %w", err)
	}

	passes, err := s.repos.Pass.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("pass cleanup failed: %w", err)
	}

	opportunities, err := s.repos.Opportunity.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("opportunity cleanup failed: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"snapshots":     snapshots,
		"passes":        passes,
		"opportunities": opportunities,
		"cutoff":        cutoff,
	}).Info("Retention cleanup completed")

	return nil
}

func (s *PassService) fetchAll(ctx context.Context) []*models.BetRecord {
	var records []*models.BetRecord
	for _, league := range s.leagues {
		start := time.Now()
		fetched, err := s.source.FetchRecords(ctx, league)
		metrics.FeedFetchLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.FeedFetchErrors.Inc()
			s.passLog.LogFeedError(s.source.Name(), err)
			continue
		}
		records = append(records, fetched...)
	}
	return records
}

func (s *PassService) persist(ctx context.Context, pass *engine.PassResult, records []*models.BetRecord) {
	if s.repos == nil {
		return
	}

	if err := s.repos.Snapshot.InsertBatch(ctx, pass.StartedAt, records); err != nil {
		s.log.WithError(err).Warn("Failed to persist snapshot")
	}

	if err := s.repos.Pass.Create(ctx, pass); err != nil {
		s.log.WithError(err).Warn("Failed to persist pass")
	}

	opportunities := repository.OpportunitiesFromPass(pass, s.minEVPercent)
	if err := s.repos.Opportunity.InsertBatch(ctx, pass.PassID, opportunities); err != nil {
		s.log.WithError(err).Warn("Failed to persist opportunities")
	}
}

func (s *PassService) logOpportunities(pass *engine.PassResult) {
	bestEV := 0.0
	for _, report := range pass.Reports {
		if report.EV == nil || report.EV.Best == nil {
			continue
		}
		best := report.EV.Best
		if best.EVPercent > bestEV {
			bestEV = best.EVPercent
		}
		if best.EV > 0 && best.EVPercent >= s.minEVPercent {
			s.passLog.LogOpportunity(report.GroupKey, best.BookKey, string(best.Side), best.EVPercent, best.Confidence.String())
		}
	}

	metrics.LastPassRecords.Set(float64(pass.RecordCount))
	metrics.LastPassBestEVPercent.Set(bestEV)
}
