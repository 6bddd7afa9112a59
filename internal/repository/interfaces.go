// Package repository provides PostgreSQL persistence for feed snapshots,
// computation passes and detected opportunities.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/fairline/internal/engine"
	"github.com/yourusername/fairline/internal/models"
)

// SnapshotRepository defines the interface for odds snapshot data access
type SnapshotRepository interface {
	InsertBatch(ctx context.Context, fetchedAt time.Time, records []*models.BetRecord) error
	GetByGameID(ctx context.Context, gameID string, start, end time.Time) ([]*models.BetRecord, error)
	GetLatestForLeague(ctx context.Context, league string) ([]*models.BetRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PassRepository defines the interface for computation pass data access
type PassRepository interface {
	Create(ctx context.Context, pass *engine.PassResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*PassSummary, error)
	GetRecent(ctx context.Context, limit int) ([]*PassSummary, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// OpportunityRepository defines the interface for positive-EV opportunity data access
type OpportunityRepository interface {
	InsertBatch(ctx context.Context, passID uuid.UUID, opportunities []Opportunity) error
	GetTopSince(ctx context.Context, since time.Time, limit int) ([]Opportunity, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PassSummary is the persisted shape of a computation pass.
type PassSummary struct {
	PassID      uuid.UUID     `json:"pass_id"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	RecordCount int           `json:"record_count"`
	PairCount   int           `json:"pair_count"`
	GroupCount  int           `json:"group_count"`
}

// Opportunity is a persisted positive-EV quote, flattened from a pass report.
type Opportunity struct {
	PassID           uuid.UUID   `json:"pass_id"`
	GroupKey         string      `json:"group_key"`
	BookKey          string      `json:"book_key"`
	Side             models.Side `json:"side"`
	Price            int         `json:"price"`
	EVPercent        float64     `json:"ev_percent"`
	Edge             float64     `json:"edge"`
	FairProbability  float64     `json:"fair_probability"`
	FairAmericanOdds int         `json:"fair_american_odds"`
	Confidence       string      `json:"confidence"`
	Strategy         string      `json:"strategy"`
	FoundAt          time.Time   `json:"found_at"`
}
