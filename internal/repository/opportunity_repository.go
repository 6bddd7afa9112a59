package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/fairline/internal/database"
	"github.com/yourusername/fairline/internal/engine"
	"github.com/yourusername/fairline/internal/models"
)

// PostgresOpportunityRepository implements OpportunityRepository for PostgreSQL
type PostgresOpportunityRepository struct {
	db *database.DB
}

// NewPostgresOpportunityRepository creates a new opportunity repository
func NewPostgresOpportunityRepository(db *database.DB) OpportunityRepository {
	return &PostgresOpportunityRepository{db: db}
}

// InsertBatch inserts positive-EV opportunities using high-performance batch insert
func (r *PostgresOpportunityRepository) InsertBatch(ctx context.Context, passID uuid.UUID, opportunities []Opportunity) error {
	if len(opportunities) == 0 {
		return nil
	}

	columns := []string{
		"pass_id", "group_key", "book_key", "side", "price", "ev_percent",
		"edge", "fair_probability", "fair_american_odds", "confidence", "strategy", "found_at",
	}

	copyFromSource := make([][]interface{}, len(opportunities))
	for i, opp := range opportunities {
		copyFromSource[i] = []interface{}{
			passID, opp.GroupKey, opp.BookKey, string(opp.Side), opp.Price, opp.EVPercent,
			opp.Edge, opp.FairProbability, opp.FairAmericanOdds, opp.Confidence, opp.Strategy, opp.FoundAt,
		}
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"opportunities"}, columns, pgx.CopyFromRows(copyFromSource))
	if err != nil {
		return fmt.Errorf("failed to batch insert opportunities: %w", err)
	}

	if count != int64(len(opportunities)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(opportunities))
	}

	return nil
}

// GetTopSince retrieves the highest-EV opportunities found after the given time
func (r *PostgresOpportunityRepository) GetTopSince(ctx context.Context, since time.Time, limit int) ([]Opportunity, error) {
	query := `
		SELECT pass_id, group_key, book_key, side, price, ev_percent,
		       edge, fair_probability, fair_american_odds, confidence, strategy, found_at
		FROM opportunities
		WHERE found_at >= $1
		ORDER BY ev_percent DESC
		LIMIT $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunities: %w", err)
	}
	defer rows.Close()

	var opportunities []Opportunity
	for rows.Next() {
		var opp Opportunity
		var side string
		err := rows.Scan(
			&opp.PassID, &opp.GroupKey, &opp.BookKey, &side, &opp.Price, &opp.EVPercent,
			&opp.Edge, &opp.FairProbability, &opp.FairAmericanOdds, &opp.Confidence, &opp.Strategy, &opp.FoundAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity row: %w", err)
		}
		opp.Side = models.Side(side)
		opportunities = append(opportunities, opp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate opportunity rows: %w", err)
	}

	return opportunities, nil
}

// DeleteOlderThan removes opportunity rows older than the cutoff and reports how many
func (r *PostgresOpportunityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.GetPool().Exec(ctx, "DELETE FROM opportunities WHERE found_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old opportunities: %w", err)
	}
	return tag.RowsAffected(), nil
}

// OpportunitiesFromPass flattens a pass result into persistable opportunity rows,
// keeping only entries at or above the minimum EV percent.
func OpportunitiesFromPass(pass *engine.PassResult, minEVPercent float64) []Opportunity {
	var opportunities []Opportunity
	for _, report := range pass.Reports {
		if report.EV == nil {
			continue
		}
		for _, res := range report.EV.PerBook {
			if res.EVPercent < minEVPercent || res.EV <= 0 {
				continue
			}
			opportunities = append(opportunities, Opportunity{
				PassID:           pass.PassID,
				GroupKey:         report.GroupKey,
				BookKey:          res.BookKey,
				Side:             res.Side,
				Price:            res.Price,
				EVPercent:        res.EVPercent,
				Edge:             res.Edge,
				FairProbability:  res.FairProbability,
				FairAmericanOdds: res.FairAmericanOdds,
				Confidence:       res.Confidence.String(),
				Strategy:         report.Strategy,
				FoundAt:          pass.StartedAt,
			})
		}
	}
	return opportunities
}
