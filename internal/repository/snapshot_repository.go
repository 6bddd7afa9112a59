package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/fairline/internal/database"
	"github.com/yourusername/fairline/internal/models"
)

// PostgresSnapshotRepository implements SnapshotRepository for PostgreSQL
type PostgresSnapshotRepository struct {
	db *database.DB
}

// NewPostgresSnapshotRepository creates a new snapshot repository
func NewPostgresSnapshotRepository(db *database.DB) SnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// InsertBatch inserts a snapshot of feed records using high-performance batch insert
func (r *PostgresSnapshotRepository) InsertBatch(ctx context.Context, fetchedAt time.Time, records []*models.BetRecord) error {
	if len(records) == 0 {
		return nil
	}

	// Use COPY for high-performance bulk insert
	columns := []string{
		"fetched_at", "record_id", "game_id", "league", "home_team", "away_team",
		"market_key", "subject_id", "line", "selection", "prices",
	}

	copyFromSource := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		prices, err := json.Marshal(rec.Prices)
		if err != nil {
			return fmt.Errorf("failed to marshal prices for record %s: %w", rec.ID, err)
		}
		copyFromSource = append(copyFromSource, []interface{}{
			fetchedAt, rec.ID, rec.GameID, rec.League, rec.HomeTeam, rec.AwayTeam,
			rec.MarketKey, rec.SubjectID, rec.Line, rec.Selection, prices,
		})
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"odds_snapshots"}, columns, pgx.CopyFromRows(copyFromSource))
	if err != nil {
		return fmt.Errorf("failed to batch insert odds snapshots: %w", err)
	}

	if count != int64(len(records)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(records))
	}

	return nil
}

// GetByGameID retrieves snapshot records for a specific game within a time range
func (r *PostgresSnapshotRepository) GetByGameID(ctx context.Context, gameID string, start, end time.Time) ([]*models.BetRecord, error) {
	query := `
		SELECT record_id, game_id, league, home_team, away_team, market_key, subject_id, line, selection, prices
		FROM odds_snapshots
		WHERE game_id = $1 AND fetched_at >= $2 AND fetched_at <= $3
		ORDER BY fetched_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetLatestForLeague retrieves the most recent snapshot's records for a league
func (r *PostgresSnapshotRepository) GetLatestForLeague(ctx context.Context, league string) ([]*models.BetRecord, error) {
	query := `
		SELECT record_id, game_id, league, home_team, away_team, market_key, subject_id, line, selection, prices
		FROM odds_snapshots
		WHERE league = $1
		  AND fetched_at = (SELECT MAX(fetched_at) FROM odds_snapshots WHERE league = $1)
	`

	rows, err := r.db.GetPool().Query(ctx, query, league)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// DeleteOlderThan removes snapshot rows older than the cutoff and reports how many
func (r *PostgresSnapshotRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.GetPool().Exec(ctx, "DELETE FROM odds_snapshots WHERE fetched_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRecords(rows pgx.Rows) ([]*models.BetRecord, error) {
	var records []*models.BetRecord
	for rows.Next() {
		var rec models.BetRecord
		var prices []byte
		err := rows.Scan(
			&rec.ID, &rec.GameID, &rec.League, &rec.HomeTeam, &rec.AwayTeam,
			&rec.MarketKey, &rec.SubjectID, &rec.Line, &rec.Selection, &prices,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		if err := json.Unmarshal(prices, &rec.Prices); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prices for record %s: %w", rec.ID, err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}

	return records, nil
}
