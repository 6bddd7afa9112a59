package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/fairline/internal/database"
	"github.com/yourusername/fairline/internal/engine"
	"github.com/yourusername/fairline/internal/models"
)

// PostgresPassRepository implements PassRepository for PostgreSQL
type PostgresPassRepository struct {
	db *database.DB
}

// NewPostgresPassRepository creates a new pass repository
func NewPostgresPassRepository(db *database.DB) PassRepository {
	return &PostgresPassRepository{db: db}
}

// Create persists the summary row of a completed computation pass
func (r *PostgresPassRepository) Create(ctx context.Context, pass *engine.PassResult) error {
	query := `
		INSERT INTO passes (pass_id, started_at, duration_ms, record_count, pair_count, group_count)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		pass.PassID, pass.StartedAt, pass.Duration.Milliseconds(),
		pass.RecordCount, pass.PairCount, len(pass.Reports),
	)
	if err != nil {
		return fmt.Errorf("failed to insert pass: %w", err)
	}

	return nil
}

// GetByID retrieves a single pass summary
func (r *PostgresPassRepository) GetByID(ctx context.Context, id uuid.UUID) (*PassSummary, error) {
	query := `
		SELECT pass_id, started_at, duration_ms, record_count, pair_count, group_count
		FROM passes
		WHERE pass_id = $1
	`

	summary, err := scanPass(r.db.GetPool().QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pass: %w", err)
	}

	return summary, nil
}

// GetRecent retrieves the most recent pass summaries
func (r *PostgresPassRepository) GetRecent(ctx context.Context, limit int) ([]*PassSummary, error) {
	query := `
		SELECT pass_id, started_at, duration_ms, record_count, pair_count, group_count
		FROM passes
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent passes: %w", err)
	}
	defer rows.Close()

	var passes []*PassSummary
	for rows.Next() {
		summary, err := scanPass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pass row: %w", err)
		}
		passes = append(passes, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pass rows: %w", err)
	}

	return passes, nil
}

// DeleteOlderThan removes pass rows older than the cutoff and reports how many
func (r *PostgresPassRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.GetPool().Exec(ctx, "DELETE FROM passes WHERE started_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old passes: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPass(row pgx.Row) (*PassSummary, error) {
	var summary PassSummary
	var durationMs int64
	err := row.Scan(
		&summary.PassID, &summary.StartedAt, &durationMs,
		&summary.RecordCount, &summary.PairCount, &summary.GroupCount,
	)
	if err != nil {
		return nil, err
	}
	summary.Duration = time.Duration(durationMs) * time.Millisecond
	return &summary, nil
}
