package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/fairline/internal/database"
	"github.com/yourusername/fairline/internal/engine"
	"github.com/yourusername/fairline/internal/models"
)

func TestOpportunitiesFromPass(t *testing.T) {
	passID := uuid.New()
	started := time.Now().UTC()

	pass := &engine.PassResult{
		PassID:    passID,
		StartedAt: started,
		Reports: []engine.GroupReport{
			{
				GroupKey: "game1|moneyline||0.0",
				Strategy: "paired_devig",
				EV: &models.GroupEVReport{
					GroupKey: "game1|moneyline||0.0",
					PerBook: []models.EVResult{
						{BookKey: "fanduel", Side: models.SideAway, Price: 145, EV: 0.021, EVPercent: 2.1, Confidence: models.ConfidenceMedium},
						{BookKey: "draftkings", Side: models.SideHome, Price: -150, EV: -0.012, EVPercent: -1.2, Confidence: models.ConfidenceMedium},
						{BookKey: "caesars", Side: models.SideAway, Price: 130, EV: 0.004, EVPercent: 0.4, Confidence: models.ConfidenceMedium},
					},
				},
			},
			{
				// Fair-odds-only report, no EV computed
				GroupKey: "game2|moneyline||0.0",
				Strategy: "server_provided",
			},
		},
	}

	opportunities := OpportunitiesFromPass(pass, 1.0)

	if len(opportunities) != 1 {
		t.Fatalf("expected 1 opportunity above threshold, got %d", len(opportunities))
	}

	opp := opportunities[0]
	if opp.BookKey != "fanduel" {
		t.Errorf("expected fanduel, got %s", opp.BookKey)
	}
	if opp.PassID != passID {
		t.Errorf("expected pass ID %v, got %v", passID, opp.PassID)
	}
	if opp.Strategy != "paired_devig" {
		t.Errorf("expected paired_devig strategy, got %s", opp.Strategy)
	}
	if !opp.FoundAt.Equal(started) {
		t.Errorf("expected found_at %v, got %v", started, opp.FoundAt)
	}
}

func TestOpportunitiesFromPassZeroThresholdExcludesNegativeEV(t *testing.T) {
	pass := &engine.PassResult{
		PassID:    uuid.New(),
		StartedAt: time.Now().UTC(),
		Reports: []engine.GroupReport{
			{
				GroupKey: "game1|totals||41.5",
				EV: &models.GroupEVReport{
					PerBook: []models.EVResult{
						{BookKey: "betmgm", Side: models.SideOver, Price: -110, EV: -0.03, EVPercent: -3.0},
					},
				},
			},
		},
	}

	if got := OpportunitiesFromPass(pass, 0); len(got) != 0 {
		t.Errorf("expected no opportunities for negative EV, got %d", len(got))
	}
}

// TestSnapshotRoundTrip exercises the snapshot repository against a live
// database when one is configured, and is skipped otherwise.
func TestSnapshotRoundTrip(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("failed to create repositories: %v", err)
	}

	line := 6.5
	fetchedAt := time.Now().UTC()
	records := []*models.BetRecord{
		{
			ID:        uuid.NewString(),
			GameID:    "it-game-1",
			League:    "nfl",
			HomeTeam:  "Chiefs",
			AwayTeam:  "Bills",
			MarketKey: "spreads",
			Line:      &line,
			Selection: "Chiefs",
			Prices: []models.BookPrice{
				{BookKey: "pinnacle", Price: -110, ObservedAt: fetchedAt},
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := repos.Snapshot.InsertBatch(ctx, fetchedAt, records); err != nil {
		t.Fatalf("failed to insert snapshot batch: %v", err)
	}

	got, err := repos.Snapshot.GetByGameID(ctx, "it-game-1", fetchedAt.Add(-time.Minute), fetchedAt.Add(time.Minute))
	if err != nil {
		t.Fatalf("failed to fetch snapshot: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].GameID != "it-game-1" || len(got[0].Prices) != 1 {
		t.Errorf("unexpected record: %+v", got[0])
	}
}
