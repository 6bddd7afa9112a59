package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/fairline/internal/models"
)

// FloatPtr returns a pointer to the given float, for optional line fields.
func FloatPtr(f float64) *float64 { return &f }

// IntPtr returns a pointer to the given int.
func IntPtr(i int) *int { return &i }

// NewMoneylineRecord builds a single-side moneyline record with the given
// book prices, suitable for pairing tests.
func NewMoneylineRecord(gameID, league, home, away, selection string, prices map[string]int) *models.BetRecord {
	observed := time.Now().UTC()
	rec := &models.BetRecord{
		ID:        gameID + ":" + selection,
		GameID:    gameID,
		League:    league,
		HomeTeam:  home,
		AwayTeam:  away,
		MarketKey: "moneyline",
		Selection: selection,
	}
	for book, price := range prices {
		rec.Prices = append(rec.Prices, models.BookPrice{
			BookKey:    book,
			Price:      price,
			ObservedAt: observed,
		})
	}
	return rec
}

// NewSpreadRecord builds a single-side spread record at the given line.
func NewSpreadRecord(gameID, league, home, away, selection string, line float64, prices map[string]int) *models.BetRecord {
	rec := NewMoneylineRecord(gameID, league, home, away, selection, prices)
	rec.ID = gameID + ":spread:" + selection
	rec.MarketKey = "spread"
	rec.Line = FloatPtr(line)
	return rec
}

// PairedMoneyline returns both sides of a moneyline market with prices from
// a sharp and a soft book, enough for paired devig to run end to end. The
// selection labels are the team names, matching how the feed quotes sides.
func PairedMoneyline(gameID, league, home, away string) []*models.BetRecord {
	return []*models.BetRecord{
		NewMoneylineRecord(gameID, league, home, away, home, map[string]int{
			"pinnacle": -150,
			"fanduel":  -145,
		}),
		NewMoneylineRecord(gameID, league, home, away, away, map[string]int{
			"pinnacle": +130,
			"fanduel":  +125,
		}),
	}
}

// feedEnvelope mirrors the wire shape the odds feed serves per league.
type feedEnvelope struct {
	Records []feedRecordFixture `json:"records"`
}

type feedRecordFixture struct {
	ID        string             `json:"id"`
	GameID    string             `json:"gameId"`
	League    string             `json:"league"`
	HomeTeam  string             `json:"homeTeam"`
	AwayTeam  string             `json:"awayTeam"`
	MarketKey string             `json:"marketKey"`
	Line      *float64           `json:"line,omitempty"`
	Selection string             `json:"selection"`
	Prices    []feedPriceFixture `json:"prices"`
}

type feedPriceFixture struct {
	BookKey    string    `json:"bookKey"`
	Price      int       `json:"price"`
	ObservedAt time.Time `json:"observedAt"`
}

// NewMockFeedServer serves the given records for every league requested,
// asserting that callers send bearer auth.
func NewMockFeedServer(t *testing.T, apiKey string, records []*models.BetRecord) *httptest.Server {
	t.Helper()

	env := feedEnvelope{}
	for _, r := range records {
		fr := feedRecordFixture{
			ID:        r.ID,
			GameID:    r.GameID,
			League:    r.League,
			HomeTeam:  r.HomeTeam,
			AwayTeam:  r.AwayTeam,
			MarketKey: r.MarketKey,
			Line:      r.Line,
			Selection: r.Selection,
		}
		for _, p := range r.Prices {
			fr.Prices = append(fr.Prices, feedPriceFixture{
				BookKey:    p.BookKey,
				Price:      p.Price,
				ObservedAt: p.ObservedAt,
			})
		}
		env.Records = append(env.Records, fr)
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(env))
	}))
}
