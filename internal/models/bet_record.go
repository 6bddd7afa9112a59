package models

import "time"

// BookPrice is a single sportsbook quote attached to a selection.
type BookPrice struct {
	// Price carries no validation tag: a zero value is an invalid quote, not
	// a structural defect, and is excluded downstream by the odds validator.
	BookKey    string    `json:"book_key" validate:"required"`
	Price      int       `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
}

// BetRecord is a flat, individually-fetched quote record as supplied by the
// odds feed: one side of one proposition, with every book's price for that
// side. Records arrive ungrouped; pairing discovers which records are
// opposite sides of the same market.
type BetRecord struct {
	ID        string   `json:"id" validate:"required"`
	GameID    string   `json:"game_id" validate:"required"`
	League    string   `json:"league" validate:"required"`
	HomeTeam  string   `json:"home_team" validate:"required"`
	AwayTeam  string   `json:"away_team" validate:"required"`
	MarketKey string   `json:"market_key" validate:"required"`
	SubjectID string   `json:"subject_id,omitempty"`
	Line      *float64 `json:"line,omitempty"`
	// Selection is the side label: a team name for moneylines and spreads,
	// "Over"/"Under" for totals.
	Selection string      `json:"selection" validate:"required"`
	Prices    []BookPrice `json:"prices" validate:"dive"`

	// Server-side annotations. When the upstream feed has already run its own
	// sharp-book devig, these short-circuit local computation.
	TrueProb         *float64 `json:"true_prob,omitempty"`
	EVConfidenceTier string   `json:"ev_confidence_tier,omitempty"`
	ReferencePrice   *int     `json:"reference_price,omitempty"`
	EVDisabledReason string   `json:"ev_disabled_reason,omitempty"`
}

// Market returns the parsed market type for the record's raw market key.
func (r *BetRecord) Market() MarketType {
	return ParseMarketType(r.MarketKey)
}
