package models

import "time"

// FairOddsResult is the per-selection output of vig removal and aggregation.
type FairOddsResult struct {
	Side             Side       `json:"side"`
	FairProbability  float64    `json:"fair_probability"`
	FairAmericanOdds int        `json:"fair_american_odds"`
	Confidence       Confidence `json:"confidence"`
	SharpBooksUsed   []string   `json:"sharp_books_used,omitempty"`
	VigRemoved       float64    `json:"vig_removed"`
}

// BetGroupFairOdds aggregates fair-odds results for every side of a group.
type BetGroupFairOdds struct {
	GroupKey   string                  `json:"group_key"`
	Results    map[Side]FairOddsResult `json:"results"`
	MarketVig  float64                 `json:"market_vig"`
	Strategy   string                  `json:"strategy"`
	ComputedAt time.Time               `json:"computed_at"`
}

// Result returns the fair-odds result for the given side, if computed.
func (f *BetGroupFairOdds) Result(side Side) (FairOddsResult, bool) {
	r, ok := f.Results[side]
	return r, ok
}
