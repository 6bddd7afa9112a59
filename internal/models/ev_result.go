package models

// EVResult is the expected-value figure for one book's price on one side,
// net of the book's fee profile.
type EVResult struct {
	BookKey          string     `json:"book_key"`
	Side             Side       `json:"side"`
	Price            int        `json:"price"`
	EV               float64    `json:"ev"`
	EVPercent        float64    `json:"ev_percent"`
	Edge             float64    `json:"edge"`
	FairProbability  float64    `json:"fair_probability"`
	FairAmericanOdds int        `json:"fair_american_odds"`
	Confidence       Confidence `json:"confidence"`
}

// GroupEVReport collects per-book EV results for a bet group along with the
// best figure found across all books and sides.
type GroupEVReport struct {
	GroupKey string     `json:"group_key"`
	Best     *EVResult  `json:"best,omitempty"`
	PerBook  []EVResult `json:"per_book"`
}
