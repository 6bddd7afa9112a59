// Package ev turns a quoted price, a fair probability and a book's fee
// profile into an expected-value figure, per book and best-of-group.
package ev

import "strings"

// FeeType is how a book charges for winning wagers.
type FeeType string

const (
	FeeNone              FeeType = "none"
	FeePercentOnWinnings FeeType = "percentOnWinnings"
)

// FeeProfile is a book's immutable fee schedule.
type FeeProfile struct {
	Type FeeType `mapstructure:"type"`
	Rate float64 `mapstructure:"rate"`
}

// Apply converts gross profit into net profit under this profile.
func (p FeeProfile) Apply(grossProfit float64) float64 {
	if p.Type == FeePercentOnWinnings {
		return grossProfit * (1.0 - p.Rate)
	}
	return grossProfit
}

// FeeTable maps lowercase book keys to fee profiles. Books absent from the
// table pay no fee.
type FeeTable map[string]FeeProfile

// Lookup returns the fee profile for a book, defaulting to no fee for
// unknown books. Lookup is case-insensitive on the book key.
func (t FeeTable) Lookup(bookKey string) FeeProfile {
	if t == nil {
		return FeeProfile{Type: FeeNone}
	}
	if p, ok := t[strings.ToLower(bookKey)]; ok {
		return p
	}
	return FeeProfile{Type: FeeNone}
}

// DefaultFeeTable returns the built-in fee profiles for exchange-style books
// that charge a commission on winnings.
func DefaultFeeTable() FeeTable {
	return FeeTable{
		"novig":    {Type: FeePercentOnWinnings, Rate: 0.02},
		"prophetx": {Type: FeePercentOnWinnings, Rate: 0.02},
		"kalshi":   {Type: FeePercentOnWinnings, Rate: 0.07},
	}
}
