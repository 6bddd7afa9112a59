package models

import "sort"

// PairingStatus describes how well a bet group's sides are covered by quotes.
type PairingStatus string

const (
	// PairingStatusPaired means at least one book has quoted every side.
	PairingStatusPaired PairingStatus = "paired"
	// PairingStatusOneSided means fewer than two sides have any quotes.
	PairingStatusOneSided PairingStatus = "oneSided"
	// PairingStatusUnpaired means multiple sides have quotes but no single
	// book covers them all.
	PairingStatusUnpaired PairingStatus = "unpaired"
)

// Selection is one outcome of a bet group with its per-book prices. A
// selection holds at most one price per book per snapshot; the group builders
// enforce that invariant.
type Selection struct {
	Side      Side
	Label     string
	SubjectID string
	Prices    []BookPrice
}

// HasPrices reports whether any book has quoted this selection.
func (s *Selection) HasPrices() bool {
	return len(s.Prices) > 0
}

// PriceFor returns this selection's price at the given book, if quoted.
func (s *Selection) PriceFor(bookKey string) (BookPrice, bool) {
	for _, p := range s.Prices {
		if p.BookKey == bookKey {
			return p, true
		}
	}
	return BookPrice{}, false
}

// BookKeys returns the set of books quoting this selection.
func (s *Selection) BookKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(s.Prices))
	for _, p := range s.Prices {
		keys[p.BookKey] = struct{}{}
	}
	return keys
}

// BetGroup is the atomic, book-independent wagering proposition: one game,
// one market, optionally one subject and line, and two or more selections.
// Groups own their selections exclusively; nothing holds a back-reference.
type BetGroup struct {
	GameID     string
	Market     MarketType
	SubjectID  string
	Line       *float64
	Selections []Selection
}

// Selection returns the group's selection for the given side, if present.
func (g *BetGroup) Selection(side Side) (*Selection, bool) {
	for i := range g.Selections {
		if g.Selections[i].Side == side {
			return &g.Selections[i], true
		}
	}
	return nil, false
}

// CommonBooks returns the books quoting every selection in the group. An
// empty result means no single book covers all sides.
func (g *BetGroup) CommonBooks() []string {
	if len(g.Selections) == 0 {
		return nil
	}

	common := g.Selections[0].BookKeys()
	for i := 1; i < len(g.Selections); i++ {
		next := g.Selections[i].BookKeys()
		for book := range common {
			if _, ok := next[book]; !ok {
				delete(common, book)
			}
		}
	}

	books := make([]string, 0, len(common))
	for book := range common {
		books = append(books, book)
	}
	sort.Strings(books)
	return books
}
