package market

import (
	"testing"

	"github.com/yourusername/fairline/internal/models"
)

func TestBetGroupKeyLineFormatting(t *testing.T) {
	whole := 7.0
	half := 7.5

	g := NewSpreadGroup("game1", whole, "DAL", "NYG", nil, nil)
	if got := BetGroupKey(g); got != "game1|spread||7.0" {
		t.Errorf("key for whole-number line = %q, want game1|spread||7.0", got)
	}

	g.Line = &half
	if got := BetGroupKey(g); got != "game1|spread||7.5" {
		t.Errorf("key for half-point line = %q", got)
	}

	ml := NewMoneylineGroup("game1", "DAL", "NYG", nil, nil)
	if got := BetGroupKey(ml); got != "game1|moneyline||" {
		t.Errorf("key without line = %q", got)
	}
}

func TestSelectionKey(t *testing.T) {
	g := NewTotalGroup("game2", 44.5, nil, nil)
	if got := SelectionKey(g, models.SideOver); got != "game2|total||44.5:over" {
		t.Errorf("selection key = %q", got)
	}
}

func TestPlayerPropKeyIncludesSubject(t *testing.T) {
	g := NewPlayerPropGroup("game3", "player-99", 27.5, nil, nil)
	if got := BetGroupKey(g); got != "game3|player_prop|player-99|27.5" {
		t.Errorf("player prop key = %q", got)
	}
}

func TestFormatAbsLine(t *testing.T) {
	neg := -7.0
	pos := 7.0
	if FormatAbsLine(&neg) != FormatAbsLine(&pos) {
		t.Error("opposite-signed lines must format identically")
	}
	if got := FormatAbsLine(nil); got != "nil" {
		t.Errorf("FormatAbsLine(nil) = %q, want nil", got)
	}
}

func TestDeterminePairingStatus(t *testing.T) {
	price := func(book string, odds int) models.BookPrice {
		return models.BookPrice{BookKey: book, Price: odds}
	}

	cases := []struct {
		name       string
		selections []models.Selection
		want       models.PairingStatus
	}{
		{
			"common book on both sides",
			[]models.Selection{
				{Side: models.SideHome, Prices: []models.BookPrice{price("pinnacle", -150)}},
				{Side: models.SideAway, Prices: []models.BookPrice{price("pinnacle", 130)}},
			},
			models.PairingStatusPaired,
		},
		{
			"single quoted side",
			[]models.Selection{
				{Side: models.SideOver, Prices: []models.BookPrice{price("fanduel", -110)}},
				{Side: models.SideUnder},
			},
			models.PairingStatusOneSided,
		},
		{
			"disjoint books",
			[]models.Selection{
				{Side: models.SideHome, Prices: []models.BookPrice{price("fanduel", -150)}},
				{Side: models.SideAway, Prices: []models.BookPrice{price("draftkings", 130)}},
			},
			models.PairingStatusUnpaired,
		},
		{
			"no quotes anywhere",
			[]models.Selection{
				{Side: models.SideHome},
				{Side: models.SideAway},
			},
			models.PairingStatusUnpaired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeterminePairingStatus(tc.selections); got != tc.want {
				t.Errorf("status = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestBuildersDedupeBookPrices(t *testing.T) {
	prices := []models.BookPrice{
		{BookKey: "fanduel", Price: -110},
		{BookKey: "fanduel", Price: -112},
		{BookKey: "caesars", Price: -108},
	}

	g := NewTotalGroup("game4", 210.5, prices, nil)
	over, _ := g.Selection(models.SideOver)
	if len(over.Prices) != 2 {
		t.Fatalf("expected duplicate book quote to be dropped, got %d prices", len(over.Prices))
	}
	if p, _ := over.PriceFor("fanduel"); p.Price != -110 {
		t.Errorf("expected first-seen price to win, got %d", p.Price)
	}
}

func TestDedupePricesDoesNotMutateInput(t *testing.T) {
	prices := []models.BookPrice{
		{BookKey: "booka", Price: -110},
		{BookKey: "booka", Price: -115},
		{BookKey: "bookb", Price: 100},
	}
	want := []models.BookPrice{
		{BookKey: "booka", Price: -110},
		{BookKey: "booka", Price: -115},
		{BookKey: "bookb", Price: 100},
	}

	out := DedupePrices(prices)
	if len(out) != 2 {
		t.Fatalf("deduped length = %d, want 2", len(out))
	}
	for i := range want {
		if prices[i] != want[i] {
			t.Fatalf("input slice mutated at %d: got %+v, want %+v", i, prices[i], want[i])
		}
	}
}
