package models

import "testing"

func TestSideOpposite(t *testing.T) {
	cases := []struct {
		side Side
		want Side
		ok   bool
	}{
		{SideHome, SideAway, true},
		{SideAway, SideHome, true},
		{SideOver, SideUnder, true},
		{SideUnder, SideOver, true},
		{SideDraw, "", false},
	}

	for _, tc := range cases {
		got, ok := tc.side.Opposite()
		if ok != tc.ok || got != tc.want {
			t.Errorf("Opposite(%s) = (%s, %v), want (%s, %v)", tc.side, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseMarketType(t *testing.T) {
	if mt := ParseMarketType("h2h"); mt.Kind != MarketMoneyline || mt.Key() != "moneyline" {
		t.Errorf("h2h parsed as %v with key %q", mt.Kind, mt.Key())
	}
	if mt := ParseMarketType("spreads"); mt.Kind != MarketSpread {
		t.Errorf("spreads parsed as %v", mt.Kind)
	}

	mt := ParseMarketType("alternate_totals")
	if mt.Kind != MarketUnrecognized {
		t.Fatalf("expected unrecognized kind, got %v", mt.Kind)
	}
	if mt.Key() != "alternate_totals" {
		t.Errorf("unrecognized market lost raw key: %q", mt.Key())
	}
	if mt.TwoWaySymmetric() {
		t.Error("unrecognized markets must not be pairable")
	}
}

func TestCommonBooks(t *testing.T) {
	group := &BetGroup{
		GameID: "g1",
		Market: ParseMarketType("moneyline"),
		Selections: []Selection{
			{Side: SideHome, Prices: []BookPrice{{BookKey: "pinnacle", Price: -150}, {BookKey: "fanduel", Price: -148}}},
			{Side: SideAway, Prices: []BookPrice{{BookKey: "pinnacle", Price: 130}, {BookKey: "draftkings", Price: 128}}},
		},
	}

	books := group.CommonBooks()
	if len(books) != 1 || books[0] != "pinnacle" {
		t.Errorf("CommonBooks = %v, want [pinnacle]", books)
	}
}

func TestParseConfidence(t *testing.T) {
	if ParseConfidence("high") != ConfidenceHigh || ParseConfidence("bogus") != ConfidenceNone {
		t.Error("unexpected confidence parsing")
	}
	if !(ConfidenceNone < ConfidenceLow && ConfidenceLow < ConfidenceMedium && ConfidenceMedium < ConfidenceHigh) {
		t.Error("confidence tiers are not ordered")
	}
}
