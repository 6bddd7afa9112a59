package pairing

import (
	"fmt"
	"testing"

	"github.com/yourusername/fairline/internal/models"
)

func spreadRecord(id, team string, line float64) *models.BetRecord {
	return &models.BetRecord{
		ID:        id,
		GameID:    "game1",
		League:    "nfl",
		HomeTeam:  "Cowboys",
		AwayTeam:  "Giants",
		MarketKey: "spread",
		Line:      &line,
		Selection: team,
	}
}

func totalRecord(id, selection string, line float64) *models.BetRecord {
	return &models.BetRecord{
		ID:        id,
		GameID:    "game1",
		League:    "nfl",
		HomeTeam:  "Cowboys",
		AwayTeam:  "Giants",
		MarketKey: "total",
		Line:      &line,
		Selection: selection,
	}
}

func TestKeyAbsLine(t *testing.T) {
	home := spreadRecord("a", "Cowboys", -7)
	away := spreadRecord("b", "Giants", 7)
	if Key(home) != Key(away) {
		t.Errorf("opposite spread lines produced distinct keys: %q vs %q", Key(home), Key(away))
	}
}

func TestOppositeSelection(t *testing.T) {
	if opp, ok := OppositeSelection(spreadRecord("a", "Cowboys", -7)); !ok || opp != "Giants" {
		t.Errorf("spread opposite = (%q, %v)", opp, ok)
	}
	if opp, ok := OppositeSelection(totalRecord("a", "Over", 44.5)); !ok || opp != "Under" {
		t.Errorf("total opposite = (%q, %v)", opp, ok)
	}

	prop := &models.BetRecord{ID: "p", MarketKey: "player_prop", Selection: "Over"}
	if _, ok := OppositeSelection(prop); ok {
		t.Error("props must not have an automatic opposite")
	}

	unknown := &models.BetRecord{ID: "u", MarketKey: "alternate_spread", Selection: "Cowboys", HomeTeam: "Cowboys", AwayTeam: "Giants"}
	if _, ok := OppositeSelection(unknown); ok {
		t.Error("unrecognized markets must not pair")
	}
}

func TestPairBetsBidirectional(t *testing.T) {
	home := spreadRecord("a", "Cowboys", -7)
	away := spreadRecord("b", "Giants", 7)
	over := totalRecord("c", "Over", 44.5)
	under := totalRecord("d", "Under", 44.5)
	lonely := totalRecord("e", "Over", 51.5)

	pairs := PairBets([]*models.BetRecord{home, away, over, under, lonely})

	if pairs["a"] != away || pairs["b"] != home {
		t.Error("spread sides not paired bidirectionally")
	}
	if pairs["c"] != under || pairs["d"] != over {
		t.Error("total sides not paired bidirectionally")
	}
	if _, ok := pairs["e"]; ok {
		t.Error("record without an opposite side must stay unpaired")
	}
}

func TestPairBetsDifferentLinesStayApart(t *testing.T) {
	over445 := totalRecord("a", "Over", 44.5)
	under515 := totalRecord("b", "Under", 51.5)

	pairs := PairBets([]*models.BetRecord{over445, under515})
	if len(pairs) != 0 {
		t.Errorf("records at different lines paired: %v", pairs)
	}
}

func BenchmarkPairBets(b *testing.B) {
	records := make([]*models.BetRecord, 0, 2000)
	for i := 0; i < 1000; i++ {
		line := float64(i%30) + 0.5
		records = append(records,
			totalRecord(fmt.Sprintf("over-%d", i), "Over", line),
			totalRecord(fmt.Sprintf("under-%d", i), "Under", line),
		)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PairBets(records)
	}
}
