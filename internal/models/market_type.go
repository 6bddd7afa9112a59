package models

// MarketKind enumerates the market families the engine understands. Feed keys
// outside this set are carried as MarketUnrecognized with the raw key intact,
// so forward-compatible markets flow through grouping and EV without any open
// string matching inside the engine.
type MarketKind int

const (
	MarketMoneyline MarketKind = iota
	MarketSpread
	MarketTotal
	MarketPlayerProp
	MarketUnrecognized
)

// MarketType is a tagged market identifier: a recognized kind plus the raw
// feed key it was parsed from.
type MarketType struct {
	Kind MarketKind
	Raw  string
}

// ParseMarketType maps a raw feed market key to a MarketType. Unknown keys
// produce an Unrecognized market that retains the raw key.
func ParseMarketType(raw string) MarketType {
	switch raw {
	case "moneyline", "h2h":
		return MarketType{Kind: MarketMoneyline, Raw: raw}
	case "spread", "spreads":
		return MarketType{Kind: MarketSpread, Raw: raw}
	case "total", "totals":
		return MarketType{Kind: MarketTotal, Raw: raw}
	case "player_prop", "player_props":
		return MarketType{Kind: MarketPlayerProp, Raw: raw}
	default:
		return MarketType{Kind: MarketUnrecognized, Raw: raw}
	}
}

// Key returns the canonical key used when building bet group keys. Recognized
// kinds normalize aliases ("h2h" → "moneyline"); unrecognized markets keep
// their raw key so distinct unknown markets never collide.
func (m MarketType) Key() string {
	switch m.Kind {
	case MarketMoneyline:
		return "moneyline"
	case MarketSpread:
		return "spread"
	case MarketTotal:
		return "total"
	case MarketPlayerProp:
		return "player_prop"
	default:
		return m.Raw
	}
}

// TwoWaySymmetric reports whether automatic opposite-side pairing is defined
// for this market. Props, alternates and unknown markets are excluded.
func (m MarketType) TwoWaySymmetric() bool {
	switch m.Kind {
	case MarketMoneyline, MarketSpread, MarketTotal:
		return true
	default:
		return false
	}
}
