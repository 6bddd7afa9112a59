package fairodds

// Config carries the tunables and sharp-book sets for fair-odds computation.
// It is passed into the engine at construction and never mutated afterwards;
// there is no ambient global table to inject into at runtime.
type Config struct {
	// SharpBooks maps a league key to an ordered list of books treated as
	// reliable market-makers for that sport.
	SharpBooks map[string][]string `mapstructure:"sharp_books"`

	// MaxConsensusSpread is the min-max implied-probability spread beyond
	// which a median-consensus estimate is downgraded to no confidence.
	MaxConsensusSpread float64 `mapstructure:"max_consensus_spread"`
	// SpreadMarketMaxSpread tightens that threshold for spread markets,
	// which are noisier and deserve more skepticism at the same disagreement.
	SpreadMarketMaxSpread float64 `mapstructure:"spread_market_max_spread"`

	MinSharpBooksForHigh    int `mapstructure:"min_sharp_books_for_high"`
	MinSharpBooksForMedium  int `mapstructure:"min_sharp_books_for_medium"`
	MinCommonBooksForHigh   int `mapstructure:"min_common_books_for_high"`
	MinCommonBooksForMedium int `mapstructure:"min_common_books_for_medium"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxConsensusSpread:      0.20,
		SpreadMarketMaxSpread:   0.15,
		MinSharpBooksForHigh:    2,
		MinSharpBooksForMedium:  1,
		MinCommonBooksForHigh:   4,
		MinCommonBooksForMedium: 2,
	}
}

// SharpBooksFor returns the configured sharp-book list for a league, or nil
// when none is configured.
func (c Config) SharpBooksFor(league string) []string {
	if c.SharpBooks == nil {
		return nil
	}
	return c.SharpBooks[league]
}
