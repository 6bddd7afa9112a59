package fairodds

import "github.com/yourusername/fairline/internal/models"

// Strategy identifies which computation path produced a fair probability.
type Strategy int

const (
	// StrategyServerProvided means the feed supplied a precomputed fair
	// probability and confidence tier, which take precedence over any local
	// computation.
	StrategyServerProvided Strategy = iota
	// StrategyPairedDevig removes each book's vig using same-book quotes on
	// every side, then takes the cross-book median.
	StrategyPairedDevig
	// StrategyMedianConsensus is the fallback when no book prices every
	// side: the median of single-sided implied probabilities, vig included.
	StrategyMedianConsensus
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case StrategyServerProvided:
		return "server_provided"
	case StrategyPairedDevig:
		return "paired_devig"
	default:
		return "median_consensus"
	}
}

// SelectStrategy names the computation path for a proposition. The order is a
// required fallback chain: server-annotated results first, paired devig when
// some book quotes every side, median consensus otherwise. Returning the
// choice explicitly lets tests assert on the path, not just the numbers.
// A server annotation outside (0, 1) is not a probability; it is ignored and
// the chain falls through to local computation.
func SelectStrategy(serverProb *float64, status models.PairingStatus) Strategy {
	if serverProb != nil && *serverProb > 0 && *serverProb < 1 {
		return StrategyServerProvided
	}
	if status == models.PairingStatusPaired {
		return StrategyPairedDevig
	}
	return StrategyMedianConsensus
}
