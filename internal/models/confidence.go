package models

// Confidence is a coarse tier describing how much corroborating data backed a
// fair-probability estimate. Tiers are ordered: none < low < medium < high.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
)

// String implements fmt.Stringer.
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// ParseConfidence maps a server-provided tier string to a Confidence.
// Unrecognized strings map to none.
func ParseConfidence(s string) Confidence {
	switch s {
	case "high":
		return ConfidenceHigh
	case "medium":
		return ConfidenceMedium
	case "low":
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}
