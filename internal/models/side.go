package models

// Side identifies one outcome of a two-way (or three-way) proposition.
type Side string

const (
	SideHome  Side = "home"
	SideAway  Side = "away"
	SideOver  Side = "over"
	SideUnder Side = "under"
	SideDraw  Side = "draw"
)

// Opposite returns the side that pairs against s for vig removal. Draw has no
// opposite, so the second return value reports whether one exists.
func (s Side) Opposite() (Side, bool) {
	switch s {
	case SideHome:
		return SideAway, true
	case SideAway:
		return SideHome, true
	case SideOver:
		return SideUnder, true
	case SideUnder:
		return SideOver, true
	default:
		return "", false
	}
}

// String implements fmt.Stringer.
func (s Side) String() string {
	return string(s)
}
