package oddsmath

import "sort"

// Median returns the median of values: the middle element for odd counts, the
// mean of the two middle elements for even counts. An empty slice returns 0;
// callers must decide whether 0 is meaningful in context. The input slice is
// not modified.
func Median(values []float64) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2.0
	}
	return sorted[mid]
}
