package risk

// Trend direction of criminal activity over a window.
type Trend string

const (
	TrendUp     Trend = "UP"
	TrendDown   Trend = "DOWN"
	TrendStable Trend = "STABLE"
)

// DetectTrend compares the first and second half of a daily count series
// (ordered oldest to newest). The second half strictly exceeding the first
// reports UP, strictly below reports DOWN, anything else STABLE. For odd
// lengths the middle day is excluded so both halves are the same size.
func DetectTrend(daily []int) Trend {
	if len(daily) < 2 {
		return TrendStable
	}

	half := len(daily) / 2
	var first, second int
	for _, n := range daily[:half] {
		first += n
	}
	for _, n := range daily[len(daily)-half:] {
		second += n
	}

	switch {
	case second > first:
		return TrendUp
	case second < first:
		return TrendDown
	default:
		return TrendStable
	}
}
