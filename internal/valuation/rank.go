package valuation

// rankBreakpoints define the monotone piecewise-linear calibration curve
// mapping the provider's popularity rank onto the value scale. Between
// breakpoints the curve interpolates linearly; past the last it floors.
var rankBreakpoints = []struct {
	rank  int
	value float64
}{
	{1, 99.9},
	{5, 98.5},
	{10, 96.5},
	{25, 91.0},
	{50, 82.0},
	{100, 64.0},
	{200, 38.0},
	{500, 10.0},
}

// RankValue maps a provider rank onto [MinValue, MaxValue]. Monotonically
// non-increasing in rank.
func RankValue(rank int) float64 {
	if rank <= rankBreakpoints[0].rank {
		return rankBreakpoints[0].value
	}
	last := rankBreakpoints[len(rankBreakpoints)-1]
	if rank >= last.rank {
		return last.value
	}

	for i := 1; i < len(rankBreakpoints); i++ {
		hi := rankBreakpoints[i]
		if rank > hi.rank {
			continue
		}
		lo := rankBreakpoints[i-1]
		span := float64(hi.rank - lo.rank)
		frac := float64(rank-lo.rank) / span
		return lo.value + frac*(hi.value-lo.value)
	}
	return last.value
}
