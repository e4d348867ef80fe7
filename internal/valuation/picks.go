package valuation

// Draft pick valuation is a single linear curve: a first-round pick is worth
// 95.0 and a sixteenth-round pick 10.0, with uniform spacing between.
const (
	firstRoundValue = 95.0
	lastRoundValue  = 10.0
	maxRound        = 16
)

// DraftPickValue returns the value of a pick in the given round. Rounds
// outside [1, 16] clamp to the nearest bound.
func DraftPickValue(round int) float64 {
	if round < 1 {
		round = 1
	}
	if round > maxRound {
		round = maxRound
	}
	step := (firstRoundValue - lastRoundValue) / float64(maxRound-1)
	return firstRoundValue - float64(round-1)*step
}
