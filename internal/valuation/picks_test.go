package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDraftPickValue_Endpoints(t *testing.T) {
	assert.InDelta(t, 95.0, DraftPickValue(1), 0.001)
	assert.InDelta(t, 10.0, DraftPickValue(16), 0.001)
}

func TestDraftPickValue_UniformSpacing(t *testing.T) {
	step := DraftPickValue(1) - DraftPickValue(2)
	for round := 2; round < 16; round++ {
		assert.InDelta(t, step, DraftPickValue(round)-DraftPickValue(round+1), 0.001, "round %d", round)
	}
}

func TestDraftPickValue_ClampsOutOfRangeRounds(t *testing.T) {
	assert.InDelta(t, DraftPickValue(1), DraftPickValue(0), 0.001)
	assert.InDelta(t, DraftPickValue(1), DraftPickValue(-3), 0.001)
	assert.InDelta(t, DraftPickValue(16), DraftPickValue(40), 0.001)
}
