package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mreoch1/tradesync/pkg/utils"
)

const seasonStatsFixture = `{
	"league": [
		{"league_key": "453.l.1"},
		{"players": {
			"0": {"player": [
				[{"player_key": "453.p.8"}, {"name": {"full": "Auston Matthews"}}],
				{"player_stats": {
					"0": {"coverage_type": "season", "season": "2025"},
					"stats": [
						{"stat": {"stat_id": "1", "value": "14"}},
						{"stat": {"stat_id": "2", "value": "20"}},
						{"stat": {"stat_id": "14", "value": "70"}}
					]
				}}
			]},
			"1": {"player": [
				[{"player_key": "453.p.21"}, {"name": {"full": "Igor Shesterkin"}}],
				{"player_stats": {
					"0": {"coverage_type": "projected", "season": "2025"},
					"stats": [{"stat": {"stat_id": "19", "value": "40"}}]
				}}
			]},
			"count": 2
		}}
	]
}`

func TestParseSeasonStats_AttachesOnlySeasonCoverage(t *testing.T) {
	stats, err := ParseSeasonStats(decodeContent(t, seasonStatsFixture))
	require.NoError(t, err)

	matthews, ok := stats["453.p.8"]
	require.True(t, ok)
	assert.Equal(t, float64(14), matthews["1"])
	assert.Equal(t, float64(20), matthews["2"])
	assert.Equal(t, float64(70), matthews["14"])

	// A projected block is rejected even when no season block exists at all.
	_, ok = stats["453.p.21"]
	assert.False(t, ok)
}

func TestParseSeasonStats_AverageCoverageRejected(t *testing.T) {
	content := decodeContent(t, `{
		"league": [
			{"league_key": "453.l.1"},
			{"players": {
				"0": {"player": [
					[{"player_key": "453.p.5"}],
					{"player_stats": {
						"0": {"coverage_type": "average_season"},
						"stats": [{"stat": {"stat_id": "1", "value": "2"}}]
					}}
				]},
				"count": 1
			}}
		]
	}`)

	stats, err := ParseSeasonStats(content)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestParseSeasonStats_SkipsUnparseableValues(t *testing.T) {
	content := decodeContent(t, `{
		"league": [
			{"league_key": "453.l.1"},
			{"players": {
				"0": {"player": [
					[{"player_key": "453.p.5"}],
					{"player_stats": {
						"0": {"coverage_type": "season"},
						"stats": [
							{"stat": {"stat_id": "1", "value": "-"}},
							{"stat": {"stat_id": "2", "value": "11"}}
						]
					}}
				]},
				"count": 1
			}}
		]
	}`)

	stats, err := ParseSeasonStats(content)
	require.NoError(t, err)
	line := stats["453.p.5"]
	require.NotNil(t, line)
	_, hasDash := line["1"]
	assert.False(t, hasDash, "a dash value means the stat was not recorded")
	assert.Equal(t, float64(11), line["2"])
}

func TestParseSeasonStats_MissingPlayersCollectionFails(t *testing.T) {
	content := decodeContent(t, `{"league": [{"league_key": "453.l.1"}]}`)

	_, err := ParseSeasonStats(content)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrStructuralMismatch)
}

func TestParseSeasonStats_MissingPlayerKeyFails(t *testing.T) {
	content := decodeContent(t, `{
		"league": [
			{"league_key": "453.l.1"},
			{"players": {
				"0": {"player": [[{"name": {"full": "No Key"}}]]},
				"count": 1
			}}
		]
	}`)

	_, err := ParseSeasonStats(content)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrStructuralMismatch)
}
