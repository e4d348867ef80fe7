package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mreoch1/tradesync/internal/models"
	"github.com/Mreoch1/tradesync/pkg/utils"
)

const leagueTeamsFixture = `{
	"league": [
		{"league_key": "453.l.1", "name": "Office League"},
		{"teams": {
			"0": {"team": [
				[{"team_key": "453.l.1.t.1"}, {"name": "Ice Dogs"}, {"managers": [{"manager": {"nickname": "Sam"}}]}],
				{"team_standings": {"rank": "1", "outcome_totals": {"wins": "10", "losses": "3", "ties": "1"}}}
			]},
			"1": {"team": [
				[{"team_key": "453.l.1.t.2"}, {"name": "Puck Norris"}]
			]},
			"count": 2
		}}
	]
}`

func TestParseLeagueTeams_RecordsOptionalAtThisStage(t *testing.T) {
	teams, err := ParseLeagueTeams(decodeContent(t, leagueTeamsFixture))
	require.NoError(t, err)
	require.Len(t, teams, 2)

	first := teams[0]
	assert.Equal(t, "453.l.1.t.1", first.Key)
	assert.Equal(t, "Ice Dogs", first.Name)
	assert.Equal(t, "Sam", first.Owner)
	assert.Equal(t, 1, first.Rank)
	require.NotNil(t, first.Record)
	assert.Equal(t, models.TeamRecord{Wins: 10, Losses: 3, Ties: 1}, *first.Record)

	// Missing triple stays nil; the sync layer decides whether that is fatal.
	assert.Nil(t, teams[1].Record)
}

func TestParseLeagueTeams_PartialTripleIsAbsent(t *testing.T) {
	content := decodeContent(t, `{
		"league": [
			{"league_key": "453.l.1"},
			{"teams": {
				"0": {"team": [
					[{"team_key": "453.l.1.t.1"}, {"name": "Ice Dogs"}],
					{"team_standings": {"rank": "4", "outcome_totals": {"wins": "7", "losses": "5"}}}
				]},
				"count": 1
			}}
		]
	}`)

	teams, err := ParseLeagueTeams(content)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Nil(t, teams[0].Record, "a partial win/loss/tie triple must not pass as resolved")
}

func TestParseLeagueTeams_ZeroTeamsFails(t *testing.T) {
	content := decodeContent(t, `{
		"league": [{"league_key": "453.l.1"}, {"teams": {"count": 0}}]
	}`)

	_, err := ParseLeagueTeams(content)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrStructuralMismatch)
}

func TestParseLeagueTeams_MissingTeamKeyFails(t *testing.T) {
	content := decodeContent(t, `{
		"league": [
			{"league_key": "453.l.1"},
			{"teams": {"0": {"team": [[{"name": "Anonymous"}]]}, "count": 1}}
		]
	}`)

	_, err := ParseLeagueTeams(content)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrStructuralMismatch)
}

func TestParseStandings_StandingsWrappedCollection(t *testing.T) {
	content := decodeContent(t, `{
		"league": [
			{"league_key": "453.l.1"},
			{"standings": [{"teams": {
				"0": {"team": [
					[{"team_key": "453.l.1.t.1"}, {"name": "Ice Dogs"}],
					{"team_standings": {"rank": "2", "outcome_totals": {"wins": "9", "losses": "4", "ties": "0"}}}
				]},
				"count": 1
			}}]}
		]
	}`)

	records, ranks, err := ParseStandings(content)
	require.NoError(t, err)
	assert.Equal(t, models.TeamRecord{Wins: 9, Losses: 4, Ties: 0}, records["453.l.1.t.1"])
	assert.Equal(t, 2, ranks["453.l.1.t.1"])
}
