package parser

import (
	"fmt"

	"github.com/Mreoch1/tradesync/internal/models"
	"github.com/Mreoch1/tradesync/internal/providers/yahoo"
	"github.com/Mreoch1/tradesync/pkg/utils"
)

// TeamInfo is a team's identity plus whatever record data the response
// carried. Record stays nil when the triple was absent; the sync layer is
// responsible for resolving it or failing.
type TeamInfo struct {
	Key    string
	Name   string
	Owner  string
	Rank   int
	Record *models.TeamRecord
}

var leagueTeamsPaths = []string{
	"league.1.teams",
	"league.teams",
	"league.0.teams",
}

var leagueStandingsPaths = []string{
	"league.1.standings.0.teams",
	"league.1.standings.teams",
	"league.standings.0.teams",
	"league.standings.teams",
}

// ParseLeagueTeams extracts every team from a league teams response. Fails on
// zero teams or on any team missing its unique key.
func ParseLeagueTeams(content map[string]interface{}) ([]TeamInfo, error) {
	teamsNode := yahoo.FindFirstPath(content, leagueTeamsPaths)
	if teamsNode == nil {
		// Standings responses wrap the same collection one level deeper.
		teamsNode = yahoo.FindFirstPath(content, leagueStandingsPaths)
	}
	if teamsNode == nil {
		return nil, fmt.Errorf("%w: teams collection not found in league response", utils.ErrStructuralMismatch)
	}

	var teams []TeamInfo
	for _, entry := range collectionEntries(teamsNode) {
		team := yahoo.MergeFragments(yahoo.FindFirstPath(entry, []string{"team.0", "team"}))
		if team == nil {
			team = yahoo.NormalizeNode(entry)
		}
		if team == nil {
			continue
		}

		info := TeamInfo{
			Key:   yahoo.AsString(team["team_key"]),
			Name:  yahoo.AsString(team["name"]),
			Owner: parseManager(team),
		}
		if info.Key == "" {
			return nil, fmt.Errorf("%w: team entry missing team_key", utils.ErrStructuralMismatch)
		}

		standings := yahoo.NormalizeNode(yahoo.FindFirstPath(entry, []string{
			"team.1.team_standings",
			"team.2.team_standings",
		}))
		if standings == nil {
			standings = yahoo.NormalizeNode(team["team_standings"])
		}
		if standings != nil {
			if rank, ok := yahoo.AsInt(standings["rank"]); ok {
				info.Rank = rank
			}
			info.Record = parseOutcomeTotals(standings)
		}

		teams = append(teams, info)
	}

	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: league response parsed to zero teams", utils.ErrStructuralMismatch)
	}
	return teams, nil
}

// ParseStandings extracts per-team win/loss/tie triples from a dedicated
// standings response. Teams without a complete triple are omitted rather than
// zero-filled; the caller decides whether absence is fatal.
func ParseStandings(content map[string]interface{}) (map[string]models.TeamRecord, map[string]int, error) {
	teams, err := ParseLeagueTeams(content)
	if err != nil {
		return nil, nil, err
	}

	records := make(map[string]models.TeamRecord, len(teams))
	ranks := make(map[string]int, len(teams))
	for _, t := range teams {
		if t.Record != nil {
			records[t.Key] = *t.Record
		}
		if t.Rank > 0 {
			ranks[t.Key] = t.Rank
		}
	}
	return records, ranks, nil
}

// parseOutcomeTotals reads a win/loss/tie triple. All three fields must be
// present together; a partial triple is treated as absent.
func parseOutcomeTotals(standings map[string]interface{}) *models.TeamRecord {
	totals := yahoo.NormalizeNode(yahoo.FindFirstPath(standings, []string{"outcome_totals"}))
	if totals == nil {
		return nil
	}
	wins, okW := yahoo.AsInt(totals["wins"])
	losses, okL := yahoo.AsInt(totals["losses"])
	ties, okT := yahoo.AsInt(totals["ties"])
	if !okW || !okL || !okT || wins < 0 || losses < 0 || ties < 0 {
		return nil
	}
	return &models.TeamRecord{Wins: wins, Losses: losses, Ties: ties}
}

func parseManager(team map[string]interface{}) string {
	manager := yahoo.NormalizeNode(yahoo.FindFirstPath(team, []string{
		"managers.0.manager",
		"managers.manager",
	}))
	if manager == nil {
		return ""
	}
	return yahoo.AsString(manager["nickname"])
}
