package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Mreoch1/tradesync/internal/models"
	"github.com/Mreoch1/tradesync/internal/providers/yahoo"
	"github.com/Mreoch1/tradesync/pkg/utils"
)

// rosterPlayerPaths are every historical location the provider has used for
// the players collection inside a team roster response.
var rosterPlayerPaths = []string{
	"team.1.roster.0.players",
	"team.1.roster.players",
	"team.0.roster.0.players",
	"team.roster.0.players",
	"team.roster.players",
}

// ParseRoster converts a raw team roster response into athlete identity
// records, without statistics. It fails if the roster sub-resource cannot be
// located or if it parses to zero athletes: an empty roster is
// indistinguishable from a parsing bug and must not pass as a valid team.
func ParseRoster(content map[string]interface{}, logger *logrus.Logger) ([]models.Athlete, error) {
	playersNode := yahoo.FindFirstPath(content, rosterPlayerPaths)
	if playersNode == nil {
		return nil, fmt.Errorf("%w: roster players collection not found", utils.ErrStructuralMismatch)
	}

	var athletes []models.Athlete
	for _, entry := range collectionEntries(playersNode) {
		player := yahoo.MergeFragments(yahoo.FindFirstPath(entry, []string{"player.0", "player"}))
		if player == nil {
			player = yahoo.NormalizeNode(entry)
		}
		if player == nil {
			continue
		}

		athlete, err := parseAthlete(player)
		if err != nil {
			return nil, err
		}
		if athlete.Role == models.RoleGoaltender && !athlete.HasPosition("G") {
			// Position stays authoritative; this path exists only as a
			// diagnostic for shape drift.
			logger.WithField("player_key", athlete.Key).Warn("Goaltender role inferred without G eligibility")
		}
		athletes = append(athletes, athlete)
	}

	if len(athletes) == 0 {
		return nil, utils.ErrEmptyRoster
	}
	return athletes, nil
}

func parseAthlete(player map[string]interface{}) (models.Athlete, error) {
	key := yahoo.AsString(player["player_key"])
	if key == "" {
		return models.Athlete{}, fmt.Errorf("%w: player entry missing player_key", utils.ErrStructuralMismatch)
	}

	athlete := models.Athlete{
		Key:         key,
		DisplayName: parseName(player),
		Positions:   parsePositions(player),
		TeamAbbr:    yahoo.AsString(player["editorial_team_abbr"]),
	}
	athlete.Status = parseStatus(player)
	athlete.Role = models.RoleSkater
	if athlete.HasPosition("G") {
		athlete.Role = models.RoleGoaltender
	}

	if rank, ok := yahoo.AsInt(yahoo.FindFirstPath(player, []string{
		"player_ranks.0.player_rank.rank",
		"rank",
		"overall_rank",
	})); ok && rank > 0 {
		athlete.Rank = rank
	}
	if owned, ok := yahoo.AsFloat(yahoo.FindFirstPath(player, []string{
		"percent_owned.1.value",
		"percent_owned.value",
		"ownership.ownership_percentage",
	})); ok {
		athlete.PercentOwned = owned
	}
	if started, ok := yahoo.AsFloat(yahoo.FindFirstPath(player, []string{
		"percent_started.1.value",
		"percent_started.value",
	})); ok {
		athlete.PercentStart = started
	}

	return athlete, nil
}

func parseName(player map[string]interface{}) string {
	name := yahoo.NormalizeNode(player["name"])
	if name == nil {
		return yahoo.AsString(player["name"])
	}
	if full := yahoo.AsString(name["full"]); full != "" {
		return full
	}
	return strings.TrimSpace(yahoo.AsString(name["first"]) + " " + yahoo.AsString(name["last"]))
}

// parsePositions returns the ordered eligible position codes. The provider
// publishes both a display string ("C,LW") and a structured list; the list
// wins when present because the display string collapses utility slots.
func parsePositions(player map[string]interface{}) []string {
	var positions []string
	seen := make(map[string]bool)
	add := func(code string) {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" || code == "UTIL" || code == "BN" || code == "IR" || seen[code] {
			return
		}
		seen[code] = true
		positions = append(positions, code)
	}

	if eligible, ok := player["eligible_positions"].([]interface{}); ok {
		for _, e := range eligible {
			if obj, ok := e.(map[string]interface{}); ok {
				add(yahoo.AsString(obj["position"]))
			} else {
				add(yahoo.AsString(e))
			}
		}
	}
	if len(positions) == 0 {
		for _, code := range strings.Split(yahoo.AsString(player["display_position"]), ",") {
			add(code)
		}
	}
	return positions
}

func parseStatus(player map[string]interface{}) models.Status {
	status := strings.ToUpper(yahoo.AsString(player["status"]))
	switch status {
	case "DTD", "D":
		return models.StatusDayToDay
	case "IR", "IR-NR":
		return models.StatusInjuredReserve
	case "IR-LT", "LTIR":
		return models.StatusLongTermIR
	case "O", "OUT", "NA":
		return models.StatusOut
	}
	// No status code but an injury note still means something is wrong.
	if yahoo.AsString(player["injury_note"]) != "" {
		return models.StatusDayToDay
	}
	return models.StatusHealthy
}

// collectionEntries flattens the provider's "array or object keyed by index
// plus count" collection convention into an ordered slice.
func collectionEntries(node interface{}) []interface{} {
	switch n := node.(type) {
	case []interface{}:
		return n
	case map[string]interface{}:
		indices := make([]int, 0, len(n))
		for k := range n {
			if idx, err := strconv.Atoi(k); err == nil {
				indices = append(indices, idx)
			}
		}
		sort.Ints(indices)
		entries := make([]interface{}, 0, len(indices))
		for _, idx := range indices {
			entries = append(entries, n[strconv.Itoa(idx)])
		}
		return entries
	default:
		return nil
	}
}
