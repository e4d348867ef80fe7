package parser

import (
	"fmt"

	"github.com/Mreoch1/tradesync/internal/providers/yahoo"
	"github.com/Mreoch1/tradesync/pkg/utils"
)

// CoverageSeason is the only statistics coverage this system accepts.
// Projected, average, and week-scoped blocks are rejected outright; attaching
// them would silently mix projections into season totals.
const CoverageSeason = "season"

var leaguePlayersPaths = []string{
	"league.1.players",
	"league.players",
	"league.0.players",
}

// Stat block container keys the provider has shipped. Only blocks whose
// coverage validates as season are ever read.
var statBlockKeys = []string{"player_stats", "player_advanced_stats"}

// ParseSeasonStats extracts validated season statistics from a batched player
// stats response, keyed by player key. Players whose response carries no
// season-coverage block are absent from the result, never zero-filled.
func ParseSeasonStats(content map[string]interface{}) (map[string]map[string]float64, error) {
	playersNode := yahoo.FindFirstPath(content, leaguePlayersPaths)
	if playersNode == nil {
		return nil, fmt.Errorf("%w: players collection not found in stats response", utils.ErrStructuralMismatch)
	}

	result := make(map[string]map[string]float64)
	for _, entry := range collectionEntries(playersNode) {
		playerNode := yahoo.FindFirstPath(entry, []string{"player"})
		if playerNode == nil {
			playerNode = entry
		}

		identity := yahoo.MergeFragments(yahoo.FindFirstPath(playerNode, []string{"0"}))
		if identity == nil {
			identity = yahoo.NormalizeNode(playerNode)
		}
		if identity == nil {
			continue
		}
		playerKey := yahoo.AsString(identity["player_key"])
		if playerKey == "" {
			return nil, fmt.Errorf("%w: stats entry missing player_key", utils.ErrStructuralMismatch)
		}

		if stats := seasonBlock(playerNode, identity); stats != nil {
			result[playerKey] = stats
		}
	}
	return result, nil
}

// seasonBlock searches every known stat block location for one whose coverage
// is exactly season and returns its (stat_id, value) pairs.
func seasonBlock(playerNode interface{}, identity map[string]interface{}) map[string]float64 {
	arr, _ := playerNode.([]interface{})
	containers := []map[string]interface{}{identity}
	for _, frag := range arr {
		if obj, ok := frag.(map[string]interface{}); ok {
			containers = append(containers, obj)
		}
	}

	for _, container := range containers {
		for _, key := range statBlockKeys {
			block, ok := container[key]
			if !ok {
				continue
			}
			if stats := validatedSeasonStats(block); stats != nil {
				return stats
			}
		}
	}
	return nil
}

func validatedSeasonStats(block interface{}) map[string]float64 {
	coverage := yahoo.AsString(yahoo.FindFirstPath(block, []string{
		"0.coverage_type",
		"coverage_type",
	}))
	if coverage != CoverageSeason {
		return nil
	}

	statsNode := yahoo.FindFirstPath(block, []string{"stats", "1.stats"})
	entries := collectionEntries(statsNode)
	if entries == nil {
		if arr, ok := statsNode.([]interface{}); ok {
			entries = arr
		}
	}

	stats := make(map[string]float64)
	for _, entry := range entries {
		stat := yahoo.NormalizeNode(yahoo.FindFirstPath(entry, []string{"stat"}))
		if stat == nil {
			stat = yahoo.NormalizeNode(entry)
		}
		if stat == nil {
			continue
		}
		statID := yahoo.AsString(stat["stat_id"])
		if statID == "" {
			continue
		}
		if value, ok := yahoo.AsFloat(stat["value"]); ok {
			stats[statID] = value
		}
	}
	if len(stats) == 0 {
		return nil
	}
	return stats
}
