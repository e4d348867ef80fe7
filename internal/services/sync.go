package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Mreoch1/tradesync/internal/models"
	"github.com/Mreoch1/tradesync/internal/parser"
	"github.com/Mreoch1/tradesync/internal/providers/yahoo"
	"github.com/Mreoch1/tradesync/internal/valuation"
	"github.com/Mreoch1/tradesync/pkg/utils"
)

// SyncService orchestrates a full league sync: teams, rosters, standings,
// season statistics, and values. Taxonomy or season failures, unresolved
// standings, zero teams, and empty rosters all fail the whole sync; a
// partially-valid league is worse than an explicit error.
type SyncService struct {
	client   yahoo.Fetcher
	taxonomy *yahoo.TaxonomyResolver
	seasons  *yahoo.SeasonResolver
	attacher *StatsAttacher
	cache    *CacheService
	cacheTTL time.Duration
	logger   *logrus.Logger
}

func NewSyncService(
	client yahoo.Fetcher,
	taxonomy *yahoo.TaxonomyResolver,
	seasons *yahoo.SeasonResolver,
	attacher *StatsAttacher,
	cache *CacheService,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) *SyncService {
	return &SyncService{
		client:   client,
		taxonomy: taxonomy,
		seasons:  seasons,
		attacher: attacher,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// SyncLeague builds every team in the league from scratch and returns them
// fully valued. Each successful sync replaces the league's data wholesale;
// nothing is merged with a prior sync's entities.
func (s *SyncService) SyncLeague(ctx context.Context, leagueKey, accessToken string) ([]models.Team, error) {
	gameKey := yahoo.GameKeyFromLeague(leagueKey)
	log := s.logger.WithFields(logrus.Fields{
		"league_key": leagueKey,
		"game_key":   gameKey,
	})
	log.Info("Starting league sync")

	// Season and taxonomy are prerequisites for every stat-dependent step.
	season, err := s.seasons.Season(ctx, gameKey, accessToken)
	if err != nil {
		return nil, err
	}
	statIndex, err := s.taxonomy.Definitions(ctx, gameKey, accessToken)
	if err != nil {
		return nil, err
	}

	teamInfos, err := s.fetchTeams(ctx, leagueKey, accessToken)
	if err != nil {
		return nil, err
	}

	if err := s.resolveStandings(ctx, leagueKey, accessToken, teamInfos); err != nil {
		return nil, err
	}

	teams := make([]models.Team, 0, len(teamInfos))
	var allAthletes []*models.Athlete
	for _, info := range teamInfos {
		roster, err := s.fetchRoster(ctx, info.Key, accessToken)
		if err != nil {
			return nil, fmt.Errorf("team %s: %w", info.Key, err)
		}
		team := models.Team{
			Key:      info.Key,
			Name:     info.Name,
			Owner:    info.Owner,
			Rank:     info.Rank,
			Record:   *info.Record,
			Athletes: roster,
		}
		teams = append(teams, team)
	}
	for i := range teams {
		for j := range teams[i].Athletes {
			allAthletes = append(allAthletes, &teams[i].Athletes[j])
		}
	}

	attached := s.attacher.AttachSeasonStats(ctx, leagueKey, season, accessToken, allAthletes)

	calculator := valuation.NewCalculator(statIndex, s.logger)
	for _, a := range allAthletes {
		a.Value = calculator.Value(a)
	}

	log.WithFields(logrus.Fields{
		"teams":    len(teams),
		"athletes": len(allAthletes),
		"attached": attached,
		"season":   season,
	}).Info("League sync complete")

	if s.cache != nil {
		if err := s.cache.Set(ctx, LeagueTeamsCacheKey(leagueKey), teams, s.cacheTTL); err != nil {
			log.Warnf("Failed to cache sync result: %v", err)
		}
		if err := s.cache.Set(ctx, LeagueSyncedAtCacheKey(leagueKey), time.Now().UTC(), s.cacheTTL); err != nil {
			log.Warnf("Failed to cache sync timestamp: %v", err)
		}
	}

	return teams, nil
}

// CachedTeams returns the most recent sync result for a league, if one is
// still cached.
func (s *SyncService) CachedTeams(ctx context.Context, leagueKey string) ([]models.Team, bool) {
	if s.cache == nil {
		return nil, false
	}
	var teams []models.Team
	if err := s.cache.Get(ctx, LeagueTeamsCacheKey(leagueKey), &teams); err != nil {
		return nil, false
	}
	return teams, true
}

func (s *SyncService) fetchTeams(ctx context.Context, leagueKey, accessToken string) ([]parser.TeamInfo, error) {
	content, err := s.client.GetJSON(ctx, fmt.Sprintf("league/%s/teams", leagueKey), accessToken)
	if err != nil {
		return nil, err
	}
	return parser.ParseLeagueTeams(content)
}

func (s *SyncService) fetchRoster(ctx context.Context, teamKey, accessToken string) ([]models.Athlete, error) {
	content, err := s.client.GetJSON(ctx, fmt.Sprintf("team/%s/roster/players", teamKey), accessToken)
	if err != nil {
		return nil, err
	}
	return parser.ParseRoster(content, s.logger)
}

// resolveStandings fills in each team's record. Teams whose own response
// carried the triple keep it; the rest come from one dedicated standings
// query. Any team still unresolved after both attempts fails the sync: a
// silent 0-0-0 is indistinguishable from a team that has not played.
func (s *SyncService) resolveStandings(ctx context.Context, leagueKey, accessToken string, teams []parser.TeamInfo) error {
	var missing []string
	for i := range teams {
		if teams[i].Record == nil {
			missing = append(missing, teams[i].Key)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	s.logger.WithFields(logrus.Fields{
		"league_key": leagueKey,
		"missing":    len(missing),
	}).Info("Records missing from teams response, querying standings")

	content, err := s.client.GetJSON(ctx, fmt.Sprintf("league/%s/standings", leagueKey), accessToken)
	if err != nil {
		return fmt.Errorf("%w: standings query failed: %v", utils.ErrStandingsUnresolved, err)
	}
	records, ranks, err := parser.ParseStandings(content)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStandingsUnresolved, err)
	}

	for i := range teams {
		if teams[i].Record != nil {
			continue
		}
		if record, ok := records[teams[i].Key]; ok {
			r := record
			teams[i].Record = &r
			if rank, ok := ranks[teams[i].Key]; ok && teams[i].Rank == 0 {
				teams[i].Rank = rank
			}
		}
	}

	for i := range teams {
		if teams[i].Record == nil {
			return fmt.Errorf("%w: no record for team %s after standings fallback", utils.ErrStandingsUnresolved, teams[i].Key)
		}
	}
	return nil
}
