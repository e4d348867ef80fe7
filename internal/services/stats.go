package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Mreoch1/tradesync/internal/models"
	"github.com/Mreoch1/tradesync/internal/parser"
	"github.com/Mreoch1/tradesync/internal/providers/yahoo"
)

// StatsAttacher retrieves season statistics for athletes in fixed-size
// batches and attaches validated season-coverage blocks.
type StatsAttacher struct {
	client      yahoo.Fetcher
	logger      *logrus.Logger
	concurrency int
}

func NewStatsAttacher(client yahoo.Fetcher, concurrency int, logger *logrus.Logger) *StatsAttacher {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &StatsAttacher{
		client:      client,
		logger:      logger,
		concurrency: concurrency,
	}
}

// AttachSeasonStats fetches season-scoped statistics for every athlete and
// stores the validated (stat id, value) pairs on each. Batches run with
// bounded concurrency; a failing batch is logged and its athletes are left
// flagged stat-less, it never aborts sibling batches or the sync. Returns the
// number of athletes that received statistics.
func (s *StatsAttacher) AttachSeasonStats(ctx context.Context, leagueKey, season, accessToken string, athletes []*models.Athlete) int {
	byKey := make(map[string]*models.Athlete, len(athletes))
	keys := make([]string, 0, len(athletes))
	for _, a := range athletes {
		byKey[a.Key] = a
		keys = append(keys, a.Key)
	}

	batches := partition(keys, yahoo.StatsBatchSize)

	var wg sync.WaitGroup
	var mu sync.Mutex
	sem := make(chan struct{}, s.concurrency)
	attached := 0

	for i, batch := range batches {
		wg.Add(1)
		go func(batchNum int, playerKeys []string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			resource := fmt.Sprintf("league/%s/players;player_keys=%s/stats;type=season;season=%s",
				leagueKey, strings.Join(playerKeys, ","), season)

			content, err := s.client.GetJSON(ctx, resource, accessToken)
			if err != nil {
				s.logger.WithFields(logrus.Fields{
					"league_key": leagueKey,
					"batch":      batchNum,
					"players":    len(playerKeys),
				}).Warnf("Stats batch failed, athletes left without statistics: %v", err)
				return
			}

			stats, err := parser.ParseSeasonStats(content)
			if err != nil {
				s.logger.WithFields(logrus.Fields{
					"league_key": leagueKey,
					"batch":      batchNum,
				}).Warnf("Stats batch unparseable, athletes left without statistics: %v", err)
				return
			}

			mu.Lock()
			for playerKey, statLine := range stats {
				if athlete, ok := byKey[playerKey]; ok {
					athlete.Stats = statLine
					athlete.HasStats = true
					attached++
				}
			}
			mu.Unlock()
		}(i, batch)
	}
	wg.Wait()

	if attached < len(athletes) {
		s.logger.WithFields(logrus.Fields{
			"league_key": leagueKey,
			"attached":   attached,
			"statless":   len(athletes) - attached,
		}).Warn("Some athletes ended the sync without validated season statistics")
	}

	return attached
}

func partition(keys []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(keys); start += size {
		end := start + size
		if end > len(keys) {
			end = len(keys)
		}
		batches = append(batches, keys[start:end])
	}
	return batches
}
