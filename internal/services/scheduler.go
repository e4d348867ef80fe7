package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ResyncScheduler periodically re-syncs leagues that were registered with a
// still-valid access token. Tokens live only in process memory; when one
// expires the league simply drops out of rotation on its next failure.
type ResyncScheduler struct {
	syncService *SyncService
	logger      *logrus.Logger
	cron        *cron.Cron
	interval    time.Duration

	mu        sync.Mutex
	isRunning bool
	leagues   map[string]string // league key -> access token
}

func NewResyncScheduler(syncService *SyncService, interval time.Duration, logger *logrus.Logger) *ResyncScheduler {
	return &ResyncScheduler{
		syncService: syncService,
		logger:      logger,
		cron:        cron.New(),
		interval:    interval,
		leagues:     make(map[string]string),
	}
}

// Register adds a league to the background rotation, replacing any previous
// token for it.
func (s *ResyncScheduler) Register(leagueKey, accessToken string) {
	s.mu.Lock()
	s.leagues[leagueKey] = accessToken
	s.mu.Unlock()
}

// Start begins the scheduled resync loop.
func (s *ResyncScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("resync scheduler is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.interval.String())
	_, err := s.cron.AddFunc(schedule, s.resyncAll)
	if err != nil {
		return fmt.Errorf("failed to schedule resync: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Resync scheduler started")
	return nil
}

// Stop halts the scheduled resync loop.
func (s *ResyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Resync scheduler stopped")
}

func (s *ResyncScheduler) resyncAll() {
	s.mu.Lock()
	leagues := make(map[string]string, len(s.leagues))
	for k, v := range s.leagues {
		leagues[k] = v
	}
	s.mu.Unlock()

	s.logger.Infof("Starting scheduled resync of %d league(s)", len(leagues))

	for leagueKey, token := range leagues {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		_, err := s.syncService.SyncLeague(ctx, leagueKey, token)
		cancel()
		if err != nil {
			s.logger.WithField("league_key", leagueKey).Warnf("Scheduled resync failed, dropping league from rotation: %v", err)
			s.mu.Lock()
			delete(s.leagues, leagueKey)
			s.mu.Unlock()
		}
	}
}

// Status reports the scheduler's current state.
func (s *ResyncScheduler) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	nextRuns := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		nextRuns = append(nextRuns, entry.Next)
	}

	return map[string]interface{}{
		"is_running": s.isRunning,
		"interval":   s.interval.String(),
		"leagues":    len(s.leagues),
		"next_runs":  nextRuns,
	}
}
