package yahoo

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Mreoch1/tradesync/pkg/utils"
)

var seasonYearRe = regexp.MustCompile(`^\d{4}`)

// SeasonResolver fetches the canonical season year for a game key from the
// game resource itself. The season is never inferred from a league identifier
// or a key lookup table; those signals occasionally disagree with the game
// resource and stats queries built from the wrong one return empty blocks.
type SeasonResolver struct {
	client Fetcher
	logger *logrus.Logger

	mu    sync.RWMutex
	cache map[string]string
}

// NewSeasonResolver creates a resolver with its own empty cache.
func NewSeasonResolver(client Fetcher, logger *logrus.Logger) *SeasonResolver {
	return &SeasonResolver{
		client: client,
		logger: logger,
		cache:  make(map[string]string),
	}
}

// Season returns the 4-digit season year for a game, fetching on first use.
// Provider formats such as "2025-26" are truncated to the leading year.
func (r *SeasonResolver) Season(ctx context.Context, gameKey, accessToken string) (string, error) {
	r.mu.RLock()
	season, ok := r.cache[gameKey]
	r.mu.RUnlock()
	if ok {
		return season, nil
	}

	content, err := r.client.GetJSON(ctx, fmt.Sprintf("game/%s", gameKey), accessToken)
	if err != nil {
		return "", fmt.Errorf("%w: game %s: %v", utils.ErrSeasonUnresolved, gameKey, err)
	}

	game := NormalizeNode(FindFirstPath(content, []string{"game"}))
	if game == nil {
		return "", fmt.Errorf("%w: game %s: game node not found in response", utils.ErrSeasonUnresolved, gameKey)
	}

	raw := AsString(game["season"])
	year := seasonYearRe.FindString(raw)
	if year == "" {
		return "", fmt.Errorf("%w: game %s: season field %q is not a 4-digit year", utils.ErrSeasonUnresolved, gameKey, raw)
	}

	r.mu.Lock()
	if existing, ok := r.cache[gameKey]; ok {
		year = existing
	} else {
		r.cache[gameKey] = year
	}
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"game_key": gameKey,
		"season":   year,
	}).Info("Resolved season")

	return year, nil
}

// Clear empties the cache. Test hook only.
func (r *SeasonResolver) Clear() {
	r.mu.Lock()
	r.cache = make(map[string]string)
	r.mu.Unlock()
}
