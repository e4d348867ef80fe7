package yahoo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Mreoch1/tradesync/pkg/utils"
)

// StatIndex maps a game's opaque numeric stat identifiers to semantic names.
// Immutable once built.
type StatIndex struct {
	gameKey  string
	idToName map[string]string
	nameToID map[string]string
}

// NewStatIndex builds an index from resolved id -> name definitions.
func NewStatIndex(gameKey string, defs map[string]string) *StatIndex {
	idx := &StatIndex{
		gameKey:  gameKey,
		idToName: make(map[string]string, len(defs)),
		nameToID: make(map[string]string, len(defs)),
	}
	for id, name := range defs {
		idx.idToName[id] = name
		idx.nameToID[strings.ToLower(name)] = id
	}
	return idx
}

// GameKey returns the game the index was resolved for.
func (idx *StatIndex) GameKey() string { return idx.gameKey }

// Name returns the stat name for an id.
func (idx *StatIndex) Name(statID string) (string, bool) {
	name, ok := idx.idToName[statID]
	return name, ok
}

// Len reports the number of definitions.
func (idx *StatIndex) Len() int { return len(idx.idToName) }

// IDByName resolves a stat id from candidate names. Exact case-insensitive
// match wins; a normalized substring match is the fallback, so "Save
// Percentage" still resolves when the provider renames it "Save %".
func (idx *StatIndex) IDByName(candidates ...string) (string, bool) {
	for _, name := range candidates {
		if id, ok := idx.nameToID[strings.ToLower(name)]; ok {
			return id, true
		}
	}
	for _, name := range candidates {
		needle := normalizeStatName(name)
		if needle == "" {
			continue
		}
		for lower, id := range idx.nameToID {
			if strings.Contains(normalizeStatName(lower), needle) {
				return id, true
			}
		}
	}
	return "", false
}

func normalizeStatName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TaxonomyResolver fetches and caches the stat taxonomy per game key. The
// cache is written at most once per key; Clear exists for test isolation.
type TaxonomyResolver struct {
	client Fetcher
	logger *logrus.Logger

	mu    sync.RWMutex
	cache map[string]*StatIndex
}

// NewTaxonomyResolver creates a resolver with its own empty cache.
func NewTaxonomyResolver(client Fetcher, logger *logrus.Logger) *TaxonomyResolver {
	return &TaxonomyResolver{
		client: client,
		logger: logger,
		cache:  make(map[string]*StatIndex),
	}
}

// Definitions returns the stat index for a game, fetching on first use. A
// response that parses to zero definitions is a hard failure: proceeding
// would produce athletes with unexplained zero-valued statistics.
func (r *TaxonomyResolver) Definitions(ctx context.Context, gameKey, accessToken string) (*StatIndex, error) {
	r.mu.RLock()
	idx, ok := r.cache[gameKey]
	r.mu.RUnlock()
	if ok {
		return idx, nil
	}

	content, err := r.client.GetJSON(ctx, fmt.Sprintf("game/%s/stat_categories", gameKey), accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: game %s: %v", utils.ErrTaxonomyUnresolved, gameKey, err)
	}

	statsNode := FindFirstPath(content, []string{
		"game.1.stat_categories.stats",
		"game.0.stat_categories.stats",
		"game.stat_categories.stats",
	})
	statsArr, _ := statsNode.([]interface{})
	if statsArr == nil {
		return nil, fmt.Errorf("%w: game %s: stat_categories not found in response", utils.ErrTaxonomyUnresolved, gameKey)
	}

	idx = &StatIndex{
		gameKey:  gameKey,
		idToName: make(map[string]string),
		nameToID: make(map[string]string),
	}
	for _, entry := range statsArr {
		stat := NormalizeNode(FindFirstPath(entry, []string{"stat"}))
		if stat == nil {
			stat = NormalizeNode(entry)
		}
		if stat == nil {
			continue
		}
		statID := AsString(stat["stat_id"])
		name := AsString(stat["name"])
		if statID == "" || name == "" {
			continue
		}
		idx.idToName[statID] = name
		idx.nameToID[strings.ToLower(name)] = statID
		if display := AsString(stat["display_name"]); display != "" {
			idx.nameToID[strings.ToLower(display)] = statID
		}
	}

	if idx.Len() == 0 {
		return nil, fmt.Errorf("%w: game %s: response yielded zero stat definitions", utils.ErrTaxonomyUnresolved, gameKey)
	}

	r.mu.Lock()
	// First successful resolution wins.
	if existing, ok := r.cache[gameKey]; ok {
		idx = existing
	} else {
		r.cache[gameKey] = idx
	}
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"game_key":    gameKey,
		"definitions": idx.Len(),
	}).Info("Resolved stat taxonomy")

	return idx, nil
}

// Clear empties the cache. Test hook only.
func (r *TaxonomyResolver) Clear() {
	r.mu.Lock()
	r.cache = make(map[string]*StatIndex)
	r.mu.Unlock()
}
