package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mreoch1/tradesync/internal/models"
)

// fakeFetcher satisfies yahoo.Fetcher with a per-resource handler and records
// every resource requested.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []string
	handler func(resource string) (map[string]interface{}, error)
}

func (f *fakeFetcher) GetJSON(_ context.Context, resource, _ string) (map[string]interface{}, error) {
	f.mu.Lock()
	f.calls = append(f.calls, resource)
	f.mu.Unlock()
	return f.handler(resource)
}

func (f *fakeFetcher) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// batchKeys extracts the player keys a stats resource asked for.
func batchKeys(resource string) []string {
	start := strings.Index(resource, "player_keys=")
	if start < 0 {
		return nil
	}
	rest := resource[start+len("player_keys="):]
	if end := strings.Index(rest, "/"); end >= 0 {
		rest = rest[:end]
	}
	return strings.Split(rest, ",")
}

// seasonStatsContent builds a batched stats response carrying one validated
// season block per requested player.
func seasonStatsContent(playerKeys []string) map[string]interface{} {
	players := map[string]interface{}{"count": len(playerKeys)}
	for i, key := range playerKeys {
		players[fmt.Sprintf("%d", i)] = map[string]interface{}{
			"player": []interface{}{
				[]interface{}{map[string]interface{}{"player_key": key}},
				map[string]interface{}{
					"player_stats": map[string]interface{}{
						"coverage_type": "season",
						"stats": []interface{}{
							map[string]interface{}{"stat": map[string]interface{}{"stat_id": "1", "value": "10"}},
							map[string]interface{}{"stat": map[string]interface{}{"stat_id": "2", "value": "15"}},
						},
					},
				},
			},
		}
	}
	return map[string]interface{}{
		"league": []interface{}{
			map[string]interface{}{"league_key": "453.l.1"},
			map[string]interface{}{"players": players},
		},
	}
}

func makeAthletes(n int) []*models.Athlete {
	athletes := make([]*models.Athlete, n)
	for i := range athletes {
		athletes[i] = &models.Athlete{
			Key:       fmt.Sprintf("453.p.%d", i+1),
			Positions: []string{"C"},
		}
	}
	return athletes
}

func TestAttachSeasonStats_PartitionsIntoBatchesOfTwentyFive(t *testing.T) {
	fetcher := &fakeFetcher{
		handler: func(resource string) (map[string]interface{}, error) {
			return seasonStatsContent(batchKeys(resource)), nil
		},
	}
	attacher := NewStatsAttacher(fetcher, 4, logrus.New())

	athletes := makeAthletes(30)
	attached := attacher.AttachSeasonStats(context.Background(), "453.l.1", "2025", "token", athletes)

	assert.Equal(t, 30, attached)

	calls := fetcher.requested()
	require.Len(t, calls, 2)
	sizes := map[int]int{}
	for _, call := range calls {
		assert.Contains(t, call, "type=season")
		assert.Contains(t, call, "season=2025")
		sizes[len(batchKeys(call))]++
	}
	assert.Equal(t, 1, sizes[25])
	assert.Equal(t, 1, sizes[5])

	for _, a := range athletes {
		assert.True(t, a.HasStats, "athlete %s", a.Key)
		assert.Equal(t, 10.0, a.Stats["1"])
	}
}

func TestAttachSeasonStats_FailedBatchDegradesWithoutAbortingSiblings(t *testing.T) {
	fetcher := &fakeFetcher{
		handler: func(resource string) (map[string]interface{}, error) {
			keys := batchKeys(resource)
			for _, k := range keys {
				if k == "453.p.26" {
					return nil, fmt.Errorf("upstream 500")
				}
			}
			return seasonStatsContent(keys), nil
		},
	}
	attacher := NewStatsAttacher(fetcher, 2, logrus.New())

	athletes := makeAthletes(30)
	attached := attacher.AttachSeasonStats(context.Background(), "453.l.1", "2025", "token", athletes)

	assert.Equal(t, 25, attached)
	for i, a := range athletes {
		if i < 25 {
			assert.True(t, a.HasStats, "athlete %s", a.Key)
		} else {
			assert.False(t, a.HasStats, "athlete %s should stay stat-less", a.Key)
			assert.Nil(t, a.Stats)
		}
	}
}

func TestAttachSeasonStats_UnparseableBatchDegrades(t *testing.T) {
	fetcher := &fakeFetcher{
		handler: func(resource string) (map[string]interface{}, error) {
			return map[string]interface{}{"league": []interface{}{}}, nil
		},
	}
	attacher := NewStatsAttacher(fetcher, 1, logrus.New())

	athletes := makeAthletes(3)
	attached := attacher.AttachSeasonStats(context.Background(), "453.l.1", "2025", "token", athletes)

	assert.Equal(t, 0, attached)
	for _, a := range athletes {
		assert.False(t, a.HasStats)
	}
}

func TestAttachSeasonStats_NoAthletesMakesNoRequests(t *testing.T) {
	fetcher := &fakeFetcher{
		handler: func(string) (map[string]interface{}, error) {
			t.Fatal("unexpected request")
			return nil, nil
		},
	}
	attacher := NewStatsAttacher(fetcher, 4, logrus.New())

	attached := attacher.AttachSeasonStats(context.Background(), "453.l.1", "2025", "token", nil)
	assert.Zero(t, attached)
	assert.Empty(t, fetcher.requested())
}
