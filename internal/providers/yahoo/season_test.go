package yahoo

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mreoch1/tradesync/pkg/utils"
)

func TestSeason_TruncatesHyphenatedFormat(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.responses["game/453"] = `{"game": [{"game_key": "453", "code": "nhl", "season": "2025-26"}]}`
	resolver := NewSeasonResolver(fetcher, logrus.New())

	season, err := resolver.Season(context.Background(), "453", "token")
	require.NoError(t, err)
	assert.Equal(t, "2025", season)
}

func TestSeason_CachesPerGameKey(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.responses["game/453"] = `{"game": [{"game_key": "453", "season": "2025"}]}`
	resolver := NewSeasonResolver(fetcher, logrus.New())

	_, err := resolver.Season(context.Background(), "453", "token")
	require.NoError(t, err)
	_, err = resolver.Season(context.Background(), "453", "token")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls["game/453"])
}

func TestSeason_MissingSeasonFieldIsFatal(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.responses["game/453"] = `{"game": [{"game_key": "453", "code": "nhl"}]}`
	resolver := NewSeasonResolver(fetcher, logrus.New())

	_, err := resolver.Season(context.Background(), "453", "token")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrSeasonUnresolved)
}

func TestSeason_GarbageSeasonIsFatal(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.responses["game/453"] = `{"game": [{"game_key": "453", "season": "upcoming"}]}`
	resolver := NewSeasonResolver(fetcher, logrus.New())

	_, err := resolver.Season(context.Background(), "453", "token")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrSeasonUnresolved)
}

func TestSeason_UnreachableGameIsFatal(t *testing.T) {
	resolver := NewSeasonResolver(newFakeFetcher(), logrus.New())

	_, err := resolver.Season(context.Background(), "999", "token")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrSeasonUnresolved)
}
