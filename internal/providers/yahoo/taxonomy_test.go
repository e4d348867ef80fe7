package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mreoch1/tradesync/pkg/utils"
)

// fakeFetcher serves canned fantasy_content payloads and counts requests.
type fakeFetcher struct {
	responses map[string]string
	calls     map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		responses: make(map[string]string),
		calls:     make(map[string]int),
	}
}

func (f *fakeFetcher) GetJSON(_ context.Context, resource, _ string) (map[string]interface{}, error) {
	f.calls[resource]++
	raw, ok := f.responses[resource]
	if !ok {
		return nil, fmt.Errorf("%w: status 404: resource %s", utils.ErrTransport, resource)
	}
	var content map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, err
	}
	return content, nil
}

const statCategoriesFixture = `{
	"game": [
		{"game_key": "453", "code": "nhl", "season": "2025"},
		{"stat_categories": {"stats": [
			{"stat": {"stat_id": "1", "name": "Goals", "display_name": "G"}},
			{"stat": {"stat_id": "2", "name": "Assists", "display_name": "A"}},
			{"stat": {"stat_id": "19", "name": "Wins", "display_name": "W"}},
			{"stat": {"stat_id": "26", "name": "Save Percentage", "display_name": "SV%"}}
		]}}
	]
}`

func TestDefinitions_BuildsIndexAndCaches(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.responses["game/453/stat_categories"] = statCategoriesFixture
	resolver := NewTaxonomyResolver(fetcher, logrus.New())

	idx, err := resolver.Definitions(context.Background(), "453", "token")
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Len())

	name, ok := idx.Name("1")
	require.True(t, ok)
	assert.Equal(t, "Goals", name)

	// Second resolution for the same game must not hit the provider again.
	_, err = resolver.Definitions(context.Background(), "453", "token")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls["game/453/stat_categories"])
}

func TestDefinitions_ZeroDefinitionsIsFatal(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.responses["game/453/stat_categories"] = `{"game": [{"game_key": "453"}, {"stat_categories": {"stats": []}}]}`
	resolver := NewTaxonomyResolver(fetcher, logrus.New())

	_, err := resolver.Definitions(context.Background(), "453", "token")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrTaxonomyUnresolved)
}

func TestDefinitions_TransportFailureIsFatal(t *testing.T) {
	resolver := NewTaxonomyResolver(newFakeFetcher(), logrus.New())

	_, err := resolver.Definitions(context.Background(), "999", "token")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrTaxonomyUnresolved)
}

func TestIDByName_ExactThenSubstring(t *testing.T) {
	idx := NewStatIndex("453", map[string]string{
		"1":  "Goals",
		"2":  "Assists",
		"8":  "Power Play Points",
		"26": "Save Percentage",
	})

	id, ok := idx.IDByName("goals")
	require.True(t, ok)
	assert.Equal(t, "1", id)

	// Substring fallback after alphanumeric normalization.
	id, ok = idx.IDByName("Powerplay Points")
	require.True(t, ok)
	assert.Equal(t, "8", id)

	_, ok = idx.IDByName("Faceoffs Won")
	assert.False(t, ok)
}

func TestIDByName_FirstCandidateWins(t *testing.T) {
	idx := NewStatIndex("453", map[string]string{
		"1": "Goals",
		"4": "Points",
	})

	id, ok := idx.IDByName("Points", "Goals")
	require.True(t, ok)
	assert.Equal(t, "4", id)
}

func TestClear_ForcesRefetch(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.responses["game/453/stat_categories"] = statCategoriesFixture
	resolver := NewTaxonomyResolver(fetcher, logrus.New())

	_, err := resolver.Definitions(context.Background(), "453", "token")
	require.NoError(t, err)

	resolver.Clear()
	_, err = resolver.Definitions(context.Background(), "453", "token")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls["game/453/stat_categories"])
}
