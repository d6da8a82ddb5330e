package sources

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pondus/internal/types"
)

func TestArena_ParseLatestDateOverall(t *testing.T) {
	fixture := `{
		"20260701": {"text": {"overall": {"Old Model": 1200.0}}},
		"20260801": {"text": {"overall": {"GPT-5": 1350.5, "Claude Opus 4.6": 1362.1, "junk": "nope"}}}
	}`

	s := &Arena{}
	result := s.parse(json.RawMessage(fixture), nil, types.Ok())

	require.Len(t, result.Scores, 2, "only the latest snapshot counts and non-numeric entries are dropped")
	assert.Equal(t, "Claude Opus 4.6", result.Scores[0].SourceModelName)
	assert.Equal(t, 1, *result.Scores[0].Rank)
	assert.Equal(t, "gpt-5", result.Scores[1].Model)

	elo, ok := result.Scores[0].Metrics["elo_score"].AsFloat()
	require.True(t, ok)
	assert.InDelta(t, 1362.1, elo, 1e-9)
}

func TestArena_CategoryFallback(t *testing.T) {
	t.Run("full_old", func(t *testing.T) {
		fixture := `{"20260801": {"text": {"full_old": {"GPT-5": 1350.0}}}}`
		result := (&Arena{}).parse(json.RawMessage(fixture), nil, types.Ok())
		require.Len(t, result.Scores, 1)
	})

	t.Run("alphabetically first category", func(t *testing.T) {
		fixture := `{"20260801": {"text": {"coding": {"GPT-5": 1350.0}, "vision": {"GPT-5": 1.0}}}}`
		result := (&Arena{}).parse(json.RawMessage(fixture), nil, types.Ok())
		require.Len(t, result.Scores, 1)
		elo, _ := result.Scores[0].Metrics["elo_score"].AsFloat()
		assert.InDelta(t, 1350.0, elo, 1e-9)
	})
}

func TestArena_UnparseableIsAnError(t *testing.T) {
	s := &Arena{}

	result := s.parse(json.RawMessage(`{"20260801": {"text": {}}}`), nil, types.Ok())
	assert.Equal(t, types.StatusError, result.Status.Kind)
	assert.Empty(t, result.Scores)

	result = s.parse(json.RawMessage(`"not an object"`), nil, types.Ok())
	assert.Empty(t, result.Scores)
}
