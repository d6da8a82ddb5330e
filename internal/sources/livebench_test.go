package sources

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pondus/internal/types"
)

func TestLiveBench_ParseAggregate(t *testing.T) {
	fixture := `{"scores": [
		{"source_model_name": "GPT-5", "global_average": 72.4},
		{"source_model_name": "claude_opus 4.6", "global_average": 81.9},
		{"source_model_name": ""},
		{"source_model_name": "broken"}
	]}`

	s := &LiveBench{}
	result := s.parseAggregate(json.RawMessage(fixture), nil, types.Cached())

	require.Len(t, result.Scores, 2, "rows without a name or score are dropped")
	assert.Equal(t, types.StatusCached, result.Status.Kind)

	// Sorted descending with underscores and spaces normalized to dashes.
	assert.Equal(t, "claude-opus-4.6", result.Scores[0].Model)
	assert.Equal(t, "claude_opus 4.6", result.Scores[0].SourceModelName)
	assert.Equal(t, 1, *result.Scores[0].Rank)
	assert.Equal(t, "gpt-5", result.Scores[1].Model)

	avg, ok := result.Scores[0].Metrics["global_average"].AsFloat()
	require.True(t, ok)
	assert.InDelta(t, 81.9, avg, 1e-9)
}

func TestLiveBench_ParseGarbage(t *testing.T) {
	s := &LiveBench{}
	result := s.parseAggregate(json.RawMessage(`"nope"`), nil, types.Ok())
	assert.Empty(t, result.Scores)
}
