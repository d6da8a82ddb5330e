package sources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pondus/internal/cache"
	"github.com/jonathan/pondus/internal/config"
	"github.com/jonathan/pondus/internal/types"
)

func TestNormalizeTBenchName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Claude Opus 4.6", "claude-opus-4.6"},
		{"gpt_5_mini", "gpt-5-mini"},
		{"already-normal", "already-normal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeTBenchName(tt.input))
	}
}

func TestTerminalBench_ServesFromCache(t *testing.T) {
	store := cache.New(t.TempDir(), 24)

	rank := 1
	cached := []types.ModelScore{
		{
			Model:           "claude-opus-4.6",
			SourceModelName: "Claude Opus 4.6",
			Metrics: map[string]types.MetricValue{
				"score":       types.Float(0.81),
				"submissions": types.Int(4),
				"rank":        types.Int(1),
			},
			Rank: &rank,
		},
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, store.Set("terminal-bench", data))

	s := &TerminalBench{}
	result, err := s.Fetch(context.Background(), &config.Config{}, store)
	require.NoError(t, err)

	assert.Equal(t, types.StatusCached, result.Status.Kind)
	require.Len(t, result.Scores, 1)
	assert.Equal(t, "claude-opus-4.6", result.Scores[0].Model)

	best, ok := result.Scores[0].Metrics["score"].AsFloat()
	require.True(t, ok)
	assert.InDelta(t, 0.81, best, 1e-9)
}
