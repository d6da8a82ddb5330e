package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pondus/internal/cache"
	"github.com/jonathan/pondus/internal/config"
	"github.com/jonathan/pondus/internal/types"
)

func TestAll_RegistrationOrder(t *testing.T) {
	srcs := All()
	require.Len(t, srcs, 7)

	names := make([]string, len(srcs))
	for i, s := range srcs {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{
		"artificial-analysis",
		"arena",
		"swebench",
		"aider",
		"livebench",
		"terminal-bench",
		"seal",
	}, names)
}

func TestMock_FixedScores(t *testing.T) {
	s := &Mock{}
	result, err := s.Fetch(context.Background(), &config.Config{}, cache.New(t.TempDir(), 24))
	require.NoError(t, err)

	assert.Equal(t, types.StatusOk, result.Status.Kind)
	require.Len(t, result.Scores, 3)
	assert.Equal(t, "claude-opus-4.6", result.Scores[0].Model)
	assert.Equal(t, 1, *result.Scores[0].Rank)
}
