package sources

import (
	"context"
	"time"

	"github.com/jonathan/pondus/internal/cache"
	"github.com/jonathan/pondus/internal/config"
	"github.com/jonathan/pondus/internal/types"
)

// Mock returns a fixed score set without touching the network or the cache.
// Enabled via PONDUS_USE_MOCK for development and demos.
type Mock struct{}

// Name implements Source.
func (s *Mock) Name() string { return "mock" }

// Fetch implements Source.
func (s *Mock) Fetch(ctx context.Context, cfg *config.Config, store *cache.Cache) (*types.SourceResult, error) {
	scores := []types.ModelScore{
		{
			Model:           "claude-opus-4.6",
			SourceModelName: "Claude Opus 4.6",
			Metrics: map[string]types.MetricValue{
				"score": types.Float(92.5),
				"rank":  types.Int(1),
			},
			Rank: intPtr(1),
		},
		{
			Model:           "gpt-5.2",
			SourceModelName: "GPT-5.2",
			Metrics: map[string]types.MetricValue{
				"score": types.Float(89.1),
				"rank":  types.Int(2),
			},
			Rank: intPtr(2),
		},
		{
			Model:           "gemini-3.1-pro",
			SourceModelName: "Gemini 3.1 Pro",
			Metrics: map[string]types.MetricValue{
				"score": types.Float(87.3),
				"rank":  types.Int(3),
			},
			Rank: intPtr(3),
		},
	}

	return &types.SourceResult{
		Source:    s.Name(),
		FetchedAt: timePtr(time.Now().UTC()),
		Status:    types.Ok(),
		Scores:    scores,
	}, nil
}
