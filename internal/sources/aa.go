package sources

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/pondus/internal/cache"
	"github.com/jonathan/pondus/internal/config"
	"github.com/jonathan/pondus/internal/fetch"
	"github.com/jonathan/pondus/internal/types"
)

const aaURL = "https://artificialanalysis.ai/api/v2/data/llms/models"

// ArtificialAnalysis fetches the Artificial Analysis intelligence index.
// Requires an API key; reports Unavailable without one.
type ArtificialAnalysis struct{}

// Name implements Source.
func (s *ArtificialAnalysis) Name() string { return "artificial-analysis" }

type aaModel struct {
	Name              string   `json:"name"`
	IntelligenceIndex *float64 `json:"intelligence_index"`
	InputCost         *float64 `json:"input_cost_per_1m_tokens"`
	OutputCost        *float64 `json:"output_cost_per_1m_tokens"`
	TokensPerSecond   *float64 `json:"tokens_per_second"`
}

// Fetch implements Source.
func (s *ArtificialAnalysis) Fetch(ctx context.Context, cfg *config.Config, store *cache.Cache) (*types.SourceResult, error) {
	apiKey := cfg.APIKey(s.Name())
	if apiKey == "" {
		return unavailableResult(s.Name()), nil
	}

	if fetchedAt, data, ok := store.Get(s.Name()); ok {
		return s.parse(data, timePtr(fetchedAt), types.Cached()), nil
	}

	opts := fetch.DefaultOptions()
	opts.Headers = map[string]string{"x-api-key": apiKey}

	body, err := fetch.Get(ctx, aaURL, opts)
	if err != nil {
		if fe, ok := err.(*fetch.Error); ok && fe.StatusCode != 0 {
			return errorResult(s.Name(), fe.Message), nil
		}
		return nil, err
	}

	if err := store.Set(s.Name(), body); err != nil {
		return nil, err
	}
	return s.parse(body, timePtr(time.Now().UTC()), types.Ok()), nil
}

func (s *ArtificialAnalysis) parse(data json.RawMessage, fetchedAt *time.Time, status types.SourceStatus) *types.SourceResult {
	var models []aaModel
	if err := json.Unmarshal(data, &models); err != nil {
		return &types.SourceResult{
			Source:    s.Name(),
			FetchedAt: fetchedAt,
			Status:    status,
			Scores:    []types.ModelScore{},
		}
	}

	ranked := make([]aaModel, 0, len(models))
	for _, m := range models {
		if m.Name == "" || m.IntelligenceIndex == nil {
			continue
		}
		ranked = append(ranked, m)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].IntelligenceIndex > *ranked[j].IntelligenceIndex
	})

	scores := make([]types.ModelScore, 0, len(ranked))
	for i, m := range ranked {
		rank := i + 1
		metrics := map[string]types.MetricValue{
			"intelligence_index": types.Float(*m.IntelligenceIndex),
			"rank":               types.Int(int64(rank)),
		}
		if m.InputCost != nil {
			metrics["input_cost_per_1m_tokens"] = types.Float(*m.InputCost)
		}
		if m.OutputCost != nil {
			metrics["output_cost_per_1m_tokens"] = types.Float(*m.OutputCost)
		}
		if m.TokensPerSecond != nil {
			metrics["tokens_per_second"] = types.Float(*m.TokensPerSecond)
		}

		scores = append(scores, types.ModelScore{
			Model:           strings.ReplaceAll(strings.ToLower(m.Name), " ", "-"),
			SourceModelName: m.Name,
			Metrics:         metrics,
			Rank:            intPtr(rank),
		})
	}

	return &types.SourceResult{
		Source:    s.Name(),
		FetchedAt: fetchedAt,
		Status:    status,
		Scores:    scores,
	}
}
