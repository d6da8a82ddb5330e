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

const sweBenchURL = "https://raw.githubusercontent.com/SWE-bench/swe-bench.github.io/master/data/leaderboards.json"

// SWEBench fetches the SWE-bench leaderboard data published with the site.
type SWEBench struct{}

// Name implements Source.
func (s *SWEBench) Name() string { return "swebench" }

// Fetch implements Source.
func (s *SWEBench) Fetch(ctx context.Context, cfg *config.Config, store *cache.Cache) (*types.SourceResult, error) {
	if fetchedAt, data, ok := store.Get(s.Name()); ok {
		return &types.SourceResult{
			Source:    s.Name(),
			FetchedAt: timePtr(fetchedAt),
			Status:    types.Cached(),
			Scores:    parseSWEBenchScores(data),
		}, nil
	}

	body, err := fetch.Get(ctx, sweBenchURL, nil)
	if err != nil {
		if fe, ok := err.(*fetch.Error); ok && fe.StatusCode != 0 {
			return errorResult(s.Name(), fe.Message), nil
		}
		return nil, err
	}

	if err := store.Set(s.Name(), body); err != nil {
		return nil, err
	}
	return &types.SourceResult{
		Source:    s.Name(),
		FetchedAt: timePtr(time.Now().UTC()),
		Status:    types.Ok(),
		Scores:    parseSWEBenchScores(body),
	}, nil
}

// parseSWEBenchScores accepts the shapes the site has published over time:
// {"leaderboards": [...]}, {"results": [...]}, or a top-level array; entries
// may nest their rows under "results" or be rows themselves.
func parseSWEBenchScores(data json.RawMessage) []types.ModelScore {
	scores := []types.ModelScore{}

	var wrapper struct {
		Leaderboards []json.RawMessage `json:"leaderboards"`
		Results      []json.RawMessage `json:"results"`
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err == nil {
		switch {
		case wrapper.Leaderboards != nil:
			entries = wrapper.Leaderboards
		case wrapper.Results != nil:
			entries = wrapper.Results
		}
	}
	if entries == nil {
		if err := json.Unmarshal(data, &entries); err != nil {
			return scores
		}
	}

	for _, raw := range entries {
		var nested struct {
			Results []json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && nested.Results != nil {
			for _, row := range nested.Results {
				if score, ok := extractSWEBenchScore(row); ok {
					scores = append(scores, score)
				}
			}
			continue
		}
		if score, ok := extractSWEBenchScore(raw); ok {
			scores = append(scores, score)
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return metricFloat(scores[i].Metrics, "resolved_rate") > metricFloat(scores[j].Metrics, "resolved_rate")
	})
	for i := range scores {
		scores[i].Rank = intPtr(i + 1)
	}
	return scores
}

func extractSWEBenchScore(raw json.RawMessage) (types.ModelScore, bool) {
	var row struct {
		Name          string   `json:"name"`
		Resolved      *float64 `json:"resolved"`
		ResolvedCount *int64   `json:"resolved_count"`
		Date          string   `json:"date"`
	}
	if err := json.Unmarshal(raw, &row); err != nil || row.Name == "" {
		return types.ModelScore{}, false
	}

	metrics := map[string]types.MetricValue{}
	if row.Resolved != nil {
		metrics["resolved_rate"] = types.Float(*row.Resolved)
	}
	if row.ResolvedCount != nil {
		metrics["resolved_count"] = types.Int(*row.ResolvedCount)
	}
	if row.Date != "" {
		metrics["date"] = types.Text(row.Date)
	}

	return types.ModelScore{
		Model:           strings.ToLower(row.Name),
		SourceModelName: row.Name,
		Metrics:         metrics,
	}, true
}

func metricFloat(metrics map[string]types.MetricValue, key string) float64 {
	if v, ok := metrics[key]; ok {
		if f, ok := v.AsFloat(); ok {
			return f
		}
	}
	return 0
}
