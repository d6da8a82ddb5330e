package sources

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/pondus/internal/cache"
	"github.com/jonathan/pondus/internal/config"
	"github.com/jonathan/pondus/internal/fetch"
	"github.com/jonathan/pondus/internal/types"
)

const aiderURL = "https://raw.githubusercontent.com/Aider-AI/aider/main/aider/website/_data/polyglot_leaderboard.yml"

// Aider fetches the aider polyglot coding leaderboard. The upstream file is
// YAML; the decoded entries are cached as JSON like every other source.
type Aider struct{}

// Name implements Source.
func (s *Aider) Name() string { return "aider" }

type aiderEntry struct {
	Model                  string   `yaml:"model" json:"model"`
	PassRate1              *float64 `yaml:"pass_rate_1" json:"pass_rate_1,omitempty"`
	TotalCost              *float64 `yaml:"total_cost" json:"total_cost,omitempty"`
	PercentCasesWellFormed *float64 `yaml:"percent_cases_well_formed" json:"percent_cases_well_formed,omitempty"`
}

// Fetch implements Source.
func (s *Aider) Fetch(ctx context.Context, cfg *config.Config, store *cache.Cache) (*types.SourceResult, error) {
	if fetchedAt, data, ok := store.Get(s.Name()); ok {
		return &types.SourceResult{
			Source:    s.Name(),
			FetchedAt: timePtr(fetchedAt),
			Status:    types.Cached(),
			Scores:    parseAiderScores(data),
		}, nil
	}

	body, err := fetch.Get(ctx, aiderURL, nil)
	if err != nil {
		if fe, ok := err.(*fetch.Error); ok && fe.StatusCode != 0 {
			return errorResult(s.Name(), fe.Message), nil
		}
		return nil, err
	}

	var entries []aiderEntry
	if err := yaml.Unmarshal(body, &entries); err != nil {
		return errorResult(s.Name(), "failed to parse aider leaderboard YAML"), nil
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	if err := store.Set(s.Name(), data); err != nil {
		return nil, err
	}

	return &types.SourceResult{
		Source:    s.Name(),
		FetchedAt: timePtr(time.Now().UTC()),
		Status:    types.Ok(),
		Scores:    parseAiderScores(data),
	}, nil
}

func parseAiderScores(data json.RawMessage) []types.ModelScore {
	var entries []aiderEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []types.ModelScore{}
	}

	scores := make([]types.ModelScore, 0, len(entries))
	for _, e := range entries {
		if e.Model == "" {
			continue
		}
		metrics := map[string]types.MetricValue{}
		if e.PassRate1 != nil {
			metrics["pass_rate_1"] = types.Float(*e.PassRate1)
		}
		if e.TotalCost != nil {
			metrics["cost"] = types.Float(*e.TotalCost)
		}
		if e.PercentCasesWellFormed != nil {
			metrics["percent_cases_well_formed"] = types.Float(*e.PercentCasesWellFormed)
		}

		scores = append(scores, types.ModelScore{
			Model:           strings.ToLower(e.Model),
			SourceModelName: e.Model,
			Metrics:         metrics,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return metricFloat(scores[i].Metrics, "pass_rate_1") > metricFloat(scores[j].Metrics, "pass_rate_1")
	})
	for i := range scores {
		scores[i].Rank = intPtr(i + 1)
	}
	return scores
}
