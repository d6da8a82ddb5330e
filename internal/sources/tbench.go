package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/pondus/internal/cache"
	"github.com/jonathan/pondus/internal/config"
	"github.com/jonathan/pondus/internal/fetch"
	"github.com/jonathan/pondus/internal/types"
)

const (
	tbenchCacheKey = "terminal-bench"
	tbenchAPIURL   = "https://huggingface.co/api/datasets/sabhay/terminal-bench-2-leaderboard"
	tbenchRawBase  = "https://huggingface.co/datasets/sabhay/terminal-bench-2-leaderboard/raw/main"
)

// TerminalBench collects per-submission results from the Terminal-Bench
// leaderboard dataset and keeps the best reward per model.
type TerminalBench struct{}

// Name implements Source.
func (s *TerminalBench) Name() string { return "terminal-bench" }

type tbenchResult struct {
	Config *struct {
		Agent *struct {
			ModelName *string `json:"model_name"`
			Name      *string `json:"name"`
		} `json:"agent"`
	} `json:"config"`
	VerifierResult *struct {
		Rewards map[string]float64 `json:"rewards"`
	} `json:"verifier_result"`
}

// Fetch implements Source.
func (s *TerminalBench) Fetch(ctx context.Context, cfg *config.Config, store *cache.Cache) (*types.SourceResult, error) {
	if fetchedAt, data, ok := store.Get(tbenchCacheKey); ok {
		var scores []types.ModelScore
		if err := json.Unmarshal(data, &scores); err == nil {
			return &types.SourceResult{
				Source:    s.Name(),
				FetchedAt: timePtr(fetchedAt),
				Status:    types.Cached(),
				Scores:    scores,
			}, nil
		}
		// Unreadable cache entry: fall through and fetch fresh.
	}

	var metadata struct {
		Siblings []struct {
			RFilename string `json:"rfilename"`
		} `json:"siblings"`
	}
	if err := fetch.JSON(ctx, tbenchAPIURL, nil, &metadata); err != nil {
		if fe, ok := err.(*fetch.Error); ok && fe.StatusCode != 0 {
			return errorResult(s.Name(), fe.Message), nil
		}
		return nil, err
	}

	var resultFiles []string
	for _, sib := range metadata.Siblings {
		if strings.HasSuffix(sib.RFilename, "result.json") {
			resultFiles = append(resultFiles, sib.RFilename)
		}
	}
	if len(resultFiles) == 0 {
		return unavailableResult(s.Name()), nil
	}

	var results []tbenchResult
	for _, file := range resultFiles {
		url := fmt.Sprintf("%s/submissions/%s", tbenchRawBase, file)
		var r tbenchResult
		if err := fetch.JSON(ctx, url, nil, &r); err != nil {
			// Individual submission failures are skipped.
			continue
		}
		results = append(results, r)
	}
	if len(results) == 0 {
		return unavailableResult(s.Name()), nil
	}

	// Best reward per model across submissions, with a submission count.
	type agg struct {
		sourceName  string
		best        float64
		submissions int64
	}
	byModel := map[string]*agg{}
	for _, r := range results {
		if r.Config == nil || r.Config.Agent == nil || r.Config.Agent.ModelName == nil {
			continue
		}
		name := *r.Config.Agent.ModelName
		var reward float64
		if r.VerifierResult != nil {
			reward = r.VerifierResult.Rewards["reward"]
		}

		key := normalizeTBenchName(name)
		a, ok := byModel[key]
		if !ok {
			byModel[key] = &agg{sourceName: name, best: reward, submissions: 1}
			continue
		}
		if reward > a.best {
			a.best = reward
		}
		a.submissions++
	}

	keys := make([]string, 0, len(byModel))
	for key := range byModel {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if byModel[keys[i]].best != byModel[keys[j]].best {
			return byModel[keys[i]].best > byModel[keys[j]].best
		}
		return keys[i] < keys[j]
	})

	scores := make([]types.ModelScore, 0, len(keys))
	for i, key := range keys {
		a := byModel[key]
		rank := i + 1
		scores = append(scores, types.ModelScore{
			Model:           key,
			SourceModelName: a.sourceName,
			Metrics: map[string]types.MetricValue{
				"score":       types.Float(a.best),
				"submissions": types.Int(a.submissions),
				"rank":        types.Int(int64(rank)),
			},
			Rank: intPtr(rank),
		})
	}

	if data, err := json.Marshal(scores); err == nil {
		// Cache write failure is not worth failing a successful fetch.
		_ = store.Set(tbenchCacheKey, data)
	}

	return &types.SourceResult{
		Source:    s.Name(),
		FetchedAt: timePtr(time.Now().UTC()),
		Status:    types.Ok(),
		Scores:    scores,
	}, nil
}

func normalizeTBenchName(name string) string {
	return strings.NewReplacer(" ", "-", "_", "-").Replace(strings.ToLower(name))
}
