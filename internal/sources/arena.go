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

const arenaURL = "https://raw.githubusercontent.com/nakasyou/lmarena-history/main/output/scores.json"

// Arena fetches LMArena Elo history snapshots published on GitHub.
type Arena struct{}

// Name implements Source.
func (s *Arena) Name() string { return "arena" }

// Fetch implements Source.
func (s *Arena) Fetch(ctx context.Context, cfg *config.Config, store *cache.Cache) (*types.SourceResult, error) {
	if fetchedAt, data, ok := store.Get(s.Name()); ok {
		return s.parse(data, timePtr(fetchedAt), types.Cached()), nil
	}

	body, err := fetch.Get(ctx, arenaURL, nil)
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

// parse walks the snapshot layout {"YYYYMMDD": {"text": {category: {model: elo}}}},
// taking the latest date and preferring the "overall" category, then
// "full_old", then the alphabetically first one.
func (s *Arena) parse(data json.RawMessage, fetchedAt *time.Time, status types.SourceStatus) *types.SourceResult {
	empty := func(st types.SourceStatus) *types.SourceResult {
		return &types.SourceResult{
			Source:    s.Name(),
			FetchedAt: fetchedAt,
			Status:    st,
			Scores:    []types.ModelScore{},
		}
	}

	var byDate map[string]struct {
		Text map[string]map[string]any `json:"text"`
	}
	if err := json.Unmarshal(data, &byDate); err != nil || len(byDate) == 0 {
		return empty(status)
	}

	// YYYYMMDD keys compare correctly as strings.
	var latest string
	for date := range byDate {
		if date > latest {
			latest = date
		}
	}
	categories := byDate[latest].Text

	var models map[string]any
	switch {
	case categories["overall"] != nil:
		models = categories["overall"]
	case categories["full_old"] != nil:
		models = categories["full_old"]
	case len(categories) > 0:
		names := make([]string, 0, len(categories))
		for name := range categories {
			names = append(names, name)
		}
		sort.Strings(names)
		models = categories[names[0]]
	default:
		return empty(types.Errorf("no valid categories found"))
	}

	type entry struct {
		name string
		elo  float64
	}
	ranked := make([]entry, 0, len(models))
	for name, v := range models {
		elo, ok := v.(float64)
		if !ok {
			continue
		}
		ranked = append(ranked, entry{name: name, elo: elo})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].elo != ranked[j].elo {
			return ranked[i].elo > ranked[j].elo
		}
		return ranked[i].name < ranked[j].name
	})

	scores := make([]types.ModelScore, 0, len(ranked))
	for i, e := range ranked {
		rank := i + 1
		scores = append(scores, types.ModelScore{
			Model:           strings.ToLower(e.name),
			SourceModelName: e.name,
			Metrics: map[string]types.MetricValue{
				"elo_score": types.Float(e.elo),
				"rank":      types.Int(int64(rank)),
			},
			Rank: intPtr(rank),
		})
	}

	if len(scores) == 0 && (status.Kind == types.StatusOk || status.Kind == types.StatusCached) {
		return empty(types.Errorf("failed to parse arena data structure"))
	}

	return &types.SourceResult{
		Source:    s.Name(),
		FetchedAt: fetchedAt,
		Status:    status,
		Scores:    scores,
	}
}
