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
	liveBenchRowsURL   = "https://datasets-server.huggingface.co/rows"
	liveBenchBatchSize = 100
)

// LiveBench aggregates per-question judgments from the LiveBench dataset on
// HuggingFace into one average score per model. Only the aggregate is cached,
// not the paginated raw rows.
type LiveBench struct{}

// Name implements Source.
func (s *LiveBench) Name() string { return "livebench" }

type liveBenchRow struct {
	Model string   `json:"source_model_name"`
	Score *float64 `json:"global_average"`
}

// Fetch implements Source.
func (s *LiveBench) Fetch(ctx context.Context, cfg *config.Config, store *cache.Cache) (*types.SourceResult, error) {
	if fetchedAt, data, ok := store.Get(s.Name()); ok {
		return s.parseAggregate(data, timePtr(fetchedAt), types.Cached()), nil
	}

	perModel := map[string][]float64{}
	offset := 0
	for {
		url := fmt.Sprintf(
			"%s?dataset=livebench/model_judgment&config=default&split=leaderboard&offset=%d&length=%d",
			liveBenchRowsURL, offset, liveBenchBatchSize,
		)

		var page struct {
			Rows []struct {
				Row struct {
					Model string   `json:"model"`
					Score *float64 `json:"score"`
				} `json:"row"`
			} `json:"rows"`
			NumRowsTotal int `json:"num_rows_total"`
		}
		if err := fetch.JSON(ctx, url, nil, &page); err != nil {
			break
		}
		if len(page.Rows) == 0 {
			break
		}

		for _, r := range page.Rows {
			if r.Row.Model == "" || r.Row.Score == nil {
				continue
			}
			perModel[r.Row.Model] = append(perModel[r.Row.Model], *r.Row.Score)
		}

		offset += liveBenchBatchSize
		if offset >= page.NumRowsTotal {
			break
		}
	}

	if len(perModel) == 0 {
		return errorResult(s.Name(), "failed to fetch livebench data from the huggingface datasets API"), nil
	}

	rows := make([]liveBenchRow, 0, len(perModel))
	for model, scores := range perModel {
		var sum float64
		for _, v := range scores {
			sum += v
		}
		avg := sum / float64(len(scores)) * 100
		rows = append(rows, liveBenchRow{Model: model, Score: &avg})
	}
	sort.Slice(rows, func(i, j int) bool {
		if *rows[i].Score != *rows[j].Score {
			return *rows[i].Score > *rows[j].Score
		}
		return rows[i].Model < rows[j].Model
	})

	data, err := json.Marshal(map[string][]liveBenchRow{"scores": rows})
	if err != nil {
		return nil, err
	}
	if err := store.Set(s.Name(), data); err != nil {
		return nil, err
	}

	return s.parseAggregate(data, timePtr(time.Now().UTC()), types.Ok()), nil
}

func (s *LiveBench) parseAggregate(data json.RawMessage, fetchedAt *time.Time, status types.SourceStatus) *types.SourceResult {
	var wrapper struct {
		Scores []liveBenchRow `json:"scores"`
	}
	_ = json.Unmarshal(data, &wrapper)

	rows := make([]liveBenchRow, 0, len(wrapper.Scores))
	for _, r := range wrapper.Scores {
		if r.Model == "" || r.Score == nil {
			continue
		}
		rows = append(rows, r)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return *rows[i].Score > *rows[j].Score
	})

	scores := make([]types.ModelScore, 0, len(rows))
	for i, r := range rows {
		rank := i + 1
		scores = append(scores, types.ModelScore{
			Model:           strings.NewReplacer(" ", "-", "_", "-").Replace(strings.ToLower(r.Model)),
			SourceModelName: r.Model,
			Metrics: map[string]types.MetricValue{
				"global_average": types.Float(*r.Score),
				"rank":           types.Int(int64(rank)),
			},
			Rank: intPtr(rank),
		})
	}

	return &types.SourceResult{
		Source:    s.Name(),
		FetchedAt: fetchedAt,
		Status:    status,
		Scores:    scores,
	}
}
