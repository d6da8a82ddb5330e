package sources

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/pondus/internal/cache"
	"github.com/jonathan/pondus/internal/config"
	"github.com/jonathan/pondus/internal/fetch"
	"github.com/jonathan/pondus/internal/types"
)

const sealURL = "https://scale.com/leaderboard"

// Seal scrapes the Scale SEAL leaderboard. The page only renders its table
// with JavaScript, so this source needs the headless browser and reports
// Unavailable unless use_browser is enabled in config.
type Seal struct{}

// Name implements Source.
func (s *Seal) Name() string { return "seal" }

type sealRow struct {
	Model string  `json:"source_model_name"`
	Score float64 `json:"score"`
}

// Fetch implements Source.
func (s *Seal) Fetch(ctx context.Context, cfg *config.Config, store *cache.Cache) (*types.SourceResult, error) {
	if fetchedAt, data, ok := store.Get(s.Name()); ok {
		return s.parseRows(data, timePtr(fetchedAt), types.Cached()), nil
	}

	if !cfg.UseBrowser {
		return unavailableResult(s.Name()), nil
	}

	html, err := fetch.WithBrowser(ctx, sealURL, fetch.DefaultBrowserTimeout)
	if err != nil {
		return errorResult(s.Name(), err.Error()), nil
	}

	rows, err := parseSealHTML(html)
	if err != nil {
		return errorResult(s.Name(), err.Error()), nil
	}
	if len(rows) == 0 {
		return errorResult(s.Name(), "failed to parse any model scores from the SEAL page"), nil
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].Model < rows[j].Model
	})

	data, err := json.Marshal(map[string][]sealRow{"scores": rows})
	if err != nil {
		return nil, err
	}
	if err := store.Set(s.Name(), data); err != nil {
		return nil, err
	}

	return s.parseRows(data, timePtr(time.Now().UTC()), types.Ok()), nil
}

// parseSealHTML pulls (model, percentage) pairs out of the rendered
// leaderboard table: the first cell of a row names the model, the first cell
// containing a percent sign carries its score.
func parseSealHTML(html string) ([]sealRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var rows []sealRow
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 2 {
			return
		}

		model := strings.TrimSpace(cells.First().Text())
		if model == "" {
			return
		}

		var score float64
		found := false
		cells.EachWithBreak(func(i int, td *goquery.Selection) bool {
			if i == 0 {
				return true
			}
			text := strings.TrimSpace(td.Text())
			if !strings.Contains(text, "%") {
				return true
			}
			v, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64)
			if err != nil {
				return true
			}
			score, found = v, true
			return false
		})
		if found {
			rows = append(rows, sealRow{Model: model, Score: score})
		}
	})
	return rows, nil
}

func (s *Seal) parseRows(data json.RawMessage, fetchedAt *time.Time, status types.SourceStatus) *types.SourceResult {
	var wrapper struct {
		Scores []sealRow `json:"scores"`
	}
	_ = json.Unmarshal(data, &wrapper)

	rows := wrapper.Scores
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	scores := make([]types.ModelScore, 0, len(rows))
	for i, r := range rows {
		if r.Model == "" {
			continue
		}
		rank := i + 1
		scores = append(scores, types.ModelScore{
			Model:           strings.ReplaceAll(strings.ToLower(r.Model), " ", "-"),
			SourceModelName: r.Model,
			Metrics: map[string]types.MetricValue{
				"score": types.Float(r.Score),
				"rank":  types.Int(int64(rank)),
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
