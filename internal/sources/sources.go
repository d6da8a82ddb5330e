// Package sources implements the benchmark providers pondus aggregates.
//
// Each provider satisfies Source: the pipeline has no visibility into how a
// source fetches or parses, only into the SourceResult it returns. A source
// that cannot run (missing API key, browser not enabled) reports Unavailable;
// a source that tried and failed reports Error.
package sources

import (
	"context"
	"time"

	"github.com/jonathan/pondus/internal/cache"
	"github.com/jonathan/pondus/internal/config"
	"github.com/jonathan/pondus/internal/types"
)

// Source is one benchmark provider.
type Source interface {
	Name() string
	Fetch(ctx context.Context, cfg *config.Config, store *cache.Cache) (*types.SourceResult, error)
}

// All returns every registered source in registration order. The pipeline's
// output order follows this order.
func All() []Source {
	return []Source{
		&ArtificialAnalysis{},
		&Arena{},
		&SWEBench{},
		&Aider{},
		&LiveBench{},
		&TerminalBench{},
		&Seal{},
	}
}

func errorResult(name, message string) *types.SourceResult {
	return &types.SourceResult{
		Source: name,
		Status: types.Errorf("%s", message),
		Scores: []types.ModelScore{},
	}
}

func unavailableResult(name string) *types.SourceResult {
	return &types.SourceResult{
		Source: name,
		Status: types.Unavailable(),
		Scores: []types.ModelScore{},
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func intPtr(i int) *int {
	return &i
}
