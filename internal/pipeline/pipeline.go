// Package pipeline drives the source fan-out and answers the four query shapes.
//
// Every query is a single pass: one round of independent fetches, then a pure
// in-memory filter. No state survives a call and no I/O happens while
// filtering.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/pondus/internal/alias"
	"github.com/jonathan/pondus/internal/cache"
	"github.com/jonathan/pondus/internal/config"
	"github.com/jonathan/pondus/internal/sources"
	"github.com/jonathan/pondus/internal/types"
)

// Pipeline composes the resolver, the cache and the registered sources.
type Pipeline struct {
	cfg     *config.Config
	store   *cache.Cache
	aliases *alias.Resolver
	sources []sources.Source
}

// New builds a pipeline over the given collaborators.
func New(cfg *config.Config, store *cache.Cache, aliases *alias.Resolver, srcs []sources.Source) *Pipeline {
	return &Pipeline{cfg: cfg, store: store, aliases: aliases, sources: srcs}
}

// FetchAll invokes every source, one goroutine each, and returns one
// SourceResult per source in registration order regardless of completion
// order. A source's failure is converted into an error-status result and
// never aborts or affects any other source.
func (p *Pipeline) FetchAll(ctx context.Context) []types.SourceResult {
	results := make([]types.SourceResult, len(p.sources))

	var g errgroup.Group
	for i, src := range p.sources {
		g.Go(func() error {
			result, err := src.Fetch(ctx, p.cfg, p.store)
			if err != nil {
				results[i] = types.SourceResult{
					Source: src.Name(),
					Status: types.Errorf("%s", err.Error()),
					Scores: []types.ModelScore{},
				}
				return nil
			}
			results[i] = *result
			return nil
		})
	}
	// Goroutines never return errors; failures land in their result slot.
	_ = g.Wait()

	return results
}

// Rank fetches every source and, when top > 0, truncates each source's score
// list to its first top entries. Sources pre-sort their own scores, so the
// head of each list is that source's best models.
func (p *Pipeline) Rank(ctx context.Context, top int) *types.Output {
	results := p.FetchAll(ctx)
	if top > 0 {
		for i := range results {
			if len(results[i].Scores) > top {
				results[i].Scores = results[i].Scores[:top]
			}
		}
	}
	return newOutput(types.QueryInfo{Type: "rank", Top: top}, results)
}

// Check resolves model to its canonical identity and retains, per source,
// only the scores that refer to it. A score matches when its source-normalized
// model field equals the canonical directly, or when its raw source name
// resolves to it; the two fields are normalized independently and may
// disagree, hence the disjunction.
func (p *Pipeline) Check(ctx context.Context, model string) *types.Output {
	canonical := p.aliases.Resolve(model)
	results := p.FetchAll(ctx)

	for i := range results {
		kept := results[i].Scores[:0]
		for _, score := range results[i].Scores {
			if strings.ToLower(score.Model) == canonical ||
				p.aliases.Matches(score.SourceModelName, canonical) {
				kept = append(kept, score)
			}
		}
		results[i].Scores = kept
	}

	return newOutput(types.QueryInfo{Type: "check", Model: canonical}, results)
}

// Compare resolves both models and retains, per source, only the scores whose
// raw source name resolves to one of the two canonicals.
func (p *Pipeline) Compare(ctx context.Context, model1, model2 string) *types.Output {
	c1 := p.aliases.Resolve(model1)
	c2 := p.aliases.Resolve(model2)
	results := p.FetchAll(ctx)

	for i := range results {
		kept := results[i].Scores[:0]
		for _, score := range results[i].Scores {
			resolved := p.aliases.Resolve(score.SourceModelName)
			if resolved == c1 || resolved == c2 {
				kept = append(kept, score)
			}
		}
		results[i].Scores = kept
	}

	return newOutput(types.QueryInfo{Type: "compare", Models: []string{c1, c2}}, results)
}

// Sources fetches every source with no filtering; a diagnostic/status view.
func (p *Pipeline) Sources(ctx context.Context) *types.Output {
	return newOutput(types.QueryInfo{Type: "sources"}, p.FetchAll(ctx))
}

func newOutput(query types.QueryInfo, results []types.SourceResult) *types.Output {
	return &types.Output{
		Timestamp: time.Now().UTC(),
		RunID:     uuid.New(),
		Query:     query,
		Sources:   results,
	}
}
