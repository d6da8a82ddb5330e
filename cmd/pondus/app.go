package main

import (
	"fmt"
	"os"

	"github.com/jonathan/pondus/internal/alias"
	"github.com/jonathan/pondus/internal/cache"
	"github.com/jonathan/pondus/internal/config"
	"github.com/jonathan/pondus/internal/pipeline"
	"github.com/jonathan/pondus/internal/render"
	"github.com/jonathan/pondus/internal/sources"
	"github.com/jonathan/pondus/internal/types"
)

// app bundles everything a subcommand needs: the pipeline plus the parsed
// output format and the cache for refresh handling.
type app struct {
	pipeline *pipeline.Pipeline
	store    *cache.Cache
	format   render.Format
}

// newApp performs the startup sequence shared by every subcommand. Any
// failure here is fatal and aborts before any fetch.
func newApp() (*app, error) {
	format, err := render.ParseFormat(globalFormat)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(globalConfig)
	if err != nil {
		return nil, err
	}

	store := cache.New(cfg.Cache.Dir, cfg.Cache.TTLHours)
	if globalNoCache {
		store.SetBypass(true)
	}
	if globalRefresh {
		if err := store.Clear(); err != nil {
			return nil, fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	aliases, err := alias.Load(cfg.Alias.Path)
	if err != nil {
		return nil, err
	}

	srcs := sources.All()
	if os.Getenv("PONDUS_USE_MOCK") != "" {
		srcs = []sources.Source{&sources.Mock{}}
	}

	return &app{
		pipeline: pipeline.New(cfg, store, aliases, srcs),
		store:    store,
		format:   format,
	}, nil
}

func (a *app) print(output *types.Output) error {
	rendered, err := render.Render(output, a.format)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}
