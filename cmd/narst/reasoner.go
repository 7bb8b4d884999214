package main

import (
	"context"

	"github.com/ntoxeg/narst/pkg/narst"
	"github.com/ntoxeg/narst/pkg/narst/config"
)

// openReasoner builds the configured store and engine behind a facade.
func openReasoner(ctx context.Context) (*narst.Narst, error) {
	loader := &config.Loader{Config: cfg, Logger: logger}
	comp, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return narst.New(narst.Options{
		Store:     comp.Store,
		Inference: comp.Engine,
		Logger:    logger,
	}), nil
}
