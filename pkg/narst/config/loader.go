package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ntoxeg/narst/pkg/narst/inference/syllogistic"
	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/nal"
	"github.com/ntoxeg/narst/pkg/narst/store"
	"github.com/ntoxeg/narst/pkg/narst/store/memstore"
	"github.com/ntoxeg/narst/pkg/narst/store/sqlite"
)

// Loader builds components from a configuration
type Loader struct {
	Config *Config
	Logger *zap.Logger
}

// Components holds all constructed components
type Components struct {
	Store  store.Store
	Engine *syllogistic.Engine
}

// Load opens the configured store and builds an engine with every
// preload file loaded
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := l.Config
	if cfg == nil {
		cfg = Default()
	}
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	comp := &Components{}

	switch cfg.Store {
	case StoreSQLite:
		st, err := sqlite.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		comp.Store = st
	default:
		if cfg.MemoryPath == "" {
			comp.Store = memstore.New()
			break
		}
		st, err := memstore.Open(cfg.MemoryPath)
		if err != nil {
			return nil, fmt.Errorf("open memory store: %w", err)
		}
		comp.Store = st
	}

	comp.Engine = syllogistic.New(
		syllogistic.WithConcurrency(cfg.Concurrency),
		syllogistic.WithLogger(logger.Named("engine")),
	)

	if err := restoreBeliefs(ctx, comp, logger); err != nil {
		comp.Store.Close()
		return nil, err
	}

	for _, path := range cfg.Preload {
		data, err := os.ReadFile(path)
		if err != nil {
			comp.Store.Close()
			return nil, fmt.Errorf("read preload %s: %w", path, err)
		}
		if err := comp.Engine.LoadNarsese(string(data)); err != nil {
			comp.Store.Close()
			return nil, fmt.Errorf("load preload %s: %w", path, err)
		}
		logger.Info("preloaded narsese", zap.String("path", path))
	}

	return comp, nil
}

// restoreBeliefs hands every stored inheritance belief to the engine so a
// reopened store can be reasoned over again.
func restoreBeliefs(ctx context.Context, comp *Components, logger *zap.Logger) error {
	beliefs, err := comp.Store.ListBeliefs(ctx, 0)
	if err != nil {
		return fmt.Errorf("list stored beliefs: %w", err)
	}

	restored := 0
	for _, b := range beliefs {
		err := comp.Engine.AddBelief(nal.NewTerm(b.Term).WithTruth(b.TV))
		if errors.Is(err, internalerr.ErrNotInheritance) {
			continue
		}
		if err != nil {
			return fmt.Errorf("restore belief %d: %w", b.ID, err)
		}
		restored++
	}
	if restored > 0 {
		logger.Info("restored beliefs", zap.Int("count", restored))
	}
	return nil
}
