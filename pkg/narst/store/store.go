package store

import (
	"context"

	"github.com/ntoxeg/narst/pkg/narst/memory"
	"github.com/ntoxeg/narst/pkg/narst/nal"
)

// Store is the main interface for persisting and querying beliefs.
// Implementations are the single synchronization boundary around the
// belief table: many readers, one writer.
type Store interface {
	Close() error

	// Beliefs
	AddBelief(ctx context.Context, term string, tv nal.TruthValue, embedID *uint64) (Belief, error)
	GetBelief(ctx context.Context, id uint64) (Belief, error)
	FindBelief(ctx context.Context, term string) (Belief, bool, error)
	ListBeliefs(ctx context.Context, limit int) ([]Belief, error)
	TouchBelief(ctx context.Context, id uint64) error

	// Snapshot exports the whole store as a memory document.
	Snapshot(ctx context.Context) (*memory.Memory, error)
}

// Belief is a stored statement with its truth value and bookkeeping.
type Belief = memory.Item
