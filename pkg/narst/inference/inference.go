package inference

import (
	"context"

	"github.com/ntoxeg/narst/pkg/narst/nal"
)

// Engine derives new beliefs from existing ones with syllogistic rules.
// This interface allows swapping implementations (forward chaining,
// goal-directed search, etc.)
type Engine interface {
	// LoadNarsese adds every inheritance judgement found in Narsese text,
	// one sentence per line.
	LoadNarsese(text string) error

	// AddBelief adds or replaces an input belief. The term must be an
	// inheritance statement carrying a truth value.
	AddBelief(t nal.Term) error

	// Beliefs returns the current belief table in insertion order.
	Beliefs() []nal.Term

	// Query returns the belief about <subject --> predicate>, if any.
	Query(subject, predicate string) (nal.Term, bool)

	// Derive applies every rule to every ordered pair of beliefs once and
	// returns the derivations that changed the belief table.
	Derive(ctx context.Context) ([]Derivation, error)

	// DeriveAll repeats Derive until nothing changes or maxSteps is reached.
	DeriveAll(ctx context.Context, maxSteps int) ([]Derivation, error)

	// FindPath returns the chain of steps that supports <subject --> predicate>.
	// Returns an empty slice if the belief is unknown
	FindPath(subject, predicate string) []Step

	// Explain generates a human-readable explanation of a belief
	Explain(subject, predicate string) string
}

// Derivation records one rule application that produced a belief.
type Derivation struct {
	ID         string   // ULID, sortable by creation time
	Rule       string   // "deduction", "induction", ...
	Premises   [2]string
	Conclusion nal.Term // carries the derived truth value
	Step       int      // DeriveAll iteration, starting at 1
}

// Step represents one link in a derivation chain
type Step struct {
	Rule       string // "input" for beliefs that were not derived
	Premises   []string
	Conclusion string
	TV         nal.TruthValue
	Depth      int
}

// InputRule names the pseudo-rule of beliefs that were given, not derived.
const InputRule = "input"
