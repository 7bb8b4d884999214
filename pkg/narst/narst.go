// Package narst ties the reasoning kernel to a belief store: Narsese input
// is parsed, judgements become beliefs, and derived conclusions are
// persisted next to them.
package narst

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ntoxeg/narst/pkg/narst/inference"
	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/nal"
	"github.com/ntoxeg/narst/pkg/narst/narsese"
	"github.com/ntoxeg/narst/pkg/narst/store"
)

// Narst is the reasoner facade
type Narst struct {
	store  store.Store
	inf    inference.Engine
	logger *zap.Logger
}

// Options configures a Narst instance
type Options struct {
	Store     store.Store
	Inference inference.Engine
	Logger    *zap.Logger
}

// New creates a Narst instance with the given dependencies
func New(opts Options) *Narst {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Narst{
		store:  opts.Store,
		inf:    opts.Inference,
		logger: logger,
	}
}

// Close cleanly shuts down the Narst instance
func (n *Narst) Close() error {
	return n.store.Close()
}

// Store returns the underlying belief store.
func (n *Narst) Store() store.Store { return n.store }

// Engine returns the underlying inference engine.
func (n *Narst) Engine() inference.Engine { return n.inf }

// Input parses one Narsese sentence. Judgements are stored and handed to
// the inference engine; questions and goals are returned untouched.
func (n *Narst) Input(ctx context.Context, text string) (nal.Sentence, error) {
	s, err := narsese.ParseSentence(text)
	if err != nil {
		return nil, err
	}

	j, ok := s.(nal.Judgement)
	if !ok {
		return s, nil
	}
	if err := n.Believe(ctx, j.Belief()); err != nil {
		return nil, err
	}
	return s, nil
}

// Believe stores a belief term and offers it to the inference engine.
// Statements the engine cannot reason about are still stored.
func (n *Narst) Believe(ctx context.Context, t nal.Term) error {
	if t.TV == nil {
		return fmt.Errorf("%w: %q", internalerr.ErrMissingTruth, t.Expr)
	}

	term := t.Expr
	if !nal.Enclosed(term) {
		term = "<" + term + ">"
	}
	b, err := n.store.AddBelief(ctx, term, *t.TV, nil)
	if err != nil {
		return fmt.Errorf("store belief: %w", err)
	}
	n.logger.Debug("stored belief", zap.Uint64("id", b.ID), zap.String("term", b.Term))

	if n.inf == nil {
		return nil
	}
	if err := n.inf.AddBelief(t); err != nil {
		if errors.Is(err, internalerr.ErrNotInheritance) {
			n.logger.Debug("belief not usable for syllogism", zap.String("term", term))
			return nil
		}
		return err
	}
	return nil
}

// Answer returns the best known belief for a question's statement.
func (n *Narst) Answer(ctx context.Context, q nal.Question) (store.Belief, bool, error) {
	term := q.Statement.Expr
	if !nal.Enclosed(term) {
		term = "<" + term + ">"
	}
	b, ok, err := n.store.FindBelief(ctx, term)
	if err != nil || !ok {
		return b, ok, err
	}
	if err := n.store.TouchBelief(ctx, b.ID); err != nil {
		return store.Belief{}, false, err
	}
	b.UsageCount++
	return b, true, nil
}

// Think runs up to steps derivation steps and stores every conclusion.
func (n *Narst) Think(ctx context.Context, steps int) ([]inference.Derivation, error) {
	if n.inf == nil {
		return nil, nil
	}

	derived, err := n.inf.DeriveAll(ctx, steps)
	if err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}

	for _, d := range derived {
		if _, err := n.store.AddBelief(ctx, d.Conclusion.Expr, *d.Conclusion.TV, nil); err != nil {
			return nil, fmt.Errorf("store derivation %s: %w", d.ID, err)
		}
		n.logger.Info("derived belief",
			zap.String("id", d.ID),
			zap.String("rule", d.Rule),
			zap.String("term", d.Conclusion.Expr),
			zap.Float64("strength", d.Conclusion.TV.Strength()),
			zap.Float64("confidence", d.Conclusion.TV.Confidence()),
		)
	}
	return derived, nil
}
